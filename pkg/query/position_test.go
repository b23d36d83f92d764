package query

import (
	"testing"

	"github.com/vango-dev/sortable/pkg/dom"
)

func TestDropPositionVertical(t *testing.T) {
	// Items occupy y ranges [0,30) [30,60) [60,90).
	_, list, items := newList(3)

	tests := []struct {
		name      string
		coord     float64
		wantIdx   int
		wantAfter bool
		wantItem  int // index into items, -1 for nil
	}{
		{"upper half of first", 10, 0, false, 0},
		{"lower half of first", 20, 0, true, 0},
		{"exact midpoint resolves after", 15, 0, true, 0},
		{"just before midpoint", 14.9, 0, false, 0},
		{"upper half of second", 32, 1, false, 1},
		{"lower half of last", 80, 2, true, 2},
		{"before the first item", -5, 0, false, 0},
		{"past the last item", 500, 2, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DropPosition(list, dom.Vertical, tt.coord, ".item")
			if got.Index != tt.wantIdx || got.InsertAfter != tt.wantAfter {
				t.Errorf("DropPosition(%v) = {%d %v}, want {%d %v}",
					tt.coord, got.Index, got.InsertAfter, tt.wantIdx, tt.wantAfter)
			}
			if got.Target != items[tt.wantItem] {
				t.Errorf("DropPosition(%v) target wrong", tt.coord)
			}
		})
	}
}

func TestDropPositionGapBetweenItems(t *testing.T) {
	d := dom.NewDocument()
	list := d.CreateElement("ul")
	d.Root().AppendChild(list)
	a := d.CreateElement("li")
	a.SetRect(dom.Rect{Y: 0, Width: 100, Height: 30})
	b := d.CreateElement("li")
	b.SetRect(dom.Rect{Y: 40, Width: 100, Height: 30}) // 10px gap
	list.AppendChild(a)
	list.AppendChild(b)

	got := DropPosition(list, dom.Vertical, 35, "")
	if got.Index != 1 || got.InsertAfter || got.Target != b {
		t.Errorf("gap coordinate = {%d %v}, want {1 false} targeting the next item",
			got.Index, got.InsertAfter)
	}
}

func TestDropPositionEmptyContainer(t *testing.T) {
	d := dom.NewDocument()
	list := d.CreateElement("ul")
	d.Root().AppendChild(list)

	got := DropPosition(list, dom.Vertical, 50, "")
	if got.Index != 0 || !got.InsertAfter || got.Target != nil {
		t.Errorf("empty container = {%d %v %v}, want {0 true nil}",
			got.Index, got.InsertAfter, got.Target)
	}
}

func TestDropPositionHorizontal(t *testing.T) {
	d := dom.NewDocument()
	row := d.CreateElement("div")
	d.Root().AppendChild(row)
	a := d.CreateElement("li")
	a.SetRect(dom.Rect{X: 0, Width: 50, Height: 40})
	b := d.CreateElement("li")
	b.SetRect(dom.Rect{X: 50, Width: 50, Height: 40})
	row.AppendChild(a)
	row.AppendChild(b)

	got := DropPosition(row, dom.Horizontal, 80, "")
	if got.Index != 1 || !got.InsertAfter || got.Target != b {
		t.Errorf("right half of second = {%d %v}, want {1 true}", got.Index, got.InsertAfter)
	}
	got = DropPosition(row, dom.Horizontal, 60, "")
	if got.Index != 1 || got.InsertAfter {
		t.Errorf("left half of second = {%d %v}, want {1 false}", got.Index, got.InsertAfter)
	}
}

func TestInsertIndexDownwardMove(t *testing.T) {
	// Dragging the first item into the lower half of the second lands it
	// at final index 1: the vacated slot shifts everything up by one.
	_, list, items := newList(3)

	idx := InsertIndex(list, dom.Vertical, 50, ".item", items[0])
	if idx != 1 {
		t.Fatalf("InsertIndex = %d, want 1", idx)
	}
	if err := InsertAtIndex(list, items[0], idx, ".item"); err != nil {
		t.Fatal(err)
	}
	assertOrder(t, list, items[1], items[0], items[2])
}

func TestInsertIndexUpwardMove(t *testing.T) {
	_, list, items := newList(3)

	idx := InsertIndex(list, dom.Vertical, 5, ".item", items[2])
	if idx != 0 {
		t.Fatalf("InsertIndex = %d, want 0", idx)
	}
	if err := InsertAtIndex(list, items[2], idx, ".item"); err != nil {
		t.Fatal(err)
	}
	assertOrder(t, list, items[2], items[0], items[1])
}

func TestInsertIndexNoShiftForForeignDragged(t *testing.T) {
	d, list, _ := newList(3)
	foreign := d.CreateElement("li")
	foreign.AddClass("item")
	d.Root().AppendChild(foreign)

	// Lower half of the second item: position {1 after} = index 2, and a
	// dragged element from another container must not shift it.
	idx := InsertIndex(list, dom.Vertical, 50, ".item", foreign)
	if idx != 2 {
		t.Errorf("InsertIndex = %d, want 2", idx)
	}
}

func TestInsertIndexEmptyContainer(t *testing.T) {
	d := dom.NewDocument()
	list := d.CreateElement("ul")
	d.Root().AppendChild(list)
	foreign := d.CreateElement("li")
	d.Root().AppendChild(foreign)

	if idx := InsertIndex(list, dom.Vertical, 50, "", foreign); idx != 0 {
		t.Errorf("InsertIndex into empty container = %d, want 0", idx)
	}
}

func TestLayoutDirection(t *testing.T) {
	// Stacked items read vertical.
	_, list, _ := newList(3)
	if got := LayoutDirection(list, ".item"); got != dom.Vertical {
		t.Errorf("stacked list direction = %v, want vertical", got)
	}

	// Side-by-side items read horizontal.
	d := dom.NewDocument()
	row := d.CreateElement("div")
	d.Root().AppendChild(row)
	for i := 0; i < 3; i++ {
		it := d.CreateElement("li")
		it.SetRect(dom.Rect{X: float64(i) * 50, Width: 50, Height: 40})
		row.AppendChild(it)
	}
	if got := LayoutDirection(row, ""); got != dom.Horizontal {
		t.Errorf("row direction = %v, want horizontal", got)
	}
}

func TestLayoutDirectionDegenerateCounts(t *testing.T) {
	d := dom.NewDocument()
	list := d.CreateElement("ul")
	d.Root().AppendChild(list)
	if got := LayoutDirection(list, ""); got != dom.Vertical {
		t.Errorf("empty container direction = %v, want vertical", got)
	}
	only := d.CreateElement("li")
	only.SetRect(dom.Rect{Width: 50, Height: 40})
	list.AppendChild(only)
	if got := LayoutDirection(list, ""); got != dom.Vertical {
		t.Errorf("single child direction = %v, want vertical", got)
	}
}

func TestLayoutDirectionUsesFirstTwoItemsOnly(t *testing.T) {
	// A wrapping grid whose first row holds two items reads horizontal
	// even though later items wrap to new rows. The heuristic never looks
	// past the first two children.
	d := dom.NewDocument()
	grid := d.CreateElement("div")
	d.Root().AppendChild(grid)
	rects := []dom.Rect{
		{X: 0, Y: 0, Width: 50, Height: 50},
		{X: 50, Y: 0, Width: 50, Height: 50},
		{X: 0, Y: 50, Width: 50, Height: 50},
	}
	for _, r := range rects {
		it := d.CreateElement("li")
		it.SetRect(r)
		grid.AppendChild(it)
	}
	if got := LayoutDirection(grid, ""); got != dom.Horizontal {
		t.Errorf("wrapped grid direction = %v, want horizontal", got)
	}
}
