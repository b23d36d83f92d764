package domtest

import (
	"fmt"

	"github.com/vango-dev/sortable/pkg/dom"
)

// BoardBuilder allows fluent construction of test boards.
type BoardBuilder struct {
	items      int
	itemW      float64
	itemH      float64
	gap        float64
	dir        dom.Direction
	listClass  string
	itemClass  string
	listOrigin dom.Rect
}

// NewBoard creates a board builder: three 100x30 items in a vertical list
// at the document origin, unless configured otherwise.
func NewBoard() *BoardBuilder {
	return &BoardBuilder{
		items:     3,
		itemW:     100,
		itemH:     30,
		dir:       dom.Vertical,
		listClass: "list",
		itemClass: "item",
	}
}

// WithItems sets the number of items.
func (b *BoardBuilder) WithItems(n int) *BoardBuilder {
	b.items = n
	return b
}

// WithItemSize sets each item's width and height.
func (b *BoardBuilder) WithItemSize(w, h float64) *BoardBuilder {
	b.itemW, b.itemH = w, h
	return b
}

// WithGap sets the flow gap between items.
func (b *BoardBuilder) WithGap(gap float64) *BoardBuilder {
	b.gap = gap
	return b
}

// Horizontal lays the board out left to right.
func (b *BoardBuilder) Horizontal() *BoardBuilder {
	b.dir = dom.Horizontal
	return b
}

// WithItemClass overrides the class applied to every item.
func (b *BoardBuilder) WithItemClass(class string) *BoardBuilder {
	b.itemClass = class
	return b
}

// At positions the list's origin.
func (b *BoardBuilder) At(x, y float64) *BoardBuilder {
	b.listOrigin = dom.Rect{X: x, Y: y}
	return b
}

// Build constructs the document, scheduler, list and items.
func (b *BoardBuilder) Build() *Board {
	doc := dom.NewDocument()
	sched := dom.NewManualScheduler()
	doc.SetScheduler(sched)
	doc.SetLayoutFunc(dom.Flow(b.dir, b.gap))
	doc.Root().SetRect(dom.Rect{Width: 1600, Height: 1200})

	board := &Board{Doc: doc, Sched: sched}
	board.List = board.AddList(b)
	board.Items = board.List.Children()
	return board
}

// Board is a built test fixture: one document on a manual scheduler with
// Flow layout and at least one list of items.
type Board struct {
	Doc   *dom.Document
	Sched *dom.ManualScheduler
	List  *dom.Element
	Items []*dom.Element

	lists int
	ids   int
}

// AddList appends another list built from the same spec, placed after the
// configured origin so two boards never overlap. Used by cross-container
// tests.
func (b *Board) AddList(spec *BoardBuilder) *dom.Element {
	if spec == nil {
		spec = NewBoard()
	}
	origin := spec.listOrigin
	if b.lists > 0 && origin.IsZero() {
		// Stack extra lists beside the first so hit tests stay unambiguous.
		origin = dom.Rect{X: float64(b.lists) * (spec.itemW + 100)}
	}
	b.lists++

	list := b.Doc.CreateElement("ul")
	list.AddClass(spec.listClass)
	span := spec.gap * float64(spec.items-1)
	w, h := spec.itemW, spec.itemH*float64(spec.items)+span
	if spec.dir == dom.Horizontal {
		w, h = spec.itemW*float64(spec.items)+span, spec.itemH
	}
	list.SetRect(dom.Rect{X: origin.X, Y: origin.Y, Width: w, Height: h})
	b.Doc.Root().AppendChild(list)

	for i := 0; i < spec.items; i++ {
		b.ids++
		it := b.Doc.CreateElement("li")
		it.AddClass(spec.itemClass)
		it.SetID(fmt.Sprintf("item-%d", b.ids))
		it.SetAttr("data-id", it.ID())
		it.SetRect(dom.Rect{Width: spec.itemW, Height: spec.itemH})
		list.AppendChild(it)
	}
	b.Doc.Relayout()
	return list
}

// IDs returns the element ids of a container's children in document order.
func IDs(container *dom.Element) []string {
	out := []string{}
	for _, c := range container.Children() {
		out = append(out, c.ID())
	}
	return out
}
