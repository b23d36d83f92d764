package domtest

import (
	"testing"

	"github.com/vango-dev/sortable/pkg/dom"
	"github.com/vango-dev/sortable/pkg/event"
)

func TestBoardBuilderDefaults(t *testing.T) {
	b := NewBoard().Build()
	if len(b.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(b.Items))
	}
	ExpectOrder(t, b.List, "item-1", "item-2", "item-3")
	for i, it := range b.Items {
		r := it.Rect()
		if r.Y != float64(i*30) || r.Height != 30 || r.Width != 100 {
			t.Errorf("item %d rect = %+v, want y=%d 100x30", i, r, i*30)
		}
		if it.Attr("data-id") != it.ID() {
			t.Errorf("item %d data-id = %q, want %q", i, it.Attr("data-id"), it.ID())
		}
	}
}

func TestBoardBuilderHorizontalWithGap(t *testing.T) {
	b := NewBoard().WithItems(2).WithItemSize(80, 80).Horizontal().WithGap(10).Build()
	if got := b.Items[1].Rect().X; got != 90 {
		t.Errorf("second item x = %v, want 90", got)
	}
	if got := b.List.Rect().Width; got != 170 {
		t.Errorf("list width = %v, want 170", got)
	}
}

func TestAddListPlacesSecondListAside(t *testing.T) {
	b := NewBoard().Build()
	other := b.AddList(NewBoard().WithItems(2))
	ExpectOrder(t, other, "item-4", "item-5")
	if first, second := b.List.Rect(), other.Rect(); second.Left() < first.Right() {
		t.Errorf("second list at x=%v overlaps first (right=%v)", second.Left(), first.Right())
	}
}

func TestGestureDispatchesPhases(t *testing.T) {
	b := NewBoard().Build()
	var phases []dom.PointerPhase
	var kinds []dom.PointerKind
	b.Doc.Root().AddEventListener(dom.EventPointerDown, func(ev *dom.CustomEvent) {
		pe := dom.PointerFrom(ev)
		phases = append(phases, pe.Phase)
		kinds = append(kinds, pe.Kind)
	})
	b.Doc.Root().AddEventListener(dom.EventPointerUp, func(ev *dom.CustomEvent) {
		pe := dom.PointerFrom(ev)
		phases = append(phases, pe.Phase)
		if pe.X != 50 || pe.Y != 15 {
			t.Errorf("release at (%v,%v), want last position (50,15)", pe.X, pe.Y)
		}
	})

	b.Gesture().Touch().Press(50, 15).Release()
	if len(phases) != 2 || phases[0] != dom.PointerDown || phases[1] != dom.PointerUp {
		t.Fatalf("phases = %v, want [down up]", phases)
	}
	if kinds[0] != dom.PointerTouch {
		t.Errorf("kind = %v, want touch", kinds[0])
	}
}

func TestRecorderCapturesInOrder(t *testing.T) {
	b := NewBoard().Build()
	rec := Record(b.List)
	defer rec.Stop()

	b.List.DispatchEvent(event.Build(event.Start, &event.Event{OldIndex: 1}, b.List))
	b.List.DispatchEvent(event.Build(event.End, &event.Event{NewIndex: 2}, b.List))

	ExpectEvents(t, rec, event.Start, event.End)
	if rec.Count(event.Start) != 1 {
		t.Errorf("start count = %d, want 1", rec.Count(event.Start))
	}
	if got := rec.First(event.Start); got == nil || got.OldIndex != 1 {
		t.Errorf("first start payload = %+v, want OldIndex 1", got)
	}
	rec.Reset()
	if len(rec.Types()) != 0 {
		t.Error("reset recorder still holds events")
	}
}
