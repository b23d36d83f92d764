// Package domtest provides testing helpers for the sortable engine.
//
// The domtest package reduces boilerplate when testing drag behavior by
// providing fluent board builders, a pointer gesture driver and assertion
// helpers over the element tree.
//
// # Quick Start
//
//	func TestReorder(t *testing.T) {
//	    b := domtest.NewBoard().WithItems(3).Build()
//	    m := sortable.New(b.List, sortable.Options{})
//	    defer m.Cleanup()
//
//	    b.Gesture().Press(50, 15).MoveTo(50, 50).Release()
//	    domtest.ExpectOrder(t, b.List, "item-2", "item-1", "item-3")
//	}
//
// # Fluent Board Builder
//
// The board builder allows chaining multiple setup operations:
//
//	b := domtest.NewBoard().
//	    WithItems(5).
//	    Horizontal().
//	    WithItemSize(80, 80).
//	    WithGap(10).
//	    Build()
//
// Items get ids item-1 .. item-N and a matching data-id attribute, the
// class "item", and rects laid out by a Flow layout on a manual scheduler,
// so geometry follows every reorder deterministically.
//
// # Gesture Driver
//
// Pointer input goes through the same DispatchPointer path a live host
// uses:
//
//	b.Gesture().Press(50, 15).MoveTo(50, 50).Release()
//	b.Gesture().Touch().Press(50, 15).Cancel()
//
// # Event Recording
//
// Record captures the lifecycle events a container dispatches, in order:
//
//	rec := domtest.Record(b.List)
//	...
//	if rec.Types()[0] != event.Choose { ... }
package domtest
