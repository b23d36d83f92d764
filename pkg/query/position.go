package query

import "github.com/vango-dev/sortable/pkg/dom"

// Position describes where a pointer coordinate lands among a container's
// draggable children.
type Position struct {
	// Index is the target item's position among the draggable children.
	Index int

	// InsertAfter reports whether the insertion point is after the target
	// item. A coordinate at or past the item's midpoint on the primary
	// axis resolves to after.
	InsertAfter bool

	// Target is the item the coordinate attributes to. Nil only when the
	// container has no draggable children.
	Target *dom.Element
}

// DropPosition maps a pointer coordinate along dir's primary axis to an
// insertion position among the container's draggable children.
//
// The midpoint rule decides every ambiguity: a coordinate at or beyond an
// item's midpoint means insert after it, anything earlier means before.
// Coordinates in the gap before an item attribute to that item (before);
// coordinates past the last item attribute to it (after). An empty
// container yields {0, true, nil}.
func DropPosition(container *dom.Element, dir dom.Direction, coord float64, selector string) Position {
	items := DraggableChildren(container, selector)
	if len(items) == 0 {
		return Position{Index: 0, InsertAfter: true}
	}
	for i, it := range items {
		r := it.Rect()
		if coord < dir.Start(r) {
			return Position{Index: i, InsertAfter: false, Target: it}
		}
		if coord < dir.End(r) {
			return Position{Index: i, InsertAfter: coord >= dir.Mid(r), Target: it}
		}
	}
	last := len(items) - 1
	return Position{Index: last, InsertAfter: true, Target: items[last]}
}

// InsertIndex resolves the final child index for dropping dragged at coord:
// DropPosition folded with the dragged element's own position, so moving an
// item later in its own container accounts for the slot it vacates. The
// result feeds straight into InsertAtIndex.
func InsertIndex(container *dom.Element, dir dom.Direction, coord float64, selector string, dragged *dom.Element) int {
	pos := DropPosition(container, dir, coord, selector)
	if pos.Target == nil {
		return 0
	}
	idx := pos.Index
	if pos.InsertAfter {
		idx++
	}
	if dragged != nil && dragged.Parent() == container {
		cur := ElementIndex(dragged, selector)
		if cur >= 0 && cur < idx {
			idx--
		}
	}
	return idx
}

// LayoutDirection infers a container's primary axis from its first two
// draggable children: side by side means horizontal, anything else means
// vertical (including zero or one child). The check only ever looks at the
// first two items, so a wrapping row-grid reads as horizontal; per-session
// recomputation keeps that cheap rather than fixing it.
func LayoutDirection(container *dom.Element, selector string) dom.Direction {
	items := DraggableChildren(container, selector)
	if len(items) < 2 {
		return dom.Vertical
	}
	first, second := items[0].Rect(), items[1].Rect()
	if second.Left() >= first.Right() && second.Top() < first.Bottom() {
		return dom.Horizontal
	}
	return dom.Vertical
}
