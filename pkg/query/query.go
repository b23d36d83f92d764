// Package query provides the pure DOM arithmetic the drag engine is built
// on: enumerating draggable children, locating elements among their
// siblings, splicing an element to a target index and translating pointer
// coordinates into insertion positions.
//
// Every function here is side-effect free except InsertAtIndex, which
// performs exactly one tree splice. None of them retain state between
// calls; the gesture instance owns all session state.
package query

import (
	"strconv"

	"github.com/vango-dev/sortable/pkg/dom"
)

// Matches applies the engine-wide selector convention: an empty selector
// (or "*") matches every element, anything else defers to the element's
// own Matches.
func Matches(el *dom.Element, selector string) bool {
	if selector == "" || selector == "*" {
		return true
	}
	return el.Matches(selector)
}

func isTemplate(el *dom.Element) bool { return el.Tag() == "template" }

// DraggableChildren returns, in document order, the container's direct
// children that match selector, are visible and are not template
// placeholders. A nil container yields an empty slice.
func DraggableChildren(container *dom.Element, selector string) []*dom.Element {
	if container == nil {
		return nil
	}
	var out []*dom.Element
	for _, c := range container.Children() {
		if !c.Visible() || isTemplate(c) || !Matches(c, selector) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ElementIndex returns el's 0-based position among its visible,
// selector-matching siblings, or -1 when el is detached. Hidden siblings,
// template placeholders and non-matching siblings do not count.
func ElementIndex(el *dom.Element, selector string) int {
	if el == nil || el.Parent() == nil {
		return -1
	}
	idx := 0
	for _, c := range el.Parent().Children() {
		if c == el {
			return idx
		}
		if c.Visible() && !isTemplate(c) && Matches(c, selector) {
			idx++
		}
	}
	return -1
}

// FindDraggableAncestor walks upward from node looking for an element
// matching selector. The walk stops after testing boundary; a boundary
// that itself matches is returned. Returns nil when nothing matches.
func FindDraggableAncestor(node, boundary *dom.Element, selector string) *dom.Element {
	for n := node; n != nil; n = n.Parent() {
		if Matches(n, selector) {
			return n
		}
		if n == boundary {
			break
		}
	}
	return nil
}

// InsertAtIndex splices el so it occupies position index among the
// container's draggable children, the same index space DropPosition and
// ElementIndex speak. Hidden, template and non-matching interstitial
// nodes keep their positions. An index at or beyond the current count
// appends. Negative indices clamp to 0.
func InsertAtIndex(container, el *dom.Element, index int, selector string) error {
	if container == nil || el == nil {
		return nil
	}
	if index < 0 {
		index = 0
	}
	var anchors []*dom.Element
	for _, c := range container.Children() {
		if c == el || !c.Visible() || isTemplate(c) || !Matches(c, selector) {
			continue
		}
		anchors = append(anchors, c)
	}
	if index >= len(anchors) {
		container.AppendChild(el)
		return nil
	}
	return container.InsertBefore(el, anchors[index])
}

// CreateGhost deep-clones original into a drag ghost: id stripped, the
// ghost class applied (DefaultGhostClass when class is empty), positioned
// absolutely, transparent to hit testing, with the original's measured
// size pinned as explicit width/height. Listeners are never cloned. The
// ghost is returned detached; the caller decides where it mounts.
func CreateGhost(original *dom.Element, class string) *dom.Element {
	if original == nil {
		return nil
	}
	if class == "" {
		class = DefaultGhostClass
	}
	r := original.Rect()
	g := original.CloneDeep()
	g.SetID("")
	g.AddClass(class)
	g.SetStyle("position", "absolute")
	g.SetStyle("pointer-events", "none")
	g.SetStyle("width", px(r.Width))
	g.SetStyle("height", px(r.Height))
	g.SetRect(r)
	return g
}

// DefaultGhostClass is applied to ghosts when no class is configured.
const DefaultGhostClass = "sortable-ghost"

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
