package event

import (
	"github.com/vango-dev/sortable/pkg/dom"
	"github.com/vango-dev/sortable/pkg/query"
)

// Predicate is a host-supplied filter function. Returning true prevents
// the press from starting a drag.
type Predicate func(*dom.Element) bool

// IsPrevented evaluates the filter option against a press target. A
// non-empty selector prevents when el or any ancestor up to boundary
// matches it; a predicate prevents when it returns true. Either one
// prevents when both are configured. Predicate panics are recovered,
// logged and treated as not prevented.
func (d Dispatcher) IsPrevented(el, boundary *dom.Element, selector string, pred Predicate) bool {
	if el == nil {
		return false
	}
	if selector != "" && query.FindDraggableAncestor(el, boundary, selector) != nil {
		return true
	}
	if pred != nil {
		return d.callPredicate(el, pred)
	}
	return false
}

func (d Dispatcher) callPredicate(el *dom.Element, pred Predicate) (prevented bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger().Error("filter predicate panicked", "panic", r)
			prevented = false
		}
	}()
	return pred(el)
}

// ResolveDraggable maps a raw press target to the acting draggable: the
// direct child of container on target's ancestor path that matches
// draggableSel, visible and not a template placeholder. With a handle
// selector the press must additionally land inside an element matching it
// within that draggable. Returns nil when the press does not qualify.
func ResolveDraggable(target, container *dom.Element, draggableSel, handleSel string) *dom.Element {
	if target == nil || container == nil || target == container || !container.Contains(target) {
		return nil
	}
	var el *dom.Element
	for n := target; n != nil && n != container; n = n.Parent() {
		if n.Parent() == container && query.Matches(n, draggableSel) {
			el = n
			break
		}
	}
	if el == nil || !el.Visible() || el.Tag() == "template" {
		return nil
	}
	if handleSel != "" && query.FindDraggableAncestor(target, el, handleSel) == nil {
		return nil
	}
	return el
}
