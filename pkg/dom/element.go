package dom

import (
	"errors"
	"strings"
)

// ErrNotChild is returned by tree operations when the reference node is not
// a child of the receiver.
var ErrNotChild = errors.New("dom: reference node is not a child")

// Element is a node in the document tree.
//
// Elements are created through Document.CreateElement and stay bound to that
// document for life. All mutators are synchronous; they must only be called
// from scheduler callbacks (or before the document is handed to the engine).
type Element struct {
	doc *Document

	tag   string
	id    string
	attrs map[string]string

	classes []string
	styles  map[string]string
	hidden  bool

	rect Rect

	parent   *Element
	children []*Element

	listeners map[string][]*listenerEntry
}

// Tag returns the element's tag name as given to CreateElement.
func (e *Element) Tag() string { return e.tag }

// ID returns the element's id.
func (e *Element) ID() string { return e.id }

// SetID sets the element's id.
func (e *Element) SetID(id string) {
	if e.id == id {
		return
	}
	e.id = id
	e.doc.notify(MutationRecord{Kind: MutAttr, Target: e, Name: "id", Value: id})
}

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// =============================================================================
// Attributes
// =============================================================================

// SetAttr sets an attribute value.
func (e *Element) SetAttr(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	if old, ok := e.attrs[name]; ok && old == value {
		return
	}
	e.attrs[name] = value
	e.doc.notify(MutationRecord{Kind: MutAttr, Target: e, Name: name, Value: value})
}

// Attr returns an attribute value, or "" if absent.
func (e *Element) Attr(name string) string { return e.attrs[name] }

// HasAttr reports whether the attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// RemoveAttr removes an attribute if present.
func (e *Element) RemoveAttr(name string) {
	if _, ok := e.attrs[name]; !ok {
		return
	}
	delete(e.attrs, name)
	e.doc.notify(MutationRecord{Kind: MutAttr, Target: e, Name: name, Removed: true})
}

// =============================================================================
// Classes
// =============================================================================

// AddClass adds a class if not already present. Empty names are ignored.
func (e *Element) AddClass(name string) {
	if name == "" || e.HasClass(name) {
		return
	}
	e.classes = append(e.classes, name)
	e.doc.notify(MutationRecord{Kind: MutClass, Target: e, Name: name})
}

// RemoveClass removes a class if present.
func (e *Element) RemoveClass(name string) {
	for i, c := range e.classes {
		if c == name {
			e.classes = append(e.classes[:i], e.classes[i+1:]...)
			e.doc.notify(MutationRecord{Kind: MutClass, Target: e, Name: name, Removed: true})
			return
		}
	}
}

// HasClass reports whether the class is present.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes {
		if c == name {
			return true
		}
	}
	return false
}

// Classes returns a copy of the class list in insertion order.
func (e *Element) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// ClassString returns the space-joined class list.
func (e *Element) ClassString() string { return strings.Join(e.classes, " ") }

// =============================================================================
// Inline styles
// =============================================================================

// SetStyle sets an inline style property.
func (e *Element) SetStyle(name, value string) {
	if e.styles == nil {
		e.styles = make(map[string]string)
	}
	if old, ok := e.styles[name]; ok && old == value {
		return
	}
	e.styles[name] = value
	e.doc.notify(MutationRecord{Kind: MutStyle, Target: e, Name: name, Value: value})
}

// Style returns an inline style property, or "" if unset.
func (e *Element) Style(name string) string { return e.styles[name] }

// RemoveStyle removes an inline style property if set.
func (e *Element) RemoveStyle(name string) {
	if _, ok := e.styles[name]; !ok {
		return
	}
	delete(e.styles, name)
	e.doc.notify(MutationRecord{Kind: MutStyle, Target: e, Name: name, Removed: true})
}

// Styles returns a copy of the inline style map.
func (e *Element) Styles() map[string]string {
	out := make(map[string]string, len(e.styles))
	for k, v := range e.styles {
		out[k] = v
	}
	return out
}

// =============================================================================
// Visibility and geometry
// =============================================================================

// SetHidden toggles the hidden flag (the engine's display:none analog).
func (e *Element) SetHidden(hidden bool) {
	if e.hidden == hidden {
		return
	}
	e.hidden = hidden
	rec := MutationRecord{Kind: MutAttr, Target: e, Name: "hidden", Removed: !hidden}
	if hidden {
		rec.Value = "true"
	}
	e.doc.notify(rec)
}

// Hidden reports the hidden flag.
func (e *Element) Hidden() bool { return e.hidden }

// Visible reports whether the element participates in layout and hit
// testing: not hidden and not styled display:none.
func (e *Element) Visible() bool {
	return !e.hidden && e.styles["display"] != "none"
}

// SetRect records the element's layout rectangle. Geometry always flows from
// the host (or a LayoutFunc) into the tree; the engine only reads it.
func (e *Element) SetRect(r Rect) { e.rect = r }

// Rect returns the element's layout rectangle.
func (e *Element) Rect() Rect { return e.rect }

// =============================================================================
// Tree structure
// =============================================================================

// Parent returns the parent element, or nil for the root and detached nodes.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the child list in document order.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// ChildCount returns the number of children without copying.
func (e *Element) ChildCount() int { return len(e.children) }

// Index returns the element's position among all of its parent's children,
// or -1 if detached.
func (e *Element) Index() int {
	if e.parent == nil {
		return -1
	}
	for i, c := range e.parent.children {
		if c == e {
			return i
		}
	}
	return -1
}

// Contains reports whether other is e or a descendant of e.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Detached reports whether the element is not reachable from its document's
// root.
func (e *Element) Detached() bool {
	n := e
	for n.parent != nil {
		n = n.parent
	}
	return n != e.doc.root
}

// AppendChild appends child as the last child, detaching it from any
// previous parent first.
func (e *Element) AppendChild(child *Element) {
	child.Remove()
	child.parent = e
	e.children = append(e.children, child)
	e.doc.notify(MutationRecord{Kind: MutChildren, Target: child, Parent: e, Index: len(e.children) - 1})
}

// InsertBefore inserts child immediately before ref. A nil ref appends.
// The child is detached from any previous parent first, so moving a node
// within the same parent is a single call.
func (e *Element) InsertBefore(child, ref *Element) error {
	if ref == nil {
		e.AppendChild(child)
		return nil
	}
	if ref.parent != e {
		return ErrNotChild
	}
	child.Remove()
	// Re-locate ref: removing child may have shifted it.
	idx := ref.Index()
	if idx < 0 {
		return ErrNotChild
	}
	child.parent = e
	e.children = append(e.children, nil)
	copy(e.children[idx+1:], e.children[idx:])
	e.children[idx] = child
	e.doc.notify(MutationRecord{Kind: MutChildren, Target: child, Parent: e, Index: idx})
	return nil
}

// RemoveChild detaches child from e.
func (e *Element) RemoveChild(child *Element) error {
	if child.parent != e {
		return ErrNotChild
	}
	child.Remove()
	return nil
}

// Remove detaches the element from its parent. Detached elements keep their
// subtree, listeners and document binding. No-op when already detached.
func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
	e.doc.notify(MutationRecord{Kind: MutChildren, Target: e, Parent: nil, Index: -1, Removed: true})
}

// CloneDeep returns a deep copy of the element: tag, id, attributes,
// classes, styles, hidden flag, rect and children. Event listeners are
// never cloned. The clone is detached.
func (e *Element) CloneDeep() *Element {
	clone := &Element{
		doc:    e.doc,
		tag:    e.tag,
		id:     e.id,
		hidden: e.hidden,
		rect:   e.rect,
	}
	if len(e.attrs) > 0 {
		clone.attrs = make(map[string]string, len(e.attrs))
		for k, v := range e.attrs {
			clone.attrs[k] = v
		}
	}
	if len(e.classes) > 0 {
		clone.classes = make([]string, len(e.classes))
		copy(clone.classes, e.classes)
	}
	if len(e.styles) > 0 {
		clone.styles = make(map[string]string, len(e.styles))
		for k, v := range e.styles {
			clone.styles[k] = v
		}
	}
	for _, c := range e.children {
		cc := c.CloneDeep()
		cc.parent = clone
		clone.children = append(clone.children, cc)
	}
	return clone
}
