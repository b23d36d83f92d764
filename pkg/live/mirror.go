package live

import (
	"fmt"
	"log/slog"

	"github.com/vango-dev/sortable/pkg/dom"
	"github.com/vango-dev/sortable/pkg/event"
)

// Mirror maintains the headless double of one remote container. Client
// frames mutate the mirrored tree with observers suspended, so only
// engine-originated mutations turn into patches (echo suppression); the
// engine's own splices, class flips and style writes are observed and
// coalesced into the pending patch list until Drain.
//
// Geometry between client layout frames is slot-based: the rects the
// client last reported for the container's items become slots, and a
// reorder reassigns those slots to the children in their new document
// order. FLIP measurement therefore works synchronously; the next layout
// frame re-trues everything.
type Mirror struct {
	doc       *dom.Document
	container *dom.Element
	logger    *slog.Logger

	known   map[*dom.Element]string
	byID    map[string]*dom.Element
	nextID  int
	slots   []dom.Rect
	pending []Patch

	stopObserve func()
}

// NewMirror creates an empty mirror on its own document, driven by sched.
func NewMirror(sched dom.Scheduler, logger *slog.Logger) *Mirror {
	if logger == nil {
		logger = slog.Default()
	}
	doc := dom.NewDocument()
	doc.SetScheduler(sched)
	m := &Mirror{
		doc:    doc,
		logger: logger,
		known:  make(map[*dom.Element]string),
		byID:   make(map[string]*dom.Element),
	}
	doc.SetLayoutFunc(m.slotLayout)
	m.stopObserve = doc.Observe(m.onMutation)
	return m
}

// Document returns the mirrored document.
func (m *Mirror) Document() *dom.Document { return m.doc }

// Container returns the mirrored container, or nil before the first hello.
func (m *Mirror) Container() *dom.Element { return m.container }

// Apply folds one client frame into the mirror. It must run on the
// document's scheduler goroutine.
func (m *Mirror) Apply(f *Frame) error {
	switch f.Type {
	case FrameHello:
		m.applyHello(f.Hello)
		return nil
	case FrameLayout:
		m.applyLayout(f.Layout)
		return nil
	case FramePointer:
		return m.applyPointer(f.Pointer)
	default:
		return fmt.Errorf("unknown frame type %q", f.Type)
	}
}

// Drain returns the patches accumulated since the last call and clears
// the pending list.
func (m *Mirror) Drain() []Patch {
	out := m.pending
	m.pending = nil
	return out
}

// PushEvent appends a lifecycle relay patch so the client can react to
// engine events in order with the mutations that caused them.
func (m *Mirror) PushEvent(e *event.Event) {
	m.pending = append(m.pending, Patch{Op: PatchEvent, Event: &Lifecycle{
		Type:     e.Type,
		Item:     m.idOf(e.Item),
		From:     m.idOf(e.From),
		To:       m.idOf(e.To),
		OldIndex: e.OldIndex,
		NewIndex: e.NewIndex,
		X:        e.PointerX,
		Y:        e.PointerY,
	}})
}

// Close stops observing. Applied frames afterwards would rebuild patches,
// so callers drop the mirror entirely.
func (m *Mirror) Close() {
	if m.stopObserve != nil {
		m.stopObserve()
		m.stopObserve = nil
	}
}

func (m *Mirror) applyHello(h *Hello) {
	m.doc.SuspendObservers(func() {
		if m.container != nil {
			m.container.Remove()
			m.known = make(map[*dom.Element]string)
			m.byID = make(map[string]*dom.Element)
			m.slots = nil
		}
		m.container = m.materialize(h.Container)
		m.doc.Root().AppendChild(m.container)
		for _, spec := range h.Items {
			m.container.AppendChild(m.materialize(spec))
		}
	})
	m.captureSlots()
	m.logger.Debug("container mirrored", "id", h.Container.ID, "items", len(h.Items))
}

func (m *Mirror) applyLayout(l *Layout) {
	m.doc.SuspendObservers(func() {
		for id, spec := range l.Rects {
			if el, ok := m.byID[id]; ok {
				el.SetRect(spec.Rect())
			} else {
				m.logger.Debug("layout for unknown node", "id", id)
			}
		}
	})
	m.captureSlots()
}

func (m *Mirror) applyPointer(p *Pointer) error {
	pe, err := p.Event()
	if err != nil {
		return err
	}
	m.doc.DispatchPointer(pe)
	return nil
}

// materialize builds an element from its wire spec and registers its id.
func (m *Mirror) materialize(spec Node) *dom.Element {
	tag := spec.Tag
	if tag == "" {
		tag = "div"
	}
	el := m.doc.CreateElement(tag)
	el.SetID(spec.ID)
	for _, c := range spec.Classes {
		el.AddClass(c)
	}
	for k, v := range spec.Attrs {
		el.SetAttr(k, v)
	}
	for k, v := range spec.Styles {
		el.SetStyle(k, v)
	}
	if spec.Rect != nil {
		el.SetRect(spec.Rect.Rect())
	}
	m.register(el, spec.ID)
	return el
}

func (m *Mirror) register(el *dom.Element, id string) {
	m.known[el] = id
	if id != "" {
		m.byID[id] = el
	}
}

// idOf returns the wire id for an element, minting one for elements the
// engine created locally (the ghost).
func (m *Mirror) idOf(el *dom.Element) string {
	if el == nil {
		return ""
	}
	if el == m.doc.Root() {
		return ""
	}
	if id, ok := m.known[el]; ok {
		return id
	}
	m.nextID++
	id := fmt.Sprintf("sortable-n%d", m.nextID)
	m.doc.SuspendObservers(func() { el.SetID(id) })
	m.register(el, id)
	return id
}

// captureSlots records the current item rects as the slot sequence the
// slot layout reassigns after reorders.
func (m *Mirror) captureSlots() {
	m.slots = m.slots[:0]
	if m.container == nil {
		return
	}
	for _, c := range m.container.Children() {
		if !c.Visible() || c.Style("position") == "absolute" {
			continue
		}
		m.slots = append(m.slots, c.Rect())
	}
}

// slotLayout assigns the recorded slots to the container's flow children
// in document order. Children beyond the slot count keep their rects.
func (m *Mirror) slotLayout(*dom.Element) {
	if m.container == nil {
		return
	}
	i := 0
	for _, c := range m.container.Children() {
		if !c.Visible() || c.Style("position") == "absolute" {
			continue
		}
		if i < len(m.slots) {
			c.SetRect(m.slots[i])
		}
		i++
	}
}

// spec captures an element's wire description for a node patch.
func (m *Mirror) spec(el *dom.Element) *Node {
	r := el.Rect()
	return &Node{
		ID:      el.ID(),
		Tag:     el.Tag(),
		Classes: el.Classes(),
		Attrs:   attrsOf(el),
		Styles:  el.Styles(),
		Rect:    &RectSpec{X: r.X, Y: r.Y, W: r.Width, H: r.Height},
	}
}

func attrsOf(el *dom.Element) map[string]string {
	// Attr has no enumeration on purpose; the wire spec only needs the
	// identity attribute the engine itself reads.
	out := map[string]string{}
	if v := el.Attr("data-id"); v != "" {
		out["data-id"] = v
	}
	return out
}

// onMutation converts an engine-originated mutation into a patch. Client
// frames are applied with observers suspended and never reach here.
func (m *Mirror) onMutation(rec dom.MutationRecord) {
	switch rec.Kind {
	case dom.MutChildren:
		if rec.Removed {
			m.pending = append(m.pending, Patch{Op: PatchMove, ID: m.idOf(rec.Target), Removed: true})
			return
		}
		_, seen := m.known[rec.Target]
		id := m.idOf(rec.Target)
		if !seen {
			m.pending = append(m.pending, Patch{
				Op:     PatchNode,
				ID:     id,
				Parent: m.idOf(rec.Parent),
				Index:  rec.Index,
				Node:   m.spec(rec.Target),
			})
			return
		}
		m.pending = append(m.pending, Patch{
			Op:     PatchMove,
			ID:     id,
			Parent: m.idOf(rec.Parent),
			Index:  rec.Index,
		})
	case dom.MutClass:
		m.pending = append(m.pending, Patch{
			Op: PatchClass, ID: m.idOf(rec.Target), Name: rec.Name, Removed: rec.Removed,
		})
	case dom.MutStyle:
		m.pending = append(m.pending, Patch{
			Op: PatchStyle, ID: m.idOf(rec.Target), Name: rec.Name, Value: rec.Value, Removed: rec.Removed,
		})
	case dom.MutAttr:
		m.pending = append(m.pending, Patch{
			Op: PatchAttr, ID: m.idOf(rec.Target), Name: rec.Name, Value: rec.Value, Removed: rec.Removed,
		})
	}
}
