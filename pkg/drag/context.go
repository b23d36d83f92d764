package drag

import (
	"github.com/vango-dev/sortable/pkg/dom"
	"github.com/vango-dev/sortable/pkg/flip"
)

// Group gates cross-container transfers. Containers exchange items when
// they share a non-empty group name, or when the receiving side's Accept
// function allows the transfer.
type Group struct {
	Name string

	// Accept, when set, overrides name matching for items entering this
	// group's container: item is the dragged element, from the container
	// the session started in, to the candidate receiver.
	Accept func(item, from, to *dom.Element) bool
}

// accepts reports whether a container carrying g takes an item whose
// session started under the from group.
func (g Group) accepts(item *dom.Element, from Group, src, dst *dom.Element) bool {
	if g.Accept != nil {
		return g.Accept(item, src, dst)
	}
	return g.Name != "" && g.Name == from.Name
}

// Target is a registered drop container. The gesture driving the active
// session consults the registry on every pointer move, so containers it
// does not own can receive the item.
type Target struct {
	// Container receives dropped items.
	Container *dom.Element

	// Group gates which sessions may drop here.
	Group Group

	// Draggable is the receiving side's item selector, used to index and
	// position foreign items spliced into Container.
	Draggable string

	// Callbacks are the receiving side's host callbacks; the add
	// notification routes through them.
	Callbacks Callbacks

	// Anim, when set, animates Container's reflow when an item is spliced
	// in or out mid-session.
	Anim *flip.Manager
}

// Context is the drag state two independent containers share: the single
// active session and the drop-target registry used for cross-container hit
// testing. Hosts inject one context into every manager that should
// exchange items; managers on different contexts never see each other.
// A context is confined to its document's scheduler goroutine.
type Context interface {
	// Acquire claims the active-session slot, failing when another
	// session holds it.
	Acquire(s *Session) bool

	// Release frees the slot if s holds it.
	Release(s *Session)

	// Active returns the session holding the slot, or nil.
	Active() *Session

	// Register adds a drop target and returns the func that removes it.
	Register(t *Target) (remove func())

	// TargetAt returns the registered target whose visible container
	// contains the point, preferring the most recently registered.
	TargetAt(x, y float64) *Target
}

// NewContext returns an empty drag context.
func NewContext() Context {
	return &sharedContext{}
}

// DefaultContext is the fallback for hosts that never configure one, so
// two plainly constructed lists on the same page can still exchange items.
var DefaultContext = NewContext()

type sharedContext struct {
	active  *Session
	targets []*Target
}

func (c *sharedContext) Acquire(s *Session) bool {
	if s == nil || (c.active != nil && c.active != s) {
		return false
	}
	c.active = s
	return true
}

func (c *sharedContext) Release(s *Session) {
	if c.active == s {
		c.active = nil
	}
}

func (c *sharedContext) Active() *Session { return c.active }

func (c *sharedContext) Register(t *Target) (remove func()) {
	if t == nil || t.Container == nil {
		return func() {}
	}
	c.targets = append(c.targets, t)
	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		for i, cand := range c.targets {
			if cand == t {
				c.targets = append(c.targets[:i], c.targets[i+1:]...)
				return
			}
		}
	}
}

func (c *sharedContext) TargetAt(x, y float64) *Target {
	for i := len(c.targets) - 1; i >= 0; i-- {
		t := c.targets[i]
		el := t.Container
		if el.Detached() || !el.Visible() {
			continue
		}
		if el.Rect().Contains(x, y) {
			return t
		}
	}
	return nil
}
