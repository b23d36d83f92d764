package drag

import (
	"github.com/google/uuid"

	"github.com/vango-dev/sortable/pkg/dom"
	"github.com/vango-dev/sortable/pkg/event"
	"github.com/vango-dev/sortable/pkg/query"
)

// Session is one drag gesture from qualifying press to settle. The
// context's active slot holds it, so independent containers can tell whose
// item is in flight.
type Session struct {
	// ID tags the session in logs and in every event payload's Extra.
	ID string

	// Item is the dragged element, Ghost its floating clone.
	Item  *dom.Element
	Ghost *dom.Element

	// From is the container the session started in. To is the container
	// currently holding the item; it changes when the item crosses into
	// another target.
	From *dom.Element
	To   *dom.Element

	// OldIndex is the item's index at press time. NewIndex tracks the
	// current index and becomes final at release.
	OldIndex int
	NewIndex int

	// StartX, StartY are the press coordinates.
	StartX float64
	StartY float64

	lastX float64
	lastY float64
	grabX float64 // pointer offset into the item at press time
	grabY float64
	moved bool

	// announced is the last index in From that an update event reported,
	// so a release only announces a net change once.
	announced int

	dirs    map[*dom.Element]dom.Direction
	targets map[*dom.Element]*Target
}

func newSession(item, container *dom.Element, index int, pe *dom.PointerEvent) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		Item:      item,
		From:      container,
		To:        container,
		OldIndex:  index,
		NewIndex:  index,
		announced: index,
		StartX:    pe.X,
		StartY:    pe.Y,
		lastX:     pe.X,
		lastY:     pe.Y,
		dirs:      map[*dom.Element]dom.Direction{},
		targets:   map[*dom.Element]*Target{},
	}
	r := item.Rect()
	s.grabX = pe.X - r.X
	s.grabY = pe.Y - r.Y
	return s
}

// direction returns the container's primary axis, computed once per
// container per session.
func (s *Session) direction(container *dom.Element, selector string) dom.Direction {
	if d, ok := s.dirs[container]; ok {
		return d
	}
	d := query.LayoutDirection(container, selector)
	s.dirs[container] = d
	return d
}

// target returns the drop target recorded for a container the session has
// touched, or nil for containers it never entered.
func (s *Session) target(container *dom.Element) *Target {
	return s.targets[container]
}

// selectorFor returns the draggable selector of a touched container.
func (s *Session) selectorFor(container *dom.Element) string {
	if t := s.targets[container]; t != nil {
		return t.Draggable
	}
	return ""
}

// payload builds the common event fields at the session's current state.
func (s *Session) payload(x, y float64) *event.Event {
	return &event.Event{
		Item:     s.Item,
		From:     s.From,
		To:       s.To,
		OldIndex: s.OldIndex,
		NewIndex: s.NewIndex,
		PointerX: x,
		PointerY: y,
		Extra:    s.extra(),
	}
}

// extra returns the open payload fields every session event carries.
func (s *Session) extra() map[string]any {
	return map[string]any{"sessionId": s.ID}
}
