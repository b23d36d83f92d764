package drag

import (
	"log/slog"
	"time"

	"github.com/vango-dev/sortable/pkg/event"
	"github.com/vango-dev/sortable/pkg/query"
)

// Class names applied while a session is live, unless overridden.
const (
	DefaultChosenClass = "sortable-chosen"
	DefaultDragClass   = "sortable-drag"
)

// Callbacks are the host's lifecycle hooks. Each receives the same payload
// the container event carries; returning false cancels the step when the
// step is cancelable (move), and is otherwise ignored.
type Callbacks struct {
	OnChoose   func(*event.Event) bool
	OnStart    func(*event.Event) bool
	OnMove     func(*event.Event) bool
	OnUpdate   func(*event.Event) bool
	OnAdd      func(*event.Event) bool
	OnRemove   func(*event.Event) bool
	OnUnchoose func(*event.Event) bool
	OnEnd      func(*event.Event) bool
	OnFilter   func(*event.Event) bool
}

// For routes an event type to its callback (start → OnStart). Unknown
// types route to nil.
func (c Callbacks) For(typ string) func(*event.Event) bool {
	switch event.CallbackName(typ) {
	case "OnChoose":
		return c.OnChoose
	case "OnStart":
		return c.OnStart
	case "OnMove":
		return c.OnMove
	case "OnUpdate":
		return c.OnUpdate
	case "OnAdd":
		return c.OnAdd
	case "OnRemove":
		return c.OnRemove
	case "OnUnchoose":
		return c.OnUnchoose
	case "OnEnd":
		return c.OnEnd
	case "OnFilter":
		return c.OnFilter
	}
	return nil
}

// Options configure one gesture instance. The zero value is usable: every
// direct child is draggable, cross-container transfers are off, animation
// is off.
type Options struct {
	// Draggable selects which direct children may be dragged. Empty means
	// every direct child.
	Draggable string

	// Handle restricts where inside a draggable a press may start.
	Handle string

	// Filter rejects presses: a selector matching the press target or one
	// of its ancestors, a predicate, or both. A rejected press fires a
	// filter event and nothing else.
	Filter     string
	FilterFunc event.Predicate

	// Group gates cross-container transfers.
	Group Group

	// Class names applied during a session.
	GhostClass  string
	ChosenClass string
	DragClass   string

	// Animation is the reflow animation duration; 0 disables animation.
	// Easing passes through to the transition verbatim.
	Animation time.Duration
	Easing    string

	// Disabled makes presses inert.
	Disabled bool

	// Delay arms a press for this long before the drag begins.
	// DelayOnTouchOnly restricts the delay to touch input. Pointer travel
	// past TouchStartThreshold while armed disarms the press; zero means
	// one device pixel.
	Delay               time.Duration
	DelayOnTouchOnly    bool
	TouchStartThreshold float64

	Logger  *slog.Logger
	Context Context

	Callbacks Callbacks
}

func (o Options) ghostClass() string {
	if o.GhostClass != "" {
		return o.GhostClass
	}
	return query.DefaultGhostClass
}

func (o Options) chosenClass() string {
	if o.ChosenClass != "" {
		return o.ChosenClass
	}
	return DefaultChosenClass
}

func (o Options) dragClass() string {
	if o.DragClass != "" {
		return o.DragClass
	}
	return DefaultDragClass
}

func (o Options) threshold() float64 {
	if o.TouchStartThreshold > 0 {
		return o.TouchStartThreshold
	}
	return 1
}

func (o Options) context() Context {
	if o.Context != nil {
		return o.Context
	}
	return DefaultContext
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
