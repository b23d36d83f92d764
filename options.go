package sortable

import (
	"log/slog"
	"time"

	"github.com/vango-dev/sortable/pkg/drag"
	"github.com/vango-dev/sortable/pkg/event"
)

// Callbacks are the host's lifecycle hooks, one per event type. Returning
// false from a callback cancels the step when the step is cancelable.
type Callbacks = drag.Callbacks

// Group gates cross-container transfers between managers sharing a drag
// context.
type Group = drag.Group

// DefaultDataIDAttr is the attribute ToArray reads item identity from.
const DefaultDataIDAttr = "data-id"

// Options configure a Manager. The zero value is usable: every direct
// child is draggable, animation is off, transfers are off.
type Options struct {
	// Draggable selects which direct children may be dragged. Empty means
	// every direct child.
	Draggable string

	// Handle restricts where inside a draggable a press may start.
	Handle string

	// Filter rejects presses: a selector matched against the press target
	// and its ancestors, a predicate, or both. Rejected presses fire a
	// filter event and nothing else.
	Filter     string
	FilterFunc event.Predicate

	// Group gates cross-container transfers.
	Group Group

	// Class names applied during a session. Defaults sortable-ghost,
	// sortable-chosen, sortable-drag.
	GhostClass  string
	ChosenClass string
	DragClass   string

	// Animation is the reflow animation duration; 0 disables animation.
	// Easing is written into the transition style verbatim.
	Animation time.Duration
	Easing    string

	// Disabled makes presses inert.
	Disabled bool

	// Delay arms a press for this long before the drag begins;
	// DelayOnTouchOnly restricts it to touch input. Pointer travel past
	// TouchStartThreshold while armed disarms the press.
	Delay               time.Duration
	DelayOnTouchOnly    bool
	TouchStartThreshold float64

	// DataIDAttr is the attribute ToArray and Sort use as item identity.
	// Default data-id.
	DataIDAttr string

	Logger  *slog.Logger
	Context drag.Context

	Callbacks Callbacks
}

func (o Options) dataIDAttr() string {
	if o.DataIDAttr != "" {
		return o.DataIDAttr
	}
	return DefaultDataIDAttr
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// dragOptions lowers the manager options into gesture-instance options,
// with the manager's own hooks installed as the callback layer.
func (o Options) dragOptions(hooks Callbacks) drag.Options {
	return drag.Options{
		Draggable:           o.Draggable,
		Handle:              o.Handle,
		Filter:              o.Filter,
		FilterFunc:          o.FilterFunc,
		Group:               o.Group,
		GhostClass:          o.GhostClass,
		ChosenClass:         o.ChosenClass,
		DragClass:           o.DragClass,
		Animation:           o.Animation,
		Easing:              o.Easing,
		Disabled:            o.Disabled,
		Delay:               o.Delay,
		DelayOnTouchOnly:    o.DelayOnTouchOnly,
		TouchStartThreshold: o.TouchStartThreshold,
		Logger:              o.Logger,
		Context:             o.Context,
		Callbacks:           hooks,
	}
}
