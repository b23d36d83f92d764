package dom

// Pointer event types dispatched on elements. Hosts normalize mouse, touch
// and pen input into these four; the Detail of each event is *PointerEvent.
const (
	EventPointerDown   = "pointerdown"
	EventPointerMove   = "pointermove"
	EventPointerUp     = "pointerup"
	EventPointerCancel = "pointercancel"
)

// PointerKind identifies the input device class.
type PointerKind uint8

const (
	PointerMouse PointerKind = iota
	PointerTouch
	PointerPen
)

// String returns "mouse", "touch" or "pen".
func (k PointerKind) String() string {
	switch k {
	case PointerTouch:
		return "touch"
	case PointerPen:
		return "pen"
	default:
		return "mouse"
	}
}

// PointerPhase identifies where in the gesture the event sits.
type PointerPhase uint8

const (
	PointerDown PointerPhase = iota
	PointerMove
	PointerUp
	PointerCancel
)

// EventType returns the DOM event type for the phase.
func (p PointerPhase) EventType() string {
	switch p {
	case PointerMove:
		return EventPointerMove
	case PointerUp:
		return EventPointerUp
	case PointerCancel:
		return EventPointerCancel
	default:
		return EventPointerDown
	}
}

// PointerEvent is the unified pointer model. One struct covers mouse, touch
// and pen; the engine never looks at raw input types.
type PointerEvent struct {
	Kind  PointerKind
	Phase PointerPhase
	X     float64
	Y     float64

	// Target is the element under the pointer. DispatchPointer fills it by
	// hit testing when left nil.
	Target *Element

	// Buttons is the pressed-button bitmask (bit 0 = primary).
	Buttons int
}

// DispatchPointer hit-tests the pointer when Target is nil and dispatches
// the corresponding bubbling, cancelable DOM event on it (falling back to
// the root when nothing is hit). It returns the dispatched event's
// not-prevented result.
func (d *Document) DispatchPointer(pe *PointerEvent) bool {
	if pe.Target == nil {
		pe.Target = d.ElementFromPoint(pe.X, pe.Y)
	}
	target := pe.Target
	if target == nil {
		target = d.root
	}
	ev := NewEvent(pe.Phase.EventType(), EventInit{Detail: pe, Bubbles: true, Cancelable: true})
	return target.DispatchEvent(ev)
}

// PointerFrom extracts the *PointerEvent detail from a pointer DOM event,
// or nil when the event carries none.
func PointerFrom(ev *CustomEvent) *PointerEvent {
	pe, _ := ev.Detail.(*PointerEvent)
	return pe
}
