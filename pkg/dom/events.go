package dom

// CustomEvent is a cancelable, optionally bubbling event dispatched on an
// element. It mirrors the browser's CustomEvent contract: listeners run in
// registration order on the target, then on each ancestor when Bubbles is
// set; PreventDefault marks the event cancelled without stopping delivery.
type CustomEvent struct {
	Type       string
	Detail     any
	Bubbles    bool
	Cancelable bool

	target           *Element
	currentTarget    *Element
	defaultPrevented bool
	stopped          bool
}

// EventInit carries the optional fields for NewEvent.
type EventInit struct {
	Detail     any
	Bubbles    bool
	Cancelable bool
}

// NewEvent constructs an event ready for DispatchEvent.
func NewEvent(typ string, init EventInit) *CustomEvent {
	return &CustomEvent{
		Type:       typ,
		Detail:     init.Detail,
		Bubbles:    init.Bubbles,
		Cancelable: init.Cancelable,
	}
}

// Target returns the element the event was dispatched on.
func (e *CustomEvent) Target() *Element { return e.target }

// CurrentTarget returns the element whose listeners are currently running.
func (e *CustomEvent) CurrentTarget() *Element { return e.currentTarget }

// PreventDefault marks a cancelable event as cancelled. Delivery continues.
func (e *CustomEvent) PreventDefault() {
	if e.Cancelable {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *CustomEvent) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation prevents the event from bubbling past the current
// element. Remaining listeners on the current element still run.
func (e *CustomEvent) StopPropagation() { e.stopped = true }

type listenerEntry struct {
	fn      func(*CustomEvent)
	removed bool
}

// AddEventListener registers a listener for the event type and returns its
// removal func. Removal during dispatch is safe: the listener list is
// snapshotted before invocation, and removed listeners are skipped.
func (e *Element) AddEventListener(typ string, fn func(*CustomEvent)) (remove func()) {
	if e.listeners == nil {
		e.listeners = make(map[string][]*listenerEntry)
	}
	entry := &listenerEntry{fn: fn}
	e.listeners[typ] = append(e.listeners[typ], entry)
	return func() {
		entry.removed = true
		list := e.listeners[typ]
		for i, l := range list {
			if l == entry {
				e.listeners[typ] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// DispatchEvent delivers the event to the element and, when it bubbles, to
// each ancestor in turn. It returns false if any listener called
// PreventDefault on a cancelable event, matching the browser contract.
func (e *Element) DispatchEvent(ev *CustomEvent) bool {
	ev.target = e
	for node := e; node != nil; node = node.parent {
		ev.currentTarget = node
		node.invokeListeners(ev)
		if ev.stopped || !ev.Bubbles {
			break
		}
	}
	ev.currentTarget = nil
	return !ev.defaultPrevented
}

func (e *Element) invokeListeners(ev *CustomEvent) {
	list := e.listeners[ev.Type]
	if len(list) == 0 {
		return
	}
	snapshot := make([]*listenerEntry, len(list))
	copy(snapshot, list)
	for _, entry := range snapshot {
		if entry.removed {
			continue
		}
		entry.fn(ev)
	}
}
