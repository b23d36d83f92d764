package sortable

import (
	"reflect"

	"github.com/vango-dev/sortable/pkg/event"
)

// Listener receives relayed lifecycle events. Listeners observe; they
// cannot cancel (cancellation belongs to callbacks and container events).
type Listener func(*event.Event)

type listenerEntry struct {
	fn      Listener
	ptr     uintptr
	once    bool
	removed bool
}

// registry is the manager's typed listener table: per event type, an
// ordered list of persistent and one-shot subscribers.
type registry struct {
	entries map[string][]*listenerEntry
}

func newRegistry() *registry {
	return &registry{entries: make(map[string][]*listenerEntry)}
}

func (r *registry) add(typ string, fn Listener, once bool) (off func()) {
	if fn == nil {
		return func() {}
	}
	entry := &listenerEntry{fn: fn, ptr: reflect.ValueOf(fn).Pointer(), once: once}
	r.entries[typ] = append(r.entries[typ], entry)
	return func() { r.remove(typ, entry) }
}

func (r *registry) remove(typ string, entry *listenerEntry) {
	entry.removed = true
	list := r.entries[typ]
	for i, e := range list {
		if e == entry {
			r.entries[typ] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// removeFn removes every subscription of typ whose function matches fn.
func (r *registry) removeFn(typ string, fn Listener) {
	if fn == nil {
		return
	}
	ptr := reflect.ValueOf(fn).Pointer()
	list := r.entries[typ]
	kept := list[:0]
	for _, e := range list {
		if e.ptr == ptr {
			e.removed = true
			continue
		}
		kept = append(kept, e)
	}
	r.entries[typ] = kept
}

func (r *registry) count(typ string) int { return len(r.entries[typ]) }

// emit fans the payload out to the type's subscribers. The list is
// snapshotted first, so removal during fan-out is safe; one-shot entries
// are unsubscribed before their only invocation.
func (r *registry) emit(typ string, e *event.Event) {
	list := r.entries[typ]
	if len(list) == 0 {
		return
	}
	snapshot := make([]*listenerEntry, len(list))
	copy(snapshot, list)
	for _, entry := range snapshot {
		if entry.removed {
			continue
		}
		if entry.once {
			r.remove(typ, entry)
		}
		entry.fn(e)
	}
}

func (r *registry) clear() {
	for typ, list := range r.entries {
		for _, e := range list {
			e.removed = true
		}
		delete(r.entries, typ)
	}
}

// On subscribes fn to an event type and returns its unsubscribe func.
func (m *Manager) On(typ string, fn Listener) (off func()) {
	return m.reg.add(typ, fn, false)
}

// Once subscribes fn for a single delivery.
func (m *Manager) Once(typ string, fn Listener) (off func()) {
	return m.reg.add(typ, fn, true)
}

// Off removes every subscription of typ registered with fn.
func (m *Manager) Off(typ string, fn Listener) {
	m.reg.removeFn(typ, fn)
}

// HasListeners reports whether any subscriber is registered for typ.
func (m *Manager) HasListeners(typ string) bool {
	return m.reg.count(typ) > 0
}

// ListenerCount returns the number of subscribers registered for typ.
func (m *Manager) ListenerCount(typ string) int {
	return m.reg.count(typ)
}
