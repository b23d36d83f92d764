package domtest

import (
	"testing"

	"github.com/vango-dev/sortable/pkg/dom"
	"github.com/vango-dev/sortable/pkg/event"
)

// ExpectOrder asserts that a container's children carry exactly these ids,
// in document order.
//
// Example:
//
//	domtest.ExpectOrder(t, b.List, "item-2", "item-1", "item-3")
func ExpectOrder(t *testing.T, container *dom.Element, want ...string) {
	t.Helper()
	got := IDs(container)
	if len(got) != len(want) {
		t.Errorf("child order = %v, want %v", got, want)
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("child order = %v, want %v", got, want)
			return
		}
	}
}

// ExpectClass asserts that el carries the class.
func ExpectClass(t *testing.T, el *dom.Element, class string) {
	t.Helper()
	if !el.HasClass(class) {
		t.Errorf("element %q classes = %v, want %q present", el.ID(), el.Classes(), class)
	}
}

// ExpectNoClass asserts that el does not carry the class.
func ExpectNoClass(t *testing.T, el *dom.Element, class string) {
	t.Helper()
	if el.HasClass(class) {
		t.Errorf("element %q classes = %v, want %q absent", el.ID(), el.Classes(), class)
	}
}

// ExpectStyle asserts an inline style value.
func ExpectStyle(t *testing.T, el *dom.Element, name, want string) {
	t.Helper()
	if got := el.Style(name); got != want {
		t.Errorf("style %q = %q, want %q", name, got, want)
	}
}

// ExpectNoGhost asserts that no ghost element is mounted anywhere in the
// document.
func ExpectNoGhost(t *testing.T, doc *dom.Document, ghostClass string) {
	t.Helper()
	if ghostClass == "" {
		ghostClass = "sortable-ghost"
	}
	if g := doc.QuerySelector("." + ghostClass); g != nil {
		t.Errorf("found mounted ghost element %q, want none", g.ID())
	}
}

// Recorder captures lifecycle events dispatched on a container, in order.
type Recorder struct {
	types  []string
	events []*event.Event
	stops  []func()
}

// Record subscribes a recorder to every lifecycle event type on container.
func Record(container *dom.Element) *Recorder {
	r := &Recorder{}
	for _, typ := range []string{
		event.Choose, event.Start, event.Move, event.Update, event.Add,
		event.Remove, event.Unchoose, event.End, event.Filter,
	} {
		r.stops = append(r.stops, container.AddEventListener(typ, func(ev *dom.CustomEvent) {
			r.types = append(r.types, ev.Type)
			r.events = append(r.events, event.FromDOM(ev))
		}))
	}
	return r
}

// Types returns the recorded event types in dispatch order.
func (r *Recorder) Types() []string { return r.types }

// Events returns the recorded payloads in dispatch order.
func (r *Recorder) Events() []*event.Event { return r.events }

// Count returns how many events of the type were recorded.
func (r *Recorder) Count(typ string) int {
	n := 0
	for _, got := range r.types {
		if got == typ {
			n++
		}
	}
	return n
}

// First returns the first recorded payload of the type, or nil.
func (r *Recorder) First(typ string) *event.Event {
	for i, got := range r.types {
		if got == typ {
			return r.events[i]
		}
	}
	return nil
}

// Last returns the last recorded payload of the type, or nil.
func (r *Recorder) Last(typ string) *event.Event {
	for i := len(r.types) - 1; i >= 0; i-- {
		if r.types[i] == typ {
			return r.events[i]
		}
	}
	return nil
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.types = r.types[:0]
	r.events = r.events[:0]
}

// Stop unsubscribes the recorder.
func (r *Recorder) Stop() {
	for _, stop := range r.stops {
		stop()
	}
	r.stops = nil
}

// ExpectEvents asserts the exact sequence of recorded event types.
func ExpectEvents(t *testing.T, r *Recorder, want ...string) {
	t.Helper()
	got := r.Types()
	if len(got) != len(want) {
		t.Errorf("event sequence = %v, want %v", got, want)
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event sequence = %v, want %v", got, want)
			return
		}
	}
}
