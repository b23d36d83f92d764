package event

import (
	"log/slog"
	"strings"

	"github.com/vango-dev/sortable/pkg/dom"
)

// Dispatcher fans lifecycle notifications out to the container's DOM
// listeners and the host callback, and shields the drag state machine from
// callback bugs: panics are recovered and logged, never propagated.
type Dispatcher struct {
	Logger *slog.Logger
}

// Dispatch builds the lifecycle event, dispatches it on container, then
// invokes callback with the same payload. It returns false when the DOM
// dispatch was prevented or the callback returned false; a panicking
// callback counts as not cancelling. The callback runs even when the DOM
// side already prevented, so hosts observe every notification exactly once.
func (d Dispatcher) Dispatch(container *dom.Element, typ string, data *Event, callback func(*Event) bool) bool {
	if container == nil {
		return true
	}
	p := Normalize(typ, data)
	allowed := container.DispatchEvent(Build(typ, p, container))
	if callback != nil && !d.invoke(typ, p, callback) {
		allowed = false
	}
	return allowed
}

func (d Dispatcher) invoke(typ string, p *Event, callback func(*Event) bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger().Error("event callback panicked", "event", typ, "panic", r)
			ok = true
		}
	}()
	return callback(p)
}

func (d Dispatcher) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// CallbackName maps an event type to its host callback name: start →
// OnStart, update → OnUpdate. Empty input yields empty output.
func CallbackName(typ string) string {
	if typ == "" {
		return ""
	}
	return "On" + strings.ToUpper(typ[:1]) + typ[1:]
}
