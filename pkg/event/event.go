// Package event implements the engine's notification protocol: a payload
// type shared by container events and host callbacks, constructors that
// apply the protocol's defaults, and a dispatcher that folds the DOM-level
// and callback-level cancellation results into one verdict.
package event

import (
	"fmt"
	"strconv"

	"github.com/vango-dev/sortable/pkg/dom"
)

// Lifecycle event types, dispatched as bubbling cancelable custom events on
// the container and routed to the equally named host callback (start →
// OnStart). move is the cancelable pre-reorder check; filter fires when a
// press is rejected by the filter option.
const (
	Choose   = "choose"
	Start    = "start"
	Move     = "move"
	Update   = "update"
	Add      = "add"
	Remove   = "remove"
	Unchoose = "unchoose"
	End      = "end"
	Filter   = "filter"
)

// Event is the payload carried by every lifecycle event, as the Detail of
// the container's custom event and as the argument to host callbacks.
type Event struct {
	Type string

	// Item is the dragged element. To and From are the containers the item
	// is moving to and from; they differ only for cross-container drags.
	Item *dom.Element
	To   *dom.Element
	From *dom.Element

	// OldIndex and NewIndex are positions among draggable children.
	// Unknown indices are -1.
	OldIndex int
	NewIndex int

	// WillInsertAfter reports, on move events, whether the pending splice
	// lands after Related.
	WillInsertAfter bool

	// Related is the item under the pointer on move events.
	Related *dom.Element

	// PointerX and PointerY are the originating pointer coordinates.
	PointerX float64
	PointerY float64

	// Extra is the open part of the payload. Caller-supplied fields pass
	// through dispatch verbatim.
	Extra map[string]any
}

// Normalize stamps typ onto data and returns it, building a fresh payload
// with unknown (-1) indices when data is nil. Extra is never touched.
func Normalize(typ string, data *Event) *Event {
	if data == nil {
		data = &Event{OldIndex: -1, NewIndex: -1}
	}
	data.Type = typ
	return data
}

// Build constructs the bubbling, cancelable DOM event for a lifecycle
// notification. Item, To and From default to target when unset.
func Build(typ string, data *Event, target *dom.Element) *dom.CustomEvent {
	p := Normalize(typ, data)
	if p.Item == nil {
		p.Item = target
	}
	if p.To == nil {
		p.To = target
	}
	if p.From == nil {
		p.From = target
	}
	return dom.NewEvent(typ, dom.EventInit{Detail: p, Bubbles: true, Cancelable: true})
}

// FromDOM extracts the lifecycle payload from a container event, or nil
// when the event carries none.
func FromDOM(ev *dom.CustomEvent) *Event {
	p, _ := ev.Detail.(*Event)
	return p
}

// Extra accessors. Host code reads open payload fields through these so a
// missing or differently typed value degrades to a zero value instead of a
// type assertion panic.

func (e *Event) ExtraString(key string) string {
	if v, ok := e.Extra[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func (e *Event) ExtraInt(key string) int {
	if v, ok := e.Extra[key]; ok {
		switch val := v.(type) {
		case int:
			return val
		case float64:
			return int(val)
		case string:
			i, _ := strconv.Atoi(val)
			return i
		}
	}
	return 0
}

func (e *Event) ExtraFloat(key string) float64 {
	if v, ok := e.Extra[key]; ok {
		switch val := v.(type) {
		case float64:
			return val
		case int:
			return float64(val)
		case string:
			f, _ := strconv.ParseFloat(val, 64)
			return f
		}
	}
	return 0
}

func (e *Event) ExtraBool(key string) bool {
	if v, ok := e.Extra[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
		b, _ := strconv.ParseBool(fmt.Sprintf("%v", v))
		return b
	}
	return false
}

func (e *Event) ExtraRaw(key string) any {
	return e.Extra[key]
}
