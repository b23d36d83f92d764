// Package live mirrors a remote container over WebSocket so the engine can
// drive a real browser list: the client streams its container, geometry and
// pointer input in as JSON frames, the engine runs headless against the
// mirrored tree, and every resulting DOM mutation and lifecycle event goes
// back out as a patch frame.
package live

import (
	"encoding/json"
	"fmt"

	"github.com/vango-dev/sortable/pkg/dom"
)

// Inbound frame types.
const (
	FrameHello   = "hello"
	FrameLayout  = "layout"
	FramePointer = "pointer"
)

// Frame is the envelope for every client-to-server message. Type selects
// which payload field is set.
type Frame struct {
	Type    string   `json:"type"`
	Hello   *Hello   `json:"hello,omitempty"`
	Layout  *Layout  `json:"layout,omitempty"`
	Pointer *Pointer `json:"pointer,omitempty"`
}

// DecodeFrame parses one client message. A frame whose payload field does
// not match its type is rejected.
func DecodeFrame(data []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("frame decode: %w", err)
	}
	switch f.Type {
	case FrameHello:
		if f.Hello == nil {
			return nil, fmt.Errorf("hello frame without payload")
		}
	case FrameLayout:
		if f.Layout == nil {
			return nil, fmt.Errorf("layout frame without payload")
		}
	case FramePointer:
		if f.Pointer == nil {
			return nil, fmt.Errorf("pointer frame without payload")
		}
	}
	return &f, nil
}

// Node describes one remote element.
type Node struct {
	ID      string            `json:"id"`
	Tag     string            `json:"tag,omitempty"`
	Classes []string          `json:"classes,omitempty"`
	Attrs   map[string]string `json:"attrs,omitempty"`
	Styles  map[string]string `json:"styles,omitempty"`
	Rect    *RectSpec         `json:"rect,omitempty"`
}

// Hello announces the container and its current items. It resets any
// previously mirrored tree.
type Hello struct {
	Container Node   `json:"container"`
	Items     []Node `json:"items"`
}

// Layout carries measured rects by node id. The client sends one after
// every real layout pass it observes.
type Layout struct {
	Rects map[string]RectSpec `json:"rects"`
}

// Pointer is a unified pointer event: kind mouse|touch|pen, phase
// down|move|up|cancel.
type Pointer struct {
	Kind    string  `json:"kind,omitempty"`
	Phase   string  `json:"phase"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Buttons int     `json:"buttons,omitempty"`
}

// Event translates the pointer frame into the engine's pointer model.
// Unknown kinds read as mouse; unknown phases are rejected.
func (p *Pointer) Event() (*dom.PointerEvent, error) {
	pe := &dom.PointerEvent{X: p.X, Y: p.Y, Buttons: p.Buttons}
	switch p.Kind {
	case "", "mouse":
		pe.Kind = dom.PointerMouse
	case "touch":
		pe.Kind = dom.PointerTouch
	case "pen":
		pe.Kind = dom.PointerPen
	default:
		pe.Kind = dom.PointerMouse
	}
	switch p.Phase {
	case "down":
		pe.Phase = dom.PointerDown
	case "move":
		pe.Phase = dom.PointerMove
	case "up":
		pe.Phase = dom.PointerUp
	case "cancel":
		pe.Phase = dom.PointerCancel
	default:
		return nil, fmt.Errorf("unknown pointer phase %q", p.Phase)
	}
	return pe, nil
}

// RectSpec is the wire form of a rectangle.
type RectSpec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Rect converts to engine geometry.
func (r RectSpec) Rect() dom.Rect {
	return dom.Rect{X: r.X, Y: r.Y, Width: r.W, Height: r.H}
}

// Patch operations.
const (
	PatchNode  = "node"  // materialize a node the client has not seen
	PatchMove  = "move"  // place a known node at an index under a parent
	PatchClass = "class" // class added/removed
	PatchStyle = "style" // style set/removed
	PatchAttr  = "attr"  // attribute set/removed
	PatchEvent = "event" // lifecycle relay
)

// Patch is one server-to-client instruction. Patches from a single engine
// step travel together in one PatchFrame.
type Patch struct {
	Op      string     `json:"op"`
	ID      string     `json:"id,omitempty"`
	Parent  string     `json:"parent,omitempty"`
	Index   int        `json:"index,omitempty"`
	Name    string     `json:"name,omitempty"`
	Value   string     `json:"value,omitempty"`
	Removed bool       `json:"removed,omitempty"`
	Node    *Node      `json:"node,omitempty"`
	Event   *Lifecycle `json:"event,omitempty"`
}

// Lifecycle is the wire form of an engine lifecycle event.
type Lifecycle struct {
	Type     string  `json:"type"`
	Item     string  `json:"item,omitempty"`
	From     string  `json:"from,omitempty"`
	To       string  `json:"to,omitempty"`
	OldIndex int     `json:"oldIndex"`
	NewIndex int     `json:"newIndex"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
}

// PatchFrame is the server-to-client envelope.
type PatchFrame struct {
	Patches []Patch `json:"patches"`
}
