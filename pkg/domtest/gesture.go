package domtest

import "github.com/vango-dev/sortable/pkg/dom"

// Gesture drives pointer input through the document's normal dispatch
// path, one phase per call, tracking the pointer's last position so
// Release needs no coordinates.
type Gesture struct {
	doc  *dom.Document
	kind dom.PointerKind
	x, y float64
}

// Gesture returns a fresh mouse gesture driver for the board's document.
func (b *Board) Gesture() *Gesture {
	return &Gesture{doc: b.Doc}
}

// Touch switches the gesture to touch input (delay-on-touch-only paths).
func (g *Gesture) Touch() *Gesture {
	g.kind = dom.PointerTouch
	return g
}

// Press dispatches pointerdown at (x, y).
func (g *Gesture) Press(x, y float64) *Gesture {
	return g.phase(dom.PointerDown, x, y)
}

// MoveTo dispatches pointermove at (x, y).
func (g *Gesture) MoveTo(x, y float64) *Gesture {
	return g.phase(dom.PointerMove, x, y)
}

// MoveBy dispatches pointermove displaced from the last position.
func (g *Gesture) MoveBy(dx, dy float64) *Gesture {
	return g.phase(dom.PointerMove, g.x+dx, g.y+dy)
}

// Release dispatches pointerup at the last position.
func (g *Gesture) Release() *Gesture {
	return g.phase(dom.PointerUp, g.x, g.y)
}

// ReleaseAt dispatches pointerup at (x, y).
func (g *Gesture) ReleaseAt(x, y float64) *Gesture {
	return g.phase(dom.PointerUp, x, y)
}

// Cancel dispatches pointercancel at the last position.
func (g *Gesture) Cancel() *Gesture {
	return g.phase(dom.PointerCancel, g.x, g.y)
}

func (g *Gesture) phase(p dom.PointerPhase, x, y float64) *Gesture {
	g.x, g.y = x, y
	g.doc.DispatchPointer(&dom.PointerEvent{Kind: g.kind, Phase: p, X: x, Y: y})
	return g
}
