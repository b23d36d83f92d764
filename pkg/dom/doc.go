// Package dom provides the element substrate the sortable engine operates on.
//
// The engine is headless: instead of a browser DOM it mutates an in-process
// element tree that a host binds to whatever it actually renders — an
// in-memory document in tests and simulations, or a mirror of a real browser
// container synchronized over a transport (see pkg/live).
//
// # Core Types
//
// Element is a node with a tag, attributes, classes, inline styles, a layout
// rectangle and children. Document owns the tree and the frame Scheduler.
// CustomEvent is a bubbling, cancelable event dispatched on elements.
// PointerEvent is the unified pointer model: hosts normalize mouse, touch and
// pen input into it and deliver it through pointerdown/pointermove/pointerup
// events.
//
// # Scheduling
//
// All engine work runs synchronously inside scheduler callbacks. The
// ManualScheduler is deterministic (tests step frames and advance time by
// hand); the TickScheduler serializes real-time callbacks on one goroutine.
//
// # Geometry
//
// Layout flows from the host into the tree: either a LayoutFunc recomputes
// rects on Relayout (the stock Flow layout covers plain lists), or the host
// writes measured rects directly (the live bridge does this from client
// layout frames).
package dom
