// Package sortable is a headless drag-to-reorder engine.
//
// A Manager binds to a container element in a dom.Document, watches
// pointer input, and turns drags into animated list reorders. The engine
// is renderer-agnostic: it mutates the element tree, plays FLIP transform
// animations through inline styles, and reports everything through
// cancelable container events and typed host callbacks. Hosts range from
// in-memory documents in tests to browser mirrors synchronized over
// WebSocket (pkg/live).
//
// Usage:
//
//	m := sortable.New(list, sortable.Options{
//	    Draggable: ".item",
//	    Animation: 150 * time.Millisecond,
//	    Callbacks: sortable.Callbacks{
//	        OnEnd: func(e *event.Event) bool {
//	            log.Printf("moved %s: %d -> %d", e.Item.ID(), e.OldIndex, e.NewIndex)
//	            return true
//	        },
//	    },
//	})
//	defer m.Cleanup()
//
// Containers may also be bound by selector or through a late resolver for
// hosts whose tree is still mounting; see NewFromSelector and NewDeferred.
package sortable
