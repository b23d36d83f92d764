package sortable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/sortable/pkg/domtest"
	"github.com/vango-dev/sortable/pkg/event"
)

func TestOnRelaysEveryLifecycleEvent(t *testing.T) {
	b := domtest.NewBoard().Build()
	m := New(b.List, baseOptions())
	defer m.Cleanup()

	var got []string
	for _, typ := range []string{event.Start, event.Update, event.End} {
		m.On(typ, func(e *event.Event) { got = append(got, e.Type) })
	}

	b.Gesture().Press(50, 15).MoveTo(50, 50).Release()
	assert.Equal(t, []string{event.Start, event.Update, event.End}, got)
}

func TestOnceFiresExactlyOnce(t *testing.T) {
	b := domtest.NewBoard().Build()
	m := New(b.List, baseOptions())
	defer m.Cleanup()

	ends := 0
	m.Once(event.End, func(*event.Event) { ends++ })
	require.True(t, m.HasListeners(event.End))

	b.Gesture().Press(50, 15).Release()
	b.Gesture().Press(50, 15).Release()

	assert.Equal(t, 1, ends)
	assert.False(t, m.HasListeners(event.End))
}

func TestOffRemovesBySameFunction(t *testing.T) {
	b := domtest.NewBoard().Build()
	m := New(b.List, baseOptions())
	defer m.Cleanup()

	calls := 0
	fn := func(*event.Event) { calls++ }
	m.On(event.Start, fn)
	m.On(event.Start, fn)
	assert.Equal(t, 2, m.ListenerCount(event.Start))

	m.Off(event.Start, fn)
	assert.Equal(t, 0, m.ListenerCount(event.Start))

	b.Gesture().Press(50, 15).Release()
	assert.Equal(t, 0, calls)
}

func TestRemovalDuringFanOutIsSafe(t *testing.T) {
	b := domtest.NewBoard().Build()
	m := New(b.List, baseOptions())
	defer m.Cleanup()

	var order []string
	var offSecond func()
	m.On(event.Start, func(*event.Event) {
		order = append(order, "first")
		offSecond()
	})
	offSecond = m.On(event.Start, func(*event.Event) {
		order = append(order, "second")
	})
	m.On(event.Start, func(*event.Event) {
		order = append(order, "third")
	})

	b.Gesture().Press(50, 15).Release()

	// The snapshot keeps iteration stable, but the removed subscriber is
	// skipped.
	assert.Equal(t, []string{"first", "third"}, order)
	assert.Equal(t, 2, m.ListenerCount(event.Start))
}

func TestListenersRunAfterHostCallback(t *testing.T) {
	b := domtest.NewBoard().Build()
	var order []string
	opts := baseOptions()
	opts.Callbacks.OnStart = func(*event.Event) bool {
		order = append(order, "callback")
		return true
	}
	m := New(b.List, opts)
	defer m.Cleanup()
	m.On(event.Start, func(*event.Event) { order = append(order, "listener") })

	b.Gesture().Press(50, 15).Release()
	assert.Equal(t, []string{"callback", "listener"}, order)
}

func TestCleanupClearsRegistry(t *testing.T) {
	b := domtest.NewBoard().Build()
	m := New(b.List, baseOptions())
	m.On(event.Start, func(*event.Event) {})
	m.On(event.End, func(*event.Event) {})

	m.Cleanup()
	assert.False(t, m.HasListeners(event.Start))
	assert.False(t, m.HasListeners(event.End))
}
