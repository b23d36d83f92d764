package live

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/sortable/pkg/event"
)

// dialSession spins up a bridge server and connects one client.
func dialSession(t *testing.T, config Config) *websocket.Conn {
	t.Helper()
	if config.Logger == nil {
		config.Logger = quiet()
	}
	srv := NewServer(config)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil collects patches until one lifecycle patch of the wanted type
// arrives, or the deadline hits.
func readUntil(t *testing.T, conn *websocket.Conn, wantEvent string) []Patch {
	t.Helper()
	var all []Patch
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		var pf PatchFrame
		if err := conn.ReadJSON(&pf); err != nil {
			continue
		}
		all = append(all, pf.Patches...)
		for _, p := range pf.Patches {
			if p.Op == PatchEvent && p.Event.Type == wantEvent {
				return all
			}
		}
	}
	t.Fatalf("no %q lifecycle patch within deadline; got %d patches", wantEvent, len(all))
	return nil
}

func TestSessionDragOverWire(t *testing.T) {
	reg := prometheus.NewRegistry()
	conn := dialSession(t, Config{
		Metrics: NewMetrics(WithRegistry(reg)),
	})

	require.NoError(t, conn.WriteJSON(helloFrame(3)))
	require.NoError(t, conn.WriteJSON(pointerFrame("down", 50, 15)))
	require.NoError(t, conn.WriteJSON(pointerFrame("move", 50, 50)))
	require.NoError(t, conn.WriteJSON(pointerFrame("up", 50, 50)))

	patches := readUntil(t, conn, event.End)

	var moved *Patch
	var update *Lifecycle
	for i := range patches {
		p := &patches[i]
		if p.Op == PatchMove && !p.Removed && p.ID == "a" {
			moved = p
		}
		if p.Op == PatchEvent && p.Event.Type == event.Update {
			update = p.Event
		}
	}
	require.NotNil(t, moved, "reorder should reach the client as a move patch")
	assert.Equal(t, 1, moved.Index)
	require.NotNil(t, update)
	assert.Equal(t, 0, update.OldIndex)
	assert.Equal(t, 1, update.NewIndex)
}

func TestSessionIgnoresMalformedFrames(t *testing.T) {
	conn := dialSession(t, Config{})

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"layout"}`)))
	require.NoError(t, conn.WriteJSON(helloFrame(2)))
	require.NoError(t, conn.WriteJSON(pointerFrame("down", 50, 15)))

	// The session survived the bad frame and still runs the engine.
	patches := readUntil(t, conn, event.Start)
	var sawChoose bool
	for _, p := range patches {
		if p.Op == PatchEvent && p.Event.Type == event.Choose {
			sawChoose = true
		}
	}
	assert.True(t, sawChoose)
}

func TestSessionCloseMidDragIsClean(t *testing.T) {
	conn := dialSession(t, Config{})
	require.NoError(t, conn.WriteJSON(helloFrame(3)))
	require.NoError(t, conn.WriteJSON(pointerFrame("down", 50, 15)))
	readUntil(t, conn, event.Start)

	// Client vanishes mid-drag; the server side must tear down without
	// panicking. Nothing observable remains to assert beyond not hanging.
	conn.Close()
	time.Sleep(50 * time.Millisecond)
}
