package live

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	sortable "github.com/vango-dev/sortable"
	"github.com/vango-dev/sortable/pkg/dom"
	"github.com/vango-dev/sortable/pkg/drag"
	"github.com/vango-dev/sortable/pkg/event"
)

// Config configures bridge sessions.
type Config struct {
	// Engine options applied to the mirrored container's manager. Logger
	// and Context are overridden per session.
	Engine sortable.Options

	// ReadTimeout bounds the wait for the next client frame (default 60s).
	ReadTimeout time.Duration

	// WriteTimeout bounds each patch frame write (default 10s).
	WriteTimeout time.Duration

	// FrameInterval is the scheduler tick driving animations and the
	// patch pump (default 16ms).
	FrameInterval time.Duration

	Metrics *Metrics
	Tracer  *Tracer
	Logger  *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 60 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.FrameInterval == 0 {
		c.FrameInterval = 16 * time.Millisecond
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Session is one WebSocket connection mirroring one remote container.
// Frames are read on the connection goroutine and applied on the session's
// scheduler goroutine, where the whole engine runs; patches travel back
// under a write lock.
type Session struct {
	ID string

	conn   *websocket.Conn
	config Config
	logger *slog.Logger

	sched   *dom.TickScheduler
	mirror  *Mirror
	manager *sortable.Manager

	mu     sync.Mutex // protects conn writes
	closed atomic.Bool

	dragStart time.Time
	span      *dragSpan
}

// NewSession wraps an upgraded connection. The caller starts it with
// ReadLoop.
func NewSession(conn *websocket.Conn, config Config) *Session {
	config = config.withDefaults()
	id := uuid.NewString()
	logger := config.Logger.With("session", id)
	s := &Session{
		ID:     id,
		conn:   conn,
		config: config,
		logger: logger,
		sched:  dom.NewTickScheduler(config.FrameInterval),
	}
	s.mirror = NewMirror(s.sched, logger)
	config.Metrics.SessionOpened()
	s.sched.Post(s.pumpPatches)
	logger.Info("session opened")
	return s
}

// ReadLoop continuously reads client frames, decodes them and hands them
// to the scheduler goroutine. It blocks until the connection closes.
func (s *Session) ReadLoop() {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				s.config.Metrics.WebSocketError("read")
			}
			return
		}

		frame, err := DecodeFrame(msg)
		if err != nil {
			s.logger.Error("frame decode error", "error", err)
			s.config.Metrics.WebSocketError("decode")
			continue
		}
		s.config.Metrics.FrameReceived(frame.Type)
		s.sched.Post(func() { s.step(frame) })
	}
}

// step applies one frame on the scheduler goroutine and flushes whatever
// patches the engine produced synchronously.
func (s *Session) step(frame *Frame) {
	if err := s.mirror.Apply(frame); err != nil {
		s.logger.Warn("frame skipped", "type", frame.Type, "error", err)
		return
	}
	if s.manager == nil && s.mirror.Container() != nil {
		s.bindManager()
	}
	s.flush()
}

// bindManager attaches the engine to the freshly mirrored container.
func (s *Session) bindManager() {
	opts := s.config.Engine
	opts.Logger = s.logger
	opts.Context = drag.NewContext()
	s.manager = sortable.New(s.mirror.Container(), opts)
	for _, typ := range []string{
		event.Choose, event.Start, event.Move, event.Update, event.Add,
		event.Remove, event.Unchoose, event.End, event.Filter,
	} {
		s.manager.On(typ, s.onLifecycle)
	}
	s.logger.Debug("engine bound", "items", len(s.manager.Items()))
}

// onLifecycle relays an engine event to the client and feeds the session
// telemetry.
func (s *Session) onLifecycle(e *event.Event) {
	switch e.Type {
	case event.Start:
		s.dragStart = time.Now()
		s.span = s.config.Tracer.StartDrag(context.Background(), s.ID, s.mirror.idOf(e.From), e)
	case event.Update:
		s.config.Metrics.ReorderApplied()
		s.span.Reorder(e)
	case event.End:
		s.config.Metrics.DragFinished(time.Since(s.dragStart))
		s.span.End(e, false)
		s.span = nil
	}
	s.mirror.PushEvent(e)
}

// pumpPatches flushes animation-originated patches once per frame. Patches
// from frame application go out synchronously in step; this catches the
// style writes FLIP makes on later frames.
func (s *Session) pumpPatches() {
	if s.closed.Load() {
		return
	}
	s.flush()
	s.sched.RequestFrame(s.pumpPatches)
}

func (s *Session) flush() {
	patches := s.mirror.Drain()
	if len(patches) == 0 || s.closed.Load() {
		return
	}
	s.mu.Lock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	err := s.conn.WriteJSON(PatchFrame{Patches: patches})
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("write error", "error", err)
		s.config.Metrics.WebSocketError("write")
		// flush runs on the scheduler goroutine; Close flushes the
		// scheduler, so it must run elsewhere.
		go s.Close()
		return
	}
	s.config.Metrics.PatchesSent(len(patches))
}

// Close tears the session down: an in-flight drag span ends aborted, the
// engine is cleaned up on its own goroutine, then the scheduler stops and
// the connection closes. Safe to call more than once.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.sched.Post(func() {
		if s.span != nil {
			s.span.End(nil, true)
			s.span = nil
		}
		if s.manager != nil {
			s.manager.Cleanup()
		}
		s.mirror.Close()
	})
	s.sched.Flush()
	s.sched.Stop()
	s.conn.Close()
	s.config.Metrics.SessionClosed()
	s.logger.Info("session closed")
}
