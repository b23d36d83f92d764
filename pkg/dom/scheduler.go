package dom

import (
	"sync"
	"time"
)

// Scheduler abstracts frame and timer scheduling so the engine runs the same
// against a virtual clock in tests and wall time in live mirrors. Both
// methods return a cancel func; canceling after the callback ran is a no-op.
type Scheduler interface {
	// RequestFrame queues fn for the next animation frame.
	RequestFrame(fn func()) (cancel func())

	// After queues fn to run once d has elapsed.
	After(d time.Duration, fn func()) (cancel func())
}

// Flusher is implemented by schedulers that can drain pending work
// synchronously. Managers use it to realize WaitForUpdate.
type Flusher interface {
	Flush()
}

type scheduledTask struct {
	fn       func()
	canceled bool
}

// ManualScheduler is a deterministic scheduler driven explicitly by the
// test or host: Step runs one frame batch, Advance moves the virtual clock.
// It is not safe for concurrent use; callers drive it from one goroutine.
type ManualScheduler struct {
	now    time.Time
	frames []*scheduledTask
	timers []*manualTimer
	seq    int
}

type manualTimer struct {
	due      time.Time
	seq      int
	fn       func()
	canceled bool
}

// NewManualScheduler creates a scheduler with its clock at the Unix epoch.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{now: time.Unix(0, 0).UTC()}
}

// Now returns the current virtual time.
func (s *ManualScheduler) Now() time.Time { return s.now }

// RequestFrame queues fn for the next Step.
func (s *ManualScheduler) RequestFrame(fn func()) (cancel func()) {
	t := &scheduledTask{fn: fn}
	s.frames = append(s.frames, t)
	return func() { t.canceled = true }
}

// After queues fn to fire when the virtual clock passes d.
func (s *ManualScheduler) After(d time.Duration, fn func()) (cancel func()) {
	s.seq++
	t := &manualTimer{due: s.now.Add(d), seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.canceled = true }
}

// Step runs exactly one frame batch. Frames requested while the batch runs
// land in the next one, which is what gives two-phase animations their two
// distinct frames.
func (s *ManualScheduler) Step() {
	batch := s.frames
	s.frames = nil
	for _, t := range batch {
		if !t.canceled {
			t.fn()
		}
	}
}

// Advance moves the virtual clock forward by d, firing due timers in due
// order (insertion order on ties). Timers scheduled by fired callbacks fire
// too when they fall within the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now.Add(d)
	for {
		t := s.popDue(target)
		if t == nil {
			break
		}
		s.now = t.due
		if !t.canceled {
			t.fn()
		}
	}
	s.now = target
}

func (s *ManualScheduler) popDue(target time.Time) *manualTimer {
	best := -1
	for i, t := range s.timers {
		if t.due.After(target) {
			continue
		}
		if best == -1 || t.due.Before(s.timers[best].due) ||
			(t.due.Equal(s.timers[best].due) && t.seq < s.timers[best].seq) {
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	t := s.timers[best]
	s.timers = append(s.timers[:best], s.timers[best+1:]...)
	return t
}

// RunUntilIdle alternates frame batches and timer firings until neither is
// pending. The clock ends at the last fired timer's due time.
func (s *ManualScheduler) RunUntilIdle() {
	for {
		if len(s.frames) > 0 {
			s.Step()
			continue
		}
		t := s.popDue(s.farthestDue())
		if t == nil {
			return
		}
		s.now = t.due
		if !t.canceled {
			t.fn()
		}
	}
}

func (s *ManualScheduler) farthestDue() time.Time {
	far := s.now
	for _, t := range s.timers {
		if t.due.After(far) {
			far = t.due
		}
	}
	return far
}

// Pending reports whether any frame or timer is queued.
func (s *ManualScheduler) Pending() bool {
	for _, t := range s.frames {
		if !t.canceled {
			return true
		}
	}
	for _, t := range s.timers {
		if !t.canceled {
			return true
		}
	}
	return false
}

// Flush drains all pending frames and timers.
func (s *ManualScheduler) Flush() { s.RunUntilIdle() }

// TickScheduler runs frames on a wall-clock ticker inside a single loop
// goroutine. Everything it executes (frames, timers, posted funcs) runs on
// that goroutine, which is the serialization point live sessions rely on.
type TickScheduler struct {
	interval time.Duration

	mu      sync.Mutex
	frames  []*scheduledTask
	posted  []func()
	stopped bool

	wake chan struct{}
	done chan struct{}
}

// NewTickScheduler starts the loop goroutine. A non-positive interval
// defaults to 16ms, roughly 60 frames per second.
func NewTickScheduler(interval time.Duration) *TickScheduler {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	s := &TickScheduler{
		interval: interval,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *TickScheduler) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
			s.runPosted()
		case <-ticker.C:
			s.runPosted()
			s.runFrames()
		}
	}
}

func (s *TickScheduler) runPosted() {
	s.mu.Lock()
	batch := s.posted
	s.posted = nil
	s.mu.Unlock()
	for _, fn := range batch {
		fn()
	}
}

func (s *TickScheduler) runFrames() {
	s.mu.Lock()
	batch := s.frames
	s.frames = nil
	s.mu.Unlock()
	for _, t := range batch {
		s.mu.Lock()
		skip := t.canceled
		s.mu.Unlock()
		if !skip {
			t.fn()
		}
	}
}

// RequestFrame queues fn for the next tick.
func (s *TickScheduler) RequestFrame(fn func()) (cancel func()) {
	t := &scheduledTask{fn: fn}
	s.mu.Lock()
	if !s.stopped {
		s.frames = append(s.frames, t)
	}
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		t.canceled = true
		s.mu.Unlock()
	}
}

// After schedules fn on the loop goroutine once d has elapsed.
func (s *TickScheduler) After(d time.Duration, fn func()) (cancel func()) {
	t := &scheduledTask{fn: fn}
	timer := time.AfterFunc(d, func() {
		s.Post(func() {
			s.mu.Lock()
			skip := t.canceled
			s.mu.Unlock()
			if !skip {
				fn()
			}
		})
	})
	return func() {
		timer.Stop()
		s.mu.Lock()
		t.canceled = true
		s.mu.Unlock()
	}
}

// Post runs fn on the loop goroutine ahead of the next frame batch. Calls
// after Stop are dropped.
func (s *TickScheduler) Post(fn func()) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.posted = append(s.posted, fn)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every func posted before it has run.
func (s *TickScheduler) Flush() {
	ch := make(chan struct{})
	s.Post(func() { close(ch) })
	select {
	case <-ch:
	case <-s.done:
	}
}

// Stop terminates the loop goroutine. Pending frames and posted funcs are
// dropped; in-flight time.AfterFunc callbacks become no-ops.
func (s *TickScheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()
	close(s.done)
}

var (
	_ Scheduler = (*ManualScheduler)(nil)
	_ Scheduler = (*TickScheduler)(nil)
	_ Flusher   = (*ManualScheduler)(nil)
	_ Flusher   = (*TickScheduler)(nil)
)
