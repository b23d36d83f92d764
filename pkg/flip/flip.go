// Package flip animates list reflows with the FLIP technique: capture
// every item's rectangle before a reorder, re-measure after, then give each
// moved element a zero-duration inverse transform and let a CSS transition
// play it back to its true position. The DOM mutation itself stays instant;
// only the paint glides.
package flip

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/vango-dev/sortable/pkg/dom"
)

// Element-scoped animation events. start is dispatched before the inverse
// transform is applied; preventing it skips that element's transition
// entirely. end fires after the inline styles are stripped, cancel when an
// in-flight animation is torn down early.
const (
	EventAnimationStart  = "sortable:animation:start"
	EventAnimationEnd    = "sortable:animation:end"
	EventAnimationCancel = "sortable:animation:cancel"

	// EventTransitionEnd is how a host reports that an element's CSS
	// transition finished. Headless documents rely on the duration
	// fallback timer instead.
	EventTransitionEnd = "transitionend"
)

// Motion is the Detail payload of every animation event.
type Motion struct {
	From     dom.Rect
	To       dom.Rect
	Duration time.Duration
}

// Options configures a Manager.
type Options struct {
	// Duration of the play transition. Zero disables animation: passes
	// complete synchronously without a single re-measurement.
	Duration time.Duration

	// Easing is written verbatim into the transition style (CSS easing
	// names or cubic-bezier). Empty means the CSS default.
	Easing string

	Logger *slog.Logger
}

type capture struct {
	el   *dom.Element
	from dom.Rect
}

type animation struct {
	motion     Motion
	animatingX bool
	animatingY bool

	cancelFrame func()
	cancelTimer func()
	stopListen  func()
}

// Manager drives FLIP passes for one container. It is not safe for
// concurrent use; like everything in the engine it lives on the document's
// scheduler goroutine.
type Manager struct {
	container *dom.Element
	duration  time.Duration
	easing    string
	disabled  bool
	logger    *slog.Logger

	captures []capture
	active   map[*dom.Element]*animation
	onDone   func()
}

// New creates a Manager bound to container.
func New(container *dom.Element, opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		container: container,
		duration:  opts.Duration,
		easing:    opts.Easing,
		logger:    logger,
		active:    make(map[*dom.Element]*animation),
	}
}

// SetDuration hot-swaps the animation duration.
func (m *Manager) SetDuration(d time.Duration) { m.duration = d }

// Duration returns the configured duration.
func (m *Manager) Duration() time.Duration { return m.duration }

// SetEasing hot-swaps the easing string.
func (m *Manager) SetEasing(e string) { m.easing = e }

// SetDisabled toggles the manager. Disabling does not cancel in-flight
// animations; it only stops new passes from capturing or starting any.
func (m *Manager) SetDisabled(v bool) { m.disabled = v }

func (m *Manager) enabled() bool {
	return !m.disabled && m.duration > 0 && m.container != nil
}

func (m *Manager) scheduler() dom.Scheduler {
	if m.container == nil {
		return nil
	}
	return m.container.Document().Scheduler()
}

// CaptureState snapshots the rect of every visible, flow-positioned child
// of the container, replacing any previous snapshot. No-op while the
// manager is disabled or the duration is zero.
func (m *Manager) CaptureState() {
	m.captures = m.captures[:0]
	if !m.enabled() {
		return
	}
	for _, c := range m.container.Children() {
		if !c.Visible() || c.Style("position") == "absolute" {
			continue
		}
		m.captures = append(m.captures, capture{el: c, from: c.Rect()})
	}
}

// AddState records (or overwrites) a manual capture for an element the
// standard pass would miss, such as an item dragged in from another
// container.
func (m *Manager) AddState(el *dom.Element, from dom.Rect) {
	if el == nil {
		return
	}
	for i := range m.captures {
		if m.captures[i].el == el {
			m.captures[i].from = from
			return
		}
	}
	m.captures = append(m.captures, capture{el: el, from: from})
}

// RemoveState drops an element's capture so the next pass ignores it.
func (m *Manager) RemoveState(el *dom.Element) {
	for i := range m.captures {
		if m.captures[i].el == el {
			m.captures = append(m.captures[:i], m.captures[i+1:]...)
			return
		}
	}
}

// AnimateAll recomputes layout, re-measures every captured element and
// animates the ones whose rectangles moved. onComplete fires synchronously
// when nothing needs animating (with a zero duration no element is even
// re-measured), otherwise exactly once after the last in-flight element
// settles. A later AnimateAll replaces a still-pending onComplete.
func (m *Manager) AnimateAll(onComplete func()) {
	if m.container != nil {
		m.container.Document().Relayout()
	}
	if !m.enabled() || m.scheduler() == nil {
		m.captures = m.captures[:0]
		if onComplete != nil {
			onComplete()
		}
		return
	}

	m.onDone = onComplete
	started := 0
	for _, c := range m.captures {
		el := c.el
		if el.Detached() || !el.Visible() {
			continue
		}
		to := el.Rect()
		if to == c.from {
			continue
		}
		if st, ok := m.active[el]; ok {
			if st.motion.To == to {
				continue
			}
			// Heading somewhere new: restart silently toward it.
			m.stop(el, st, false)
		}
		if m.start(el, c.from, to, m.duration) {
			started++
		}
	}
	m.captures = m.captures[:0]

	if started > 0 {
		m.logger.Debug("flip pass started", "animating", started, "active", len(m.active))
	}
	if len(m.active) == 0 {
		m.onDone = nil
		if onComplete != nil {
			onComplete()
		}
	}
}

// Animate is the single-element primitive behind AnimateAll. It dispatches
// the animation events and tracks the element's per-axis animating flags.
// No-op when from equals to or the duration is not positive.
func (m *Manager) Animate(el *dom.Element, from, to dom.Rect, duration time.Duration) {
	if el == nil || duration <= 0 || from == to || m.scheduler() == nil {
		return
	}
	if st, ok := m.active[el]; ok {
		m.stop(el, st, false)
	}
	m.start(el, from, to, duration)
}

// start applies frame one of the FLIP sequence synchronously (transition
// off, inverse transform on) and schedules frame two (transition on,
// transform cleared). Completion comes from a transitionend event or the
// duration fallback timer, whichever first.
func (m *Manager) start(el *dom.Element, from, to dom.Rect, duration time.Duration) bool {
	motion := Motion{From: from, To: to, Duration: duration}
	ev := dom.NewEvent(EventAnimationStart, dom.EventInit{Detail: motion, Bubbles: true, Cancelable: true})
	if !el.DispatchEvent(ev) {
		return false
	}

	dx := from.X - to.X
	dy := from.Y - to.Y
	st := &animation{motion: motion, animatingX: dx != 0, animatingY: dy != 0}
	m.active[el] = st

	el.SetStyle("transition", "none")
	el.SetStyle("transform", translate(dx, dy))

	st.stopListen = el.AddEventListener(EventTransitionEnd, func(*dom.CustomEvent) {
		m.finish(el)
	})

	sched := m.scheduler()
	st.cancelFrame = sched.RequestFrame(func() {
		st.cancelFrame = nil
		el.SetStyle("transition", transition(duration, m.easing))
		el.RemoveStyle("transform")
		st.cancelTimer = sched.After(duration, func() {
			st.cancelTimer = nil
			m.finish(el)
		})
	})
	return true
}

func (m *Manager) finish(el *dom.Element) {
	st, ok := m.active[el]
	if !ok {
		return
	}
	m.stop(el, st, false)
	el.DispatchEvent(dom.NewEvent(EventAnimationEnd, dom.EventInit{Detail: st.motion, Bubbles: true, Cancelable: true}))
	if len(m.active) == 0 && m.onDone != nil {
		done := m.onDone
		m.onDone = nil
		done()
	}
}

// stop tears down one element's animation: pending frame and timer
// canceled, transitionend listener removed, inline styles stripped.
func (m *Manager) stop(el *dom.Element, st *animation, dispatchCancel bool) {
	delete(m.active, el)
	if st.cancelFrame != nil {
		st.cancelFrame()
	}
	if st.cancelTimer != nil {
		st.cancelTimer()
	}
	if st.stopListen != nil {
		st.stopListen()
	}
	el.RemoveStyle("transform")
	el.RemoveStyle("transition")
	if dispatchCancel {
		el.DispatchEvent(dom.NewEvent(EventAnimationCancel, dom.EventInit{Detail: st.motion, Bubbles: true, Cancelable: true}))
	}
}

// CancelAnimations stops every in-flight animation immediately, dispatching
// sortable:animation:cancel per element, and drops any captured state and
// pending completion callback. Used when a new drag starts mid-animation.
func (m *Manager) CancelAnimations() {
	n := len(m.active)
	for el, st := range m.active {
		m.stop(el, st, true)
	}
	m.captures = m.captures[:0]
	m.onDone = nil
	if n > 0 {
		m.logger.Debug("animations canceled", "count", n)
	}
}

// Destroy cancels everything and releases the container reference. The
// manager is inert afterwards.
func (m *Manager) Destroy() {
	m.CancelAnimations()
	m.container = nil
}

// Animating reports the element's per-axis animating flags.
func (m *Manager) Animating(el *dom.Element) (x, y bool) {
	if st, ok := m.active[el]; ok {
		return st.animatingX, st.animatingY
	}
	return false, false
}

// InFlight returns the number of elements currently animating.
func (m *Manager) InFlight() int { return len(m.active) }

func translate(dx, dy float64) string {
	return "translate3d(" + px(dx) + "," + px(dy) + ",0)"
}

func transition(d time.Duration, easing string) string {
	s := "transform " + strconv.FormatInt(d.Milliseconds(), 10) + "ms"
	if easing != "" {
		s += " " + easing
	}
	return s
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
