// Package drag implements the pointer-driven gesture state machine behind
// list reordering: a press arms or starts a session, pointer travel steps
// the dragged item through reorder splices, release settles everything and
// fires the closing events. Instances cooperate through a shared Context,
// which is how an item crosses from one container into another.
package drag

import (
	"log/slog"
	"math"
	"strconv"

	"github.com/vango-dev/sortable/pkg/dom"
	"github.com/vango-dev/sortable/pkg/event"
	"github.com/vango-dev/sortable/pkg/flip"
	"github.com/vango-dev/sortable/pkg/query"
)

type state uint8

const (
	idle state = iota
	armed
	dragging
)

// Instance drives drag gestures for one container. It owns the container's
// pointerdown binding, a reflow animation manager and a drop-target
// registration, and holds at most one session at a time through the shared
// context.
type Instance struct {
	container *dom.Element
	opts      Options
	ctx       Context
	dispatch  event.Dispatcher
	anim      *flip.Manager
	logger    *slog.Logger

	state      state
	session    *Session
	sessionCtx Context

	removeDown   func()
	removeGlobal []func()
	removeTarget func()
	cancelDelay  func()

	press     *dom.PointerEvent
	pressItem *dom.Element
	destroyed bool
}

// New binds a gesture instance to container. The container must belong to
// a document; presses arrive through its pointerdown events.
func New(container *dom.Element, opts Options) *Instance {
	in := &Instance{container: container}
	in.applyOptions(opts)
	if container != nil {
		in.removeDown = container.AddEventListener(dom.EventPointerDown, in.onPointerDown)
	}
	return in
}

// UpdateOptions swaps the configuration in place. Listeners stay bound;
// the next press sees the new options, and an in-flight session keeps the
// context it was acquired on.
func (in *Instance) UpdateOptions(opts Options) {
	if in.destroyed {
		return
	}
	in.applyOptions(opts)
}

func (in *Instance) applyOptions(opts Options) {
	in.opts = opts
	in.logger = opts.logger()
	in.dispatch = event.Dispatcher{Logger: in.logger}
	if in.anim == nil {
		in.anim = flip.New(in.container, flip.Options{
			Duration: opts.Animation,
			Easing:   opts.Easing,
			Logger:   in.logger,
		})
	} else {
		in.anim.SetDuration(opts.Animation)
		in.anim.SetEasing(opts.Easing)
	}
	if in.removeTarget != nil {
		in.removeTarget()
	}
	in.ctx = opts.context()
	in.removeTarget = in.ctx.Register(in.ownTarget())
}

// ownTarget describes this instance's container as a drop target for
// foreign sessions on the same context.
func (in *Instance) ownTarget() *Target {
	return &Target{
		Container: in.container,
		Group:     in.opts.Group,
		Draggable: in.opts.Draggable,
		Callbacks: in.opts.Callbacks,
		Anim:      in.anim,
	}
}

// Container returns the bound container.
func (in *Instance) Container() *dom.Element { return in.container }

// Dragging reports whether a session is live.
func (in *Instance) Dragging() bool { return in.state == dragging }

// Session returns the live session, or nil.
func (in *Instance) Session() *Session {
	if in.state == dragging {
		return in.session
	}
	return nil
}

// Animator returns the instance's reflow animation manager.
func (in *Instance) Animator() *flip.Manager { return in.anim }

// StartDrag begins a session on item programmatically, as if a qualifying
// press landed at its center. Delay and filter do not apply. It reports
// whether a session began.
func (in *Instance) StartDrag(item *dom.Element) bool {
	if in.destroyed || in.state != idle || in.opts.Disabled || item == nil {
		return false
	}
	el := event.ResolveDraggable(item, in.container, in.opts.Draggable, "")
	if el == nil || in.ctx.Active() != nil {
		return false
	}
	r := el.Rect()
	pe := &dom.PointerEvent{X: r.MidX(), Y: r.MidY(), Target: el}
	in.bindGlobal()
	in.beginDrag(el, pe)
	return in.state == dragging
}

// StopDrag settles the active session as if the pointer released at its
// last position, or disarms a pending press. No-op when idle.
func (in *Instance) StopDrag() {
	if in.destroyed {
		return
	}
	switch in.state {
	case armed:
		in.disarm()
	case dragging:
		in.endSession(nil)
	}
}

// Destroy unbinds everything. An in-flight session is dropped silently:
// ghost out, classes off, and no further events reach listeners or
// callbacks.
func (in *Instance) Destroy() {
	if in.destroyed {
		return
	}
	in.destroyed = true
	if in.cancelDelay != nil {
		in.cancelDelay()
		in.cancelDelay = nil
	}
	if s := in.session; s != nil {
		in.stripSession(s)
	}
	in.reset()
	if in.removeDown != nil {
		in.removeDown()
		in.removeDown = nil
	}
	if in.removeTarget != nil {
		in.removeTarget()
		in.removeTarget = nil
	}
	in.anim.Destroy()
}

func (in *Instance) onPointerDown(ev *dom.CustomEvent) {
	pe := dom.PointerFrom(ev)
	if pe == nil || in.destroyed || in.state != idle || in.opts.Disabled {
		return
	}
	if pe.Kind == dom.PointerMouse && pe.Buttons != 0 && pe.Buttons&1 == 0 {
		return
	}
	if in.ctx.Active() != nil {
		return
	}
	target := ev.Target()
	item := event.ResolveDraggable(target, in.container, in.opts.Draggable, in.opts.Handle)
	if item == nil {
		return
	}
	if in.dispatch.IsPrevented(target, in.container, in.opts.Filter, in.opts.FilterFunc) {
		in.fire(event.Filter, in.container, &event.Event{
			Item:     item,
			OldIndex: query.ElementIndex(item, in.opts.Draggable),
			NewIndex: -1,
			PointerX: pe.X,
			PointerY: pe.Y,
		})
		return
	}
	ev.PreventDefault()

	delay := in.opts.Delay
	if in.opts.DelayOnTouchOnly && pe.Kind != dom.PointerTouch {
		delay = 0
	}
	in.bindGlobal()
	if sched := in.scheduler(); delay > 0 && sched != nil {
		in.state = armed
		in.press = pe
		in.pressItem = item
		in.cancelDelay = sched.After(delay, func() {
			in.cancelDelay = nil
			in.beginDrag(in.pressItem, in.press)
		})
		in.logger.Debug("press armed", "delay", delay)
		return
	}
	in.beginDrag(item, pe)
}

func (in *Instance) onPointerMove(ev *dom.CustomEvent) {
	pe := dom.PointerFrom(ev)
	if pe == nil || in.destroyed {
		return
	}
	switch in.state {
	case armed:
		travel := math.Max(math.Abs(pe.X-in.press.X), math.Abs(pe.Y-in.press.Y))
		if travel >= in.opts.threshold() {
			in.logger.Debug("press disarmed", "travel", travel)
			in.disarm()
		}
	case dragging:
		in.dragMove(pe)
	}
}

func (in *Instance) onPointerUp(ev *dom.CustomEvent) {
	if in.destroyed {
		return
	}
	switch in.state {
	case armed:
		in.disarm()
	case dragging:
		in.endSession(dom.PointerFrom(ev))
	}
}

// beginDrag moves a press into the dragging state: in-flight animations
// are canceled so manual repositioning never fights a transition, then
// choose, chosen class, ghost, start.
func (in *Instance) beginDrag(item *dom.Element, pe *dom.PointerEvent) {
	in.press, in.pressItem = nil, nil
	if in.destroyed || item == nil || item.Detached() {
		in.reset()
		return
	}
	s := newSession(item, in.container, query.ElementIndex(item, in.opts.Draggable), pe)
	if !in.ctx.Acquire(s) {
		in.reset()
		return
	}
	in.state = dragging
	in.session = s
	in.sessionCtx = in.ctx
	s.targets[in.container] = in.ownTarget()
	in.anim.CancelAnimations()
	in.logger.Debug("drag session started", "session", s.ID, "index", s.OldIndex)

	in.fire(event.Choose, s.From, s.payload(pe.X, pe.Y))
	item.AddClass(in.opts.chosenClass())
	s.Ghost = query.CreateGhost(item, in.opts.ghostClass())
	in.container.Document().Root().AppendChild(s.Ghost)
	in.positionGhost(pe.X, pe.Y)
	in.fire(event.Start, s.From, s.payload(pe.X, pe.Y))
}

// dragMove advances the session one pointer step: ghost follows the
// pointer, and when the midpoint rule yields a new insertion point the
// item is spliced there, animated, and the step events fire.
func (in *Instance) dragMove(pe *dom.PointerEvent) {
	s := in.session
	if s.Item.Detached() || in.container.Detached() {
		in.logger.Debug("dragged item removed externally", "session", s.ID)
		in.endSession(pe)
		return
	}
	s.lastX, s.lastY = pe.X, pe.Y
	if !s.moved {
		s.moved = true
		s.Item.AddClass(in.opts.dragClass())
	}
	in.positionGhost(pe.X, pe.Y)

	to, tgt := in.dropContainer(pe, s)
	if to == nil {
		return
	}
	if tgt != nil {
		s.targets[to] = tgt
	}
	selector := s.selectorFor(to)
	dir := s.direction(to, selector)
	coord := dir.Axis(pe.X, pe.Y)
	pos := query.DropPosition(to, dir, coord, selector)
	idx := query.InsertIndex(to, dir, coord, selector, s.Item)

	cur := -1
	if s.Item.Parent() == to {
		cur = query.ElementIndex(s.Item, selector)
	}
	if to == s.To && idx == cur {
		return
	}

	allowed := in.fire(event.Move, to, &event.Event{
		Item:            s.Item,
		From:            s.To,
		To:              to,
		OldIndex:        s.NewIndex,
		NewIndex:        idx,
		WillInsertAfter: pos.InsertAfter,
		Related:         pos.Target,
		PointerX:        pe.X,
		PointerY:        pe.Y,
		Extra:           s.extra(),
	})
	if !allowed {
		return
	}

	srcAnim := in.animFor(s.To, s)
	dstAnim := in.animFor(to, s)
	if srcAnim != nil {
		srcAnim.CaptureState()
	}
	if dstAnim != nil && dstAnim != srcAnim {
		dstAnim.CaptureState()
	}
	if err := query.InsertAtIndex(to, s.Item, idx, selector); err != nil {
		in.logger.Warn("reorder splice failed", "session", s.ID, "error", err)
		return
	}
	if srcAnim != nil {
		srcAnim.AnimateAll(nil)
	}
	if dstAnim != nil && dstAnim != srcAnim {
		dstAnim.AnimateAll(nil)
	}
	if srcAnim == nil && dstAnim == nil {
		in.container.Document().Relayout()
	}

	crossed := to != s.To
	s.To = to
	s.NewIndex = query.ElementIndex(s.Item, selector)
	if crossed {
		in.logger.Debug("item crossed containers", "session", s.ID, "index", s.NewIndex)
		return
	}
	if to != s.From {
		// update is a home-container event; reorders inside a foreign
		// container report as one add on release.
		return
	}
	s.announced = s.NewIndex
	in.fire(event.Update, to, &event.Event{
		Item:     s.Item,
		From:     to,
		To:       to,
		OldIndex: cur,
		NewIndex: s.NewIndex,
		PointerX: pe.X,
		PointerY: pe.Y,
		Extra:    s.extra(),
	})
}

// endSession settles the drag: classes off, ghost out, unchoose, the
// cross-container remove/add pair when the item changed homes, and end
// last, always, with the final indices.
func (in *Instance) endSession(pe *dom.PointerEvent) {
	s := in.session
	x, y := s.lastX, s.lastY
	if pe != nil {
		x, y = pe.X, pe.Y
	}
	in.stripSession(s)
	if s.Item.Parent() == s.To {
		s.NewIndex = query.ElementIndex(s.Item, s.selectorFor(s.To))
	}

	in.fire(event.Unchoose, s.From, s.payload(x, y))
	switch {
	case s.To != s.From && s.Item.Parent() == s.To:
		in.fire(event.Remove, s.From, s.payload(x, y))
		addCB := in.opts.Callbacks.For(event.Add)
		if t := s.target(s.To); t != nil {
			addCB = t.Callbacks.For(event.Add)
		}
		in.dispatch.Dispatch(s.To, event.Add, s.payload(x, y), addCB)
	case s.To == s.From && s.NewIndex != s.announced:
		// The item came home through another container; its net move was
		// never reported step-wise.
		in.fire(event.Update, s.From, s.payload(x, y))
	}
	in.fire(event.End, s.From, s.payload(x, y))
	in.logger.Debug("drag session ended",
		"session", s.ID, "from", s.OldIndex, "to", s.NewIndex, "crossed", s.To != s.From)
	in.reset()
}

// stripSession removes the session's visual artifacts: state classes and
// the ghost.
func (in *Instance) stripSession(s *Session) {
	s.Item.RemoveClass(in.opts.chosenClass())
	if s.moved {
		s.Item.RemoveClass(in.opts.dragClass())
	}
	if s.Ghost != nil {
		s.Ghost.Remove()
		s.Ghost = nil
	}
}

// disarm abandons an armed press before its delay fires.
func (in *Instance) disarm() {
	if in.cancelDelay != nil {
		in.cancelDelay()
		in.cancelDelay = nil
	}
	in.reset()
}

// reset returns the instance to idle, releasing whatever a press or
// session held.
func (in *Instance) reset() {
	in.unbindGlobal()
	if in.session != nil {
		if in.sessionCtx != nil {
			in.sessionCtx.Release(in.session)
		}
		in.session = nil
		in.sessionCtx = nil
	}
	in.press, in.pressItem = nil, nil
	in.state = idle
}

// dropContainer resolves the container under the pointer: the instance's
// own, or a registered target whose group accepts the item. Nil when the
// pointer is over neither.
func (in *Instance) dropContainer(pe *dom.PointerEvent, s *Session) (*dom.Element, *Target) {
	own := in.container
	if !own.Detached() && own.Visible() && own.Rect().Contains(pe.X, pe.Y) {
		return own, nil
	}
	t := in.ctx.TargetAt(pe.X, pe.Y)
	if t == nil {
		return nil, nil
	}
	if t.Container == own {
		return own, nil
	}
	if !t.Group.accepts(s.Item, in.opts.Group, s.From, t.Container) {
		return nil, nil
	}
	return t.Container, t
}

// animFor returns the animation manager responsible for a container the
// session has touched, or nil when its owner registered none.
func (in *Instance) animFor(container *dom.Element, s *Session) *flip.Manager {
	if container == in.container {
		return in.anim
	}
	if t := s.target(container); t != nil {
		return t.Anim
	}
	return nil
}

// positionGhost pins the ghost's rect and inline position to the pointer,
// preserving the grab offset from the press.
func (in *Instance) positionGhost(x, y float64) {
	s := in.session
	if s == nil || s.Ghost == nil {
		return
	}
	r := s.Ghost.Rect()
	nx, ny := x-s.grabX, y-s.grabY
	s.Ghost.SetRect(dom.Rect{X: nx, Y: ny, Width: r.Width, Height: r.Height})
	s.Ghost.SetStyle("left", px(nx))
	s.Ghost.SetStyle("top", px(ny))
}

func (in *Instance) bindGlobal() {
	root := in.container.Document().Root()
	in.removeGlobal = append(in.removeGlobal,
		root.AddEventListener(dom.EventPointerMove, in.onPointerMove),
		root.AddEventListener(dom.EventPointerUp, in.onPointerUp),
		root.AddEventListener(dom.EventPointerCancel, in.onPointerUp),
	)
}

func (in *Instance) unbindGlobal() {
	for _, remove := range in.removeGlobal {
		remove()
	}
	in.removeGlobal = in.removeGlobal[:0]
}

// fire dispatches a lifecycle event on container, routed to this
// instance's host callback for typ.
func (in *Instance) fire(typ string, container *dom.Element, data *event.Event) bool {
	return in.dispatch.Dispatch(container, typ, data, in.opts.Callbacks.For(typ))
}

func (in *Instance) scheduler() dom.Scheduler {
	if in.container == nil || in.container.Document() == nil {
		return nil
	}
	return in.container.Document().Scheduler()
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
