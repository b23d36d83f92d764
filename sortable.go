package sortable

import (
	"log/slog"
	"time"

	"github.com/vango-dev/sortable/pkg/dom"
	"github.com/vango-dev/sortable/pkg/drag"
	"github.com/vango-dev/sortable/pkg/event"
	"github.com/vango-dev/sortable/pkg/flip"
	"github.com/vango-dev/sortable/pkg/query"
)

// pollInterval paces container re-resolution for deferred bindings.
const pollInterval = 16 * time.Millisecond

// Manager is the engine façade: it owns the container binding, the gesture
// instance driving drags on it, the observable drag state, and the typed
// listener registry host code subscribes through.
//
// Like the rest of the engine, a Manager is confined to its document's
// scheduler goroutine; there is no internal locking.
type Manager struct {
	opts   Options
	logger *slog.Logger

	doc        *dom.Document
	container  *dom.Element
	resolve    func() *dom.Element
	cancelPoll func()

	inst *drag.Instance
	reg  *registry

	watchers []*watchEntry

	dragging     bool
	dragEl       *dom.Element
	ghostEl      *dom.Element
	currentIndex int
	items        []*dom.Element

	destroyed bool
}

type watchEntry struct {
	fn      func()
	removed bool
}

// New creates a manager bound directly to container. A nil container
// leaves the manager unbound (and harmless); bind later with Bind.
func New(container *dom.Element, opts Options) *Manager {
	m := newManager(opts)
	if container != nil {
		m.doc = container.Document()
		m.Bind(container)
	}
	return m
}

// NewFromSelector creates a manager bound to the document's first element
// matching selector. When nothing matches yet, the manager keeps
// re-resolving on a frame cadence until the container appears.
func NewFromSelector(doc *dom.Document, selector string, opts Options) *Manager {
	return NewDeferred(doc, func() *dom.Element {
		return doc.QuerySelector(selector)
	}, opts)
}

// NewDeferred creates a manager whose container does not exist yet:
// resolve is re-polled until it yields one, then the manager binds to it.
// WaitForUpdate forces an immediate resolution attempt.
func NewDeferred(doc *dom.Document, resolve func() *dom.Element, opts Options) *Manager {
	m := newManager(opts)
	m.doc = doc
	m.resolve = resolve
	if !m.tryResolve() {
		m.armPoll()
	}
	return m
}

func newManager(opts Options) *Manager {
	return &Manager{
		opts:         opts,
		logger:       opts.logger(),
		reg:          newRegistry(),
		currentIndex: -1,
	}
}

// Bind binds (or rebinds) the manager to container: any existing gesture
// instance is destroyed, items are rescanned, and a fresh instance is
// built. Binding to an unsupported document (no scheduler) leaves the
// manager inert; Supported reports that state.
func (m *Manager) Bind(container *dom.Element) {
	if m.destroyed || container == nil {
		return
	}
	if m.cancelPoll != nil {
		m.cancelPoll()
		m.cancelPoll = nil
	}
	if m.inst != nil {
		m.inst.Destroy()
		m.inst = nil
	}
	m.container = container
	m.doc = container.Document()
	m.refreshItems()
	if !m.Supported() {
		m.logger.Warn("document has no scheduler, manager stays inert")
		m.notifyWatchers()
		return
	}
	m.inst = drag.New(container, m.opts.dragOptions(m.hooks()))
	m.logger.Debug("container bound", "items", len(m.items))
	m.notifyWatchers()
}

// Container returns the bound container, or nil while unbound.
func (m *Manager) Container() *dom.Element { return m.container }

// Supported reports whether the bound document can drive the engine: it
// must carry a scheduler. Unsupported managers are inert, never broken.
func (m *Manager) Supported() bool {
	return m.doc != nil && m.doc.Scheduler() != nil
}

// SetOptions hot-swaps the configuration. The gesture instance keeps its
// listeners; the next press sees the new options.
func (m *Manager) SetOptions(opts Options) {
	if m.destroyed {
		return
	}
	m.opts = opts
	m.logger = opts.logger()
	if m.inst != nil {
		m.inst.UpdateOptions(opts.dragOptions(m.hooks()))
	}
}

// Options returns the current configuration.
func (m *Manager) Options() Options { return m.opts }

// =============================================================================
// Observable state
// =============================================================================

// IsDragging reports whether a drag session is live on this manager.
func (m *Manager) IsDragging() bool { return m.dragging }

// DragElement returns the element being dragged, or nil.
func (m *Manager) DragElement() *dom.Element { return m.dragEl }

// GhostElement returns the mounted ghost, or nil outside a session.
func (m *Manager) GhostElement() *dom.Element { return m.ghostEl }

// CurrentIndex returns the dragged item's live index, or -1 outside a
// session.
func (m *Manager) CurrentIndex() int { return m.currentIndex }

// Items returns the current ordered draggable children.
func (m *Manager) Items() []*dom.Element {
	out := make([]*dom.Element, len(m.items))
	copy(out, m.items)
	return out
}

// ToArray returns the items' identity attribute values (DataIDAttr,
// default data-id) in document order.
func (m *Manager) ToArray() []string {
	attr := m.opts.dataIDAttr()
	out := make([]string, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it.Attr(attr))
	}
	return out
}

// UpdateItems rescans the container's draggable children.
func (m *Manager) UpdateItems() {
	m.refreshItems()
	m.notifyWatchers()
}

// Watch subscribes fn to observable-state changes and returns its removal
// func. The engine assumes no re-render model; this is the only push
// surface for state.
func (m *Manager) Watch(fn func()) (stop func()) {
	if fn == nil {
		return func() {}
	}
	entry := &watchEntry{fn: fn}
	m.watchers = append(m.watchers, entry)
	return func() {
		entry.removed = true
		for i, w := range m.watchers {
			if w == entry {
				m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
				return
			}
		}
	}
}

func (m *Manager) notifyWatchers() {
	if len(m.watchers) == 0 {
		return
	}
	snapshot := make([]*watchEntry, len(m.watchers))
	copy(snapshot, m.watchers)
	for _, w := range snapshot {
		if !w.removed {
			w.fn()
		}
	}
}

func (m *Manager) refreshItems() {
	m.items = query.DraggableChildren(m.container, m.opts.Draggable)
}

// =============================================================================
// Programmatic control
// =============================================================================

// Start begins a drag session on item as if a qualifying press landed at
// its center. It reports whether a session began.
func (m *Manager) Start(item *dom.Element) bool {
	if m.inst == nil {
		return false
	}
	return m.inst.StartDrag(item)
}

// Stop settles the active session at the pointer's last position, or
// disarms a pending press. No-op when idle.
func (m *Manager) Stop() {
	if m.inst != nil {
		m.inst.StopDrag()
	}
}

// Sort reorders the items to match order, a sequence of identity attribute
// values. Items not named keep their relative order after the named ones.
// The reflow is animated; no lifecycle events fire.
func (m *Manager) Sort(order []string) {
	if m.destroyed || m.container == nil {
		return
	}
	m.refreshItems()
	attr := m.opts.dataIDAttr()
	byID := make(map[string]*dom.Element, len(m.items))
	for _, it := range m.items {
		if id := it.Attr(attr); id != "" {
			byID[id] = it
		}
	}
	placed := make(map[*dom.Element]bool, len(m.items))
	desired := make([]*dom.Element, 0, len(m.items))
	for _, id := range order {
		if it, ok := byID[id]; ok && !placed[it] {
			desired = append(desired, it)
			placed[it] = true
		}
	}
	for _, it := range m.items {
		if !placed[it] {
			desired = append(desired, it)
		}
	}

	anim := m.animator()
	if anim != nil {
		anim.CaptureState()
	}
	for i, it := range desired {
		if err := query.InsertAtIndex(m.container, it, i, m.opts.Draggable); err != nil {
			m.logger.Warn("sort splice failed", "error", err)
		}
	}
	if anim != nil {
		anim.AnimateAll(nil)
	} else if m.doc != nil {
		m.doc.Relayout()
	}
	m.refreshItems()
	m.notifyWatchers()
}

func (m *Manager) animator() *flip.Manager {
	if m.inst == nil {
		return nil
	}
	return m.inst.Animator()
}

// WaitForUpdate flushes pending internal scheduling such as a deferred
// container bind, so callers observe post-mutation state synchronously.
// A still-unresolvable container is left pending rather than waited for.
func (m *Manager) WaitForUpdate() {
	if m.destroyed {
		return
	}
	if m.container == nil && m.resolve != nil {
		m.tryResolve()
	}
	if m.container == nil {
		return
	}
	if f, ok := m.doc.Scheduler().(dom.Flusher); ok {
		f.Flush()
	}
}

// Cleanup removes every listener registry entry and watcher, and destroys
// the gesture instance along with its animation manager. The manager is
// inert afterwards.
func (m *Manager) Cleanup() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	if m.cancelPoll != nil {
		m.cancelPoll()
		m.cancelPoll = nil
	}
	if m.inst != nil {
		m.inst.Destroy()
		m.inst = nil
	}
	m.reg.clear()
	m.watchers = nil
	m.dragging = false
	m.dragEl, m.ghostEl = nil, nil
	m.currentIndex = -1
	m.items = nil
	m.logger.Debug("manager cleaned up")
}

// Destroy is Cleanup under the name hosts that think in widget lifecycles
// expect.
func (m *Manager) Destroy() { m.Cleanup() }

// =============================================================================
// Event plumbing
// =============================================================================

// hooks builds the callback layer installed into the gesture instance:
// observable state first, then the host callback, then the listener
// registry relay. The host's verdict is the hook's verdict; a panicking
// host callback counts as allowing.
func (m *Manager) hooks() Callbacks {
	return Callbacks{
		OnChoose:   m.hook(event.Choose),
		OnStart:    m.hook(event.Start),
		OnMove:     m.hook(event.Move),
		OnUpdate:   m.hook(event.Update),
		OnAdd:      m.hook(event.Add),
		OnRemove:   m.hook(event.Remove),
		OnUnchoose: m.hook(event.Unchoose),
		OnEnd:      m.hook(event.End),
		OnFilter:   m.hook(event.Filter),
	}
}

func (m *Manager) hook(typ string) func(*event.Event) bool {
	return func(e *event.Event) bool {
		if m.destroyed {
			return true
		}
		m.observe(typ, e)
		allowed := m.invokeHost(typ, e)
		m.reg.emit(typ, e)
		return allowed
	}
}

func (m *Manager) invokeHost(typ string, e *event.Event) (allowed bool) {
	cb := m.opts.Callbacks.For(typ)
	if cb == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("host callback panicked", "event", typ, "panic", r)
			allowed = true
		}
	}()
	return cb(e)
}

// observe folds a lifecycle event into the observable state.
func (m *Manager) observe(typ string, e *event.Event) {
	switch typ {
	case event.Choose:
		m.dragEl = e.Item
		m.currentIndex = e.OldIndex
	case event.Start:
		m.dragging = true
		if s := m.session(); s != nil {
			m.ghostEl = s.Ghost
		}
	case event.Update, event.Add:
		m.currentIndex = e.NewIndex
		m.refreshItems()
	case event.Remove:
		m.refreshItems()
	case event.End:
		m.dragging = false
		m.dragEl, m.ghostEl = nil, nil
		m.currentIndex = -1
		m.refreshItems()
	default:
		return
	}
	m.notifyWatchers()
}

func (m *Manager) session() *drag.Session {
	if m.inst == nil {
		return nil
	}
	return m.inst.Session()
}

// =============================================================================
// Deferred binding
// =============================================================================

func (m *Manager) tryResolve() bool {
	if m.resolve == nil {
		return false
	}
	container := m.resolve()
	if container == nil {
		return false
	}
	m.resolve = nil
	m.Bind(container)
	return true
}

func (m *Manager) armPoll() {
	if m.doc == nil || m.doc.Scheduler() == nil {
		m.logger.Warn("deferred binding without a scheduler never resolves")
		return
	}
	m.cancelPoll = m.doc.Scheduler().After(pollInterval, func() {
		m.cancelPoll = nil
		if m.destroyed || m.tryResolve() {
			return
		}
		m.armPoll()
	})
}
