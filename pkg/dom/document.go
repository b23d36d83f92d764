package dom

// Document owns an element tree, the frame scheduler and the layout hook.
//
// A document without a scheduler is considered unsupported by the engine:
// managers bound to it stay inert instead of erroring (hosts can probe with
// Supported). A document without a LayoutFunc treats Relayout as a no-op;
// its rects are written directly by the host.
type Document struct {
	root      *Element
	scheduler Scheduler
	layout    LayoutFunc

	observers []*observerEntry
	muted     int
}

// NewDocument creates a document with an empty "body" root element.
func NewDocument() *Document {
	d := &Document{}
	d.root = &Element{doc: d, tag: "body"}
	return d
}

// Root returns the document's root element.
func (d *Document) Root() *Element { return d.root }

// CreateElement creates a detached element owned by this document.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{doc: d, tag: tag}
}

// SetScheduler installs the frame scheduler.
func (d *Document) SetScheduler(s Scheduler) { d.scheduler = s }

// Scheduler returns the installed frame scheduler, or nil.
func (d *Document) Scheduler() Scheduler { return d.scheduler }

// SetLayoutFunc installs the layout hook invoked by Relayout.
func (d *Document) SetLayoutFunc(fn LayoutFunc) { d.layout = fn }

// Relayout recomputes element rects through the installed LayoutFunc.
// No-op without one: such documents receive measured rects from the host.
func (d *Document) Relayout() {
	if d.layout != nil {
		d.layout(d.root)
	}
}

// GetElementByID returns the first element in document order with the id,
// or nil.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	return find(d.root, func(e *Element) bool { return e.id == id })
}

// QuerySelector returns the first element in document order matching the
// selector, or nil. Malformed selectors match nothing.
func (d *Document) QuerySelector(selector string) *Element {
	comps, ok := parseSelector(selector)
	if !ok {
		return nil
	}
	return find(d.root, func(e *Element) bool {
		for _, c := range comps {
			if e.matchesCompound(c) {
				return true
			}
		}
		return false
	})
}

// ElementFromPoint returns the topmost visible element whose rect contains
// the point. Later siblings win over earlier ones and descendants win over
// ancestors, approximating paint order. Elements styled pointer-events:none
// are skipped along with their subtrees (this is what makes the drag ghost
// transparent to hit testing).
func (d *Document) ElementFromPoint(x, y float64) *Element {
	return hitTest(d.root, x, y)
}

func hitTest(e *Element, x, y float64) *Element {
	if e == nil || !e.Visible() || e.styles["pointer-events"] == "none" {
		return nil
	}
	for i := len(e.children) - 1; i >= 0; i-- {
		if hit := hitTest(e.children[i], x, y); hit != nil {
			return hit
		}
	}
	if e.rect.Contains(x, y) {
		return e
	}
	return nil
}

func find(e *Element, pred func(*Element) bool) *Element {
	if pred(e) {
		return e
	}
	for _, c := range e.children {
		if m := find(c, pred); m != nil {
			return m
		}
	}
	return nil
}
