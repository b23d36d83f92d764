package dom

// MutationKind discriminates mutation records.
type MutationKind uint8

const (
	// MutChildren covers inserts, moves and removals in a child list.
	MutChildren MutationKind = iota
	// MutClass covers class additions and removals.
	MutClass
	// MutStyle covers inline style changes.
	MutStyle
	// MutAttr covers attribute, id and hidden changes.
	MutAttr
)

// MutationRecord describes one synchronous tree change. Observers receive
// records in mutation order; the live bridge derives its patch stream from
// them.
type MutationRecord struct {
	Kind   MutationKind
	Target *Element

	// Parent and Index describe MutChildren records: the new parent and the
	// child position after insertion. Removals carry a nil Parent, Index -1
	// and Removed true.
	Parent *Element
	Index  int

	// Name and Value describe class/style/attr records. Removals carry
	// Removed true with an empty Value.
	Name    string
	Value   string
	Removed bool
}

type observerEntry struct {
	fn      func(MutationRecord)
	removed bool
}

// Observe registers a mutation observer and returns its removal func.
// Observers run synchronously, in registration order, inside the mutation
// call itself.
func (d *Document) Observe(fn func(MutationRecord)) (stop func()) {
	entry := &observerEntry{fn: fn}
	d.observers = append(d.observers, entry)
	return func() {
		entry.removed = true
		for i, o := range d.observers {
			if o == entry {
				d.observers = append(d.observers[:i], d.observers[i+1:]...)
				return
			}
		}
	}
}

// SuspendObservers runs fn with mutation notifications disabled. The live
// bridge uses it to apply client-originated changes without echoing them
// back as patches.
func (d *Document) SuspendObservers(fn func()) {
	d.muted++
	defer func() { d.muted-- }()
	fn()
}

func (d *Document) notify(rec MutationRecord) {
	if d == nil || d.muted > 0 || len(d.observers) == 0 {
		return
	}
	snapshot := make([]*observerEntry, len(d.observers))
	copy(snapshot, d.observers)
	for _, o := range snapshot {
		if o.removed {
			continue
		}
		o.fn(rec)
	}
}
