package drag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/sortable/pkg/dom"
	"github.com/vango-dev/sortable/pkg/event"
)

func TestContextAcquireRelease(t *testing.T) {
	ctx := NewContext()
	assert.Nil(t, ctx.Active())

	a := &Session{ID: "a"}
	b := &Session{ID: "b"}

	require.True(t, ctx.Acquire(a))
	assert.Same(t, a, ctx.Active())
	assert.True(t, ctx.Acquire(a), "re-acquiring the holder is allowed")
	assert.False(t, ctx.Acquire(b), "slot is exclusive")

	ctx.Release(b)
	assert.Same(t, a, ctx.Active(), "only the holder can release")
	ctx.Release(a)
	assert.Nil(t, ctx.Active())
	assert.True(t, ctx.Acquire(b))
	assert.False(t, ctx.Acquire(nil))
}

func TestContextTargetRegistry(t *testing.T) {
	doc := dom.NewDocument()
	low := doc.CreateElement("ul")
	low.SetRect(dom.Rect{Width: 100, Height: 100})
	doc.Root().AppendChild(low)
	high := doc.CreateElement("ul")
	high.SetRect(dom.Rect{X: 50, Width: 100, Height: 100})
	doc.Root().AppendChild(high)

	ctx := NewContext()
	removeLow := ctx.Register(&Target{Container: low})
	removeHigh := ctx.Register(&Target{Container: high})

	got := ctx.TargetAt(75, 50)
	require.NotNil(t, got)
	assert.Same(t, high, got.Container, "later registration wins the overlap")

	got = ctx.TargetAt(10, 50)
	require.NotNil(t, got)
	assert.Same(t, low, got.Container)

	assert.Nil(t, ctx.TargetAt(500, 500))

	high.SetHidden(true)
	got = ctx.TargetAt(75, 50)
	require.NotNil(t, got)
	assert.Same(t, low, got.Container, "hidden containers do not receive drops")
	high.SetHidden(false)

	removeHigh()
	removeHigh() // second call is a no-op
	got = ctx.TargetAt(75, 50)
	require.NotNil(t, got)
	assert.Same(t, low, got.Container)

	low.Remove()
	assert.Nil(t, ctx.TargetAt(10, 50), "detached containers do not receive drops")
	removeLow()

	assert.NotNil(t, ctx.Register(nil), "nil target registration is inert")
}

func TestGroupAccepts(t *testing.T) {
	doc := dom.NewDocument()
	src := doc.CreateElement("ul")
	dst := doc.CreateElement("ul")
	item := doc.CreateElement("li")

	assert.False(t, Group{}.accepts(item, Group{}, src, dst), "empty names never match")
	assert.True(t, Group{Name: "g"}.accepts(item, Group{Name: "g"}, src, dst))
	assert.False(t, Group{Name: "g"}.accepts(item, Group{Name: "other"}, src, dst))

	var gotItem, gotFrom, gotTo *dom.Element
	g := Group{Name: "ignored", Accept: func(it, from, to *dom.Element) bool {
		gotItem, gotFrom, gotTo = it, from, to
		return true
	}}
	assert.True(t, g.accepts(item, Group{Name: "foreign"}, src, dst))
	assert.Same(t, item, gotItem)
	assert.Same(t, src, gotFrom)
	assert.Same(t, dst, gotTo)
}

func TestCallbacksFor(t *testing.T) {
	var hit string
	mark := func(name string) func(*event.Event) bool {
		return func(*event.Event) bool {
			hit = name
			return true
		}
	}
	c := Callbacks{
		OnChoose:   mark("choose"),
		OnStart:    mark("start"),
		OnMove:     mark("move"),
		OnUpdate:   mark("update"),
		OnAdd:      mark("add"),
		OnRemove:   mark("remove"),
		OnUnchoose: mark("unchoose"),
		OnEnd:      mark("end"),
		OnFilter:   mark("filter"),
	}

	for _, typ := range []string{
		event.Choose, event.Start, event.Move, event.Update, event.Add,
		event.Remove, event.Unchoose, event.End, event.Filter,
	} {
		cb := c.For(typ)
		require.NotNil(t, cb, "callback for %s", typ)
		cb(nil)
		assert.Equal(t, typ, hit)
	}
	assert.Nil(t, c.For("bogus"))
	assert.Nil(t, c.For(""))
	assert.Nil(t, Callbacks{}.For(event.Start))
}
