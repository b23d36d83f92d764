package flip

import (
	"testing"
	"time"

	"github.com/vango-dev/sortable/pkg/dom"
)

// newBoard builds a vertical 3-item list with Flow layout on a manual
// scheduler. Items are 100x30 stacked from y=0.
func newBoard(t *testing.T) (*dom.Document, *dom.ManualScheduler, *dom.Element, []*dom.Element) {
	t.Helper()
	d := dom.NewDocument()
	sched := dom.NewManualScheduler()
	d.SetScheduler(sched)
	d.SetLayoutFunc(dom.Flow(dom.Vertical, 0))
	list := d.CreateElement("ul")
	list.SetRect(dom.Rect{Width: 100, Height: 90})
	d.Root().AppendChild(list)
	items := make([]*dom.Element, 3)
	for i := range items {
		it := d.CreateElement("li")
		it.SetRect(dom.Rect{Y: float64(i) * 30, Width: 100, Height: 30})
		list.AppendChild(it)
		items[i] = it
	}
	return d, sched, list, items
}

func newManager(list *dom.Element, dur time.Duration) *Manager {
	return New(list, Options{Duration: dur})
}

func TestFlipSequence(t *testing.T) {
	_, sched, list, items := newBoard(t)
	m := newManager(list, 150*time.Millisecond)

	var starts, ends int
	done := 0
	items[0].AddEventListener(EventAnimationStart, func(ev *dom.CustomEvent) {
		starts++
		mo, ok := ev.Detail.(Motion)
		if !ok {
			t.Fatal("start event Detail is not a Motion")
		}
		if mo.From.Y != 0 || mo.To.Y != 30 {
			t.Errorf("motion = %v -> %v, want y 0 -> 30", mo.From.Y, mo.To.Y)
		}
	})
	items[0].AddEventListener(EventAnimationEnd, func(*dom.CustomEvent) { ends++ })

	m.CaptureState()
	if err := list.InsertBefore(items[1], items[0]); err != nil {
		t.Fatal(err)
	}
	m.AnimateAll(func() { done++ })

	// Frame one is synchronous: inverse transform with transitions off.
	if got := items[0].Style("transform"); got != "translate3d(0px,-30px,0)" {
		t.Errorf("inverted transform = %q", got)
	}
	if got := items[0].Style("transition"); got != "none" {
		t.Errorf("invert-frame transition = %q, want none", got)
	}
	if starts != 1 {
		t.Errorf("start events = %d, want 1", starts)
	}
	if done != 0 {
		t.Error("onComplete fired before the transition played")
	}
	if x, y := m.Animating(items[0]); x || !y {
		t.Errorf("Animating = %v/%v, want x=false y=true", x, y)
	}

	// Frame two: transition on, transform cleared.
	sched.Step()
	if got := items[0].Style("transform"); got != "" {
		t.Errorf("play-frame transform = %q, want cleared", got)
	}
	if got := items[0].Style("transition"); got != "transform 150ms" {
		t.Errorf("play-frame transition = %q", got)
	}
	if done != 0 {
		t.Error("onComplete fired before the duration elapsed")
	}

	// Duration fallback completes the pass.
	sched.Advance(150 * time.Millisecond)
	if ends != 1 {
		t.Errorf("end events = %d, want 1", ends)
	}
	if done != 1 {
		t.Errorf("onComplete calls = %d, want 1", done)
	}
	if got := items[0].Style("transition"); got != "" {
		t.Errorf("transition not stripped after completion: %q", got)
	}
	if m.InFlight() != 0 {
		t.Errorf("InFlight = %d after completion", m.InFlight())
	}
}

func TestFlipAnimatesBothMovedItems(t *testing.T) {
	_, sched, list, items := newBoard(t)
	m := newManager(list, 100*time.Millisecond)

	m.CaptureState()
	if err := list.InsertBefore(items[1], items[0]); err != nil {
		t.Fatal(err)
	}
	m.AnimateAll(nil)

	if m.InFlight() != 2 {
		t.Fatalf("InFlight = %d, want 2 (both swapped items move)", m.InFlight())
	}
	if got := items[1].Style("transform"); got != "translate3d(0px,30px,0)" {
		t.Errorf("upward mover transform = %q", got)
	}
	// The third item did not move and must stay untouched.
	if items[2].Style("transform") != "" || items[2].Style("transition") != "" {
		t.Error("unmoved item got animation styles")
	}
	sched.RunUntilIdle()
	if m.InFlight() != 0 {
		t.Errorf("InFlight = %d after idle", m.InFlight())
	}
}

func TestFlipZeroDurationCompletesSynchronously(t *testing.T) {
	_, _, list, items := newBoard(t)
	m := newManager(list, 0)

	sawEvent := false
	items[0].AddEventListener(EventAnimationStart, func(*dom.CustomEvent) { sawEvent = true })

	m.CaptureState()
	if err := list.InsertBefore(items[1], items[0]); err != nil {
		t.Fatal(err)
	}
	done := false
	m.AnimateAll(func() { done = true })

	if !done {
		t.Error("zero-duration pass did not complete synchronously")
	}
	if sawEvent || m.InFlight() != 0 {
		t.Error("zero-duration pass started an animation")
	}
	if items[0].Style("transform") != "" {
		t.Error("zero-duration pass wrote styles")
	}
	// Layout still reflects the reorder.
	if items[1].Rect().Y != 0 || items[0].Rect().Y != 30 {
		t.Error("zero-duration pass skipped relayout")
	}
}

func TestFlipNoChangesCompletesSynchronously(t *testing.T) {
	_, _, list, _ := newBoard(t)
	m := newManager(list, 100*time.Millisecond)

	m.CaptureState()
	done := false
	m.AnimateAll(func() { done = true })
	if !done || m.InFlight() != 0 {
		t.Error("pass without geometry changes should complete synchronously")
	}
}

func TestFlipStartPrevented(t *testing.T) {
	_, sched, list, items := newBoard(t)
	m := newManager(list, 100*time.Millisecond)

	items[0].AddEventListener(EventAnimationStart, func(ev *dom.CustomEvent) {
		ev.PreventDefault()
	})

	m.CaptureState()
	if err := list.InsertBefore(items[1], items[0]); err != nil {
		t.Fatal(err)
	}
	done := false
	m.AnimateAll(func() { done = true })

	if items[0].Style("transform") != "" {
		t.Error("prevented element still got the inverse transform")
	}
	if m.InFlight() != 1 {
		t.Errorf("InFlight = %d, want 1 (only the unprevented mover)", m.InFlight())
	}
	sched.RunUntilIdle()
	if !done {
		t.Error("onComplete never fired")
	}
}

func TestFlipCancelAnimations(t *testing.T) {
	_, sched, list, items := newBoard(t)
	m := newManager(list, 100*time.Millisecond)

	cancels := 0
	items[0].AddEventListener(EventAnimationCancel, func(*dom.CustomEvent) { cancels++ })
	ends := 0
	items[0].AddEventListener(EventAnimationEnd, func(*dom.CustomEvent) { ends++ })

	m.CaptureState()
	if err := list.InsertBefore(items[1], items[0]); err != nil {
		t.Fatal(err)
	}
	done := false
	m.AnimateAll(func() { done = true })

	m.CancelAnimations()
	if m.InFlight() != 0 {
		t.Errorf("InFlight = %d after cancel", m.InFlight())
	}
	if cancels != 1 {
		t.Errorf("cancel events = %d, want 1", cancels)
	}
	if items[0].Style("transform") != "" || items[0].Style("transition") != "" {
		t.Error("cancel left inline styles behind")
	}

	sched.RunUntilIdle()
	if ends != 0 {
		t.Error("end event fired for a canceled animation")
	}
	if done {
		t.Error("onComplete fired after cancel dropped it")
	}
}

func TestFlipTransitionEndCompletesEarly(t *testing.T) {
	_, sched, list, items := newBoard(t)
	m := newManager(list, time.Second)

	ends := 0
	items[0].AddEventListener(EventAnimationEnd, func(*dom.CustomEvent) { ends++ })

	m.CaptureState()
	if err := list.InsertBefore(items[1], items[0]); err != nil {
		t.Fatal(err)
	}
	done := false
	m.AnimateAll(func() { done = true })
	sched.Step() // play frame

	items[0].DispatchEvent(dom.NewEvent(EventTransitionEnd, dom.EventInit{}))
	items[1].DispatchEvent(dom.NewEvent(EventTransitionEnd, dom.EventInit{}))

	if !done {
		t.Error("transitionend did not complete the pass")
	}
	if ends != 1 {
		t.Errorf("end events = %d, want 1", ends)
	}

	// The fallback timer must not fire a second completion.
	sched.Advance(2 * time.Second)
	if ends != 1 {
		t.Errorf("end events after fallback window = %d, want 1", ends)
	}
}

func TestFlipSkipsDetachedElements(t *testing.T) {
	_, sched, list, items := newBoard(t)
	m := newManager(list, 100*time.Millisecond)

	m.CaptureState()
	items[0].Remove()
	done := false
	m.AnimateAll(func() { done = true })

	if x, y := m.Animating(items[0]); x || y {
		t.Error("detached element animated")
	}
	if items[0].Style("transform") != "" {
		t.Error("detached element got animation styles")
	}
	// The remaining two items shift up and animate normally.
	if m.InFlight() != 2 {
		t.Errorf("InFlight = %d, want 2", m.InFlight())
	}
	sched.RunUntilIdle()
	if !done {
		t.Error("onComplete never fired")
	}
}

func TestFlipAddAndRemoveState(t *testing.T) {
	d, sched, list, items := newBoard(t)
	m := newManager(list, 100*time.Millisecond)

	// A freshly added element is unknown to CaptureState (it ran before the
	// insert); AddState supplies its origin rect manually.
	incoming := d.CreateElement("li")
	incoming.SetRect(dom.Rect{X: 200, Y: 200, Width: 100, Height: 30})

	m.CaptureState()
	m.RemoveState(items[2])
	list.AppendChild(incoming)
	m.AddState(incoming, dom.Rect{X: 200, Y: 200, Width: 100, Height: 30})

	// Also push the third item out of place; its capture was removed, so
	// it must not animate.
	if err := list.InsertBefore(items[2], items[0]); err != nil {
		t.Fatal(err)
	}
	m.AnimateAll(nil)

	if x, y := m.Animating(incoming); !x || !y {
		t.Errorf("incoming Animating = %v/%v, want both axes", x, y)
	}
	if x, y := m.Animating(items[2]); x || y {
		t.Error("element with removed capture still animated")
	}
	sched.RunUntilIdle()
}

func TestFlipRestartTowardNewTarget(t *testing.T) {
	_, sched, list, items := newBoard(t)
	m := newManager(list, 100*time.Millisecond)

	var starts, ends, cancels int
	items[0].AddEventListener(EventAnimationStart, func(*dom.CustomEvent) { starts++ })
	items[0].AddEventListener(EventAnimationEnd, func(*dom.CustomEvent) { ends++ })
	items[0].AddEventListener(EventAnimationCancel, func(*dom.CustomEvent) { cancels++ })

	m.CaptureState()
	if err := list.InsertBefore(items[1], items[0]); err != nil {
		t.Fatal(err)
	}
	m.AnimateAll(nil)

	// Reorder back mid-flight: the animation restarts toward the new
	// target without a cancel event.
	m.CaptureState()
	if err := list.InsertBefore(items[0], items[1]); err != nil {
		t.Fatal(err)
	}
	m.AnimateAll(nil)

	sched.RunUntilIdle()

	if starts != 2 {
		t.Errorf("start events = %d, want 2", starts)
	}
	if cancels != 0 {
		t.Errorf("cancel events = %d, want 0 (restart is silent)", cancels)
	}
	if ends != 1 {
		t.Errorf("end events = %d, want 1", ends)
	}
}

func TestFlipEasingWrittenVerbatim(t *testing.T) {
	_, sched, list, items := newBoard(t)
	m := New(list, Options{Duration: 150 * time.Millisecond, Easing: "cubic-bezier(1,0,0,1)"})

	m.CaptureState()
	if err := list.InsertBefore(items[1], items[0]); err != nil {
		t.Fatal(err)
	}
	m.AnimateAll(nil)
	sched.Step()

	want := "transform 150ms cubic-bezier(1,0,0,1)"
	if got := items[0].Style("transition"); got != want {
		t.Errorf("transition = %q, want %q", got, want)
	}
	sched.RunUntilIdle()
}

func TestFlipDestroy(t *testing.T) {
	_, _, list, items := newBoard(t)
	m := newManager(list, 100*time.Millisecond)

	m.CaptureState()
	if err := list.InsertBefore(items[1], items[0]); err != nil {
		t.Fatal(err)
	}
	m.AnimateAll(nil)
	m.Destroy()

	if m.InFlight() != 0 {
		t.Error("Destroy left animations in flight")
	}

	// A destroyed manager is inert but safe.
	m.CaptureState()
	done := false
	m.AnimateAll(func() { done = true })
	if !done {
		t.Error("destroyed manager should complete passes synchronously")
	}
}
