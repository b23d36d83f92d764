package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	sortable "github.com/vango-dev/sortable"
	"github.com/vango-dev/sortable/pkg/dom"
	"github.com/vango-dev/sortable/pkg/event"
	"github.com/vango-dev/sortable/pkg/flip"
)

func demoCmd() *cobra.Command {
	var (
		items     int
		from      int
		to        int
		animation time.Duration
		easing    string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted drag on an in-memory board",
		Long: `Run a scripted drag on an in-memory board.

The demo builds a headless vertical list on a virtual clock, drags one
item to a new position through the normal pointer pipeline, and prints
the lifecycle and animation timeline as it unfolds.

Examples:
  sortable demo
  sortable demo --items=5 --from=0 --to=4
  sortable demo --animation=250ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(items, from, to, animation, easing)
		},
	}

	cmd.Flags().IntVarP(&items, "items", "n", 4, "Number of items on the board")
	cmd.Flags().IntVar(&from, "from", 0, "Index of the item to drag")
	cmd.Flags().IntVar(&to, "to", 2, "Index to drop it at")
	cmd.Flags().DurationVarP(&animation, "animation", "a", 150*time.Millisecond, "Reflow animation duration (0 disables)")
	cmd.Flags().StringVar(&easing, "easing", "", "Transition easing, written verbatim (e.g. ease-out)")

	return cmd
}

func runDemo(items, from, to int, animation time.Duration, easing string) error {
	if items < 2 {
		return fmt.Errorf("need at least 2 items, got %d", items)
	}
	if from < 0 || from >= items || to < 0 || to >= items {
		return fmt.Errorf("--from and --to must be in [0, %d)", items)
	}
	if from == to {
		return fmt.Errorf("--from and --to must differ")
	}

	printBanner()
	fmt.Println("  demo")
	fmt.Println()

	doc := dom.NewDocument()
	sched := dom.NewManualScheduler()
	doc.SetScheduler(sched)
	doc.SetLayoutFunc(dom.Flow(dom.Vertical, 0))
	doc.Root().SetRect(dom.Rect{Width: 800, Height: 600})

	const itemW, itemH = 200.0, 32.0
	list := doc.CreateElement("ul")
	list.SetID("demo-board")
	list.SetRect(dom.Rect{Width: itemW, Height: float64(items) * itemH})
	doc.Root().AppendChild(list)
	for i := 0; i < items; i++ {
		li := doc.CreateElement("li")
		li.AddClass("item")
		li.SetAttr("data-id", fmt.Sprintf("item-%d", i+1))
		li.SetRect(dom.Rect{Width: itemW, Height: itemH})
		list.AppendChild(li)
	}
	doc.Relayout()

	m := sortable.New(list, sortable.Options{Animation: animation, Easing: easing})
	defer m.Destroy()

	start := sched.Now()
	elapsed := func() string {
		return fmt.Sprintf("%6s", sched.Now().Sub(start).Round(time.Millisecond))
	}
	for _, typ := range []string{
		event.Choose, event.Start, event.Move, event.Update,
		event.Unchoose, event.End, event.Filter,
	} {
		m.On(typ, func(e *event.Event) {
			fmt.Printf("  %s  %-9s %s\n", elapsed(), typ, describe(e))
		})
	}
	for _, typ := range []string{flip.EventAnimationStart, flip.EventAnimationEnd} {
		list.AddEventListener(typ, func(ev *dom.CustomEvent) {
			label := strings.TrimPrefix(typ, "sortable:")
			fmt.Printf("  %s  %-9s %s\n", elapsed(), "flip", label)
		})
	}

	info("board:  %s", strings.Join(m.ToArray(), " "))
	info("drag:   index %d → index %d", from, to)
	fmt.Println()

	src := list.Children()[from].Rect()
	dst := list.Children()[to].Rect()
	g := demoGesture{doc: doc}
	g.press(src.MidX(), src.MidY())
	sched.Step()
	// Cross the target's midpoint so the insertion rule fires.
	g.move(dst.MidX(), dst.MidY()+itemH/4)
	sched.Step()
	g.release()
	sched.RunUntilIdle()

	fmt.Println()
	success("final order: %s", strings.Join(m.ToArray(), " "))
	return nil
}

func describe(e *event.Event) string {
	if e == nil || e.Item == nil {
		return ""
	}
	id := e.Item.Attr("data-id")
	if e.OldIndex != e.NewIndex {
		return fmt.Sprintf("%s %d → %d", id, e.OldIndex, e.NewIndex)
	}
	return fmt.Sprintf("%s at %d", id, e.OldIndex)
}

// demoGesture drives the pointer pipeline one phase at a time, keeping the
// last position so release needs no coordinates.
type demoGesture struct {
	doc  *dom.Document
	x, y float64
}

func (g *demoGesture) press(x, y float64) { g.phase(dom.PointerDown, x, y) }
func (g *demoGesture) move(x, y float64)  { g.phase(dom.PointerMove, x, y) }
func (g *demoGesture) release()           { g.phase(dom.PointerUp, g.x, g.y) }

func (g *demoGesture) phase(p dom.PointerPhase, x, y float64) {
	g.x, g.y = x, y
	g.doc.DispatchPointer(&dom.PointerEvent{Phase: p, X: x, Y: y})
}
