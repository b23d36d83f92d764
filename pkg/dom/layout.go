package dom

// LayoutFunc recomputes element rects from the tree. Documents that mirror
// a real browser leave this nil and receive measured rects from the client;
// headless documents install one (usually Flow) so reorders move geometry.
type LayoutFunc func(root *Element)

// Flow returns a LayoutFunc that stacks each container's visible children
// along dir, separated by gap, starting at the container's own origin.
// Children keep their measured sizes. Hidden elements and elements styled
// position:absolute (the drag ghost) occupy no flow space and keep their
// rects. Layout recurses, so nested containers flow too.
func Flow(dir Direction, gap float64) LayoutFunc {
	var flow func(e *Element)
	flow = func(e *Element) {
		cursor := dir.Start(e.rect)
		for _, c := range e.children {
			if !c.Visible() || c.styles["position"] == "absolute" {
				flow(c)
				continue
			}
			r := c.rect
			if dir == Vertical {
				r.X = e.rect.X
				r.Y = cursor
				cursor += r.Height + gap
			} else {
				r.X = cursor
				r.Y = e.rect.Y
				cursor += r.Width + gap
			}
			c.rect = r
			flow(c)
		}
	}
	return func(root *Element) {
		if root != nil {
			flow(root)
		}
	}
}
