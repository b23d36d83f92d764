package dom

// Rect is an axis-aligned bounding rectangle in host coordinates.
// It mirrors the geometry a browser reports from getBoundingClientRect.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Left returns the left edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the top edge.
func (r Rect) Top() float64 { return r.Y }

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// MidX returns the horizontal midpoint.
func (r Rect) MidX() float64 { return r.X + r.Width/2 }

// MidY returns the vertical midpoint.
func (r Rect) MidY() float64 { return r.Y + r.Height/2 }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the left/top edges are inside, points on the right/bottom
// edges are not, so adjacent rectangles never both claim a point.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// IsZero reports whether the rectangle is the zero value.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Direction is the primary layout axis of a container.
type Direction uint8

const (
	// Vertical lays items out top to bottom.
	Vertical Direction = iota
	// Horizontal lays items out left to right.
	Horizontal
)

// String returns "vertical" or "horizontal".
func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Axis returns the coordinate along the direction's primary axis.
func (d Direction) Axis(x, y float64) float64 {
	if d == Horizontal {
		return x
	}
	return y
}

// Mid returns the rectangle's midpoint on the direction's primary axis.
func (d Direction) Mid(r Rect) float64 {
	if d == Horizontal {
		return r.MidX()
	}
	return r.MidY()
}

// Start returns the rectangle's leading edge on the primary axis.
func (d Direction) Start(r Rect) float64 {
	if d == Horizontal {
		return r.Left()
	}
	return r.Top()
}

// End returns the rectangle's trailing edge on the primary axis.
func (d Direction) End(r Rect) float64 {
	if d == Horizontal {
		return r.Right()
	}
	return r.Bottom()
}
