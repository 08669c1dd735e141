package pathway

import "math"

// Point is a canvas coordinate.
type Point struct {
	X, Y float64
}

// Offset returns p moved by (dx, dy).
func (p Point) Offset(dx, dy float64) Point { return Point{p.X + dx, p.Y + dy} }

// Rect is an axis-aligned box given by its center and size, the way node
// graphics are stored in documents.
type Rect struct {
	CenterX, CenterY float64
	Width, Height    float64
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.CenterX - r.Width/2 }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.CenterY - r.Height/2 }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.CenterX + r.Width/2 }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.CenterY + r.Height/2 }

// TopLeft returns the upper left corner.
func (r Rect) TopLeft() Point { return Point{r.Left(), r.Top()} }

// IsEmpty reports whether r has no area and sits at the origin.
func (r Rect) IsEmpty() bool { return r == Rect{} }

// Offset returns r moved by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.CenterX += dx
	r.CenterY += dy
	return r
}

// Union returns the smallest rectangle containing both r and o.
// An empty rectangle is the identity.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return rectFromEdges(
		math.Min(r.Left(), o.Left()),
		math.Min(r.Top(), o.Top()),
		math.Max(r.Right(), o.Right()),
		math.Max(r.Bottom(), o.Bottom()),
	)
}

// RectFromPoints returns the bounding rectangle of pts.
func RectFromPoints(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return rectFromEdges(minX, minY, maxX, maxY)
}

func rectFromEdges(left, top, right, bottom float64) Rect {
	return Rect{
		CenterX: (left + right) / 2,
		CenterY: (top + bottom) / 2,
		Width:   right - left,
		Height:  bottom - top,
	}
}
