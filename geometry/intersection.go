package geometry

import "math"

// FindIntersectionPoint returns the point where the ray from p towards the
// center of r crosses the boundary of r. It returns false when p already lies
// inside r, in which case there is no meaningful crossing.
//
// Callers holding a point that is itself anchored to a shape should pass that
// shape's center rather than its computed position.
func FindIntersectionPoint(p Point, r Rect) (Point, bool) {
	if r.Contains(p) {
		return Point{}, false
	}

	c := r.Center()
	dx, dy := c.X-p.X, c.Y-p.Y

	left, right := r.X, r.X+r.Width
	top, bottom := r.Y, r.Y+r.Height

	best := Point{}
	bestDist := math.Inf(1)
	found := false

	consider := func(q Point) {
		d := Distance(p, q)
		if d < bestDist {
			best, bestDist, found = q, d, true
		}
	}

	// Vertical edges: solve p.X + t*dx = edgeX.
	if dx != 0 {
		for _, edgeX := range []float64{left, right} {
			t := (edgeX - p.X) / dx
			if t < 0 || t > 1 {
				continue
			}
			y := p.Y + t*dy
			if y >= top && y <= bottom {
				consider(Point{X: edgeX, Y: y})
			}
		}
	}

	// Horizontal edges: solve p.Y + t*dy = edgeY.
	if dy != 0 {
		for _, edgeY := range []float64{top, bottom} {
			t := (edgeY - p.Y) / dy
			if t < 0 || t > 1 {
				continue
			}
			x := p.X + t*dx
			if x >= left && x <= right {
				consider(Point{X: x, Y: edgeY})
			}
		}
	}

	return best, found
}
