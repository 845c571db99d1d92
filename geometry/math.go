// Package geometry holds the pure coordinate helpers used by the diagram model
// and the connection engine. Nothing in here keeps state.
package geometry

import "math"

// Point represents a 2D coordinate on the drawing surface.
type Point struct {
	X, Y float64
}

// Rect represents an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// Contains checks if a point is inside the rectangle. Edges count as inside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Midpoint returns the arithmetic mean of two points.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// IsPointWithinRadius reports whether (x, y) falls inside the square of
// half-width r centered on (cx, cy). Both bounds are inclusive.
func IsPointWithinRadius(x, y, cx, cy, r float64) bool {
	return math.Abs(x-cx) <= r && math.Abs(y-cy) <= r
}

// IsPointOnLine reports whether (x, y) lies within tol of the segment
// (x1, y1)-(x2, y2).
func IsPointOnLine(x, y, x1, y1, x2, y2, tol float64) bool {
	minX, maxX := math.Min(x1, x2), math.Max(x1, x2)
	minY, maxY := math.Min(y1, y2), math.Max(y1, y2)

	switch {
	case x1 == x2:
		return math.Abs(x-x1) <= tol && y >= minY && y <= maxY
	case y1 == y2:
		return math.Abs(y-y1) <= tol && x >= minX && x <= maxX
	}

	if x < minX || x > maxX || y < minY || y > maxY {
		return false
	}

	// Distance from the point to the infinite line through both ends.
	dx, dy := x2-x1, y2-y1
	dist := math.Abs(dy*x-dx*y+x2*y1-y2*x1) / math.Hypot(dx, dy)
	return dist <= tol
}

// CalculateAngleBetweenPoints returns the angle of the vector from
// (x1, y1) to (x2, y2), in radians.
func CalculateAngleBetweenPoints(x1, y1, x2, y2 float64) float64 {
	return math.Atan2(y2-y1, x2-x1)
}

// NormalizeRadians maps any angle into [0, 2π).
func NormalizeRadians(a float64) float64 {
	full := 2 * math.Pi
	a = math.Mod(a, full)
	if a < 0 {
		a += full
	}
	if a >= full {
		a = 0
	}
	return a
}
