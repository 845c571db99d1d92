package connections

import (
	"slices"

	"classdraw/geometry"
)

// ClickTolerance is the distance, in pixels, within which a click selects a
// part.
const ClickTolerance = 5.0

// Part is one straight segment of a connection. It stores indices into the
// parent's point list; adjacent parts store the same index for their shared
// vertex.
type Part struct {
	parent     *Connection
	start, end int
	selected   bool
}

// StartPoint returns the first vertex of the segment.
func (p *Part) StartPoint() Point { return p.parent.points[p.start] }

// EndPoint returns the last vertex of the segment.
func (p *Part) EndPoint() Point { return p.parent.points[p.end] }

// Parent returns the owning connection.
func (p *Part) Parent() *Connection { return p.parent }

// Index returns the position of the part in its connection, or -1.
func (p *Part) Index() int {
	for i, q := range p.parent.parts {
		if q == p {
			return i
		}
	}
	return -1
}

func (p *Part) IsSelected() bool          { return p.selected }
func (p *Part) SetSelected(selected bool) { p.selected = selected }

// Angle is the direction of the segment in radians.
func (p *Part) Angle() float64 {
	s, e := p.StartPoint(), p.EndPoint()
	return geometry.CalculateAngleBetweenPoints(s.X(), s.Y(), e.X(), e.Y())
}

// ContainsDot reports whether (x, y) lies on the segment within
// ClickTolerance. Segments with an undefined end never match.
func (p *Part) ContainsDot(x, y float64) bool {
	x1, y1, ok1 := p.StartPoint().Position()
	x2, y2, ok2 := p.EndPoint().Position()
	if !ok1 || !ok2 {
		return false
	}
	return geometry.IsPointOnLine(x, y, x1, y1, x2, y2, ClickTolerance)
}

// Break splits the segment at its midpoint. The receiver keeps its start and
// ends at the new vertex; a new part runs from the vertex to the old end.
func (p *Part) Break() *BasicPoint {
	s, e := p.StartPoint(), p.EndPoint()
	mid := geometry.Midpoint(
		geometry.Point{X: s.X(), Y: s.Y()},
		geometry.Point{X: e.X(), Y: e.Y()},
	)

	c := p.parent
	at := p.end
	vertex := At(mid.X, mid.Y)
	vertex.conn = c
	c.points = slices.Insert(c.points, at, Point(vertex))

	idx := p.Index()
	for _, q := range c.parts[idx+1:] {
		q.start++
		q.end++
	}
	tail := &Part{parent: c, start: at, end: p.end + 1}
	p.end = at
	c.parts = slices.Insert(c.parts, idx+1, tail)
	return vertex
}
