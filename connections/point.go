package connections

import (
	"math"

	"classdraw/diagram"
	"classdraw/geometry"
)

// Point is a vertex of a connection polyline. The set of implementations is
// closed: *BasicPoint and *LoosePoint.
type Point interface {
	X() float64
	Y() float64
	// Position returns the current coordinates. ok is false when the
	// position is undefined, as for a loose point whose neighbor lies
	// inside the anchored shape.
	Position() (x, y float64, ok bool)
	IsSelected() bool
	SetSelected(selected bool)
	// Connection returns the owning connection, or nil before adoption.
	Connection() *Connection
	// Index returns the position of the point in its connection, or -1.
	Index() int
	// Remove deletes an interior vertex, merging its two adjoining parts.
	Remove() error

	base() *pointBase
	clone() Point
}

type pointBase struct {
	conn     *Connection
	selected bool
}

func (b *pointBase) base() *pointBase          { return b }
func (b *pointBase) IsSelected() bool          { return b.selected }
func (b *pointBase) SetSelected(selected bool) { b.selected = selected }
func (b *pointBase) Connection() *Connection   { return b.conn }

// BasicPoint is a vertex with literal coordinates.
type BasicPoint struct {
	pointBase
	x, y float64
}

// At returns a free-standing basic point, usable as a terminal of New.
func At(x, y float64) *BasicPoint {
	return &BasicPoint{x: x, y: y}
}

func (p *BasicPoint) X() float64 { return p.x }
func (p *BasicPoint) Y() float64 { return p.y }

func (p *BasicPoint) Position() (float64, float64, bool) {
	return p.x, p.y, true
}

// MoveTo sets the coordinates. Adjoining parts follow because they share
// the vertex.
func (p *BasicPoint) MoveTo(x, y float64) {
	p.x, p.y = x, y
}

func (p *BasicPoint) Index() int {
	return indexOf(p.conn, p)
}

func (p *BasicPoint) Remove() error {
	return removePoint(p.conn, p)
}

func (p *BasicPoint) clone() Point {
	return &BasicPoint{pointBase: pointBase{selected: p.selected}, x: p.x, y: p.y}
}

// LoosePoint is a vertex anchored to a shape boundary. Its coordinates are
// never stored; every read recomputes them from the shape's current bounds.
type LoosePoint struct {
	pointBase
	Node diagram.Positional
}

// Anchor returns a free-standing loose point attached to node.
func Anchor(node diagram.Positional) *LoosePoint {
	return &LoosePoint{Node: node}
}

// SnappingPoint is the center of the anchored shape. Other loose points use
// it instead of this point's computed position.
func (p *LoosePoint) SnappingPoint() geometry.Point {
	return p.Node.Center()
}

func (p *LoosePoint) Position() (float64, float64, bool) {
	neighbor, ok := p.neighbor()
	if !ok {
		return math.NaN(), math.NaN(), false
	}
	hit, ok := geometry.FindIntersectionPoint(neighbor, p.Node.Bounds())
	if !ok {
		return math.NaN(), math.NaN(), false
	}
	return hit.X, hit.Y, true
}

func (p *LoosePoint) X() float64 {
	x, _, _ := p.Position()
	return x
}

func (p *LoosePoint) Y() float64 {
	_, y, _ := p.Position()
	return y
}

// neighbor returns the adjacent vertex of the part holding p: the other end
// for a terminal, the previous vertex otherwise.
func (p *LoosePoint) neighbor() (geometry.Point, bool) {
	i := p.Index()
	if i < 0 {
		return geometry.Point{}, false
	}
	j := i - 1
	if i == 0 {
		j = 1
	}
	if j >= len(p.conn.points) {
		return geometry.Point{}, false
	}
	switch n := p.conn.points[j].(type) {
	case *LoosePoint:
		return n.SnappingPoint(), true
	case *BasicPoint:
		return geometry.Point{X: n.x, Y: n.y}, true
	}
	return geometry.Point{}, false
}

func (p *LoosePoint) Index() int {
	return indexOf(p.conn, p)
}

func (p *LoosePoint) Remove() error {
	return removePoint(p.conn, p)
}

func (p *LoosePoint) clone() Point {
	return &LoosePoint{pointBase: pointBase{selected: p.selected}, Node: p.Node}
}

func indexOf(c *Connection, p Point) int {
	if c == nil {
		return -1
	}
	for i, q := range c.points {
		if q == p {
			return i
		}
	}
	return -1
}
