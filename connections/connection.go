// Package connections implements the connector geometry engine: polyline
// connections made of parts that share vertices, loose points anchored to
// shape boundaries, and the decorated UML relationship kinds.
package connections

import (
	"errors"
	"fmt"
	"slices"

	"classdraw/diagram"
	"classdraw/validation"
)

var (
	// ErrPointNotFound means a point is not part of the connection it
	// claims to belong to.
	ErrPointNotFound = errors.New("connection does not contain the point")

	// ErrTerminalPoint is returned when removing a start or end point.
	ErrTerminalPoint = errors.New("cannot remove a terminal point")

	// ErrTooFewPoints is returned when building a connection from fewer
	// than two terminals.
	ErrTooFewPoints = errors.New("connection needs at least two points")

	// ErrNotBasic is returned when moving a vertex that is anchored to a
	// shape.
	ErrNotBasic = errors.New("point is anchored to a shape")
)

// Connection is an ordered polyline. Points are listed in path order and
// part k always runs from point k to point k+1.
type Connection struct {
	diagram.Sealed

	points   []Point
	parts    []*Part
	selected bool
}

// New builds a connection through the given terminals. Free-standing points
// are adopted as they are; a point that already belongs to a connection is
// copied so its owner stays intact.
func New(terminals ...Point) (*Connection, error) {
	c := &Connection{}
	if err := c.init(terminals); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Connection) init(terminals []Point) error {
	if len(terminals) < 2 {
		return ErrTooFewPoints
	}
	c.points = make([]Point, 0, len(terminals))
	for _, t := range terminals {
		if t == nil {
			return fmt.Errorf("nil terminal: %w", ErrTooFewPoints)
		}
		c.adopt(t)
	}
	c.chain()
	return nil
}

func (c *Connection) adopt(p Point) {
	if p.Connection() != nil {
		p = p.clone()
	}
	p.base().conn = c
	c.points = append(c.points, p)
}

// chain rebuilds the parts as consecutive index pairs.
func (c *Connection) chain() {
	c.parts = make([]*Part, 0, len(c.points)-1)
	for i := 0; i+1 < len(c.points); i++ {
		c.parts = append(c.parts, &Part{parent: c, start: i, end: i + 1})
	}
}

// StartPoint returns the first vertex.
func (c *Connection) StartPoint() Point { return c.points[0] }

// EndPoint returns the last vertex.
func (c *Connection) EndPoint() Point { return c.points[len(c.points)-1] }

// Points returns the vertices in path order.
func (c *Connection) Points() []Point { return slices.Clone(c.points) }

// Parts returns the segments in path order.
func (c *Connection) Parts() []*Part { return slices.Clone(c.parts) }

// Part returns the i-th segment.
func (c *Connection) Part(i int) *Part { return c.parts[i] }

// ContainsDot reports whether any part contains (x, y).
func (c *Connection) ContainsDot(x, y float64) bool {
	for _, p := range c.parts {
		if p.ContainsDot(x, y) {
			return true
		}
	}
	return false
}

func (c *Connection) IsSelected() bool          { return c.selected }
func (c *Connection) SetSelected(selected bool) { c.selected = selected }

// Deselect clears the selection flag of the connection, its parts and their
// points.
func (c *Connection) Deselect() {
	c.selected = false
	for _, p := range c.parts {
		p.selected = false
		p.StartPoint().SetSelected(false)
		p.EndPoint().SetSelected(false)
	}
}

// Validate is the base rule set; plain connections are always valid.
func (c *Connection) Validate() validation.Causes { return nil }

// MovePoint moves the basic vertex at index i.
func (c *Connection) MovePoint(i int, x, y float64) error {
	if i < 0 || i >= len(c.points) {
		return fmt.Errorf("point %d: %w", i, ErrPointNotFound)
	}
	bp, ok := c.points[i].(*BasicPoint)
	if !ok {
		return fmt.Errorf("point %d: %w", i, ErrNotBasic)
	}
	bp.MoveTo(x, y)
	return nil
}

// Translate moves every basic vertex. Loose vertices follow their shapes.
func (c *Connection) Translate(dx, dy float64) {
	for _, p := range c.points {
		if bp, ok := p.(*BasicPoint); ok {
			bp.MoveTo(bp.x+dx, bp.y+dy)
		}
	}
}

// ToLoose replaces the vertex at index i with a loose point anchored to
// node. Every part sharing the slot sees the new point.
func (c *Connection) ToLoose(i int, node diagram.Positional) (*LoosePoint, error) {
	if i < 0 || i >= len(c.points) {
		return nil, fmt.Errorf("point %d: %w", i, ErrPointNotFound)
	}
	lp := Anchor(node)
	c.replace(i, lp)
	return lp, nil
}

// ToBasic replaces the vertex at index i with a basic point at its current
// position. A loose point with an undefined position falls back to the
// center of its shape.
func (c *Connection) ToBasic(i int) (*BasicPoint, error) {
	if i < 0 || i >= len(c.points) {
		return nil, fmt.Errorf("point %d: %w", i, ErrPointNotFound)
	}
	old := c.points[i]
	if bp, ok := old.(*BasicPoint); ok {
		return bp, nil
	}
	x, y, ok := old.Position()
	if !ok {
		center := old.(*LoosePoint).SnappingPoint()
		x, y = center.X, center.Y
	}
	bp := At(x, y)
	c.replace(i, bp)
	return bp, nil
}

func (c *Connection) replace(i int, p Point) {
	old := c.points[i]
	b := p.base()
	b.conn = c
	b.selected = old.IsSelected()
	old.base().conn = nil
	c.points[i] = p
}

func removePoint(c *Connection, p Point) error {
	i := indexOf(c, p)
	if i < 0 {
		return ErrPointNotFound
	}
	if i == 0 || i == len(c.points)-1 {
		return ErrTerminalPoint
	}
	// parts[i-1] ends at p and parts[i] starts at it.
	c.parts[i-1].end = c.parts[i].end
	c.parts = slices.Delete(c.parts, i, i+1)
	c.points = slices.Delete(c.points, i, i+1)
	for _, q := range c.parts[i-1:] {
		if q.start > i {
			q.start--
		}
		if q.end > i {
			q.end--
		}
	}
	p.base().conn = nil
	return nil
}

// cloneConnection copies the polyline. The copy has its own points and parts;
// adjacent parts of the copy share their vertices just like the source.
func (c *Connection) cloneConnection() Connection {
	out := Connection{selected: c.selected}
	out.points = make([]Point, len(c.points))
	for i, p := range c.points {
		out.points[i] = p.clone()
	}
	out.parts = make([]*Part, len(c.parts))
	for i, p := range c.parts {
		out.parts[i] = &Part{start: p.start, end: p.end, selected: p.selected}
	}
	return out
}

// bind points the back references of points and parts at c. It must run
// once the connection has its final address.
func (c *Connection) bind() {
	for _, p := range c.points {
		p.base().conn = c
	}
	for _, p := range c.parts {
		p.parent = c
	}
}

func (c *Connection) copyConnection(other *Connection) {
	clone := other.cloneConnection()
	c.points = clone.points
	c.parts = clone.parts
	c.bind()
}
