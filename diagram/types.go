// Package diagram contains the UML class-diagram model: positional shapes,
// classifier and leaf nodes, their features, and the element contract shared
// with connections.
package diagram

import (
	"errors"

	"classdraw/geometry"
	"classdraw/validation"

	"github.com/google/uuid"
)

// Record tags for every element kind. They are the keys of the save format.
const (
	TagClass          = "Class"
	TagInterface      = "Interface"
	TagDataType       = "DataType"
	TagPrimitive      = "Primitive"
	TagEnumeration    = "Enumeration"
	TagComment        = "Comment"
	TagAssociation    = "Association"
	TagAggregation    = "Aggregation"
	TagComposition    = "Composition"
	TagGeneralization = "Generalization"
)

var (
	// ErrUnresolved means a record references something that has not been
	// decoded yet. It is the only decode error worth retrying.
	ErrUnresolved = errors.New("reference not resolvable yet")

	// ErrMalformed means a record is structurally broken.
	ErrMalformed = errors.New("malformed record")

	// ErrTypeMismatch is returned by CopyFrom when the source is a different
	// element kind.
	ErrTypeMismatch = errors.New("element kind mismatch")
)

// Element is implemented by every node and connection kind. The set is
// closed: implementations live in this package and in connections.
type Element interface {
	Tag() string
	Validate() validation.Causes
	ToSerializable() Record
	Clone() Element
	CopyFrom(other Element) error
	ContainsDot(x, y float64) bool
	IsSelected() bool
	SetSelected(selected bool)
	Deselect()

	// sealed restricts implementations to the model packages.
	sealed()
}

// Sealed can be embedded by element kinds defined outside this package.
type Sealed struct{}

func (Sealed) sealed() {}

// Positional is an element with an origin and a bounding box.
type Positional interface {
	Element
	ShapeID() string
	Bounds() geometry.Rect
	Center() geometry.Point
	MoveBy(dx, dy float64)
}

// Shape holds the geometry shared by every node. Width and Height are filled
// in by the renderer and may be stale between renders.
type Shape struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Selected bool    `json:"-"` // transient
	Dragging bool    `json:"-"` // transient
}

// NewShape creates a shape at (x, y) with a fresh identifier.
func NewShape(x, y float64) Shape {
	return Shape{ID: NewID(), X: x, Y: y}
}

// NewID returns a fresh shape identifier.
func NewID() string {
	return uuid.New().String()
}

func (s *Shape) sealed() {}

// ShapeID returns the stable identifier used by saved references.
func (s *Shape) ShapeID() string { return s.ID }

// Bounds returns the current bounding box.
func (s *Shape) Bounds() geometry.Rect {
	return geometry.Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// Center returns the center of the bounding box.
func (s *Shape) Center() geometry.Point {
	return s.Bounds().Center()
}

// ContainsDot reports whether (x, y) lies within the bounding box.
func (s *Shape) ContainsDot(x, y float64) bool {
	return s.Bounds().Contains(geometry.Point{X: x, Y: y})
}

// MoveBy translates the shape origin.
func (s *Shape) MoveBy(dx, dy float64) {
	s.X += dx
	s.Y += dy
}

func (s *Shape) IsSelected() bool          { return s.Selected }
func (s *Shape) SetSelected(selected bool) { s.Selected = selected }

// Deselect clears the transient UI flags.
func (s *Shape) Deselect() {
	s.Selected = false
	s.Dragging = false
}

// copyGeometry copies the persisted fields of other, keeping the transient
// flags of the receiver.
func (s *Shape) copyGeometry(other *Shape) {
	s.ID = other.ID
	s.X, s.Y = other.X, other.Y
	s.Width, s.Height = other.Width, other.Height
}

func (s *Shape) writeRecord(r Record) {
	r["id"] = s.ID
	r["x"] = s.X
	r["y"] = s.Y
	r["width"] = s.Width
	r["height"] = s.Height
}

func (s *Shape) readRecord(rd *RecordReader) {
	s.ID = rd.String("id")
	if s.ID == "" {
		s.ID = NewID()
	}
	s.X = rd.Float("x")
	s.Y = rd.Float("y")
	s.Width = rd.Float("width")
	s.Height = rd.Float("height")
}
