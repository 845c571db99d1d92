package diagram

import (
	"fmt"
	"slices"

	"classdraw/validation"
)

// Primitive is a UML primitive type.
type Primitive struct {
	Shape
	Name string
}

// NewPrimitive creates a primitive at (x, y).
func NewPrimitive(name string, x, y float64) *Primitive {
	return &Primitive{Shape: NewShape(x, y), Name: name}
}

func (p *Primitive) Tag() string { return TagPrimitive }

func (p *Primitive) Validate() validation.Causes {
	var c validation.Causes
	c.Name("name", p.Name)
	return c
}

func (p *Primitive) Clone() Element {
	out := *p
	return &out
}

func (p *Primitive) CopyFrom(other Element) error {
	o, ok := other.(*Primitive)
	if !ok {
		return fmt.Errorf("%w: cannot copy %s onto %s", ErrTypeMismatch, other.Tag(), p.Tag())
	}
	p.copyGeometry(&o.Shape)
	p.Name = o.Name
	return nil
}

func (p *Primitive) ToSerializable() Record {
	r := Record{"tag": TagPrimitive, "name": p.Name}
	p.writeRecord(r)
	return r
}

// DecodePrimitive builds a Primitive from its record.
func DecodePrimitive(rec Record, _ []Element) (Element, error) {
	p := &Primitive{}
	rd := NewRecordReader(rec)
	p.readRecord(rd)
	p.Name = rd.String("name")
	return p, rd.Err()
}

// Enumeration is a UML enumeration with an ordered list of literals.
type Enumeration struct {
	Shape
	Name     string
	Literals []string
}

// NewEnumeration creates an enumeration at (x, y).
func NewEnumeration(name string, x, y float64, literals ...string) *Enumeration {
	return &Enumeration{Shape: NewShape(x, y), Name: name, Literals: literals}
}

func (e *Enumeration) Tag() string { return TagEnumeration }

// Validate checks the name and then each literal.
func (e *Enumeration) Validate() validation.Causes {
	var c validation.Causes
	c.Name("name", e.Name)
	for i, lit := range e.Literals {
		var lc validation.Causes
		lc.Name("value", lit)
		c.Wrap("literals", i, lc)
	}
	return c
}

func (e *Enumeration) Clone() Element {
	out := *e
	out.Literals = slices.Clone(e.Literals)
	return &out
}

func (e *Enumeration) CopyFrom(other Element) error {
	o, ok := other.(*Enumeration)
	if !ok {
		return fmt.Errorf("%w: cannot copy %s onto %s", ErrTypeMismatch, other.Tag(), e.Tag())
	}
	e.copyGeometry(&o.Shape)
	e.Name = o.Name
	e.Literals = slices.Clone(o.Literals)
	return nil
}

func (e *Enumeration) ToSerializable() Record {
	lits := make([]any, len(e.Literals))
	for i, l := range e.Literals {
		lits[i] = l
	}
	r := Record{"tag": TagEnumeration, "name": e.Name, "literals": lits}
	e.writeRecord(r)
	return r
}

// DecodeEnumeration builds an Enumeration from its record.
func DecodeEnumeration(rec Record, _ []Element) (Element, error) {
	e := &Enumeration{}
	rd := NewRecordReader(rec)
	e.readRecord(rd)
	e.Name = rd.String("name")
	e.Literals = rd.Strings("literals")
	return e, rd.Err()
}

// Comment is a free-text note.
type Comment struct {
	Shape
	Text string
}

// NewComment creates a comment at (x, y).
func NewComment(text string, x, y float64) *Comment {
	return &Comment{Shape: NewShape(x, y), Text: text}
}

func (c *Comment) Tag() string { return TagComment }

// Validate always succeeds; comments carry free text.
func (c *Comment) Validate() validation.Causes { return nil }

func (c *Comment) Clone() Element {
	out := *c
	return &out
}

func (c *Comment) CopyFrom(other Element) error {
	o, ok := other.(*Comment)
	if !ok {
		return fmt.Errorf("%w: cannot copy %s onto %s", ErrTypeMismatch, other.Tag(), c.Tag())
	}
	c.copyGeometry(&o.Shape)
	c.Text = o.Text
	return nil
}

func (c *Comment) ToSerializable() Record {
	r := Record{"tag": TagComment, "text": c.Text}
	c.writeRecord(r)
	return r
}

// DecodeComment builds a Comment from its record.
func DecodeComment(rec Record, _ []Element) (Element, error) {
	c := &Comment{}
	rd := NewRecordReader(rec)
	c.readRecord(rd)
	c.Text = rd.String("text")
	return c, rd.Err()
}
