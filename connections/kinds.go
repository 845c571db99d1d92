package connections

import (
	"fmt"

	"classdraw/diagram"
	"classdraw/validation"
)

// Navigability of an association end.
type Navigability string

const (
	NavigabilityUnspecified Navigability = "unspecified"
	Navigable               Navigability = "navigable"
	Unnavigable             Navigability = "unnavigable"
)

func (n Navigability) valid() bool {
	switch n {
	case "", NavigabilityUnspecified, Navigable, Unnavigable:
		return true
	}
	return false
}

// Offset is a label displacement in pixels.
type Offset struct {
	X, Y float64
}

// End is one end of an association.
type End struct {
	Name         string
	Multiplicity diagram.Multiplicity
	Navigability Navigability
	Owned        bool
}

func (e End) clone() End {
	e.Multiplicity = e.Multiplicity.Clone()
	return e
}

func (e End) validate(c *validation.Causes, prefix string) {
	validateEndLabels(c, prefix, e.Name, e.Multiplicity)
	if !e.Navigability.valid() {
		c.Add(prefix+"Navigability", validation.MsgInvalid)
	}
}

func (e End) writeRecord(r diagram.Record, prefix string) {
	r[prefix+"Name"] = e.Name
	r[prefix+"Multiplicity"] = e.Multiplicity.ToRecords()
	r[prefix+"Navigability"] = string(e.Navigability)
	r[prefix+"Owned"] = e.Owned
}

func readEnd(rd *diagram.RecordReader, prefix string) (End, error) {
	e := End{
		Name:         rd.String(prefix + "Name"),
		Navigability: Navigability(rd.String(prefix + "Navigability")),
		Owned:        rd.Bool(prefix + "Owned"),
	}
	mult, err := diagram.MultiplicityFromRecords(rd.Records(prefix + "Multiplicity"))
	if err != nil {
		return e, fmt.Errorf("%sMultiplicity: %w", prefix, err)
	}
	e.Multiplicity = mult
	return e, rd.Err()
}

// LabeledEnd is one end of an aggregation or composition. Offsets move the
// rendered labels away from the line.
type LabeledEnd struct {
	Name               string
	Multiplicity       diagram.Multiplicity
	NameOffset         Offset
	MultiplicityOffset Offset
}

func (e LabeledEnd) clone() LabeledEnd {
	e.Multiplicity = e.Multiplicity.Clone()
	return e
}

func (e LabeledEnd) validate(c *validation.Causes, prefix string) {
	validateEndLabels(c, prefix, e.Name, e.Multiplicity)
}

func (e LabeledEnd) writeRecord(r diagram.Record, prefix string) {
	r[prefix+"Name"] = e.Name
	r[prefix+"Multiplicity"] = e.Multiplicity.ToRecords()
	r[prefix+"NameOffset"] = offsetRecord(e.NameOffset)
	r[prefix+"MultiplicityOffset"] = offsetRecord(e.MultiplicityOffset)
}

func readLabeledEnd(rd *diagram.RecordReader, prefix string) (LabeledEnd, error) {
	e := LabeledEnd{Name: rd.String(prefix + "Name")}
	mult, err := diagram.MultiplicityFromRecords(rd.Records(prefix + "Multiplicity"))
	if err != nil {
		return e, fmt.Errorf("%sMultiplicity: %w", prefix, err)
	}
	e.Multiplicity = mult
	if e.NameOffset, err = readOffset(rd, prefix+"NameOffset"); err != nil {
		return e, err
	}
	if e.MultiplicityOffset, err = readOffset(rd, prefix+"MultiplicityOffset"); err != nil {
		return e, err
	}
	return e, rd.Err()
}

// validateEndLabels checks an end name (optional, then alphanumeric) and
// nests the multiplicity causes under "<prefix>Multiplicity".
func validateEndLabels(c *validation.Causes, prefix, name string, mult diagram.Multiplicity) {
	c.OptionalName(prefix+"Name", name)
	c.WrapField(prefix+"Multiplicity", mult.Validate())
}

func mismatch(dst, src diagram.Element) error {
	return fmt.Errorf("%w: cannot copy %s onto %s", diagram.ErrTypeMismatch, src.Tag(), dst.Tag())
}

// Association is a structural relationship with decorated ends.
type Association struct {
	Connection
	Source End
	Target End
}

// NewAssociation builds an association through the terminals.
func NewAssociation(terminals ...Point) (*Association, error) {
	a := &Association{}
	if err := a.init(terminals); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Association) Tag() string { return diagram.TagAssociation }

func (a *Association) Validate() validation.Causes {
	var c validation.Causes
	a.Source.validate(&c, "source")
	a.Target.validate(&c, "target")
	return c
}

func (a *Association) Clone() diagram.Element {
	out := &Association{Connection: a.cloneConnection(), Source: a.Source.clone(), Target: a.Target.clone()}
	out.bind()
	return out
}

func (a *Association) CopyFrom(other diagram.Element) error {
	o, ok := other.(*Association)
	if !ok {
		return mismatch(a, other)
	}
	a.copyConnection(&o.Connection)
	a.Source = o.Source.clone()
	a.Target = o.Target.clone()
	return nil
}

func (a *Association) ToSerializable() diagram.Record {
	r := diagram.Record{"tag": diagram.TagAssociation}
	a.writeRecord(r)
	a.Source.writeRecord(r, "source")
	a.Target.writeRecord(r, "target")
	return r
}

// DecodeAssociation builds an Association from its record.
func DecodeAssociation(rec diagram.Record, decoded []diagram.Element) (diagram.Element, error) {
	a := &Association{}
	rd := diagram.NewRecordReader(rec)
	if err := a.readRecord(rd, decoded); err != nil {
		return nil, err
	}
	var err error
	if a.Source, err = readEnd(rd, "source"); err != nil {
		return nil, err
	}
	if a.Target, err = readEnd(rd, "target"); err != nil {
		return nil, err
	}
	return a, nil
}

// Aggregation is a whole-part relationship. Shared draws the hollow
// diamond.
type Aggregation struct {
	Connection
	Source LabeledEnd
	Target LabeledEnd
	Shared bool
}

// NewAggregation builds an aggregation through the terminals.
func NewAggregation(terminals ...Point) (*Aggregation, error) {
	a := &Aggregation{}
	if err := a.init(terminals); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Aggregation) Tag() string { return diagram.TagAggregation }

func (a *Aggregation) Validate() validation.Causes {
	var c validation.Causes
	a.Source.validate(&c, "source")
	a.Target.validate(&c, "target")
	return c
}

func (a *Aggregation) Clone() diagram.Element {
	out := &Aggregation{
		Connection: a.cloneConnection(),
		Source:     a.Source.clone(),
		Target:     a.Target.clone(),
		Shared:     a.Shared,
	}
	out.bind()
	return out
}

func (a *Aggregation) CopyFrom(other diagram.Element) error {
	o, ok := other.(*Aggregation)
	if !ok {
		return mismatch(a, other)
	}
	a.copyConnection(&o.Connection)
	a.Source = o.Source.clone()
	a.Target = o.Target.clone()
	a.Shared = o.Shared
	return nil
}

func (a *Aggregation) ToSerializable() diagram.Record {
	r := diagram.Record{"tag": diagram.TagAggregation, "isShared": a.Shared}
	a.writeRecord(r)
	a.Source.writeRecord(r, "source")
	a.Target.writeRecord(r, "target")
	return r
}

// DecodeAggregation builds an Aggregation from its record.
func DecodeAggregation(rec diagram.Record, decoded []diagram.Element) (diagram.Element, error) {
	a := &Aggregation{}
	rd := diagram.NewRecordReader(rec)
	if err := a.readRecord(rd, decoded); err != nil {
		return nil, err
	}
	var err error
	if a.Source, err = readLabeledEnd(rd, "source"); err != nil {
		return nil, err
	}
	if a.Target, err = readLabeledEnd(rd, "target"); err != nil {
		return nil, err
	}
	a.Shared = rd.Bool("isShared")
	return a, rd.Err()
}

// Composition is a strong whole-part relationship. Reversed puts the diamond
// on the start point.
type Composition struct {
	Connection
	Source   LabeledEnd
	Target   LabeledEnd
	Reversed bool
}

// NewComposition builds a composition through the terminals.
func NewComposition(terminals ...Point) (*Composition, error) {
	c := &Composition{}
	if err := c.init(terminals); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Composition) Tag() string { return diagram.TagComposition }

func (c *Composition) Validate() validation.Causes {
	var causes validation.Causes
	c.Source.validate(&causes, "source")
	c.Target.validate(&causes, "target")
	return causes
}

func (c *Composition) Clone() diagram.Element {
	out := &Composition{
		Connection: c.cloneConnection(),
		Source:     c.Source.clone(),
		Target:     c.Target.clone(),
		Reversed:   c.Reversed,
	}
	out.bind()
	return out
}

func (c *Composition) CopyFrom(other diagram.Element) error {
	o, ok := other.(*Composition)
	if !ok {
		return mismatch(c, other)
	}
	c.copyConnection(&o.Connection)
	c.Source = o.Source.clone()
	c.Target = o.Target.clone()
	c.Reversed = o.Reversed
	return nil
}

func (c *Composition) ToSerializable() diagram.Record {
	r := diagram.Record{"tag": diagram.TagComposition, "isReversed": c.Reversed}
	c.writeRecord(r)
	c.Source.writeRecord(r, "source")
	c.Target.writeRecord(r, "target")
	return r
}

// DecodeComposition builds a Composition from its record.
func DecodeComposition(rec diagram.Record, decoded []diagram.Element) (diagram.Element, error) {
	c := &Composition{}
	rd := diagram.NewRecordReader(rec)
	if err := c.readRecord(rd, decoded); err != nil {
		return nil, err
	}
	var err error
	if c.Source, err = readLabeledEnd(rd, "source"); err != nil {
		return nil, err
	}
	if c.Target, err = readLabeledEnd(rd, "target"); err != nil {
		return nil, err
	}
	c.Reversed = rd.Bool("isReversed")
	return c, rd.Err()
}

// Generalization points from the specific classifier to the general one,
// or the other way round when Reversed.
type Generalization struct {
	Connection
	Reversed bool
}

// NewGeneralization builds a generalization through the terminals.
func NewGeneralization(terminals ...Point) (*Generalization, error) {
	g := &Generalization{}
	if err := g.init(terminals); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Generalization) Tag() string { return diagram.TagGeneralization }

func (g *Generalization) Clone() diagram.Element {
	out := &Generalization{Connection: g.cloneConnection(), Reversed: g.Reversed}
	out.bind()
	return out
}

func (g *Generalization) CopyFrom(other diagram.Element) error {
	o, ok := other.(*Generalization)
	if !ok {
		return mismatch(g, other)
	}
	g.copyConnection(&o.Connection)
	g.Reversed = o.Reversed
	return nil
}

func (g *Generalization) ToSerializable() diagram.Record {
	r := diagram.Record{"tag": diagram.TagGeneralization, "isReversed": g.Reversed}
	g.writeRecord(r)
	return r
}

// DecodeGeneralization builds a Generalization from its record.
func DecodeGeneralization(rec diagram.Record, decoded []diagram.Element) (diagram.Element, error) {
	g := &Generalization{}
	rd := diagram.NewRecordReader(rec)
	if err := g.readRecord(rd, decoded); err != nil {
		return nil, err
	}
	g.Reversed = rd.Bool("isReversed")
	return g, rd.Err()
}

// PolylineOf returns the embedded polyline of a connection element, or nil
// for nodes.
func PolylineOf(el diagram.Element) *Connection {
	switch c := el.(type) {
	case *Association:
		return &c.Connection
	case *Aggregation:
		return &c.Connection
	case *Composition:
		return &c.Connection
	case *Generalization:
		return &c.Connection
	default:
		return nil
	}
}
