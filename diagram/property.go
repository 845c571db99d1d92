package diagram

import (
	"classdraw/validation"
)

// Property is an attribute of a classifier.
type Property struct {
	Visibility   Visibility
	IsDerived    bool
	Name         string
	Type         string
	Multiplicity Multiplicity
	DefaultValue string
	IsStatic     bool
	Modifiers    PropertyModifiers
}

// NewProperty returns a property with the given name and type.
func NewProperty(name, typ string) Property {
	return Property{Name: name, Type: typ}
}

// String renders the property in UML notation, e.g.
// "+/count: int [0..*] = 0 {readOnly}".
func (p Property) String() string {
	s := p.Visibility.Symbol()
	if p.IsDerived {
		s += "/"
	}
	return s + p.Name + typedSuffix(p.Type, p.Multiplicity, p.DefaultValue, p.Modifiers.labels())
}

// Validate checks name, type, default value, multiplicity and modifiers, in
// that order.
func (p Property) Validate() validation.Causes {
	var c validation.Causes
	c.Name("name", p.Name)
	validateTyped(&c, p.Type, p.Multiplicity, p.DefaultValue)
	p.Modifiers.validate(&c, len(p.Multiplicity) > 0)
	if p.Modifiers.Subsets != "" && !validation.IsAlphanumeric(p.Modifiers.Subsets) {
		c.Add("subsets", validation.MsgAlphanumeric)
	}
	if p.Modifiers.Redefines != "" && !validation.IsAlphanumeric(p.Modifiers.Redefines) {
		c.Add("redefines", validation.MsgAlphanumeric)
	}
	return c
}

// Clone returns a deep copy.
func (p Property) Clone() Property {
	out := p
	out.Multiplicity = p.Multiplicity.Clone()
	return out
}

// Equal compares two properties by value.
func (p Property) Equal(o Property) bool {
	return p.Visibility == o.Visibility &&
		p.IsDerived == o.IsDerived &&
		p.Name == o.Name &&
		p.Type == o.Type &&
		p.Multiplicity.Equal(o.Multiplicity) &&
		p.DefaultValue == o.DefaultValue &&
		p.IsStatic == o.IsStatic &&
		p.Modifiers == o.Modifiers
}

// ToRecord serializes the property.
func (p Property) ToRecord() Record {
	return Record{
		"visibility":   string(p.Visibility),
		"isDerived":    p.IsDerived,
		"name":         p.Name,
		"type":         p.Type,
		"multiplicity": p.Multiplicity.ToRecords(),
		"defaultValue": p.DefaultValue,
		"isStatic":     p.IsStatic,
		"modifiers":    p.Modifiers.toRecord(),
	}
}

// PropertyFromRecord decodes the output of ToRecord.
func PropertyFromRecord(rec Record) (Property, error) {
	rd := NewRecordReader(rec)
	p := Property{
		Visibility:   Visibility(rd.String("visibility")),
		IsDerived:    rd.Bool("isDerived"),
		Name:         rd.String("name"),
		Type:         rd.String("type"),
		DefaultValue: rd.String("defaultValue"),
		IsStatic:     rd.Bool("isStatic"),
	}
	mods := NewRecordReader(rd.Record("modifiers"))
	p.Modifiers.readRecord(mods)
	if err := mods.Err(); err != nil {
		return p, err
	}
	mult, err := MultiplicityFromRecords(rd.Records("multiplicity"))
	if err != nil {
		return p, err
	}
	p.Multiplicity = mult
	return p, rd.Err()
}
