package diagram

import (
	"strings"

	"classdraw/validation"
)

// Parameter is one parameter of an operation.
type Parameter struct {
	Direction    Direction
	Name         string
	Type         string
	Multiplicity Multiplicity
	DefaultValue string
	Modifiers    CollectionModifiers
}

// NewParameter returns a parameter with the given name and type.
func NewParameter(name, typ string) Parameter {
	return Parameter{Name: name, Type: typ}
}

// String renders the parameter, e.g. "in items: Item [*] {ordered}".
func (p Parameter) String() string {
	s := ""
	if p.Direction != DirectionNone {
		s = string(p.Direction) + " "
	}
	return s + p.Name + typedSuffix(p.Type, p.Multiplicity, p.DefaultValue, p.Modifiers.labels())
}

// Validate checks name, type, default value, multiplicity and modifiers.
func (p Parameter) Validate() validation.Causes {
	var c validation.Causes
	c.Name("name", p.Name)
	validateTyped(&c, p.Type, p.Multiplicity, p.DefaultValue)
	p.Modifiers.validate(&c, len(p.Multiplicity) > 0)
	return c
}

// Clone returns a deep copy.
func (p Parameter) Clone() Parameter {
	out := p
	out.Multiplicity = p.Multiplicity.Clone()
	return out
}

// Equal compares two parameters by value.
func (p Parameter) Equal(o Parameter) bool {
	return p.Direction == o.Direction &&
		p.Name == o.Name &&
		p.Type == o.Type &&
		p.Multiplicity.Equal(o.Multiplicity) &&
		p.DefaultValue == o.DefaultValue &&
		p.Modifiers == o.Modifiers
}

// ToRecord serializes the parameter.
func (p Parameter) ToRecord() Record {
	mods := Record{}
	p.Modifiers.writeRecord(mods)
	return Record{
		"direction":    string(p.Direction),
		"name":         p.Name,
		"type":         p.Type,
		"multiplicity": p.Multiplicity.ToRecords(),
		"defaultValue": p.DefaultValue,
		"properties":   mods,
	}
}

// ParameterFromRecord decodes the output of ToRecord.
func ParameterFromRecord(rec Record) (Parameter, error) {
	rd := NewRecordReader(rec)
	p := Parameter{
		Direction:    Direction(rd.String("direction")),
		Name:         rd.String("name"),
		Type:         rd.String("type"),
		DefaultValue: rd.String("defaultValue"),
	}
	mods := NewRecordReader(rd.Record("properties"))
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

// Operation is a behavioral feature of a classifier.
type Operation struct {
	Name               string
	Params             []Parameter
	Visibility         Visibility
	ReturnType         string
	ReturnMultiplicity Multiplicity
	IsStatic           bool
	IsAbstract         bool
	Modifiers          OperationModifiers
	Redefines          string
}

// NewOperation returns an operation with the given name and parameters.
func NewOperation(name string, params ...Parameter) Operation {
	return Operation{Name: name, Params: params}
}

// String renders the operation, e.g. "+total(in qty: int): float {query}".
func (o Operation) String() string {
	var sb strings.Builder
	sb.WriteString(o.Visibility.Symbol())
	sb.WriteString(o.Name)
	sb.WriteString("(")
	for i, p := range o.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	if o.ReturnType != "" {
		sb.WriteString(": ")
		sb.WriteString(o.ReturnType)
	}
	if m := o.ReturnMultiplicity.String(); m != "" {
		sb.WriteString(" ")
		sb.WriteString(m)
	}
	labels := o.Modifiers.labels()
	if o.Redefines != "" {
		labels = append(labels, "redefines "+o.Redefines)
	}
	if b := braces(labels); b != "" {
		sb.WriteString(" ")
		sb.WriteString(b)
	}
	return sb.String()
}

// Validate checks the name, each parameter, the return type and
// multiplicity, then the operation-level rules.
func (o Operation) Validate() validation.Causes {
	var c validation.Causes
	c.Name("name", o.Name)
	for i, p := range o.Params {
		c.Wrap("params", i, p.Validate())
	}
	if !validation.IsAlphanumericWithBrackets(o.ReturnType) {
		c.Add("returnType", validation.MsgAlphanumericBrackets)
	}
	c.WrapField("returnMultiplicity", o.ReturnMultiplicity.Validate())
	if o.IsStatic && o.IsAbstract {
		c.Add("isAbstract", validation.MsgStaticAbstract)
	}
	o.Modifiers.validate(&c, len(o.ReturnMultiplicity) > 0)
	if o.Redefines != "" && !validation.IsAlphanumeric(o.Redefines) {
		c.Add("redefines", validation.MsgAlphanumeric)
	}
	return c
}

// Clone returns a deep copy.
func (o Operation) Clone() Operation {
	out := o
	if o.Params != nil {
		out.Params = make([]Parameter, len(o.Params))
		for i, p := range o.Params {
			out.Params[i] = p.Clone()
		}
	}
	out.ReturnMultiplicity = o.ReturnMultiplicity.Clone()
	return out
}

// Equal compares two operations by value.
func (o Operation) Equal(other Operation) bool {
	if len(o.Params) != len(other.Params) {
		return false
	}
	for i := range o.Params {
		if !o.Params[i].Equal(other.Params[i]) {
			return false
		}
	}
	return o.Name == other.Name &&
		o.Visibility == other.Visibility &&
		o.ReturnType == other.ReturnType &&
		o.ReturnMultiplicity.Equal(other.ReturnMultiplicity) &&
		o.IsStatic == other.IsStatic &&
		o.IsAbstract == other.IsAbstract &&
		o.Modifiers == other.Modifiers &&
		o.Redefines == other.Redefines
}

// ToRecord serializes the operation.
func (o Operation) ToRecord() Record {
	params := make([]any, len(o.Params))
	for i, p := range o.Params {
		params[i] = p.ToRecord()
	}
	return Record{
		"name":               o.Name,
		"params":             params,
		"visibility":         string(o.Visibility),
		"returnType":         o.ReturnType,
		"returnMultiplicity": o.ReturnMultiplicity.ToRecords(),
		"isStatic":           o.IsStatic,
		"isAbstract":         o.IsAbstract,
		"properties":         o.Modifiers.toRecord(),
		"redefines":          o.Redefines,
	}
}

// OperationFromRecord decodes the output of ToRecord.
func OperationFromRecord(rec Record) (Operation, error) {
	rd := NewRecordReader(rec)
	o := Operation{
		Name:       rd.String("name"),
		Visibility: Visibility(rd.String("visibility")),
		ReturnType: rd.String("returnType"),
		IsStatic:   rd.Bool("isStatic"),
		IsAbstract: rd.Bool("isAbstract"),
		Redefines:  rd.String("redefines"),
	}
	mods := NewRecordReader(rd.Record("properties"))
	o.Modifiers.readRecord(mods)
	if err := mods.Err(); err != nil {
		return o, err
	}
	for _, pr := range rd.Records("params") {
		p, err := ParameterFromRecord(pr)
		if err != nil {
			return o, err
		}
		o.Params = append(o.Params, p)
	}
	mult, err := MultiplicityFromRecords(rd.Records("returnMultiplicity"))
	if err != nil {
		return o, err
	}
	o.ReturnMultiplicity = mult
	return o, rd.Err()
}
