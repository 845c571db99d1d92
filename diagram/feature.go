package diagram

import (
	"strings"

	"classdraw/validation"
)

// Visibility is the UML visibility of a feature.
type Visibility string

const (
	VisibilityNone      Visibility = ""
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
	VisibilityPackage   Visibility = "package"
)

// Symbol returns the UML notation for the visibility.
func (v Visibility) Symbol() string {
	switch v {
	case VisibilityPublic:
		return "+"
	case VisibilityPrivate:
		return "-"
	case VisibilityProtected:
		return "#"
	case VisibilityPackage:
		return "~"
	default:
		return ""
	}
}

// Direction is the direction of an operation parameter.
type Direction string

const (
	DirectionNone   Direction = ""
	DirectionIn     Direction = "in"
	DirectionOut    Direction = "out"
	DirectionInOut  Direction = "inout"
	DirectionReturn Direction = "return"
)

// CollectionModifiers are the ordering and uniqueness markers shared by
// properties, parameters and operations.
type CollectionModifiers struct {
	Ordered   bool
	Unordered bool
	Unique    bool
	NonUnique bool
	Sequence  bool
}

// labels returns the markers in rendering order.
func (m CollectionModifiers) labels() []string {
	var out []string
	if m.Ordered {
		out = append(out, "ordered")
	}
	if m.Unordered {
		out = append(out, "unordered")
	}
	if m.Unique {
		out = append(out, "unique")
	}
	if m.NonUnique {
		out = append(out, "nonunique")
	}
	if m.Sequence {
		out = append(out, "seq")
	}
	return out
}

// validate applies the business rules on the markers. hasMultiplicity tells
// whether the owning feature declares a multiplicity.
func (m CollectionModifiers) validate(c *validation.Causes, hasMultiplicity bool) {
	if (m.Ordered || m.Unique || m.Sequence) && !hasMultiplicity {
		c.Add("modifiers", validation.MsgModifiersMultiplicity)
	}
	if m.Unique && m.NonUnique {
		c.Add("modifiers", validation.MsgModifiersUniqueClash)
	}
	if m.Ordered && m.Unordered {
		c.Add("modifiers", validation.MsgModifiersOrderingClash)
	}
}

func (m CollectionModifiers) writeRecord(r Record) {
	r["ordered"] = m.Ordered
	r["unordered"] = m.Unordered
	r["unique"] = m.Unique
	r["nonunique"] = m.NonUnique
	r["seq"] = m.Sequence
}

func (m *CollectionModifiers) readRecord(rd *RecordReader) {
	m.Ordered = rd.Bool("ordered")
	m.Unordered = rd.Bool("unordered")
	m.Unique = rd.Bool("unique")
	m.NonUnique = rd.Bool("nonunique")
	m.Sequence = rd.Bool("seq")
}

// PropertyModifiers are the markers rendered in braces after a property.
type PropertyModifiers struct {
	CollectionModifiers
	ReadOnly  bool
	Union     bool
	ID        bool
	Subsets   string
	Redefines string
}

func (m PropertyModifiers) labels() []string {
	var out []string
	if m.ReadOnly {
		out = append(out, "readOnly")
	}
	if m.Union {
		out = append(out, "union")
	}
	if m.Subsets != "" {
		out = append(out, "subsets "+m.Subsets)
	}
	if m.Redefines != "" {
		out = append(out, "redefines "+m.Redefines)
	}
	out = append(out, m.CollectionModifiers.labels()...)
	if m.ID {
		out = append(out, "id")
	}
	return out
}

func (m PropertyModifiers) toRecord() Record {
	r := Record{
		"readOnly":  m.ReadOnly,
		"union":     m.Union,
		"id":        m.ID,
		"subsets":   m.Subsets,
		"redefines": m.Redefines,
	}
	m.CollectionModifiers.writeRecord(r)
	return r
}

func (m *PropertyModifiers) readRecord(rd *RecordReader) {
	m.ReadOnly = rd.Bool("readOnly")
	m.Union = rd.Bool("union")
	m.ID = rd.Bool("id")
	m.Subsets = rd.String("subsets")
	m.Redefines = rd.String("redefines")
	m.CollectionModifiers.readRecord(rd)
}

// OperationModifiers are the markers rendered in braces after an operation.
type OperationModifiers struct {
	CollectionModifiers
	Query bool
}

func (m OperationModifiers) labels() []string {
	var out []string
	if m.Query {
		out = append(out, "query")
	}
	return append(out, m.CollectionModifiers.labels()...)
}

func (m OperationModifiers) toRecord() Record {
	r := Record{"query": m.Query}
	m.CollectionModifiers.writeRecord(r)
	return r
}

func (m *OperationModifiers) readRecord(rd *RecordReader) {
	m.Query = rd.Bool("query")
	m.CollectionModifiers.readRecord(rd)
}

// braces renders "{a, b}" or "" when there is nothing to render.
func braces(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	return "{" + strings.Join(labels, ", ") + "}"
}

// typedSuffix renders the ": type [mult] = default {mods}" tail shared by
// properties and parameters.
func typedSuffix(typ string, mult Multiplicity, defaultValue string, mods []string) string {
	var sb strings.Builder
	if typ != "" {
		sb.WriteString(": ")
		sb.WriteString(typ)
	}
	if m := mult.String(); m != "" {
		sb.WriteString(" ")
		sb.WriteString(m)
	}
	if defaultValue != "" {
		sb.WriteString(" = ")
		sb.WriteString(defaultValue)
	}
	if b := braces(mods); b != "" {
		sb.WriteString(" ")
		sb.WriteString(b)
	}
	return sb.String()
}

// validateTyped runs the type -> defaultValue -> multiplicity checks shared
// by properties and parameters.
func validateTyped(c *validation.Causes, typ string, mult Multiplicity, defaultValue string) {
	if !validation.IsAlphanumericWithBrackets(typ) {
		c.Add("type", validation.MsgAlphanumericBrackets)
	}
	if validation.IsBlank(defaultValue) {
		c.Add("defaultValue", validation.MsgBlank)
	}
	c.WrapField("multiplicity", mult.Validate())
}
