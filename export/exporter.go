// Package export writes diagrams out: the native save file, and class-diagram
// text for other tools.
package export

import (
	"fmt"
	"strings"

	"classdraw/connections"
	"classdraw/diagram"
)

// Format represents a text export format
type Format string

const (
	// FormatMermaid exports to Mermaid classDiagram syntax
	FormatMermaid Format = "mermaid"
	// FormatPlantUML exports to PlantUML class syntax
	FormatPlantUML Format = "plantuml"
)

// Exporter interface for different export formats
type Exporter interface {
	// Export converts the element list to the target format
	Export(elements []diagram.Element) (string, error)
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatMermaid:
		return NewMermaidExporter(), nil
	case FormatPlantUML:
		return NewPlantUMLExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "mermaid", "mmd":
		return FormatMermaid, nil
	case "plantuml", "puml":
		return FormatPlantUML, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatMermaid,
		FormatPlantUML,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatMermaid:  "Mermaid classDiagram syntax (for Markdown)",
		FormatPlantUML: "PlantUML class diagram syntax",
	}
}

// relation is a connection reduced to the two shapes it joins.
type relation struct {
	from, to diagram.Positional
	conn     diagram.Element
}

// collect splits elements into nodes and relations. Connections with a
// terminal that is not anchored to a shape cannot be expressed in text
// formats and are skipped.
func collect(elements []diagram.Element) ([]diagram.Element, []relation) {
	var nodes []diagram.Element
	var rels []relation
	for _, el := range elements {
		line := connections.PolylineOf(el)
		if line == nil {
			nodes = append(nodes, el)
			continue
		}
		from, ok1 := line.StartPoint().(*connections.LoosePoint)
		to, ok2 := line.EndPoint().(*connections.LoosePoint)
		if !ok1 || !ok2 {
			continue
		}
		rels = append(rels, relation{from: from.Node, to: to.Node, conn: el})
	}
	return nodes, rels
}

// multiplicityLabel renders a multiplicity without the surrounding
// brackets, e.g. "0..*".
func multiplicityLabel(m diagram.Multiplicity) string {
	return strings.TrimSuffix(strings.TrimPrefix(m.String(), "["), "]")
}

// quoted returns ` "s"` or "" for an empty label.
func quoted(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf(" %q", s)
}

func nodeName(el diagram.Element) string {
	switch n := el.(type) {
	case *diagram.Class:
		return n.Name
	case *diagram.Interface:
		return n.Name
	case *diagram.DataType:
		return n.Name
	case *diagram.Primitive:
		return n.Name
	case *diagram.Enumeration:
		return n.Name
	default:
		return ""
	}
}

// edge is a relation in the left-to-right form shared by PlantUML and
// Mermaid: `left "leftMult" arrow "rightMult" right : label`.
type edge struct {
	left, right         diagram.Positional
	leftMult, rightMult string
	arrow               string
	label               string
}

func describe(r relation) edge {
	switch c := r.conn.(type) {
	case *connections.Generalization:
		general, specific := r.to, r.from
		if c.Reversed {
			general, specific = specific, general
		}
		return edge{left: general, right: specific, arrow: "<|--"}
	case *connections.Composition:
		return wholePart(r, c.Reversed, c.Source, c.Target, "*--")
	case *connections.Aggregation:
		arrow := "--"
		if c.Shared {
			arrow = "o--"
		}
		return wholePart(r, false, c.Source, c.Target, arrow)
	case *connections.Association:
		arrow := "--"
		if c.Source.Navigability == connections.Navigable {
			arrow = "<" + arrow
		}
		if c.Target.Navigability == connections.Navigable {
			arrow += ">"
		}
		return edge{
			left:      r.from,
			right:     r.to,
			leftMult:  multiplicityLabel(c.Source.Multiplicity),
			rightMult: multiplicityLabel(c.Target.Multiplicity),
			arrow:     arrow,
			label:     joinNames(c.Source.Name, c.Target.Name),
		}
	}
	return edge{left: r.from, right: r.to, arrow: "--"}
}

// wholePart puts the diamond end on the left. The diamond sits on the end
// point unless reversed.
func wholePart(r relation, reversed bool, source, target connections.LabeledEnd, arrow string) edge {
	e := edge{
		left:      r.to,
		right:     r.from,
		leftMult:  multiplicityLabel(target.Multiplicity),
		rightMult: multiplicityLabel(source.Multiplicity),
		arrow:     arrow,
		label:     joinNames(target.Name, source.Name),
	}
	if reversed {
		e.left, e.right = e.right, e.left
		e.leftMult, e.rightMult = e.rightMult, e.leftMult
		e.label = joinNames(source.Name, target.Name)
	}
	return e
}

func joinNames(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " / " + b
	}
}
