package export

import (
	"fmt"
	"strings"

	"classdraw/diagram"
	"classdraw/validation"
)

// MermaidExporter exports class diagrams to Mermaid syntax
type MermaidExporter struct{}

// NewMermaidExporter creates a new Mermaid exporter
func NewMermaidExporter() *MermaidExporter {
	return &MermaidExporter{}
}

// Export converts the elements to a Mermaid classDiagram. Comments are
// emitted as %% lines since Mermaid notes cannot float freely.
func (e *MermaidExporter) Export(elements []diagram.Element) (string, error) {
	nodes, rels := collect(elements)
	if len(nodes) == 0 {
		return "", fmt.Errorf("diagram has no nodes")
	}

	var sb strings.Builder
	sb.WriteString("classDiagram\n")

	ids := make(map[string]string)
	for i, node := range nodes {
		shape := diagram.ShapeOf(node)
		if shape == nil {
			continue
		}
		id := e.identifier(node, i)
		ids[shape.ID] = id
		e.writeNode(&sb, node, id)
	}

	for _, r := range rels {
		ed := describe(r)
		left, ok := ids[ed.left.ShapeID()]
		if !ok {
			continue // Skip connections to unknown shapes
		}
		right, ok := ids[ed.right.ShapeID()]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s%s %s%s %s", left, quoted(ed.leftMult), ed.arrow, quoted(ed.rightMult), right))
		if ed.label != "" {
			sb.WriteString(" : " + ed.label)
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// identifier uses the node name when Mermaid accepts it as a class id, and a
// positional id otherwise.
func (e *MermaidExporter) identifier(node diagram.Element, i int) string {
	name := nodeName(node)
	if name != "" && validation.IsAlphanumeric(name) {
		return name
	}
	return fmt.Sprintf("E%d", i+1)
}

func (e *MermaidExporter) writeNode(sb *strings.Builder, node diagram.Element, id string) {
	switch n := node.(type) {
	case *diagram.Class:
		var annotations []string
		if n.Abstract {
			annotations = append(annotations, "abstract")
		}
		if n.Stereotype() != diagram.StereotypeNone {
			annotations = append(annotations, string(n.Stereotype()))
		}
		e.writeClassifier(sb, id, &n.Classifier, annotations...)
	case *diagram.Interface:
		e.writeClassifier(sb, id, &n.Classifier, "interface")
	case *diagram.DataType:
		e.writeClassifier(sb, id, &n.Classifier, "dataType")
	case *diagram.Primitive:
		sb.WriteString(fmt.Sprintf("    class %s {\n        <<primitive>>\n    }\n", id))
	case *diagram.Enumeration:
		sb.WriteString(fmt.Sprintf("    class %s {\n        <<enumeration>>\n", id))
		for _, lit := range n.Literals {
			sb.WriteString("        " + lit + "\n")
		}
		sb.WriteString("    }\n")
	case *diagram.Comment:
		for _, line := range strings.Split(n.Text, "\n") {
			sb.WriteString("    %% " + line + "\n")
		}
	}
}

func (e *MermaidExporter) writeClassifier(sb *strings.Builder, id string, c *diagram.Classifier, annotations ...string) {
	sb.WriteString(fmt.Sprintf("    class %s {\n", id))
	for _, a := range annotations {
		sb.WriteString(fmt.Sprintf("        <<%s>>\n", a))
	}
	for _, p := range c.Properties {
		sb.WriteString("        " + withoutModifiers(p.String()) + mermaidClassifier(p.IsStatic, false) + "\n")
	}
	for _, o := range c.Operations {
		sb.WriteString("        " + withoutModifiers(o.String()) + mermaidClassifier(o.IsStatic, o.IsAbstract) + "\n")
	}
	sb.WriteString("    }\n")
}

// withoutModifiers drops the trailing {…} block, which Mermaid would read as
// the end of the class body.
func withoutModifiers(s string) string {
	if i := strings.LastIndex(s, " {"); i >= 0 && strings.HasSuffix(s, "}") {
		return s[:i]
	}
	return s
}

// mermaidClassifier returns the Mermaid suffix for static ($) and
// abstract (*) members.
func mermaidClassifier(static, abstract bool) string {
	switch {
	case abstract:
		return "*"
	case static:
		return "$"
	default:
		return ""
	}
}

// GetFileExtension returns the recommended file extension
func (e *MermaidExporter) GetFileExtension() string {
	return ".mmd"
}

// GetFormatName returns the format name
func (e *MermaidExporter) GetFormatName() string {
	return "Mermaid"
}
