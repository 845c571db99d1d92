package export

import (
	"fmt"
	"strings"

	"classdraw/diagram"
)

// PlantUMLExporter exports class diagrams to PlantUML syntax
type PlantUMLExporter struct{}

// NewPlantUMLExporter creates a new PlantUML exporter
func NewPlantUMLExporter() *PlantUMLExporter {
	return &PlantUMLExporter{}
}

// Export converts the elements to a PlantUML class diagram
func (e *PlantUMLExporter) Export(elements []diagram.Element) (string, error) {
	nodes, rels := collect(elements)
	if len(nodes) == 0 {
		return "", fmt.Errorf("diagram has no nodes")
	}

	var sb strings.Builder
	sb.WriteString("@startuml\n")
	sb.WriteString("skinparam backgroundColor white\n")
	sb.WriteString("skinparam shadowing false\n")
	sb.WriteString("hide empty members\n\n")

	// Map shape IDs to PlantUML-safe identifiers
	aliases := make(map[string]string)
	for i, node := range nodes {
		shape := diagram.ShapeOf(node)
		if shape == nil {
			continue
		}
		alias := fmt.Sprintf("E%d", i+1)
		aliases[shape.ID] = alias
		e.writeNode(&sb, node, alias)
	}

	if len(rels) > 0 {
		sb.WriteString("\n")
	}

	for _, r := range rels {
		ed := describe(r)
		left, ok := aliases[ed.left.ShapeID()]
		if !ok {
			continue
		}
		right, ok := aliases[ed.right.ShapeID()]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s%s %s%s %s", left, quoted(ed.leftMult), ed.arrow, quoted(ed.rightMult), right))
		if ed.label != "" {
			sb.WriteString(" : " + ed.label)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("@enduml\n")
	return sb.String(), nil
}

func (e *PlantUMLExporter) writeNode(sb *strings.Builder, node diagram.Element, alias string) {
	switch n := node.(type) {
	case *diagram.Class:
		keyword := "class"
		if n.Abstract {
			keyword = "abstract class"
		}
		stereo := ""
		if n.Stereotype() != diagram.StereotypeNone {
			stereo = fmt.Sprintf(" <<%s>>", n.Stereotype())
		}
		e.writeClassifier(sb, keyword, &n.Classifier, alias, stereo)
	case *diagram.Interface:
		e.writeClassifier(sb, "interface", &n.Classifier, alias, "")
	case *diagram.DataType:
		e.writeClassifier(sb, "class", &n.Classifier, alias, " <<dataType>>")
	case *diagram.Primitive:
		sb.WriteString(fmt.Sprintf("class %q as %s <<primitive>>\n", n.Name, alias))
	case *diagram.Enumeration:
		sb.WriteString(fmt.Sprintf("enum %q as %s {\n", n.Name, alias))
		for _, lit := range n.Literals {
			sb.WriteString("  " + lit + "\n")
		}
		sb.WriteString("}\n")
	case *diagram.Comment:
		// PlantUML notes take \n for line breaks
		text := strings.ReplaceAll(n.Text, "\n", `\n`)
		text = strings.ReplaceAll(text, `"`, `'`)
		sb.WriteString(fmt.Sprintf("note \"%s\" as %s\n", text, alias))
	}
}

func (e *PlantUMLExporter) writeClassifier(sb *strings.Builder, keyword string, c *diagram.Classifier, alias, stereo string) {
	sb.WriteString(fmt.Sprintf("%s %q as %s%s {\n", keyword, c.Name, alias, stereo))
	for _, p := range c.Properties {
		sb.WriteString("  " + staticMarker(p.IsStatic) + p.String() + "\n")
	}
	for _, o := range c.Operations {
		marker := staticMarker(o.IsStatic)
		if o.IsAbstract {
			marker = "{abstract} "
		}
		sb.WriteString("  " + marker + o.String() + "\n")
	}
	sb.WriteString("}\n")
}

func staticMarker(static bool) string {
	if static {
		return "{static} "
	}
	return ""
}

// GetFileExtension returns the recommended file extension
func (e *PlantUMLExporter) GetFileExtension() string {
	return ".puml"
}

// GetFormatName returns the format name
func (e *PlantUMLExporter) GetFormatName() string {
	return "PlantUML"
}
