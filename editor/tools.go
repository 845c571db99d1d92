package editor

import "classdraw/diagram"

// Tool is the active editing tool
type Tool int

const (
	ToolSelect         Tool = iota // Select and drag
	ToolRemove                     // Remove the clicked element
	ToolAddClass                   // Add nodes
	ToolAddInterface               //
	ToolAddDataType                //
	ToolAddPrimitive               //
	ToolAddEnumeration             //
	ToolAddComment                 //
	ToolAssociation                // Draw connections
	ToolAggregation                //
	ToolComposition                //
	ToolGeneralization             //
)

// String returns the tool name for display
func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "SELECT"
	case ToolRemove:
		return "REMOVE"
	case ToolAddClass:
		return "CLASS"
	case ToolAddInterface:
		return "INTERFACE"
	case ToolAddDataType:
		return "DATATYPE"
	case ToolAddPrimitive:
		return "PRIMITIVE"
	case ToolAddEnumeration:
		return "ENUMERATION"
	case ToolAddComment:
		return "COMMENT"
	case ToolAssociation:
		return "ASSOCIATION"
	case ToolAggregation:
		return "AGGREGATION"
	case ToolComposition:
		return "COMPOSITION"
	case ToolGeneralization:
		return "GENERALIZATION"
	default:
		return "UNKNOWN"
	}
}

// ConnectionTag returns the record tag of the connection kind the tool
// draws, or "" for tools that do not draw connections.
func (t Tool) ConnectionTag() string {
	switch t {
	case ToolAssociation:
		return diagram.TagAssociation
	case ToolAggregation:
		return diagram.TagAggregation
	case ToolComposition:
		return diagram.TagComposition
	case ToolGeneralization:
		return diagram.TagGeneralization
	default:
		return ""
	}
}

// NewNode creates the node an add tool places at (x, y). It returns nil for
// tools that do not add nodes.
func (t Tool) NewNode(x, y float64) diagram.Element {
	switch t {
	case ToolAddClass:
		return diagram.NewClass("Class", x, y)
	case ToolAddInterface:
		return diagram.NewInterface("Interface", x, y)
	case ToolAddDataType:
		return diagram.NewDataType("DataType", x, y)
	case ToolAddPrimitive:
		return diagram.NewPrimitive("Primitive", x, y)
	case ToolAddEnumeration:
		return diagram.NewEnumeration("Enumeration", x, y)
	case ToolAddComment:
		return diagram.NewComment("", x, y)
	default:
		return nil
	}
}
