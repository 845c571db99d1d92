package diagram

// EnsureUniqueShapeIDs gives every positional element a distinct identifier.
// Elements with an empty ID, or whose ID was already seen earlier in the
// list, get a fresh one. It returns the number of identifiers reassigned.
//
// References between decoded elements are held by pointer, so reassigning
// after a load does not break loose connection points.
func EnsureUniqueShapeIDs(elements []Element) int {
	seen := make(map[string]bool)
	reassigned := 0

	for _, el := range elements {
		shape := ShapeOf(el)
		if shape == nil {
			continue
		}
		if shape.ID == "" || seen[shape.ID] {
			shape.ID = NewID()
			reassigned++
		}
		seen[shape.ID] = true
	}

	return reassigned
}

// ShapeOf returns the embedded Shape of a node element, or nil for
// connections.
func ShapeOf(el Element) *Shape {
	switch n := el.(type) {
	case *Class:
		return &n.Shape
	case *Interface:
		return &n.Shape
	case *DataType:
		return &n.Shape
	case *Primitive:
		return &n.Shape
	case *Enumeration:
		return &n.Shape
	case *Comment:
		return &n.Shape
	default:
		return nil
	}
}

// FindShape returns the positional element with the given identifier.
func FindShape(elements []Element, id string) (Positional, bool) {
	for _, el := range elements {
		if p, ok := el.(Positional); ok && p.ShapeID() == id {
			return p, true
		}
	}
	return nil, false
}
