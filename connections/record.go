package connections

import (
	"fmt"

	"classdraw/diagram"
)

// writeRecord stores the polyline: basic points as {x, y}, loose points as
// {node: <shape id>}, and parts as [start, end] index pairs.
func (c *Connection) writeRecord(r diagram.Record) {
	points := make([]any, len(c.points))
	for i, p := range c.points {
		switch v := p.(type) {
		case *LoosePoint:
			points[i] = diagram.Record{"node": v.Node.ShapeID()}
		case *BasicPoint:
			points[i] = diagram.Record{"x": v.x, "y": v.y}
		}
	}
	parts := make([]any, len(c.parts))
	for i, p := range c.parts {
		parts[i] = []any{p.start, p.end}
	}
	r["points"] = points
	r["parts"] = parts
}

// readRecord rebuilds the polyline. Loose points resolve their shape among
// decoded; a shape that is not there yet yields diagram.ErrUnresolved.
func (c *Connection) readRecord(rd *diagram.RecordReader, decoded []diagram.Element) error {
	var pts []Point
	for i, pr := range rd.Records("points") {
		prd := diagram.NewRecordReader(pr)
		if prd.Has("node") {
			id := prd.String("node")
			node, ok := diagram.FindShape(decoded, id)
			if !ok {
				return fmt.Errorf("points[%d]: shape %q: %w", i, id, diagram.ErrUnresolved)
			}
			pts = append(pts, Anchor(node))
		} else {
			pts = append(pts, At(prd.Float("x"), prd.Float("y")))
		}
		if err := prd.Err(); err != nil {
			return fmt.Errorf("points[%d]: %w", i, err)
		}
	}
	if err := rd.Err(); err != nil {
		return err
	}
	if err := c.init(pts); err != nil {
		return fmt.Errorf("%w: %w", diagram.ErrMalformed, err)
	}

	// Parts are optional; when present they must describe the same chain.
	parts := rd.List("parts")
	if parts == nil {
		return rd.Err()
	}
	if len(parts) != len(c.parts) {
		return fmt.Errorf("%w: %d parts for %d points", diagram.ErrMalformed, len(parts), len(pts))
	}
	for i, item := range parts {
		pair, ok := item.([]any)
		if !ok || len(pair) != 2 {
			return fmt.Errorf("%w: parts[%d] is not an index pair", diagram.ErrMalformed, i)
		}
		start, err1 := diagram.ToInt(pair[0])
		end, err2 := diagram.ToInt(pair[1])
		if err1 != nil || err2 != nil || start != i || end != i+1 {
			return fmt.Errorf("%w: parts[%d] does not continue the polyline", diagram.ErrMalformed, i)
		}
	}
	return rd.Err()
}

func offsetRecord(o Offset) diagram.Record {
	return diagram.Record{"x": o.X, "y": o.Y}
}

func readOffset(rd *diagram.RecordReader, key string) (Offset, error) {
	ord := diagram.NewRecordReader(rd.Record(key))
	o := Offset{X: ord.Float("x"), Y: ord.Float("y")}
	if err := ord.Err(); err != nil {
		return o, fmt.Errorf("%s: %w", key, err)
	}
	return o, nil
}
