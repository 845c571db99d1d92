// Package editor is the orchestrator over the diagram model: it owns the
// element list, the active tool and the selection, and hands out edit
// sessions for panels.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"classdraw/connections"
	"classdraw/diagram"
	"classdraw/geometry"
	"classdraw/importer"
	"classdraw/logging"
)

// DefaultPointRadius is the hit radius of connection vertices.
const DefaultPointRadius = 6.0

var (
	// ErrNotFound is returned for elements the editor does not own.
	ErrNotFound = errors.New("element not in diagram")

	// ErrUnknownKind is returned by Connect for tags that are not
	// connection kinds.
	ErrUnknownKind = errors.New("unknown connection kind")
)

// Editor holds the live diagram
type Editor struct {
	nodes          []diagram.Element
	renderSettings map[string]any
	tool           Tool
	pointRadius    float64
	logger         *slog.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger. A nil logger discards.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) { e.logger = logging.OrDiscard(l) }
}

// WithPointRadius sets the vertex hit radius.
func WithPointRadius(r float64) Option {
	return func(e *Editor) {
		if r > 0 {
			e.pointRadius = r
		}
	}
}

// New creates an empty editor with the select tool active.
func New(opts ...Option) *Editor {
	e := &Editor{
		tool:        ToolSelect,
		pointRadius: DefaultPointRadius,
		logger:      logging.NewDiscardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Nodes returns the elements in paint order. The slice is a copy; the
// elements are live.
func (e *Editor) Nodes() []diagram.Element {
	return slices.Clone(e.nodes)
}

// Tool returns the active tool
func (e *Editor) Tool() Tool {
	return e.tool
}

// SetTool changes the active tool and clears the selection.
func (e *Editor) SetTool(t Tool) {
	if t != e.tool {
		e.logger.Debug("tool changed", "from", e.tool, "to", t)
	}
	e.tool = t
	e.DeselectAll()
}

// Add appends el on top of the diagram.
func (e *Editor) Add(el diagram.Element) {
	e.nodes = append(e.nodes, el)
}

// Place adds the node of the active add tool at (x, y). It returns nil when
// the tool does not add nodes.
func (e *Editor) Place(x, y float64) diagram.Element {
	el := e.tool.NewNode(x, y)
	if el != nil {
		e.Add(el)
	}
	return el
}

// Remove splices el out of the diagram. Connections anchored to a removed
// shape are left in place and reported.
func (e *Editor) Remove(el diagram.Element) error {
	i := e.indexOf(el)
	if i < 0 {
		return ErrNotFound
	}
	e.nodes = slices.Delete(e.nodes, i, i+1)

	if shape, ok := el.(diagram.Positional); ok {
		if dangling := e.anchoredTo(shape); dangling > 0 {
			e.logger.Warn("removed shape is still referenced",
				"tag", el.Tag(), "id", shape.ShapeID(), "connections", dangling)
		}
	}
	return nil
}

func (e *Editor) indexOf(el diagram.Element) int {
	return slices.IndexFunc(e.nodes, func(n diagram.Element) bool { return n == el })
}

// anchoredTo counts connections with a loose point on shape.
func (e *Editor) anchoredTo(shape diagram.Positional) int {
	n := 0
	for _, el := range e.nodes {
		line := connections.PolylineOf(el)
		if line == nil {
			continue
		}
		for _, p := range line.Points() {
			if lp, ok := p.(*connections.LoosePoint); ok && lp.Node == shape {
				n++
				break
			}
		}
	}
	return n
}

// Hit is the result of a hit test. Point and Part are set when the hit lands
// on a connection vertex or segment.
type Hit struct {
	Element diagram.Element
	Point   connections.Point
	Part    *connections.Part
}

// HitTest returns the topmost element under (x, y). Connection vertices win
// over segments of the same connection.
func (e *Editor) HitTest(x, y float64) (Hit, bool) {
	for i := len(e.nodes) - 1; i >= 0; i-- {
		el := e.nodes[i]
		line := connections.PolylineOf(el)
		if line == nil {
			if el.ContainsDot(x, y) {
				return Hit{Element: el}, true
			}
			continue
		}
		for _, p := range line.Points() {
			px, py, ok := p.Position()
			if ok && geometry.IsPointWithinRadius(x, y, px, py, e.pointRadius) {
				return Hit{Element: el, Point: p}, true
			}
		}
		for _, part := range line.Parts() {
			if part.ContainsDot(x, y) {
				return Hit{Element: el, Part: part}, true
			}
		}
	}
	return Hit{}, false
}

// Select marks the hit as selected, replacing the previous selection.
func (e *Editor) Select(h Hit) {
	e.DeselectAll()
	if h.Element == nil {
		return
	}
	h.Element.SetSelected(true)
	if h.Point != nil {
		h.Point.SetSelected(true)
	}
	if h.Part != nil {
		h.Part.SetSelected(true)
	}
}

// DeselectAll clears every selection flag.
func (e *Editor) DeselectAll() {
	for _, el := range e.nodes {
		el.Deselect()
	}
}

// Selected returns the selected elements in paint order.
func (e *Editor) Selected() []diagram.Element {
	var out []diagram.Element
	for _, el := range e.nodes {
		if el.IsSelected() {
			out = append(out, el)
		}
	}
	return out
}

// MoveSelected drags the selection. A connection with selected basic
// vertices moves only those; otherwise the whole polyline moves.
func (e *Editor) MoveSelected(dx, dy float64) {
	for _, el := range e.Selected() {
		if shape, ok := el.(diagram.Positional); ok {
			shape.MoveBy(dx, dy)
			continue
		}
		line := connections.PolylineOf(el)
		if line == nil {
			continue
		}
		moved := false
		for _, p := range line.Points() {
			if bp, ok := p.(*connections.BasicPoint); ok && bp.IsSelected() {
				bp.MoveTo(bp.X()+dx, bp.Y()+dy)
				moved = true
			}
		}
		if !moved {
			line.Translate(dx, dy)
		}
	}
}

// Connect builds a connection of the given kind through the terminals and
// adds it to the diagram.
func (e *Editor) Connect(tag string, terminals ...connections.Point) (diagram.Element, error) {
	var (
		el  diagram.Element
		err error
	)
	switch tag {
	case diagram.TagAssociation:
		el, err = connections.NewAssociation(terminals...)
	case diagram.TagAggregation:
		el, err = connections.NewAggregation(terminals...)
	case diagram.TagComposition:
		el, err = connections.NewComposition(terminals...)
	case diagram.TagGeneralization:
		el, err = connections.NewGeneralization(terminals...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, tag)
	}
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", tag, err)
	}
	e.Add(el)
	return el, nil
}

// ConnectShapes joins two shapes with the connection kind of the active tool.
func (e *Editor) ConnectShapes(from, to diagram.Positional) (diagram.Element, error) {
	tag := e.tool.ConnectionTag()
	if tag == "" {
		return nil, fmt.Errorf("%w: tool %s draws no connections", ErrUnknownKind, e.tool)
	}
	return e.Connect(tag, connections.Anchor(from), connections.Anchor(to))
}

// Break splits part at its midpoint and selects the new vertex.
func (e *Editor) Break(part *connections.Part) *connections.BasicPoint {
	bp := part.Break()
	bp.SetSelected(true)
	e.logger.Debug("part broken", "index", bp.Index(), "x", bp.X(), "y", bp.Y())
	return bp
}

// Invalid returns the elements whose validation reports causes.
func (e *Editor) Invalid() []diagram.Element {
	var out []diagram.Element
	for _, el := range e.nodes {
		if !el.Validate().Valid() {
			out = append(out, el)
		}
	}
	return out
}

// Document snapshots the diagram for saving.
func (e *Editor) Document() *importer.Document {
	return &importer.Document{
		Version:        importer.SaveVersion,
		Nodes:          slices.Clone(e.nodes),
		RenderSettings: e.renderSettings,
	}
}

// Load replaces the diagram with doc. Duplicate shape identifiers are
// reassigned.
func (e *Editor) Load(doc *importer.Document) {
	e.nodes = slices.Clone(doc.Nodes)
	e.renderSettings = doc.RenderSettings
	if n := diagram.EnsureUniqueShapeIDs(e.nodes); n > 0 {
		e.logger.Warn("reassigned duplicate shape ids", "count", n)
	}
	e.DeselectAll()
	e.logger.Info("diagram loaded", "elements", len(e.nodes), "version", doc.Version)
}
