package connections

import (
	"errors"
	"math"
	"testing"

	"classdraw/diagram"
)

func mustNew(t *testing.T, pts ...Point) *Connection {
	t.Helper()
	c, err := New(pts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewSharesInteriorVertices(t *testing.T) {
	c := mustNew(t, At(0, 0), At(10, 0), At(10, 10))

	parts := c.Parts()
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(parts))
	}
	if parts[0].EndPoint() != parts[1].StartPoint() {
		t.Error("interior vertex is not shared between adjacent parts")
	}
	if c.StartPoint() != parts[0].StartPoint() || c.EndPoint() != parts[1].EndPoint() {
		t.Error("terminals do not match the outer parts")
	}

	// Moving the shared vertex moves both segments.
	if err := c.MovePoint(1, 20, 0); err != nil {
		t.Fatal(err)
	}
	if parts[0].EndPoint().X() != 20 || parts[1].StartPoint().X() != 20 {
		t.Error("shared vertex did not move both parts")
	}
}

func TestNewRequiresTwoTerminals(t *testing.T) {
	if _, err := New(At(0, 0)); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("expected ErrTooFewPoints, got %v", err)
	}
}

func TestNewCopiesOwnedPoints(t *testing.T) {
	first := mustNew(t, At(0, 0), At(5, 5))
	shared := first.EndPoint()

	second := mustNew(t, shared, At(9, 9))
	if second.StartPoint() == shared {
		t.Error("a point owned by another connection was moved instead of copied")
	}
	if shared.Connection() != first || len(first.Points()) != 2 {
		t.Error("the original owner was modified")
	}
	if second.StartPoint().X() != 5 {
		t.Error("copied point lost its position")
	}
}

func TestPartBreak(t *testing.T) {
	c := mustNew(t, At(0, 0), At(0, 4), At(4, 4))
	first := c.Part(0)

	mid := first.Break()

	if got := len(c.Parts()); got != 3 {
		t.Fatalf("part count = %d, want 3", got)
	}
	if mid.X() != 0 || mid.Y() != 2 {
		t.Errorf("midpoint = (%v, %v), want (0, 2)", mid.X(), mid.Y())
	}

	want := [][4]float64{{0, 0, 0, 2}, {0, 2, 0, 4}, {0, 4, 4, 4}}
	for i, p := range c.Parts() {
		s, e := p.StartPoint(), p.EndPoint()
		got := [4]float64{s.X(), s.Y(), e.X(), e.Y()}
		if got != want[i] {
			t.Errorf("part %d = %v, want %v", i, got, want[i])
		}
		if p.Index() != i {
			t.Errorf("part %d reports index %d", i, p.Index())
		}
	}
	if c.Part(0).EndPoint() != c.Part(1).StartPoint() || c.Part(1).EndPoint() != c.Part(2).StartPoint() {
		t.Error("break did not keep vertices shared")
	}
	if mid.Connection() != c || mid.Index() != 1 {
		t.Error("midpoint not registered with its connection")
	}
}

func TestPointRemove(t *testing.T) {
	c := mustNew(t, At(0, 0), At(5, 0), At(5, 5), At(10, 5))
	victim := c.Points()[1]

	if err := victim.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got := len(c.Parts()); got != 2 {
		t.Fatalf("part count = %d, want 2", got)
	}
	s, e := c.Part(0).StartPoint(), c.Part(0).EndPoint()
	if s.X() != 0 || e.X() != 5 || e.Y() != 5 {
		t.Errorf("merged part runs (%v,%v)-(%v,%v)", s.X(), s.Y(), e.X(), e.Y())
	}
	if c.Part(0).EndPoint() != c.Part(1).StartPoint() {
		t.Error("parts after removal do not share their vertex")
	}
	if victim.Connection() != nil || victim.Index() != -1 {
		t.Error("removed point still attached")
	}
	if err := victim.Remove(); !errors.Is(err, ErrPointNotFound) {
		t.Errorf("second remove = %v, want ErrPointNotFound", err)
	}
}

func TestTerminalPointsCannotBeRemoved(t *testing.T) {
	c := mustNew(t, At(0, 0), At(5, 0), At(9, 0))
	for _, p := range []Point{c.StartPoint(), c.EndPoint()} {
		if err := p.Remove(); !errors.Is(err, ErrTerminalPoint) {
			t.Errorf("Remove terminal = %v, want ErrTerminalPoint", err)
		}
	}
	if len(c.Parts()) != 2 {
		t.Error("failed removal changed the connection")
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLoosePointFollowsShape(t *testing.T) {
	box := diagram.NewClass("Target", 10, 10)
	box.Width, box.Height = 10, 10

	c := mustNew(t, At(0, 0), Anchor(box))
	end := c.EndPoint()
	if !near(end.X(), 10) || !near(end.Y(), 10) {
		t.Fatalf("loose end = (%v, %v), want (10, 10)", end.X(), end.Y())
	}

	// The ray from (0,0) to the new center (25,15) enters through the
	// left edge.
	box.MoveBy(10, 0)
	x, y, ok := end.Position()
	if !ok || !near(x, 20) || !near(y, 12) {
		t.Errorf("loose end = (%v, %v, %v), want (20, 12)", x, y, ok)
	}
}

func TestLoosePointInsideShapeIsUndefined(t *testing.T) {
	box := diagram.NewClass("Target", 0, 0)
	box.Width, box.Height = 10, 10

	c := mustNew(t, At(5, 5), Anchor(box))
	x, y, ok := c.EndPoint().Position()
	if ok || !math.IsNaN(x) || !math.IsNaN(y) {
		t.Errorf("expected undefined position, got (%v, %v, %v)", x, y, ok)
	}
	if c.ContainsDot(5, 5) {
		t.Error("a part with an undefined end should not be hit")
	}
}

func TestLooseNeighborUsesSnappingPoint(t *testing.T) {
	a := diagram.NewClass("A", 0, 0)
	a.Width, a.Height = 10, 10
	b := diagram.NewClass("B", 30, 0)
	b.Width, b.Height = 10, 10

	c := mustNew(t, Anchor(a), Anchor(b))
	if x := c.StartPoint().X(); !near(x, 10) {
		t.Errorf("start x = %v, want 10", x)
	}
	if x := c.EndPoint().X(); !near(x, 30) {
		t.Errorf("end x = %v, want 30", x)
	}
}

func TestConvertInPlace(t *testing.T) {
	box := diagram.NewClass("Box", 20, 0)
	box.Width, box.Height = 10, 10
	c := mustNew(t, At(0, 5), At(10, 5), At(25, 5))

	lp, err := c.ToLoose(2, box)
	if err != nil {
		t.Fatal(err)
	}
	if c.EndPoint() != Point(lp) || c.Part(1).EndPoint() != Point(lp) {
		t.Error("loose conversion not visible through parts and terminals")
	}
	if !near(c.EndPoint().X(), 20) {
		t.Errorf("loose end x = %v, want 20", c.EndPoint().X())
	}

	bp, err := c.ToBasic(2)
	if err != nil {
		t.Fatal(err)
	}
	if c.EndPoint() != Point(bp) || !near(bp.X(), 20) || !near(bp.Y(), 5) {
		t.Errorf("basic conversion kept wrong point (%v, %v)", bp.X(), bp.Y())
	}
	if lp.Connection() != nil {
		t.Error("replaced point is still attached")
	}

	if _, err := c.ToBasic(7); !errors.Is(err, ErrPointNotFound) {
		t.Errorf("ToBasic out of range = %v", err)
	}
}

func TestContainsDotAndAngle(t *testing.T) {
	c := mustNew(t, At(0, 0), At(10, 0), At(10, 10))

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"on first part", 5, 0, true},
		{"within tolerance", 5, 4, true},
		{"on second part", 10, 7, true},
		{"far away", 3, 8, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.ContainsDot(tt.x, tt.y); got != tt.want {
				t.Errorf("ContainsDot(%v, %v) = %v", tt.x, tt.y, got)
			}
		})
	}

	if got := c.Part(1).Angle(); math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("Angle = %v, want pi/2", got)
	}
}

func TestDeselectIsRecursiveAndIdempotent(t *testing.T) {
	c := mustNew(t, At(0, 0), At(5, 5), At(9, 0))
	c.SetSelected(true)
	c.Part(1).SetSelected(true)
	for _, p := range c.Points() {
		p.SetSelected(true)
	}

	c.Deselect()
	c.Deselect()

	if c.IsSelected() || c.Part(1).IsSelected() {
		t.Error("selection flags survived")
	}
	for i, p := range c.Points() {
		if p.IsSelected() {
			t.Errorf("point %d still selected", i)
		}
	}
}

func TestTranslateMovesBasicPointsOnly(t *testing.T) {
	box := diagram.NewClass("Box", 20, 0)
	box.Width, box.Height = 10, 10
	c := mustNew(t, At(0, 5), Anchor(box))

	c.Translate(3, 1)
	if c.StartPoint().X() != 3 || c.StartPoint().Y() != 6 {
		t.Error("basic point not translated")
	}
	if box.X != 20 {
		t.Error("translate moved the anchored shape")
	}
	if err := c.MovePoint(1, 0, 0); !errors.Is(err, ErrNotBasic) {
		t.Errorf("MovePoint on loose = %v", err)
	}
}
