package importer

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"classdraw/connections"
	"classdraw/diagram"
	"classdraw/logging"
)

func anchoredPair(t *testing.T) (*diagram.Class, *diagram.Class, *connections.Association) {
	t.Helper()
	a := diagram.NewClass("A", 0, 0)
	a.Width, a.Height = 20, 20
	b := diagram.NewClass("B", 100, 0)
	b.Width, b.Height = 20, 20
	assoc, err := connections.NewAssociation(connections.Anchor(a), connections.Anchor(b))
	if err != nil {
		t.Fatal(err)
	}
	return a, b, assoc
}

func TestBatchDeserializeForwardReference(t *testing.T) {
	a, b, assoc := anchoredPair(t)
	records := []diagram.Record{assoc.ToSerializable(), a.ToSerializable(), b.ToSerializable()}

	var buf bytes.Buffer
	reg := NewDefaultRegistry(logging.NewLogger(&buf, slog.LevelDebug))
	got, err := reg.BatchDeserialize(records)
	if err != nil {
		t.Fatalf("BatchDeserialize: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d elements, want 3", len(got))
	}

	decodedA, okA := got[0].(*diagram.Class)
	decodedB, okB := got[1].(*diagram.Class)
	conn, okC := got[2].(*connections.Association)
	if !okA || !okB || !okC {
		t.Fatalf("unexpected element order: %T %T %T", got[0], got[1], got[2])
	}
	start, _ := conn.StartPoint().(*connections.LoosePoint)
	end, _ := conn.EndPoint().(*connections.LoosePoint)
	if start == nil || end == nil {
		t.Fatal("terminals are not loose points")
	}
	if start.Node != diagram.Positional(decodedA) || end.Node != diagram.Positional(decodedB) {
		t.Error("connection not wired to the decoded shapes")
	}
	if !strings.Contains(buf.String(), "deferring record") {
		t.Errorf("deferral not logged: %q", buf.String())
	}
}

func TestBatchDeserializeFailures(t *testing.T) {
	a, _, assoc := anchoredPair(t)

	tests := []struct {
		name    string
		records []diagram.Record
		code    ErrorCode
		index   int
	}{
		{
			"unresolved last record",
			[]diagram.Record{a.ToSerializable(), assoc.ToSerializable()},
			UnresolvedReference, 1,
		},
		{
			"unresolved after retry",
			[]diagram.Record{assoc.ToSerializable(), a.ToSerializable()},
			UnresolvedReference, 0,
		},
		{
			"unknown tag",
			[]diagram.Record{{"tag": "Actor", "name": "x"}},
			UnknownTag, 0,
		},
		{
			"missing tag",
			[]diagram.Record{a.ToSerializable(), {"name": "x"}},
			MissingTag, 1,
		},
		{
			"malformed field",
			[]diagram.Record{{"tag": diagram.TagClass, "name": 7}},
			MalformedRecord, 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewDefaultRegistry(nil).BatchDeserialize(tt.records)
			if got != nil {
				t.Errorf("partial result returned: %v", got)
			}
			var de *DeserializationError
			if !errors.As(err, &de) {
				t.Fatalf("expected DeserializationError, got %v", err)
			}
			if de.Code != tt.code || de.Index != tt.index {
				t.Errorf("got code %s index %d, want %s index %d", de.Code, de.Index, tt.code, tt.index)
			}
		})
	}
}

func TestDeserializeErrorKinds(t *testing.T) {
	_, _, assoc := anchoredPair(t)
	reg := NewDefaultRegistry(nil)

	_, err := reg.Deserialize(assoc.ToSerializable(), nil)
	if !errors.Is(err, diagram.ErrUnresolved) {
		t.Errorf("expected unresolved cause, got %v", err)
	}
	var de *DeserializationError
	if !errors.As(err, &de) || !de.Retryable() {
		t.Error("unresolved reference should be retryable")
	}

	_, err = reg.Deserialize(diagram.Record{"tag": diagram.TagEnumeration, "literals": "A"}, nil)
	if !errors.Is(err, diagram.ErrMalformed) {
		t.Errorf("expected malformed cause, got %v", err)
	}
	if errors.As(err, &de) && de.Retryable() {
		t.Error("malformed record should not be retryable")
	}
}

func TestRegisterReplacesDecoder(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register(diagram.TagComment, diagram.DecodeComment)
	reg.Register(diagram.TagComment, func(rec diagram.Record, _ []diagram.Element) (diagram.Element, error) {
		if _, ok := rec["tag"]; ok {
			t.Error("tag was not stripped before decoding")
		}
		return diagram.NewComment("replaced", 0, 0), nil
	})

	el, err := reg.Deserialize(diagram.Record{"tag": diagram.TagComment, "text": "orig"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if el.(*diagram.Comment).Text != "replaced" {
		t.Error("later registration did not win")
	}
}

func TestDefaultRegistryTags(t *testing.T) {
	tags := NewDefaultRegistry(nil).Tags()
	want := []string{
		diagram.TagAggregation, diagram.TagAssociation, diagram.TagClass, diagram.TagComment,
		diagram.TagComposition, diagram.TagDataType, diagram.TagEnumeration,
		diagram.TagGeneralization, diagram.TagInterface, diagram.TagPrimitive,
	}
	if strings.Join(tags, ",") != strings.Join(want, ",") {
		t.Errorf("Tags() = %v, want %v", tags, want)
	}
}
