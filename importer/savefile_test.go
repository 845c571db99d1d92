package importer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"classdraw/connections"
	"classdraw/diagram"
)

const jsonEnvelope = `{
  "saveVersion": 1,
  "renderSettings": {"grid": true},
  "nodes": [
    {"tag": "Generalization", "points": [{"node": "b"}, {"node": "a"}], "parts": [[0, 1]], "isReversed": false},
    {"tag": "Class", "id": "a", "name": "Animal", "x": 0, "y": 0, "width": 80, "height": 40,
     "properties": [{"name": "legs", "type": "int", "multiplicity": [{"lower": 0, "upper": "*"}]}],
     "operations": [], "isAbstract": true, "stereotype": ""},
    {"tag": "Class", "id": "b", "name": "Dog", "x": 0, "y": 120, "width": 80, "height": 40}
  ]
}`

const yamlLegacy = `
- tag: Enumeration
  id: e1
  name: Color
  x: 10
  y: 10
  literals: [Red, Green]
- tag: Comment
  id: c1
  text: hello
  x: 5
  y: 5
`

func TestLoadJSONEnvelope(t *testing.T) {
	doc, err := LoadSaveFile(strings.NewReader(jsonEnvelope), FormatJSON)
	if err != nil {
		t.Fatalf("LoadSaveFile: %v", err)
	}
	if doc.Version != 1 || doc.RenderSettings["grid"] != true {
		t.Errorf("envelope fields lost: %+v", doc)
	}
	if len(doc.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(doc.Nodes))
	}
	animal := doc.Nodes[0].(*diagram.Class)
	if !animal.Abstract || animal.Properties[0].Multiplicity.String() != "[0..*]" {
		t.Errorf("class fields not decoded: %+v", animal)
	}
	gen := doc.Nodes[2].(*connections.Generalization)
	if gen.EndPoint().(*connections.LoosePoint).Node != diagram.Positional(animal) {
		t.Error("generalization not anchored to Animal")
	}
}

func TestLoadYAMLLegacy(t *testing.T) {
	doc, err := LoadSaveFile(strings.NewReader(yamlLegacy), FormatYAML)
	if err != nil {
		t.Fatalf("LoadSaveFile: %v", err)
	}
	if doc.Version != 0 {
		t.Errorf("legacy save reported version %d", doc.Version)
	}
	enum := doc.Nodes[0].(*diagram.Enumeration)
	if enum.X != 10 || strings.Join(enum.Literals, ",") != "Red,Green" {
		t.Errorf("enumeration not decoded: %+v", enum)
	}
	if doc.Nodes[1].(*diagram.Comment).Text != "hello" {
		t.Error("comment not decoded")
	}
}

func TestLoadMsgpack(t *testing.T) {
	env := map[string]any{
		"saveVersion": 1,
		"nodes": []any{
			map[string]any{"tag": "Primitive", "id": "p", "name": "Int", "x": int8(3), "y": uint16(4), "width": 10.5, "height": 5},
		},
	}
	data, err := msgpack.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := LoadSaveFile(bytes.NewReader(data), FormatMsgpack)
	if err != nil {
		t.Fatalf("LoadSaveFile: %v", err)
	}
	p := doc.Nodes[0].(*diagram.Primitive)
	if p.X != 3 || p.Y != 4 || p.Width != 10.5 || p.ID != "p" {
		t.Errorf("primitive not decoded: %+v", p)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		code   ErrorCode
	}{
		{"newer version", `{"saveVersion": 2, "nodes": []}`, FormatJSON, UnsupportedVersion},
		{"scalar document", `42`, FormatJSON, MalformedRecord},
		{"node not a record", `[1, 2]`, FormatJSON, MalformedRecord},
		{"bad version type", `{"saveVersion": "one"}`, FormatJSON, MalformedRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSaveFile(strings.NewReader(tt.input), tt.format)
			var de *DeserializationError
			if !errors.As(err, &de) {
				t.Fatalf("expected DeserializationError, got %v", err)
			}
			if de.Code != tt.code {
				t.Errorf("code = %s, want %s", de.Code, tt.code)
			}
		})
	}

	if _, err := LoadSaveFile(strings.NewReader("{"), FormatJSON); err == nil {
		t.Error("syntax error not reported")
	}
	if _, err := LoadSaveFile(strings.NewReader("[]"), Format("xml")); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{".yml", FormatYAML},
		{"YAML", FormatYAML},
		{"msgpack", FormatMsgpack},
		{".mpk", FormatMsgpack},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("xml accepted")
	}
	if FormatFromPath("diagram.yaml") != FormatYAML || FormatFromPath("diagram") != FormatJSON {
		t.Error("FormatFromPath guessed wrong")
	}
}
