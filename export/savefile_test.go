package export_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"classdraw/export"
	"classdraw/importer"
)

func TestSaveFileRoundTrip(t *testing.T) {
	doc := &importer.Document{
		Nodes:          sampleDiagram(t),
		RenderSettings: map[string]any{"zoom": 1.5},
	}
	want, err := json.Marshal(export.Envelope(doc))
	if err != nil {
		t.Fatal(err)
	}

	for _, format := range importer.Formats {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := export.WriteSaveFile(&buf, doc, format); err != nil {
				t.Fatalf("WriteSaveFile: %v", err)
			}

			loaded, err := importer.LoadSaveFile(&buf, format)
			if err != nil {
				t.Fatalf("LoadSaveFile: %v", err)
			}
			if loaded.Version != importer.SaveVersion {
				t.Errorf("version = %d", loaded.Version)
			}
			if loaded.RenderSettings["zoom"] != 1.5 {
				t.Errorf("render settings lost: %v", loaded.RenderSettings)
			}

			got, err := json.Marshal(export.Envelope(loaded))
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("round trip changed the document:\n got %s\nwant %s", got, want)
			}
		})
	}
}

func TestWriteSaveFileIndent(t *testing.T) {
	doc := &importer.Document{Nodes: sampleDiagram(t)[:1]}

	var compact, pretty bytes.Buffer
	if err := export.WriteSaveFile(&compact, doc, importer.FormatJSON, export.WithIndent(0)); err != nil {
		t.Fatal(err)
	}
	if err := export.WriteSaveFile(&pretty, doc, importer.FormatJSON, export.WithIndent(4)); err != nil {
		t.Fatal(err)
	}
	if strings.Count(compact.String(), "\n") != 1 {
		t.Errorf("compact output spans several lines: %q", compact.String())
	}
	if !strings.Contains(pretty.String(), "\n    \"nodes\"") {
		t.Errorf("indent not applied:\n%s", pretty.String())
	}
}

func TestWriteSaveFileUnknownFormat(t *testing.T) {
	err := export.WriteSaveFile(&bytes.Buffer{}, &importer.Document{}, importer.Format("xml"))
	if err == nil {
		t.Error("expected error for unknown format")
	}
}
