package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"classdraw/diagram"
	"classdraw/importer"
)

// SaveOption tunes WriteSaveFile.
type SaveOption func(*saveOptions)

type saveOptions struct {
	indent int
}

// WithIndent sets the indentation width for JSON and YAML. Zero writes
// compact JSON.
func WithIndent(n int) SaveOption {
	return func(o *saveOptions) { o.indent = n }
}

// Envelope builds the versioned save structure for doc.
func Envelope(doc *importer.Document) map[string]any {
	nodes := make([]any, len(doc.Nodes))
	for i, el := range doc.Nodes {
		nodes[i] = map[string]any(el.ToSerializable())
	}
	settings := doc.RenderSettings
	if settings == nil {
		settings = map[string]any{}
	}
	return map[string]any{
		"saveVersion":    importer.SaveVersion,
		"nodes":          nodes,
		"renderSettings": settings,
	}
}

// WriteSaveFile encodes doc in the given format.
func WriteSaveFile(w io.Writer, doc *importer.Document, format importer.Format, opts ...SaveOption) error {
	o := saveOptions{indent: 2}
	for _, opt := range opts {
		opt(&o)
	}
	env := plain(Envelope(doc))

	switch format {
	case importer.FormatJSON:
		enc := json.NewEncoder(w)
		if o.indent > 0 {
			enc.SetIndent("", strings.Repeat(" ", o.indent))
		}
		return enc.Encode(env)
	case importer.FormatYAML:
		enc := yaml.NewEncoder(w)
		if o.indent > 0 {
			enc.SetIndent(o.indent)
		}
		if err := enc.Encode(env); err != nil {
			return fmt.Errorf("encode yaml save file: %w", err)
		}
		return enc.Close()
	case importer.FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetSortMapKeys(true)
		return enc.Encode(env)
	default:
		return fmt.Errorf("unknown save format: %s", format)
	}
}

// plain converts nested Records to map[string]any so every codec sees the
// same shapes the loader gets back.
func plain(v any) any {
	switch x := v.(type) {
	case diagram.Record:
		return plain(map[string]any(x))
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = plain(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = plain(val)
		}
		return out
	default:
		return v
	}
}
