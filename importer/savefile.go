package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"classdraw/diagram"
)

// SaveVersion is the envelope version written by this package.
const SaveVersion = 1

// Format is an encoding of the save file.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// Formats lists the supported save encodings.
var Formats = []Format{FormatJSON, FormatYAML, FormatMsgpack}

// ParseFormat converts a name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mpk", "mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("unknown save format: %s", s)
	}
}

// FormatFromPath guesses the format from a file extension, defaulting to
// JSON.
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return FormatJSON
}

// Document is a whole save file: the element list in render order plus the
// opaque render settings of the editor.
type Document struct {
	Version        int
	Nodes          []diagram.Element
	RenderSettings map[string]any
}

// LoadSaveFile decodes a save file with the default registry.
func LoadSaveFile(src io.Reader, format Format) (*Document, error) {
	return NewDefaultRegistry(nil).LoadSaveFile(src, format)
}

// LoadSaveFile reads a save file in the given format. Both the versioned
// envelope {saveVersion, nodes, renderSettings} and the legacy bare record
// list are accepted.
func (r *Registry) LoadSaveFile(src io.Reader, format Format) (*Document, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read save file: %w", err)
	}
	raw, err := unmarshal(data, format)
	if err != nil {
		return nil, err
	}
	return r.DecodeDocument(raw)
}

func unmarshal(data []byte, format Format) (any, error) {
	var raw any
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("unknown save format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s save file: %w", format, err)
	}
	return raw, nil
}

// DecodeDocument builds a Document from the generic value produced by a
// codec.
func (r *Registry) DecodeDocument(raw any) (*Document, error) {
	doc := &Document{}
	var nodes []any

	switch v := raw.(type) {
	case []any:
		nodes = v
	default:
		env, ok := diagram.AsRecord(raw)
		if !ok {
			return nil, newError(MalformedRecord, "", -1, fmt.Errorf("%w: save file is %T", diagram.ErrMalformed, raw))
		}
		rd := diagram.NewRecordReader(env)
		doc.Version = rd.Int("saveVersion")
		nodes = rd.List("nodes")
		if settings := rd.Record("renderSettings"); len(settings) > 0 {
			doc.RenderSettings = map[string]any(settings)
		}
		if err := rd.Err(); err != nil {
			return nil, newError(MalformedRecord, "", -1, err)
		}
		if doc.Version > SaveVersion {
			return nil, newError(UnsupportedVersion, "", -1,
				fmt.Errorf("save version %d is newer than %d", doc.Version, SaveVersion))
		}
	}

	records := make([]diagram.Record, len(nodes))
	for i, n := range nodes {
		rec, ok := diagram.AsRecord(n)
		if !ok {
			return nil, newError(MalformedRecord, "", i, fmt.Errorf("%w: node is %T", diagram.ErrMalformed, n))
		}
		records[i] = rec
	}

	elements, err := r.BatchDeserialize(records)
	if err != nil {
		return nil, err
	}
	doc.Nodes = elements
	return doc, nil
}
