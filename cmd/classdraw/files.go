package main

import (
	"fmt"
	"io"
	"os"

	"classdraw/editor"
	"classdraw/importer"
)

// loadFile decodes a save file, guessing the encoding from its extension
// unless format is set.
func loadFile(path, format string) (*importer.Document, error) {
	f := importer.FormatFromPath(path)
	if format != "" {
		var err error
		if f, err = importer.ParseFormat(format); err != nil {
			return nil, err
		}
	}

	src, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	doc, err := importer.NewDefaultRegistry(app.logger).LoadSaveFile(src, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	app.logger.Debug("save file loaded", "path", path, "format", f, "elements", len(doc.Nodes))
	return doc, nil
}

// openEditor loads path into a fresh editor.
func openEditor(path, format string) (*editor.Editor, error) {
	doc, err := loadFile(path, format)
	if err != nil {
		return nil, err
	}
	ed := editor.New(
		editor.WithLogger(app.logger),
		editor.WithPointRadius(app.cfg.Editor.PointRadius),
	)
	ed.Load(doc)
	return ed, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
