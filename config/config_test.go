package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"classdraw/importer"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[editor]
pointRadius = 3.5

[save]
format = "msgpack"
indent = 0

[logging]
level = "debug"
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.PointRadius != 3.5 || cfg.Save.Indent != 0 || cfg.Logging.Level != "debug" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.SaveFormat() != importer.FormatMsgpack {
		t.Errorf("SaveFormat() = %s", cfg.SaveFormat())
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CLASSDRAW_SAVE_FORMAT", "yaml")
	t.Setenv("CLASSDRAW_LOGGING_LEVEL", "error")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Save.Format != "yaml" || cfg.Logging.Level != "error" {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("[save]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(dir)
	var ce *ConfigError
	if !errors.As(err, &ce) || ce.Field != "save.format" {
		t.Errorf("expected save.format ConfigError, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero radius", func(c *Config) { c.Editor.PointRadius = 0 }, "editor.pointRadius"},
		{"unknown format", func(c *Config) { c.Save.Format = "xml" }, "save.format"},
		{"extension format", func(c *Config) { c.Save.Format = ".yml" }, ""},
		{"negative indent", func(c *Config) { c.Save.Indent = -1 }, "save.indent"},
		{"huge indent", func(c *Config) { c.Save.Indent = 9 }, "save.indent"},
		{"unknown level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"level case", func(c *Config) { c.Logging.Level = " Debug " }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			var ce *ConfigError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("got %v, want error in %s", err, tt.field)
			}
		})
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Editor.PointRadius = 8
	cfg.Save.Format = "yaml"
	if err := cfg.WriteFile(dir); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("got %+v, want %+v", loaded, cfg)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := DefaultConfig().Write(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"[editor]", "pointRadius = 6.0", "[save]", `format = "json"`, "[logging]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
