// Package config loads and writes classdraw.toml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"classdraw/importer"
)

// FileName is the config file looked up in the working directory.
const FileName = "classdraw.toml"

// EnvPrefix prefixes environment overrides, e.g. CLASSDRAW_SAVE_FORMAT.
const EnvPrefix = "CLASSDRAW"

// Config holds the tool configuration
type Config struct {
	Editor  EditorConfig  `toml:"editor" mapstructure:"editor"`
	Save    SaveConfig    `toml:"save" mapstructure:"save"`
	Logging LoggingConfig `toml:"logging" mapstructure:"logging"`
}

// EditorConfig contains editor settings
type EditorConfig struct {
	PointRadius float64 `toml:"pointRadius" mapstructure:"pointRadius"`
}

// SaveConfig contains save file settings
type SaveConfig struct {
	Format string `toml:"format" mapstructure:"format"`
	Indent int    `toml:"indent" mapstructure:"indent"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `toml:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Editor: EditorConfig{
			PointRadius: 6,
		},
		Save: SaveConfig{
			Format: string(importer.FormatJSON),
			Indent: 2,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load reads classdraw.toml from dir. A missing file yields the defaults;
// environment variables override both.
func Load(dir string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("editor.pointRadius", def.Editor.PointRadius)
	v.SetDefault("save.format", def.Save.Format)
	v.SetDefault("save.indent", def.Save.Indent)
	v.SetDefault("logging.level", def.Logging.Level)

	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read %s: %w", FileName, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", FileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Write encodes the configuration as TOML.
func (c *Config) Write(w io.Writer) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteFile writes the configuration to dir/classdraw.toml, keeping the mode
// of an existing file.
func (c *Config) WriteFile(dir string) error {
	path := filepath.Join(dir, FileName)
	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, buf.Bytes(), mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// SaveFormat returns the configured save encoding.
func (c *Config) SaveFormat() importer.Format {
	f, err := importer.ParseFormat(c.Save.Format)
	if err != nil {
		return importer.FormatJSON
	}
	return f
}

var logLevels = []string{"debug", "info", "warn", "warning", "error", "off", "silent"}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Editor.PointRadius <= 0 {
		return &ConfigError{Field: "editor.pointRadius", Message: "must be positive"}
	}
	if _, err := importer.ParseFormat(c.Save.Format); err != nil {
		return &ConfigError{Field: "save.format", Message: fmt.Sprintf("unknown format %q", c.Save.Format)}
	}
	if c.Save.Indent < 0 || c.Save.Indent > 8 {
		return &ConfigError{Field: "save.indent", Message: "must be between 0 and 8"}
	}
	if !slices.Contains(logLevels, strings.ToLower(strings.TrimSpace(c.Logging.Level))) {
		return &ConfigError{Field: "logging.level", Message: fmt.Sprintf("unknown level %q", c.Logging.Level)}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
