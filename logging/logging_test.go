package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"off", LevelSilent},
		{"chatty", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := LevelFromString(tt.in); got != tt.want {
				t.Errorf("LevelFromString(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	if LevelFromVerbosity(3, true) != LevelSilent {
		t.Error("quiet should win over verbosity")
	}
	if LevelFromVerbosity(0, false) != slog.LevelWarn {
		t.Error("default verbosity should be warn")
	}
	if LevelFromVerbosity(1, false) != slog.LevelInfo {
		t.Error("-v should be info")
	}
	if LevelFromVerbosity(5, false) != slog.LevelDebug {
		t.Error("-vv and above should be debug")
	}
}

func TestNewLoggerFiltersAndDropsTime(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, slog.LevelWarn)
	log.Info("hidden")
	log.Warn("shown", "tag", "Class")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record written at warn level")
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "tag=Class") {
		t.Errorf("unexpected output %q", out)
	}
	if strings.Contains(out, "time=") {
		t.Errorf("timestamp not removed: %q", out)
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatal("nil logger not replaced")
	}
	l := NewDiscardLogger()
	if OrDiscard(l) != l {
		t.Error("non-nil logger replaced")
	}
}
