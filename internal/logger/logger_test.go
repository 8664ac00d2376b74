package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// ---------------------------------------------------------------------------
// TestGetLogger - Context propagation
// ---------------------------------------------------------------------------

func TestGetLogger_FromContext(t *testing.T) {
	t.Parallel()

	entry := logrus.NewEntry(logrus.New()).WithField("stage", "scan")
	ctx := WithLogger(context.Background(), entry)

	got := G(ctx)
	if got.Data["stage"] != "scan" {
		t.Errorf("G(ctx).Data[stage] = %v, want scan", got.Data["stage"])
	}
}

func TestGetLogger_Fallback(t *testing.T) {
	t.Parallel()

	got := G(context.Background())
	if got.Logger != L.Logger {
		t.Error("G() without logger should fall back to L")
	}
}

// ---------------------------------------------------------------------------
// TestNew - Level and format selection
// ---------------------------------------------------------------------------

func TestNew_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"bogus", logrus.WarnLevel},
	}

	for _, tt := range tests {
		if got := New(&bytes.Buffer{}, tt.level, "text").GetLevel(); got != tt.want {
			t.Errorf("New(%q).GetLevel() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestNew_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, "info", "json")
	l.WithField("engine", "fpdf").Info("rendered")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if rec["message"] != "rendered" || rec["engine"] != "fpdf" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestNew_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, "warn", "text")
	l.Info("hidden")
	l.WithField("engine", "chrome").Warn("unavailable")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "engine=chrome") {
		t.Errorf("missing field in %q", out)
	}
}
