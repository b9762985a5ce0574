package slogpretty

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	color.NoColor = true
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: level}}
	return slog.New(opts.NewPrettyHandler(buf))
}

func TestHandleWritesMessageAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelDebug)

	log.Info("lesson added", slog.String("name", "Physics"))

	out := buf.String()
	if !strings.Contains(out, "INFO:") || !strings.Contains(out, "lesson added") {
		t.Fatalf("missing level or message: %q", out)
	}
	if !strings.Contains(out, `"name": "Physics"`) {
		t.Fatalf("missing field: %q", out)
	}
}

func TestWithAttrsCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelDebug).With(slog.String("component", "tracker"))

	log.Warn("save failed")

	if !strings.Contains(buf.String(), `"component": "tracker"`) {
		t.Fatalf("With attrs not rendered: %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelInfo)

	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug record should be filtered: %q", buf.String())
	}
}

func TestWithGroupNestsAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelDebug).
		With(slog.String("component", "tracker")).
		WithGroup("store").
		With(slog.String("key", "lessons"))

	log.Error("save failed", slog.Int("attempt", 2))

	out := buf.String()
	want := `"component": "tracker",
  "store": {
    "attempt": 2,
    "key": "lessons"
  }`
	if !strings.Contains(out, want) {
		t.Fatalf("grouped attrs not nested:\n%s", out)
	}
}

func TestGroupAttrAndEmptyGroup(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelDebug)

	log.Info("export", slog.Group("file", slog.String("format", "csv")), slog.Group(""))

	out := buf.String()
	if !strings.Contains(out, `"file": {`) || !strings.Contains(out, `"format": "csv"`) {
		t.Fatalf("group attr not nested: %q", out)
	}

	buf.Reset()
	log.WithGroup("empty").Info("plain")
	if strings.Contains(buf.String(), "empty") {
		t.Fatalf("a group without attrs should be omitted: %q", buf.String())
	}
}

func TestWithGroupDoesNotLeakIntoParent(t *testing.T) {
	var buf bytes.Buffer
	parent := newTestLogger(&buf, slog.LevelDebug).With(slog.String("a", "1"))
	parent.WithGroup("g").With(slog.String("b", "2"))

	parent.Info("parent")
	if strings.Contains(buf.String(), `"b"`) {
		t.Fatalf("child attrs leaked into parent: %q", buf.String())
	}
}
