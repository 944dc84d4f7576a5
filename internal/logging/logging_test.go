package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoggerWritesLogfmtLine(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Info).(*logfmtLogger)
	logger.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	logger.With(F("resource", "pages")).Warn("bulk update failed", F("count", 3), Err(errors.New("boom now")))

	got := strings.TrimSpace(buf.String())
	want := `ts=2026-01-02T03:04:05Z level=warn msg="bulk update failed" resource=pages count=3 error="boom now"`
	if got != want {
		t.Fatalf("unexpected line:\n got=%s\nwant=%s", got, want)
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Warn)
	logger.Info("hidden")
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	if logger.Enabled(Info) || !logger.Enabled(Error) {
		t.Fatalf("unexpected Enabled results")
	}
}

func TestNopLoggerDropsEverything(t *testing.T) {
	logger := Nop()
	if logger.Enabled(Error) {
		t.Fatalf("expected nop logger to be disabled")
	}
	logger.Error("ignored")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"":        Info,
		"verbose": Info,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}
