package app

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestBuildStyleConfigDisablesDocumentOuterMargins(t *testing.T) {
	cfg := buildStyleConfig()
	if cfg.Document.StylePrimitive.BlockPrefix != "" || cfg.Document.StylePrimitive.BlockSuffix != "" {
		t.Fatalf("expected empty document block prefix/suffix")
	}
	if cfg.Document.Margin == nil || *cfg.Document.Margin != 0 {
		t.Fatalf("expected document margin 0")
	}
}

func TestRenderMarkdownKeepsTextWithinWidth(t *testing.T) {
	out := renderMarkdown("# Welcome\n\nSelect pages with **space** and mark them for review in one request.", 30)
	plain := xansi.Strip(out)
	if !strings.Contains(plain, "Welcome") {
		t.Fatalf("expected heading text in output, got %q", plain)
	}
	for _, line := range strings.Split(plain, "\n") {
		if xansi.StringWidth(line) > 30 {
			t.Fatalf("expected lines within 30 columns, got %q", line)
		}
	}
	if renderMarkdown("\n\n", 30) != "" {
		t.Fatalf("expected empty output for blank input")
	}
}
