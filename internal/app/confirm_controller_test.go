package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"
)

func TestConfirmDialogWidthCappedByMaxWidth(t *testing.T) {
	c := NewConfirmController()
	longURL := "https://example.com/" + strings.Repeat("very-long-path-segment/", 8)
	c.Open("Delete sitemap", "Are you sure you want to delete "+longURL+"?", "Delete", "Cancel")

	_, _, width, _ := c.layout(200, 40)
	if width != confirmMaxWidth {
		t.Fatalf("expected width %d, got %d", confirmMaxWidth, width)
	}
}

func TestConfirmDialogViewWrapsLongMessageWithinMaxWidth(t *testing.T) {
	c := NewConfirmController()
	longURL := "https://example.com/" + strings.Repeat("very-long-path-segment/", 8)
	c.Open("Delete sitemap", "Are you sure you want to delete "+longURL+"?", "Delete", "Cancel")

	view, _ := c.View(confirmMaxWidth, 40)
	lines := strings.Split(xansi.Strip(view), "\n")
	if len(lines) <= 5 {
		t.Fatalf("expected wrapped dialog lines, got %d", len(lines))
	}
	for _, line := range lines {
		if w := xansi.StringWidth(line); w > confirmMaxWidth {
			t.Fatalf("expected lines to fit %d, got %d: %q", confirmMaxWidth, w, line)
		}
	}
}

func TestConfirmDialogEnterDefaultsToCancel(t *testing.T) {
	c := NewConfirmController()
	c.Open("Delete email address", "Are you sure?", "Delete", "Cancel")

	handled, choice := c.HandleKey(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !handled || choice != confirmChoiceCancel {
		t.Fatalf("expected enter to cancel by default, got handled=%v choice=%v", handled, choice)
	}

	c.HandleKey(tea.KeyPressMsg{Code: tea.KeyLeft})
	_, choice = c.HandleKey(tea.KeyPressMsg{Code: tea.KeyEnter})
	if choice != confirmChoiceConfirm {
		t.Fatalf("expected enter on confirm button to confirm, got %v", choice)
	}
}

func TestConfirmDialogShortcutKeys(t *testing.T) {
	c := NewConfirmController()
	c.Open("", "Archive?", "", "")

	if _, choice := c.HandleKey(tea.KeyPressMsg{Code: 'y', Text: "y"}); choice != confirmChoiceConfirm {
		t.Fatalf("expected y to confirm, got %v", choice)
	}
	if _, choice := c.HandleKey(tea.KeyPressMsg{Code: tea.KeyEsc}); choice != confirmChoiceCancel {
		t.Fatalf("expected esc to cancel, got %v", choice)
	}
	if handled, choice := c.HandleKey(tea.KeyPressMsg{Code: 'z', Text: "z"}); !handled || choice != confirmChoiceNone {
		t.Fatalf("expected other keys to be swallowed, got handled=%v choice=%v", handled, choice)
	}
	if c.confirmLabel != "Confirm" || c.cancelLabel != "Cancel" {
		t.Fatalf("expected default labels, got %q/%q", c.confirmLabel, c.cancelLabel)
	}
}

func TestConfirmDialogMouseButtonsRespectBorderedLayout(t *testing.T) {
	c := NewConfirmController()
	c.Open("Delete sitemap", "Delete https://a.test/sitemap.xml?", "Delete", "Cancel")

	x, y, width, height := c.layout(120, 40)
	buttonRow := y + height - 2
	borderRow := y + height - 1

	handled, choice := c.HandleMouse(tea.MouseClickMsg{Button: tea.MouseLeft, X: x + 2, Y: buttonRow}, 120, 40)
	if !handled || choice != confirmChoiceConfirm {
		t.Fatalf("expected confirm click on button row, handled=%v choice=%v", handled, choice)
	}
	handled, choice = c.HandleMouse(tea.MouseClickMsg{Button: tea.MouseLeft, X: x + width - 3, Y: buttonRow}, 120, 40)
	if !handled || choice != confirmChoiceCancel {
		t.Fatalf("expected cancel click on button row, handled=%v choice=%v", handled, choice)
	}
	handled, choice = c.HandleMouse(tea.MouseClickMsg{Button: tea.MouseLeft, X: x + 2, Y: borderRow}, 120, 40)
	if !handled || choice != confirmChoiceNone {
		t.Fatalf("expected border click to be ignored, handled=%v choice=%v", handled, choice)
	}
}

func TestConfirmDialogClosedIgnoresInput(t *testing.T) {
	c := NewConfirmController()
	c.Open("x", "y", "", "")
	c.Close()
	if handled, _ := c.HandleKey(tea.KeyPressMsg{Code: 'y', Text: "y"}); handled {
		t.Fatalf("expected closed dialog to ignore keys")
	}
	if view, _ := c.View(80, 20); view != "" {
		t.Fatalf("expected empty view when closed")
	}
}
