package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"
)

type confirmChoice int

const (
	confirmChoiceNone confirmChoice = iota
	confirmChoiceConfirm
	confirmChoiceCancel
)

const (
	confirmMinWidth = 24
	confirmMaxWidth = 60
)

const (
	confirmButtonConfirm = iota
	confirmButtonCancel
)

// ConfirmController is the modal yes/no dialog shown before destructive
// actions. Focus starts on the cancel button so a stray enter declines.
type ConfirmController struct {
	active       bool
	title        string
	message      string
	confirmLabel string
	cancelLabel  string
	selected     int
}

func NewConfirmController() *ConfirmController {
	return &ConfirmController{}
}

func (c *ConfirmController) IsOpen() bool {
	return c != nil && c.active
}

func (c *ConfirmController) Open(title, message, confirmLabel, cancelLabel string) {
	if c == nil {
		return
	}
	c.active = true
	c.title = strings.TrimSpace(title)
	c.message = strings.TrimSpace(message)
	if confirmLabel == "" {
		confirmLabel = "Confirm"
	}
	if cancelLabel == "" {
		cancelLabel = "Cancel"
	}
	c.confirmLabel = confirmLabel
	c.cancelLabel = cancelLabel
	c.selected = confirmButtonCancel
}

func (c *ConfirmController) Close() {
	if c == nil {
		return
	}
	*c = ConfirmController{}
}

func (c *ConfirmController) HandleKey(msg tea.KeyPressMsg) (bool, confirmChoice) {
	if c == nil || !c.active {
		return false, confirmChoiceNone
	}
	switch msg.String() {
	case "esc", "q", "n":
		return true, confirmChoiceCancel
	case "y":
		return true, confirmChoiceConfirm
	case "left", "h":
		c.selected = confirmButtonConfirm
		return true, confirmChoiceNone
	case "right", "l":
		c.selected = confirmButtonCancel
		return true, confirmChoiceNone
	case "tab", "shift+tab":
		c.selected = 1 - c.selected
		return true, confirmChoiceNone
	case "enter":
		if c.selected == confirmButtonConfirm {
			return true, confirmChoiceConfirm
		}
		return true, confirmChoiceCancel
	}
	// Swallow everything else while the dialog is up.
	return true, confirmChoiceNone
}

func (c *ConfirmController) HandleMouse(msg tea.MouseMsg, maxWidth, maxHeight int) (bool, confirmChoice) {
	if c == nil || !c.active {
		return false, confirmChoiceNone
	}
	if _, ok := msg.(tea.MouseClickMsg); !ok {
		return false, confirmChoiceNone
	}
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return false, confirmChoiceNone
	}
	x, y, width, height := c.layout(maxWidth, maxHeight)
	if mouse.X < x || mouse.X >= x+width || mouse.Y < y || mouse.Y >= y+height {
		return false, confirmChoiceNone
	}
	buttonRow := y + height - 2
	if mouse.Y != buttonRow {
		return true, confirmChoiceNone
	}
	contentX := x + 1
	contentWidth := max(1, width-2)
	if mouse.X < contentX || mouse.X >= contentX+contentWidth {
		return true, confirmChoiceNone
	}
	if mouse.X < contentX+contentWidth/2 {
		c.selected = confirmButtonConfirm
		return true, confirmChoiceConfirm
	}
	c.selected = confirmButtonCancel
	return true, confirmChoiceCancel
}

// View renders the dialog centered in maxWidth and returns it with the row
// it should start on.
func (c *ConfirmController) View(maxWidth, maxHeight int) (string, int) {
	if c == nil || !c.active {
		return "", 0
	}
	x, y, width, _ := c.layout(maxWidth, maxHeight)
	innerWidth := max(1, width-2)
	contentWidth := max(1, innerWidth-2)
	title := c.title
	if title == "" {
		title = "Confirm"
	}
	title = truncateToWidth(title, contentWidth)
	lines := []string{contextMenuHeaderStyle.Render(" " + padToWidth(title, contentWidth) + " ")}

	if c.message != "" {
		for _, line := range c.wrappedMessage(contentWidth) {
			line = truncateToWidth(line, contentWidth)
			lines = append(lines, menuDropStyle.Render(" "+padToWidth(line, contentWidth)+" "))
		}
	}

	leftWidth := contentWidth / 2
	rightWidth := contentWidth - leftWidth
	confirm := padToWidth(truncateToWidth("["+c.confirmLabel+"]", leftWidth), leftWidth)
	cancel := padToWidth(truncateToWidth("["+c.cancelLabel+"]", rightWidth), rightWidth)
	if c.selected == confirmButtonConfirm {
		confirm = selectedStyle.Render(confirm)
		cancel = menuDropStyle.Render(cancel)
	} else {
		confirm = menuDropStyle.Render(confirm)
		cancel = selectedStyle.Render(cancel)
	}
	lines = append(lines, padToWidth(" "+confirm+cancel+" ", innerWidth))

	block := confirmDialogBorderStyle.Render(strings.Join(lines, "\n"))
	return indentBlock(block, x), y
}

func (c *ConfirmController) wrappedMessage(width int) []string {
	return strings.Split(xansi.Hardwrap(c.message, width, true), "\n")
}

func (c *ConfirmController) layout(maxWidth, maxHeight int) (int, int, int, int) {
	width := c.dialogWidth()
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}
	height := c.dialogHeight(width)
	x, y := 0, 0
	if maxWidth > 0 {
		x = max(0, (maxWidth-width)/2)
	}
	if maxHeight > 0 {
		y = max(1, (maxHeight-height)/2+1)
	}
	return x, y, width, height
}

func (c *ConfirmController) dialogWidth() int {
	title := c.title
	if title == "" {
		title = "Confirm"
	}
	content := max(xansi.StringWidth(title), xansi.StringWidth(c.message))
	content = max(content, xansi.StringWidth(c.confirmLabel)+xansi.StringWidth(c.cancelLabel)+6)
	return clamp(content+4, confirmMinWidth, confirmMaxWidth)
}

func (c *ConfirmController) dialogHeight(width int) int {
	contentWidth := max(1, width-4)
	height := 2 + 1 + 1
	if c.message != "" {
		height += len(c.wrappedMessage(contentWidth))
	}
	return height
}
