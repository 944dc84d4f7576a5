package app

import (
	"fmt"

	"reviewdesk/internal/selection"
)

// rowLabel renders the text column of one row in at most width cells.
type rowLabel func(item selection.Item, width int) string

// ListPanel is a scrolling checkbox list over a selection.List. The list
// owns membership and selection; the panel only owns cursor and scroll.
type ListPanel struct {
	width  int
	height int
	cursor int
	offset int
	list   *selection.List
	label  rowLabel
	empty  string
}

func NewListPanel(list *selection.List, label rowLabel, empty string) *ListPanel {
	if label == nil {
		label = plainRowLabel
	}
	return &ListPanel{list: list, label: label, empty: empty}
}

func (p *ListPanel) List() *selection.List {
	return p.list
}

func (p *ListPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.Sync()
}

// Sync re-clamps cursor and scroll after the list changed underneath.
func (p *ListPanel) Sync() {
	n := p.list.Len()
	if p.cursor >= n {
		p.cursor = max(0, n-1)
	}
	p.ensureVisible()
}

func (p *ListPanel) Move(delta int) bool {
	n := p.list.Len()
	if n == 0 || delta == 0 {
		return false
	}
	next := clamp(p.cursor+delta, 0, n-1)
	if next == p.cursor {
		return false
	}
	p.cursor = next
	p.ensureVisible()
	return true
}

func (p *ListPanel) Current() (selection.Item, bool) {
	return p.list.At(p.cursor)
}

func (p *ListPanel) ToggleCurrent() bool {
	item, ok := p.Current()
	if !ok {
		return false
	}
	return p.list.Toggle(item.ID)
}

// ToggleAll applies the header checkbox: select everything unless all
// rows are already selected.
func (p *ListPanel) ToggleAll() {
	p.list.SetAll(selection.Derive(p.list).ToggleAllTarget())
}

// HandleClick toggles the row at a body-relative offset. Row 0 is the
// header checkbox.
func (p *ListPanel) HandleClick(row int) bool {
	if row == 0 {
		p.ToggleAll()
		return true
	}
	row--
	if row < 0 || row >= p.bodyHeight() {
		return false
	}
	index := p.offset + row
	item, ok := p.list.At(index)
	if !ok {
		return false
	}
	p.cursor = index
	p.ensureVisible()
	return p.list.Toggle(item.ID)
}

func (p *ListPanel) View() string {
	if p.height <= 0 {
		return ""
	}
	agg := selection.Derive(p.list)
	header := fmt.Sprintf(" %s %d of %d selected", agg.Header.Glyph(), agg.Selected, agg.Rendered)
	lines := []string{listHeaderStyle.Render(truncateToWidth(header, p.width))}
	if p.list.Len() == 0 {
		lines = append(lines, statusStyle.Render(" "+p.empty))
		return padLines(lines, p.width)
	}
	labelWidth := max(1, p.width-5)
	for i := 0; i < p.bodyHeight(); i++ {
		idx := p.offset + i
		item, ok := p.list.At(idx)
		if !ok {
			lines = append(lines, "")
			continue
		}
		checkbox := "[ ]"
		if p.list.IsSelected(item.ID) {
			checkbox = "[x]"
		}
		line := " " + checkbox + " " + p.label(item, labelWidth)
		if idx == p.cursor {
			line = selectedStyle.Render(padToWidth(line, p.width))
		}
		lines = append(lines, line)
	}
	return padLines(lines, p.width)
}

func (p *ListPanel) bodyHeight() int {
	return max(0, p.height-1)
}

func (p *ListPanel) ensureVisible() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if body := p.bodyHeight(); body > 0 && p.cursor >= p.offset+body {
		p.offset = p.cursor - body + 1
	}
	maxOffset := max(0, p.list.Len()-p.bodyHeight())
	p.offset = clamp(p.offset, 0, maxOffset)
}

func plainRowLabel(item selection.Item, width int) string {
	return truncateLabel(item.Label, width)
}

func pageRowLabel(item selection.Item, width int) string {
	if !item.Flagged {
		return truncateLabel(item.Label, width)
	}
	const marker = "● "
	return flaggedStyle.Render(marker) + truncateLabel(item.Label, max(1, width-2))
}

func emailRowLabel(item selection.Item, width int) string {
	state := "on "
	style := statusStyle
	if !item.Enabled {
		state = "off"
		style = disabledStyle
	}
	return style.Render(state) + " " + truncateLabel(item.Label, max(1, width-4))
}
