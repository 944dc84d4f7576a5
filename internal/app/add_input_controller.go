package app

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

const addInputCharLimit = 254

// AddInputController is the single-line "add email address" field.
type AddInputController struct {
	input  textinput.Model
	active bool
}

func NewAddInputController(width int) *AddInputController {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "name@example.com"
	input.CharLimit = addInputCharLimit
	c := &AddInputController{input: input}
	c.Resize(width)
	return c
}

func (c *AddInputController) Active() bool {
	return c != nil && c.active
}

func (c *AddInputController) Open() tea.Cmd {
	c.active = true
	return c.input.Focus()
}

// Close hides the field but keeps what was typed for the next Open.
func (c *AddInputController) Close() {
	c.active = false
	c.input.Blur()
}

func (c *AddInputController) Clear() {
	c.input.SetValue("")
}

func (c *AddInputController) SetValue(value string) {
	c.input.SetValue(value)
}

func (c *AddInputController) Value() string {
	return strings.TrimSpace(c.input.Value())
}

func (c *AddInputController) Resize(width int) {
	c.input.SetWidth(max(10, width))
}

func (c *AddInputController) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *AddInputController) View() string {
	return c.input.View()
}
