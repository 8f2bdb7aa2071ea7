package main

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// textInputModel wraps bubbles/textinput for the schema-path field.
type textInputModel struct {
	input textinput.Model
}

func newTextInputModel(placeholder, value string) textInputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60
	return textInputModel{input: ti}
}

func (t textInputModel) Value() string { return t.input.Value() }
func (t textInputModel) View() string  { return t.input.View() }

func (t textInputModel) update(msg tea.Msg) (textInputModel, tea.Cmd) {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

// textAreaModel wraps bubbles/textarea for the query field.
type textAreaModel struct {
	area textarea.Model
}

func newTextAreaModel(placeholder string) textAreaModel {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.SetWidth(76)
	ta.SetHeight(8)
	ta.Focus()
	return textAreaModel{area: ta}
}

func (t textAreaModel) Value() string { return t.area.Value() }
func (t textAreaModel) View() string  { return t.area.View() }

func (t textAreaModel) update(msg tea.Msg) (textAreaModel, tea.Cmd) {
	var cmd tea.Cmd
	t.area, cmd = t.area.Update(msg)
	return t, cmd
}
