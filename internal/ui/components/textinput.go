package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// AnswerInput is a text input that accepts only digits, for typing an
// option number.
type AnswerInput struct {
	Model textinput.Model
}

// NewAnswerInput creates a focused AnswerInput allowing up to maxDigits
// characters.
func NewAnswerInput(placeholder string, maxDigits int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if maxDigits > 0 {
		ti.CharLimit = maxDigits
	}

	return AnswerInput{Model: ti}
}

// Init returns the initial command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update drops non-digit runes and forwards everything else.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if r := []rune(kmsg.String()); len(r) == 1 && (r[0] < '0' || r[0] > '9') {
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the input.
func (a AnswerInput) View() string {
	return a.Model.View()
}

// Value returns the typed text.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}
