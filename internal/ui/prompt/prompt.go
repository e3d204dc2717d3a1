// Package prompt reads quiz answers through a small Bubble Tea program.
package prompt

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/idlesign/mednsktest/internal/ui/components"
	"github.com/idlesign/mednsktest/internal/ui/theme"
)

// Prompter implements session.Prompter with an interactive text input.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// New creates a Prompter bound to a terminal's input and output.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// ReadLine shows prompt above an input field and returns the submitted
// text. Ctrl+C or Esc ends input and yields io.EOF.
func (p *Prompter) ReadLine(ctx context.Context, prompt string) (string, error) {
	prog := tea.NewProgram(newModel(prompt),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("run prompt: %w", err)
	}

	m, ok := final.(model)
	if !ok || m.aborted {
		return "", io.EOF
	}
	return m.value, nil
}

// model is the Bubble Tea model behind one ReadLine call.
type model struct {
	question string
	input    components.AnswerInput
	value    string
	aborted  bool
	done     bool
}

func newModel(prompt string) model {
	question := strings.TrimSuffix(prompt, "> ")
	return model{
		question: strings.TrimRight(question, "\n"),
		input:    components.NewAnswerInput("номер ответа", digitsFor(question)),
	}
}

// digitsFor sizes the input to the largest option number in the prompt.
func digitsFor(question string) int {
	n := strings.Count(question, "\n")
	return max(len(strconv.Itoa(n)), 1)
}

func (m model) Init() tea.Cmd {
	return m.input.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.value = m.input.Value()
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() tea.View {
	var b strings.Builder
	b.WriteString(theme.Card.Render(theme.Body.Render(m.question)))
	b.WriteString("\n")
	if m.done {
		b.WriteString("> " + m.value)
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	if !m.done && !m.aborted {
		b.WriteString(theme.Hint.Render("Enter: ответить  Esc: выйти"))
		b.WriteString("\n")
	}
	return tea.NewView(b.String())
}
