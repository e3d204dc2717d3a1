package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/idlesign/mednsktest/internal/session"
	"github.com/idlesign/mednsktest/internal/ui/prompt"
	"github.com/idlesign/mednsktest/internal/ui/theme"
)

// uiModeDecision captures how answers are read and whether output is styled.
type uiModeDecision struct {
	useTUI  bool
	color   bool
	warning string
}

// isTerminal reports whether a reader or writer is a TTY.
var isTerminal = defaultIsTerminal

// resolveUIMode picks the prompter and colouring for the given streams.
func resolveUIMode(mode string, stdin io.Reader, stdout io.Writer) (uiModeDecision, error) {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = "auto"
	}
	interactive := isTerminal(stdin) && isTerminal(stdout)

	switch normalized {
	case "auto":
		return uiModeDecision{useTUI: interactive, color: isTerminal(stdout)}, nil
	case "tui":
		if interactive {
			return uiModeDecision{useTUI: true, color: true}, nil
		}
		return uiModeDecision{
			color:   isTerminal(stdout),
			warning: "TUI requested but the console is not a TTY; falling back to plain input.",
		}, nil
	case "plain":
		return uiModeDecision{}, nil
	default:
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|plain|tui)", mode)
	}
}

func newPrompter(mode uiModeDecision, stdin io.Reader, stdout io.Writer) session.Prompter {
	if mode.useTUI {
		return prompt.New(stdin, stdout)
	}
	return session.NewLinePrompter(stdin, stdout)
}

// consoleStyles maps the theme onto the engine's output decorators.
func consoleStyles(color bool) session.Styles {
	if !color {
		return session.PlainStyles()
	}
	return session.Styles{
		Header:    func(s string) string { return theme.Header.Render(s) },
		Correct:   func(s string) string { return theme.Correct.Render(s) },
		Incorrect: func(s string) string { return theme.Incorrect.Render(s) },
		Hint:      func(s string) string { return theme.Hint.Render(s) },
	}
}

// defaultIsTerminal inspects a stream for TTY support.
func defaultIsTerminal(stream any) bool {
	if stream == nil {
		return false
	}
	if file, ok := stream.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stream.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
