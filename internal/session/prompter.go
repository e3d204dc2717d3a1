package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter shows a prompt and blocks until the user enters one line.
// It returns io.EOF once input is exhausted.
type Prompter interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// LinePrompter reads answers line by line from a plain reader, e.g. stdin.
// Lines have no length limit.
type LinePrompter struct {
	out    io.Writer
	reader *bufio.Reader
}

// NewLinePrompter creates a LinePrompter that prints prompts to out and
// reads answers from in.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{out: out, reader: bufio.NewReader(in)}
}

// ReadLine prints prompt and returns the next input line without its
// terminator.
func (p *LinePrompter) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, prompt)

	line, err := p.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read answer: %w", err)
		}
		if line == "" {
			return "", io.EOF
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
