package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/idlesign/mednsktest/internal/bank"
)

// ErrInputClosed is returned when input ends before the session finishes.
var ErrInputClosed = errors.New("input closed before the session finished")

// Decorator styles a fragment of console output.
type Decorator func(string) string

// Styles decorates the engine's console output.
type Styles struct {
	Header    Decorator
	Correct   Decorator
	Incorrect Decorator
	Hint      Decorator
}

// PlainStyles returns Styles that leave text untouched.
func PlainStyles() Styles {
	plain := func(s string) string { return s }
	return Styles{Header: plain, Correct: plain, Incorrect: plain, Hint: plain}
}

// Outcome is the result of one attempted question.
type Outcome struct {
	QuestionID string
	Correct    bool
}

// Result partitions the questions of one pass by correctness. Attempt
// order is preserved in every slice.
type Result struct {
	Outcomes  []Outcome
	Successes []bank.Question
	Failures  []bank.Question
}

// SuccessIDs returns the ids of correctly answered questions.
func (r *Result) SuccessIDs() []string {
	return ids(r.Successes)
}

// FailureIDs returns the ids of wrongly answered questions.
func (r *Result) FailureIDs() []string {
	return ids(r.Failures)
}

func (r *Result) record(q bank.Question, correct bool) {
	r.Outcomes = append(r.Outcomes, Outcome{QuestionID: q.ID, Correct: correct})
	if correct {
		r.Successes = append(r.Successes, q)
	} else {
		r.Failures = append(r.Failures, q)
	}
}

// Engine asks questions one at a time and scores the answers.
type Engine struct {
	out      io.Writer
	prompter Prompter
	rng      *rand.Rand
	styles   Styles
}

// NewEngine creates an Engine that writes to out and reads answers through
// p. A nil rng is replaced by a time-seeded one.
func NewEngine(p Prompter, out io.Writer, rng *rand.Rand, styles Styles) *Engine {
	if rng == nil {
		rng = NewRand()
	}
	if styles.Header == nil {
		styles = PlainStyles()
	}
	return &Engine{out: out, prompter: p, rng: rng, styles: styles}
}

// NewRand returns a random source seeded from the clock.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
}

// Run asks every question in order. With shuffle set the options of each
// question are shown in a random order.
//
// On error the partial result gathered so far is returned alongside it.
func (e *Engine) Run(ctx context.Context, questions []bank.Question, shuffle bool) (*Result, error) {
	res := &Result{}
	total := len(questions)

	for i, q := range questions {
		fmt.Fprintf(e.out, "\n\n%s\n", e.styles.Header(fmt.Sprintf(msgHeader, i+1, total, q.Label)))

		correct, err := e.ask(ctx, q, shuffle)
		if err != nil {
			return res, err
		}
		res.record(q, correct)
	}

	return res, nil
}

// Replay runs the failed questions once more. Its result is for practice
// only and must not feed the session report.
func (e *Engine) Replay(ctx context.Context, failures []bank.Question, shuffle bool) (*Result, error) {
	if len(failures) == 0 {
		return &Result{}, nil
	}
	fmt.Fprintf(e.out, "\n\n%s\n", e.styles.Hint(msgReplayBanner))
	return e.Run(ctx, failures, shuffle)
}

// ask presents one question and blocks until a valid choice is entered.
func (e *Engine) ask(ctx context.Context, q bank.Question, shuffle bool) (bool, error) {
	opts := q.DisplayOptions(shuffle, e.rng)
	right := bank.CorrectIndexOf(opts)
	prompt := renderPrompt(q.Prompt, opts)

	var chosen int
	for {
		line, err := e.prompter.ReadLine(ctx, prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, ErrInputClosed
			}
			return false, err
		}

		idx, ok := parseChoice(strings.TrimRight(line, "\r\n"), len(opts))
		if ok {
			chosen = idx
			break
		}
		fmt.Fprintf(e.out, msgChooseOneOf, strings.Join(validChoices(len(opts)), ", "))
	}

	correct := chosen == right
	if correct {
		phrase := praise[e.rng.IntN(len(praise))]
		fmt.Fprintln(e.out, e.styles.Correct(fmt.Sprintf(msgCorrect, phrase)))
	} else {
		fmt.Fprintln(e.out, e.styles.Incorrect(fmt.Sprintf(msgIncorrect, right+1, opts[right].Text)))
	}
	return correct, nil
}

// renderPrompt formats the question and its numbered options.
func renderPrompt(prompt string, opts []bank.Option) string {
	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString(":\n")
	for i, o := range opts {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, o.Text)
	}
	b.WriteString("> ")
	return b.String()
}

// parseChoice maps input to a zero-based option index. Only the exact
// strings "1".."n" are accepted.
func parseChoice(input string, n int) (int, bool) {
	for i := 1; i <= n; i++ {
		if input == strconv.Itoa(i) {
			return i - 1, true
		}
	}
	return 0, false
}

func validChoices(n int) []string {
	choices := make([]string, n)
	for i := range choices {
		choices[i] = strconv.Itoa(i + 1)
	}
	return choices
}

func ids(questions []bank.Question) []string {
	out := make([]string, len(questions))
	for i, q := range questions {
		out[i] = q.ID
	}
	return out
}
