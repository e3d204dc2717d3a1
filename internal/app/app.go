// Package app runs one quiz session from bank loading to the final report.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/idlesign/mednsktest/internal/bank"
	"github.com/idlesign/mednsktest/internal/progress"
	"github.com/idlesign/mednsktest/internal/report"
	"github.com/idlesign/mednsktest/internal/session"
	"github.com/idlesign/mednsktest/internal/store"
)

// Options configures a quiz run.
type Options struct {
	BankDir     string
	ProgressDir string
	Bank        string
	Limit       int
	Shuffle     bool
	Track       bool
	UI          string // auto, plain or tui

	Stdin  io.Reader
	Stdout io.Writer

	// History records the finished session when set.
	History store.HistoryRepo
	Logger  *zap.Logger

	// Rand and Now default to a clock-seeded source and time.Now.
	Rand *rand.Rand
	Now  func() time.Time
}

// Run loads the bank, asks the questions, replays the failures once and
// prints the report. Progress and history are saved only after a
// completed session.
func Run(ctx context.Context, opts Options) (*report.Summary, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	rng := opts.Rand
	if rng == nil {
		rng = session.NewRand()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	questions, err := bank.Load(opts.BankDir, opts.Bank)
	if err != nil {
		if errors.Is(err, bank.ErrBankNotFound) {
			return nil, withAvailable(err, opts.BankDir)
		}
		return nil, err
	}
	log.Debug("bank loaded", zap.String("bank", opts.Bank), zap.Int("questions", len(questions)))

	var tracker *progress.Store
	if opts.Track {
		tracker = progress.New(opts.ProgressDir, opts.Bank)
		if err := tracker.Load(); err != nil {
			return nil, err
		}
		questions = tracker.Filter(questions)
		log.Debug("progress applied", zap.String("file", tracker.Path()), zap.Int("fresh", len(questions)))
	}

	picked := session.Pick(questions, opts.Limit, rng)

	mode, err := resolveUIMode(opts.UI, opts.Stdin, opts.Stdout)
	if err != nil {
		return nil, err
	}
	if mode.warning != "" {
		log.Warn(mode.warning)
	}

	engine := session.NewEngine(newPrompter(mode, opts.Stdin, opts.Stdout), opts.Stdout, rng, consoleStyles(mode.color))

	started := now()
	first, err := engine.Run(ctx, picked, opts.Shuffle)
	if err != nil {
		return nil, fmt.Errorf("run session: %w", err)
	}
	if _, err := engine.Replay(ctx, first.Failures, opts.Shuffle); err != nil {
		return nil, fmt.Errorf("replay failures: %w", err)
	}
	finished := now()

	summary := report.Build(opts.Limit, len(picked), len(first.Failures))
	report.Render(opts.Stdout, summary, mode.color)

	if tracker != nil {
		tracker.Contribute(first.SuccessIDs(), first.FailureIDs())
		if err := tracker.Persist(); err != nil {
			return &summary, fmt.Errorf("save progress: %w", err)
		}
	}

	if opts.History != nil {
		record := store.SessionEventData{
			SessionID:  uuid.New().String(),
			Bank:       opts.Bank,
			StartedAt:  started,
			FinishedAt: finished,
			Limit:      opts.Limit,
			Asked:      len(picked),
			Failures:   summary.Failures,
			Rate:       summary.Rate,
			Shuffled:   opts.Shuffle,
			Tracked:    opts.Track,
			Answers:    answers(first),
		}
		if err := opts.History.AppendSession(ctx, record); err != nil {
			log.Warn("failed to record session history", zap.Error(err))
		}
	}

	return &summary, nil
}

func answers(res *session.Result) []store.AnswerEventData {
	out := make([]store.AnswerEventData, len(res.Outcomes))
	for i, o := range res.Outcomes {
		out[i] = store.AnswerEventData{QuestionID: o.QuestionID, Position: i + 1, Correct: o.Correct}
	}
	return out
}

// withAvailable appends the discovered bank names to a not-found error.
func withAvailable(err error, dir string) error {
	names, derr := bank.Discover(dir)
	if derr != nil || len(names) == 0 {
		return fmt.Errorf("%w (no banks in %s)", err, dir)
	}
	return fmt.Errorf("%w (available: %s)", err, strings.Join(names, ", "))
}
