package app

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/idlesign/mednsktest/internal/bank"
	"github.com/idlesign/mednsktest/internal/progress"
	"github.com/idlesign/mednsktest/internal/report"
	"github.com/idlesign/mednsktest/internal/session"
	"github.com/idlesign/mednsktest/internal/store"
)

// uniformBank has three questions whose second option is always right, so
// scripted answers do not depend on the order questions are picked in.
const uniformBank = "Медицинский тест\n" +
	bank.BoundaryMarker + " 1\nСколько камер в сердце?\n" + bank.VariantsMarker + ":\n1. три\n2. четыре\n3. пять\n" + bank.AnswerKeyMarker + ": 2\n" +
	bank.BoundaryMarker + " 2\nСколько лёгких у человека?\n" + bank.VariantsMarker + ":\n1. одно\n2. два *****\n" + bank.AnswerKeyMarker + ": 0\n" +
	bank.BoundaryMarker + " 3\nСколько почек у человека?\n" + bank.VariantsMarker + ":\n1. одна\n2. две\n3. три\n" + bank.AnswerKeyMarker + ": 2\n"

// fakeHistory records appended sessions in memory.
type fakeHistory struct {
	sessions []store.SessionEventData
	err      error
}

func (f *fakeHistory) AppendSession(_ context.Context, data store.SessionEventData) error {
	if f.err != nil {
		return f.err
	}
	f.sessions = append(f.sessions, data)
	return nil
}

func (f *fakeHistory) RecentSessions(context.Context, store.QueryOpts) ([]store.SessionEvent, error) {
	return nil, nil
}

func (f *fakeHistory) MostMissed(context.Context, store.QueryOpts) ([]store.QuestionMiss, error) {
	return nil, nil
}

func (f *fakeHistory) DeleteBank(context.Context, string) (int64, error) {
	return 0, nil
}

type fixture struct {
	dir     string
	out     bytes.Buffer
	history *fakeHistory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(bank.Path(dir, "anatomy"), []byte(uniformBank), 0o644))
	return &fixture{dir: dir, history: &fakeHistory{}}
}

func (f *fixture) options(input string, limit int, track bool) Options {
	f.out.Reset()
	clock := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	return Options{
		BankDir:     f.dir,
		ProgressDir: f.dir,
		Bank:        "anatomy",
		Limit:       limit,
		Track:       track,
		UI:          "plain",
		Stdin:       strings.NewReader(input),
		Stdout:      &f.out,
		History:     f.history,
		Rand:        rand.New(rand.NewPCG(1, 2)),
		Now: func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		},
	}
}

func TestRun_CompletedSession(t *testing.T) {
	f := newFixture(t)

	// First answer is wrong, then two right, then the replay is answered.
	summary, err := Run(context.Background(), f.options("1\n2\n2\n2\n", 3, false))
	require.NoError(t, err)

	assert.Equal(t, report.Summary{Limit: 3, Asked: 3, Successes: 2, Failures: 1, Rate: 67}, *summary)

	out := f.out.String()
	assert.Equal(t, 4, strings.Count(out, "Вопрос "))
	assert.Contains(t, out, "Почти закончили, но теперь повторим вопросы с ошибками:")
	assert.Contains(t, out, "  успешность - 67%")
	assert.NotContains(t, out, "\x1b[", "plain mode must not emit colour")

	require.Len(t, f.history.sessions, 1)
	rec := f.history.sessions[0]
	assert.Equal(t, "anatomy", rec.Bank)
	assert.NotEmpty(t, rec.SessionID)
	assert.Equal(t, 1, rec.Failures)
	assert.Equal(t, 67, rec.Rate)
	assert.True(t, rec.FinishedAt.After(rec.StartedAt))
	require.Len(t, rec.Answers, 3, "replay is not recorded")
	assert.False(t, rec.Answers[0].Correct)
	assert.Equal(t, 3, rec.Answers[2].Position)

	assert.NoFileExists(t, filepath.Join(f.dir, progress.FileName("anatomy")), "tracking disabled")
}

func TestRun_NoReplayWhenAllCorrect(t *testing.T) {
	f := newFixture(t)

	summary, err := Run(context.Background(), f.options("2\n2\n2\n", 50, false))
	require.NoError(t, err)

	// Rate keeps the configured limit as denominator.
	assert.Equal(t, report.Summary{Limit: 50, Asked: 3, Successes: 50, Failures: 0, Rate: 100}, *summary)
	assert.NotContains(t, f.out.String(), "повторим вопросы с ошибками")
}

func TestRun_TrackProgressAcrossSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := Run(ctx, f.options("2\n1\n2\n", 2, true))
	require.NoError(t, err)

	st := progress.New(f.dir, "anatomy")
	require.NoError(t, st.Load())
	assert.Len(t, st.State().Success, 1)
	assert.Len(t, st.State().Failure, 1)

	// One fresh question is left.
	summary, err := Run(ctx, f.options("2\n", 2, true))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Asked)
	assert.Equal(t, 1, strings.Count(f.out.String(), "Вопрос "))

	require.NoError(t, st.Load())
	all := append(st.State().Success, st.State().Failure...)
	assert.ElementsMatch(t, []string{"1", "2", "3"}, all)

	// Nothing left to ask.
	summary, err = Run(ctx, f.options("", 2, true))
	require.NoError(t, err)
	assert.Equal(t, report.Summary{Limit: 2, Asked: 0, Successes: 2, Failures: 0, Rate: 100}, *summary)
}

func TestRun_InputClosedPersistsNothing(t *testing.T) {
	f := newFixture(t)

	_, err := Run(context.Background(), f.options("2\n", 3, true))
	require.ErrorIs(t, err, session.ErrInputClosed)

	assert.NoFileExists(t, filepath.Join(f.dir, progress.FileName("anatomy")))
	assert.Empty(t, f.history.sessions)
	assert.NotContains(t, f.out.String(), "Итого:")
}

func TestRun_FatalBeforeSession(t *testing.T) {
	t.Run("bank not found lists available banks", func(t *testing.T) {
		f := newFixture(t)
		opts := f.options("", 3, false)
		opts.Bank = "surgery"

		_, err := Run(context.Background(), opts)
		require.ErrorIs(t, err, bank.ErrBankNotFound)
		assert.Contains(t, err.Error(), "available: anatomy")
	})

	t.Run("malformed bank", func(t *testing.T) {
		f := newFixture(t)
		raw := bank.BoundaryMarker + " 9\nВопрос?\n" + bank.VariantsMarker + ":\n1. а\n2. б\n" + bank.AnswerKeyMarker + ": 0\n"
		require.NoError(t, os.WriteFile(bank.Path(f.dir, "broken"), []byte(raw), 0o644))
		opts := f.options("", 3, false)
		opts.Bank = "broken"

		_, err := Run(context.Background(), opts)
		var malformed *bank.MalformedBankError
		require.ErrorAs(t, err, &malformed)
		assert.Empty(t, f.out.String())
	})

	t.Run("corrupt progress", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, os.WriteFile(filepath.Join(f.dir, progress.FileName("anatomy")), []byte("{"), 0o644))

		_, err := Run(context.Background(), f.options("2\n", 3, true))
		require.ErrorIs(t, err, progress.ErrCorruptProgress)
		assert.Empty(t, f.out.String())
	})

	t.Run("invalid ui mode", func(t *testing.T) {
		f := newFixture(t)
		opts := f.options("2\n", 3, false)
		opts.UI = "fancy"

		_, err := Run(context.Background(), opts)
		require.Error(t, err)
		assert.Empty(t, f.out.String())
	})
}

func TestRun_HistoryFailureIsOnlyWarned(t *testing.T) {
	f := newFixture(t)
	f.history.err = errors.New("disk full")
	core, logs := observer.New(zapcore.WarnLevel)

	opts := f.options("2\n2\n2\n", 3, false)
	opts.Logger = zap.New(core)

	summary, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 100, summary.Rate)

	entries := logs.FilterMessage("failed to record session history").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "disk full", entries[0].ContextMap()["error"])
}

func TestRun_WithoutHistory(t *testing.T) {
	f := newFixture(t)
	opts := f.options("2\n2\n2\n", 3, false)
	opts.History = nil

	_, err := Run(context.Background(), opts)
	require.NoError(t, err)
}
