package store

import (
	"context"
	"time"
)

// SessionEventData captures one finished quiz session. Counts refer to the
// first pass only; the replay of failures is not recorded.
type SessionEventData struct {
	SessionID  string
	Bank       string
	StartedAt  time.Time
	FinishedAt time.Time
	Limit      int
	Asked      int
	Failures   int
	Rate       int
	Shuffled   bool
	Tracked    bool
	Answers    []AnswerEventData
}

// AnswerEventData is the outcome of one first-pass question.
type AnswerEventData struct {
	QuestionID string
	Position   int // 1-based order of asking
	Correct    bool
}

// SessionEvent is a stored session.
type SessionEvent struct {
	ID int64
	SessionEventData
}

// QuestionMiss aggregates failures of one question across sessions.
type QuestionMiss struct {
	QuestionID string
	Attempts   int
	Misses     int
}

// QueryOpts configures history queries.
type QueryOpts struct {
	Bank  string // empty = all banks
	Limit int    // max results (0 = unlimited)
}

// HistoryRepo records and queries finished sessions.
type HistoryRepo interface {
	// AppendSession stores a session with its answers atomically.
	AppendSession(ctx context.Context, data SessionEventData) error

	// RecentSessions returns sessions, newest first. Answers are not loaded.
	RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)

	// MostMissed returns the questions of a bank with the most failures.
	MostMissed(ctx context.Context, opts QueryOpts) ([]QuestionMiss, error)

	// DeleteBank removes all history of a bank and returns the number of
	// sessions deleted.
	DeleteBank(ctx context.Context, bank string) (int64, error)
}
