package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// historyRepo implements HistoryRepo over database/sql.
type historyRepo struct {
	db *sql.DB
}

func (r *historyRepo) AppendSession(ctx context.Context, data SessionEventData) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO session_events
		    (session_id, bank, started_at, finished_at, question_limit, asked, failures, rate, shuffled, tracked)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.SessionID, data.Bank,
		formatTime(data.StartedAt), formatTime(data.FinishedAt),
		data.Limit, data.Asked, data.Failures, data.Rate,
		data.Shuffled, data.Tracked,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}

	for _, a := range data.Answers {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO answer_events (session_id, bank, question_id, position, correct)
			VALUES (?, ?, ?, ?, ?)`,
			data.SessionID, data.Bank, a.QuestionID, a.Position, a.Correct,
		)
		if err != nil {
			return fmt.Errorf("save answer event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session event: %w", err)
	}
	return nil
}

func (r *historyRepo) RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	var (
		b    strings.Builder
		args []any
	)
	b.WriteString(`SELECT id, session_id, bank, started_at, finished_at, question_limit,
		asked, failures, rate, shuffled, tracked FROM session_events`)
	if opts.Bank != "" {
		b.WriteString(" WHERE bank = ?")
		args = append(args, opts.Bank)
	}
	b.WriteString(" ORDER BY id DESC")
	if opts.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var events []SessionEvent
	for rows.Next() {
		var (
			e                 SessionEvent
			started, finished string
			shuffled, tracked bool
		)
		err := rows.Scan(&e.ID, &e.SessionID, &e.Bank, &started, &finished,
			&e.Limit, &e.Asked, &e.Failures, &e.Rate, &shuffled, &tracked)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if e.StartedAt, err = parseTime(started); err != nil {
			return nil, err
		}
		if e.FinishedAt, err = parseTime(finished); err != nil {
			return nil, err
		}
		e.Shuffled = shuffled
		e.Tracked = tracked
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return events, nil
}

func (r *historyRepo) MostMissed(ctx context.Context, opts QueryOpts) ([]QuestionMiss, error) {
	query := `SELECT question_id, COUNT(*), SUM(CASE WHEN correct THEN 0 ELSE 1 END) AS misses
		FROM answer_events WHERE bank = ?
		GROUP BY question_id
		HAVING misses > 0
		ORDER BY misses DESC, question_id ASC`
	args := []any{opts.Bank}
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query misses: %w", err)
	}
	defer rows.Close()

	var misses []QuestionMiss
	for rows.Next() {
		var m QuestionMiss
		if err := rows.Scan(&m.QuestionID, &m.Attempts, &m.Misses); err != nil {
			return nil, fmt.Errorf("scan miss: %w", err)
		}
		misses = append(misses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate misses: %w", err)
	}
	return misses, nil
}

func (r *historyRepo) DeleteBank(ctx context.Context, bank string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM session_events WHERE bank = ?", bank)
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	// Answer rows go with their sessions (ON DELETE CASCADE).
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
