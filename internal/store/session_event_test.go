package store

import (
	"context"
	"testing"
	"time"
)

func TestAppendAndRecentSessions(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()

	// No sessions yet.
	events, err := repo.RecentSessions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent (empty): %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no sessions, got %d", len(events))
	}

	for _, d := range []SessionEventData{
		sessionData("s1", "anatomy", 4, 1),
		sessionData("s2", "biology", 2, 0),
		sessionData("s3", "anatomy", 3, 3),
	} {
		if err := repo.AppendSession(ctx, d); err != nil {
			t.Fatalf("append %s: %v", d.SessionID, err)
		}
	}

	events, err = repo.RecentSessions(ctx, QueryOpts{Bank: "anatomy"})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d anatomy sessions, want 2", len(events))
	}
	if events[0].SessionID != "s3" || events[1].SessionID != "s1" {
		t.Errorf("order = %s, %s; want newest first", events[0].SessionID, events[1].SessionID)
	}

	got := events[1]
	want := sessionData("s1", "anatomy", 4, 1)
	if got.Asked != 4 || got.Failures != 1 || got.Rate != want.Rate {
		t.Errorf("counts = %d/%d/%d, want 4/1/%d", got.Asked, got.Failures, got.Rate, want.Rate)
	}
	if !got.Shuffled || got.Tracked {
		t.Errorf("flags = shuffled %v tracked %v", got.Shuffled, got.Tracked)
	}
	if !got.StartedAt.Equal(want.StartedAt) {
		t.Errorf("started = %v, want %v", got.StartedAt, want.StartedAt)
	}
	if got.FinishedAt.Sub(got.StartedAt) != 5*time.Minute {
		t.Errorf("duration = %v, want 5m", got.FinishedAt.Sub(got.StartedAt))
	}

	all, err := repo.RecentSessions(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("recent limited: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d sessions, want 2", len(all))
	}
}

func TestAppendDuplicateSessionRollsBack(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()

	if err := repo.AppendSession(ctx, sessionData("dup", "anatomy", 2, 1)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.AppendSession(ctx, sessionData("dup", "anatomy", 2, 1)); err == nil {
		t.Fatal("expected error for duplicate session id")
	}

	var answers int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM answer_events").Scan(&answers); err != nil {
		t.Fatalf("count answers: %v", err)
	}
	if answers != 2 {
		t.Errorf("got %d answer rows, want 2", answers)
	}
}

func TestMostMissed(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()

	// "a" is missed in both sessions, "b" once, "c" never.
	for _, d := range []SessionEventData{
		sessionData("s1", "anatomy", 3, 2),
		sessionData("s2", "anatomy", 3, 1),
		sessionData("s3", "biology", 3, 3),
	} {
		if err := repo.AppendSession(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	misses, err := repo.MostMissed(ctx, QueryOpts{Bank: "anatomy"})
	if err != nil {
		t.Fatalf("most missed: %v", err)
	}
	want := []QuestionMiss{
		{QuestionID: "a", Attempts: 2, Misses: 2},
		{QuestionID: "b", Attempts: 2, Misses: 1},
	}
	if len(misses) != len(want) {
		t.Fatalf("got %+v, want %+v", misses, want)
	}
	for i := range want {
		if misses[i] != want[i] {
			t.Errorf("misses[%d] = %+v, want %+v", i, misses[i], want[i])
		}
	}

	top, err := repo.MostMissed(ctx, QueryOpts{Bank: "anatomy", Limit: 1})
	if err != nil {
		t.Fatalf("most missed limited: %v", err)
	}
	if len(top) != 1 || top[0].QuestionID != "a" {
		t.Errorf("top = %+v, want only a", top)
	}
}

func TestDeleteBank(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()

	for _, d := range []SessionEventData{
		sessionData("s1", "anatomy", 2, 1),
		sessionData("s2", "anatomy", 2, 0),
		sessionData("s3", "biology", 2, 2),
	} {
		if err := repo.AppendSession(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	n, err := repo.DeleteBank(ctx, "anatomy")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d sessions, want 2", n)
	}

	var answers int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM answer_events WHERE bank = 'anatomy'").Scan(&answers); err != nil {
		t.Fatalf("count answers: %v", err)
	}
	if answers != 0 {
		t.Errorf("got %d anatomy answers after delete, want 0", answers)
	}

	rest, err := repo.RecentSessions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rest) != 1 || rest[0].Bank != "biology" {
		t.Errorf("remaining = %+v, want biology only", rest)
	}
}
