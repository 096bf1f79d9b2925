package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if seq <= last {
			t.Fatalf("sequence not increasing: %d after %d", seq, last)
		}
		last = seq
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		s.Close()
	}
}

func TestSessionSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, id := range []string{"s1", "s2"} {
		if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: id, Action: ActionStart, Dataset: "food"}); err != nil {
			t.Fatalf("append start: %v", err)
		}
		err := repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID:       id,
			Action:          ActionEnd,
			Dataset:         "food",
			Mode:            "words",
			QuestionsServed: 10,
			CorrectAnswers:  8,
			Rounds:          3,
			DurationSecs:    42,
			Completed:       true,
		})
		if err != nil {
			t.Fatalf("append end: %v", err)
		}
	}

	recs, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d summaries, want 2", len(recs))
	}
	if recs[0].SessionID != "s2" {
		t.Errorf("newest first: got %s", recs[0].SessionID)
	}
	if !recs[0].Completed || recs[0].Rounds != 3 || recs[0].Accuracy() != 0.8 {
		t.Errorf("unexpected record %+v", recs[0])
	}

	limited, err := repo.QuerySessionSummaries(ctx, QueryOpts{Limit: 1})
	if err != nil || len(limited) != 1 {
		t.Fatalf("limit: got %d, %v", len(limited), err)
	}

	future, err := repo.QuerySessionSummaries(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil || len(future) != 0 {
		t.Fatalf("from filter: got %d, %v", len(future), err)
	}
}

func TestMostMissedAndReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	answers := []AnswerEventData{
		{ItemID: "w-le-pain", CorrectAnswer: "le pain", Correct: false},
		{ItemID: "w-le-pain", CorrectAnswer: "le pain", Correct: false, Invalid: true},
		{ItemID: "w-le-pain", CorrectAnswer: "le pain", Correct: true},
		{ItemID: "w-le-riz", CorrectAnswer: "le riz", Correct: false},
		{ItemID: "w-le-lait", CorrectAnswer: "le lait", Correct: true},
	}
	for _, a := range answers {
		a.SessionID = "s1"
		a.Prompt = "p"
		a.Phase = "needs-target"
		a.AnswerFormat = "free_text"
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append answer: %v", err)
		}
	}

	missed, err := repo.MostMissed(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("most missed: %v", err)
	}
	if len(missed) != 2 {
		t.Fatalf("got %d missed items, want 2", len(missed))
	}
	if missed[0].ItemID != "w-le-pain" || missed[0].Misses != 2 || missed[0].Attempts != 3 {
		t.Errorf("top missed = %+v", missed[0])
	}
	if missed[1].CorrectAnswer != "le riz" {
		t.Errorf("second missed = %+v", missed[1])
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	missed, err = repo.MostMissed(ctx, QueryOpts{})
	if err != nil || len(missed) != 0 {
		t.Fatalf("after reset: got %d, %v", len(missed), err)
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "drill.db")
	t.Setenv("VOCABDRILL_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VOCABDRILL_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if want := filepath.Join(dir, "vocabdrill", "vocabdrill.db"); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
