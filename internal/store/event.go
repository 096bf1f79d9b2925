package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// sequenceCounter hands out one monotonic sequence shared by session and
// answer events, so the two tables can be merged back into a single
// ordered log. The mutex serializes within the process; the RETURNING
// clause makes the increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo on plain SQL and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO session_events (
		sequence, timestamp, session_id, action, dataset, mode, phases, goal, items,
		questions_served, correct_answers, rounds, duration_secs, completed
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, r.now().UnixMilli(), data.SessionID, data.Action, data.Dataset, data.Mode,
		data.Phases, data.Goal, data.Items, data.QuestionsServed, data.CorrectAnswers,
		data.Rounds, data.DurationSecs, data.Completed,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO answer_events (
		sequence, timestamp, session_id, item_id, prompt, phase, answer_format,
		correct_answer, learner_answer, correct, invalid, round
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, r.now().UnixMilli(), data.SessionID, data.ItemID, data.Prompt, data.Phase,
		data.AnswerFormat, data.CorrectAnswer, data.LearnerAnswer, data.Correct,
		data.Invalid, data.Round,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	where, args := timeRange(opts)
	query := `SELECT session_id, timestamp, dataset, mode, questions_served,
		correct_answers, rounds, duration_secs, completed
		FROM session_events WHERE action = ?` + where + ` ORDER BY sequence DESC`
	args = append([]any{ActionEnd}, args...)
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var (
			rec SessionSummaryRecord
			ts  int64
		)
		if err := rows.Scan(&rec.SessionID, &ts, &rec.Dataset, &rec.Mode, &rec.QuestionsServed,
			&rec.CorrectAnswers, &rec.Rounds, &rec.DurationSecs, &rec.Completed); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) MostMissed(ctx context.Context, opts QueryOpts) ([]MissedItemRecord, error) {
	where, args := timeRange(opts)
	query := `SELECT item_id, MAX(correct_answer),
		SUM(CASE WHEN correct = 0 THEN 1 ELSE 0 END) AS misses, COUNT(*)
		FROM answer_events WHERE 1 = 1` + where + `
		GROUP BY item_id HAVING misses > 0
		ORDER BY misses DESC, item_id ASC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query most missed: %w", err)
	}
	defer rows.Close()

	var records []MissedItemRecord
	for rows.Next() {
		var rec MissedItemRecord
		if err := rows.Scan(&rec.ItemID, &rec.CorrectAnswer, &rec.Misses, &rec.Attempts); err != nil {
			return nil, fmt.Errorf("scan missed item: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"answer_events", "session_events"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// timeRange builds the timestamp filter shared by the query methods.
func timeRange(opts QueryOpts) (string, []any) {
	var (
		where string
		args  []any
	)
	if !opts.From.IsZero() {
		where += ` AND timestamp >= ?`
		args = append(args, opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		where += ` AND timestamp <= ?`
		args = append(args, opts.To.UnixMilli())
	}
	return where, args
}
