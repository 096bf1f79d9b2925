package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures the start or end of a drill session.
type SessionEventData struct {
	SessionID       string
	Action          string // ActionStart or ActionEnd
	Dataset         string
	Mode            string
	Phases          int
	Goal            string
	Items           int
	QuestionsServed int
	CorrectAnswers  int
	Rounds          int
	DurationSecs    int
	Completed       bool
}

// AnswerEventData captures a single scored answer.
type AnswerEventData struct {
	SessionID     string
	ItemID        string
	Prompt        string
	Phase         string
	AnswerFormat  string
	CorrectAnswer string
	LearnerAnswer string
	Correct       bool
	Invalid       bool
	Round         int
}

// SessionSummaryRecord is one finished session as shown by the history views.
type SessionSummaryRecord struct {
	SessionID       string
	Timestamp       time.Time
	Dataset         string
	Mode            string
	QuestionsServed int
	CorrectAnswers  int
	Rounds          int
	DurationSecs    int
	Completed       bool
}

// Accuracy returns the fraction of correct answers, 0 when nothing was asked.
func (r SessionSummaryRecord) Accuracy() float64 {
	if r.QuestionsServed == 0 {
		return 0
	}
	return float64(r.CorrectAnswers) / float64(r.QuestionsServed)
}

// MissedItemRecord aggregates wrong answers for one item across sessions.
type MissedItemRecord struct {
	ItemID        string
	CorrectAnswer string
	Misses        int
	Attempts      int
}

// EventRepo provides append and query access to the answer log.
// The log is history only; drill progress is never restored from it.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records one scored answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QuerySessionSummaries returns finished sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// MostMissed returns items ordered by miss count, most missed first.
	MostMissed(ctx context.Context, opts QueryOpts) ([]MissedItemRecord, error)

	// Reset deletes every recorded event.
	Reset(ctx context.Context) error
}
