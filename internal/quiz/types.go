// Package quiz drives a drill session: it picks the next item, builds the
// question for its mastery phase, scores answers and advances the tracker.
package quiz

import (
	"time"

	"github.com/abhisek/vocabdrill/internal/composer"
	"github.com/abhisek/vocabdrill/internal/mastery"
)

// Format is the answer format of a question.
type Format string

const (
	FormatMultipleChoice Format = "multiple_choice"
	FormatFreeText       Format = "free_text"
)

// Kind selects what a session drills.
type Kind string

const (
	KindWords     Kind = "words"
	KindSentences Kind = "sentences"
)

// Goal decides when a session is complete.
type Goal string

const (
	// GoalMastery ends the session when every item is learned.
	GoalMastery Goal = "mastery"
	// GoalCoverage ends the session once every component value has appeared
	// in a correctly answered sentence.
	GoalCoverage Goal = "coverage"
)

// Item is one testable unit: a word or a composed sentence.
type Item struct {
	ID     string
	Target string
	Base   string

	// Word is the index into the dataset's word list, or -1 for sentences.
	Word int

	// Sentence is set for sentence items.
	Sentence *composer.Sentence
}

// Question is what the presenter shows for one ask.
type Question struct {
	Item    Item
	Phase   mastery.Phase
	Format  Format
	Prompt  string
	Choices []string // empty for free text
	Answer  string   // canonical answer
	Round   int
	Number  int // 1-based count of questions asked this session
}

// Result is the scored outcome of one answer.
type Result struct {
	Question Question
	Given    string
	Correct  bool

	// Invalid is set when a multiple-choice response was not a number in range.
	Invalid bool

	// Transition is non-nil when the answer advanced the item.
	Transition *mastery.Transition

	Streak int

	// StreakMilestone is the streak length reached when it crossed a milestone, else 0.
	StreakMilestone int
}

// Progress is the snapshot passed to the presenter with every question.
type Progress struct {
	Learned   int
	Total     int
	Remaining int
	Round     int
	Asked     int
	Correct   int
	Streak    int

	// Coverage is nil for word sessions.
	Coverage []mastery.CategoryCount
}

// Miss is an item answered wrongly at least once this session.
type Miss struct {
	ItemID string
	Prompt string
	Answer string
	Count  int
}

// Summary holds the data displayed when a session ends.
type Summary struct {
	SessionID  string
	Duration   time.Duration
	Questions  int
	Correct    int
	Accuracy   float64
	Rounds     int
	BestStreak int
	Learned    int
	Total      int
	Completed  bool
	Missed     []Miss
}
