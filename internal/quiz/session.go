package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/vocabdrill/internal/answer"
	"github.com/abhisek/vocabdrill/internal/composer"
	"github.com/abhisek/vocabdrill/internal/dataset"
	"github.com/abhisek/vocabdrill/internal/distractor"
	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/store"
)

// MaxSummaryMisses caps the missed items listed in a Summary.
const MaxSummaryMisses = 5

var (
	// ErrNoQuestion is returned by Submit when no question is pending.
	ErrNoQuestion = errors.New("no question pending")

	// ErrCoverageNeedsSentences is returned when the coverage goal is used
	// without sentence items.
	ErrCoverageNeedsSentences = errors.New("coverage goal requires sentence mode")
)

// Rand is the random source for round order and choice order.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Recorder receives the answer log. store.EventRepo satisfies it.
type Recorder interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
}

// Config shapes a session.
type Config struct {
	Kind         Kind
	Mode         mastery.Mode
	Goal         Goal
	Sample       int // sentence sample size, 0 = all
	Choices      int // options per multiple-choice question
	ReaskInRound bool

	// FirstFormat overrides the format of the first direction. Only
	// FormatFreeText has an effect.
	FirstFormat Format

	DatasetName    string
	TargetLanguage string
	BaseLanguage   string
}

type settings struct {
	rng      Rand
	logger   *zap.Logger
	recorder Recorder
	now      func() time.Time
	choices  ChoiceBuilder
	coverage *mastery.Coverage
	id       string
}

// Option configures a Session.
type Option func(*settings)

// WithRand sets the random source. Sessions with the same seed and answers
// ask the same questions in the same order.
func WithRand(r Rand) Option {
	return func(s *settings) { s.rng = r }
}

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithRecorder enables the answer log.
func WithRecorder(r Recorder) Option {
	return func(s *settings) { s.recorder = r }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithChoiceBuilder sets how multiple-choice options are built.
func WithChoiceBuilder(c ChoiceBuilder) Option {
	return func(s *settings) { s.choices = c }
}

// WithCoverage enables component coverage tracking for sentence items.
func WithCoverage(c *mastery.Coverage) Option {
	return func(s *settings) { s.coverage = c }
}

// WithSessionID fixes the session id instead of generating a UUID.
func WithSessionID(id string) Option {
	return func(s *settings) { s.id = id }
}

func resolve(opts []Option) settings {
	s := settings{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.id == "" {
		s.id = uuid.New().String()
	}
	return s
}

// Session is one drill run. It is owned by a single goroutine.
type Session struct {
	settings
	cfg Config

	items   map[string]Item
	tracker *mastery.Tracker

	round   int
	queue   []string
	pos     int
	current *Question

	asked, correct     int
	streak, bestStreak int
	nextMilestone      int
	misses             map[string]int

	started  time.Time
	finished *Summary
}

// NewSession creates a session over items. Items start at the first
// phase; nothing is restored from earlier sessions.
func NewSession(items []Item, cfg Config, opts ...Option) (*Session, error) {
	return newSession(items, cfg, resolve(opts))
}

func newSession(items []Item, cfg Config, set settings) (*Session, error) {
	if cfg.Goal == "" {
		cfg.Goal = GoalMastery
	}
	if cfg.Choices == 0 {
		cfg.Choices = distractor.DefaultSize
	}
	if cfg.TargetLanguage == "" {
		cfg.TargetLanguage = "French"
	}
	if cfg.BaseLanguage == "" {
		cfg.BaseLanguage = "English"
	}
	if cfg.Goal == GoalCoverage && set.coverage == nil {
		return nil, ErrCoverageNeedsSentences
	}

	s := &Session{
		settings:      set,
		cfg:           cfg,
		items:         make(map[string]Item, len(items)),
		nextMilestone: baseStreakMilestone,
		misses:        make(map[string]int),
		started:       set.now(),
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		s.items[it.ID] = it
		ids = append(ids, it.ID)
	}
	s.tracker = mastery.NewTracker(ids, cfg.Mode)
	if s.choices == nil {
		s.choices = newPoolChoices(items, s.rng, cfg.Choices)
	}
	return s, nil
}

// ForDataset builds a session over ds, composing and sampling sentences or
// taking the word list according to cfg.Kind.
func ForDataset(ds *dataset.Dataset, cfg Config, opts ...Option) (*Session, error) {
	set := resolve(opts)
	cfg.DatasetName = ds.Name
	cfg.TargetLanguage, cfg.BaseLanguage = ds.Languages()
	if cfg.Choices == 0 {
		cfg.Choices = distractor.DefaultSize
	}

	var items []Item
	switch cfg.Kind {
	case KindSentences:
		if !ds.HasSentences() {
			return nil, fmt.Errorf("dataset %q has no sentence tables", ds.Name)
		}
		items = SentenceItems(composer.Sample(ds, cfg.Sample, set.rng))
		if set.choices == nil {
			gen := distractor.New(ds, set.rng, distractor.WithLogger(set.logger), distractor.WithSize(cfg.Choices))
			set.choices = SentenceChoices{Gen: gen}
		}
		if set.coverage == nil {
			set.coverage = mastery.NewCoverage(ds)
		}
	default:
		if cfg.Goal == GoalCoverage {
			return nil, ErrCoverageNeedsSentences
		}
		if !ds.HasWords() {
			return nil, fmt.Errorf("dataset %q has no words", ds.Name)
		}
		cfg.Kind = KindWords
		items = WordItems(ds)
		if set.choices == nil {
			set.choices = WordChoices{Words: ds.Words, Rand: set.rng, Size: cfg.Choices}
		}
	}
	return newSession(items, cfg, set)
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Config returns the effective configuration.
func (s *Session) Config() Config { return s.cfg }

// Complete reports whether the session goal is reached.
func (s *Session) Complete() bool {
	if s.tracker.Done() {
		return true
	}
	return s.cfg.Goal == GoalCoverage && s.coverage.Complete()
}

// Next returns the question to ask, or false when the session is complete.
// A question stays pending until it is submitted; calling Next again
// returns the same question.
func (s *Session) Next() (*Question, bool) {
	if s.current != nil {
		return s.current, true
	}
	if s.Complete() {
		return nil, false
	}

	for {
		if s.pos >= len(s.queue) {
			s.startRound()
			if len(s.queue) == 0 {
				return nil, false
			}
		}
		if s.cfg.Goal == GoalCoverage {
			s.preferUncovered()
		}

		id := s.queue[s.pos]
		s.pos++
		phase, _ := s.tracker.Phase(id)
		if phase == mastery.PhaseLearned {
			continue
		}
		s.current = s.buildQuestion(s.items[id], phase)
		return s.current, true
	}
}

// startRound snapshots the active pool in a fresh random order.
func (s *Session) startRound() {
	s.round++
	s.queue = s.tracker.Active()
	s.rng.Shuffle(len(s.queue), func(i, j int) { s.queue[i], s.queue[j] = s.queue[j], s.queue[i] })
	s.pos = 0
	s.logger.Debug("round started",
		zap.String("session_id", s.id),
		zap.Int("round", s.round),
		zap.Int("items", len(s.queue)),
	)
}

// preferUncovered moves the first remaining queue entry that would add
// coverage to the front of the remaining queue.
func (s *Session) preferUncovered() {
	for i := s.pos; i < len(s.queue); i++ {
		it := s.items[s.queue[i]]
		if it.Sentence != nil && s.coverage.AddsCoverage(it.Sentence.Indices) {
			s.queue[s.pos], s.queue[i] = s.queue[i], s.queue[s.pos]
			return
		}
	}
}

func (s *Session) buildQuestion(it Item, phase mastery.Phase) *Question {
	q := &Question{
		Item:   it,
		Phase:  phase,
		Round:  s.round,
		Number: s.asked + 1,
	}
	if phase == mastery.PhaseNeedsBase && s.cfg.FirstFormat != FormatFreeText {
		q.Format = FormatMultipleChoice
		q.Prompt = fmt.Sprintf("What is the %s for \"%s\"?", s.cfg.BaseLanguage, it.Target)
		q.Choices = s.choices.Choices(it)
		q.Answer = it.Base
		return q
	}
	q.Format = FormatFreeText
	q.Prompt = fmt.Sprintf("Type the %s for \"%s\"", s.cfg.TargetLanguage, it.Base)
	q.Answer = it.Target
	return q
}

// Submit scores raw against the pending question and advances the tracker.
// Invalid multiple-choice input is scored as wrong, never returned as an error.
func (s *Session) Submit(ctx context.Context, raw string) (Result, error) {
	q := s.current
	if q == nil {
		return Result{}, ErrNoQuestion
	}
	s.current = nil

	res := Result{Question: *q, Given: raw}
	switch q.Format {
	case FormatMultipleChoice:
		ok, err := answer.CheckChoice(raw, q.Choices, q.Answer)
		res.Correct = ok
		res.Invalid = errors.Is(err, answer.ErrInvalidSelection)
		if idx, perr := answer.ParseChoice(raw, len(q.Choices)); perr == nil {
			res.Given = q.Choices[idx]
		}
	default:
		res.Correct = answer.Equal(raw, q.Answer)
	}

	s.asked++
	if res.Correct {
		s.correct++
		s.streak++
		if s.streak > s.bestStreak {
			s.bestStreak = s.streak
		}
		if s.streak >= s.nextMilestone {
			res.StreakMilestone = s.streak
			s.nextMilestone = nextStreakMilestone(s.streak)
		}
	} else {
		s.streak = 0
		s.nextMilestone = baseStreakMilestone
		s.misses[q.Item.ID]++
	}
	res.Streak = s.streak

	res.Transition = s.tracker.Record(q.Item.ID, res.Correct)
	if res.Correct && s.coverage != nil && q.Item.Sentence != nil {
		s.coverage.Record(q.Item.Sentence.Indices)
	}
	if res.Transition != nil {
		s.logger.Debug("item advanced",
			zap.String("session_id", s.id),
			zap.String("item", q.Item.ID),
			zap.Stringer("from", res.Transition.From),
			zap.Stringer("to", res.Transition.To),
		)
		if s.cfg.ReaskInRound && !res.Transition.Learned() {
			s.queue = append(s.queue, q.Item.ID)
		}
	}

	s.recordAnswer(ctx, res)
	return res, nil
}

func (s *Session) recordAnswer(ctx context.Context, res Result) {
	if s.recorder == nil {
		return
	}
	err := s.recorder.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:     s.id,
		ItemID:        res.Question.Item.ID,
		Prompt:        res.Question.Prompt,
		Phase:         res.Question.Phase.String(),
		AnswerFormat:  string(res.Question.Format),
		CorrectAnswer: res.Question.Answer,
		LearnerAnswer: res.Given,
		Correct:       res.Correct,
		Invalid:       res.Invalid,
		Round:         res.Question.Round,
	})
	if err != nil {
		s.logger.Warn("record answer failed", zap.String("session_id", s.id), zap.Error(err))
	}
}

// Progress returns the current counters.
func (s *Session) Progress() Progress {
	p := Progress{
		Learned:   s.tracker.Learned(),
		Total:     s.tracker.Total(),
		Remaining: s.tracker.Remaining(),
		Round:     s.round,
		Asked:     s.asked,
		Correct:   s.correct,
		Streak:    s.streak,
	}
	if s.coverage != nil {
		p.Coverage = s.coverage.Counts()
	}
	return p
}

// Begin records the session start.
func (s *Session) Begin(ctx context.Context) {
	s.started = s.now()
	if s.recorder == nil {
		return
	}
	err := s.recorder.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: s.id,
		Action:    store.ActionStart,
		Dataset:   s.cfg.DatasetName,
		Mode:      string(s.cfg.Kind),
		Phases:    s.cfg.Mode.Required(),
		Goal:      string(s.cfg.Goal),
		Items:     s.tracker.Total(),
	})
	if err != nil {
		s.logger.Warn("record session start failed", zap.String("session_id", s.id), zap.Error(err))
	}
}

// Finish freezes the summary and records the session end. Later calls
// return the same summary.
func (s *Session) Finish(ctx context.Context) *Summary {
	if s.finished != nil {
		return s.finished
	}
	sum := s.Summary()
	s.finished = sum
	ctx = context.WithoutCancel(ctx)

	if s.recorder != nil {
		err := s.recorder.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:       s.id,
			Action:          store.ActionEnd,
			Dataset:         s.cfg.DatasetName,
			Mode:            string(s.cfg.Kind),
			Phases:          s.cfg.Mode.Required(),
			Goal:            string(s.cfg.Goal),
			Items:           sum.Total,
			QuestionsServed: sum.Questions,
			CorrectAnswers:  sum.Correct,
			Rounds:          sum.Rounds,
			DurationSecs:    int(sum.Duration.Seconds()),
			Completed:       sum.Completed,
		})
		if err != nil {
			s.logger.Warn("record session end failed", zap.String("session_id", s.id), zap.Error(err))
		}
	}
	s.logger.Info("session finished",
		zap.String("session_id", s.id),
		zap.Int("questions", sum.Questions),
		zap.Int("correct", sum.Correct),
		zap.Bool("completed", sum.Completed),
	)
	return sum
}

// Summary builds the end-of-session report from the current state.
func (s *Session) Summary() *Summary {
	if s.finished != nil {
		return s.finished
	}
	sum := &Summary{
		SessionID:  s.id,
		Duration:   s.now().Sub(s.started),
		Questions:  s.asked,
		Correct:    s.correct,
		Rounds:     s.round,
		BestStreak: s.bestStreak,
		Learned:    s.tracker.Learned(),
		Total:      s.tracker.Total(),
		Completed:  s.Complete(),
	}
	if s.asked > 0 {
		sum.Accuracy = float64(s.correct) / float64(s.asked)
	}

	for id, n := range s.misses {
		it := s.items[id]
		sum.Missed = append(sum.Missed, Miss{ItemID: id, Prompt: it.Target, Answer: it.Base, Count: n})
	}
	sort.Slice(sum.Missed, func(i, j int) bool {
		if sum.Missed[i].Count != sum.Missed[j].Count {
			return sum.Missed[i].Count > sum.Missed[j].Count
		}
		return sum.Missed[i].ItemID < sum.Missed[j].ItemID
	})
	if len(sum.Missed) > MaxSummaryMisses {
		sum.Missed = sum.Missed[:MaxSummaryMisses]
	}
	return sum
}
