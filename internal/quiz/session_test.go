package quiz

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vocabdrill/internal/dataset"
	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/store"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+11))
}

// correctInput returns the response that answers q correctly.
func correctInput(q *Question) string {
	if q.Format == FormatFreeText {
		return q.Answer
	}
	for i, c := range q.Choices {
		if c == q.Answer {
			return strconv.Itoa(i + 1)
		}
	}
	return ""
}

func wordItems(pairs ...string) []Item {
	var items []Item
	for i := 0; i+1 < len(pairs); i += 2 {
		items = append(items, Item{ID: "w-" + pairs[i], Target: pairs[i], Base: pairs[i+1], Word: -1})
	}
	return items
}

type fakePresenter struct {
	questions []Question
	results   []Result
	complete  *Summary
}

func (p *fakePresenter) ShowQuestion(q Question, _ Progress) { p.questions = append(p.questions, q) }
func (p *fakePresenter) ShowFeedback(r Result, _ Progress)   { p.results = append(p.results, r) }
func (p *fakePresenter) ShowComplete(s *Summary)             { p.complete = s }

type inputFunc func(ctx context.Context, q Question) (string, error)

func (f inputFunc) ReadAnswer(ctx context.Context, q Question) (string, error) { return f(ctx, q) }

// scripted answers with the given responses in order, then correctly.
func scripted(responses ...string) inputFunc {
	return func(_ context.Context, q Question) (string, error) {
		if len(responses) > 0 {
			r := responses[0]
			responses = responses[1:]
			return r, nil
		}
		return correctInput(&q), nil
	}
}

type fakeRecorder struct {
	sessions []store.SessionEventData
	answers  []store.AnswerEventData
	err      error
}

func (r *fakeRecorder) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	r.sessions = append(r.sessions, d)
	return r.err
}

func (r *fakeRecorder) AppendAnswerEvent(_ context.Context, d store.AnswerEventData) error {
	r.answers = append(r.answers, d)
	return r.err
}

func TestRun_SinglePhaseWrongThenRight(t *testing.T) {
	items := wordItems("le café", "coffee")
	s, err := NewSession(items, Config{Mode: mastery.SinglePhase, FirstFormat: FormatFreeText}, WithRand(seeded(1)))
	require.NoError(t, err)

	p := &fakePresenter{}
	sum, err := Run(context.Background(), s, p, scripted("le thé", "le café"))
	require.NoError(t, err)

	require.Len(t, p.results, 2)
	assert.False(t, p.results[0].Correct)
	assert.Nil(t, p.results[0].Transition)
	assert.True(t, p.results[1].Correct)
	assert.True(t, p.results[1].Transition.Learned())

	assert.True(t, sum.Completed)
	assert.Equal(t, 2, sum.Questions)
	assert.Equal(t, 2, sum.Rounds)
	assert.Same(t, sum, p.complete)
	require.Len(t, sum.Missed, 1)
	assert.Equal(t, "w-le café", sum.Missed[0].ItemID)
}

func TestRun_TwoPhaseAcceptsMissingAccent(t *testing.T) {
	items := wordItems("café", "coffee")
	s, err := NewSession(items, Config{Mode: mastery.TwoPhase}, WithRand(seeded(2)))
	require.NoError(t, err)
	ctx := context.Background()

	q, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, FormatMultipleChoice, q.Format)
	assert.Equal(t, mastery.PhaseNeedsBase, q.Phase)
	assert.Equal(t, `What is the English for "café"?`, q.Prompt)

	res, err := s.Submit(ctx, correctInput(q))
	require.NoError(t, err)
	require.NotNil(t, res.Transition)
	assert.Equal(t, mastery.PhaseNeedsBase, res.Transition.From)
	assert.Equal(t, mastery.PhaseNeedsTarget, res.Transition.To)

	q, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, FormatFreeText, q.Format)
	assert.Equal(t, `Type the French for "coffee"`, q.Prompt)

	res, err = s.Submit(ctx, "cafe")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.True(t, res.Transition.Learned())

	_, ok = s.Next()
	assert.False(t, ok)
	assert.True(t, s.Complete())
}

func TestSubmit_InvalidSelection(t *testing.T) {
	items := wordItems("le pain", "bread", "le lait", "milk", "le riz", "rice")
	s, err := NewSession(items, Config{Mode: mastery.TwoPhase}, WithRand(seeded(3)))
	require.NoError(t, err)

	for _, raw := range []string{"abc", "0", "9", ""} {
		q, ok := s.Next()
		require.True(t, ok)
		res, err := s.Submit(context.Background(), raw)
		require.NoError(t, err)
		assert.True(t, res.Invalid, raw)
		assert.False(t, res.Correct, raw)
		assert.Nil(t, res.Transition, raw)
		assert.Equal(t, raw, res.Given)

		phase, _ := s.tracker.Phase(q.Item.ID)
		assert.Equal(t, mastery.PhaseNeedsBase, phase)
	}
	assert.Equal(t, 0, s.Progress().Learned)
}

func TestSubmit_ValidChoiceReportsText(t *testing.T) {
	items := wordItems("le pain", "bread", "le lait", "milk")
	s, err := NewSession(items, Config{}, WithRand(seeded(4)))
	require.NoError(t, err)

	q, _ := s.Next()
	res, err := s.Submit(context.Background(), correctInput(q))
	require.NoError(t, err)
	assert.Equal(t, q.Answer, res.Given)
	assert.False(t, res.Invalid)
}

func TestSubmit_NoQuestion(t *testing.T) {
	s, err := NewSession(wordItems("a", "b"), Config{})
	require.NoError(t, err)
	_, err = s.Submit(context.Background(), "1")
	assert.ErrorIs(t, err, ErrNoQuestion)
}

func TestNext_PendingQuestionRepeats(t *testing.T) {
	s, err := NewSession(wordItems("a", "b", "c", "d"), Config{}, WithRand(seeded(5)))
	require.NoError(t, err)
	q1, _ := s.Next()
	q2, _ := s.Next()
	assert.Same(t, q1, q2)
}

func answerRound(t *testing.T, s *Session, round int) []Question {
	t.Helper()
	var asked []Question
	for {
		q, ok := s.Next()
		if !ok || q.Round != round {
			return asked
		}
		asked = append(asked, *q)
		_, err := s.Submit(context.Background(), correctInput(q))
		require.NoError(t, err)
	}
}

func TestRoundPolicy_SnapshotAtRoundStart(t *testing.T) {
	items := wordItems("le pain", "bread", "le lait", "milk", "le riz", "rice")
	s, err := NewSession(items, Config{Mode: mastery.TwoPhase}, WithRand(seeded(6)))
	require.NoError(t, err)

	first := answerRound(t, s, 1)
	require.Len(t, first, 3)
	for _, q := range first {
		assert.Equal(t, FormatMultipleChoice, q.Format)
	}

	// The pending question from Next belongs to round 2.
	second := answerRound(t, s, 2)
	require.Len(t, second, 3)
	for _, q := range second {
		assert.Equal(t, FormatFreeText, q.Format)
	}
	assert.True(t, s.Complete())
}

func TestRoundPolicy_ReaskInRound(t *testing.T) {
	items := wordItems("le pain", "bread", "le lait", "milk", "le riz", "rice")
	s, err := NewSession(items, Config{Mode: mastery.TwoPhase, ReaskInRound: true}, WithRand(seeded(6)))
	require.NoError(t, err)

	first := answerRound(t, s, 1)
	assert.Len(t, first, 6)
	assert.True(t, s.Complete())
	assert.Equal(t, 1, s.Summary().Rounds)
}

func TestRoundPolicy_WrongAnswersCarryOver(t *testing.T) {
	items := wordItems("le pain", "bread", "le lait", "milk")
	s, err := NewSession(items, Config{Mode: mastery.SinglePhase}, WithRand(seeded(7)))
	require.NoError(t, err)

	q, _ := s.Next()
	missed := q.Item.ID
	_, err = s.Submit(context.Background(), "nope")
	require.NoError(t, err)
	answerRound(t, s, 1)

	q, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, 2, q.Round)
	assert.Equal(t, missed, q.Item.ID)
	assert.Equal(t, 1, s.Progress().Remaining)
}

func TestPoolNonIncreasing(t *testing.T) {
	ds, err := dataset.Builtin("food")
	require.NoError(t, err)
	s, err := ForDataset(ds, Config{Kind: KindWords, Mode: mastery.TwoPhase}, WithRand(seeded(8)))
	require.NoError(t, err)

	rng := seeded(99)
	prev := s.Progress().Remaining
	for i := 0; i < 500; i++ {
		q, ok := s.Next()
		if !ok {
			break
		}
		raw := "wrong"
		if rng.IntN(3) > 0 {
			raw = correctInput(q)
		}
		_, err := s.Submit(context.Background(), raw)
		require.NoError(t, err)
		rem := s.Progress().Remaining
		require.LessOrEqual(t, rem, prev)
		prev = rem
	}
	assert.True(t, s.Complete())
	assert.Equal(t, 19, s.Progress().Learned)
}

func TestForDataset_Sentences(t *testing.T) {
	ds, err := dataset.Builtin("food")
	require.NoError(t, err)
	s, err := ForDataset(ds, Config{Kind: KindSentences, Mode: mastery.SinglePhase, Sample: 6}, WithRand(seeded(9)))
	require.NoError(t, err)

	assert.Equal(t, 6, s.Progress().Total)
	require.Len(t, s.Progress().Coverage, 3)

	q, ok := s.Next()
	require.True(t, ok)
	require.NotNil(t, q.Item.Sentence)
	assert.Len(t, q.Choices, 4)
	assert.Contains(t, q.Choices, q.Item.Base)
}

func coverageDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Name:       "tiny",
		Subjects:   []dataset.Entry{{Target: "J'aime", Base: "I like"}, {Target: "Je déteste", Base: "I hate"}},
		Nouns:      []dataset.Entry{{Target: "le thé", Base: "tea"}, {Target: "le pain", Base: "bread"}},
		Qualifiers: []dataset.Entry{{Target: "chaud", Base: "hot"}, {Target: "froid", Base: "cold"}},
	}
}

func TestCoverageGoal(t *testing.T) {
	s, err := ForDataset(coverageDataset(), Config{Kind: KindSentences, Mode: mastery.SinglePhase, Goal: GoalCoverage}, WithRand(seeded(10)))
	require.NoError(t, err)
	require.Equal(t, 8, s.Progress().Total)

	sum, err := Run(context.Background(), s, &fakePresenter{}, scripted())
	require.NoError(t, err)
	assert.True(t, sum.Completed)
	assert.LessOrEqual(t, sum.Questions, 6)
	assert.Less(t, sum.Learned, sum.Total)
	for _, c := range s.Progress().Coverage {
		assert.Equal(t, c.Total, c.Seen, c.Category.String())
	}
}

func TestCoverageGoalRequiresSentences(t *testing.T) {
	ds, _ := dataset.Builtin("food")
	_, err := ForDataset(ds, Config{Kind: KindWords, Goal: GoalCoverage})
	assert.ErrorIs(t, err, ErrCoverageNeedsSentences)

	_, err = NewSession(wordItems("a", "b"), Config{Goal: GoalCoverage})
	assert.ErrorIs(t, err, ErrCoverageNeedsSentences)
}

func TestRun_InputErrorStops(t *testing.T) {
	s, err := NewSession(wordItems("a", "b", "c", "d"), Config{}, WithRand(seeded(11)))
	require.NoError(t, err)

	calls := 0
	in := inputFunc(func(_ context.Context, q Question) (string, error) {
		calls++
		if calls > 2 {
			return "", io.EOF
		}
		return correctInput(&q), nil
	})
	p := &fakePresenter{}
	sum, err := Run(context.Background(), s, p, in)
	assert.ErrorIs(t, err, io.EOF)
	require.NotNil(t, sum)
	assert.False(t, sum.Completed)
	assert.Equal(t, 2, sum.Questions)
	assert.Nil(t, p.complete)
}

func TestRun_Cancelled(t *testing.T) {
	s, err := NewSession(wordItems("a", "b"), Config{})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Run(ctx, s, &fakePresenter{}, scripted())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecorder(t *testing.T) {
	rec := &fakeRecorder{}
	s, err := NewSession(wordItems("a", "b"), Config{Mode: mastery.SinglePhase, DatasetName: "mini"},
		WithRand(seeded(12)), WithRecorder(rec), WithSessionID("sess-1"))
	require.NoError(t, err)

	_, err = Run(context.Background(), s, &fakePresenter{}, scripted("x"))
	require.NoError(t, err)

	require.Len(t, rec.sessions, 2)
	assert.Equal(t, store.ActionStart, rec.sessions[0].Action)
	assert.Equal(t, store.ActionEnd, rec.sessions[1].Action)
	assert.True(t, rec.sessions[1].Completed)
	assert.Equal(t, "mini", rec.sessions[1].Dataset)

	require.Len(t, rec.answers, 2)
	assert.Equal(t, "sess-1", rec.answers[0].SessionID)
	assert.False(t, rec.answers[0].Correct)
	assert.True(t, rec.answers[0].Invalid)
	assert.True(t, rec.answers[1].Correct)
}

func TestRecorderFailureDoesNotAbort(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	s, err := NewSession(wordItems("a", "b", "c", "d"), Config{Mode: mastery.SinglePhase}, WithRecorder(rec))
	require.NoError(t, err)

	sum, err := Run(context.Background(), s, &fakePresenter{}, scripted())
	require.NoError(t, err)
	assert.True(t, sum.Completed)
}

func TestStreakMilestone(t *testing.T) {
	items := wordItems("a", "1", "b", "2", "c", "3", "d", "4", "e", "5", "f", "6")
	s, err := NewSession(items, Config{Mode: mastery.SinglePhase}, WithRand(seeded(13)))
	require.NoError(t, err)

	var milestones []int
	for {
		q, ok := s.Next()
		if !ok {
			break
		}
		res, err := s.Submit(context.Background(), correctInput(q))
		require.NoError(t, err)
		if res.StreakMilestone > 0 {
			milestones = append(milestones, res.StreakMilestone)
		}
	}
	assert.Equal(t, []int{5}, milestones)
	assert.Equal(t, 6, s.Summary().BestStreak)
}

func TestDeterministicWithSeed(t *testing.T) {
	ds, _ := dataset.Builtin("food")
	order := func() []string {
		s, err := ForDataset(ds, Config{Kind: KindSentences, Sample: 10}, WithRand(seeded(42)))
		require.NoError(t, err)
		var ids []string
		for i := 0; i < 10; i++ {
			q, _ := s.Next()
			ids = append(ids, q.Item.ID+"|"+q.Choices[0])
			_, err := s.Submit(context.Background(), "wrong")
			require.NoError(t, err)
		}
		return ids
	}
	assert.Equal(t, order(), order())
}

func TestSummary(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	s, err := NewSession(wordItems("a", "1", "b", "2"), Config{Mode: mastery.SinglePhase, FirstFormat: FormatFreeText},
		WithRand(seeded(14)), WithClock(clock))
	require.NoError(t, err)
	s.Begin(context.Background())

	for _, raw := range []string{"x", "y", "z"} {
		s.Next()
		_, err := s.Submit(context.Background(), raw)
		require.NoError(t, err)
	}
	now = now.Add(90 * time.Second)

	sum := s.Finish(context.Background())
	assert.Equal(t, 90*time.Second, sum.Duration)
	assert.Equal(t, 3, sum.Questions)
	assert.Equal(t, 0.0, sum.Accuracy)
	assert.False(t, sum.Completed)
	require.Len(t, sum.Missed, 2)
	assert.GreaterOrEqual(t, sum.Missed[0].Count, sum.Missed[1].Count)
	assert.Same(t, sum, s.Finish(context.Background()))
}

func TestNextStreakMilestone(t *testing.T) {
	tests := []struct {
		current int
		want    int
	}{
		{0, 5}, {4, 5}, {5, 10}, {10, 15}, {19, 20}, {20, 30}, {29, 30}, {30, 40},
	}
	for _, tt := range tests {
		if got := nextStreakMilestone(tt.current); got != tt.want {
			t.Errorf("nextStreakMilestone(%d) = %d, want %d", tt.current, got, tt.want)
		}
	}
}
