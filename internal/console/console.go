// Package console runs a drill on a plain line-oriented terminal.
package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/quiz"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

// Presenter writes questions, feedback and the summary as styled lines.
type Presenter struct {
	out   io.Writer
	width int
	pause time.Duration
	sleep func(time.Duration)

	bannerShown bool
}

var _ quiz.Presenter = (*Presenter)(nil)

// PresenterOption configures a Presenter.
type PresenterOption func(*Presenter)

// WithPause waits d after each piece of feedback.
func WithPause(d time.Duration) PresenterOption {
	return func(p *Presenter) { p.pause = d }
}

// WithWidth sets the terminal width used for the banner.
func WithWidth(w int) PresenterOption {
	return func(p *Presenter) { p.width = w }
}

// NewPresenter creates a Presenter writing to out.
func NewPresenter(out io.Writer, opts ...PresenterOption) *Presenter {
	p := &Presenter{out: out, width: 80, sleep: time.Sleep}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Presenter) println(s string) {
	fmt.Fprintln(p.out, s)
}

// ShowQuestion prints the prompt, the numbered options for multiple choice,
// and a gender hint when a single French word is to be typed.
func (p *Presenter) ShowQuestion(q quiz.Question, pr quiz.Progress) {
	if !p.bannerShown {
		p.println(components.Banner(p.width))
		p.println("")
		p.bannerShown = true
	}

	status := fmt.Sprintf("Q%d  round %d  %d/%d learned", q.Number, q.Round, pr.Learned, pr.Total)
	if pr.Streak > 1 {
		status += fmt.Sprintf("  streak %d", pr.Streak)
	}
	p.println(theme.Hint.Render(status))
	p.println(theme.Prompt.Render(q.Prompt))

	if q.Format == quiz.FormatMultipleChoice {
		for i, c := range q.Choices {
			p.println(theme.Body.Render(fmt.Sprintf("  %d) %s", i+1, c)))
		}
		return
	}
	if q.Item.Sentence == nil {
		if hint := components.GenderHint(q.Answer); hint != "" {
			p.println(theme.Hint.Render("(" + hint + ")"))
		}
	}
}

// ShowFeedback prints the verdict, the correct answer after a miss and
// any phase or streak milestone.
func (p *Presenter) ShowFeedback(r quiz.Result, pr quiz.Progress) {
	switch {
	case r.Correct:
		p.println(theme.Correct.Render("Correct!"))
	case r.Invalid:
		p.println(theme.Incorrect.Render("That's not a valid choice."))
		p.println(theme.Body.Render("The answer was: " + r.Question.Answer))
	default:
		p.println(theme.Incorrect.Render("Not quite."))
		p.println(theme.Body.Render("The answer was: " + r.Question.Answer))
	}

	if r.Transition != nil {
		if r.Transition.Learned() {
			p.println(theme.Celebrate.Render(fmt.Sprintf("Learned: %s (%d/%d)", r.Question.Item.Target, pr.Learned, pr.Total)))
		} else {
			p.println(theme.Hint.Render("Next time: " + mastery.DisplayLabel(r.Transition.To, mastery.TwoPhase)))
		}
	}
	if r.StreakMilestone > 0 {
		p.println(theme.Celebrate.Render(fmt.Sprintf("%d in a row!", r.StreakMilestone)))
	}
	p.println("")

	if p.pause > 0 {
		p.sleep(p.pause)
	}
}

// ShowComplete prints the completion message and session summary.
func (p *Presenter) ShowComplete(s *quiz.Summary) {
	if s.Completed {
		p.println(theme.Celebrate.Render("Félicitations! You've learned them all."))
	}
	p.println(theme.Title.Render("Session summary"))
	p.println(theme.Body.Render(fmt.Sprintf("Questions: %d   Correct: %d   Accuracy: %.0f%%",
		s.Questions, s.Correct, s.Accuracy*100)))
	p.println(theme.Body.Render(fmt.Sprintf("Rounds: %d   Best streak: %d   Learned: %d/%d   Time: %s",
		s.Rounds, s.BestStreak, s.Learned, s.Total, s.Duration.Round(time.Second))))

	if len(s.Missed) == 0 {
		return
	}
	p.println("")
	p.println(theme.Subtitle.Render("Most missed"))
	for _, m := range s.Missed {
		p.println(theme.Body.Render(fmt.Sprintf("  %s → %s (%s)",
			m.Prompt, m.Answer, plural(m.Count, "miss", "misses"))))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

// trimInput drops the line terminator left by some terminals.
func trimInput(s string) string {
	return strings.TrimRight(s, "\r\n")
}
