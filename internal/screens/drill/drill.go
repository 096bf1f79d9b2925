package drill

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabdrill/internal/quiz"
	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/screens/summary"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
)

// DrillScreen runs a quiz session one question at a time.
type DrillScreen struct {
	session *quiz.Session
	ctx     context.Context

	question *quiz.Question
	result   *quiz.Result
	progress quiz.Progress

	mc    components.MultiChoice
	input components.TextInput

	showingFeedback    bool
	showingQuitConfirm bool
	errMsg             string
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)
var _ screen.StatusProvider = (*DrillScreen)(nil)

// New creates a DrillScreen for s.
func New(ctx context.Context, s *quiz.Session) *DrillScreen {
	return &DrillScreen{session: s, ctx: ctx}
}

func (d *DrillScreen) Init() tea.Cmd {
	d.session.Begin(d.ctx)
	return d.advance()
}

func (d *DrillScreen) Title() string {
	return "Drill"
}

func (d *DrillScreen) Status() string {
	p := d.progress
	status := fmt.Sprintf("%d/%d learned", p.Learned, p.Total)
	if p.Streak > 1 {
		status += fmt.Sprintf("  ★ %d", p.Streak)
	}
	return status
}

func (d *DrillScreen) KeyHints() []layout.KeyHint {
	switch {
	case d.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case d.showingQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End drill"},
			{Key: "N", Description: "Keep going"},
		}
	case d.showingFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case d.question != nil && d.question.Format == quiz.FormatMultipleChoice:
		return []layout.KeyHint{
			{Key: fmt.Sprintf("1-%d", len(d.question.Choices)), Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Select"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (d *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		return d.handleKey(kmsg)
	}

	if d.question != nil && !d.showingFeedback && d.question.Format == quiz.FormatFreeText {
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *DrillScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if d.errMsg != "" {
		return d, pop
	}

	if d.showingQuitConfirm {
		switch msg.String() {
		case "y", "Y":
			return d, d.finish()
		case "n", "N", "esc":
			d.showingQuitConfirm = false
		}
		return d, nil
	}

	if d.showingFeedback {
		d.showingFeedback = false
		return d, d.advance()
	}

	if msg.String() == "esc" {
		d.showingQuitConfirm = true
		return d, nil
	}

	if d.question == nil {
		return d, nil
	}

	if d.question.Format == quiz.FormatMultipleChoice {
		var cmd tea.Cmd
		d.mc, cmd = d.mc.Update(msg)
		if d.mc.Submitted {
			return d, d.submit(d.mc.Value())
		}
		return d, cmd
	}

	if msg.String() == "enter" {
		return d, d.submit(d.input.Value())
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

// advance loads the next question, or finishes when the session is complete.
func (d *DrillScreen) advance() tea.Cmd {
	d.result = nil
	q, ok := d.session.Next()
	d.progress = d.session.Progress()
	if !ok {
		return d.finish()
	}
	d.question = q

	if q.Format == quiz.FormatMultipleChoice {
		d.mc = components.NewMultiChoice(q.Choices)
		return nil
	}
	d.input = components.NewTextInput("Type your answer...", 80)
	return d.input.Init()
}

func (d *DrillScreen) submit(raw string) tea.Cmd {
	res, err := d.session.Submit(d.ctx, raw)
	if err != nil {
		d.errMsg = err.Error()
		return nil
	}
	d.result = &res
	d.progress = d.session.Progress()
	d.showingFeedback = true

	if d.question.Format == quiz.FormatMultipleChoice {
		for i, c := range d.question.Choices {
			if c == d.question.Answer {
				d.mc.Reveal(i)
			}
		}
	} else {
		d.input.Submit(res.Correct)
	}
	return nil
}

// finish records the end of the session and swaps in the summary screen.
func (d *DrillScreen) finish() tea.Cmd {
	sum := d.session.Finish(d.ctx)
	next := summary.New(sum)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func pop() tea.Msg {
	return router.PopScreenMsg{}
}
