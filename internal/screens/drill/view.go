package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/mastery"
	"github.com/abhisek/vocabdrill/internal/quiz"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

func (d *DrillScreen) View(width, height int) string {
	switch {
	case d.errMsg != "":
		return centered(width, theme.Incorrect, fmt.Sprintf("\n\n\nError: %s\n\nPress any key to go back.", d.errMsg))
	case d.showingQuitConfirm:
		return renderQuitConfirm(width)
	case d.question == nil:
		return centered(width, theme.Hint, "\n\n\nPreparing your drill...")
	}
	return d.renderQuestion(width)
}

func (d *DrillScreen) renderQuestion(width int) string {
	q := d.question
	p := d.progress

	var b strings.Builder

	info := theme.Subtitle.Render(fmt.Sprintf("Round %d · Question %d · %s",
		q.Round, q.Number, mastery.DisplayLabel(q.Phase, d.session.Config().Mode)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, info))
	b.WriteString("\n")
	bar := components.NewProgressBar("Learned", p.Learned, p.Total, min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	b.WriteString(centered(width, theme.Prompt, q.Prompt))
	b.WriteString("\n")
	if q.Format == quiz.FormatFreeText && q.Item.Sentence == nil {
		if hint := components.GenderHint(q.Answer); hint != "" {
			b.WriteString(centered(width, theme.Hint, "("+hint+")"))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	if q.Format == quiz.FormatMultipleChoice {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, d.mc.View()))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, d.input.View()))
	}
	b.WriteString("\n")

	if d.showingFeedback && d.result != nil {
		b.WriteString(d.renderFeedback(width))
	}
	return b.String()
}

func (d *DrillScreen) renderFeedback(width int) string {
	r := d.result
	var b strings.Builder
	b.WriteString("\n")

	if r.Correct {
		b.WriteString(centered(width, theme.Correct, "Correct!"))
	} else {
		b.WriteString(centered(width, theme.Incorrect, "Not quite"))
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Body, "Answer: "+r.Question.Answer))
	}
	b.WriteString("\n")

	if t := r.Transition; t != nil {
		if t.Learned() {
			b.WriteString(centered(width, theme.Celebrate, fmt.Sprintf("Learned \"%s\"!", r.Question.Item.Target)))
		} else {
			b.WriteString(centered(width, theme.Hint, "Next time: "+mastery.DisplayLabel(t.To, d.session.Config().Mode)))
		}
		b.WriteString("\n")
	}
	if r.StreakMilestone > 0 {
		b.WriteString(centered(width, theme.Celebrate, fmt.Sprintf("%d in a row!", r.StreakMilestone)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centered(width, theme.Hint, "Press any key to continue..."))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, theme.Prompt, "End drill early?"))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Hint, "Progress is not kept between drills."))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Correct, "[Y] Yes, end drill"))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Selected, "[N] No, keep going"))
	return b.String()
}

func centered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}
