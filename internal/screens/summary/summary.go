package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/quiz"
	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

// SummaryScreen displays the end-of-drill summary.
type SummaryScreen struct {
	summary *quiz.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen.
func New(summary *quiz.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Drill Summary"
}

func (s *SummaryScreen) Status() string {
	if s.summary == nil {
		return ""
	}
	return fmt.Sprintf("%d/%d learned", s.summary.Learned, s.summary.Total)
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := func(style lipgloss.Style, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text))
	}

	var b strings.Builder
	b.WriteString("\n")
	if sum.Completed {
		b.WriteString(center(theme.Celebrate, "Félicitations! Every item learned."))
	} else {
		b.WriteString(center(theme.Title, "Drill stopped"))
	}
	b.WriteString("\n\n")

	b.WriteString(center(theme.Hint, "Duration: "+formatDuration(sum.Duration)))
	b.WriteString("\n\n")

	b.WriteString(center(theme.Body, fmt.Sprintf("Questions: %d      Correct: %d      Accuracy: %.0f%%",
		sum.Questions, sum.Correct, sum.Accuracy*100)))
	b.WriteString("\n")
	b.WriteString(center(theme.Body, fmt.Sprintf("Rounds: %d      Best streak: %d      Learned: %d/%d",
		sum.Rounds, sum.BestStreak, sum.Learned, sum.Total)))
	b.WriteString("\n\n")

	if len(sum.Missed) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 50)))
		b.WriteString(center(theme.Subtitle, "Most missed"))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		for _, m := range sum.Missed {
			b.WriteString(center(theme.Body, fmt.Sprintf("%s → %s  ×%d", m.Prompt, m.Answer, m.Count)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func formatDuration(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
