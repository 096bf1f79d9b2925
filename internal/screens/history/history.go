package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/ui/layout"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

const (
	sessionLimit = 50
	missedLimit  = 5
)

// Source is the part of the answer log the history screen reads.
type Source interface {
	QuerySessionSummaries(ctx context.Context, opts store.QueryOpts) ([]store.SessionSummaryRecord, error)
	MostMissed(ctx context.Context, opts store.QueryOpts) ([]store.MissedItemRecord, error)
}

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Missed   []store.MissedItemRecord
	Err      error
}

// HistoryScreen lists past sessions and the most-missed items.
type HistoryScreen struct {
	source   Source
	sessions []store.SessionSummaryRecord
	missed   []store.MissedItemRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen reading from source.
func New(source Source) *HistoryScreen {
	return &HistoryScreen{
		source:   source,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		sessions, err := s.source.QuerySessionSummaries(ctx, store.QueryOpts{Limit: sessionLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// Missed items are a nice-to-have; show sessions even if this fails.
		missed, err := s.source.MostMissed(ctx, store.QueryOpts{Limit: missedLimit})
		if err != nil {
			missed = nil
		}
		return historyLoadedMsg{Sessions: sessions, Missed: missed}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.missed = msg.Missed
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  No sessions yet. Start a drill!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.sessions {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}

		line := fmt.Sprintf("%s%s  %d:%02d  %d questions  %.0f%% accuracy",
			prefix, rec.Timestamp.Format("Jan 02, 2006"),
			rec.DurationSecs/60, rec.DurationSecs%60,
			rec.QuestionsServed, rec.Accuracy()*100)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			status := "stopped early"
			if rec.Completed {
				status = "completed"
			}
			detail := fmt.Sprintf("    %s · %s · %d rounds · %s", rec.Dataset, rec.Mode, rec.Rounds, status)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(detail)))
			b.WriteString("\n")
		}
	}

	if len(s.missed) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Subtitle.Render("Most missed")))
		b.WriteString("\n")
		for _, m := range s.missed {
			line := fmt.Sprintf("%s  %d of %d wrong", m.CorrectAnswer, m.Misses, m.Attempts)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Incorrect.Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
