package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabdrill/internal/quiz"
	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screen"
	"github.com/abhisek/vocabdrill/internal/screens/drill"
	"github.com/abhisek/vocabdrill/internal/screens/history"
	"github.com/abhisek/vocabdrill/internal/ui/components"
	"github.com/abhisek/vocabdrill/internal/ui/theme"
)

// Options configures the home screen.
type Options struct {
	Ctx context.Context

	// Heading describes the configured drill, e.g. "food · words · 2 phases".
	Heading     string
	Description string

	// NewSession builds a fresh session each time a drill starts.
	NewSession func() (*quiz.Session, error)

	// History is nil when the answer log is disabled.
	History history.Source
}

// HomeScreen is the landing menu.
type HomeScreen struct {
	opts   Options
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen.
func New(opts Options) *HomeScreen {
	if opts.Ctx == nil {
		opts.Ctx = context.Background()
	}
	h := &HomeScreen{opts: opts}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "START DRILL", Action: h.startDrill},
		{Label: "HISTORY", Action: h.openHistory, Disabled: opts.History == nil},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) startDrill() tea.Cmd {
	s, err := h.opts.NewSession()
	if err != nil {
		h.errMsg = err.Error()
		return nil
	}
	h.errMsg = ""
	d := drill.New(h.opts.Ctx, s)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: d}
	}
}

func (h *HomeScreen) openHistory() tea.Cmd {
	hs := history.New(h.opts.History)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: hs}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) View(width, height int) string {
	sections := []string{
		components.Banner(width),
		"",
		theme.Subtitle.Render(h.opts.Heading),
	}
	if h.opts.Description != "" {
		sections = append(sections, theme.Hint.Render(h.opts.Description))
	}

	menu := theme.Card.Render(strings.TrimRight(h.menu.View(), "\n"))
	sections = append(sections, "", menu)

	if h.errMsg != "" {
		sections = append(sections, "", theme.Incorrect.Render(fmt.Sprintf("Could not start drill: %s", h.errMsg)))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
