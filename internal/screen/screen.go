package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabdrill/internal/ui/layout"
)

// Screen is implemented by every page of the terminal UI.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen supply its own footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider lets a screen supply the right-hand header status.
type StatusProvider interface {
	Status() string
}
