package home

import (
	"errors"
	"math/rand/v2"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/vocabdrill/internal/quiz"
	"github.com/abhisek/vocabdrill/internal/router"
	"github.com/abhisek/vocabdrill/internal/screens/drill"
)

func testSession() (*quiz.Session, error) {
	items := []quiz.Item{{ID: "w-le lait", Target: "le lait", Base: "milk"}}
	return quiz.NewSession(items, quiz.Config{}, quiz.WithRand(rand.New(rand.NewPCG(1, 1))))
}

func TestStartDrillPushesDrill(t *testing.T) {
	h := New(Options{Heading: "food · words", NewSession: testSession})

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &drill.DrillScreen{}, push.Screen)
}

func TestStartDrillError(t *testing.T) {
	h := New(Options{NewSession: func() (*quiz.Session, error) {
		return nil, errors.New("dataset has no words")
	}})

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, h.View(100, 40), "dataset has no words")
}

func TestHistoryDisabledWithoutLog(t *testing.T) {
	h := New(Options{NewSession: testSession})

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 2, h.menu.Selected, "disabled history entry is skipped")

	view := h.View(100, 40)
	assert.Contains(t, view, "START DRILL")
	assert.Contains(t, view, "EXIT")
}
