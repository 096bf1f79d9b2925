package mastery

// Phase is an item's position in the mastery lifecycle. Phases only move
// forward.
type Phase int

const (
	// PhaseNeedsBase means the item must be answered in the base language
	// (multiple choice).
	PhaseNeedsBase Phase = iota
	// PhaseNeedsTarget means the item must be typed in the target language.
	PhaseNeedsTarget
	// PhaseLearned means the item has left the active pool.
	PhaseLearned
)

func (p Phase) String() string {
	switch p {
	case PhaseNeedsBase:
		return "needs-base"
	case PhaseNeedsTarget:
		return "needs-target"
	case PhaseLearned:
		return "learned"
	default:
		return "unknown"
	}
}

// Mode selects how many correct answers an item needs.
type Mode int

const (
	// TwoPhase requires a base-language answer followed by a target-language one.
	TwoPhase Mode = iota
	// SinglePhase requires one correct answer.
	SinglePhase
)

// Required returns the number of correct answers an item needs in this mode.
func (m Mode) Required() int {
	if m == SinglePhase {
		return 1
	}
	return 2
}

// ParseMode converts a phase count (1 or 2) into a Mode.
func ParseMode(phases int) Mode {
	if phases == 1 {
		return SinglePhase
	}
	return TwoPhase
}

// Transition records a phase change for display and event logging.
type Transition struct {
	ItemID  string
	From    Phase
	To      Phase
	Trigger string // "base-correct", "target-correct"
}

// Learned reports whether the transition removed the item from the pool.
func (t *Transition) Learned() bool {
	return t != nil && t.To == PhaseLearned
}
