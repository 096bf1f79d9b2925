package mastery

// Tracker owns the phase of every item in a drill session. It is not safe
// for concurrent use; the quiz loop mutates it between questions.
type Tracker struct {
	mode    Mode
	phases  map[string]Phase
	order   []string
	learned int
}

// NewTracker creates a tracker with every id at PhaseNeedsBase. Duplicate
// ids are tracked once.
func NewTracker(ids []string, mode Mode) *Tracker {
	t := &Tracker{
		mode:   mode,
		phases: make(map[string]Phase, len(ids)),
		order:  make([]string, 0, len(ids)),
	}
	for _, id := range ids {
		if _, dup := t.phases[id]; dup {
			continue
		}
		t.phases[id] = PhaseNeedsBase
		t.order = append(t.order, id)
	}
	return t
}

// Mode returns the tracker's phase mode.
func (t *Tracker) Mode() Mode {
	return t.mode
}

// Record applies a scored answer for id.
// Returns a Transition if the answer advanced the item, nil otherwise.
// Wrong answers and unknown or learned ids never change state.
func (t *Tracker) Record(id string, correct bool) *Transition {
	from, ok := t.phases[id]
	if !ok || from == PhaseLearned || !correct {
		return nil
	}

	to := PhaseLearned
	trigger := "target-correct"
	if from == PhaseNeedsBase {
		trigger = "base-correct"
		if t.mode == TwoPhase {
			to = PhaseNeedsTarget
		}
	}

	t.phases[id] = to
	if to == PhaseLearned {
		t.learned++
	}
	return &Transition{ItemID: id, From: from, To: to, Trigger: trigger}
}

// Phase returns the current phase of id and whether id is tracked.
func (t *Tracker) Phase(id string) (Phase, bool) {
	p, ok := t.phases[id]
	return p, ok
}

// Active returns the ids not yet learned, in insertion order.
func (t *Tracker) Active() []string {
	out := make([]string, 0, t.Remaining())
	for _, id := range t.order {
		if t.phases[id] != PhaseLearned {
			out = append(out, id)
		}
	}
	return out
}

// Done reports whether every item is learned.
func (t *Tracker) Done() bool {
	return t.learned == len(t.order)
}

// Learned returns the number of learned items.
func (t *Tracker) Learned() int { return t.learned }

// Total returns the number of tracked items.
func (t *Tracker) Total() int { return len(t.order) }

// Remaining returns the number of items still in the active pool.
func (t *Tracker) Remaining() int { return len(t.order) - t.learned }
