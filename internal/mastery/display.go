package mastery

// DisplayLabel maps a phase into the short label shown next to an item in
// the UI. In single-phase mode an item never shows the second direction.
func DisplayLabel(p Phase, mode Mode) string {
	switch p {
	case PhaseNeedsBase:
		if mode == SinglePhase {
			return "to answer"
		}
		return "to recognise"
	case PhaseNeedsTarget:
		return "to write"
	case PhaseLearned:
		return "learned"
	default:
		return ""
	}
}
