package quiz

// baseStreakMilestone is the first streak length that is celebrated.
const baseStreakMilestone = 5

// nextStreakMilestone returns the next streak milestone above current.
func nextStreakMilestone(current int) int {
	milestones := []int{5, 10, 15, 20}
	for _, m := range milestones {
		if m > current {
			return m
		}
	}
	// Beyond 20, every 10.
	return ((current / 10) + 1) * 10
}
