package mastery

import (
	"github.com/abhisek/vocabdrill/internal/composer"
	"github.com/abhisek/vocabdrill/internal/dataset"
)

// CategoryCount is the coverage of one composition category.
type CategoryCount struct {
	Category dataset.Category
	Seen     int
	Total    int
}

// Coverage tracks, per category, which component indices have appeared in
// at least one correctly answered sentence.
type Coverage struct {
	seen  [3]map[int]bool
	total [3]int
}

// NewCoverage creates empty coverage sized to the dataset's tables.
func NewCoverage(ds *dataset.Dataset) *Coverage {
	c := &Coverage{}
	for _, cat := range dataset.Categories() {
		c.seen[cat] = make(map[int]bool)
		c.total[cat] = len(ds.Table(cat))
	}
	return c
}

// Record marks every component of idx as seen. Returns true if any
// component was new.
func (c *Coverage) Record(idx composer.Indices) bool {
	added := false
	for _, cat := range dataset.Categories() {
		v := idx.Get(cat)
		if !c.seen[cat][v] {
			c.seen[cat][v] = true
			added = true
		}
	}
	return added
}

// AddsCoverage reports whether answering idx correctly would cover a new
// component.
func (c *Coverage) AddsCoverage(idx composer.Indices) bool {
	for _, cat := range dataset.Categories() {
		if !c.seen[cat][idx.Get(cat)] {
			return true
		}
	}
	return false
}

// Complete reports whether every value of every category has been seen.
func (c *Coverage) Complete() bool {
	for _, cat := range dataset.Categories() {
		if len(c.seen[cat]) < c.total[cat] {
			return false
		}
	}
	return true
}

// Counts returns seen/total per category in sentence order.
func (c *Coverage) Counts() []CategoryCount {
	out := make([]CategoryCount, 0, 3)
	for _, cat := range dataset.Categories() {
		out = append(out, CategoryCount{Category: cat, Seen: len(c.seen[cat]), Total: c.total[cat]})
	}
	return out
}
