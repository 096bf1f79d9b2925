package dataset

import (
	"fmt"
	"strings"
)

// ValidationError lists every structural problem found in a dataset.
type ValidationError struct {
	Dataset  string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dataset %q is invalid:\n  - %s", e.Dataset, strings.Join(e.Problems, "\n  - "))
}

// Validate performs all structural checks on a dataset.
// Returns a *ValidationError describing all problems found, or nil if valid.
func Validate(d *Dataset) error {
	var errs []string

	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, "name is required")
	}

	hasTables := len(d.Subjects) > 0 || len(d.Nouns) > 0 || len(d.Qualifiers) > 0
	if !d.HasWords() && !hasTables {
		errs = append(errs, "dataset has neither words nor sentence tables")
	}
	if hasTables && !d.HasSentences() {
		errs = append(errs, "sentence tables need at least one subject, noun and qualifier")
	}

	seen := make(map[string]bool, len(d.Words))
	for i, w := range d.Words {
		errs = append(errs, checkEntry("words", i, w)...)
		key := strings.ToLower(strings.TrimSpace(w.Target))
		if key != "" && seen[key] {
			errs = append(errs, fmt.Sprintf("words[%d]: duplicate target %q", i, w.Target))
		}
		seen[key] = true
	}

	for _, c := range Categories() {
		for i, e := range d.Table(c) {
			errs = append(errs, checkEntry(c.String(), i, e)...)
		}
	}

	for i, n := range d.Nouns {
		if n.Gender != "" && n.Gender != Masculine && n.Gender != Feminine {
			errs = append(errs, fmt.Sprintf("nouns[%d]: gender %q must be %q or %q", i, n.Gender, Masculine, Feminine))
		}
		for _, q := range n.Allowed {
			if q < 0 || q >= len(d.Qualifiers) {
				errs = append(errs, fmt.Sprintf("nouns[%d]: allowed qualifier %d out of range", i, q))
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Dataset: d.Name, Problems: errs}
	}
	return nil
}

func checkEntry(table string, i int, e Entry) []string {
	var errs []string
	if strings.TrimSpace(e.Target) == "" {
		errs = append(errs, fmt.Sprintf("%s[%d]: target is empty", table, i))
	}
	if strings.TrimSpace(e.Base) == "" {
		errs = append(errs, fmt.Sprintf("%s[%d]: base is empty", table, i))
	}
	return errs
}
