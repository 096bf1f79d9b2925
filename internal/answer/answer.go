// Package answer decides whether a learner's response matches the expected one.
package answer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidSelection is returned for a multiple-choice response that is not
// a number in range. Callers score it as a wrong answer.
var ErrInvalidSelection = errors.New("not a valid choice")

var ligatures = strings.NewReplacer(
	"œ", "oe", "Œ", "OE",
	"æ", "ae", "Æ", "AE",
	"’", "'", "‘", "'", "ʼ", "'",
)

// Normalize folds s for free-text comparison:
//   - letters are lower-cased
//   - diacritics are removed
//   - ligatures are expanded and typographic apostrophes straightened
//   - whitespace runs collapse to one space
//   - surrounding whitespace and trailing sentence punctuation are dropped
//
// Normalize is total and idempotent.
func Normalize(s string) string {
	s = strings.ToLower(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}
	// Accented ligatures such as ǽ only become plain æ once marks are gone.
	s = ligatures.Replace(s)

	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimRight(s, " .!?")
}

// Equal reports whether given matches canonical after normalization.
func Equal(given, canonical string) bool {
	return Normalize(given) == Normalize(canonical)
}

// ParseChoice converts a 1-based selection into a 0-based index into a list
// of n choices.
func ParseChoice(raw string, n int) (int, error) {
	raw = strings.TrimSpace(raw)
	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 1 || idx > n {
		return -1, fmt.Errorf("%w: %q", ErrInvalidSelection, raw)
	}
	return idx - 1, nil
}

// CheckChoice scores a multiple-choice response. The selected choice must
// equal canonical exactly.
func CheckChoice(raw string, choices []string, canonical string) (bool, error) {
	idx, err := ParseChoice(raw, len(choices))
	if err != nil {
		return false, err
	}
	return choices[idx] == canonical, nil
}
