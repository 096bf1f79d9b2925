package components

import "strings"

// GenderHint guesses the grammatical gender of a French noun phrase for
// display next to a typing prompt. The article decides when it is explicit;
// otherwise a trailing "e" reads as feminine. Returns "" for non-words.
func GenderHint(target string) string {
	t := strings.ToLower(strings.TrimSpace(target))
	switch {
	case t == "":
		return ""
	case strings.HasPrefix(t, "le "), strings.HasPrefix(t, "un "):
		return "masculine"
	case strings.HasPrefix(t, "la "), strings.HasPrefix(t, "une "):
		return "feminine"
	}

	t = strings.TrimPrefix(t, "les ")
	t = strings.TrimPrefix(t, "l'")
	word := t
	if i := strings.IndexByte(t, ' '); i > 0 {
		word = t[:i]
	}
	word = strings.TrimSuffix(word, "s")
	if strings.HasSuffix(word, "e") {
		return "feminine"
	}
	return "masculine"
}
