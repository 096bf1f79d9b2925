// Package composer builds target/base sentence pairs from a dataset's
// subject, noun and qualifier tables.
package composer

import (
	"fmt"

	"github.com/abhisek/vocabdrill/internal/dataset"
)

// Indices identifies one value from each composition category.
type Indices struct {
	Subject   int
	Noun      int
	Qualifier int
}

// Get returns the index held for category c.
func (i Indices) Get(c dataset.Category) int {
	switch c {
	case dataset.CategorySubject:
		return i.Subject
	case dataset.CategoryNoun:
		return i.Noun
	default:
		return i.Qualifier
	}
}

// With returns a copy of i with category c set to v.
func (i Indices) With(c dataset.Category, v int) Indices {
	switch c {
	case dataset.CategorySubject:
		i.Subject = v
	case dataset.CategoryNoun:
		i.Noun = v
	default:
		i.Qualifier = v
	}
	return i
}

// Sentence is one composed target/base pair.
type Sentence struct {
	Target  string
	Base    string
	Indices Indices
}

// ID returns a stable identifier derived from the component indices.
func (s Sentence) ID() string {
	return fmt.Sprintf("s%d-n%d-q%d", s.Indices.Subject, s.Indices.Noun, s.Indices.Qualifier)
}

// Rand is the random source used for sampling.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Compose assembles the sentence for idx. Indices must be in range for
// the dataset's tables.
func Compose(ds *dataset.Dataset, idx Indices) Sentence {
	g := ds.Grammar.WithDefaults()
	subj := ds.Subjects[idx.Subject]
	noun := ds.Nouns[idx.Noun]
	qual := ds.Qualifiers[idx.Qualifier]

	connective, baseConnective := g.TargetSingular, g.BaseSingular
	if noun.Plural {
		baseConnective = g.BasePlural
		connective = g.TargetPluralM
		if noun.Gender == dataset.Feminine {
			connective = g.TargetPluralF
		}
	}

	return Sentence{
		Target:  fmt.Sprintf("%s %s %s %s.", subj.Target, noun.Target, connective, QualifierForm(qual, noun)),
		Base:    fmt.Sprintf("%s %s %s %s.", subj.Base, noun.Base, baseConnective, qual.Base),
		Indices: idx,
	}
}

// QualifierForm picks the qualifier form agreeing with noun. Missing forms
// fall back plural_f, plural_m, singular, then the entry's target text.
func QualifierForm(qual, noun dataset.Entry) string {
	var chain []string
	switch {
	case !noun.Plural:
		chain = []string{qual.Forms.Singular}
	case noun.Gender == dataset.Feminine:
		chain = []string{qual.Forms.PluralF, qual.Forms.PluralM, qual.Forms.Singular}
	default:
		chain = []string{qual.Forms.PluralM, qual.Forms.Singular}
	}
	for _, f := range chain {
		if f != "" {
			return f
		}
	}
	return qual.Target
}

// All returns every combination the dataset allows, in table order.
func All(ds *dataset.Dataset) []Sentence {
	if !ds.HasSentences() {
		return nil
	}
	var out []Sentence
	for s := range ds.Subjects {
		for n, noun := range ds.Nouns {
			for q := range ds.Qualifiers {
				if !noun.Accepts(q) {
					continue
				}
				out = append(out, Compose(ds, Indices{Subject: s, Noun: n, Qualifier: q}))
			}
		}
	}
	return out
}

// Sample returns n sentences drawn without replacement. n <= 0 or n larger
// than the universe returns every sentence, shuffled.
func Sample(ds *dataset.Dataset, n int, rng Rand) []Sentence {
	all := All(ds)
	rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if n <= 0 || n >= len(all) {
		return all
	}
	return all[:n]
}
