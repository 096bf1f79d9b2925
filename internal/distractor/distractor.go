// Package distractor builds plausible wrong multiple-choice options by
// varying exactly one component of a composed sentence.
package distractor

import (
	"go.uber.org/zap"

	"github.com/abhisek/vocabdrill/internal/composer"
	"github.com/abhisek/vocabdrill/internal/dataset"
)

const (
	// DefaultSize is the number of options Generate aims for, correct one included.
	DefaultSize = 4

	// MaxFallbackAttempts bounds the random substitution pass.
	MaxFallbackAttempts = 24

	// perAxis caps how many distractors one axis may contribute.
	perAxis = 3
)

// Rand is the random source used for axis order, candidate order and output order.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Choice is one multiple-choice option.
type Choice struct {
	Text    string
	Indices composer.Indices
	Correct bool
}

// Generator produces option sets for sentences of one dataset.
type Generator struct {
	ds          *dataset.Dataset
	rng         Rand
	logger      *zap.Logger
	size        int
	maxFallback int
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used to report shortfalls.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithSize sets the target option count. Values outside 2..4 are ignored.
func WithSize(n int) Option {
	return func(g *Generator) {
		if n >= 2 && n <= DefaultSize {
			g.size = n
		}
	}
}

// WithMaxFallbackAttempts overrides the random substitution budget.
func WithMaxFallbackAttempts(n int) Option {
	return func(g *Generator) {
		if n >= 0 {
			g.maxFallback = n
		}
	}
}

// New creates a generator for ds.
func New(ds *dataset.Dataset, rng Rand, opts ...Option) *Generator {
	g := &Generator{
		ds:          ds,
		rng:         rng,
		logger:      zap.NewNop(),
		size:        DefaultSize,
		maxFallback: MaxFallbackAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns the correct option for idx plus up to size-1 distractors,
// unique by text and in random order. Each distractor differs from idx in
// exactly one category. Degenerate datasets yield fewer options; Generate
// never fails.
func (g *Generator) Generate(idx composer.Indices) []Choice {
	correct := composer.Compose(g.ds, idx)
	out := []Choice{{Text: correct.Base, Indices: idx, Correct: true}}
	seen := map[string]bool{correct.Base: true}

	add := func(cand composer.Indices) bool {
		s := composer.Compose(g.ds, cand)
		if seen[s.Base] {
			return false
		}
		seen[s.Base] = true
		out = append(out, Choice{Text: s.Base, Indices: cand})
		return true
	}

	axes := dataset.Categories()
	g.rng.Shuffle(len(axes), func(i, j int) { axes[i], axes[j] = axes[j], axes[i] })

	for _, axis := range axes {
		taken := 0
		for _, v := range g.candidates(idx, axis) {
			if len(out) >= g.size || taken >= perAxis {
				break
			}
			if add(idx.With(axis, v)) {
				taken++
			}
		}
	}

	for attempt := 0; len(out) < g.size && attempt < g.maxFallback; attempt++ {
		axis := axes[g.rng.IntN(len(axes))]
		cands := g.candidates(idx, axis)
		if len(cands) == 0 {
			continue
		}
		add(idx.With(axis, cands[g.rng.IntN(len(cands))]))
	}

	if len(out) < g.size {
		g.logger.Debug("distractor shortfall",
			zap.String("sentence", correct.ID()),
			zap.Int("options", len(out)),
			zap.Int("wanted", g.size),
		)
	}

	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// candidates returns the legal replacement values for one axis of idx in
// preference order.
func (g *Generator) candidates(idx composer.Indices, axis dataset.Category) []int {
	switch axis {
	case dataset.CategoryNoun:
		orig := g.ds.Nouns[idx.Noun]
		var out []int
		for n, noun := range g.ds.Nouns {
			if n == idx.Noun || noun.Plural != orig.Plural || !noun.Accepts(idx.Qualifier) {
				continue
			}
			out = append(out, n)
		}
		g.shuffle(out)
		return out

	case dataset.CategoryQualifier:
		noun := g.ds.Nouns[idx.Noun]
		var out []int
		for q := range g.ds.Qualifiers {
			if q != idx.Qualifier && noun.Accepts(q) {
				out = append(out, q)
			}
		}
		g.shuffle(out)
		return out

	default:
		group := g.ds.Subjects[idx.Subject].Group
		var same, other []int
		for s, subj := range g.ds.Subjects {
			switch {
			case s == idx.Subject:
			case subj.Group == group:
				same = append(same, s)
			default:
				other = append(other, s)
			}
		}
		g.shuffle(same)
		g.shuffle(other)
		return append(same, other...)
	}
}

func (g *Generator) shuffle(s []int) {
	g.rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

// Words returns the base gloss of words[i] together with up to n-1 distinct
// glosses of other words, shuffled.
func Words(words []dataset.Entry, i int, rng Rand, n int) []string {
	answer := words[i].Base
	out := []string{answer}
	seen := map[string]bool{answer: true}

	order := make([]int, len(words))
	for j := range order {
		order[j] = j
	}
	rng.Shuffle(len(order), func(a, b int) { order[a], order[b] = order[b], order[a] })
	for _, j := range order {
		if len(out) >= n {
			break
		}
		if gloss := words[j].Base; !seen[gloss] {
			seen[gloss] = true
			out = append(out, gloss)
		}
	}

	rng.Shuffle(len(out), func(a, b int) { out[a], out[b] = out[b], out[a] })
	return out
}
