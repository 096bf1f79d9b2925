package distractor

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/vocabdrill/internal/composer"
	"github.com/abhisek/vocabdrill/internal/dataset"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed*7+1))
}

func food(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Builtin("food")
	require.NoError(t, err)
	return ds
}

func differingAxes(a, b composer.Indices) int {
	n := 0
	for _, c := range dataset.Categories() {
		if a.Get(c) != b.Get(c) {
			n++
		}
	}
	return n
}

func TestGenerateProperties(t *testing.T) {
	ds := food(t)
	g := New(ds, seeded(1))

	for _, s := range composer.All(ds) {
		choices := g.Generate(s.Indices)
		require.GreaterOrEqual(t, len(choices), 2, s.ID())
		require.LessOrEqual(t, len(choices), 4, s.ID())

		correct := 0
		texts := make(map[string]bool)
		for _, c := range choices {
			assert.False(t, texts[c.Text], "duplicate option %q for %s", c.Text, s.ID())
			texts[c.Text] = true

			if c.Correct {
				correct++
				assert.Equal(t, s.Base, c.Text)
				assert.Equal(t, s.Indices, c.Indices)
				continue
			}
			assert.Equal(t, 1, differingAxes(s.Indices, c.Indices), "%s vs %+v", s.ID(), c.Indices)
			assert.Equal(t, composer.Compose(ds, c.Indices).Base, c.Text)

			noun := ds.Nouns[c.Indices.Noun]
			assert.Equal(t, ds.Nouns[s.Indices.Noun].Plural, noun.Plural)
			assert.True(t, noun.Accepts(c.Indices.Qualifier), "distractor %+v breaks gating", c.Indices)
		}
		assert.Equal(t, 1, correct, s.ID())
	}
}

func TestGenerateFoodAlwaysFull(t *testing.T) {
	ds := food(t)
	g := New(ds, seeded(3))
	for _, s := range composer.All(ds) {
		assert.Len(t, g.Generate(s.Indices), DefaultSize, s.ID())
	}
}

func TestGeneratePluralNeverSingular(t *testing.T) {
	ds := food(t)
	g := New(ds, seeded(9))

	for _, s := range composer.All(ds) {
		if !ds.Nouns[s.Indices.Noun].Plural {
			continue
		}
		for i := 0; i < 5; i++ {
			for _, c := range g.Generate(s.Indices) {
				assert.Contains(t, c.Text, "because they are")
				assert.NotContains(t, c.Text, "because it is")
				target := composer.Compose(ds, c.Indices).Target
				assert.False(t, strings.Contains(target, "c'est"), target)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	ds := food(t)
	idx := composer.Indices{Subject: 2, Noun: 9, Qualifier: 3}
	a := New(ds, seeded(5)).Generate(idx)
	b := New(ds, seeded(5)).Generate(idx)
	assert.Equal(t, a, b)
}

func TestGenerateSubjectGroupPreferred(t *testing.T) {
	ds := &dataset.Dataset{
		Name: "subjects-only",
		Subjects: []dataset.Entry{
			{Target: "J'aime", Base: "I like", Group: "positive"},
			{Target: "Je déteste", Base: "I hate", Group: "negative"},
			{Target: "J'adore", Base: "I love", Group: "positive"},
			{Target: "Je n'aime pas", Base: "I don't like", Group: "negative"},
			{Target: "Je préfère", Base: "I prefer", Group: "positive"},
		},
		Nouns:      []dataset.Entry{{Target: "le pain", Base: "bread"}},
		Qualifiers: []dataset.Entry{{Target: "bon", Base: "good"}},
	}

	for seed := uint64(0); seed < 20; seed++ {
		choices := New(ds, seeded(seed)).Generate(composer.Indices{})
		require.Len(t, choices, 4)
		got := make(map[int]bool)
		for _, c := range choices {
			got[c.Indices.Subject] = true
		}
		assert.True(t, got[2] && got[4], "seed %d: same-group subjects missing: %v", seed, got)
	}
}

func TestGenerateShortfallLogged(t *testing.T) {
	ds := &dataset.Dataset{
		Name:       "tiny",
		Subjects:   []dataset.Entry{{Target: "J'aime", Base: "I like"}},
		Nouns:      []dataset.Entry{{Target: "le thé", Base: "tea"}},
		Qualifiers: []dataset.Entry{{Target: "chaud", Base: "hot"}, {Target: "froid", Base: "cold"}},
	}
	core, logs := observer.New(zapcore.DebugLevel)

	choices := New(ds, seeded(1), WithLogger(zap.New(core))).Generate(composer.Indices{})
	assert.Len(t, choices, 2)
	require.Equal(t, 1, logs.FilterMessage("distractor shortfall").Len())
	assert.Equal(t, int64(2), logs.All()[0].ContextMap()["options"])
}

func TestGenerateGatedQualifiers(t *testing.T) {
	ds := &dataset.Dataset{
		Name:     "gated",
		Subjects: []dataset.Entry{{Target: "J'aime", Base: "I like"}},
		Nouns: []dataset.Entry{
			{Target: "le café", Base: "coffee", Allowed: []int{0, 1}},
			{Target: "le thé", Base: "tea", Allowed: []int{0}},
			{Target: "le riz", Base: "rice", Allowed: []int{2}},
		},
		Qualifiers: []dataset.Entry{
			{Target: "sucré", Base: "sweet"},
			{Target: "chaud", Base: "hot"},
			{Target: "salé", Base: "salty"},
		},
	}

	for seed := uint64(0); seed < 10; seed++ {
		choices := New(ds, seeded(seed)).Generate(composer.Indices{Noun: 0, Qualifier: 0})
		texts := make([]string, 0, len(choices))
		for _, c := range choices {
			texts = append(texts, c.Text)
		}
		assert.ElementsMatch(t, []string{
			"I like coffee because it is sweet.",
			"I like coffee because it is hot.",
			"I like tea because it is sweet.",
		}, texts)
	}
}

func TestWithSize(t *testing.T) {
	ds := food(t)
	idx := composer.Indices{}
	assert.Len(t, New(ds, seeded(1), WithSize(3)).Generate(idx), 3)
	assert.Len(t, New(ds, seeded(1), WithSize(9)).Generate(idx), DefaultSize)
}

func TestWords(t *testing.T) {
	ds := food(t)
	for i := range ds.Words {
		choices := Words(ds.Words, i, seeded(uint64(i)), 4)
		require.Len(t, choices, 4)
		assert.Contains(t, choices, ds.Words[i].Base)

		seen := make(map[string]bool)
		for _, c := range choices {
			assert.False(t, seen[c], "duplicate %q", c)
			seen[c] = true
		}
	}

	single := []dataset.Entry{{Target: "le pain", Base: "bread"}}
	assert.Equal(t, []string{"bread"}, Words(single, 0, seeded(1), 4))
}
