package quiz

import (
	"github.com/abhisek/vocabdrill/internal/composer"
	"github.com/abhisek/vocabdrill/internal/dataset"
	"github.com/abhisek/vocabdrill/internal/distractor"
)

// WordItems returns one item per dataset word, in dataset order.
func WordItems(ds *dataset.Dataset) []Item {
	items := make([]Item, 0, len(ds.Words))
	for i, w := range ds.Words {
		items = append(items, Item{
			ID:     "w-" + w.Target,
			Target: w.Target,
			Base:   w.Base,
			Word:   i,
		})
	}
	return items
}

// SentenceItems wraps composed sentences as items.
func SentenceItems(sentences []composer.Sentence) []Item {
	items := make([]Item, 0, len(sentences))
	for i := range sentences {
		s := sentences[i]
		items = append(items, Item{
			ID:       s.ID(),
			Target:   s.Target,
			Base:     s.Base,
			Word:     -1,
			Sentence: &s,
		})
	}
	return items
}

// ChoiceBuilder produces the multiple-choice options for an item. The
// item's base text must be among them.
type ChoiceBuilder interface {
	Choices(it Item) []string
}

// SentenceChoices varies one sentence component per distractor.
type SentenceChoices struct {
	Gen *distractor.Generator
}

func (c SentenceChoices) Choices(it Item) []string {
	if it.Sentence == nil {
		return []string{it.Base}
	}
	generated := c.Gen.Generate(it.Sentence.Indices)
	out := make([]string, len(generated))
	for i, ch := range generated {
		out[i] = ch.Text
	}
	return out
}

// WordChoices picks other glosses from a word list as distractors.
type WordChoices struct {
	Words []dataset.Entry
	Rand  Rand
	Size  int
}

func (c WordChoices) Choices(it Item) []string {
	if it.Word < 0 || it.Word >= len(c.Words) {
		return []string{it.Base}
	}
	return distractor.Words(c.Words, it.Word, c.Rand, c.Size)
}

// poolChoices draws distractors from the session's own items. It is used
// when no ChoiceBuilder is configured.
type poolChoices struct {
	entries []dataset.Entry
	index   map[string]int
	rng     Rand
	size    int
}

func newPoolChoices(items []Item, rng Rand, size int) *poolChoices {
	p := &poolChoices{index: make(map[string]int, len(items)), rng: rng, size: size}
	for _, it := range items {
		p.index[it.ID] = len(p.entries)
		p.entries = append(p.entries, dataset.Entry{Target: it.Target, Base: it.Base})
	}
	return p
}

func (p *poolChoices) Choices(it Item) []string {
	i, ok := p.index[it.ID]
	if !ok {
		return []string{it.Base}
	}
	return distractor.Words(p.entries, i, p.rng, p.size)
}
