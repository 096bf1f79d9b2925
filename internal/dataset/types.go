package dataset

// Gender is the grammatical gender of a target-language noun.
type Gender string

const (
	Masculine Gender = "m"
	Feminine  Gender = "f"
)

// Category is one axis of sentence composition.
type Category int

const (
	CategorySubject Category = iota
	CategoryNoun
	CategoryQualifier
)

// Categories returns all composition categories in sentence order.
func Categories() []Category {
	return []Category{CategorySubject, CategoryNoun, CategoryQualifier}
}

// String returns the category label used in progress displays.
func (c Category) String() string {
	switch c {
	case CategorySubject:
		return "subjects"
	case CategoryNoun:
		return "nouns"
	case CategoryQualifier:
		return "qualifiers"
	default:
		return "unknown"
	}
}

// Forms holds the agreed target-language forms of a qualifier.
// Empty forms fall back to the next less specific one.
type Forms struct {
	Singular string `json:"singular,omitempty" yaml:"singular,omitempty"`
	PluralM  string `json:"plural_m,omitempty" yaml:"plural_m,omitempty"`
	PluralF  string `json:"plural_f,omitempty" yaml:"plural_f,omitempty"`
}

// Entry is one tagged surface-form pair of a category table.
type Entry struct {
	// Target is the foreign-language form, e.g. "le café".
	Target string `json:"target" yaml:"target"`

	// Base is the native-language form, e.g. "coffee".
	Base string `json:"base" yaml:"base"`

	// Plural marks nouns that take the plural connective clause.
	Plural bool `json:"plural,omitempty" yaml:"plural,omitempty"`

	// Gender selects the plural pronoun. Empty is treated as masculine.
	Gender Gender `json:"gender,omitempty" yaml:"gender,omitempty"`

	// Group is the polarity or verb group of a subject ("positive", "negative").
	// Distractors prefer subjects from the same group.
	Group string `json:"group,omitempty" yaml:"group,omitempty"`

	// Forms carries the agreed forms of a qualifier.
	Forms Forms `json:"forms,omitempty" yaml:"forms,omitempty"`

	// Allowed lists the qualifier indices a noun can be combined with.
	// Empty means every qualifier is allowed.
	Allowed []int `json:"allowed,omitempty" yaml:"allowed,omitempty"`
}

// Accepts reports whether a noun entry can be combined with qualifier q.
func (e Entry) Accepts(q int) bool {
	if len(e.Allowed) == 0 {
		return true
	}
	for _, a := range e.Allowed {
		if a == q {
			return true
		}
	}
	return false
}

// Grammar holds the connective clauses placed between noun and qualifier.
type Grammar struct {
	TargetSingular string `json:"target_singular,omitempty" yaml:"target_singular,omitempty"`
	TargetPluralM  string `json:"target_plural_m,omitempty" yaml:"target_plural_m,omitempty"`
	TargetPluralF  string `json:"target_plural_f,omitempty" yaml:"target_plural_f,omitempty"`
	BaseSingular   string `json:"base_singular,omitempty" yaml:"base_singular,omitempty"`
	BasePlural     string `json:"base_plural,omitempty" yaml:"base_plural,omitempty"`
}

// DefaultGrammar returns the French/English connectives.
func DefaultGrammar() Grammar {
	return Grammar{
		TargetSingular: "parce que c'est",
		TargetPluralM:  "parce qu'ils sont",
		TargetPluralF:  "parce qu'elles sont",
		BaseSingular:   "because it is",
		BasePlural:     "because they are",
	}
}

// WithDefaults fills empty clauses from DefaultGrammar.
func (g Grammar) WithDefaults() Grammar {
	d := DefaultGrammar()
	if g.TargetSingular == "" {
		g.TargetSingular = d.TargetSingular
	}
	if g.TargetPluralM == "" {
		g.TargetPluralM = d.TargetPluralM
	}
	if g.TargetPluralF == "" {
		g.TargetPluralF = g.TargetPluralM
	}
	if g.BaseSingular == "" {
		g.BaseSingular = d.BaseSingular
	}
	if g.BasePlural == "" {
		g.BasePlural = d.BasePlural
	}
	return g
}

// Dataset is the immutable drill universe: a flat word list and/or the
// category tables sentences are composed from.
type Dataset struct {
	Name           string  `json:"name" yaml:"name"`
	Description    string  `json:"description,omitempty" yaml:"description,omitempty"`
	TargetLanguage string  `json:"target_language,omitempty" yaml:"target_language,omitempty"`
	BaseLanguage   string  `json:"base_language,omitempty" yaml:"base_language,omitempty"`
	Grammar        Grammar `json:"grammar,omitempty" yaml:"grammar,omitempty"`
	Words          []Entry `json:"words,omitempty" yaml:"words,omitempty"`
	Subjects       []Entry `json:"subjects,omitempty" yaml:"subjects,omitempty"`
	Nouns          []Entry `json:"nouns,omitempty" yaml:"nouns,omitempty"`
	Qualifiers     []Entry `json:"qualifiers,omitempty" yaml:"qualifiers,omitempty"`
}

// HasWords reports whether the dataset supports word mode.
func (d *Dataset) HasWords() bool {
	return len(d.Words) > 0
}

// HasSentences reports whether the dataset supports sentence mode.
func (d *Dataset) HasSentences() bool {
	return len(d.Subjects) > 0 && len(d.Nouns) > 0 && len(d.Qualifiers) > 0
}

// Table returns the entries of one composition category.
func (d *Dataset) Table(c Category) []Entry {
	switch c {
	case CategorySubject:
		return d.Subjects
	case CategoryNoun:
		return d.Nouns
	case CategoryQualifier:
		return d.Qualifiers
	default:
		return nil
	}
}

// Gated reports whether any noun restricts its qualifiers.
func (d *Dataset) Gated() bool {
	for _, n := range d.Nouns {
		if len(n.Allowed) > 0 {
			return true
		}
	}
	return false
}

// Languages returns the target and base language names with defaults applied.
func (d *Dataset) Languages() (target, base string) {
	target, base = d.TargetLanguage, d.BaseLanguage
	if target == "" {
		target = "French"
	}
	if base == "" {
		base = "English"
	}
	return target, base
}
