package dataset

import (
	"fmt"
	"sort"
)

// builtins holds the datasets compiled into the binary, keyed by name.
var builtins = map[string]func() *Dataset{
	"food": foodDataset,
}

// DefaultName is the dataset used when none is configured.
const DefaultName = "food"

// Builtin returns a fresh copy of the named built-in dataset.
func Builtin(name string) (*Dataset, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in dataset %q", name)
	}
	return build(), nil
}

// BuiltinNames returns the names of all built-in datasets, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Qualifier indices of the food dataset, referenced by Allowed lists.
const (
	qSweet = iota
	qSpicy
	qFatty
	qDelicious
	qProtein
	qHealthy
	qSalty
)

func foodDataset() *Dataset {
	return &Dataset{
		Name:           "food",
		Description:    "Tasty French food words and opinions about them",
		TargetLanguage: "French",
		BaseLanguage:   "English",
		Grammar:        DefaultGrammar(),
		Words: []Entry{
			{Target: "le café", Base: "coffee"},
			{Target: "le chocolat", Base: "chocolate"},
			{Target: "le fromage", Base: "cheese"},
			{Target: "le jus de fruits", Base: "fruit juice"},
			{Target: "le lait", Base: "milk"},
			{Target: "le miel", Base: "honey"},
			{Target: "le pain", Base: "bread"},
			{Target: "le poisson", Base: "fish"},
			{Target: "le poulet rôti", Base: "roast chicken"},
			{Target: "le riz", Base: "rice"},
			{Target: "l'eau", Base: "water"},
			{Target: "la confiture", Base: "jam"},
			{Target: "la salade verte", Base: "green salad"},
			{Target: "la viande", Base: "meat"},
			{Target: "les aliments", Base: "food", Plural: true},
			{Target: "sucrés", Base: "sweet"},
			{Target: "épicés", Base: "spicy"},
			{Target: "gras", Base: "fatty"},
			{Target: "riches en protéines", Base: "rich in protein"},
		},
		Subjects: []Entry{
			{Target: "J'aime", Base: "I like", Group: "positive"},
			{Target: "J'adore", Base: "I love", Group: "positive"},
			{Target: "Je préfère", Base: "I prefer", Group: "positive"},
			{Target: "Je n'aime pas", Base: "I don't like", Group: "negative"},
			{Target: "Je déteste", Base: "I hate", Group: "negative"},
		},
		Nouns: []Entry{
			{Target: "le café", Base: "coffee", Gender: Masculine, Allowed: []int{qSweet, qDelicious}},
			{Target: "le chocolat", Base: "chocolate", Gender: Masculine, Allowed: []int{qSweet, qFatty, qDelicious}},
			{Target: "le fromage", Base: "cheese", Gender: Masculine, Allowed: []int{qFatty, qDelicious, qProtein, qSalty}},
			{Target: "le poisson", Base: "fish", Gender: Masculine, Allowed: []int{qDelicious, qProtein, qHealthy}},
			{Target: "le poulet rôti", Base: "roast chicken", Gender: Masculine, Allowed: []int{qSpicy, qDelicious, qProtein, qSalty}},
			{Target: "le miel", Base: "honey", Gender: Masculine, Allowed: []int{qSweet, qDelicious, qHealthy}},
			{Target: "la confiture", Base: "jam", Gender: Feminine, Allowed: []int{qSweet, qDelicious}},
			{Target: "la viande", Base: "meat", Gender: Feminine, Allowed: []int{qFatty, qDelicious, qProtein, qSalty}},
			{Target: "la salade verte", Base: "green salad", Gender: Feminine, Allowed: []int{qDelicious, qHealthy}},
			{Target: "les frites", Base: "chips", Plural: true, Gender: Feminine, Allowed: []int{qFatty, qDelicious, qSalty}},
			{Target: "les fraises", Base: "strawberries", Plural: true, Gender: Feminine, Allowed: []int{qSweet, qDelicious, qHealthy}},
			{Target: "les croissants", Base: "croissants", Plural: true, Gender: Masculine, Allowed: []int{qSweet, qFatty, qDelicious}},
			{Target: "les légumes", Base: "vegetables", Plural: true, Gender: Masculine, Allowed: []int{qDelicious, qHealthy}},
			{Target: "les currys", Base: "curries", Plural: true, Gender: Masculine, Allowed: []int{qSpicy, qFatty, qDelicious}},
		},
		Qualifiers: []Entry{
			{Target: "sucré", Base: "sweet", Forms: Forms{Singular: "sucré", PluralM: "sucrés", PluralF: "sucrées"}},
			{Target: "épicé", Base: "spicy", Forms: Forms{Singular: "épicé", PluralM: "épicés", PluralF: "épicées"}},
			{Target: "gras", Base: "fatty", Forms: Forms{Singular: "gras", PluralM: "gras", PluralF: "grasses"}},
			{Target: "délicieux", Base: "delicious", Forms: Forms{Singular: "délicieux", PluralM: "délicieux", PluralF: "délicieuses"}},
			{Target: "riche en protéines", Base: "rich in protein", Forms: Forms{Singular: "riche en protéines", PluralM: "riches en protéines"}},
			{Target: "bon pour la santé", Base: "healthy", Forms: Forms{Singular: "bon pour la santé", PluralM: "bons pour la santé", PluralF: "bonnes pour la santé"}},
			{Target: "salé", Base: "salty", Forms: Forms{Singular: "salé", PluralM: "salés", PluralF: "salées"}},
		},
	}
}
