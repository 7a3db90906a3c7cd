package traits

import (
	"math/rand/v2"
	"strings"
)

// Name grammar symbols.
const (
	SymPrefix = "P"
	SymType   = "T"
	SymBase   = "B"
)

// Vocabulary maps each grammar symbol to the words it expands to.
var Vocabulary = map[string][]string{
	SymPrefix: {"African", "European", "Russian", "American"},
	SymBase:   {"Ladybug", "Bug", "Insect"},
	SymType:   {"Goliath", "Carpenter", "Paper", "Flying", "Stone", "Sun", "Wolf", "Blood", "Sugar"},
}

// NameForms lists the name shapes. Longer names are rarer.
var NameForms = Table[Choice[string]]{
	{Choice[string]{"B", 1}, 0.5},
	{Choice[string]{"T B", 2}, 0.2},
	{Choice[string]{"P B", 2}, 0.2},
	{Choice[string]{"P T B", 4}, 0.1},
}

// GenerateName draws a name form and expands it.
func GenerateName(rng *rand.Rand) (string, int) {
	form := NameForms.Pick(rng)
	return Expand(rng, form.Value), form.Rarity
}

// Expand replaces every symbol of form with a random word from Vocabulary.
// Tokens that are not symbols are kept as written.
func Expand(rng *rand.Rand, form string) string {
	symbols := strings.Fields(form)
	words := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		if list, ok := Vocabulary[sym]; ok {
			words = append(words, uniform(rng, list))
			continue
		}
		words = append(words, sym)
	}
	return strings.Join(words, " ")
}
