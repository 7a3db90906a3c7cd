// Package traits holds the randomization policy for a bug: colors, name and
// the rarity score they add up to.
//
// Every random choice is a [Table] of (value, weight) pairs sampled by
// [Table.Pick], so the weights and the rarity each choice carries sit side
// by side and can be audited in one place. All draws take an explicit
// *rand.Rand; nothing here touches the global source.
package traits

import (
	"fmt"
	"math/rand/v2"
)

// Weighted pairs a value with its relative selection weight.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// Table is a weighted distribution over T.
type Table[T any] []Weighted[T]

// Choice is a value tagged with the rarity it contributes when drawn.
type Choice[T any] struct {
	Value  T
	Rarity int
}

// Total returns the sum of all weights.
func (t Table[T]) Total() float64 {
	var sum float64
	for _, w := range t {
		sum += w.Weight
	}
	return sum
}

// Pick draws one value with probability proportional to its weight.
// It panics on an empty table or a non-positive total weight.
func (t Table[T]) Pick(rng *rand.Rand) T {
	total := t.Total()
	if len(t) == 0 || total <= 0 {
		panic(fmt.Sprintf("traits: cannot sample table of %d entries with total weight %g", len(t), total))
	}

	x := rng.Float64() * total
	last := 0
	for i, w := range t {
		if w.Weight <= 0 {
			continue
		}
		if x < w.Weight {
			return w.Value
		}
		x -= w.Weight
		last = i
	}
	// rounding can leave x marginally above the final bucket
	return t[last].Value
}

// Probability returns the chance of drawing entry i.
func (t Table[T]) Probability(i int) float64 {
	return t[i].Weight / t.Total()
}

// uniform picks one element of a list with equal weights.
func uniform[T any](rng *rand.Rand, list []T) T {
	return list[rng.IntN(len(list))]
}
