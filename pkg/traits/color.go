package traits

import (
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Swatch is a named palette color.
type Swatch struct {
	Name  string
	Color colorful.Color
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

var (
	Orange = Swatch{"orange", rgb(255, 128, 0)}
	Green  = Swatch{"green", rgb(0, 255, 0)}
	Blue   = Swatch{"blue", rgb(0, 0, 255)}
	Cyan   = Swatch{"cyan", rgb(0, 255, 255)}
	Pink   = Swatch{"pink", rgb(255, 0, 127)}

	Tan   = Swatch{"tan", rgb(202, 139, 73)}
	Sky   = Swatch{"sky", rgb(128, 193, 218)}
	Grass = Swatch{"grass", rgb(134, 218, 128)}
)

// BugPalette is the body color distribution. Rarer colors carry more rarity.
var BugPalette = Table[Choice[Swatch]]{
	{Choice[Swatch]{Orange, 1}, 40},
	{Choice[Swatch]{Green, 2}, 30},
	{Choice[Swatch]{Blue, 4}, 15},
	{Choice[Swatch]{Cyan, 6}, 10},
	{Choice[Swatch]{Pink, 8}, 5},
}

// BackgroundPalette is the background distribution. The rarity values are
// kept exactly as first shipped (tan 1, sky 2, grass 3); it is unclear
// whether they were meant to run the other way.
var BackgroundPalette = Table[Choice[Swatch]]{
	{Choice[Swatch]{Tan, 1}, 60},
	{Choice[Swatch]{Sky, 2}, 30},
	{Choice[Swatch]{Grass, 3}, 10},
}

// MaxTone is the brightest gray mixed into a bug's base color.
const MaxTone = 100

// BugColors is one draw of a bug's coloring.
type BugColors struct {
	Base   Swatch
	Tone   int // gray level in [0, MaxTone]
	Body   colorful.Color
	Wings  colorful.Color
	Rarity int
}

// Blend mixes a and b half and half.
func Blend(a, b colorful.Color) colorful.Color {
	return a.BlendRgb(b, 0.5)
}

// Gray returns the gray with all channels at level (0-255).
func Gray(level int) colorful.Color {
	v := float64(level) / 255
	return colorful.Color{R: v, G: v, B: v}
}

// PickBugColor draws a base color, dulls it with a random gray to get the
// body color, and blends the same gray once more into the body color to get
// the wing color.
func PickBugColor(rng *rand.Rand) BugColors {
	choice := BugPalette.Pick(rng)
	tone := rng.IntN(MaxTone + 1)
	gray := Gray(tone)

	body := Blend(gray, choice.Value.Color)
	return BugColors{
		Base:   choice.Value,
		Tone:   tone,
		Body:   body,
		Wings:  Blend(gray, body),
		Rarity: choice.Rarity,
	}
}

// PickBackgroundColor draws a background swatch and its rarity.
func PickBackgroundColor(rng *rand.Rand) (Swatch, int) {
	c := BackgroundPalette.Pick(rng)
	return c.Value, c.Rarity
}
