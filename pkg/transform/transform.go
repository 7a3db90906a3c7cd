// Package transform builds the SVG transform attributes that pose the bug.
//
// A [Transform] rotates an element about its pivot, then translates, then
// scales. Rotation angles are whole degrees in [0, 360); negative draws wrap
// by adding 360 (see [Normalize]).
package transform

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/beevik/etree"

	"github.com/matzehuels/bugmaker/pkg/svgdoc"
)

// Attr is the attribute written by [Apply].
const Attr = "transform"

// Transform is a rotate-translate-scale pose.
type Transform struct {
	PivotX, PivotY string // kept as template text
	Rotation       int    // degrees in [0, 360)
	DeltaX, DeltaY int
	Scale          float64
}

// FromAngle returns a pure rotation about p.
func FromAngle(p svgdoc.Pivot, angle int) Transform {
	return Transform{
		PivotX:   p.X,
		PivotY:   p.Y,
		Rotation: Normalize(angle),
		Scale:    1,
	}
}

// String renders t in transform-attribute syntax, always in the order
// rotate, translate, scale.
func (t Transform) String() string {
	return fmt.Sprintf("rotate(%d %s %s) translate(%d %d) scale(%s)",
		Normalize(t.Rotation), t.PivotX, t.PivotY,
		t.DeltaX, t.DeltaY,
		strconv.FormatFloat(t.Scale, 'f', -1, 64))
}

// Apply overwrites el's transform attribute with t. No other attribute is touched.
func Apply(el *etree.Element, t Transform) {
	el.CreateAttr(Attr, t.String())
}

// SetRotation writes a bare rotate(deg) transform, used for the slight tilt
// on text containers.
func SetRotation(el *etree.Element, deg float64) {
	el.CreateAttr(Attr, "rotate("+strconv.FormatFloat(deg, 'f', -1, 64)+")")
}

// Normalize maps any whole-degree angle into [0, 360).
func Normalize(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

// RandomAngle draws a whole degree uniformly from [lo, hi] and normalizes it.
// Bounds may be negative ("left of zero"); callers must pass lo <= hi.
func RandomAngle(rng *rand.Rand, lo, hi int) int {
	return Normalize(RandomInt(rng, lo, hi))
}

// RandomInt draws uniformly from the inclusive range [lo, hi].
func RandomInt(rng *rand.Rand, lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("transform: empty range [%d, %d]", lo, hi))
	}
	return lo + rng.IntN(hi-lo+1)
}

// Mirror returns the angle that mirrors deg across the vertical axis.
func Mirror(deg int) int {
	return Normalize(360 - deg)
}
