package bug

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bugmaker/pkg/render"
)

// Option configures a [Generator].
type Option func(*Generator)

// WithSeed makes the generator reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.rng = NewRand(seed) }
}

// WithRand uses rng for every draw.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// WithLogger sets the logger (default log.Default()).
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithRasterizer sets the backend used by PNG and Export (default rsvg-convert).
func WithRasterizer(r render.Rasterizer) Option {
	return func(g *Generator) { g.raster = r }
}

// NewRand returns the PCG source used for a seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
