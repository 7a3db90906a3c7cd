package bug

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/bugmaker/pkg/errors"
	"github.com/matzehuels/bugmaker/pkg/render"
	"github.com/matzehuels/bugmaker/pkg/svgdoc"
	"github.com/matzehuels/bugmaker/pkg/traits"
	"github.com/matzehuels/bugmaker/pkg/transform"
)

// Pose ranges in degrees. Left legs lean forward, right legs backward.
const (
	headTilt      = 20
	whiskerSwing  = 20
	wingSpreadMin = -40
	legLeftMin    = -10
	legLeftMax    = 40
	legRightMin   = -40
	legRightMax   = 10
	bugJitter     = 10
	textTilt      = 1.7
)

// bugPivot is the fixed rotation center of the whole bug, the middle of a
// 128x128 canvas.
var bugPivot = svgdoc.Pivot{X: "64", Y: "64"}

// Legs per side.
const Legs = 3

// Traits describes the most recent draw.
type Traits struct {
	Name       string
	Rarity     string
	Score      traits.Score
	Base       string // palette color name
	Tone       int
	Body       string // hex colors
	Wings      string
	Background string
	Scenery    string // background palette name
	Rotation   int
	Scale      float64
}

// Generator re-randomizes one parsed template.
type Generator struct {
	doc    *svgdoc.Document
	rng    *rand.Rand
	logger *log.Logger
	raster render.Rasterizer

	background *etree.Element
	bug        *etree.Element
	body       *etree.Element
	wingSprite [2]*etree.Element // left, right
	headSprite *etree.Element

	head       Part
	leftWing   Part
	rightWing  Part
	whiskers   [2]Part
	leftLegs   [Legs]Part
	rightLegs  [Legs]Part
	nameBox    *etree.Element
	rarityBox  *etree.Element
	nameText   *etree.CharData
	rarityText *etree.CharData

	traits Traits
	drawn  bool
}

// New opens the template at path and resolves every part.
func New(path string, opts ...Option) (*Generator, error) {
	doc, err := svgdoc.Open(path)
	if err != nil {
		return nil, err
	}
	return newGenerator(doc, opts)
}

// NewFromBytes parses an in-memory template.
func NewFromBytes(template []byte, opts ...Option) (*Generator, error) {
	doc, err := svgdoc.Parse(template)
	if err != nil {
		return nil, err
	}
	return newGenerator(doc, opts)
}

func newGenerator(doc *svgdoc.Document, opts []Option) (*Generator, error) {
	g := &Generator{doc: doc}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if g.logger == nil {
		g.logger = log.Default()
	}
	if g.raster == nil {
		g.raster = render.NewRSVG()
	}

	if err := g.resolve(); err != nil {
		doc.Close()
		return nil, err
	}
	g.logger.Debug("template resolved", "source", doc.Source())
	return g, nil
}

func (g *Generator) resolve() error {
	r := &resolver{source: g.doc.Source()}
	svg := g.doc.Root()

	g.background = r.tag(svg, "rect")
	layer1 := r.child(svg, "Layer 1")
	layer2 := r.child(svg, "Layer 2")

	g.bug = r.child(layer1, "GBug")
	g.body = r.child(g.bug, "body")

	g.leftWing = r.part(g.bug, "GLeftWing")
	g.wingSprite[0] = r.child(g.leftWing.El, "leftWing")
	g.rightWing = r.part(g.bug, "GRightWing")
	g.wingSprite[1] = r.child(g.rightWing.El, "rightWing")

	g.head = r.part(g.bug, "GHead")
	g.headSprite = r.child(g.head.El, "head")
	g.whiskers[0] = r.part(g.head.El, "GLeftWhisker")
	g.whiskers[1] = r.part(g.head.El, "GRightWhisker")

	for i := range Legs {
		g.leftLegs[i] = r.part(g.bug, fmt.Sprintf("GLeftHand%d", i+1))
		g.rightLegs[i] = r.part(g.bug, fmt.Sprintf("GRightHand%d", i+1))
	}

	g.nameBox = r.child(layer2, "BugName")
	g.nameText = r.text(g.nameBox)
	g.rarityBox = r.child(layer2, "RarityText")
	g.rarityText = r.text(g.rarityBox)

	return r.err
}

// Regenerate draws a new bug into the document.
func (g *Generator) Regenerate() {
	g.mustOpen()
	rng := g.rng

	scenery, bgRarity := traits.PickBackgroundColor(rng)
	traits.SetFill(g.background, scenery.Color)

	colors := traits.PickBugColor(rng)
	traits.SetColor(g.body, colors.Body)
	traits.SetColor(g.wingSprite[0], colors.Wings)
	traits.SetColor(g.wingSprite[1], colors.Wings)
	traits.SetColor(g.headSprite, colors.Wings)

	g.rotate(g.head, transform.RandomAngle(rng, -headTilt, headTilt))

	right := transform.RandomAngle(rng, wingSpreadMin, 0)
	g.rotate(g.leftWing, transform.Mirror(right))
	g.rotate(g.rightWing, right)

	for _, w := range g.whiskers {
		g.rotate(w, transform.RandomAngle(rng, -whiskerSwing, whiskerSwing))
	}

	for _, leg := range g.leftLegs {
		g.rotate(leg, transform.RandomAngle(rng, legLeftMin, legLeftMax))
	}
	for _, leg := range g.rightLegs {
		g.rotate(leg, transform.RandomAngle(rng, legRightMin, legRightMax))
	}

	pose := transform.Transform{
		PivotX:   bugPivot.X,
		PivotY:   bugPivot.Y,
		Rotation: transform.RandomAngle(rng, 0, 360),
		DeltaX:   transform.RandomInt(rng, -bugJitter, bugJitter),
		DeltaY:   transform.RandomInt(rng, -bugJitter, bugJitter),
		Scale:    rng.Float64() + 0.5,
	}
	transform.Apply(g.bug, pose)

	name, nameRarity := traits.GenerateName(rng)
	transform.SetRotation(g.nameBox, tilt(rng))
	g.nameText.Data = name

	score := traits.Score{Body: colors.Rarity, Background: bgRarity, Name: nameRarity}
	transform.SetRotation(g.rarityBox, tilt(rng))
	g.rarityText.Data = score.Label()

	g.traits = Traits{
		Name:       name,
		Rarity:     score.Label(),
		Score:      score,
		Base:       colors.Base.Name,
		Tone:       colors.Tone,
		Body:       colors.Body.Hex(),
		Wings:      colors.Wings.Hex(),
		Background: scenery.Color.Hex(),
		Scenery:    scenery.Name,
		Rotation:   pose.Rotation,
		Scale:      pose.Scale,
	}
	g.drawn = true

	g.logger.Debug("bug regenerated",
		"name", name,
		"rarity", g.traits.Rarity,
		"score", score.Total(),
		"color", colors.Base.Name,
		"background", scenery.Name)
}

func (g *Generator) rotate(p Part, angle int) {
	transform.Apply(p.El, transform.FromAngle(p.Pivot, angle))
}

func tilt(rng *rand.Rand) float64 {
	return rng.Float64()*2*textTilt - textTilt
}

// Traits returns the last draw. ok is false before the first Regenerate.
func (g *Generator) Traits() (t Traits, ok bool) {
	g.mustOpen()
	return g.traits, g.drawn
}

// SVG serializes the current document.
func (g *Generator) SVG() ([]byte, error) {
	g.mustOpen()
	return g.doc.Bytes()
}

// PNG rasterizes the current document.
func (g *Generator) PNG(ctx context.Context) ([]byte, error) {
	return g.Render(ctx, render.FormatPNG)
}

// Render returns the current document in format (svg, png or pdf).
func (g *Generator) Render(ctx context.Context, format string) ([]byte, error) {
	format = strings.ToLower(format)
	if err := errs.ValidateFormat(format); err != nil {
		return nil, err
	}
	svg, err := g.SVG()
	if err != nil {
		return nil, err
	}
	if format == render.FormatSVG {
		return svg, nil
	}
	out, err := g.raster.Rasterize(ctx, svg, format)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return out, nil
}

// Export writes the current document to path in format.
func (g *Generator) Export(ctx context.Context, path, format string) error {
	data, err := g.Render(ctx, format)
	if err != nil {
		return err
	}
	return render.WriteFile(path, data)
}

// ExportPNG writes the current document to path as PNG.
func (g *Generator) ExportPNG(ctx context.Context, path string) error {
	return g.Export(ctx, path, render.FormatPNG)
}

// Close releases the document. Any later call other than Close panics.
func (g *Generator) Close() error {
	return g.doc.Close()
}

func (g *Generator) mustOpen() {
	if g.doc.Closed() {
		panic("bug: use of closed generator")
	}
}
