package traits

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/lucasb-eyer/go-colorful"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func TestTablePickSkipsZeroWeights(t *testing.T) {
	table := Table[string]{{"never", 0}, {"always", 3}, {"nope", 0}}
	rng := newRand(1)
	for range 1000 {
		if got := table.Pick(rng); got != "always" {
			t.Fatalf("Pick() = %q, want always", got)
		}
	}
}

func TestTablePickDistribution(t *testing.T) {
	rng := newRand(42)
	counts := map[string]int{}
	const n = 20000
	for range n {
		counts[BugPalette.Pick(rng).Value.Name]++
	}

	want := map[string]float64{"orange": 0.40, "green": 0.30, "blue": 0.15, "cyan": 0.10, "pink": 0.05}
	for name, p := range want {
		got := float64(counts[name]) / n
		if got < p-0.02 || got > p+0.02 {
			t.Errorf("P(%s) = %.3f, want %.2f±0.02", name, got, p)
		}
	}
}

func TestTablePickEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Pick on empty table did not panic")
		}
	}()
	Table[int]{}.Pick(newRand(1))
}

func TestProbability(t *testing.T) {
	if p := NameForms.Probability(3); p < 0.099 || p > 0.101 {
		t.Errorf("P(P T B) = %g, want 0.1", p)
	}
	if p := BackgroundPalette.Probability(0); p != 0.6 {
		t.Errorf("P(tan) = %g, want 0.6", p)
	}
}

func TestPaletteRarities(t *testing.T) {
	wantBug := map[string]int{"orange": 1, "green": 2, "blue": 4, "cyan": 6, "pink": 8}
	for _, w := range BugPalette {
		if got := w.Value.Rarity; got != wantBug[w.Value.Value.Name] {
			t.Errorf("rarity(%s) = %d, want %d", w.Value.Value.Name, got, wantBug[w.Value.Value.Name])
		}
	}

	wantBg := map[string]int{"tan": 1, "sky": 2, "grass": 3}
	for _, w := range BackgroundPalette {
		if got := w.Value.Rarity; got != wantBg[w.Value.Value.Name] {
			t.Errorf("rarity(%s) = %d, want %d", w.Value.Value.Name, got, wantBg[w.Value.Value.Name])
		}
	}
}

func TestBlend(t *testing.T) {
	got := Blend(Gray(100), Grass.Color).Hex()
	// (100+134)/2, (100+218)/2, (100+128)/2
	if got != "#759f72" {
		t.Errorf("Blend(gray100, grass) = %s, want #759f72", got)
	}
}

func TestPickBugColor(t *testing.T) {
	rng := newRand(9)
	for range 200 {
		c := PickBugColor(rng)
		if c.Tone < 0 || c.Tone > MaxTone {
			t.Fatalf("tone = %d", c.Tone)
		}
		gray := Gray(c.Tone)
		if c.Body.Hex() != Blend(gray, c.Base.Color).Hex() {
			t.Fatalf("body %s is not gray %d blended with %s", c.Body.Hex(), c.Tone, c.Base.Name)
		}
		if c.Wings.Hex() != Blend(gray, c.Body).Hex() {
			t.Fatalf("wings %s is not gray blended with body", c.Wings.Hex())
		}
	}
}

func TestPickBackgroundColor(t *testing.T) {
	rng := newRand(5)
	seen := map[string]bool{}
	for range 500 {
		s, r := PickBackgroundColor(rng)
		seen[s.Name] = true
		if r < 1 || r > 3 {
			t.Fatalf("rarity = %d", r)
		}
	}
	if len(seen) != 3 {
		t.Errorf("backgrounds seen = %v, want all three", seen)
	}
}

func TestGenerateName(t *testing.T) {
	rng := newRand(11)
	for range 500 {
		name, rarity := GenerateName(rng)
		words := strings.Split(name, " ")
		if strings.HasPrefix(name, " ") || strings.HasSuffix(name, " ") || strings.Contains(name, "  ") {
			t.Fatalf("name %q has stray separators", name)
		}
		if !slices.Contains(Vocabulary[SymBase], words[len(words)-1]) {
			t.Fatalf("name %q does not end with a base noun", name)
		}

		wantRarity := map[int]int{1: 1, 2: 2, 3: 4}[len(words)]
		if rarity != wantRarity {
			t.Fatalf("GenerateName() = %q rarity %d, want %d", name, rarity, wantRarity)
		}
		if len(words) == 2 && !slices.Contains(Vocabulary[SymType], words[0]) && !slices.Contains(Vocabulary[SymPrefix], words[0]) {
			t.Fatalf("name %q: %q is neither prefix nor type", name, words[0])
		}
		if len(words) == 3 && (!slices.Contains(Vocabulary[SymPrefix], words[0]) || !slices.Contains(Vocabulary[SymType], words[1])) {
			t.Fatalf("name %q is not prefix type base", name)
		}
	}
}

func TestExpandKeepsLiterals(t *testing.T) {
	got := Expand(newRand(1), "The B")
	if !strings.HasPrefix(got, "The ") {
		t.Errorf("Expand(The B) = %q", got)
	}
}

func TestBand(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{3, Common},
		{5, Common},
		{6, Uncommon},
		{7, Uncommon},
		{8, Rare},
		{11, Rare},
		{12, Epic},
		{15, Epic},
	}

	for _, tt := range tests {
		if got := Band(tt.total); got != tt.want {
			t.Errorf("Band(%d) = %q, want %q", tt.total, got, tt.want)
		}
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		score Score
		total int
		label string
	}{
		{Score{Body: 1, Background: 1, Name: 1}, 3, "Common"},
		{Score{Body: 2, Background: 2, Name: 2}, 6, "Uncommon"},
		{Score{Body: 4, Background: 2, Name: 2}, 8, "Rare!"},
		{Score{Body: 8, Background: 2, Name: 2}, 12, "EPIC RARE!"},
		{Score{Body: 8, Background: 3, Name: 4}, 15, "EPIC RARE!"},
	}

	for _, tt := range tests {
		if got := tt.score.Total(); got != tt.total {
			t.Errorf("%+v.Total() = %d, want %d", tt.score, got, tt.total)
		}
		if got := tt.score.Label(); got != tt.label {
			t.Errorf("%+v.Label() = %q, want %q", tt.score, got, tt.label)
		}
	}
}

func TestSetColor(t *testing.T) {
	tests := []struct {
		name  string
		style string
		want  string
	}{
		{
			name:  "fill first",
			style: "fill:#ff8000;fill-opacity:1;stroke:#000000;stroke-width:1.5",
			want:  "fill:#0000ff;fill-opacity:1;stroke:#000000;stroke-width:1.5",
		},
		{
			name:  "fill in the middle",
			style: "opacity:0.9;fill:#AbC123;stroke-linecap:round",
			want:  "opacity:0.9;fill:#0000ff;stroke-linecap:round",
		},
		{
			name:  "no fill",
			style: "stroke:#123456;stroke-width:2",
			want:  "stroke:#123456;stroke-width:2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := etree.NewElement("path")
			el.CreateAttr("style", tt.style)
			el.CreateAttr("d", "M0 0")

			SetColor(el, Blue.Color)

			if got := el.SelectAttrValue("style", ""); got != tt.want {
				t.Errorf("style = %q, want %q", got, tt.want)
			}
			if el.SelectAttrValue("d", "") != "M0 0" {
				t.Error("d attribute changed")
			}
		})
	}
}

func TestSetColorWithoutStyle(t *testing.T) {
	el := etree.NewElement("path")
	SetColor(el, colorful.Color{R: 1})
	if el.SelectAttr("style") != nil {
		t.Error("SetColor created a style attribute")
	}
}

func TestSetFill(t *testing.T) {
	el := etree.NewElement("rect")
	el.CreateAttr("fill", "#ca8b49")
	SetFill(el, Sky.Color)
	if got := el.SelectAttrValue("fill", ""); got != "#80c1da" {
		t.Errorf("fill = %q, want #80c1da", got)
	}
}
