package transform

import (
	"math/rand/v2"
	"testing"

	"github.com/beevik/etree"

	"github.com/matzehuels/bugmaker/pkg/svgdoc"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		tr   Transform
		want string
	}{
		{
			name: "pure rotation",
			tr:   FromAngle(svgdoc.Pivot{X: "64.5", Y: "48"}, 15),
			want: "rotate(15 64.5 48) translate(0 0) scale(1)",
		},
		{
			name: "negative angle wraps",
			tr:   FromAngle(svgdoc.Pivot{X: "1", Y: "2"}, -20),
			want: "rotate(340 1 2) translate(0 0) scale(1)",
		},
		{
			name: "full pose",
			tr:   Transform{PivotX: "64", PivotY: "64", Rotation: 270, DeltaX: -7, DeltaY: 10, Scale: 1.25},
			want: "rotate(270 64 64) translate(-7 10) scale(1.25)",
		},
		{
			name: "full circle is zero",
			tr:   Transform{PivotX: "64", PivotY: "64", Rotation: 360, Scale: 0.5},
			want: "rotate(0 64 64) translate(0 0) scale(0.5)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyOverwritesOnlyTransform(t *testing.T) {
	el := etree.NewElement("g")
	el.CreateAttr("inkscape:label", "GHead")
	el.CreateAttr("transform", "matrix(1 0 0 1 0 0)")
	el.CreateAttr("id", "g42")

	Apply(el, FromAngle(svgdoc.Pivot{X: "3", Y: "4"}, 90))
	Apply(el, FromAngle(svgdoc.Pivot{X: "3", Y: "4"}, 45))

	if got := el.SelectAttrValue("transform", ""); got != "rotate(45 3 4) translate(0 0) scale(1)" {
		t.Errorf("transform = %q", got)
	}
	if len(el.Attr) != 3 {
		t.Errorf("attributes = %d, want 3", len(el.Attr))
	}
	if el.SelectAttrValue("id", "") != "g42" || el.SelectAttrValue("inkscape:label", "") != "GHead" {
		t.Error("unrelated attributes changed")
	}
}

func TestSetRotation(t *testing.T) {
	el := etree.NewElement("text")
	SetRotation(el, -1.25)
	if got := el.SelectAttrValue("transform", ""); got != "rotate(-1.25)" {
		t.Errorf("transform = %q, want rotate(-1.25)", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 0}, {359, 359}, {360, 0}, {-1, 359}, {-40, 320}, {-360, 0}, {725, 5},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRandomAngleRange(t *testing.T) {
	ranges := [][2]int{{-20, 20}, {-40, 0}, {-10, 40}, {-40, 10}, {0, 360}, {5, 5}}

	for seed := uint64(0); seed < 50; seed++ {
		rng := newRand(seed)
		for _, r := range ranges {
			for range 40 {
				a := RandomAngle(rng, r[0], r[1])
				if a < 0 || a >= 360 {
					t.Fatalf("RandomAngle(%d, %d) = %d, outside [0, 360)", r[0], r[1], a)
				}
			}
		}
	}
}

func TestRandomAngleCoversNegativeRange(t *testing.T) {
	rng := newRand(7)
	seen := map[int]bool{}
	for range 2000 {
		seen[RandomAngle(rng, -2, 2)] = true
	}
	for _, want := range []int{358, 359, 0, 1, 2} {
		if !seen[want] {
			t.Errorf("RandomAngle(-2, 2) never produced %d", want)
		}
	}
	if len(seen) != 5 {
		t.Errorf("RandomAngle(-2, 2) produced %d distinct values, want 5", len(seen))
	}
}

func TestRandomIntInclusive(t *testing.T) {
	rng := newRand(1)
	lo, hi := false, false
	for range 1000 {
		v := RandomInt(rng, -10, 10)
		if v < -10 || v > 10 {
			t.Fatalf("RandomInt(-10, 10) = %d", v)
		}
		lo = lo || v == -10
		hi = hi || v == 10
	}
	if !lo || !hi {
		t.Errorf("bounds not reached: lo=%v hi=%v", lo, hi)
	}
}

func TestRandomIntEmptyRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("RandomInt(1, 0) did not panic")
		}
	}()
	RandomInt(newRand(1), 1, 0)
}

func TestMirrorSymmetry(t *testing.T) {
	rng := newRand(3)
	for range 500 {
		right := RandomAngle(rng, -40, 0)
		left := Mirror(right)
		if left != (360-right)%360 {
			t.Fatalf("Mirror(%d) = %d, want %d", right, left, (360-right)%360)
		}
		if Normalize(left+right) != 0 {
			t.Fatalf("left %d + right %d does not cancel", left, right)
		}
	}
}
