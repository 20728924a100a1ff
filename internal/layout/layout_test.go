package layout

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

// monoMeasurer sizes every rune as a fixed cell.
type monoMeasurer struct {
	cellW, cellH float64
	calls        int
}

func (m *monoMeasurer) Measure(s string, size float64) (float64, float64) {
	m.calls++
	return float64(len([]rune(s))) * m.cellW, m.cellH
}

const tol = 1e-9

func names(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('A' + i))
	}
	return out
}

func TestSpokeZeroPointsUp(t *testing.T) {
	g := NewWithT(t)
	for n := 1; n <= 9; n++ {
		l := Compute(Params{Names: names(n), MaxValue: 5, Width: 400, Height: 400, Gravity: Center}, &monoMeasurer{cellW: 6, cellH: 8})
		top, ok := l.Point(0, 5)
		g.Expect(ok).To(BeTrue())
		g.Expect(top.X).To(BeNumerically("~", l.Center.X, tol), "n=%d", n)
		g.Expect(top.Y).To(BeNumerically("~", l.Center.Y-l.Radius, tol), "n=%d", n)
	}
}

func TestPointsLieOnSpoke(t *testing.T) {
	g := NewWithT(t)
	for _, max := range []int{1, 3, 5, 10} {
		l := Compute(Params{Names: names(7), MaxValue: max, Offset: 0.7, Width: 320, Height: 240, Gravity: Center}, &monoMeasurer{cellW: 5, cellH: 7})
		for i := 0; i < l.Spokes(); i++ {
			outer := l.Points[i][max]
			for v := 0; v <= max; v++ {
				frac := float64(v) / float64(max)
				p := l.Points[i][v]
				g.Expect(p.X).To(BeNumerically("~", l.Center.X+frac*(outer.X-l.Center.X), 1e-6))
				g.Expect(p.Y).To(BeNumerically("~", l.Center.Y+frac*(outer.Y-l.Center.Y), 1e-6))
			}
		}
	}
}

func TestRadiusAndPadding(t *testing.T) {
	m := &monoMeasurer{cellW: 6, cellH: 8}
	l := Compute(Params{Names: []string{"Astringent", "Oak"}, MaxValue: 4, Width: 400, Height: 300, Gravity: Center}, m)

	// widest label is "Astringent" (10 cells) over the 5-cell sample
	if l.HPad != 60 {
		t.Errorf("expected hPad 60, got %f", l.HPad)
	}
	if l.VPad != 8 {
		t.Errorf("expected vPad 8, got %f", l.VPad)
	}
	expected := 150.0 - 60 - 8
	if math.Abs(l.Radius-expected) > tol {
		t.Errorf("expected radius %f, got %f", expected, l.Radius)
	}
	if math.Abs(l.RingStep-expected/4) > tol {
		t.Errorf("expected ring step %f, got %f", expected/4, l.RingStep)
	}
	if l.LabelSize != 150.0/12 {
		t.Errorf("expected label size %f, got %f", 150.0/12, l.LabelSize)
	}
}

func TestGravity(t *testing.T) {
	m := &monoMeasurer{cellW: 4, cellH: 10}
	base := Params{Names: names(3), MaxValue: 5, Width: 500, Height: 300}

	tests := []struct {
		name    string
		gravity Gravity
		x, y    func(l *Layout) float64
	}{
		{"center", Center, func(*Layout) float64 { return 250 }, func(*Layout) float64 { return 150 }},
		{"none", 0, func(*Layout) float64 { return 250 }, func(*Layout) float64 { return 150 }},
		{"left top", Left | Top,
			func(l *Layout) float64 { return l.Radius + l.HPad },
			func(l *Layout) float64 { return l.Radius + 3*l.VPad }},
		{"right bottom", Right | Bottom,
			func(l *Layout) float64 { return 500 - (l.Radius + l.HPad) },
			func(l *Layout) float64 { return 300 - (l.Radius + 3*l.VPad) }},
		{"conflicting horizontal", Left | Right | Top,
			func(*Layout) float64 { return 250 },
			func(l *Layout) float64 { return l.Radius + 3*l.VPad }},
		{"end is right", End | CenterVertical,
			func(l *Layout) float64 { return 500 - (l.Radius + l.HPad) },
			func(*Layout) float64 { return 150 }},
	}

	for _, tt := range tests {
		p := base
		p.Gravity = tt.gravity
		l := Compute(p, m)
		if math.Abs(l.Center.X-tt.x(l)) > tol {
			t.Errorf("%s: expected center x %f, got %f", tt.name, tt.x(l), l.Center.X)
		}
		if math.Abs(l.Center.Y-tt.y(l)) > tol {
			t.Errorf("%s: expected center y %f, got %f", tt.name, tt.y(l), l.Center.Y)
		}
	}
}

func TestDegenerateInputs(t *testing.T) {
	g := NewWithT(t)
	m := &monoMeasurer{cellW: 6, cellH: 8}

	empty := Compute(Params{MaxValue: 5, Width: 200, Height: 200, Gravity: Center}, m)
	g.Expect(empty.Spokes()).To(Equal(0))
	g.Expect(empty.RingStep).To(BeNumerically(">", 0))

	flat := Compute(Params{Names: names(4), MaxValue: 0, Width: 200, Height: 200, Gravity: Center}, m)
	g.Expect(flat.RingStep).To(BeZero())
	for i := 0; i < flat.Spokes(); i++ {
		g.Expect(flat.Points[i]).To(HaveLen(1))
		g.Expect(flat.Points[i][0]).To(Equal(flat.Center))
	}

	tiny := Compute(Params{Names: names(2), MaxValue: 3, Width: 10, Height: 10, Gravity: Center}, m)
	g.Expect(tiny.Radius).To(BeZero())
}

func TestLabelAnchors(t *testing.T) {
	m := &monoMeasurer{cellW: 6, cellH: 8}
	l := Compute(Params{Names: names(4), MaxValue: 4, Width: 400, Height: 400, Gravity: Center}, m)

	top := l.Labels[0]
	if math.Abs(top.X-l.Center.X) > tol {
		t.Errorf("expected top label centered, got x=%f", top.X)
	}
	wantY := l.Center.Y - (l.Radius + l.RingStep) + l.VPad/2
	if math.Abs(top.Y-wantY) > tol {
		t.Errorf("expected top label y %f, got %f", wantY, top.Y)
	}

	aligns := []Align{AlignCenter, AlignLeft, AlignCenter, AlignRight}
	for i, want := range aligns {
		if got := l.LabelAlign(i); got != want {
			t.Errorf("spoke %d: expected %s, got %s", i, want, got)
		}
	}
}

func TestClockwiseOrder(t *testing.T) {
	l := Compute(Params{Names: names(4), MaxValue: 1, Width: 200, Height: 200, Gravity: Center}, &monoMeasurer{cellW: 1, cellH: 1})
	right := l.Points[1][1]
	if right.X <= l.Center.X || math.Abs(right.Y-l.Center.Y) > 1e-9 {
		t.Errorf("expected spoke 1 to point right, got %+v (center %+v)", right, l.Center)
	}
}

func TestPolygon(t *testing.T) {
	l := Compute(Params{Names: names(3), MaxValue: 4, Width: 200, Height: 200, Gravity: Center}, &monoMeasurer{cellW: 2, cellH: 4})
	poly := l.Polygon([]int{1, 9, -2})
	if len(poly) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(poly))
	}
	if poly[0] != l.Points[0][1] || poly[1] != l.Points[1][4] || poly[2] != l.Points[2][0] {
		t.Errorf("unexpected polygon %+v", poly)
	}
}

func TestEngineCache(t *testing.T) {
	m := &monoMeasurer{cellW: 6, cellH: 8}
	e := NewEngine(m)
	p := Params{Names: names(3), MaxValue: 5, Width: 200, Height: 200}

	first := e.Layout(p)
	calls := m.calls
	p.Offset = 1
	if e.Layout(p) != first {
		t.Error("expected cached layout before invalidation")
	}
	if m.calls != calls {
		t.Error("expected no measurement on cache hit")
	}

	e.Invalidate()
	if e.Valid() {
		t.Error("expected stale cache after invalidate")
	}
	second := e.Layout(p)
	if second == first || second.Angles[0] == first.Angles[0] {
		t.Error("expected recomputed layout after invalidation")
	}
}

func TestParseGravity(t *testing.T) {
	tests := []struct {
		in   string
		want Gravity
	}{
		{"center_horizontal|top", CenterHorizontal | Top},
		{"Left | Bottom", Left | Bottom},
		{"center", Center},
		{"", 0},
	}
	for _, tt := range tests {
		got, err := ParseGravity(tt.in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.in, tt.want, got)
		}
	}

	if _, err := ParseGravity("sideways"); !errors.Is(err, ErrInvalidGravity) {
		t.Errorf("expected ErrInvalidGravity, got %v", err)
	}

	var g Gravity
	if err := g.UnmarshalText([]byte(DefaultGravity.String())); err != nil || g != DefaultGravity {
		t.Errorf("expected %s to survive text round trip, got %s (%v)", DefaultGravity, g, err)
	}
	if Start.Absolute(true) != Right || Start.Absolute(false) != Left {
		t.Error("start should resolve by layout direction")
	}
}
