package layout

import "math"

// SampleText is measured to size the label gutter for numeric-width labels.
const SampleText = "00000"

// Measurer reports the rendered width and height of s at the given font size.
type Measurer interface {
	Measure(s string, size float64) (w, h float64)
}

// Point is a coordinate on the drawing surface. Y grows downwards.
type Point struct {
	X, Y float64
}

// Align is the horizontal anchoring of a label relative to its anchor point.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	}
	return "center"
}

// Params are the inputs of a layout pass.
type Params struct {
	Names    []string
	MaxValue int
	Offset   float64
	Width    float64
	Height   float64
	Gravity  Gravity
}

// Layout is the computed geometry of one chart frame.
type Layout struct {
	Center   Point
	Radius   float64
	RingStep float64
	MaxValue int

	// HPad and VPad are the label gutter sizes.
	HPad, VPad float64

	LabelSize         float64
	SelectedLabelSize float64

	Angles []float64
	// Points[i][j] is where spoke i crosses ring j.
	Points [][]Point
	Labels []Point
}

// Compute lays out a chart. It never fails: degenerate inputs produce
// degenerate (but valid) geometry.
func Compute(p Params, m Measurer) *Layout {
	maxValue := p.MaxValue
	if maxValue < 0 {
		maxValue = 0
	}
	rawRadius := math.Min(p.Width, p.Height) / 2

	l := &Layout{
		MaxValue:          maxValue,
		LabelSize:         rawRadius / 12,
		SelectedLabelSize: rawRadius / 10,
	}

	hPad, vPad := m.Measure(SampleText, l.LabelSize)
	for _, name := range p.Names {
		if w, _ := m.Measure(name, l.LabelSize); w > hPad {
			hPad = w
		}
	}
	l.HPad, l.VPad = hPad, vPad

	radius := rawRadius - math.Max(vPad, hPad) - vPad
	if radius < 0 {
		radius = 0
	}
	l.Radius = radius
	if maxValue > 0 {
		l.RingStep = radius / float64(maxValue)
	}

	l.Center = Point{X: p.Width / 2, Y: p.Height / 2}
	switch p.Gravity.Horizontal() {
	case Left:
		l.Center.X = radius + hPad
	case Right:
		l.Center.X = p.Width - (radius + hPad)
	}
	switch p.Gravity.Vertical() {
	case Top:
		l.Center.Y = radius + 3*vPad
	case Bottom:
		l.Center.Y = p.Height - (radius + 3*vPad)
	}

	n := len(p.Names)
	if n == 0 {
		return l
	}
	l.Angles = make([]float64, n)
	l.Points = make([][]Point, n)
	l.Labels = make([]Point, n)
	for i := 0; i < n; i++ {
		angle := -float64(i)*2*math.Pi/float64(n) + math.Pi/2 + p.Offset
		cos, sin := math.Cos(angle), math.Sin(angle)
		l.Angles[i] = angle

		ring := make([]Point, maxValue+1)
		for j := 0; j <= maxValue; j++ {
			r := float64(j) * l.RingStep
			ring[j] = Point{X: l.Center.X + r*cos, Y: l.Center.Y - r*sin}
		}
		l.Points[i] = ring
		l.Labels[i] = Point{
			X: l.Center.X + (radius+l.RingStep/3)*cos,
			Y: l.Center.Y - (radius+l.RingStep)*sin + vPad/2,
		}
	}
	return l
}

// Spokes returns the number of spokes laid out.
func (l *Layout) Spokes() int { return len(l.Points) }

// Point returns the intersection of spoke i and ring j.
func (l *Layout) Point(i, j int) (Point, bool) {
	if i < 0 || i >= len(l.Points) || j < 0 || j >= len(l.Points[i]) {
		return Point{}, false
	}
	return l.Points[i][j], true
}

// Polygon returns the closed data outline for values, one per spoke.
// Values outside the ring range are clamped.
func (l *Layout) Polygon(values []int) []Point {
	n := len(l.Points)
	if len(values) < n {
		n = len(values)
	}
	out := make([]Point, n)
	for i := 0; i < n; i++ {
		v := values[i]
		if v < 0 {
			v = 0
		}
		if v > l.MaxValue {
			v = l.MaxValue
		}
		out[i] = l.Points[i][v]
	}
	return out
}

// LabelAlign chooses how the label of spoke i hangs off its anchor: labels
// near the vertical axis are centered, the rest grow away from the chart.
func (l *Layout) LabelAlign(i int) Align {
	if i < 0 || i >= len(l.Labels) {
		return AlignCenter
	}
	x := l.Labels[i].X
	switch {
	case math.Abs(x-l.Center.X) < l.RingStep:
		return AlignCenter
	case x > l.Center.X:
		return AlignLeft
	}
	return AlignRight
}

// Engine caches the last computed layout until invalidated.
type Engine struct {
	measurer Measurer
	cached   *Layout
}

func NewEngine(m Measurer) *Engine {
	return &Engine{measurer: m}
}

// Invalidate marks the cached layout stale. Recomputation happens on the
// next call to Layout.
func (e *Engine) Invalidate() { e.cached = nil }

// Valid reports whether a cached layout is available.
func (e *Engine) Valid() bool { return e.cached != nil }

// Layout returns the cached layout, computing it from p if stale.
func (e *Engine) Layout(p Params) *Layout {
	if e.cached == nil {
		e.cached = Compute(p, e.measurer)
	}
	return e.cached
}
