package viz

import (
	"github.com/san-kum/radar/internal/layout"
	"github.com/san-kum/radar/internal/radar"
)

// Stroke widths and marker radii in drawing units.
const (
	RingWidth            = 2
	OuterRingWidth       = 3
	SpokeWidth           = 1
	SelectedSpokeWidth   = 3
	PolygonWidth         = 5
	InteractivePolyWidth = 4
	CenterRadius         = 6
	MarkerRadius         = 8
)

// Frame is everything needed to paint one chart frame.
type Frame struct {
	Layout      *layout.Layout
	Names       []string
	Values      []int
	Selected    int
	Interactive bool
}

// FrameOf captures the current state of m.
func FrameOf(m *radar.Model) Frame {
	data := m.Data()
	return Frame{
		Layout:      m.Layout(),
		Names:       radar.Names(data),
		Values:      radar.Values(data),
		Selected:    m.SelectedIndex(),
		Interactive: m.Interactive(),
	}
}

func (f Frame) hasData() bool {
	return len(f.Names) > 0 && f.Layout != nil && f.Layout.Spokes() > 0
}

// Draw paints f: rings first, then spokes with their labels, the data
// polygon, the selection marker and finally the center marker.
func Draw(p Painter, f Frame) {
	l := f.Layout
	if l == nil {
		return
	}
	for i := 1; i < l.MaxValue; i++ {
		p.Circle(l.Center, l.RingStep*float64(i), Stroke{Ink: InkCircle, Width: RingWidth})
	}
	p.Circle(l.Center, l.RingStep*float64(l.MaxValue), Stroke{Ink: InkCircle, Width: OuterRingWidth})

	if !f.hasData() {
		p.Disc(l.Center, CenterRadius, InkCircle)
		return
	}

	for i, name := range f.Names {
		if i >= l.Spokes() {
			break
		}
		spoke := Stroke{Ink: InkCircle, Width: SpokeWidth}
		label := TextStyle{Ink: InkLabel, Size: l.LabelSize}
		if f.Interactive && i == f.Selected {
			spoke = Stroke{Ink: InkSelected, Width: SelectedSpokeWidth}
			label = TextStyle{Ink: InkSelected, Size: l.SelectedLabelSize, Bold: true}
		}
		tip, _ := l.Point(i, l.MaxValue)
		p.Line(l.Center, tip, spoke)
		p.Text(l.Labels[i], name, l.LabelAlign(i), label)
	}

	poly := Stroke{Ink: InkPolygon, Width: PolygonWidth}
	if f.Interactive {
		poly = Stroke{Ink: InkPolygonInteractive, Width: InteractivePolyWidth}
	}
	p.Polygon(l.Polygon(f.Values), poly)

	center := InkCircle
	if f.Interactive {
		if f.Selected >= 0 && f.Selected < len(f.Values) {
			if pt, ok := l.Point(f.Selected, clampValue(f.Values[f.Selected], l.MaxValue)); ok {
				p.Disc(pt, MarkerRadius, InkSelected)
			}
		}
		center = InkSelected
	}
	p.Disc(l.Center, CenterRadius, center)
}

func clampValue(v, maxValue int) int {
	if v < 0 {
		return 0
	}
	if v > maxValue {
		return maxValue
	}
	return v
}
