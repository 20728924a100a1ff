package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/radar/internal/layout"
)

// CanvasPainter paints onto a braille canvas. Layout coordinates are in
// canvas dots, so a model driving it should be bounded by Canvas.Dots and
// measure labels with measure.Braille.
type CanvasPainter struct {
	Canvas *Canvas

	// DiscScale shrinks marker radii, which are sized for pixels.
	DiscScale float64
}

func NewCanvasPainter(c *Canvas) *CanvasPainter {
	return &CanvasPainter{Canvas: c, DiscScale: 0.25}
}

func (p *CanvasPainter) Circle(center layout.Point, r float64, s Stroke) {
	p.Canvas.Pen = s.Ink
	p.Canvas.DrawCircle(round(center.X), round(center.Y), round(r))
}

func (p *CanvasPainter) Disc(center layout.Point, r float64, ink Ink) {
	p.Canvas.Pen = ink
	p.Canvas.FillCircle(round(center.X), round(center.Y), round(r*p.DiscScale))
}

func (p *CanvasPainter) Line(a, b layout.Point, s Stroke) {
	p.Canvas.Pen = s.Ink
	p.Canvas.DrawLine(round(a.X), round(a.Y), round(b.X), round(b.Y))
}

func (p *CanvasPainter) Polygon(points []layout.Point, s Stroke) {
	if len(points) == 0 {
		return
	}
	p.Canvas.Pen = s.Ink
	prev := points[len(points)-1]
	for _, pt := range points {
		p.Canvas.DrawLine(round(prev.X), round(prev.Y), round(pt.X), round(pt.Y))
		prev = pt
	}
}

func (p *CanvasPainter) Text(anchor layout.Point, s string, align layout.Align, style TextStyle) {
	p.Canvas.Pen = style.Ink
	col := int(math.Floor(anchor.X / 2))
	row := int(math.Floor((anchor.Y - 1) / 4))
	w := lipgloss.Width(s)
	switch align {
	case layout.AlignCenter:
		col -= w / 2
	case layout.AlignRight:
		col -= w
	}
	p.Canvas.PutText(col, row, s)
}

func round(v float64) int { return int(math.Round(v)) }
