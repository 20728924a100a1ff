package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/san-kum/radar/internal/layout"
	"github.com/san-kum/radar/internal/viz"
)

// Background is the fill behind exported charts.
const Background = "#0a0a0a"

// SVGPainter writes drawing calls as SVG elements.
type SVGPainter struct {
	Palette viz.Palette
	sb      strings.Builder
}

func NewSVGPainter(p viz.Palette) *SVGPainter {
	return &SVGPainter{Palette: p}
}

func (p *SVGPainter) color(ink viz.Ink) string {
	return string(p.Palette.Color(ink))
}

func (p *SVGPainter) opacity(ink viz.Ink) string {
	_, _, _, a := p.Palette.RGBA(ink)
	if a == 0xff {
		return ""
	}
	return fmt.Sprintf(` stroke-opacity="%.3f"`, float64(a)/255)
}

func (p *SVGPainter) Circle(c layout.Point, r float64, s viz.Stroke) {
	fmt.Fprintf(&p.sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="%g"/>`+"\n",
		c.X, c.Y, r, p.color(s.Ink), s.Width)
}

func (p *SVGPainter) Disc(c layout.Point, r float64, ink viz.Ink) {
	fmt.Fprintf(&p.sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", c.X, c.Y, r, p.color(ink))
}

func (p *SVGPainter) Line(a, b layout.Point, s viz.Stroke) {
	fmt.Fprintf(&p.sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%g"/>`+"\n",
		a.X, a.Y, b.X, b.Y, p.color(s.Ink), s.Width)
}

func (p *SVGPainter) Polygon(points []layout.Point, s viz.Stroke) {
	if len(points) == 0 {
		return
	}
	coords := make([]string, len(points))
	for i, pt := range points {
		coords[i] = fmt.Sprintf("%.1f,%.1f", pt.X, pt.Y)
	}
	fmt.Fprintf(&p.sb, `<polygon points="%s" fill="none" stroke="%s" stroke-width="%g" stroke-linejoin="round"%s/>`+"\n",
		strings.Join(coords, " "), p.color(s.Ink), s.Width, p.opacity(s.Ink))
}

func (p *SVGPainter) Text(anchor layout.Point, s string, align layout.Align, style viz.TextStyle) {
	textAnchor := "middle"
	switch align {
	case layout.AlignLeft:
		textAnchor = "start"
	case layout.AlignRight:
		textAnchor = "end"
	}
	weight := ""
	if style.Bold {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(&p.sb, `<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.1f" text-anchor="%s" fill="%s"%s>%s</text>`+"\n",
		anchor.X, anchor.Y, style.Size, textAnchor, p.color(style.Ink), weight, html.EscapeString(s))
}

// Document wraps everything painted so far in an SVG document.
func (p *SVGPainter) Document(width, height float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, Background)
	sb.WriteString(p.sb.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

// ChartToSVG draws f as a standalone SVG document.
func ChartToSVG(f viz.Frame, width, height float64, palette viz.Palette) string {
	p := NewSVGPainter(palette)
	viz.Draw(p, f)
	return p.Document(width, height)
}

// WriteSVG writes ChartToSVG output to w.
func WriteSVG(w io.Writer, f viz.Frame, width, height float64, palette viz.Palette) error {
	_, err := io.WriteString(w, ChartToSVG(f, width, height, palette))
	return err
}

// Braille dot-to-bit mapping
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// CanvasToSVG converts a Braille canvas to SVG format. Dots keep the
// color of their cell's ink; text overlay cells become text elements.
func CanvasToSVG(canvas *viz.Canvas, scale float64, palette viz.Palette) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, Background)

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			fill := string(palette.Color(canvas.Inks[row][col]))
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			if t := canvas.Text[row][col]; t != 0 {
				fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" font-family="monospace" font-size="%.1f" fill="%s">%s</text>`+"\n",
					baseX, baseY+scale*4, scale*3.5, fill, html.EscapeString(string(t)))
				continue
			}

			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", cx, cy, dotRadius, fill)
					}
				}
			}
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
