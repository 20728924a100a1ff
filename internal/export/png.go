package export

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/san-kum/radar/internal/layout"
	"github.com/san-kum/radar/internal/viz"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// PNGPainter rasterizes drawing calls with gg.
type PNGPainter struct {
	ctx     *gg.Context
	palette viz.Palette
	regular *text.FontSource
	bold    *text.FontSource
	err     error
}

// NewPNGPainter creates a width by height surface cleared to Background.
func NewPNGPainter(width, height int, palette viz.Palette) (*PNGPainter, error) {
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		_ = regular.Close()
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	ctx := gg.NewContext(width, height)
	ctx.ClearWithColor(gg.Hex(Background))
	ctx.SetLineJoin(gg.LineJoinRound)
	return &PNGPainter{ctx: ctx, palette: palette, regular: regular, bold: bold}, nil
}

func (p *PNGPainter) setInk(ink viz.Ink) {
	r, g, b, a := p.palette.RGBA(ink)
	p.ctx.SetRGBA(float64(r)/255, float64(g)/255, float64(b)/255, float64(a)/255)
}

func (p *PNGPainter) keep(err error) {
	if p.err == nil && err != nil {
		p.err = err
	}
}

func (p *PNGPainter) Circle(c layout.Point, r float64, s viz.Stroke) {
	p.setInk(s.Ink)
	p.ctx.SetLineWidth(s.Width)
	p.ctx.DrawCircle(c.X, c.Y, r)
	p.keep(p.ctx.Stroke())
}

func (p *PNGPainter) Disc(c layout.Point, r float64, ink viz.Ink) {
	p.setInk(ink)
	p.ctx.DrawCircle(c.X, c.Y, r)
	p.keep(p.ctx.Fill())
}

func (p *PNGPainter) Line(a, b layout.Point, s viz.Stroke) {
	p.setInk(s.Ink)
	p.ctx.SetLineWidth(s.Width)
	p.ctx.DrawLine(a.X, a.Y, b.X, b.Y)
	p.keep(p.ctx.Stroke())
}

func (p *PNGPainter) Polygon(points []layout.Point, s viz.Stroke) {
	if len(points) == 0 {
		return
	}
	p.setInk(s.Ink)
	p.ctx.SetLineWidth(s.Width)
	p.ctx.MoveTo(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		p.ctx.LineTo(pt.X, pt.Y)
	}
	p.ctx.ClosePath()
	p.keep(p.ctx.Stroke())
}

func (p *PNGPainter) Text(anchor layout.Point, s string, align layout.Align, style viz.TextStyle) {
	if style.Size <= 0 {
		return
	}
	src := p.regular
	if style.Bold {
		src = p.bold
	}
	ax := 0.5
	switch align {
	case layout.AlignLeft:
		ax = 0
	case layout.AlignRight:
		ax = 1
	}
	p.setInk(style.Ink)
	p.ctx.SetFont(src.Face(style.Size))
	p.ctx.DrawStringAnchored(s, anchor.X, anchor.Y, ax, 0)
}

// Err reports the first drawing error.
func (p *PNGPainter) Err() error { return p.err }

// Encode writes the surface as PNG.
func (p *PNGPainter) Encode(w io.Writer) error {
	if p.err != nil {
		return fmt.Errorf("draw chart: %w", p.err)
	}
	return p.ctx.EncodePNG(w)
}

func (p *PNGPainter) Close() error {
	_ = p.regular.Close()
	_ = p.bold.Close()
	return p.ctx.Close()
}

// WritePNG draws f on a width by height image and writes it to w.
func WritePNG(w io.Writer, f viz.Frame, width, height int, palette viz.Palette) error {
	p, err := NewPNGPainter(width, height, palette)
	if err != nil {
		return err
	}
	defer p.Close()

	viz.Draw(p, f)
	return p.Encode(w)
}
