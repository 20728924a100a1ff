package viz

import "github.com/san-kum/radar/internal/layout"

// Ink names a palette role. Painters resolve inks to concrete colors.
type Ink int

const (
	InkNone Ink = iota
	InkLabel
	InkCircle
	InkSelected
	InkPolygon
	InkPolygonInteractive
)

func (i Ink) String() string {
	switch i {
	case InkLabel:
		return "label"
	case InkCircle:
		return "circle"
	case InkSelected:
		return "selected"
	case InkPolygon:
		return "polygon"
	case InkPolygonInteractive:
		return "polygon-interactive"
	}
	return "none"
}

// Stroke describes an outline.
type Stroke struct {
	Ink   Ink
	Width float64
}

// TextStyle describes a label.
type TextStyle struct {
	Ink  Ink
	Size float64
	Bold bool
}

// Painter is a drawing surface. Coordinates share the space of the
// layout that produced them.
type Painter interface {
	Circle(center layout.Point, r float64, s Stroke)
	Disc(center layout.Point, r float64, ink Ink)
	Line(a, b layout.Point, s Stroke)
	// Polygon strokes a closed outline through points.
	Polygon(points []layout.Point, s Stroke)
	// Text draws s with its baseline at anchor, hanging off it as align says.
	Text(anchor layout.Point, s string, align layout.Align, style TextStyle)
}
