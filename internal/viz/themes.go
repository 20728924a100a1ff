package viz

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Palette maps inks to colors. Colors are hex strings.
type Palette struct {
	Name               string
	Label              lipgloss.Color
	Circle             lipgloss.Color
	Selected           lipgloss.Color
	Polygon            lipgloss.Color
	PolygonInteractive lipgloss.Color
	Muted              lipgloss.Color
}

// PolygonAlpha is the opacity of polygon strokes.
const PolygonAlpha = 0xdd

// Available palettes
var (
	PaletteClassic = Palette{
		Name:               "classic",
		Label:              lipgloss.Color("#ffffff"),
		Circle:             lipgloss.Color("#cccccc"),
		Selected:           lipgloss.Color("#efac1d"),
		Polygon:            lipgloss.Color("#0066ff"),
		PolygonInteractive: lipgloss.Color("#ff66ff"),
		Muted:              lipgloss.Color("#888888"),
	}

	PaletteCyberpunk = Palette{
		Name:               "cyberpunk",
		Label:              lipgloss.Color("#ffffff"),
		Circle:             lipgloss.Color("#666666"),
		Selected:           lipgloss.Color("#ffff00"), // Yellow
		Polygon:            lipgloss.Color("#00ffff"), // Cyan
		PolygonInteractive: lipgloss.Color("#ff00ff"), // Magenta
		Muted:              lipgloss.Color("#666666"),
	}

	PaletteRetro = Palette{
		Name:               "retro",
		Label:              lipgloss.Color("#00ff00"), // Green phosphor
		Circle:             lipgloss.Color("#005500"),
		Selected:           lipgloss.Color("#88ff88"),
		Polygon:            lipgloss.Color("#00cc00"),
		PolygonInteractive: lipgloss.Color("#ffff00"),
		Muted:              lipgloss.Color("#005500"),
	}

	PaletteMinimal = Palette{
		Name:               "minimal",
		Label:              lipgloss.Color("#ffffff"),
		Circle:             lipgloss.Color("#888888"),
		Selected:           lipgloss.Color("#0088ff"),
		Polygon:            lipgloss.Color("#cccccc"),
		PolygonInteractive: lipgloss.Color("#ffffff"),
		Muted:              lipgloss.Color("#888888"),
	}

	PaletteOcean = Palette{
		Name:               "ocean",
		Label:              lipgloss.Color("#e0f0ff"),
		Circle:             lipgloss.Color("#4488aa"),
		Selected:           lipgloss.Color("#ffd700"),
		Polygon:            lipgloss.Color("#0077be"), // Ocean blue
		PolygonInteractive: lipgloss.Color("#00a8cc"),
		Muted:              lipgloss.Color("#4488aa"),
	}

	PaletteSunset = Palette{
		Name:               "sunset",
		Label:              lipgloss.Color("#fff5f5"),
		Circle:             lipgloss.Color("#8b6b8c"),
		Selected:           lipgloss.Color("#feca57"),
		Polygon:            lipgloss.Color("#ff6b6b"), // Coral
		PolygonInteractive: lipgloss.Color("#ff9ff3"),
		Muted:              lipgloss.Color("#8b6b8c"),
	}

	// All available palettes, the default first.
	Palettes = []Palette{
		PaletteClassic,
		PaletteCyberpunk,
		PaletteRetro,
		PaletteMinimal,
		PaletteOcean,
		PaletteSunset,
	}
)

// ErrUnknownPalette is returned by LookupPalette.
var ErrUnknownPalette = errors.New("unknown palette")

// LookupPalette returns the palette called name.
func LookupPalette(name string) (Palette, error) {
	for _, p := range Palettes {
		if p.Name == name {
			return p, nil
		}
	}
	return Palette{}, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
}

// GetPalette returns a palette by name, falling back to the classic one.
func GetPalette(name string) Palette {
	if p, err := LookupPalette(name); err == nil {
		return p
	}
	return PaletteClassic
}

// PaletteNames returns list of available palette names
func PaletteNames() []string {
	names := make([]string, len(Palettes))
	for i, p := range Palettes {
		names[i] = p.Name
	}
	return names
}

// Next returns the palette after p, wrapping around.
func (p Palette) Next() Palette {
	for i, q := range Palettes {
		if q.Name == p.Name {
			return Palettes[(i+1)%len(Palettes)]
		}
	}
	return PaletteClassic
}

// Color resolves an ink.
func (p Palette) Color(ink Ink) lipgloss.Color {
	switch ink {
	case InkLabel:
		return p.Label
	case InkCircle:
		return p.Circle
	case InkSelected:
		return p.Selected
	case InkPolygon:
		return p.Polygon
	case InkPolygonInteractive:
		return p.PolygonInteractive
	}
	return p.Muted
}

// Style returns the terminal style for an ink. Selected text is bold.
func (p Palette) Style(ink Ink) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(p.Color(ink))
	if ink == InkSelected {
		s = s.Bold(true)
	}
	return s
}

// RGBA resolves an ink to 8-bit channels. Polygon inks carry PolygonAlpha.
func (p Palette) RGBA(ink Ink) (r, g, b, a uint8) {
	ri, gi, bi := parseHex(string(p.Color(ink)))
	a = 0xff
	if ink == InkPolygon || ink == InkPolygonInteractive {
		a = PolygonAlpha
	}
	return uint8(ri), uint8(gi), uint8(bi), a
}
