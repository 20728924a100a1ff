// Package measure sizes chart labels for the layout engine.
package measure

import (
	"fmt"
	"math"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Font measures text with an OpenType font. Faces are created lazily per
// size and kept for reuse.
type Font struct {
	font  *opentype.Font
	dpi   float64
	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFont parses an OpenType or TrueType font.
func NewFont(data []byte) (*Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Font{font: f, dpi: 72, faces: make(map[float64]font.Face)}, nil
}

// GoRegular returns a measurer for the bundled Go Regular font.
func GoRegular() *Font {
	f, err := NewFont(goregular.TTF)
	if err != nil {
		// the embedded font is known to parse
		panic(err)
	}
	return f
}

func (f *Font) face(size float64) (font.Face, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     f.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	f.faces[size] = face
	return face, nil
}

// Measure returns the ink bounds of s at size points. Sizes that cannot
// produce a face measure as zero.
func (f *Font) Measure(s string, size float64) (float64, float64) {
	if size <= 0 || s == "" {
		return 0, 0
	}
	face, err := f.face(size)
	if err != nil {
		return 0, 0
	}
	bounds, _ := font.BoundString(face, s)
	return fixedToFloat64(bounds.Max.X - bounds.Min.X), fixedToFloat64(bounds.Max.Y - bounds.Min.Y)
}

// Close releases every cached face.
func (f *Font) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for size, face := range f.faces {
		_ = face.Close()
		delete(f.faces, size)
	}
	return nil
}

func fixedToFloat64(x fixed.Int26_6) float64 {
	return math.Abs(float64(x) / 64)
}

// Cells measures text on a terminal grid where every cell is CellW by CellH
// drawing units. Font size is ignored; wide runes take two cells.
type Cells struct {
	CellW, CellH float64
}

// Braille matches the 2x4 dot cells of a braille canvas.
var Braille = Cells{CellW: 2, CellH: 4}

func (c Cells) Measure(s string, _ float64) (float64, float64) {
	if s == "" {
		return 0, 0
	}
	return float64(lipgloss.Width(s)) * c.CellW, c.CellH
}
