package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGravity is returned when a gravity string names an unknown flag.
var ErrInvalidGravity = errors.New("layout: invalid gravity")

// Gravity is a set of alignment flags positioning the chart inside its box.
type Gravity uint16

const (
	Left Gravity = 1 << iota
	Right
	Start
	End
	CenterHorizontal
	Top
	Bottom
	CenterVertical

	Center = CenterHorizontal | CenterVertical

	HorizontalMask = Left | Right | Start | End | CenterHorizontal
	VerticalMask   = Top | Bottom | CenterVertical
)

// DefaultGravity pins the chart to the top edge, centered horizontally.
const DefaultGravity = CenterHorizontal | Top

var gravityNames = []struct {
	name string
	flag Gravity
}{
	{"left", Left},
	{"right", Right},
	{"start", Start},
	{"end", End},
	{"center_horizontal", CenterHorizontal},
	{"top", Top},
	{"bottom", Bottom},
	{"center_vertical", CenterVertical},
	{"center", Center},
}

// ParseGravity reads flags separated by '|', e.g. "center_horizontal|top".
func ParseGravity(s string) (Gravity, error) {
	var g Gravity
	for _, part := range strings.Split(s, "|") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		found := false
		for _, n := range gravityNames {
			if n.name == part {
				g |= n.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: %q", ErrInvalidGravity, part)
		}
	}
	return g, nil
}

func (g Gravity) String() string {
	if g == 0 {
		return "none"
	}
	var parts []string
	rest := g
	if rest&Center == Center {
		parts = append(parts, "center")
		rest &^= Center
	}
	for _, n := range gravityNames[:8] {
		if rest&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Absolute resolves Start and End into Left or Right for the given
// layout direction.
func (g Gravity) Absolute(rtl bool) Gravity {
	out := g &^ (Start | End)
	switch {
	case g&Start != 0 && rtl, g&End != 0 && !rtl:
		out |= Right
	case g&Start != 0, g&End != 0:
		out |= Left
	}
	return out
}

// Horizontal returns Left, Right or CenterHorizontal. Conflicting or
// missing flags center the chart.
func (g Gravity) Horizontal() Gravity {
	g = g.Absolute(false) & HorizontalMask
	switch g {
	case Left, Right:
		return g
	}
	return CenterHorizontal
}

// Vertical returns Top, Bottom or CenterVertical.
func (g Gravity) Vertical() Gravity {
	g &= VerticalMask
	switch g {
	case Top, Bottom:
		return g
	}
	return CenterVertical
}

// MarshalText and UnmarshalText let gravity appear as a string in YAML and JSON.
func (g Gravity) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Gravity) UnmarshalText(b []byte) error {
	s := string(b)
	if s == "none" {
		*g = 0
		return nil
	}
	v, err := ParseGravity(s)
	if err != nil {
		return err
	}
	*g = v
	return nil
}
