package config

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/san-kum/radar/internal/layout"
	"github.com/san-kum/radar/internal/radar"
)

var ErrUnknownPreset = errors.New("unknown preset")

var Presets = map[string]*Config{
	"whisky": {
		Title: "Flavor profile", MaxValue: 5, Gravity: layout.DefaultGravity, Interactive: true,
		Data: []radar.DataPoint{
			{Name: "Body", Value: 3},
			{Name: "Charcoal", Value: 4},
			{Name: "Oak", Value: 4},
			{Name: "Leather", Value: 4},
			{Name: "Spice", Value: 2},
			{Name: "Alcohol", Value: 3},
			{Name: "Astringent", Value: 3},
			{Name: "Linger", Value: 4},
			{Name: "Sweet", Value: 2},
			{Name: "Maple", Value: 2},
			{Name: "Fruit", Value: 3},
			{Name: "Vanilla", Value: 2},
			{Name: "Smoke", Value: 1},
			{Name: "Peat", Value: 0},
			{Name: "Nut", Value: 1},
		},
	},
	"compass": {
		Title: "Compass", MaxValue: 5, Gravity: layout.Center,
		Data: []radar.DataPoint{
			{Name: "N", Value: 1},
			{Name: "E", Value: 2},
			{Name: "S", Value: 3},
			{Name: "W", Value: 4},
		},
	},
	"skills": {
		Title: "Skills", MaxValue: 10, Gravity: layout.Center, Interactive: true,
		Data: []radar.DataPoint{
			{Name: "Go", Value: 8},
			{Name: "SQL", Value: 6},
			{Name: "Networking", Value: 7},
			{Name: "Testing", Value: 9},
			{Name: "Design", Value: 4},
			{Name: "Ops", Value: 5},
		},
	},
}

// GetPreset returns a copy of the named preset filled in over the defaults.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	cfg := DefaultConfig()
	cfg.Title = p.Title
	cfg.MaxValue = p.MaxValue
	cfg.Gravity = p.Gravity
	cfg.Interactive = p.Interactive
	cfg.Data = slices.Clone(p.Data)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
