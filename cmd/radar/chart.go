package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/radar/internal/anim"
	"github.com/san-kum/radar/internal/config"
	"github.com/san-kum/radar/internal/layout"
	"github.com/san-kum/radar/internal/radar"
	"github.com/san-kum/radar/internal/store"
	"github.com/san-kum/radar/internal/viz"
)

// loadConfig merges, in order: defaults, preset, config file, flags.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}
	if preset == "" && configFile == "" && points == "" {
		cfg, _ = config.GetPreset("whisky")
	}

	if points != "" {
		data, err := parsePoints(points)
		if err != nil {
			return nil, err
		}
		cfg.Data = data
	}
	if maxValue >= 0 {
		cfg.MaxValue = maxValue
	}
	if gravity != "" {
		g, err := layout.ParseGravity(gravity)
		if err != nil {
			return nil, err
		}
		cfg.Gravity = g
	}
	if theme != "" {
		if _, err := viz.LookupPalette(theme); err != nil {
			return nil, err
		}
		cfg.Theme = theme
	}
	if selectIdx >= 0 {
		cfg.Interactive = true
		cfg.Selected = selectIdx
	}
	return cfg, nil
}

// parsePoints reads "name=value,name=value".
func parsePoints(s string) ([]radar.DataPoint, error) {
	var data []radar.DataPoint
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("point %q: expected name=value", part)
		}
		v, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", part, err)
		}
		data = append(data, radar.DataPoint{Name: strings.TrimSpace(name), Value: v})
	}
	return data, nil
}

// newChart builds a settled model for one-shot rendering. A saved snapshot
// named by --snapshot replaces the configured chart.
func newChart(cfg *config.Config, ms layout.Measurer, w, h float64) (*radar.Model, error) {
	opts := append(cfg.Options(),
		radar.WithManualClock(anim.NewManualClock(time.Time{})),
		radar.WithBounds(w, h),
	)
	if ms != nil {
		opts = append(opts, radar.WithMeasurer(ms))
	}
	m := radar.New(opts...)
	if err := cfg.Apply(m); err != nil {
		return nil, err
	}

	if snapshot != "" {
		e, err := store.New(dataDir).Load(snapshot)
		if err != nil {
			return nil, err
		}
		if err := m.Restore(e.Snapshot); err != nil {
			return nil, fmt.Errorf("restore %s: %w", snapshot, err)
		}
	}
	return m, nil
}
