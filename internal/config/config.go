package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/radar/internal/anim"
	"github.com/san-kum/radar/internal/layout"
	"github.com/san-kum/radar/internal/radar"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDuration = 400
	DefaultFrame    = 33
	DefaultTheme    = "classic"
	DefaultDataDir  = "data"
)

type Config struct {
	Title       string            `yaml:"title"`
	MaxValue    int               `yaml:"max_value"`
	Gravity     layout.Gravity    `yaml:"gravity"`
	RightToLeft bool              `yaml:"rtl"`
	DurationMs  int               `yaml:"duration_ms"`
	FrameMs     int               `yaml:"frame_ms"`
	Theme       string            `yaml:"theme"`
	DataDir     string            `yaml:"data_dir"`
	Interactive bool              `yaml:"interactive"`
	Selected    int               `yaml:"selected"`
	Data        []radar.DataPoint `yaml:"data"`
}

func DefaultConfig() *Config {
	return &Config{
		Title:      "radar",
		MaxValue:   radar.DefaultMaxValue,
		Gravity:    layout.DefaultGravity,
		DurationMs: DefaultDuration,
		FrameMs:    DefaultFrame,
		Theme:      DefaultTheme,
		DataDir:    DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Duration() time.Duration {
	if c.DurationMs <= 0 {
		return anim.DefaultDuration
	}
	return time.Duration(c.DurationMs) * time.Millisecond
}

func (c *Config) FrameInterval() time.Duration {
	if c.FrameMs <= 0 {
		return anim.DefaultFrameInterval
	}
	return time.Duration(c.FrameMs) * time.Millisecond
}

// Snapshot converts the chart part of the config into a restorable state.
// Values are clamped to the ring range and an out-of-range selection
// falls back to the first spoke.
func (c *Config) Snapshot() radar.Snapshot {
	maxValue := max(c.MaxValue, 0)
	data := make([]radar.DataPoint, len(c.Data))
	for i, p := range c.Data {
		data[i] = radar.DataPoint{Name: p.Name, Value: min(max(p.Value, 0), maxValue)}
	}
	s := radar.Snapshot{MaxValue: maxValue, Data: data}
	if len(data) == 0 {
		return s
	}
	s.Interactive = c.Interactive
	if c.Selected >= 0 && c.Selected < len(data) {
		s.Selected = c.Selected
	}
	s.Offset = anim.TargetFor(s.Selected, len(data))
	return s
}

// Options returns the model options the config controls.
func (c *Config) Options() []radar.Option {
	return []radar.Option{
		radar.WithDuration(c.Duration()),
		radar.WithFrameInterval(c.FrameInterval()),
		radar.WithRightToLeft(c.RightToLeft),
	}
}

// Apply loads the chart described by c into m.
func (c *Config) Apply(m *radar.Model) error {
	m.SetGravity(c.Gravity)
	if err := m.Restore(c.Snapshot()); err != nil {
		return fmt.Errorf("apply config: %w", err)
	}
	return nil
}
