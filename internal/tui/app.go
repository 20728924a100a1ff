package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/radar/internal/anim"
	"github.com/san-kum/radar/internal/config"
	"github.com/san-kum/radar/internal/layout"
	"github.com/san-kum/radar/internal/measure"
	"github.com/san-kum/radar/internal/radar"
	"github.com/san-kum/radar/internal/store"
	"github.com/san-kum/radar/internal/viz"
)

const (
	sidePanel  = 36
	maxHistory = 90
	maxEvents  = 6
)

var gravities = []layout.Gravity{
	layout.Center,
	layout.DefaultGravity,
	layout.Left | layout.CenterVertical,
	layout.Right | layout.CenterVertical,
	layout.CenterHorizontal | layout.Bottom,
}

// App is the interactive chart program.
type App struct {
	chart   *radar.Model
	sched   *Scheduler
	clock   anim.Clock
	store   *store.Store
	palette viz.Palette
	title   string

	restore *radar.Snapshot

	width, height int
	gravity       int
	frame         int
	history       []float64
	events        []string
}

type Option func(*App)

// WithClock times rotations against c instead of the wall clock.
func WithClock(c anim.Clock) Option {
	return func(a *App) { a.clock = c }
}

// WithSnapshot starts from a saved chart instead of the configured one.
func WithSnapshot(snap radar.Snapshot) Option {
	return func(a *App) { a.restore = &snap }
}

// WithStore enables saving snapshots with the s key.
func WithStore(st *store.Store) Option {
	return func(a *App) { a.store = st }
}

func New(cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{
		sched:   &Scheduler{},
		clock:   anim.SystemClock{},
		palette: viz.GetPalette(cfg.Theme),
		title:   cfg.Title,
		width:   100,
		height:  30,
	}
	for _, opt := range opts {
		opt(a)
	}

	chartOpts := append(cfg.Options(),
		radar.WithClock(a.clock),
		radar.WithScheduler(a.sched),
		radar.WithMeasurer(measure.Braille),
	)
	a.chart = radar.New(chartOpts...)
	a.chart.AddListener(radar.Funcs{
		DataChanged: func(data []radar.DataPoint) {
			a.logEvent(fmt.Sprintf("data: %d points", len(data)))
		},
		SelectedItemChanged: func(index int, name string, value int) {
			a.logEvent(fmt.Sprintf("selected %d %s=%d", index, name, value))
		},
		SelectedValueChanged: func(value int) {
			a.logEvent(fmt.Sprintf("value %d", value))
		},
		MaxValueChanged: func(maxValue int) {
			a.logEvent(fmt.Sprintf("max %d", maxValue))
		},
		InteractiveModeChanged: func(interactive bool) {
			a.logEvent(fmt.Sprintf("interactive %v", interactive))
		},
	})
	if err := cfg.Apply(a.chart); err != nil {
		return nil, err
	}
	if a.restore != nil {
		if err := a.chart.Restore(*a.restore); err != nil {
			return nil, fmt.Errorf("restore snapshot: %w", err)
		}
	}
	for i, g := range gravities {
		if g == a.chart.Gravity() {
			a.gravity = i
		}
	}
	a.resize()
	a.record()
	return a, nil
}

// Chart exposes the driven model.
func (a *App) Chart() *radar.Model { return a.chart }

func (a *App) logEvent(s string) {
	a.events = append(a.events, s)
	if len(a.events) > maxEvents {
		a.events = a.events[len(a.events)-maxEvents:]
	}
}

func (a *App) record() {
	a.history = append(a.history, a.chart.Offset())
	if len(a.history) > maxHistory {
		a.history = a.history[len(a.history)-maxHistory:]
	}
}

// canvasSize is the braille canvas size in cells for the current window.
func (a *App) canvasSize() (w, h int) {
	return max(a.width-sidePanel-4, 20), max(a.height-5, 10)
}

func (a *App) resize() {
	w, h := a.canvasSize()
	a.chart.SetBounds(float64(w*2), float64(h*4))
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if quit := a.handleKey(msg); quit {
			return a, tea.Quit
		}
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
	case frameMsg:
		msg.fn()
		a.frame++
		a.record()
	}
	return a, a.sched.Flush()
}

func (a *App) handleKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "ctrl+c":
		return true
	case "e", "enter":
		a.chart.SetInteractive(!a.chart.Interactive())
	case "h", "left":
		a.chart.TurnCW()
	case "l", "right":
		a.chart.TurnCCW()
	case "k", "up", "+":
		a.chart.SetSelectedValue(a.chart.SelectedValue() + 1)
	case "j", "down", "-":
		a.chart.SetSelectedValue(a.chart.SelectedValue() - 1)
	case "t":
		a.palette = a.palette.Next()
		a.logEvent("theme " + a.palette.Name)
	case "g":
		a.gravity = (a.gravity + 1) % len(gravities)
		a.chart.SetGravity(gravities[a.gravity])
		a.logEvent("gravity " + gravities[a.gravity].String())
	case "s":
		a.save()
	}
	a.record()
	return false
}

func (a *App) save() {
	if a.store == nil {
		a.logEvent("no snapshot store")
		return
	}
	name := "tui-" + a.clock.Now().Format("20060102-150405")
	if _, err := a.store.Save(name, a.chart.Snapshot()); err != nil {
		radar.Logger().Error("save snapshot", "name", name, "err", err)
		a.logEvent("save failed")
		return
	}
	a.logEvent("saved " + name)
}

// Run starts the program on the alternate screen.
func Run(cfg *config.Config, opts ...Option) error {
	app, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

var _ anim.Scheduler = (*Scheduler)(nil)
