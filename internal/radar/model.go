package radar

import (
	"time"

	"github.com/san-kum/radar/internal/anim"
	"github.com/san-kum/radar/internal/layout"
)

// DefaultMaxValue is the number of rings of a new chart.
const DefaultMaxValue = 5

// Model holds the chart state and drives rotation and layout. It is not
// safe for concurrent use: every call, scheduled tick and notification
// must happen on the goroutine that owns the model.
type Model struct {
	data        []DataPoint
	maxValue    int
	selected    int
	interactive bool
	gravity     layout.Gravity
	rtl         bool

	width, height float64

	engine    *layout.Engine
	animator  *anim.Animator
	listeners registry

	clock      anim.Clock
	sched      anim.Scheduler
	measurer   layout.Measurer
	duration   time.Duration
	frame      time.Duration
	invalidate func()
}

// Option configures a Model.
type Option func(*Model)

// WithClock sets the clock rotations are timed against.
func WithClock(c anim.Clock) Option {
	return func(m *Model) { m.clock = c }
}

// WithScheduler sets how animation ticks are scheduled. Hosts with an event
// loop must pass one that runs callbacks on that loop; without it the model
// falls back to anim.Blocking and a rotation blocks its caller until it
// settles.
func WithScheduler(s anim.Scheduler) Option {
	return func(m *Model) { m.sched = s }
}

// WithManualClock uses c as both clock and scheduler.
func WithManualClock(c *anim.ManualClock) Option {
	return func(m *Model) {
		m.clock = c
		m.sched = c
	}
}

// WithMeasurer sets the label measurer used by the layout engine.
func WithMeasurer(ms layout.Measurer) Option {
	return func(m *Model) { m.measurer = ms }
}

// WithDuration overrides the rotation duration.
func WithDuration(d time.Duration) Option {
	return func(m *Model) { m.duration = d }
}

// WithFrameInterval overrides the delay between animation ticks.
func WithFrameInterval(d time.Duration) Option {
	return func(m *Model) { m.frame = d }
}

// WithRightToLeft resolves Start/End gravity for right-to-left layouts.
func WithRightToLeft(rtl bool) Option {
	return func(m *Model) { m.rtl = rtl }
}

// WithInvalidate registers a hook asking the host to repaint.
func WithInvalidate(fn func()) Option {
	return func(m *Model) { m.invalidate = fn }
}

// WithBounds sets the initial drawing box.
func WithBounds(w, h float64) Option {
	return func(m *Model) { m.width, m.height = w, h }
}

func New(opts ...Option) *Model {
	m := &Model{
		maxValue: DefaultMaxValue,
		gravity:  layout.DefaultGravity,
		duration: anim.DefaultDuration,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.clock == nil {
		m.clock = anim.SystemClock{}
	}
	if m.sched == nil {
		m.sched = &anim.Blocking{}
	}
	if m.measurer == nil {
		m.measurer = nullMeasurer{}
	}
	m.engine = layout.NewEngine(m.measurer)
	m.animator = anim.New(m.clock, m.sched,
		anim.WithDuration(m.duration),
		anim.WithFrameInterval(m.frame),
		anim.OnFrame(func(float64) { m.changed() }),
		anim.OnSettle(func(off float64) {
			Logger().Debug("rotation settled", "offset", off, "selected", m.selected)
		}),
	)
	return m
}

type nullMeasurer struct{}

func (nullMeasurer) Measure(string, float64) (float64, float64) { return 0, 0 }

func (m *Model) changed() {
	m.engine.Invalidate()
	if m.invalidate != nil {
		m.invalidate()
	}
}

func (m *Model) HasData() bool { return len(m.data) > 0 }

// Data returns a copy of the data points, or nil when there is no data.
func (m *Model) Data() []DataPoint { return cloneData(m.data) }

func (m *Model) MaxValue() int            { return m.maxValue }
func (m *Model) SelectedIndex() int       { return m.selected }
func (m *Model) Interactive() bool        { return m.interactive }
func (m *Model) Animating() bool          { return m.animator.Animating() }
func (m *Model) Offset() float64          { return m.animator.Offset() }
func (m *Model) Gravity() layout.Gravity  { return m.gravity }
func (m *Model) Bounds() (w, h float64)   { return m.width, m.height }
func (m *Model) Animator() *anim.Animator { return m.animator }

// AddListener registers l; notifications are delivered in registration order.
func (m *Model) AddListener(l Listener) Subscription {
	return m.listeners.add(l)
}

func (m *Model) RemoveListener(s Subscription) { m.listeners.remove(s) }

// SelectedName returns the name of the selected point, or "" without data.
func (m *Model) SelectedName() string {
	if !m.HasData() {
		return ""
	}
	return m.data[m.selected].Name
}

// SelectedValue returns the value of the selected point, or 0 without data.
func (m *Model) SelectedValue() int {
	if !m.HasData() {
		return 0
	}
	return m.data[m.selected].Value
}

// SetData replaces the data wholesale, clamping every value into
// [0, MaxValue]. The caller's slice is never retained.
func (m *Model) SetData(data []DataPoint) {
	if len(data) == 0 {
		m.data = nil
	} else {
		m.data = make([]DataPoint, len(data))
		for i, p := range data {
			m.data[i] = DataPoint{Name: p.Name, Value: clamp(p.Value, 0, m.maxValue)}
		}
	}
	if m.selected >= len(m.data) {
		m.selected = 0
	}
	if m.interactive && !m.HasData() {
		m.interactive = false
		m.animator.Stop(0)
		m.notifyInteractive(false)
	}
	m.notifyData()
	m.changed()
}

// SetMaxValue changes the number of rings. Negative values become zero and
// existing point values are left as they are.
func (m *Model) SetMaxValue(v int) {
	if v < 0 {
		v = 0
	}
	if v == m.maxValue {
		return
	}
	m.maxValue = v
	m.listeners.each(func(l Listener) { l.OnMaxValueChanged(v) })
	m.changed()
}

// SetInteractive toggles interactive mode. Enabling needs data; disabling
// rotates the chart back to the first point.
func (m *Model) SetInteractive(interactive bool) {
	if m.interactive == interactive {
		return
	}
	if interactive {
		if !m.HasData() {
			Logger().Debug("interactive mode ignored", "reason", "no data")
			return
		}
		m.interactive = true
	} else {
		if m.HasData() {
			m.rehome()
		} else {
			m.animator.Stop(0)
		}
		m.interactive = false
	}
	m.notifyInteractive(interactive)
	m.changed()
}

// rehome selects the first point and rotates it to the top, replacing any
// rotation in flight. It animates and notifies even when the chart is
// already home, the same as an explicit TurnTo(0).
func (m *Model) rehome() {
	m.selected = 0
	m.notifySelectedItem()
	if m.animator.Animating() {
		m.animator.Redirect(0)
		return
	}
	m.animator.TurnTo(0, len(m.data))
}

// SetSelectedValue sets the selected point's value, clamped into
// [0, MaxValue].
func (m *Model) SetSelectedValue(v int) {
	if !m.HasData() {
		return
	}
	v = clamp(v, 0, m.maxValue)
	m.data[m.selected].Value = v
	m.listeners.each(func(l Listener) { l.OnSelectedValueChanged(v) })
	m.changed()
}

// TurnTo selects point index and rotates it to the top. It does nothing
// unless interactive, idle and index is in range.
func (m *Model) TurnTo(index int) {
	if !m.interactive || m.animator.Animating() {
		Logger().Debug("turn ignored", "index", index, "interactive", m.interactive, "animating", m.animator.Animating())
		return
	}
	if index < 0 || index >= len(m.data) {
		Logger().Debug("turn ignored", "index", index, "reason", "out of range")
		return
	}
	m.selected = index
	m.notifySelectedItem()
	Logger().Debug("rotation started", "index", index, "target", anim.TargetFor(index, len(m.data)))
	m.animator.TurnTo(index, len(m.data))
}

// TurnCCW rotates counter-clockwise, selecting the next point.
func (m *Model) TurnCCW() {
	if !m.interactive || m.animator.Animating() {
		return
	}
	m.TurnTo((m.selected + 1) % len(m.data))
}

// TurnCW rotates clockwise, selecting the previous point.
func (m *Model) TurnCW() {
	if !m.interactive || m.animator.Animating() {
		return
	}
	n := len(m.data)
	m.TurnTo((m.selected - 1 + n) % n)
}

// SetGravity sets the alignment policy. Start and End are resolved against
// the model's layout direction.
func (m *Model) SetGravity(g layout.Gravity) {
	m.gravity = g.Absolute(m.rtl)
	m.changed()
}

// SetBounds sets the size of the drawing box.
func (m *Model) SetBounds(w, h float64) {
	if w == m.width && h == m.height {
		return
	}
	m.width, m.height = w, h
	m.changed()
}

// Layout returns the geometry for the current state, recomputing it only
// after a change.
func (m *Model) Layout() *layout.Layout {
	return m.engine.Layout(layout.Params{
		Names:    Names(m.data),
		MaxValue: m.maxValue,
		Offset:   m.animator.Offset(),
		Width:    m.width,
		Height:   m.height,
		Gravity:  m.gravity,
	})
}

// SelectionMarker returns where the selected value sits on its spoke.
func (m *Model) SelectionMarker() (layout.Point, bool) {
	if !m.HasData() {
		return layout.Point{}, false
	}
	v := clamp(m.SelectedValue(), 0, m.maxValue)
	return m.Layout().Point(m.selected, v)
}

// Polygon returns the data outline for the current layout.
func (m *Model) Polygon() []layout.Point {
	return m.Layout().Polygon(Values(m.data))
}

func (m *Model) notifyData() {
	data := cloneData(m.data)
	m.listeners.each(func(l Listener) { l.OnDataChanged(cloneData(data)) })
}

func (m *Model) notifySelectedItem() {
	p := m.data[m.selected]
	m.listeners.each(func(l Listener) { l.OnSelectedItemChanged(m.selected, p.Name, p.Value) })
}

func (m *Model) notifyInteractive(interactive bool) {
	m.listeners.each(func(l Listener) { l.OnInteractiveModeChanged(interactive) })
}
