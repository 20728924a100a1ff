package radar_test

import (
	"errors"
	"fmt"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/radar/internal/anim"
	"github.com/san-kum/radar/internal/radar"
)

// recorder logs every notification as a short string.
type recorder struct {
	events []string
	data   [][]radar.DataPoint
}

func (r *recorder) OnDataChanged(data []radar.DataPoint) {
	r.events = append(r.events, fmt.Sprintf("data:%d", len(data)))
	r.data = append(r.data, data)
}

func (r *recorder) OnSelectedItemChanged(index int, name string, value int) {
	r.events = append(r.events, fmt.Sprintf("item:%d:%s:%d", index, name, value))
}

func (r *recorder) OnSelectedValueChanged(value int) {
	r.events = append(r.events, fmt.Sprintf("value:%d", value))
}

func (r *recorder) OnMaxValueChanged(maxValue int) {
	r.events = append(r.events, fmt.Sprintf("max:%d", maxValue))
}

func (r *recorder) OnInteractiveModeChanged(interactive bool) {
	r.events = append(r.events, fmt.Sprintf("interactive:%t", interactive))
}

func (r *recorder) reset() {
	r.events = nil
	r.data = nil
}

type maxCounter struct {
	radar.NopListener
	seen int
}

func (c *maxCounter) OnMaxValueChanged(int) { c.seen++ }

var compass = []radar.DataPoint{{Name: "N", Value: 1}, {Name: "E", Value: 2}, {Name: "S", Value: 3}, {Name: "W", Value: 4}}

var _ = Describe("Model", func() {
	var (
		clock   *anim.ManualClock
		m       *radar.Model
		rec     *recorder
		redraws int
	)

	BeforeEach(func() {
		clock = anim.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		redraws = 0
		m = radar.New(
			radar.WithManualClock(clock),
			radar.WithBounds(400, 400),
			radar.WithInvalidate(func() { redraws++ }),
		)
		rec = &recorder{}
		m.AddListener(rec)
	})

	It("finishes a rotation before returning when no scheduler is given", func() {
		blocking := radar.New(radar.WithBounds(400, 400), radar.WithDuration(20*time.Millisecond))
		blocking.SetData(compass)
		blocking.SetInteractive(true)

		blocking.TurnTo(2)
		Expect(blocking.Animating()).To(BeFalse())
		Expect(blocking.Offset()).To(Equal(math.Pi))
	})

	It("starts with the documented defaults", func() {
		Expect(m.MaxValue()).To(Equal(5))
		Expect(m.HasData()).To(BeFalse())
		Expect(m.Data()).To(BeNil())
		Expect(m.Interactive()).To(BeFalse())
		Expect(m.SelectedIndex()).To(BeZero())
		Expect(m.SelectedName()).To(BeEmpty())
		Expect(m.SelectedValue()).To(BeZero())
	})

	Describe("SetData", func() {
		It("clamps values into [0, max]", func() {
			m.SetData([]radar.DataPoint{{Name: "A", Value: 10}, {Name: "B", Value: -1}})
			Expect(m.Data()).To(Equal([]radar.DataPoint{{Name: "A", Value: 5}, {Name: "B", Value: 0}}))
		})

		It("keeps the internal sequence private", func() {
			in := []radar.DataPoint{{Name: "A", Value: 1}}
			m.SetData(in)
			in[0].Value = 4

			out := m.Data()
			out[0].Value = 3
			Expect(m.Data()[0].Value).To(Equal(1))

			rec.data[0][0].Value = 2
			Expect(m.Data()[0].Value).To(Equal(1))
		})

		It("notifies with a copy and invalidates the layout", func() {
			before := m.Layout()
			m.SetData(compass)
			Expect(rec.events).To(Equal([]string{"data:4"}))
			Expect(rec.data[0]).To(Equal(compass))
			Expect(m.Layout()).NotTo(BeIdenticalTo(before))
			Expect(m.Layout().Spokes()).To(Equal(4))
			Expect(redraws).To(BeNumerically(">", 0))
		})

		It("treats nil as no data", func() {
			m.SetData(compass)
			m.SetData(nil)
			Expect(m.HasData()).To(BeFalse())
			Expect(rec.events).To(Equal([]string{"data:4", "data:0"}))
		})

		It("leaves interactive mode when the data goes away", func() {
			m.SetData(compass)
			m.SetInteractive(true)
			rec.reset()

			m.SetData(nil)
			Expect(m.Interactive()).To(BeFalse())
			Expect(m.Offset()).To(BeZero())
			Expect(rec.events).To(Equal([]string{"interactive:false", "data:0"}))
		})

		It("cancels a rotation in flight when the data goes away", func() {
			m.SetData(compass)
			m.SetInteractive(true)
			m.TurnTo(2)
			clock.Advance(100 * time.Millisecond)
			Expect(m.Offset()).To(BeNumerically(">", 0))

			m.SetData(nil)
			Expect(m.Animating()).To(BeFalse())
			clock.Advance(time.Second)
			Expect(m.Offset()).To(BeZero())
			Expect(m.Interactive()).To(BeFalse())

			m.SetData(compass)
			l := m.Layout()
			top := l.Points[0][m.MaxValue()]
			Expect(top.X).To(BeNumerically("~", l.Center.X, 1e-9))
			Expect(top.Y).To(BeNumerically("~", l.Center.Y-l.Radius, 1e-9))
		})

		It("keeps the selection in range when the data shrinks", func() {
			m.SetData(compass)
			m.SetInteractive(true)
			m.TurnTo(3)
			clock.Advance(time.Second)

			m.SetData(compass[:2])
			Expect(m.SelectedIndex()).To(BeZero())
		})
	})

	Describe("SetMaxValue", func() {
		It("ignores an unchanged value", func() {
			m.SetMaxValue(5)
			Expect(rec.events).To(BeEmpty())
		})

		It("floors negative values at zero", func() {
			m.SetMaxValue(-3)
			Expect(m.MaxValue()).To(BeZero())
			Expect(rec.events).To(Equal([]string{"max:0"}))

			m.SetMaxValue(-1)
			Expect(rec.events).To(HaveLen(1))
		})

		It("does not re-clamp existing values", func() {
			m.SetData(compass)
			m.SetMaxValue(2)
			Expect(m.Data()[3].Value).To(Equal(4))
			// the polygon still stays inside the rings
			Expect(m.Polygon()[3]).To(Equal(m.Layout().Points[3][2]))
		})
	})

	Describe("SetSelectedValue", func() {
		It("is a no-op without data", func() {
			m.SetSelectedValue(3)
			Expect(rec.events).To(BeEmpty())
		})

		It("clamps and mutates the selected point", func() {
			m.SetData(compass)
			rec.reset()

			m.SetSelectedValue(-3)
			Expect(m.Data()[0].Value).To(BeZero())
			m.SetSelectedValue(99)
			Expect(m.SelectedValue()).To(Equal(5))
			Expect(rec.events).To(Equal([]string{"value:0", "value:5"}))
		})
	})

	Describe("SetInteractive", func() {
		It("refuses to enable without data", func() {
			m.SetInteractive(true)
			Expect(m.Interactive()).To(BeFalse())
			Expect(rec.events).To(BeEmpty())
		})

		It("notifies only on real transitions", func() {
			m.SetData(compass)
			rec.reset()
			m.SetInteractive(true)
			m.SetInteractive(true)
			Expect(rec.events).To(Equal([]string{"interactive:true"}))
		})

		It("rotates back to the first point when disabled", func() {
			m.SetData(compass)
			m.SetInteractive(true)
			m.TurnTo(1)
			clock.Advance(time.Second)
			rec.reset()

			m.SetInteractive(false)
			Expect(m.Interactive()).To(BeFalse())
			Expect(m.SelectedIndex()).To(BeZero())
			Expect(m.Animating()).To(BeTrue())
			Expect(rec.events).To(Equal([]string{"item:0:N:1", "interactive:false"}))

			clock.Advance(time.Second)
			Expect(m.Offset()).To(BeZero())
		})

		It("redirects a rotation in flight when disabled", func() {
			m.SetData(compass)
			m.SetInteractive(true)
			m.TurnTo(1)
			clock.Advance(200 * time.Millisecond)
			Expect(m.Animating()).To(BeTrue())

			m.SetInteractive(false)
			clock.Advance(time.Second)
			Expect(m.Offset()).To(BeZero())
			Expect(m.Animating()).To(BeFalse())
		})
	})

	Describe("turning", func() {
		It("ignores turns while not interactive", func() {
			m.SetData(compass)
			rec.reset()

			m.TurnTo(2)
			m.TurnCW()
			m.TurnCCW()
			Expect(m.SelectedIndex()).To(BeZero())
			Expect(m.Offset()).To(BeZero())
			Expect(m.Animating()).To(BeFalse())
			Expect(rec.events).To(BeEmpty())
		})

		It("ignores out of range targets", func() {
			m.SetData(compass)
			m.SetInteractive(true)
			rec.reset()

			m.TurnTo(4)
			m.TurnTo(-1)
			Expect(rec.events).To(BeEmpty())
			Expect(m.Animating()).To(BeFalse())
		})

		It("rotates the selected point to the top", func() {
			m.SetMaxValue(4)
			m.SetData(compass)
			m.SetInteractive(true)
			rec.reset()

			m.TurnTo(2)
			Expect(m.SelectedIndex()).To(Equal(2))
			Expect(rec.events).To(Equal([]string{"item:2:S:3"}))
			Expect(m.Offset()).To(BeZero())

			clock.Advance(200 * time.Millisecond)
			Expect(m.Animating()).To(BeTrue())
			Expect(rec.events).To(HaveLen(1))

			// the first tick past 400ms lands on the target exactly
			clock.Advance(250 * time.Millisecond)
			Expect(m.Offset()).To(Equal(math.Pi))
			Expect(m.Animating()).To(BeFalse())

			l := m.Layout()
			top := l.Points[2][4]
			Expect(top.X).To(BeNumerically("~", l.Center.X, 1e-9))
			Expect(top.Y).To(BeNumerically("~", l.Center.Y-l.Radius, 1e-9))
		})

		It("drops turns while a rotation is in flight", func() {
			m.SetData(compass)
			m.SetInteractive(true)
			m.TurnTo(1)
			rec.reset()

			m.TurnTo(3)
			m.TurnCCW()
			m.TurnCW()
			Expect(rec.events).To(BeEmpty())
			Expect(m.SelectedIndex()).To(Equal(1))
		})

		It("wraps around in both directions", func() {
			m.SetData(compass)
			m.SetInteractive(true)

			m.TurnCW()
			Expect(m.SelectedIndex()).To(Equal(3))
			clock.Advance(time.Second)

			m.TurnCCW()
			Expect(m.SelectedIndex()).To(BeZero())
			clock.Advance(time.Second)
			Expect(m.Offset()).To(BeZero())

			m.TurnCCW()
			Expect(m.SelectedIndex()).To(Equal(1))
		})

		It("recomputes the layout on every frame", func() {
			m.SetData(compass)
			m.SetInteractive(true)
			first := m.Layout()

			m.TurnTo(1)
			clock.Advance(33 * time.Millisecond)
			second := m.Layout()
			Expect(second).NotTo(BeIdenticalTo(first))
			Expect(second.Angles[0]).To(BeNumerically(">", first.Angles[0]))
		})
	})

	It("places the selection marker on the selected value", func() {
		_, ok := m.SelectionMarker()
		Expect(ok).To(BeFalse())

		m.SetData(compass)
		marker, ok := m.SelectionMarker()
		Expect(ok).To(BeTrue())
		Expect(marker).To(Equal(m.Layout().Points[0][1]))
	})

	Describe("listeners", func() {
		It("delivers in registration order and supports removal", func() {
			var order []string
			first := m.AddListener(radar.Funcs{MaxValueChanged: func(int) { order = append(order, "first") }})
			m.AddListener(radar.Funcs{MaxValueChanged: func(int) { order = append(order, "second") }})

			m.SetMaxValue(3)
			Expect(order).To(Equal([]string{"first", "second"}))

			m.RemoveListener(first)
			m.SetMaxValue(4)
			Expect(order).To(Equal([]string{"first", "second", "second"}))
		})

		It("ignores nil listeners", func() {
			m.AddListener(nil)
			m.SetMaxValue(2)
			Expect(rec.events).To(Equal([]string{"max:2"}))
		})

		It("lets embedded NopListener handle the rest", func() {
			l := &maxCounter{}
			m.AddListener(l)
			m.SetData(compass)
			m.SetMaxValue(2)
			Expect(l.seen).To(Equal(1))
		})
	})

	Describe("snapshots", func() {
		It("round-trips an interactive chart and re-fires data changed", func() {
			m.SetMaxValue(4)
			m.SetData(compass[:3])
			m.SetInteractive(true)
			m.TurnTo(2)
			clock.Advance(time.Second)
			snap := m.Snapshot()

			restored := radar.New(radar.WithManualClock(clock), radar.WithBounds(400, 400))
			r := &recorder{}
			restored.AddListener(r)
			Expect(restored.Restore(snap)).To(Succeed())

			Expect(restored.Data()).To(Equal(m.Data()))
			Expect(restored.MaxValue()).To(Equal(4))
			Expect(restored.SelectedIndex()).To(Equal(2))
			Expect(restored.Offset()).To(Equal(m.Offset()))
			Expect(restored.Interactive()).To(BeTrue())
			Expect(r.events).To(ContainElement("data:3"))
			Expect(r.events).To(ContainElement("interactive:true"))
		})

		It("keeps values above a shrunk max", func() {
			m.SetData([]radar.DataPoint{{Name: "A", Value: 5}, {Name: "B", Value: 4}, {Name: "C", Value: 2}})
			m.SetMaxValue(3)
			snap := m.Snapshot()

			restored := radar.New(radar.WithManualClock(clock), radar.WithBounds(400, 400))
			Expect(restored.Restore(snap)).To(Succeed())
			Expect(restored.MaxValue()).To(Equal(3))
			Expect(restored.Data()).To(Equal(m.Data()))
			Expect(restored.Data()[0].Value).To(Equal(5))
		})

		It("stops a rotation in flight before applying the saved offset", func() {
			m.SetData(compass)
			m.SetInteractive(true)
			m.TurnTo(2)
			clock.Advance(100 * time.Millisecond)
			Expect(m.Animating()).To(BeTrue())

			Expect(m.Restore(radar.Snapshot{MaxValue: 4, Data: compass, Selected: 1, Offset: math.Pi / 2, Interactive: true})).To(Succeed())
			Expect(m.Animating()).To(BeFalse())
			Expect(m.Offset()).To(Equal(math.Pi / 2))
			Expect(m.SelectedIndex()).To(Equal(1))

			clock.Advance(time.Second)
			Expect(m.Offset()).To(Equal(math.Pi / 2))
		})

		It("falls back to defaults for malformed state", func() {
			m.SetData(compass)
			err := m.Restore(radar.Snapshot{MaxValue: 3, Data: compass, Selected: 9})
			Expect(errors.Is(err, radar.ErrMalformedSnapshot)).To(BeTrue())
			Expect(m.MaxValue()).To(Equal(radar.DefaultMaxValue))
			Expect(m.HasData()).To(BeFalse())
			Expect(m.Interactive()).To(BeFalse())
		})

		DescribeTable("validation",
			func(s radar.Snapshot, field string) {
				err := s.Validate()
				var se *radar.SnapshotError
				Expect(errors.As(err, &se)).To(BeTrue())
				Expect(se.Field).To(Equal(field))
			},
			Entry("negative max", radar.Snapshot{MaxValue: -1}, "max_value"),
			Entry("nan offset", radar.Snapshot{MaxValue: 5, Offset: math.NaN()}, "offset"),
			Entry("interactive without data", radar.Snapshot{MaxValue: 5, Interactive: true}, "interactive"),
			Entry("negative value", radar.Snapshot{MaxValue: 5, Data: []radar.DataPoint{{Name: "A", Value: 1}, {Name: "B", Value: -1}}}, "data[1].value"),
		)
	})
})
