package anim_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/radar/internal/anim"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var _ = Describe("Animator", func() {
	var (
		clock   *anim.ManualClock
		a       *anim.Animator
		frames  []float64
		settles int
	)

	BeforeEach(func() {
		clock = anim.NewManualClock(epoch)
		frames = nil
		settles = 0
		a = anim.New(clock, clock,
			anim.OnFrame(func(off float64) { frames = append(frames, off) }),
			anim.OnSettle(func(float64) { settles++ }),
		)
	})

	It("starts idle at offset zero", func() {
		Expect(a.State()).To(Equal(anim.Idle))
		Expect(a.Offset()).To(BeZero())
		Expect(a.Duration()).To(Equal(anim.DefaultDuration))
	})

	It("does not move the offset before the first tick", func() {
		Expect(a.TurnTo(1, 4)).To(BeTrue())
		Expect(a.Animating()).To(BeTrue())
		Expect(a.Offset()).To(BeZero())
		Expect(clock.Pending()).To(Equal(1))
	})

	It("interpolates linearly and lands exactly on the target", func() {
		a.TurnTo(1, 4)
		target := math.Pi / 2

		clock.Advance(33 * time.Millisecond)
		Expect(a.Offset()).To(BeNumerically("~", target*33.0/400.0, 1e-12))

		clock.Advance(200 * time.Millisecond)
		Expect(a.Offset()).To(BeNumerically(">", 0))
		Expect(a.Offset()).To(BeNumerically("<", target))

		clock.Advance(200 * time.Millisecond)
		Expect(a.Offset()).To(Equal(target))
		Expect(a.State()).To(Equal(anim.Idle))
		Expect(settles).To(Equal(1))
		Expect(clock.Pending()).To(BeZero())
	})

	It("fires a frame callback on every tick, including the settling one", func() {
		a.TurnTo(1, 4)
		clock.Advance(time.Second)
		// ticks at 33ms intervals until progress >= 1 (at 429ms)
		Expect(frames).To(HaveLen(13))
		Expect(frames[len(frames)-1]).To(Equal(math.Pi / 2))
	})

	It("drops requests while a rotation is in flight", func() {
		a.TurnTo(1, 4)
		clock.Advance(100 * time.Millisecond)
		Expect(a.TurnTo(3, 4)).To(BeFalse())
		Expect(a.AnimateTo(1)).To(BeFalse())
		Expect(a.Target()).To(Equal(math.Pi / 2))

		clock.Advance(time.Second)
		Expect(a.Offset()).To(Equal(math.Pi / 2))
	})

	It("ignores SetOffset mid-flight", func() {
		a.TurnTo(1, 4)
		a.SetOffset(2)
		Expect(a.Offset()).To(BeZero())
		clock.Advance(time.Second)
		a.SetOffset(2)
		Expect(a.Offset()).To(Equal(2.0))
	})

	It("snaps to the target when ticks are delayed past the duration", func() {
		a.TurnTo(2, 8)
		clock.Jump(time.Second)
		clock.Advance(33 * time.Millisecond)
		Expect(a.Offset()).To(Equal(math.Pi / 2))
		Expect(frames).To(HaveLen(1))
		Expect(a.Animating()).To(BeFalse())
	})

	It("honours a custom duration and frame interval", func() {
		a = anim.New(clock, clock, anim.WithDuration(100*time.Millisecond), anim.WithFrameInterval(10*time.Millisecond))
		a.TurnTo(1, 4)
		clock.Advance(50 * time.Millisecond)
		Expect(a.Offset()).To(BeNumerically("~", math.Pi/4, 1e-12))
		clock.Advance(50 * time.Millisecond)
		Expect(a.Offset()).To(Equal(math.Pi / 2))
	})

	// The wraparound correction is a fixed 3.0 rad heuristic, so these cases
	// sit on either side of that boundary rather than exercising a general
	// shortest-path rule.
	Describe("wraparound near the 3.0 rad boundary", func() {
		It("starts from 2π when leaving zero for a target above the threshold", func() {
			a.TurnTo(3, 4) // 3π/2
			target := 3 * math.Pi / 2
			prev := 2 * math.Pi
			for i := 0; i < 20; i++ {
				clock.Advance(33 * time.Millisecond)
				Expect(a.Offset()).To(BeNumerically("<=", prev))
				Expect(a.Offset()).To(BeNumerically(">=", target))
				prev = a.Offset()
			}
			Expect(a.Offset()).To(Equal(target))
		})

		It("keeps the direct path for a target just below the threshold", func() {
			a.AnimateTo(2.9)
			clock.Advance(33 * time.Millisecond)
			Expect(a.Offset()).To(BeNumerically("~", 2.9*33.0/400.0, 1e-12))
		})

		It("approaches zero from below when returning from a large offset", func() {
			a.TurnTo(3, 4)
			clock.Advance(time.Second)

			a.TurnTo(0, 4)
			clock.Advance(33 * time.Millisecond)
			start := 3*math.Pi/2 - 2*math.Pi
			Expect(a.Offset()).To(BeNumerically("~", start*(1-33.0/400.0), 1e-12))
			Expect(a.Offset()).To(BeNumerically("<", 0))

			clock.Advance(time.Second)
			Expect(a.Offset()).To(BeZero())
		})
	})

	Describe("Stop", func() {
		It("abandons the rotation in flight and places the offset", func() {
			a.TurnTo(2, 4)
			clock.Advance(100 * time.Millisecond)
			Expect(a.Offset()).To(BeNumerically(">", 0))
			n := len(frames)

			a.Stop(0)
			Expect(a.State()).To(Equal(anim.Idle))
			Expect(a.Offset()).To(BeZero())

			clock.Advance(time.Second)
			Expect(a.Offset()).To(BeZero())
			Expect(frames).To(HaveLen(n))
			Expect(settles).To(BeZero())
			Expect(clock.Pending()).To(BeZero())
		})

		It("moves an idle chart and allows the next rotation", func() {
			a.Stop(1.5)
			Expect(a.Offset()).To(Equal(1.5))
			Expect(a.TurnTo(0, 4)).To(BeTrue())
			clock.Advance(time.Second)
			Expect(a.Offset()).To(BeZero())
		})
	})

	Describe("Redirect", func() {
		It("replaces the rotation in flight", func() {
			a.TurnTo(1, 4)
			clock.Advance(200 * time.Millisecond)
			mid := a.Offset()
			Expect(mid).To(BeNumerically(">", 0))

			a.Redirect(0)
			clock.Advance(33 * time.Millisecond)
			Expect(a.Offset()).To(BeNumerically("<", mid))

			clock.Advance(time.Second)
			Expect(a.Offset()).To(BeZero())
			Expect(settles).To(Equal(1))
			Expect(clock.Pending()).To(BeZero())
		})
	})
})

var _ = Describe("TargetFor", func() {
	It("spaces targets evenly around the circle", func() {
		Expect(anim.TargetFor(2, 4)).To(Equal(math.Pi))
		Expect(anim.TargetFor(0, 7)).To(BeZero())
		Expect(anim.TargetFor(3, 0)).To(BeZero())
	})
})
