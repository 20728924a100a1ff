// Package radar models an interactive radar (spider) chart.
//
// A [Model] owns the ordered data points, the ring count and the selection,
// and coordinates the two engines underneath it:
//
//   - layout.Engine computes spoke, ring and label geometry on demand
//   - anim.Animator rotates the chart so the selected spoke points up
//
// Every mutation notifies registered [Listener]s synchronously, in
// registration order.
//
// # Example
//
//	m := radar.New(radar.WithBounds(400, 400))
//	m.SetData([]radar.DataPoint{{Name: "N", Value: 1}, {Name: "E", Value: 2}})
//	m.SetInteractive(true)
//	m.TurnCCW()
//	l := m.Layout()
//
// # Thread Safety
//
// A Model is NOT thread-safe. It must be used from the goroutine that owns
// the host's event loop, and the anim.Scheduler given to it must run
// callbacks on that same goroutine. Without WithScheduler the model uses
// anim.Blocking, which sleeps on the calling goroutine for the length of a
// rotation; interactive hosts always pass their own scheduler.
package radar
