package bus

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLocalBus(t *testing.T) {
	ctx := context.Background()

	Convey("Given a local bus", t, func() {
		b := NewLocalBus()

		Convey("Publish fans out to every subscriber", func() {
			var first, second int
			b.Subscribe(func() { first++ })
			b.Subscribe(func() { second++ })

			b.Publish(ctx)
			b.Publish(ctx)

			So(first, ShouldEqual, 2)
			So(second, ShouldEqual, 2)
		})

		Convey("Publish with no subscribers is a no-op", func() {
			So(func() { b.Publish(ctx) }, ShouldNotPanic)
		})

		Convey("The publisher hears its own signal", func() {
			// Local delivery is self-inclusive; only the cross-instance relay
			// filters out the sender.
			var heard bool
			b.Subscribe(func() { heard = true })

			b.Publish(ctx)
			So(heard, ShouldBeTrue)
		})

		Convey("An unsubscribed handler no longer fires", func() {
			var calls int
			unsubscribe := b.Subscribe(func() { calls++ })

			b.Publish(ctx)
			unsubscribe()
			b.Publish(ctx)

			So(calls, ShouldEqual, 1)
		})

		Convey("Unsubscribing twice is safe", func() {
			unsubscribe := b.Subscribe(func() {})
			unsubscribe()
			So(unsubscribe, ShouldNotPanic)
		})

		Convey("Unsubscribing one handler leaves the others attached", func() {
			var kept, dropped int
			b.Subscribe(func() { kept++ })
			unsubscribe := b.Subscribe(func() { dropped++ })
			unsubscribe()

			b.Publish(ctx)

			So(kept, ShouldEqual, 1)
			So(dropped, ShouldEqual, 0)
		})

		Convey("A handler may publish from inside its callback without deadlocking", func() {
			var depth int
			b.Subscribe(func() {
				if depth == 0 {
					depth++
					b.Publish(ctx)
				}
			})

			So(func() { b.Publish(ctx) }, ShouldNotPanic)
			So(depth, ShouldEqual, 1)
		})
	})
}
