package service_test

import (
	"context"
	"testing"
	"time"

	service "github.com/okian/matchday/internal/app"
	"github.com/okian/matchday/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestServiceOptions(t *testing.T) {
	Convey("Given an unconfigured service", t, func() {
		stats := service.New().GetStats()

		Convey("Then it is idle with the default queue", func() {
			So(stats["started"], ShouldBeFalse)
			So(stats["queueSize"], ShouldEqual, 1024)
			So(stats["careers"], ShouldEqual, 0)
		})
	})

	Convey("Given explicit pool and dedupe sizes", t, func() {
		stats := service.New(
			service.WithWorkerCount(8),
			service.WithQueueSize(50_000),
			service.WithDedupeSize(25_000),
			service.WithTickIntervals(time.Millisecond, time.Millisecond),
		).GetStats()

		Convey("Then stats echo them back", func() {
			So(stats["workerCount"], ShouldEqual, 8)
			So(stats["queueSize"], ShouldEqual, 50_000)
			So(stats["dedupeSize"], ShouldEqual, 25_000)
		})
	})
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a service without autosave", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		svc := service.New(service.WithAutosaveDebounce(0))
		defer svc.Stop()

		Convey("When it starts", func() {
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then it reports a live pool", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
				So(stats, ShouldContainKey, "queueLength")
				So(stats, ShouldContainKey, "dedupeEntries")
			})

			Convey("Then a second start changes nothing", func() {
				So(svc.Start(ctx), ShouldBeNil)
				So(svc.GetStats()["started"], ShouldBeTrue)
			})

			Convey("When it stops", func() {
				svc.Stop()

				Convey("Then new careers are refused", func() {
					So(svc.GetStats()["started"], ShouldBeFalse)
					_, err := svc.CreateCareer(ctx, service.CreateRequest{})
					So(err, ShouldEqual, service.ErrNotStarted)
				})

				Convey("Then a second stop is harmless", func() {
					So(svc.Stop, ShouldNotPanic)
				})
			})
		})
	})

	Convey("Given a retry schedule cron cannot parse", t, func() {
		svc := service.New(service.WithAutosaveRetrySchedule("every now and then"))

		Convey("Then start fails and leaves it idle", func() {
			So(svc.Start(context.Background()), ShouldNotBeNil)
			So(svc.GetStats()["started"], ShouldBeFalse)
		})
	})
}
