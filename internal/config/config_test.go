package config_test

import (
	"runtime"
	"testing"
	"time"

	"github.com/okian/matchday/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 1024)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 100_000)
			convey.So(cfg.Storage, convey.ShouldEqual, config.StorageMemory)
			convey.So(cfg.Seed, convey.ShouldEqual, int64(0))
		})

		convey.Convey("Then durations derive from the millisecond fields", func() {
			convey.So(cfg.AutosaveDebounce(), convey.ShouldEqual, time.Second)
			convey.So(cfg.TickNormal(), convey.ShouldEqual, 800*time.Millisecond)
			convey.So(cfg.TickFast(), convey.ShouldEqual, 100*time.Millisecond)
		})

		convey.Convey("Then it validates", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
