package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/matchday/internal/adapters/mq/queue"
	"github.com/okian/matchday/internal/adapters/mq/worker"
	"github.com/okian/matchday/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestPool(t *testing.T) {
	convey.Convey("Given a started pool", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		pool := worker.NewPool(4, 16)
		pool.Start(ctx)

		convey.Convey("When a command succeeds", func() {
			v, err := pool.Do(ctx, queue.NewCommand("c1", "career-a", "train", func(context.Context) (any, error) {
				return 42, nil
			}))

			convey.Convey("Then its value is returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(v, convey.ShouldEqual, 42)
			})
		})

		convey.Convey("When a command is rejected", func() {
			boom := errors.New("insufficient energy")
			_, err := pool.Do(ctx, queue.NewCommand("c1", "career-a", "train", func(context.Context) (any, error) {
				return nil, boom
			}))

			convey.Convey("Then the error is passed through", func() {
				convey.So(errors.Is(err, boom), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a command panics", func() {
			_, err := pool.Do(ctx, queue.NewCommand("c1", "career-a", "tick", func(context.Context) (any, error) {
				panic("nil match")
			}))

			convey.Convey("Then it fails and the worker keeps serving", func() {
				convey.So(errors.Is(err, worker.ErrCommandFailed), convey.ShouldBeTrue)
				v, err := pool.Do(ctx, queue.NewCommand("c2", "career-a", "tick", func(context.Context) (any, error) {
					return "ok", nil
				}))
				convey.So(err, convey.ShouldBeNil)
				convey.So(v, convey.ShouldEqual, "ok")
			})
		})

		convey.Convey("When many commands target one career concurrently", func() {
			var (
				wg      sync.WaitGroup
				counter int
				active  int
				overlap bool
			)
			for i := range 100 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, _ = pool.Do(ctx, queue.NewCommand(fmt.Sprint(i), "career-b", "tick", func(context.Context) (any, error) {
						active++
						if active > 1 {
							overlap = true
						}
						counter++
						active--
						return nil, nil
					}))
				}()
			}
			wg.Wait()

			convey.Convey("Then they never overlap and none are lost", func() {
				convey.So(overlap, convey.ShouldBeFalse)
				convey.So(counter, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When the same career is sharded twice", func() {
			convey.Convey("Then it lands on the same worker", func() {
				convey.So(pool.Shard("career-c"), convey.ShouldEqual, pool.Shard("career-c"))
				convey.So(pool.Shard("career-c"), convey.ShouldBeLessThan, pool.Size())
			})
		})

		convey.Convey("When the pool is shut down", func() {
			sctx, scancel := context.WithTimeout(context.Background(), time.Second)
			defer scancel()
			convey.So(pool.Shutdown(sctx), convey.ShouldBeNil)

			convey.Convey("Then new commands are refused", func() {
				err := pool.Submit(ctx, queue.NewCommand("c1", "career-a", "tick", func(context.Context) (any, error) {
					return nil, nil
				}))
				convey.So(errors.Is(err, worker.ErrStopped), convey.ShouldBeTrue)
			})

			convey.Convey("Then Do reports the command as never queued", func() {
				ran := false
				_, err := pool.Do(ctx, queue.NewCommand("c2", "career-a", "tick", func(context.Context) (any, error) {
					ran = true
					return nil, nil
				}))
				convey.So(errors.Is(err, worker.ErrRejected), convey.ShouldBeTrue)
				convey.So(errors.Is(err, worker.ErrStopped), convey.ShouldBeTrue)
				convey.So(ran, convey.ShouldBeFalse)
			})
		})
	})

	convey.Convey("Given a pool whose only worker is blocked", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		pool := worker.NewPool(1, 1)
		pool.Start(ctx)
		release := make(chan struct{})
		started := make(chan struct{})
		convey.So(pool.Submit(ctx, queue.NewCommand("block", "x", "tick", func(context.Context) (any, error) {
			close(started)
			<-release
			return nil, nil
		})), convey.ShouldBeNil)
		<-started
		convey.So(pool.Submit(ctx, queue.NewCommand("fill", "x", "tick", func(context.Context) (any, error) {
			return nil, nil
		})), convey.ShouldBeNil)

		convey.Convey("Then the next command is refused as busy", func() {
			err := pool.Submit(ctx, queue.NewCommand("over", "x", "tick", func(context.Context) (any, error) {
				return nil, nil
			}))
			convey.So(errors.Is(err, worker.ErrBusy), convey.ShouldBeTrue)
			convey.So(errors.Is(err, queue.ErrQueueFull), convey.ShouldBeTrue)
			close(release)
		})
	})
}
