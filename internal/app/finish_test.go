package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/matchday/internal/domain/league"
	"github.com/okian/matchday/internal/domain/match"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/progression"
	"github.com/okian/matchday/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// onWorker runs fn as a command on the career's worker.
func onWorker(svc *Service, id string, fn func(*session)) {
	_, err := call(context.Background(), svc, id, "", "test", false, func(sess *session) (struct{}, error) {
		fn(sess)
		return struct{}{}, nil
	})
	So(err, ShouldBeNil)
}

func TestFinishKeepsMatchOnFailure(t *testing.T) {
	Convey("Given a career about to end its season with a short top division", t, func() {
		ctx := context.Background()
		svc := New(
			WithWorkerCount(1),
			WithSeed(5),
			WithAutosaveDebounce(0),
			WithTickIntervals(time.Millisecond, time.Millisecond),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		c, err := svc.CreateCareer(ctx, CreateRequest{NewCareer: progression.NewCareer{Name: "Robin Vale"}})
		So(err, ShouldBeNil)

		var removed model.TeamStanding
		onWorker(svc, c.ID, func(sess *session) {
			sess.state.Player.SeasonMatchCount = progression.GamesPerSeason - 1
			top := &sess.state.Divisions[0]
			removed = top.Teams[len(top.Teams)-1]
			top.Teams = top.Teams[:len(top.Teams)-1]
		})

		_, err = svc.StartMatch(ctx, c.ID, "", false)
		So(err, ShouldBeNil)
		_, err = svc.SetSpeed(ctx, c.ID, "", match.Paused)
		So(err, ShouldBeNil)
		_, err = svc.Kickoff(ctx, c.ID, "")
		So(err, ShouldBeNil)
		_, err = svc.Simulate(ctx, c.ID, "")
		So(err, ShouldBeNil)

		Convey("When the interview is answered", func() {
			_, err := svc.Interview(ctx, c.ID, "", 0)
			So(errors.Is(err, league.ErrDivisionSize), ShouldBeTrue)

			Convey("Then the completed match is still held", func() {
				view, err := svc.Career(ctx, c.ID)
				So(err, ShouldBeNil)
				So(view.MatchPhase, ShouldEqual, match.Complete)
				So(view.Player.MatchesPlayed, ShouldEqual, 0)

				_, err = svc.StartMatch(ctx, c.ID, "", false)
				So(errors.Is(err, ErrMatchInProgress), ShouldBeTrue)
			})

			Convey("Then a retry after repair applies the original answer", func() {
				onWorker(svc, c.ID, func(sess *session) {
					top := &sess.state.Divisions[0]
					top.Teams = append(top.Teams, removed)
				})

				res, err := svc.Interview(ctx, c.ID, "", 2)
				So(err, ShouldBeNil)
				So(res.Outcome.Season, ShouldNotBeNil)
				So(*res.Result.InterviewEffect, ShouldResemble, match.InterviewOptions()[0].Effect)
				So(res.Career.Player.MatchesPlayed, ShouldEqual, 1)
				So(res.Career.MatchPhase, ShouldEqual, match.Phase(""))
			})
		})
	})
}
