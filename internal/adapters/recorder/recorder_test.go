package recorder_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/matchday/internal/adapters/recorder"
	"github.com/okian/matchday/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestSQLiteRecorder(t *testing.T) {
	Convey("Given a recorder on a temp database", t, func() {
		ctx := context.Background()
		r, err := recorder.NewSQLiteRecorder(ctx, filepath.Join(t.TempDir(), "history.db"))
		So(err, ShouldBeNil)
		defer r.Close()

		base := time.Date(2026, 5, 1, 15, 0, 0, 0, time.UTC)
		for i := range 3 {
			So(r.RecordMatch(ctx, recorder.MatchRecord{
				CareerID:  "career-1",
				Week:      i + 1,
				Opponent:  "Derby Rams",
				HomeScore: i,
				Goals:     1,
				Rating:    6.5,
				PlayedAt:  base.Add(time.Duration(i) * time.Hour),
			}), ShouldBeNil)
		}
		So(r.RecordMatch(ctx, recorder.MatchRecord{CareerID: "career-2", Opponent: "Brazil", International: true, PlayedAt: base}), ShouldBeNil)
		So(r.RecordSeason(ctx, recorder.SeasonRecord{CareerID: "career-1", Team: "Wrexham Dragons", PreviousLeague: 2, LeagueID: 1, Movement: "promoted", EndedAt: base}), ShouldBeNil)

		Convey("When the latest matches of a career are read", func() {
			got, err := r.Matches(ctx, "career-1", 2)
			So(err, ShouldBeNil)

			Convey("Then they come newest first and only for that career", func() {
				So(got, ShouldHaveLength, 2)
				So(got[0].Week, ShouldEqual, 3)
				So(got[1].Week, ShouldEqual, 2)
				So(got[0].PlayedAt.Equal(base.Add(2*time.Hour)), ShouldBeTrue)
			})
		})

		Convey("When an international match is read back", func() {
			got, err := r.Matches(ctx, "career-2", 0)
			So(err, ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			So(got[0].International, ShouldBeTrue)
		})
	})

	Convey("Given the noop recorder", t, func() {
		var r recorder.Recorder = recorder.Noop{}
		So(r.RecordMatch(context.Background(), recorder.MatchRecord{}), ShouldBeNil)
		got, err := r.Matches(context.Background(), "x", 5)
		So(err, ShouldBeNil)
		So(got, ShouldBeEmpty)
	})
}
