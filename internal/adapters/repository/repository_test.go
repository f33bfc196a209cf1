package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/matchday/internal/adapters/repository"
	"github.com/okian/matchday/internal/domain/catalog"
	"github.com/okian/matchday/internal/domain/league"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func playedSave() model.SaveData {
	p := model.NewPlayer()
	p.Name = "Alex Hale"
	d := league.Initialize(catalog.Default(), p.Team, p.LeagueID)
	d.ApplyMatchResult(p.LeagueID, p.Team, d[2].Teams[1].Name, 2, 0)
	return model.SaveData{
		Player:    p,
		Week:      4,
		Leagues:   d,
		LastSaved: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func mutate(doc []byte, fn func(m map[string]any)) []byte {
	var m map[string]any
	So(json.Unmarshal(doc, &m), ShouldBeNil)
	fn(m)
	out, err := json.Marshal(m)
	So(err, ShouldBeNil)
	return out
}

func TestCodec(t *testing.T) {
	Convey("Given a played career", t, func() {
		data := playedSave()
		doc, err := repository.Encode(data)
		So(err, ShouldBeNil)

		Convey("When it is decoded", func() {
			back, err := repository.Decode(doc)
			So(err, ShouldBeNil)

			Convey("Then the career is restored", func() {
				So(back.Player, ShouldResemble, data.Player)
				So(back.Week, ShouldEqual, 4)
				So(back.Leagues, ShouldResemble, data.Leagues)
				So(back.LastSaved.Equal(data.LastSaved), ShouldBeTrue)
			})
		})

		Convey("When numeric fields are corrupted", func() {
			bad := mutate(doc, func(m map[string]any) {
				pl := m["player"].(map[string]any)
				pl["energy"] = "NaN"
				pl["cash"] = nil
				m["week"] = "soon"
			})
			back, err := repository.Decode(bad)

			Convey("Then they fall back to defaults", func() {
				So(err, ShouldBeNil)
				So(back.Player.Energy, ShouldEqual, 100)
				So(back.Player.Cash, ShouldEqual, int64(100))
				So(back.Week, ShouldEqual, 1)
			})
		})

		Convey("When required parts are missing", func() {
			noPlayer := mutate(doc, func(m map[string]any) { delete(m, "player") })
			shortLeagues := mutate(doc, func(m map[string]any) { m["leagues"] = m["leagues"].([]any)[:2] })
			smallDivision := mutate(doc, func(m map[string]any) {
				l := m["leagues"].([]any)[0].(map[string]any)
				l["teams"] = l["teams"].([]any)[:9]
			})

			Convey("Then the save is reported corrupt", func() {
				for _, b := range [][]byte{[]byte("{not json"), noPlayer, shortLeagues, smallDivision} {
					_, err := repository.Decode(b)
					So(errors.Is(err, repository.ErrCorruptSave), ShouldBeTrue)
				}
			})
		})

		Convey("When the player's club is missing from every division", func() {
			bad := mutate(doc, func(m map[string]any) {
				m["player"].(map[string]any)["team"] = "Nowhere Rovers"
			})
			_, err := repository.Decode(bad)
			So(errors.Is(err, repository.ErrCorruptSave), ShouldBeTrue)
		})

		Convey("When the stored division disagrees with the rosters", func() {
			club := data.Leagues[0].Teams[3].Name
			opponent := data.Leagues[0].Teams[4].Name
			for _, stored := range []any{"abc", 2.0, nil} {
				bad := mutate(doc, func(m map[string]any) {
					pl := m["player"].(map[string]any)
					pl["team"] = club
					pl["leagueId"] = stored
				})
				back, err := repository.Decode(bad)
				So(err, ShouldBeNil)

				So(back.Player.LeagueID, ShouldEqual, 0)
				league.Divisions(back.Leagues).ApplyMatchResult(back.Player.LeagueID, club, opponent, 2, 0)
				row := back.Leagues[0].Teams[back.Leagues[0].Find(club)]
				So(row.Played, ShouldEqual, 1)
				So(row.Points, ShouldEqual, 3)
			}
		})
	})

	Convey("Given an untouched career", t, func() {
		data := playedSave()
		data.Player.Name = model.DefaultName
		data.Week = 1

		Convey("Then it is not encoded", func() {
			So(repository.IsPristine(data), ShouldBeTrue)
			_, err := repository.Encode(data)
			So(errors.Is(err, repository.ErrPristineCareer), ShouldBeTrue)
		})
	})
}

func exerciseStore(s repository.Store) {
	ctx := context.Background()
	data := playedSave()
	doc, err := repository.Encode(data)
	So(err, ShouldBeNil)

	Convey("When a save is written and read back", func() {
		So(s.Put(ctx, repository.SlotOf("slot-a", data), doc), ShouldBeNil)
		got, err := s.Get(ctx, "slot-a")
		So(err, ShouldBeNil)
		So(string(got), ShouldEqual, string(doc))

		Convey("Then it is listed", func() {
			slots, err := s.List(ctx)
			So(err, ShouldBeNil)
			So(slots, ShouldHaveLength, 1)
			So(slots[0].Name, ShouldEqual, "slot-a")
			So(slots[0].Player, ShouldEqual, "Alex Hale")
			So(slots[0].Week, ShouldEqual, 4)
		})

		Convey("Then overwriting replaces it", func() {
			data.Week = 5
			doc2, err := repository.Encode(data)
			So(err, ShouldBeNil)
			So(s.Put(ctx, repository.SlotOf("slot-a", data), doc2), ShouldBeNil)
			got, err := s.Get(ctx, "slot-a")
			So(err, ShouldBeNil)
			So(string(got), ShouldEqual, string(doc2))
		})

		Convey("Then deleting removes it", func() {
			So(s.Delete(ctx, "slot-a"), ShouldBeNil)
			_, err := s.Get(ctx, "slot-a")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			So(errors.Is(s.Delete(ctx, "slot-a"), repository.ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("When several saves exist", func() {
		older := data
		older.LastSaved = data.LastSaved.Add(-time.Hour)
		So(s.Put(ctx, repository.SlotOf("old", older), doc), ShouldBeNil)
		So(s.Put(ctx, repository.SlotOf("new", data), doc), ShouldBeNil)

		Convey("Then the most recent is listed first", func() {
			slots, err := s.List(ctx)
			So(err, ShouldBeNil)
			So(slots, ShouldHaveLength, 2)
			So(slots[0].Name, ShouldEqual, "new")
		})
	})

	Convey("When a slot is unknown or malformed", func() {
		_, err := s.Get(ctx, "missing")
		So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		err = s.Put(ctx, repository.Slot{Name: "bad slot"}, doc)
		So(errors.Is(err, repository.ErrInvalidSlot), ShouldBeTrue)
	})
}

func TestMemoryStore(t *testing.T) {
	Convey("Given a memory store", t, func() {
		s, err := repository.Open(context.Background(), repository.KindMemory)
		So(err, ShouldBeNil)
		defer s.Close()
		exerciseStore(s)
	})
}

func TestSQLiteStore(t *testing.T) {
	Convey("Given a sqlite store on a temp file", t, func() {
		path := filepath.Join(t.TempDir(), "saves.db")
		s, err := repository.Open(context.Background(), repository.KindSQLite, repository.WithSQLitePath(path))
		So(err, ShouldBeNil)
		defer s.Close()
		exerciseStore(s)
	})
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("MATCHDAY_TEST_REDIS_URL")
	if url == "" {
		t.Skip("MATCHDAY_TEST_REDIS_URL not set")
	}
	Convey("Given a redis store", t, func() {
		ctx := context.Background()
		s, err := repository.Open(ctx, repository.KindRedis, repository.WithRedisURL(url))
		So(err, ShouldBeNil)
		defer s.Close()
		for _, slot := range []string{"slot-a", "old", "new"} {
			_ = s.Delete(ctx, slot)
		}
		exerciseStore(s)
	})
}

func TestOpen(t *testing.T) {
	Convey("Given an unknown storage kind", t, func() {
		_, err := repository.Open(context.Background(), "etcd")
		So(err, ShouldNotBeNil)
	})
}
