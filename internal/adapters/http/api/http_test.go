package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/okian/matchday/internal/adapters/http/api"
	"github.com/okian/matchday/internal/adapters/http/docs"
	"github.com/okian/matchday/internal/adapters/http/live"
	"github.com/okian/matchday/internal/adapters/repository"
	service "github.com/okian/matchday/internal/app"
	"github.com/okian/matchday/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type fixture struct {
	srv   *httptest.Server
	svc   *service.Service
	store *repository.MemoryStore
	hub   *live.Hub
}

func newFixture() *fixture {
	store := repository.NewMemoryStore()
	hub := live.NewHub()
	svc := service.New(
		service.WithWorkerCount(2),
		service.WithSeed(11),
		service.WithStore(store),
		service.WithPublisher(hub),
		service.WithAutosaveDebounce(0),
		service.WithTickIntervals(time.Millisecond, time.Millisecond),
	)
	So(svc.Start(context.Background()), ShouldBeNil)
	return &fixture{
		srv:   httptest.NewServer(api.NewServer(svc, hub).Handler()),
		svc:   svc,
		store: store,
		hub:   hub,
	}
}

func (f *fixture) close() {
	f.srv.Close()
	f.hub.Close()
	f.svc.Stop()
}

// call sends a JSON request and decodes the JSON reply into out when given.
func (f *fixture) call(method, path string, body any, out any, headers ...string) int {
	var buf bytes.Buffer
	if body != nil {
		So(json.NewEncoder(&buf).Encode(body), ShouldBeNil)
	}
	req, err := http.NewRequest(method, f.srv.URL+path, &buf)
	So(err, ShouldBeNil)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := http.DefaultClient.Do(req)
	So(err, ShouldBeNil)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode != http.StatusNoContent {
		So(json.NewDecoder(resp.Body).Decode(out), ShouldBeNil)
	}
	return resp.StatusCode
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (f *fixture) career() service.CareerView {
	var c service.CareerView
	status := f.call(http.MethodPost, "/api/v1/careers", map[string]any{"name": "Sam Rivers", "nationality": "Wales"}, &c)
	So(status, ShouldEqual, http.StatusCreated)
	return c
}

func TestOperationalRoutes(t *testing.T) {
	Convey("Given a running API", t, func() {
		f := newFixture()
		defer f.close()

		Convey("Then the health check answers ok", func() {
			var body map[string]string
			So(f.call(http.MethodGet, "/healthz", nil, &body), ShouldEqual, http.StatusOK)
			So(body["status"], ShouldEqual, "ok")
		})

		Convey("Then stats report a started service", func() {
			var body map[string]any
			So(f.call(http.MethodGet, "/stats", nil, &body), ShouldEqual, http.StatusOK)
			So(body["started"], ShouldEqual, true)
			So(body, ShouldContainKey, "uptimeSeconds")
			So(body, ShouldContainKey, "liveClients")
		})

		Convey("Then metrics are exposed", func() {
			resp, err := http.Get(f.srv.URL + "/metrics")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})

		Convey("Then the shop lists items", func() {
			var items []map[string]any
			So(f.call(http.MethodGet, "/api/v1/items", nil, &items), ShouldEqual, http.StatusOK)
			So(items, ShouldNotBeEmpty)
		})
	})
}

func TestCareerRoutes(t *testing.T) {
	Convey("Given a career created over HTTP", t, func() {
		f := newFixture()
		defer f.close()
		c := f.career()
		base := "/api/v1/careers/" + c.ID

		Convey("When it is fetched", func() {
			var got service.CareerView
			So(f.call(http.MethodGet, base, nil, &got), ShouldEqual, http.StatusOK)
			So(got.Player.Name, ShouldEqual, "Sam Rivers")
		})

		Convey("When an unknown career is fetched", func() {
			var e apiError
			So(f.call(http.MethodGet, "/api/v1/careers/nope", nil, &e), ShouldEqual, http.StatusNotFound)
			So(e.Code, ShouldEqual, "career_not_found")
		})

		Convey("When training is retried with the same idempotency key", func() {
			var first, second service.TrainResult
			body := map[string]string{"attribute": "fitness"}
			So(f.call(http.MethodPost, base+"/train", body, &first, api.IdempotencyHeader, "k-1"), ShouldEqual, http.StatusOK)
			So(f.call(http.MethodPost, base+"/train", body, &second, api.IdempotencyHeader, "k-1"), ShouldEqual, http.StatusOK)

			Convey("Then it is applied once", func() {
				So(second, ShouldResemble, first)
				So(first.Career.Player.Energy, ShouldEqual, c.Player.Energy-20)
			})
		})

		Convey("When the request is malformed", func() {
			req, err := http.NewRequest(http.MethodPost, f.srv.URL+base+"/train", strings.NewReader("{"))
			So(err, ShouldBeNil)
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When training an unknown attribute", func() {
			var e apiError
			So(f.call(http.MethodPost, base+"/train", map[string]string{"attribute": "luck"}, &e), ShouldEqual, http.StatusBadRequest)
			So(e.Code, ShouldEqual, "unknown_attribute")
		})

		Convey("When buying beyond the budget", func() {
			var e apiError
			So(f.call(http.MethodPost, base+"/buy", map[string]string{"item": "boots_speed"}, &e), ShouldEqual, http.StatusConflict)
			So(e.Code, ShouldEqual, "insufficient_cash")
		})

		Convey("When reading the standings", func() {
			var st service.StandingsView
			So(f.call(http.MethodGet, base+"/leagues/2", nil, &st), ShouldEqual, http.StatusOK)
			So(st.Teams, ShouldHaveLength, 10)

			var e apiError
			So(f.call(http.MethodGet, base+"/leagues/7", nil, &e), ShouldEqual, http.StatusBadRequest)
			So(e.Code, ShouldEqual, "unknown_division")
		})

		Convey("When asking the agent for offers", func() {
			var offers []map[string]any
			So(f.call(http.MethodGet, base+"/offers", nil, &offers), ShouldEqual, http.StatusOK)
			So(offers, ShouldHaveLength, 2)
		})
	})
}

func TestMatchRoutes(t *testing.T) {
	Convey("Given a career with a match set up", t, func() {
		f := newFixture()
		defer f.close()
		c := f.career()
		base := "/api/v1/careers/" + c.ID

		var mv service.MatchView
		So(f.call(http.MethodPost, base+"/match", nil, &mv), ShouldEqual, http.StatusCreated)
		So(f.call(http.MethodPut, base+"/match/speed", map[string]int{"speed": 0}, &mv), ShouldEqual, http.StatusOK)

		Convey("When the speed is out of range", func() {
			var e apiError
			So(f.call(http.MethodPut, base+"/match/speed", map[string]int{"speed": 9}, &e), ShouldEqual, http.StatusBadRequest)
			So(e.Code, ShouldEqual, "invalid_speed")
		})

		Convey("When the stance is unknown", func() {
			var e apiError
			So(f.call(http.MethodPut, base+"/match/stance", map[string]string{"stance": "PARK_THE_BUS"}, &e), ShouldEqual, http.StatusBadRequest)
			So(e.Code, ShouldEqual, "invalid_stance")
		})

		Convey("When the match is kicked off, ticked and simulated", func() {
			So(f.call(http.MethodPost, base+"/match/kickoff", nil, &mv), ShouldEqual, http.StatusOK)
			var tick service.TickResult
			So(f.call(http.MethodPost, base+"/match/tick", nil, &tick), ShouldEqual, http.StatusOK)
			So(tick.Match.State.Minute, ShouldEqual, 1)
			So(f.call(http.MethodPost, base+"/match/simulate", nil, &tick), ShouldEqual, http.StatusOK)
			So(tick.Match.State.Minute, ShouldEqual, 90)
			So(tick.Match.Options, ShouldHaveLength, 3)

			Convey("Then a second kickoff is a conflict", func() {
				var e apiError
				So(f.call(http.MethodPost, base+"/match/kickoff", nil, &e), ShouldEqual, http.StatusConflict)
				So(e.Code, ShouldEqual, "invalid_phase")
			})

			Convey("Then answering the interview completes the week", func() {
				var res service.FinishResult
				So(f.call(http.MethodPost, base+"/match/interview", map[string]int{"choice": 1}, &res), ShouldEqual, http.StatusOK)
				So(res.Career.Week, ShouldEqual, 2)

				var e apiError
				So(f.call(http.MethodGet, base+"/match", nil, &e), ShouldEqual, http.StatusConflict)
				So(e.Code, ShouldEqual, "no_match")
			})
		})

		Convey("When another match is requested while one is set up", func() {
			var e apiError
			So(f.call(http.MethodPost, base+"/match", map[string]bool{"international": true}, &e), ShouldEqual, http.StatusConflict)
			So(e.Code, ShouldEqual, "match_in_progress")
		})
	})
}

func TestSaveRoutes(t *testing.T) {
	Convey("Given a saved career", t, func() {
		f := newFixture()
		defer f.close()
		c := f.career()

		var meta repository.Slot
		So(f.call(http.MethodPost, "/api/v1/careers/"+c.ID+"/save", map[string]string{"slot": "alpha"}, &meta), ShouldEqual, http.StatusOK)
		So(meta.Name, ShouldEqual, "alpha")

		Convey("When it is loaded", func() {
			var got service.CareerView
			So(f.call(http.MethodPost, "/api/v1/careers/load", map[string]string{"slot": "alpha"}, &got), ShouldEqual, http.StatusOK)
			So(got.Player, ShouldResemble, c.Player)
		})

		Convey("When a missing slot is loaded", func() {
			var e apiError
			So(f.call(http.MethodPost, "/api/v1/careers/load", map[string]string{"slot": "beta"}, &e), ShouldEqual, http.StatusNotFound)
			So(e.Code, ShouldEqual, "save_not_found")
		})

		Convey("When a corrupt save is loaded", func() {
			So(f.store.Put(context.Background(), repository.Slot{Name: "junk"}, []byte(`{"player":{},"leagues":[]}`)), ShouldBeNil)
			var e apiError
			So(f.call(http.MethodPost, "/api/v1/careers/load", map[string]string{"slot": "junk"}, &e), ShouldEqual, http.StatusUnprocessableEntity)
			So(e.Code, ShouldEqual, "corrupt_save")
		})

		Convey("When it is deleted", func() {
			var e apiError
			So(f.call(http.MethodDelete, "/api/v1/saves/alpha", nil, &e), ShouldEqual, http.StatusBadRequest)
			So(e.Code, ShouldEqual, "confirmation_required")
			So(f.call(http.MethodDelete, "/api/v1/saves/alpha?confirm=true", nil, nil), ShouldEqual, http.StatusNoContent)

			var slots []repository.Slot
			So(f.call(http.MethodGet, "/api/v1/saves", nil, &slots), ShouldEqual, http.StatusOK)
			So(slots, ShouldBeEmpty)
		})
	})
}

func TestLiveRoute(t *testing.T) {
	Convey("Given a career with a live subscriber", t, func() {
		f := newFixture()
		defer f.close()
		c := f.career()
		wsURL := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/ws/careers/"

		conn, _, err := websocket.DefaultDialer.Dial(wsURL+c.ID+"/match", nil)
		So(err, ShouldBeNil)
		defer conn.Close()

		Convey("When a match is set up", func() {
			deadline := time.Now().Add(2 * time.Second)
			for f.hub.ClientCount() == 0 && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
			}
			var mv service.MatchView
			So(f.call(http.MethodPost, "/api/v1/careers/"+c.ID+"/match", nil, &mv), ShouldEqual, http.StatusCreated)

			Convey("Then the subscriber is told", func() {
				_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
				var u service.MatchUpdate
				So(conn.ReadJSON(&u), ShouldBeNil)
				So(u.CareerID, ShouldEqual, c.ID)
				So(u.Kind, ShouldEqual, "created")
			})
		})

		Convey("When subscribing to an unknown career", func() {
			_, resp, err := websocket.DefaultDialer.Dial(wsURL+"nope/match", nil)
			So(err, ShouldNotBeNil)
			So(resp, ShouldNotBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestRoutesDocumented(t *testing.T) {
	Convey("Given the router and the API reference", t, func() {
		doc, err := docs.Parse()
		So(err, ShouldBeNil)
		documented := doc.Operations()

		hub := live.NewHub()
		defer hub.Close()
		router, ok := api.NewServer(nil, hub).Handler().(*mux.Router)
		So(ok, ShouldBeTrue)

		Convey("Then every API route appears in the reference", func() {
			pattern := regexp.MustCompile(`\{(\w+):[^}]+\}`)
			var missing []string
			err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
				tpl, err := route.GetPathTemplate()
				if err != nil {
					return nil
				}
				methods, err := route.GetMethods()
				if err != nil {
					return nil
				}
				if tpl == "/api-docs" || strings.HasPrefix(tpl, "/openapi.") {
					return nil
				}
				tpl = pattern.ReplaceAllString(tpl, "{$1}")
				for _, m := range methods {
					if !slices.Contains(documented, m+" "+tpl) {
						missing = append(missing, m+" "+tpl)
					}
				}
				return nil
			})
			So(err, ShouldBeNil)
			So(missing, ShouldBeEmpty)
		})
	})
}
