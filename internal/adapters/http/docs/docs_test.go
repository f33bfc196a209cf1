package docs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	convey.Convey("Given the embedded document", t, func() {
		doc, err := Parse()
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then it is an OpenAPI 3 document", func() {
			convey.So(doc.OpenAPI, convey.ShouldStartWith, "3.")
			convey.So(doc.Info["title"], convey.ShouldEqual, "Matchday API")
		})

		convey.Convey("Then operations list methods and skip shared parameters", func() {
			ops := doc.Operations()
			convey.So(ops, convey.ShouldContain, "POST /api/v1/careers")
			convey.So(ops, convey.ShouldContain, "GET /api/v1/careers/{id}/match")
			convey.So(ops, convey.ShouldContain, "POST /api/v1/careers/{id}/match")
			convey.So(ops, convey.ShouldNotContain, "PARAMETERS /api/v1/careers/{id}")
		})
	})
}

func TestRegister(t *testing.T) {
	convey.Convey("Given a router with the docs routes", t, func() {
		router := mux.NewRouter()
		Register(router)

		get := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
			return w
		}

		convey.Convey("Then the YAML document is served", func() {
			w := get("/openapi.yaml")
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/yaml; charset=utf-8")
			convey.So(w.Body.Bytes(), convey.ShouldResemble, OpenAPI)
		})

		convey.Convey("Then the JSON rendering decodes", func() {
			w := get("/openapi.json")
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			var doc map[string]any
			convey.So(json.Unmarshal(w.Body.Bytes(), &doc), convey.ShouldBeNil)
			convey.So(doc["openapi"], convey.ShouldEqual, "3.0.3")
			convey.So(doc["paths"], convey.ShouldNotBeEmpty)
		})

		convey.Convey("Then the reference page loads the document", func() {
			w := get("/api-docs")
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "text/html; charset=utf-8")
			convey.So(w.Body.String(), convey.ShouldContainSubstring, "redoc-container")
			convey.So(w.Body.String(), convey.ShouldContainSubstring, "/openapi.json")
		})
	})

	convey.Convey("Given a nil router", t, func() {
		convey.So(func() { Register(nil) }, convey.ShouldPanic)
	})
}
