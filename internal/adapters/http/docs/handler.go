// Package docs serves the API reference.
package docs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"gopkg.in/yaml.v3"
)

// Error constants.
var (
	ErrServe   = errors.New("api docs serve failed")
	ErrInvalid = errors.New("invalid openapi document")
)

// Document is the part of the OpenAPI document the service reads.
type Document struct {
	OpenAPI string                    `yaml:"openapi"`
	Info    map[string]any            `yaml:"info"`
	Paths   map[string]map[string]any `yaml:"paths"`
}

// Parse decodes the embedded document.
func Parse() (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(OpenAPI, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if doc.OpenAPI == "" || len(doc.Paths) == 0 {
		return Document{}, fmt.Errorf("%w: missing version or paths", ErrInvalid)
	}
	return doc, nil
}

// Operations lists every documented "METHOD path" pair, sorted.
func (d Document) Operations() []string {
	var out []string
	for path, item := range d.Paths {
		for method := range item {
			if method == "parameters" {
				continue
			}
			out = append(out, strings.ToUpper(method)+" "+path)
		}
	}
	sort.Strings(out)
	return out
}

var jsonDocument = sync.OnceValues(func() ([]byte, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(OpenAPI, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return json.Marshal(raw)
})

// Register attaches the reference routes to router:
//
//	GET /api-docs      ReDoc page
//	GET /openapi.yaml  embedded document
//	GET /openapi.json  the same document as JSON
func Register(router *mux.Router) {
	if router == nil {
		panic("router is nil")
	}

	router.HandleFunc("/api-docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexHTML))
	}).Methods(http.MethodGet)

	router.HandleFunc("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	}).Methods(http.MethodGet)

	router.HandleFunc("/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		body, err := jsonDocument()
		if err != nil {
			http.Error(w, fmt.Errorf("%w: %w", ErrServe, err).Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}).Methods(http.MethodGet)
}

const indexHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Matchday API</title>
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <redoc id="redoc-container"></redoc>
    <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
    <script>Redoc.init('/openapi.json', { suppressWarnings: true }, document.getElementById('redoc-container'));</script>
  </body>
</html>`
