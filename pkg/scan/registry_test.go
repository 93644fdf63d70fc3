package scan

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// fakeRegistry serves composer manifests and Packagist-shaped documents and
// records every request it receives.
type fakeRegistry struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string

	manifests map[string]string // framework name -> composer.json body
	popular   []string          // popular package names, in rank order
	packages  map[string]string // "vendor/pkg" -> package document body
}

func newFakeRegistry(t *testing.T) *fakeRegistry {
	t.Helper()
	reg := &fakeRegistry{
		manifests: make(map[string]string),
		packages:  make(map[string]string),
	}

	r := chi.NewRouter()
	r.Use(reg.record)
	r.Get("/frameworks/{name}.json", func(w http.ResponseWriter, r *http.Request) {
		body, ok := reg.manifests[chi.URLParam(r, "name")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	})
	r.Get("/slow.json", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	r.Get("/broken.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	r.Get("/explore/popular.json", func(w http.ResponseWriter, r *http.Request) {
		if reg.popular == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		type item struct {
			Name string `json:"name"`
		}
		var doc struct {
			Packages []item `json:"packages"`
		}
		for _, n := range reg.popular {
			doc.Packages = append(doc.Packages, item{Name: n})
		}
		json.NewEncoder(w).Encode(doc)
	})
	r.Get("/packages/{vendor}/{pkg}.json", func(w http.ResponseWriter, r *http.Request) {
		body, ok := reg.packages[chi.URLParam(r, "vendor")+"/"+chi.URLParam(r, "pkg")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	})

	reg.Server = httptest.NewServer(r)
	t.Cleanup(reg.Server.Close)
	return reg
}

func (reg *fakeRegistry) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reg.mu.Lock()
		reg.requests = append(reg.requests, r.URL.Path)
		reg.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (reg *fakeRegistry) requestCount() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.requests)
}

func (reg *fakeRegistry) paths() []string {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return append([]string(nil), reg.requests...)
}

// packageDoc builds a Packagist package document with the given versions,
// each mapping to its require map.
func packageDoc(name string, versions ...string) string {
	var b []byte
	b = append(b, fmt.Sprintf(`{"package": {"name": %q, "versions": {`, name)...)
	for i := 0; i+1 < len(versions); i += 2 {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, fmt.Sprintf(`%q: {"require": %s}`, versions[i], versions[i+1])...)
	}
	b = append(b, "}}}"...)
	return string(b)
}
