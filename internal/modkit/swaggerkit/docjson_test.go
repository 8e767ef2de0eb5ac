package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "akkadian/internal/platform/net/http"
)

func TestDocument_ErrorResponsesByMethod(t *testing.T) {
	Operations(
		Op{Method: "POST", Path: "/api/v1/test/render", Summary: "Render", Tag: "test"},
		Op{Method: "get", Path: "/api/v1/test/signs", Summary: "Signs"},
	)

	doc := Document("T")
	paths := doc["paths"].(map[string]any)

	cases := []struct {
		path, method string
		want         []string
		absent       []string
	}{
		{"/api/v1/test/render", "post", []string{"200", "400", "422", "500", "503"}, nil},
		{"/api/v1/test/signs", "get", []string{"200", "500", "503"}, []string{"400", "422"}},
	}
	for _, c := range cases {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			node, ok := paths[c.path].(map[string]any)
			if !ok {
				t.Fatalf("path missing: %v", paths)
			}
			resps := node[c.method].(map[string]any)["responses"].(map[string]any)
			for _, k := range c.want {
				if _, ok := resps[k]; !ok {
					t.Errorf("response %s missing", k)
				}
			}
			for _, k := range c.absent {
				if _, ok := resps[k]; ok {
					t.Errorf("response %s unexpected", k)
				}
			}
		})
	}
}

func TestOperations_ReplacesSameRoute(t *testing.T) {
	Operations(Op{Method: "get", Path: "/api/v1/test/dup", Summary: "old"})
	Operations(Op{Method: "GET", Path: "/api/v1/test/dup", Summary: "new"})

	n := 0
	for _, op := range registered() {
		if op.Path == "/api/v1/test/dup" {
			n++
			if op.Summary != "new" {
				t.Fatalf("summary %q", op.Summary)
			}
		}
	}
	if n != 1 {
		t.Fatalf("%d entries", n)
	}
}

func TestMount(t *testing.T) {
	t.Setenv("CORE_API_DOCS_TITLE_SUFFIX", "(dev)")

	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), true)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, DocsPath+"/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if got := doc["info"].(map[string]any)["title"]; got != "Akkadian API (dev)" {
		t.Fatalf("title %v", got)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, DocsPath, nil))
	if rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect status %d", rec.Code)
	}

	off := chi.NewRouter()
	Mount(phttp.AdaptChi(off), false)
	rec = httptest.NewRecorder()
	off.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, DocsPath+"/doc.json", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled status %d", rec.Code)
	}
}
