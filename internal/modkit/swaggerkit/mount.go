// Package swaggerkit assembles the OpenAPI document from what modules
// register and serves it with the swagger ui
package swaggerkit

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"akkadian/internal/platform/config"
	phttp "akkadian/internal/platform/net/http"
)

// DocsPath is where the ui lives; the document is DocsPath + "/doc.json"
const DocsPath = "/api/docs"

// Mount serves the ui and document when enabled. CORE_API_DOCS_TITLE_SUFFIX
// is appended to the document title
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	title := "Akkadian API"
	if sfx := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); sfx != "" {
		title += " " + sfx
	}

	r.Get(DocsPath, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, DocsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(DocsPath+"/doc.json", serveDocJSON(title))
	r.Handle(DocsPath+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("akkadian"),
		httpSwagger.URL(DocsPath+"/doc.json"),
	))
}
