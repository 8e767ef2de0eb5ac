// Package http provides http transport for corpus search
package http

import (
	stdhttp "net/http"

	"akkadian/internal/modkit/httpkit"
	"akkadian/internal/modkit/swaggerkit"
	"akkadian/internal/services/api/search/domain"
	svc "akkadian/internal/services/api/search/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.SearchInput](r, "/", h.search)
}

// Document adds the module operations to the served OpenAPI document
func Document(prefix string) {
	swaggerkit.Operations(swaggerkit.Op{Method: "post", Path: prefix, Summary: "Search the corpus for Akkadian artifacts", Tag: "search"})
}

type handlers struct{ svc svc.Service }

// swagger:route POST /search Search search
// @Summary Search the corpus for Akkadian artifacts
// @Tags search
// @Accept json
// @Produce json
// @Param payload body domain.SearchInput true "Search"
// @Success 200 {object} domain.SearchOutput "ok"
// @Failure 502 {object} httpkit.Envelope "corpus site error"
// @Failure 503 {object} httpkit.Envelope "corpus site unavailable"
// @Router /search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	return h.svc.Search(r.Context(), in)
}
