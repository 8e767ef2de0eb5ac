// Package http provides http transport for cuneiform rendering
package http

import (
	stdhttp "net/http"

	"akkadian/internal/modkit/httpkit"
	"akkadian/internal/modkit/swaggerkit"
	"akkadian/internal/services/api/cuneiform/domain"
	svc "akkadian/internal/services/api/cuneiform/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.RenderInput](r, "/render", h.render)
	httpkit.PostJSON[domain.RenderInput](r, "/analyze", h.analyze)
	httpkit.PostJSON[domain.NormalizeInput](r, "/normalize", h.normalize)
}

// Document adds the module operations to the served OpenAPI document
func Document(prefix string) {
	swaggerkit.Operations(
		swaggerkit.Op{Method: "post", Path: prefix + "/render", Summary: "Render transliteration as cuneiform", Tag: "cuneiform"},
		swaggerkit.Op{Method: "post", Path: prefix + "/analyze", Summary: "Render and expose every pipeline stage", Tag: "cuneiform"},
		swaggerkit.Op{Method: "post", Path: prefix + "/normalize", Summary: "Normalize transliteration", Tag: "cuneiform"},
	)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /cuneiform/render Cuneiform render
// @Summary Render transliteration as cuneiform
// @Tags cuneiform
// @Accept json
// @Produce json
// @Param payload body domain.RenderInput true "Render"
// @Success 200 {object} domain.RenderOutput "ok"
// @Failure 400 {object} httpkit.Envelope "bad input"
// @Router /cuneiform/render [post]
func (h *handlers) render(r *stdhttp.Request, in domain.RenderInput) (any, error) {
	return h.svc.Render(r.Context(), in)
}

// swagger:route POST /cuneiform/analyze Cuneiform analyze
// @Summary Render and expose every pipeline stage
// @Tags cuneiform
// @Accept json
// @Produce json
// @Param payload body domain.RenderInput true "Analyze"
// @Success 200 {object} domain.AnalyzeOutput "ok"
// @Router /cuneiform/analyze [post]
func (h *handlers) analyze(r *stdhttp.Request, in domain.RenderInput) (any, error) {
	return h.svc.Analyze(r.Context(), in)
}

// @Summary Normalize transliteration
// @Tags cuneiform
// @Accept json
// @Produce json
// @Param payload body domain.NormalizeInput true "Normalize"
// @Success 200 {object} domain.NormalizeOutput "ok"
// @Router /cuneiform/normalize [post]
func (h *handlers) normalize(r *stdhttp.Request, in domain.NormalizeInput) (any, error) {
	return h.svc.Normalize(r.Context(), in)
}
