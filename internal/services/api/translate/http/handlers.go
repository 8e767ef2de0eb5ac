// Package http provides http transport for translation
package http

import (
	stdhttp "net/http"

	"akkadian/internal/modkit/httpkit"
	"akkadian/internal/modkit/swaggerkit"
	"akkadian/internal/services/api/translate/domain"
	svc "akkadian/internal/services/api/translate/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.TranslateInput](r, "/", h.translate)
	httpkit.Get(r, "/sample", h.sample)
}

// Document adds the module operations to the served OpenAPI document
func Document(prefix string) {
	swaggerkit.Operations(
		swaggerkit.Op{Method: "post", Path: prefix, Summary: "Translate transliteration into English", Tag: "translate"},
		swaggerkit.Op{Method: "get", Path: prefix + "/sample", Summary: "Sample transliteration", Tag: "translate"},
	)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /translate Translate translate
// @Summary Translate transliteration into English
// @Tags translate
// @Accept json
// @Produce json
// @Param payload body domain.TranslateInput true "Translate"
// @Success 200 {object} domain.TranslateOutput "ok"
// @Failure 502 {object} httpkit.Envelope "backend error"
// @Failure 503 {object} httpkit.Envelope "backend unavailable"
// @Failure 504 {object} httpkit.Envelope "backend timeout"
// @Router /translate [post]
func (h *handlers) translate(r *stdhttp.Request, in domain.TranslateInput) (any, error) {
	return h.svc.Translate(r.Context(), in)
}

// @Summary Sample transliteration
// @Tags translate
// @Produce json
// @Success 200 {object} domain.SampleOutput "ok"
// @Router /translate/sample [get]
func (h *handlers) sample(r *stdhttp.Request) (any, error) {
	return h.svc.Sample(r.Context())
}
