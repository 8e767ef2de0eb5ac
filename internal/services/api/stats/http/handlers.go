// Package http provides http transport for stats
package http

import (
	stdhttp "net/http"
	"strconv"

	"akkadian/internal/modkit/httpkit"
	"akkadian/internal/modkit/swaggerkit"
	perr "akkadian/internal/platform/errors"
	"akkadian/internal/platform/net/http/bind"
	"akkadian/internal/services/api/stats/domain"
	svc "akkadian/internal/services/api/stats/service"
)

// Register mounts stats endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// most frequent signs in window
	httpkit.Get(r, "/signs", h.signs)
}

// Document adds the module operations to the served OpenAPI document
func Document(prefix string) {
	swaggerkit.Operations(swaggerkit.Op{Method: "get", Path: prefix + "/signs", Summary: "Most frequent signs", Tag: "stats"})
}

type handlers struct{ svc svc.Service }

// swagger:route GET /stats/signs Stats topSigns
// @Summary Most frequent signs
// @Tags Stats
// @Produce json
// @Param limit query int false "max rows (1..1000)"
// @Param days query int false "window in days"
// @Success 200 {object} domain.TopSignsOutput "ok"
// @Failure 503 {object} httpkit.Envelope "sign usage disabled"
// @Router /stats/signs [get]
func (h *handlers) signs(r *stdhttp.Request) (any, error) {
	var in domain.TopSignsInput
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
	}{{"limit", &in.Limit}, {"days", &in.Days}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s must be an integer", p.name), p.name)
		}
		*p.dst = n
	}
	if err := bind.Validate(in); err != nil {
		return nil, err
	}
	return h.svc.TopSigns(r.Context(), in)
}
