// Package module wires corpus search into the API
package module

import (
	"akkadian/internal/adapters/cdli"
	"akkadian/internal/core/cuneify"
	"akkadian/internal/modkit"
	"akkadian/internal/modkit/httpkit"
	"akkadian/internal/services/api/search/domain"
	shttp "akkadian/internal/services/api/search/http"
	ssvc "akkadian/internal/services/api/search/service"
)

// Module serves /search
type Module struct {
	b   modkit.Built
	svc ssvc.Service
}

// Ports are what search consumes from other modules; Usage may be nil
type Ports struct {
	Usage domain.UsagePort
}

// New builds the module over a CDLI client configured from CORE_SEARCH_*
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("search"),
		modkit.WithPrefix("/search"),
	}, opts...)...)
	cfg := FromConfig(deps.Cfg)

	client := cdli.NewClient(cdli.Options{
		BaseURL:    cfg.BaseURL,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryBase:  cfg.RetryBase,
	})
	conv := cuneify.MustDefault()
	svc := ssvc.New(ssvc.Options{
		Searcher:     client,
		Converter:    conv,
		Usage:        modkit.InjectedPorts[Ports](b).Usage,
		TableVersion: conv.Table().Label(),
	})

	shttp.Document(httpkit.V1 + b.Prefix)
	return &Module{b: b, svc: svc}
}

// Name is the registry name
func (m *Module) Name() string { return m.b.Name }

// Ports exposes the search service
func (m *Module) Ports() any { return m.svc }

// MountRoutes mounts under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(r httpkit.Router) { shttp.Register(r, m.svc) })
}
