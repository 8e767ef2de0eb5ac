// Package module wires cuneiform rendering into the API
package module

import (
	"akkadian/internal/core/cuneify"
	"akkadian/internal/modkit"
	"akkadian/internal/modkit/httpkit"
	"akkadian/internal/services/api/cuneiform/domain"
	chttp "akkadian/internal/services/api/cuneiform/http"
	csvc "akkadian/internal/services/api/cuneiform/service"
)

// Module serves /cuneiform
type Module struct {
	b   modkit.Built
	svc csvc.Service
}

// Ports are what cuneiform consumes from other modules; Usage may be nil
type Ports struct {
	Usage domain.UsagePort
}

// New builds the module over the embedded sign table with the policy
// from CORE_CUNEIFORM_POLICY
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("cuneiform"),
		modkit.WithPrefix("/cuneiform"),
	}, opts...)...)
	cfg := FromConfig(deps.Cfg)

	conv := cuneify.New(cuneify.MustDefault().Table(), cuneify.WithPolicy(cfg.RenderPolicy()))
	svc := csvc.New(csvc.Options{
		Converter:    conv,
		Usage:        modkit.InjectedPorts[Ports](b).Usage,
		TableVersion: conv.Table().Label(),
	})

	chttp.Document(httpkit.V1 + b.Prefix)
	return &Module{b: b, svc: svc}
}

// Name is the registry name
func (m *Module) Name() string { return m.b.Name }

// Ports exposes the cuneiform service
func (m *Module) Ports() any { return m.svc }

// MountRoutes mounts under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(r httpkit.Router) { chttp.Register(r, m.svc) })
}
