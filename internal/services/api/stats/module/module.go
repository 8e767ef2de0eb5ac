// Package module wires sign usage statistics into the API
package module

import (
	"akkadian/internal/modkit"
	"akkadian/internal/modkit/httpkit"
	statshttp "akkadian/internal/services/api/stats/http"
	statssvc "akkadian/internal/services/api/stats/service"
	usage "akkadian/internal/services/signusage/domain"
)

// Module serves /stats
type Module struct {
	b   modkit.Built
	svc statssvc.Service
}

// Ports are required: stats reads through the sign usage query port
type Ports struct {
	Query usage.QueryPort
}

// New builds the module; it panics without an injected Query port
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("stats"),
		modkit.WithPrefix("/stats"),
	}, opts...)...)

	q := modkit.InjectedPorts[Ports](b).Query
	if q == nil {
		panic("stats module needs the signusage Query port")
	}

	statshttp.Document(httpkit.V1 + b.Prefix)
	return &Module{b: b, svc: statssvc.New(q)}
}

// Name is the registry name
func (m *Module) Name() string { return m.b.Name }

// Ports exposes the stats service
func (m *Module) Ports() any { return m.svc }

// MountRoutes mounts under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(r httpkit.Router) { statshttp.Register(r, m.svc) })
}
