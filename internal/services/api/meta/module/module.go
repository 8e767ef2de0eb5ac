// Package module wires the meta endpoints into the API
package module

import (
	"time"

	"akkadian/internal/core/signtable"
	"akkadian/internal/modkit"
	"akkadian/internal/modkit/httpkit"
	"akkadian/internal/modkit/module"
	"akkadian/internal/platform/logger"
	"akkadian/internal/platform/store"
	metahttp "akkadian/internal/services/api/meta/http"
)

// ServiceName is reported by /health and /service
const ServiceName = "akkadian-api"

// Module serves /meta
type Module struct {
	b  modkit.Built
	hd metahttp.Deps
}

// New builds the module. A sign table that fails to load is reported by
// /meta/signs rather than stopping the server
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	tbl, err := signtable.Default()
	if err != nil {
		logger.Named("meta").Error().Err(err).Msg("sign table failed to load")
	}

	hd := metahttp.Deps{
		ServiceName: ServiceName,
		StartedAt:   time.Now(),
		Table:       tbl,
		Modules:     module.Names,
		Probes:      []metahttp.Probe{probe("pg", deps.PG), probe("ch", deps.CH)},
	}
	metahttp.Document(httpkit.V1 + b.Prefix)
	return &Module{b: b, hd: hd}
}

// probe pings seam when it can; a nil or unpingable seam is skipped
func probe(name string, seam any) metahttp.Probe {
	p := metahttp.Probe{Name: name}
	if pg, ok := seam.(store.Pinger); ok {
		p.Ping = pg.Ping
	}
	return p
}

// Name is the registry name
func (m *Module) Name() string { return m.b.Name }

// Ports is nil; meta exports nothing
func (m *Module) Ports() any { return nil }

// MountRoutes mounts under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(r httpkit.Router) { metahttp.Register(r, m.hd) })
}
