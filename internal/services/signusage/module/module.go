// Package module exposes the sign usage service to the api modules. It
// has no routes of its own; stats serves the reads
package module

import (
	"akkadian/internal/modkit"
	"akkadian/internal/modkit/httpkit"
	"akkadian/internal/services/signusage/domain"
	"akkadian/internal/services/signusage/repo"
	"akkadian/internal/services/signusage/service"
)

// Ports are what other modules take from sign usage
type Ports struct {
	Recorder domain.RecorderPort
	Query    domain.QueryPort
	// Service adds RecordAsync and Drain for in process callers
	Service *service.Service
}

// Module holds the service; a nil deps.CH leaves it disabled
type Module struct{ ports Ports }

// New builds the service over clickhouse when configured
func New(deps modkit.Deps) *Module {
	var storage repo.Storage
	if r := repo.NewCH(deps.CH); r != nil {
		storage = r
	}
	svc := service.New(storage, service.Config{HardLimit: FromConfig(deps.Cfg).HardLimit})
	return &Module{ports: Ports{Recorder: svc, Query: svc, Service: svc}}
}

// Name is the registry name
func (m *Module) Name() string { return "signusage" }

// Ports returns the Ports struct
func (m *Module) Ports() any { return m.ports }

// MountRoutes mounts nothing
func (m *Module) MountRoutes(httpkit.Router) {}
