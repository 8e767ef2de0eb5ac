// Package module wires translation into the API
package module

import (
	"akkadian/internal/adapters/translator"
	"akkadian/internal/modkit"
	"akkadian/internal/modkit/httpkit"
	"akkadian/internal/platform/logger"
	thttp "akkadian/internal/services/api/translate/http"
	trepo "akkadian/internal/services/api/translate/repo"
	tsvc "akkadian/internal/services/api/translate/service"
)

// Module serves /translate
type Module struct {
	b   modkit.Built
	svc tsvc.Service
}

// New builds the module. Without CORE_TRANSLATE_URL every translation
// answers 503; without postgres nothing is cached
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	cfg := FromConfig(deps.Cfg)
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("translate"),
		modkit.WithPrefix("/translate"),
		modkit.WithMiddlewares(httpkit.Throttle(cfg.MaxInflight, cfg.Backlog, cfg.BacklogWait)),
	}, opts...)...)

	tr := translator.NewFromRemote(
		translator.RemoteOptions{URL: cfg.URL, Timeout: cfg.Timeout, UserAgent: cfg.UserAgent},
		translator.Config{ChunkWords: cfg.ChunkWords, Workers: cfg.Workers},
	)
	if !tr.Available() {
		logger.Named("translate").Warn().Msg("CORE_TRANSLATE_URL not set, translation disabled")
	}

	so := tsvc.Options{Translator: tr, CacheTimeout: cfg.CacheTimeout}
	if cfg.Cache && deps.PG != nil {
		so.DB = deps.PG
		so.Binder = trepo.NewPG()
	}

	thttp.Document(httpkit.V1 + b.Prefix)
	return &Module{b: b, svc: tsvc.New(so)}
}

// Name is the registry name
func (m *Module) Name() string { return m.b.Name }

// Ports exposes the translate service
func (m *Module) Ports() any { return m.svc }

// MountRoutes mounts under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(r httpkit.Router) { thttp.Register(r, m.svc) })
}
