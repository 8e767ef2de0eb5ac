// Package api assembles the akkadian modules behind one versioned router
package api

import (
	"context"
	"time"

	"akkadian/internal/platform/config"
	"akkadian/internal/platform/logger"
	phttp "akkadian/internal/platform/net/http"
	"akkadian/internal/platform/store"

	"akkadian/internal/modkit"
	"akkadian/internal/modkit/httpkit"
	"akkadian/internal/modkit/module"
	"akkadian/internal/modkit/swaggerkit"

	cuneiformmod "akkadian/internal/services/api/cuneiform/module"
	metamod "akkadian/internal/services/api/meta/module"
	searchmod "akkadian/internal/services/api/search/module"
	statsmod "akkadian/internal/services/api/stats/module"
	translatemod "akkadian/internal/services/api/translate/module"

	usagemod "akkadian/internal/services/signusage/module"
)

// Options configure Mount. Config is the unprefixed root; modules read
// their own CORE_* and SERVICE_* keys from it
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router. The returned func waits
// for background sign usage writes and belongs in shutdown
func Mount(r phttp.Router, opt Options) (drain func(context.Context) error) {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	// sign usage first so renders can report to it
	usage := usagemod.New(deps)
	up := module.MustPortsOf[usagemod.Ports](usage)

	mods := []module.Module{
		metamod.New(deps),
		usage,
		cuneiformmod.New(deps, modkit.WithPorts(cuneiformmod.Ports{Usage: up.Service})),
		searchmod.New(deps, modkit.WithPorts(searchmod.Ports{Usage: up.Service})),
		translatemod.New(deps),
		statsmod.New(deps, modkit.WithPorts(statsmod.Ports{Query: up.Query})),
	}

	apiCfg := opt.Config.Prefix("CORE_API_")
	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", []string{"*"}),
		Timeout:     apiCfg.MayDuration("REQUEST_TIMEOUT", 75*time.Second),
		Slow:        apiCfg.MayDuration("SLOW_REQUEST", 2*time.Second),
	})

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountV1(r, stack, func(v1 httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(v1)
		}
	})

	return up.Service.Drain
}
