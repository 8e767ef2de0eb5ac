// Package http serves liveness, readiness and build details
package http

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"akkadian/internal/core/signtable"
	"akkadian/internal/core/version"
	"akkadian/internal/modkit/httpkit"
	"akkadian/internal/modkit/swaggerkit"
	perr "akkadian/internal/platform/errors"
)

// ReadyTimeout bounds the whole readiness round
var ReadyTimeout = 2 * time.Second

// Probe is one backend readiness check. A nil Ping means the backend is
// not configured
type Probe struct {
	Name string
	Ping func(context.Context) error
}

// Deps are what the meta routes report on
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Probes      []Probe
	Table       *signtable.Table
	Modules     func() []string
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/signs", h.signs)
}

// Document adds the meta operations to the served OpenAPI document
func Document(prefix string) {
	op := func(path, summary string) swaggerkit.Op {
		return swaggerkit.Op{Method: "get", Path: prefix + path, Summary: summary, Tag: "meta"}
	}
	swaggerkit.Operations(
		op("/health", "Liveness"),
		op("/ready", "Readiness with backend checks"),
		op("/version", "Build and version info"),
		op("/service", "Service uptime and mounted modules"),
		op("/signs", "Loaded sign table"),
	)
}

type handlers struct{ deps Deps }

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// Check is the outcome of one probe: ok, fail or skipped
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Millis int64  `json:"ms"`
}

// ReadyResponse is ok unless a configured backend failed its ping
type ReadyResponse struct {
	Status string  `json:"status"`
	Checks []Check `json:"checks"`
	Now    string  `json:"now"`
}

// ServiceResponse describes the running process
type ServiceResponse struct {
	Name    string   `json:"name"`
	Started string   `json:"started"`
	Uptime  int64    `json:"uptime"`
	Modules []string `json:"modules"`
}

// SignsResponse describes the loaded sign table
type SignsResponse struct {
	Version     int                   `json:"version"`
	Label       string                `json:"label"`
	Keys        int                   `json:"keys"`
	Signs       int                   `json:"signs"`
	Rules       int                   `json:"rules"`
	MaxKeyRunes int                   `json:"max_key_runes"`
	Duplicates  []signtable.Duplicate `json:"duplicates"`
	Build       version.BuildInfo     `json:"build"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Now:     stamp(time.Now()),
	}, nil
}

// ready pings every probe at once; skipped backends count as healthy
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), ReadyTimeout)
	defer cancel()

	checks := make([]Check, len(h.deps.Probes))
	var g errgroup.Group
	for i, p := range h.deps.Probes {
		checks[i] = Check{Name: p.Name, Status: "skipped"}
		if p.Ping == nil {
			continue
		}
		g.Go(func() error {
			start := time.Now()
			err := p.Ping(ctx)
			checks[i].Millis = time.Since(start).Milliseconds()
			if err != nil {
				checks[i].Status, checks[i].Error = "fail", err.Error()
				return nil
			}
			checks[i].Status = "ok"
			return nil
		})
	}
	_ = g.Wait()

	status := "ok"
	for _, c := range checks {
		if c.Status == "fail" {
			status = "fail"
		}
	}
	return ReadyResponse{Status: status, Checks: checks, Now: stamp(time.Now())}, nil
}

func (h *handlers) version(_ *http.Request) (any, error) { return version.Info(), nil }

func (h *handlers) service(_ *http.Request) (any, error) {
	mods := []string{}
	if h.deps.Modules != nil {
		mods = append(mods, h.deps.Modules()...)
	}
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
		Modules: mods,
	}, nil
}

func (h *handlers) signs(_ *http.Request) (any, error) {
	t := h.deps.Table
	if t == nil {
		return nil, perr.Unavailablef("sign table not loaded")
	}
	dups := append([]signtable.Duplicate{}, t.Duplicates...)
	return SignsResponse{
		Version:     t.Version,
		Label:       t.Label(),
		Keys:        t.Len(),
		Signs:       t.Signs,
		Rules:       len(t.Rules),
		MaxKeyRunes: t.MaxKeyRunes,
		Duplicates:  dups,
		Build:       version.Info(),
	}, nil
}
