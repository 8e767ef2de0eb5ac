// Package logger owns the process zerolog logger and derives request and
// component loggers from it
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"akkadian/internal/platform/config/raw"
	pnet "akkadian/internal/platform/net"
)

// Logger is zerolog's logger under our name
type Logger = zerolog.Logger

// Options shape the root logger
type Options struct {
	Level       string
	Format      string // console or json
	Service     string
	Writer      io.Writer
	WithCaller  bool
	SampleEvery int
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_CALLER and
// LOG_SAMPLE_EVERY
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       env.Get("LEVEL", "info"),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", ""),
		WithCaller:  env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	once sync.Once
	root atomic.Pointer[Logger]
)

// Init builds the root logger from opt. Only the first call, or the
// implicit one in Get, has any effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		var w io.Writer = os.Stdout
		if opt.Writer != nil {
			w = opt.Writer
		}
		if opt.Format == "console" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opt.Level)))
		if err != nil || opt.Level == "" {
			lvl = zerolog.InfoLevel
		}

		zc := zerolog.New(w).Level(lvl).With().Timestamp()
		if opt.Service != "" {
			zc = zc.Str("service", opt.Service)
		}
		if bi, ok := debug.ReadBuildInfo(); ok {
			zc = zc.Str("go", bi.GoVersion)
		}
		if opt.WithCaller {
			zc = zc.Caller()
		}
		l := zc.Logger()
		if opt.SampleEvery > 1 {
			l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
		}
		root.Store(&l)
	})
}

// Get returns the root logger, building it from the environment on first use
func Get() *Logger {
	Init(FromEnv())
	return root.Load()
}

// Named is the root logger tagged with component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}

// C is the root logger tagged with the request and conversion ids on ctx
func C(ctx context.Context) *Logger {
	zc := Get().With()
	if id := pnet.RequestID(ctx); id != "" {
		zc = zc.Str("request_id", id)
	}
	if id := pnet.ConversionID(ctx); id != "" {
		zc = zc.Str("conversion_id", id)
	}
	l := zc.Logger()
	return &l
}
