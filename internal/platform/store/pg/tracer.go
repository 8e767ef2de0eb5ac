package pg

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"akkadian/internal/platform/logger"
	pnet "akkadian/internal/platform/net"
)

// QueryEvent is one statement as the store adapter saw it
type QueryEvent struct {
	SQL     string
	Args    []any
	Elapsed time.Duration
	Err     error
	Slow    bool
}

// QueryTracer receives every statement the adapter runs
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// MaxArgLen caps logged string arguments; cache rows carry whole texts
const MaxArgLen = 64

// Tracer logs statements at info and slow ones at warn. It pins its own level
// so SERVICE_PGSQL_LOG_SQL works whatever LOG_LEVEL says
func Tracer(root logger.Logger) QueryTracer {
	return zlTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type zlTracer struct{ log logger.Logger }

func (z zlTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	if id := pnet.RequestID(ctx); id != "" {
		evt = evt.Str("request_id", id)
	}
	evt.Dur("elapsed", ev.Elapsed).
		Bool("slow", ev.Slow).
		Str("sql", squash(ev.SQL)).
		Interface("args", clip(ev.Args)).
		Err(ev.Err).
		Msg("pg query")
}

// squash folds whitespace runs so multi line statements log on one line
func squash(s string) string { return strings.Join(strings.Fields(s), " ") }

func clip(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		if s, ok := a.(string); ok && len(s) > MaxArgLen {
			// keep whole runes
			cut := MaxArgLen
			for cut > 0 && !isRuneStart(s[cut]) {
				cut--
			}
			a = s[:cut] + "…"
		}
		out[i] = a
	}
	return out
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }
