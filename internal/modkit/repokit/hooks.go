package repokit

import (
	"context"
	"fmt"
	"time"

	"akkadian/internal/platform/store"
)

// BeginHook runs first in every transaction opened through WithBeginHooks
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks wraps inner so each Tx runs hooks, in order, before fn.
// A failing hook rolls the transaction back
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hooked{TxRunner: inner, hooks: hooks}
}

type hooked struct {
	TxRunner
	hooks []BeginHook
}

func (h hooked) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	return h.TxRunner.Tx(ctx, func(q store.RowQuerier) error {
		for _, hook := range h.hooks {
			if err := hook(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}

// StatementTimeout bounds each statement of the transaction to d via
// set local; d <= 0 is a no-op
func StatementTimeout(d time.Duration) BeginHook {
	return func(ctx context.Context, q Queryer) error {
		if d <= 0 {
			return nil
		}
		_, err := q.Exec(ctx, fmt.Sprintf("set local statement_timeout = %d", d.Milliseconds()))
		return err
	}
}
