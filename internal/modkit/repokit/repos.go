// Package repokit is the seam repos are written against, so they never
// import a driver
package repokit

import "akkadian/internal/platform/store"

type (
	// Queryer runs statements, inside or outside a transaction
	Queryer = store.RowQuerier
	// TxRunner is a Queryer that can also open transactions
	TxRunner = store.TxRunner
	// Clickhouse is the columnar seam
	Clickhouse = store.Clickhouse
)

// Binder produces a repo over a Queryer, so one repo type serves both the
// pool and a transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain constructor to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }
