package store

import (
	"context"

	"akkadian/internal/platform/store/ch"
)

// chSeam is *ch.CH with its result sets narrowed to store.Rows. Insert,
// Exec, Ping and Close come straight from the client
type chSeam struct{ *ch.CH }

var (
	_ Clickhouse = chSeam{}
	_ CHExecer   = chSeam{}
	_ Pinger     = chSeam{}
)

func newCHAdapter(c *ch.CH) Clickhouse { return chSeam{c} }

func (s chSeam) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := s.CH.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

// chRows drops the error from Close; the driver reports it again through Err
type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
