// Package repo provides clickhouse access for sign usage
package repo

import (
	"context"
	"errors"

	"akkadian/internal/modkit/repokit"
	"akkadian/internal/platform/store"
	"akkadian/internal/services/signusage/domain"
)

// Table is the clickhouse table occurrences land in
const Table = "sign_occurrences"

// Schema is the DDL the repo expects
const Schema = `
CREATE TABLE IF NOT EXISTS sign_occurrences (
	conversion_id UUID,
	recorded_at   DateTime64(3, 'UTC'),
	table_version LowCardinality(String),
	source        LowCardinality(String),
	line          UInt32,
	key           String,
	sign          LowCardinality(String),
	count         UInt32
) ENGINE = MergeTree
PARTITION BY toYYYYMM(recorded_at)
ORDER BY (sign, recorded_at, conversion_id)
`

// Migrate applies Schema through db
func Migrate(ctx context.Context, db repokit.Clickhouse) error {
	ex, ok := db.(store.CHExecer)
	if !ok {
		return errors.New("signusage: clickhouse seam cannot exec ddl")
	}
	return ex.Exec(ctx, Schema)
}

// Storage is the persistence surface for sign usage
type Storage interface {
	Insert(ctx context.Context, b domain.Batch) error
	TopSigns(ctx context.Context, w domain.Window, limit int) ([]domain.SignCount, error)
}

// CH implements Storage over the clickhouse seam
type CH struct{ db repokit.Clickhouse }

// NewCH returns nil when db is nil so callers can treat analytics as disabled
func NewCH(db repokit.Clickhouse) *CH {
	if db == nil {
		return nil
	}
	return &CH{db: db}
}

// Insert writes one row per occurrence
func (r *CH) Insert(ctx context.Context, b domain.Batch) error {
	if len(b.Occurrences) == 0 {
		return nil
	}
	at := b.At.UTC()
	rows := make([][]any, 0, len(b.Occurrences))
	for _, o := range b.Occurrences {
		rows = append(rows, []any{
			b.ConversionID, at, b.TableVersion, b.Source,
			uint32(o.Line), o.Key, o.Sign, uint32(o.Count),
		})
	}
	return r.db.Insert(ctx, Table, rows)
}

// TopSigns sums counts per sign in the window, most frequent first
func (r *CH) TopSigns(ctx context.Context, w domain.Window, limit int) ([]domain.SignCount, error) {
	const sql = `
select sign, any(key) as key, sum(count) as total, uniqExact(conversion_id) as conversions
from sign_occurrences
where recorded_at >= ? and recorded_at < ?
group by sign
order by total desc, sign asc
limit ?
`
	rows, err := r.db.Query(ctx, sql, w.Since.UTC(), w.Until.UTC(), uint64(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SignCount
	for rows.Next() {
		var (
			sc          domain.SignCount
			total, conv uint64
		)
		if err := rows.Scan(&sc.Sign, &sc.Key, &total, &conv); err != nil {
			return nil, err
		}
		sc.Count, sc.Conversions = int64(total), int64(conv)
		out = append(out, sc)
	}
	return out, rows.Err()
}
