// Package repo provides postgres access for the translation cache
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"akkadian/internal/modkit/repokit"
)

// Schema creates the cache table; applied by the api binary on start up
const Schema = `
create table if not exists translation_cache (
	id          uuid primary key,
	digest      text not null unique,
	source      text not null,
	translation text not null,
	chunks      text[] not null default '{}',
	created_at  timestamptz not null default now()
)`

// Repo is the minimal persistence surface for cached translations
type Repo interface {
	Get(ctx context.Context, digest string) (Row, bool, error)
	Put(ctx context.Context, row Row) error
}

// Row is one cached translation
type Row struct {
	ID          uuid.UUID
	Digest      string
	Source      string
	Translation string
	Chunks      []string
	CreatedAt   time.Time
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Migrate applies Schema
func Migrate(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, Schema)
	return err
}

func (r *queries) Get(ctx context.Context, digest string) (Row, bool, error) {
	const sql = `
select id, digest, source, translation, chunks, created_at
from translation_cache
where digest = $1
`
	var row Row
	err := r.q.QueryRow(ctx, sql, digest).Scan(
		&row.ID, &row.Digest, &row.Source, &row.Translation, &row.Chunks, &row.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Row{}, false, nil
	}
	if err != nil {
		return Row{}, false, err
	}
	return row, true, nil
}

func (r *queries) Put(ctx context.Context, row Row) error {
	const sql = `
insert into translation_cache (id, digest, source, translation, chunks)
values ($1, $2, $3, $4, $5)
on conflict (digest) do nothing
`
	if row.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		row.ID = id
	}
	if row.Chunks == nil {
		row.Chunks = []string{}
	}
	_, err := r.q.Exec(ctx, sql, row.ID, row.Digest, row.Source, row.Translation, row.Chunks)
	return err
}
