package store

import (
	"context"
	"fmt"

	"akkadian/internal/platform/logger"
)

// Option configures Open. An error aborts Open before any backend is dialed
type Option func(*Store) error

// WithLogger routes store and query tracer logs to log, tagged component=store
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log.With().Str("component", "store").Logger()
		return nil
	}
}

// Migration prepares one schema once the backends are open. Run decides
// for itself whether its backend is present
type Migration struct {
	Name string
	Run  func(ctx context.Context, s *Store) error
}

// WithMigrations runs ms in order at the end of Open. A failed migration is
// logged and leaves the store usable; the feature behind it degrades
func WithMigrations(ms ...Migration) Option {
	return func(s *Store) error {
		for _, m := range ms {
			if m.Run == nil {
				return fmt.Errorf("store: migration %q has no Run", m.Name)
			}
		}
		s.migrations = append(s.migrations, ms...)
		return nil
	}
}

// migrate returns the names of failed migrations
func (s *Store) migrate(ctx context.Context) []string {
	var failed []string
	for _, m := range s.migrations {
		if err := m.Run(ctx, s); err != nil {
			s.Log.Error().Err(err).Str("migration", m.Name).Msg("migration failed")
			failed = append(failed, m.Name)
			continue
		}
		s.Log.Debug().Str("migration", m.Name).Msg("migration applied")
	}
	return failed
}
