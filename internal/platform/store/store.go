// Package store is the storage seam. Postgres is the only backend and it is optional;
// a Store with a nil PG is valid and every caller must treat the registry as absent
package store

import (
	"context"
	"errors"

	perr "jobmail/internal/platform/errors"
	"jobmail/internal/platform/logger"
)

// Store holds the opened backends
type Store struct {
	// Log is handed to the query tracer; zero means a no op logger
	Log logger.Logger

	// PG is nil when postgres is disabled
	PG TxRunner
}

// Row is the scan contract for a single row
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a statement did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the sql surface repos see
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also open a transaction
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Open connects the backends enabled in cfg
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Logger()

	if cfg.PG.Enabled {
		if cfg.PG.URL == "" {
			return nil, perr.InvalidArgf("postgres enabled without a url")
		}
		a, err := openPG(ctx, cfg.AppName, cfg.PG, s.Log)
		if err != nil {
			return nil, err
		}
		s.PG = a
	}
	return s, nil
}

// Guard pings every backend that can be pinged
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	if p, ok := s.PG.(Pinger); ok && s.PG != nil {
		if err := p.Ping(ctx); err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnavailable, "pg")
		}
	}
	return nil
}

// Close releases every opened backend; nil backends are skipped
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
