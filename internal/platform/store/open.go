package store

import (
	"context"
	"time"

	perr "jobmail/internal/platform/errors"
	"jobmail/internal/platform/logger"
	"jobmail/internal/platform/store/pg"
)

// Config selects and configures the backends Open connects
type Config struct {
	AppName string
	PG      PGConfig
}

// PGConfig configures the run registry pool. Zero retry and timeout values take the defaults below
type PGConfig struct {
	Enabled        bool
	URL            string
	MaxConns       int32
	LogSQL         bool
	SlowQueryMs    int
	ConnectRetries int
	PingTimeout    time.Duration
}

// Option adjusts the Store before backends open
type Option func(*Store) error

// WithLogger hands log to the query tracer
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error { s.Log = log; return nil }
}

const (
	defaultConnectRetries = 12
	defaultPingTimeout    = 3 * time.Second
	backoffStart          = 150 * time.Millisecond
	backoffCeiling        = 2 * time.Second
)

// openPG opens the pool and only returns it once a ping succeeds
func openPG(ctx context.Context, appName string, cfg PGConfig, log logger.Logger) (*pgAdapter, error) {
	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(log)
	}
	p, err := pg.Open(ctx, pg.Config{URL: cfg.URL, MaxConns: cfg.MaxConns, AppName: appName, SlowMs: cfg.SlowQueryMs}, tracer, nil)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "postgres config")
	}

	attempts := cfg.ConnectRetries
	if attempts <= 0 {
		attempts = defaultConnectRetries
	}
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = p.Pool.Ping(pctx)
		cancel()
		if lastErr == nil {
			return newPGAdapter(p), nil
		}
		log.Debug().Int("attempt", i+1).Err(lastErr).Msg("postgres not ready")

		select {
		case <-ctx.Done():
			p.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}

	p.Close()
	return nil, perr.Wrapf(lastErr, perr.ErrorCodeUnavailable, "postgres ping failed after %d attempts", attempts)
}
