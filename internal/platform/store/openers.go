package store

import (
	"context"
	"time"

	"gatehouse/internal/platform/store/pg"
)

const pingTimeoutDefault = 3 * time.Second

// openPG opens pg and wraps it with our sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts <= 0 {
		attempts = 20
	}
	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = pingTimeoutDefault
	}

	// ping with retry/backoff using the *pool* directly so the boot probe
	// does not show up in SQL trace lines
	if err := pingWithRetry(ctx, p.Pool.Ping, attempts, timeout); err != nil {
		p.Close()
		return nil, err
	}

	// publish adapter only after the pool is healthy
	a := newPGAdapter(p)
	s.PG = a
	return a, nil
}
