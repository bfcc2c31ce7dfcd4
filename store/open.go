package store

import (
	"context"
	"time"
)

const (
	Driver_Memory   = "memory"
	Driver_Redis    = "redis"
	Driver_Postgres = Dialect_Postgres
	Driver_MySQL    = Dialect_MySQL
)

type Options struct {
	Driver         string
	DSN            string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisPrefix    string
	ConnectTimeout time.Duration
}

// Open builds the configured backend. SQL backends are migrated before use.
func Open(ctx context.Context, opts Options) (Store, error) {
	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	switch opts.Driver {
	case "", Driver_Memory:
		return NewMemoryStore(), nil
	case Driver_Redis:
		client, err := ConnectRedis(opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, opts.RedisPrefix), nil
	case Driver_Postgres, Driver_MySQL:
		db, err := connectSQL(opts.Driver, opts.DSN, timeout)
		if err != nil {
			return nil, err
		}
		s, err := NewSQLStore(db, opts.Driver)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}

	return nil, ErrUnknownDriver
}
