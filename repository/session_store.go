package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NewSessionRepository returns a Redis store when addr is set and an
// in-memory one otherwise. Redis must answer a PING before it is used.
// The returned func releases the store.
func NewSessionRepository(ctx context.Context, addr string, ttl time.Duration) (SessionRepository, func(), error) {
	if addr == "" {
		slog.Info("using in-memory session store")
		return NewMemorySessionRepository(), func() {}, nil
	}

	repo := NewRedisSessionRepository(addr, ttl)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := repo.Ping(pingCtx); err != nil {
		_ = repo.Close()
		return nil, nil, fmt.Errorf("redis at %s: %w", addr, err)
	}
	slog.Info("using redis session store", "addr", addr)

	return repo, func() {
		if err := repo.Close(); err != nil {
			slog.Warn("closing redis", "error", err)
		}
	}, nil
}
