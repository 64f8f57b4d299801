package tokenstore

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"blogia/blog-client/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the store selected by cfg.Backend. The returned closer
// releases the database or redis connection and is never nil.
func Open(ctx context.Context, cfg config.TokenStoreConfig) (Store, io.Closer, error) {
	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}

	switch cfg.Backend {
	case config.TokenStoreMemory:
		return NewMemoryStore(), nopCloser{}, nil
	case config.TokenStoreFile, "":
		s, err := NewFileStore(cfg.File, key)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser{}, nil
	case config.TokenStorePostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(30 * time.Minute)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		s, err := NewPostgresStore(ctx, db, key)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return s, db, nil
	case config.TokenStoreRedis:
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opt)

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		s, err := NewRedisStore(client, key)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return s, client, nil
	default:
		return nil, nil, fmt.Errorf("unknown token store backend %q", cfg.Backend)
	}
}
