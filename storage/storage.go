package storage

import (
	"context"
	"fmt"
	"log"

	"newsdesk/config"
)

// Backend is a persistent string key/value store for application state
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Open creates the backend selected by cfg.Backend
func Open(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	var (
		b   Backend
		err error
	)

	switch cfg.Backend {
	case "", config.BackendFile:
		b, err = NewFileStore(cfg.Path)
	case config.BackendMemory:
		b = NewMemoryStore()
	case config.BackendRedis:
		b, err = NewRedisStore(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	case config.BackendSQLite:
		b, err = NewSQLiteStore(cfg.Path)
	case config.BackendS3:
		b, err = NewS3Store(ctx, S3Config{
			Region:       cfg.S3Region,
			Profile:      cfg.S3Profile,
			UsePathStyle: cfg.S3UsePathStyle,
		}, cfg.S3Bucket, cfg.S3Prefix)
	case config.BackendMongo:
		b, err = NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Backend, err)
	}

	log.Printf("✅ Using %s storage", orFile(cfg.Backend))
	return b, nil
}

func orFile(backend string) string {
	if backend == "" {
		return config.BackendFile
	}
	return backend
}
