package kvstore

import (
	"context"
	"fmt"

	"github.com/kbukum/simplemovies/encryption"
	"github.com/kbukum/simplemovies/logger"
	"github.com/kbukum/simplemovies/redis"
)

// Open builds the Store described by cfg. For redis it verifies the server is
// reachable. The caller closes the result if it implements io.Closer.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (Store, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log = log.WithComponent("kvstore")

	var (
		store Store
		err   error
	)
	switch cfg.Driver {
	case DriverMemory:
		store = NewMemory()
	case DriverFile:
		store, err = OpenFile(cfg.Path, log)
	case DriverRedis:
		store, err = openRedis(ctx, cfg, log)
	default:
		err = fmt.Errorf("kvstore: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Encrypted() {
		c, err := encryption.New(cfg.EncryptionKey, encryption.WithAlgorithm(cfg.Algorithm))
		if err != nil {
			return nil, err
		}
		store = NewSecure(store, c)
	}

	log.Info("Key-value store opened", logger.Fields(
		logger.FieldDriver, cfg.Driver,
		"encrypted", cfg.Encrypted(),
	))
	return store, nil
}

func openRedis(ctx context.Context, cfg Config, log *logger.Logger) (Store, error) {
	client, err := redis.New(cfg.Redis, log)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("kvstore: %w", err)
	}
	return NewRedis(client, cfg.Prefix, cfg.TTL), nil
}
