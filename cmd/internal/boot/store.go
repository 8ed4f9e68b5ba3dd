package boot

import (
	"context"
	"fmt"
	"time"

	"seatrouter/adapters/memory"
	"seatrouter/adapters/postgres"
	"seatrouter/adapters/redis"
	"seatrouter/config"
	"seatrouter/interfaces"

	"github.com/avast/retry-go/v4"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	storePingAttempts = 5
	storePingDelay    = 500 * time.Millisecond
)

// OpenSeatStore opens the store selected by cfg.StoreDriver and seeds it with the configured room
// catalog. Networked stores are pinged with retries first, so a seat manager started together with
// its database waits for it.
func OpenSeatStore(ctx context.Context, cfg *config.Config, logger log.Logger) (interfaces.SeatStore, error) {
	rooms, err := cfg.Rooms()
	if err != nil {
		return nil, err
	}

	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.StoreDSN)
		if err != nil {
			return nil, err
		}
		store := postgres.NewSeatStore(pool)
		if err := pingWithRetry(ctx, store, logger); err != nil {
			_ = store.Close()
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		if err := store.Seed(ctx, rooms); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil

	case config.StoreRedis:
		store, err := redis.Open(cfg.StoreDSN)
		if err != nil {
			return nil, err
		}
		if err := pingWithRetry(ctx, store, logger); err != nil {
			_ = store.Close()
			return nil, err
		}
		if err := store.Seed(ctx, rooms); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil

	case config.StoreMemory, "":
		return memory.NewSeatStore(rooms), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func pingWithRetry(ctx context.Context, store interfaces.SeatStore, logger log.Logger) error {
	err := retry.Do(
		func() error {
			return store.Ping(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(storePingAttempts),
		retry.Delay(storePingDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			level.Warn(logger).Log("msg", "seat store not reachable yet", "attempt", attempt+1, "err", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("seat store ping: %w", err)
	}
	return nil
}
