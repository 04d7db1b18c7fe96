package db

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/clinic-booking/internal/config"
)

const (
	redisMaxRetries = 5
	redisRetryDelay = 2 * time.Second
)

// NewRedis connects and pings, retrying a few times while the server
// comes up.
func NewRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	var err error
	for i := 0; i < redisMaxRetries; i++ {
		if err = client.Ping(ctx).Err(); err == nil {
			return client, nil
		}

		log.Warn().Err(err).
			Int("attempt", i+1).
			Int("max_attempts", redisMaxRetries).
			Msg("redis not reachable")

		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, ctx.Err()
		case <-time.After(redisRetryDelay):
		}
	}

	_ = client.Close()
	return nil, fmt.Errorf("failed to connect to Redis: %w", err)
}
