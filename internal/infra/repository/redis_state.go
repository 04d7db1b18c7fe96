package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/clinic-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-booking/internal/models"
)

// RedisStatePersister keeps the whole snapshot as one JSON value under a
// single key.
type RedisStatePersister struct {
	client *redis.Client
	key    string
}

func NewRedisStatePersister(client *redis.Client, key string) *RedisStatePersister {
	return &RedisStatePersister{client: client, key: key}
}

func (r *RedisStatePersister) Load(ctx context.Context) (*domain.State, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var env domain.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.key, err)
	}
	return &env.State, nil
}

func (r *RedisStatePersister) Save(ctx context.Context, st domain.State) error {
	if st.Appointments == nil {
		st.Appointments = []models.Appointment{}
	}

	payload, err := json.Marshal(domain.Envelope{
		State:   st,
		Version: domain.SchemaVersion,
	})
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.key, payload, 0).Err()
}

// Compile-time check
var _ domain.Persister = (*RedisStatePersister)(nil)
