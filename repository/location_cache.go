package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/redis/go-redis/v9"
)

// LocationCache keeps the state and district lists, which change rarely.
type LocationCache interface {
	GetStates(ctx context.Context) ([]models.State, error)
	SetStates(ctx context.Context, states []models.State) error
	GetDistricts(ctx context.Context, state string) ([]models.District, error)
	SetDistricts(ctx context.Context, state string, districts []models.District) error
}

// RedisLocationCache stores location lists as JSON. A miss returns nil and
// no error.
type RedisLocationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocationCache(client *redis.Client, ttl time.Duration) *RedisLocationCache {
	return &RedisLocationCache{client: client, ttl: ttl}
}

const statesKey = "landdeals:locations:states"

func districtsKey(state string) string {
	return fmt.Sprintf("landdeals:locations:districts:%s", state)
}

func (r *RedisLocationCache) GetStates(ctx context.Context) ([]models.State, error) {
	var out []models.State
	ok, err := r.get(ctx, statesKey, &out)
	if err != nil || !ok {
		return nil, err
	}
	return out, nil
}

func (r *RedisLocationCache) SetStates(ctx context.Context, states []models.State) error {
	return r.set(ctx, statesKey, states)
}

func (r *RedisLocationCache) GetDistricts(ctx context.Context, state string) ([]models.District, error) {
	var out []models.District
	ok, err := r.get(ctx, districtsKey(state), &out)
	if err != nil || !ok {
		return nil, err
	}
	return out, nil
}

func (r *RedisLocationCache) SetDistricts(ctx context.Context, state string, districts []models.District) error {
	return r.set(ctx, districtsKey(state), districts)
}

func (r *RedisLocationCache) get(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisLocationCache) set(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, r.ttl).Err()
}
