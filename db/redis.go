package db

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/ztrue/tracerr"
)

// RedisConfig is connection config for redis.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// Redis is the shared redis client, set by NewRedis.
var Redis *redis.Client

// NewRedis connects redis and pings it once.
func NewRedis(ctx context.Context, conf *RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Address,
		Password: conf.Password,
		DB:       conf.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, tracerr.Wrap(err)
	}
	Redis = client
	return client, nil
}
