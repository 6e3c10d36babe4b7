package db

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/rbcervilla/redisstore/v8"
	"github.com/ztrue/tracerr"
)

// SessionConfig is connection config for the session store.
type SessionConfig struct {
	RedisClient *redis.Client
	Prefix      string // session key prefix in redis
}

// NewSession creates the redis backed session store used by the REST layer.
func NewSession(ctx context.Context, conf *SessionConfig) (*redisstore.RedisStore, error) {
	store, err := redisstore.NewRedisStore(ctx, conf.RedisClient)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	store.KeyPrefix(conf.Prefix)
	return store, nil
}
