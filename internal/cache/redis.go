// Package cache holds the Redis-backed map point cache and the stream of
// submitted results.
package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ecocafe"

// ConnectRedis creates a Redis client from a URL and verifies it responds.
func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func key(parts ...string) string {
	k := keyPrefix
	for _, p := range parts {
		k += ":" + p
	}
	return k
}
