package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/redis/go-redis/v9"
)

// DefaultPointTTL bounds how stale the map can get if an invalidation is
// missed.
const DefaultPointTTL = 5 * time.Minute

// PointCache stores the unfiltered map point list. Filters are applied by
// the caller after a hit.
type PointCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewPointCache(client redis.Cmdable, ttl time.Duration) *PointCache {
	if ttl <= 0 {
		ttl = DefaultPointTTL
	}
	return &PointCache{client: client, ttl: ttl}
}

// versionKey holds the cache generation. Invalidate bumps it, so a list
// read before an invalidation is written under a key nobody reads again.
func versionKey() string { return key("points", "version") }

func pointsKey(version int64) string {
	return key("points", "all", strconv.FormatInt(version, 10))
}

func (c *PointCache) version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, versionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading point cache version: %w", err)
	}
	return v, nil
}

// Get returns the cached points. On a miss, ok is false and version names
// the generation a following Set must target.
func (c *PointCache) Get(ctx context.Context) (points []domain.ResultPoint, version int64, ok bool, err error) {
	version, err = c.version(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	data, err := c.client.Get(ctx, pointsKey(version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, version, false, fmt.Errorf("reading point cache: %w", err)
	}
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, version, false, fmt.Errorf("decoding point cache: %w", err)
	}
	return points, version, true, nil
}

// Set stores points under version. Points computed before an Invalidate
// land under a superseded generation and expire unread.
func (c *PointCache) Set(ctx context.Context, version int64, points []domain.ResultPoint) error {
	if points == nil {
		points = []domain.ResultPoint{}
	}
	data, err := json.Marshal(points)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, pointsKey(version), data, c.ttl).Err()
}

// Invalidate starts a new generation so the next read goes to the store.
func (c *PointCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, versionKey()).Err()
}
