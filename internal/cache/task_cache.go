package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "github.com/Sravanikonapalli/task-tracker-thworks/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyListPrefix = "task:list:"

// TaskCache caches list results in Redis, keyed by the canonical
// query-spec string. Every write invalidates all list keys, so a
// cached page never outlives a mutation.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached result for the given spec key, or nil on
// miss.
func (c *TaskCache) GetList(ctx context.Context, specKey string) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, keyListPrefix+specKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []dom.Task{}
	}
	return list, nil
}

// SetList stores the result for the given spec key.
func (c *TaskCache) SetList(ctx context.Context, specKey string, list []dom.Task) error {
	if list == nil {
		list = []dom.Task{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyListPrefix+specKey, b, c.ttl).Err()
}

// InvalidateAll removes every cached list (cache invalidation on write).
func (c *TaskCache) InvalidateAll(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, keyListPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
