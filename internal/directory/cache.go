package directory

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/common/metrics"
	"trustgrade-workers/internal/models"
)

const (
	listCacheKey     = "directory:businesses"
	businessCacheKey = "directory:business:%d"
)

// CachedRepository is a read-through Redis cache in front of another
// Repository. Cache failures are logged and bypassed.
type CachedRepository struct {
	next   Repository
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedRepository(next Repository, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedRepository {
	return &CachedRepository{
		next:   next,
		redis:  client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "directory-cache"}),
	}
}

func (c *CachedRepository) List(ctx context.Context) ([]models.BusinessRecord, error) {
	var records []models.BusinessRecord
	if c.lookup(ctx, listCacheKey, &records) {
		return records, nil
	}

	records, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, listCacheKey, records)
	return records, nil
}

func (c *CachedRepository) GetByID(ctx context.Context, id int) (*models.BusinessRecord, error) {
	key := fmt.Sprintf(businessCacheKey, id)

	var record models.BusinessRecord
	if c.lookup(ctx, key, &record) {
		return &record, nil
	}

	r, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, r)
	return r, nil
}

// Invalidate drops every cached directory entry.
func (c *CachedRepository) Invalidate(ctx context.Context, ids ...int) error {
	keys := []string{listCacheKey}
	for _, id := range ids {
		keys = append(keys, fmt.Sprintf(businessCacheKey, id))
	}
	return c.redis.Del(ctx, keys...).Err()
}

func (c *CachedRepository) lookup(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.redis.Get(ctx, key).Bytes()
	if stderrors.Is(err, redis.Nil) {
		metrics.DirectoryCacheLookups.WithLabelValues("miss").Inc()
		return false
	}
	if err != nil {
		metrics.DirectoryCacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		metrics.DirectoryCacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("discarding corrupt cache entry", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	metrics.DirectoryCacheLookups.WithLabelValues("hit").Inc()
	return true
}

func (c *CachedRepository) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("failed to encode cache entry", map[string]interface{}{"key": key, "error": err.Error()})
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
