package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "legal-docs-workers/internal/common/errors"
	"legal-docs-workers/internal/common/logger"
	"legal-docs-workers/internal/documents"
)

// CachedRecordRepository puts a Redis read-through cache in front of another
// repository. Redis failures are logged and fall through to the inner one.
type CachedRecordRepository struct {
	inner  RecordRepository
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedRecordRepository(inner RecordRepository, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedRecordRepository {
	return &CachedRecordRepository{inner: inner, redis: rdb, ttl: ttl, logger: log}
}

func recordKey(id, ownerID string) string {
	return fmt.Sprintf("record:%s:%s", ownerID, id)
}

func (c *CachedRecordRepository) GetRecordByID(ctx context.Context, id, ownerID string) (*documents.Record, error) {
	key := recordKey(id, ownerID)

	cached, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var rec documents.Record
		if jsonErr := json.Unmarshal(cached, &rec); jsonErr == nil {
			c.logger.Debug("Record cache hit", map[string]interface{}{"key": key})
			return &rec, nil
		}
		c.logger.Warn("Discarding undecodable cached record", map[string]interface{}{"key": key})
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("Record cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	}

	rec, err := c.inner.GetRecordByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rec); err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("Record cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}
	return rec, nil
}

// Invalidate drops a cached record after it was edited.
func (c *CachedRecordRepository) Invalidate(ctx context.Context, id, ownerID string) error {
	return c.redis.Del(ctx, recordKey(id, ownerID)).Err()
}

// OutputCache holds generated documents for download until they expire.
type OutputCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewOutputCache(rdb *redis.Client, ttl time.Duration) *OutputCache {
	return &OutputCache{redis: rdb, ttl: ttl}
}

// OutputKey is the cache key of a generation.
func OutputKey(generationID string) string {
	return "docx:" + generationID
}

// Put stores content under the generation's key and returns the key.
func (o *OutputCache) Put(ctx context.Context, generationID string, content []byte) (string, error) {
	key := OutputKey(generationID)
	if err := o.redis.Set(ctx, key, content, o.ttl).Err(); err != nil {
		return "", apperrors.NewCacheWriteFailedError(key, err)
	}
	return key, nil
}

// Get returns the stored document, or RECORD_NOT_FOUND once it expired.
func (o *OutputCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := o.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.NewRecordNotFoundError(key, "")
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("get_output", err)
	}
	return data, nil
}
