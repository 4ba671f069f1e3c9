// Package cache holds the latest assessment per caller session so the
// dashboard can re-render without recomputation. Session-level caching is
// a collaborator concern: the scoring core itself never caches.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lending/recovery-service/internal/config"
	"github.com/lending/recovery-service/internal/domain"
)

// ErrNoCachedResult is returned when a session has no stored assessment.
var ErrNoCachedResult = errors.New("no cached assessment for session")

// AssessmentCache is a Redis-backed latest-result store keyed by session.
type AssessmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates an assessment cache from Redis configuration.
func New(cfg *config.RedisConfig) *AssessmentCache {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	return &AssessmentCache{
		client: client,
		ttl:    cfg.ResultTTL,
	}
}

func sessionKey(sessionID string) string {
	return "assessment:latest:" + sessionID
}

// SetLatest stores the session's most recent record.
func (c *AssessmentCache) SetLatest(ctx context.Context, sessionID string, record *domain.BorrowerRecord) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	return c.client.Set(ctx, sessionKey(sessionID), body, c.ttl).Err()
}

// GetLatest fetches the session's most recent record.
func (c *AssessmentCache) GetLatest(ctx context.Context, sessionID string) (*domain.BorrowerRecord, error) {
	body, err := c.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoCachedResult
	}
	if err != nil {
		return nil, err
	}

	var record domain.BorrowerRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("decoding cached record: %w", err)
	}
	return &record, nil
}

// Ping checks cache liveness.
func (c *AssessmentCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the Redis client.
func (c *AssessmentCache) Close() error {
	return c.client.Close()
}
