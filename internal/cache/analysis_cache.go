// Package cache keeps recent resume analyses in redis so identical uploads
// are not sent to the model twice.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/hirewise/config"
	"github.com/lshigami/hirewise/internal/dto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	analysisKeyPrefix  = "hirewise:analysis:"
	defaultAnalysisTTL = 24 * time.Hour
)

// CachedAnalysis is what is stored per (resume, job description) key.
type CachedAnalysis struct {
	ID        string                   `json:"id"`
	FileName  string                   `json:"file_name"`
	CreatedAt time.Time                `json:"created_at"`
	Result    dto.ResumeAnalysisResult `json:"result"`
}

type AnalysisCache interface {
	// Get returns the cached analysis, or (nil, nil) if not found.
	Get(ctx context.Context, key string) (*CachedAnalysis, error)
	Set(ctx context.Context, key string, analysis *CachedAnalysis) error
	Close() error
}

type redisAnalysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalysisCache connects to REDIS_ADDR. Without an address, or when redis
// cannot be reached, caching is disabled.
func NewAnalysisCache(cfg *config.Config) AnalysisCache {
	if cfg.Redis.Addr == "" {
		log.Warn().Msg("REDIS_ADDR is not set, resume analysis caching is disabled")
		return NoopAnalysisCache{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, resume analysis caching is disabled")
		_ = client.Close()
		return NoopAnalysisCache{}
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to redis")
	return NewRedisAnalysisCache(client, cfg.Redis.TTL)
}

func NewRedisAnalysisCache(client *redis.Client, ttl time.Duration) AnalysisCache {
	if ttl <= 0 {
		ttl = defaultAnalysisTTL
	}
	return &redisAnalysisCache{client: client, ttl: ttl}
}

func (c *redisAnalysisCache) Get(ctx context.Context, key string) (*CachedAnalysis, error) {
	data, err := c.client.Get(ctx, analysisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached analysis: %w", err)
	}
	var analysis CachedAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("failed to decode cached analysis: %w", err)
	}
	return &analysis, nil
}

func (c *redisAnalysisCache) Set(ctx context.Context, key string, analysis *CachedAnalysis) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, analysisKeyPrefix+key, data, c.ttl).Err()
}

func (c *redisAnalysisCache) Close() error {
	return c.client.Close()
}

// NoopAnalysisCache never hits.
type NoopAnalysisCache struct{}

func (NoopAnalysisCache) Get(context.Context, string) (*CachedAnalysis, error) { return nil, nil }
func (NoopAnalysisCache) Set(context.Context, string, *CachedAnalysis) error    { return nil }
func (NoopAnalysisCache) Close() error                                          { return nil }
