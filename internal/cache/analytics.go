package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/optiprice/backend-go/internal/config"
	"github.com/optiprice/backend-go/internal/domain"
)

const (
	analyticsKeyPrefix = "analytics:"
	heatmapKey         = analyticsKeyPrefix + "elasticity_heatmap"
	inventoryKey       = analyticsKeyPrefix + "inventory_analysis"
	analyticsScanBatch = 100
)

// AnalyticsCache holds catalog-wide analytics views that are expensive to
// recompute on every request. Entries are invalidated whenever the catalog
// changes, so a short TTL is only a backstop.
type AnalyticsCache interface {
	GetHeatmap(ctx context.Context) ([]domain.HeatmapRow, bool, error)
	SetHeatmap(ctx context.Context, rows []domain.HeatmapRow) error
	GetInventoryAnalysis(ctx context.Context) (*domain.InventoryAnalysis, bool, error)
	SetInventoryAnalysis(ctx context.Context, analysis *domain.InventoryAnalysis) error
	InvalidateAll(ctx context.Context) error
}

type redisAnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAnalyticsCache struct{}

// NewAnalyticsCache returns a redis-backed cache when caching is enabled, or
// a noop cache that always misses otherwise.
func NewAnalyticsCache(cfg config.CacheConfig) (AnalyticsCache, error) {
	if !cfg.Enabled {
		return &noopAnalyticsCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAnalyticsCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopAnalyticsCache() AnalyticsCache {
	return &noopAnalyticsCache{}
}

func (c *redisAnalyticsCache) GetHeatmap(ctx context.Context) ([]domain.HeatmapRow, bool, error) {
	payload, err := c.client.Get(ctx, heatmapKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var rows []domain.HeatmapRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, false, fmt.Errorf("decode heatmap cache: %w", err)
	}

	return rows, true, nil
}

func (c *redisAnalyticsCache) SetHeatmap(ctx context.Context, rows []domain.HeatmapRow) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode heatmap cache: %w", err)
	}

	if err := c.client.Set(ctx, heatmapKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisAnalyticsCache) GetInventoryAnalysis(ctx context.Context) (*domain.InventoryAnalysis, bool, error) {
	payload, err := c.client.Get(ctx, inventoryKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var analysis domain.InventoryAnalysis
	if err := json.Unmarshal(payload, &analysis); err != nil {
		return nil, false, fmt.Errorf("decode inventory analysis cache: %w", err)
	}

	return &analysis, true, nil
}

func (c *redisAnalyticsCache) SetInventoryAnalysis(ctx context.Context, analysis *domain.InventoryAnalysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("encode inventory analysis cache: %w", err)
	}

	if err := c.client.Set(ctx, inventoryKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisAnalyticsCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, analyticsKeyPrefix, analyticsScanBatch)
}

func (n *noopAnalyticsCache) GetHeatmap(ctx context.Context) ([]domain.HeatmapRow, bool, error) {
	return nil, false, nil
}

func (n *noopAnalyticsCache) SetHeatmap(ctx context.Context, rows []domain.HeatmapRow) error {
	return nil
}

func (n *noopAnalyticsCache) GetInventoryAnalysis(ctx context.Context) (*domain.InventoryAnalysis, bool, error) {
	return nil, false, nil
}

func (n *noopAnalyticsCache) SetInventoryAnalysis(ctx context.Context, analysis *domain.InventoryAnalysis) error {
	return nil
}

func (n *noopAnalyticsCache) InvalidateAll(ctx context.Context) error {
	return nil
}
