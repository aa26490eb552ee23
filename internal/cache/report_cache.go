// Package cache keeps rendered reports in redis for a short TTL.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/andresuchdata/inventory-dashboard/internal/config"
	"github.com/andresuchdata/inventory-dashboard/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	reportKeyPrefix     = "inventory:report"
	reportScanBatchSize = 100
)

// ReportCache stores rendered reports keyed by view and a params key.
type ReportCache interface {
	Get(ctx context.Context, view domain.ViewKind, paramsKey string) (*domain.Report, bool, error)
	Set(ctx context.Context, view domain.ViewKind, paramsKey string, report *domain.Report) error
	InvalidateAll(ctx context.Context) error
	Close() error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

// NewReportCache returns a redis-backed cache, or a no-op cache when caching
// is disabled.
func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, err := dialReportStore(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReportCache{
		client: client,
		ttl:    reportTTL(cfg),
	}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) Get(ctx context.Context, view domain.ViewKind, paramsKey string) (*domain.Report, bool, error) {
	payload, err := c.client.Get(ctx, buildReportKey(view, paramsKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode report cache: %w", err)
	}
	return &report, true, nil
}

func (c *redisReportCache) Set(ctx context.Context, view domain.ViewKind, paramsKey string, report *domain.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}

	if err := c.client.Set(ctx, buildReportKey(view, paramsKey), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	removed, err := purgeReports(ctx, c.client)
	if err != nil {
		return err
	}
	log.Debug().Int("reports", removed).Msg("report cache cleared")
	return nil
}

func (c *redisReportCache) Close() error {
	return c.client.Close()
}

func (n *noopReportCache) Get(ctx context.Context, view domain.ViewKind, paramsKey string) (*domain.Report, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) Set(ctx context.Context, view domain.ViewKind, paramsKey string, report *domain.Report) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error { return nil }

func (n *noopReportCache) Close() error { return nil }

func buildReportKey(view domain.ViewKind, paramsKey string) string {
	sum := sha1.Sum([]byte(view.String() + "|" + paramsKey))
	return fmt.Sprintf("%s:%s", reportKeyPrefix, hex.EncodeToString(sum[:]))
}
