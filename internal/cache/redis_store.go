package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/andresuchdata/inventory-dashboard/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	defaultReportTTL  = time.Minute
	reportDialTimeout = 5 * time.Second
	defaultRedisHost  = "127.0.0.1"
	defaultRedisPort  = "6379"
)

// dialReportStore connects to the redis instance holding rendered reports and
// checks it answers before handing the client out.
func dialReportStore(cfg config.CacheConfig) (*redis.Client, error) {
	opts, err := reportStoreOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), reportDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("report store %s unreachable: %w", opts.Addr, err)
	}
	return client, nil
}

// reportTTL is how long a rendered report stays valid.
func reportTTL(cfg config.CacheConfig) time.Duration {
	if cfg.ReportTTLSeconds <= 0 {
		return defaultReportTTL
	}
	return time.Duration(cfg.ReportTTLSeconds) * time.Second
}

// reportStoreOptions prefers REDIS_URL and falls back to host, port and db.
func reportStoreOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opts, nil
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(orDefault(cfg.RedisHost, defaultRedisHost), orDefault(cfg.RedisPort, defaultRedisPort)),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// purgeReports scans the report namespace in batches and deletes every key
// it finds. It returns how many reports were removed.
func purgeReports(ctx context.Context, client *redis.Client) (int, error) {
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := client.Scan(ctx, cursor, reportKeyPattern(), reportScanBatchSize).Result()
		if err != nil {
			return removed, fmt.Errorf("scan cached reports: %w", err)
		}
		if len(keys) > 0 {
			n, err := client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, fmt.Errorf("delete cached reports: %w", err)
			}
			removed += int(n)
		}
		if cursor = next; cursor == 0 {
			return removed, nil
		}
	}
}

func reportKeyPattern() string {
	return reportKeyPrefix + ":*"
}
