package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/insurebot/backend/internal/metrics"
	"github.com/insurebot/backend/internal/storage/models"
	"github.com/insurebot/backend/pkg/logger"
	"github.com/insurebot/backend/pkg/utils"
)

// Client caches knowledge-search results. The learned index only grows
// through training operations, so cached result sets stay valid until a
// mutation invalidates them.
type Client struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClient(host string, port int, password string, db int, ttl time.Duration) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis client initialized", zap.String("addr", fmt.Sprintf("%s:%d", host, port)))

	return &Client{client: client, ttl: ttl}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func searchKey(query string) string {
	return "knowledge:search:" + utils.HashString(query)
}

// GetSearch returns cached results for a query, if present.
func (c *Client) GetSearch(ctx context.Context, query string) ([]models.ExtractedKnowledge, bool) {
	data, err := c.client.Get(ctx, searchKey(query)).Bytes()
	if err == redis.Nil {
		metrics.CacheMisses.WithLabelValues("knowledge_search").Inc()
		return nil, false
	}
	if err != nil {
		logger.Warn("Failed to read search cache", zap.Error(err))
		return nil, false
	}

	var results []models.ExtractedKnowledge
	if err := json.Unmarshal(data, &results); err != nil {
		logger.Warn("Malformed search cache entry", zap.Error(err))
		return nil, false
	}

	metrics.CacheHits.WithLabelValues("knowledge_search").Inc()
	return results, true
}

// SetSearch caches results for a query with the configured TTL.
func (c *Client) SetSearch(ctx context.Context, query string, results []models.ExtractedKnowledge) {
	data, err := json.Marshal(results)
	if err != nil {
		logger.Warn("Failed to marshal search results", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, searchKey(query), data, c.ttl).Err(); err != nil {
		logger.Warn("Failed to write search cache", zap.Error(err))
	}
}

// InvalidateSearches drops every cached search after a training
// mutation changes the index.
func (c *Client) InvalidateSearches(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "knowledge:search:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn("Failed to delete cache key", zap.Error(err))
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to iterate cache keys: %w", err)
	}

	logger.Info("Knowledge search cache invalidated")
	return nil
}
