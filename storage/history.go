package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stay-scout/models"
	"stay-scout/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrHistoryNotFound is returned when no search run is stored under an id
var ErrHistoryNotFound = errors.New("history entry not found")

const (
	historyKeyPrefix = "stayscout:run:"
	historyIndexKey  = "stayscout:runs"
)

// NewHistoryEntry stamps an analysis with a fresh id and creation time
func NewHistoryEntry(analysis *models.SearchAnalysis, criteria models.SearchCriteria, now time.Time) *HistoryEntry {
	return &HistoryEntry{
		ID:        uuid.NewString(),
		CreatedAt: now.UTC(),
		Criteria:  NewCriteriaDocument(criteria),
		Analysis:  NewAnalysisDocument(analysis),
	}
}

// RedisHistory keeps the most recent search runs in Redis
type RedisHistory struct {
	client *redis.Client
	size   int
	logger *utils.Logger
}

// NewRedisHistory connects to addr and keeps at most size runs
func NewRedisHistory(ctx context.Context, addr string, size int, logger *utils.Logger) (*RedisHistory, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	logger.Info("Connected to Redis at %s", addr)
	return NewRedisHistoryFromClient(client, size, logger), nil
}

// NewRedisHistoryFromClient wraps an existing client
func NewRedisHistoryFromClient(client *redis.Client, size int, logger *utils.Logger) *RedisHistory {
	if size < 1 {
		size = 1
	}
	return &RedisHistory{client: client, size: size, logger: logger}
}

// Save stores the entry and drops runs beyond the configured size
func (h *RedisHistory) Save(ctx context.Context, entry *HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	pipe := h.client.TxPipeline()
	pipe.Set(ctx, historyKeyPrefix+entry.ID, data, 0)
	pipe.LPush(ctx, historyIndexKey, entry.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	stale, err := h.client.LRange(ctx, historyIndexKey, int64(h.size), -1).Result()
	if err != nil {
		return fmt.Errorf("failed to read history index: %w", err)
	}
	if len(stale) > 0 {
		keys := make([]string, 0, len(stale))
		for _, id := range stale {
			keys = append(keys, historyKeyPrefix+id)
		}
		pipe := h.client.TxPipeline()
		pipe.LTrim(ctx, historyIndexKey, 0, int64(h.size-1))
		pipe.Del(ctx, keys...)
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("failed to trim history: %w", err)
		}
	}

	h.logger.Debug("Saved search run %s", entry.ID)
	return nil
}

// Get returns the run stored under id
func (h *RedisHistory) Get(ctx context.Context, id string) (*HistoryEntry, error) {
	data, err := h.client.Get(ctx, historyKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrHistoryNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load history entry: %w", err)
	}
	var entry HistoryEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode history entry: %w", err)
	}
	return &entry, nil
}

// Recent returns up to n runs, newest first
func (h *RedisHistory) Recent(ctx context.Context, n int) ([]*HistoryEntry, error) {
	if n < 1 {
		return nil, nil
	}
	ids, err := h.client.LRange(ctx, historyIndexKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history index: %w", err)
	}
	entries := make([]*HistoryEntry, 0, len(ids))
	for _, id := range ids {
		entry, err := h.Get(ctx, id)
		if errors.Is(err, ErrHistoryNotFound) {
			h.logger.Warn("History index references missing run %s", id)
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Close closes the Redis client
func (h *RedisHistory) Close() error {
	return h.client.Close()
}
