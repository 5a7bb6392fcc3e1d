package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"classwatch-backend/internal/models"
)

const statsCacheTTL = 30 * time.Second

// StatsCache keeps recently computed per-session stats in redis. Writes on
// the session (a new behaviour, a lifecycle toggle) invalidate the entry, so
// repeated reads with no intervening writes stay identical and cheap.
type StatsCache struct {
	redis *redis.Client
}

func NewStatsCache(redisClient *redis.Client) *StatsCache {
	return &StatsCache{redis: redisClient}
}

func sessionStatsKey(sessionID uuid.UUID) string {
	return "stats:session:" + sessionID.String()
}

func (c *StatsCache) GetSessionStats(ctx context.Context, sessionID uuid.UUID) (*models.SessionStats, bool) {
	raw, err := c.redis.Get(ctx, sessionStatsKey(sessionID)).Bytes()
	if err != nil {
		return nil, false
	}

	stats := &models.SessionStats{}
	if err := json.Unmarshal(raw, stats); err != nil {
		return nil, false
	}
	return stats, true
}

func (c *StatsCache) SetSessionStats(ctx context.Context, stats *models.SessionStats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	c.redis.Set(ctx, sessionStatsKey(stats.SessionID), raw, statsCacheTTL)
}

func (c *StatsCache) InvalidateSession(ctx context.Context, sessionID uuid.UUID) {
	c.redis.Del(ctx, sessionStatsKey(sessionID))
}
