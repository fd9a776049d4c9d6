package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"devtinder_server/config"

	"github.com/redis/go-redis/v9"
)

// presenceTTL bounds how stale an online marker can get when a socket
// drops without a clean disconnect.
const presenceTTL = 2 * time.Minute

// PresenceService tracks which users currently hold a live socket
// connection, backed by Redis keys with a TTL.
type PresenceService struct {
	client *redis.Client
}

// NewPresenceService creates a Redis-backed presence tracker
func NewPresenceService() *PresenceService {
	client := redis.NewClient(&redis.Options{
		Addr:         config.RedisURL,
		Password:     config.RedisPassword,
		DB:           config.RedisDB,
		PoolSize:     10,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		// Redis being down only degrades presence to "offline"
		log.Printf("⚠️ Redis unavailable, presence degraded: %v", err)
	}

	return &PresenceService{client: client}
}

// Close closes the Redis connection
func (ps *PresenceService) Close() error {
	return ps.client.Close()
}

// MarkOnline records a live connection for the user
func (ps *PresenceService) MarkOnline(ctx context.Context, userID string) error {
	if err := ps.client.Set(ctx, presenceKey(userID), "1", presenceTTL).Err(); err != nil {
		return fmt.Errorf("failed to mark %s online: %w", userID, err)
	}
	return nil
}

// Refresh extends the online marker for a still-connected user
func (ps *PresenceService) Refresh(ctx context.Context, userID string) error {
	return ps.MarkOnline(ctx, userID)
}

// MarkOffline drops the user's online marker
func (ps *PresenceService) MarkOffline(ctx context.Context, userID string) error {
	if err := ps.client.Del(ctx, presenceKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to mark %s offline: %w", userID, err)
	}
	return nil
}

// IsOnline reports whether the user has a live online marker
func (ps *PresenceService) IsOnline(ctx context.Context, userID string) (bool, error) {
	n, err := ps.client.Exists(ctx, presenceKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check presence of %s: %w", userID, err)
	}
	return n > 0, nil
}

func presenceKey(userID string) string {
	return "presence:" + userID
}
