package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quicknotes/model"
	"quicknotes/utils"

	"github.com/redis/go-redis/v9"
)

// RedisUserCache caches session user lookups.
type RedisUserCache struct {
	client *redis.Client
	ttl    time.Duration
}

type userCacheEntry struct {
	UserID    string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRedisUserCache parses the URL and checks the connection.
func NewRedisUserCache(redisURL string, ttl time.Duration) (*RedisUserCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisUserCacheWithClient(client, ttl), nil
}

func NewRedisUserCacheWithClient(client *redis.Client, ttl time.Duration) *RedisUserCache {
	return &RedisUserCache{client: client, ttl: ttl}
}

func userKey(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}

func (uc *RedisUserCache) GetUser(ctx context.Context, userID string) (*model.User, error) {
	data, err := uc.client.Get(ctx, userKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		utils.TrackCacheOperation("miss")
		return nil, nil
	}
	if err != nil {
		utils.TrackCacheOperation("error")
		return nil, fmt.Errorf("failed to get user from cache: %w", err)
	}

	var entry userCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		utils.TrackCacheOperation("error")
		return nil, fmt.Errorf("failed to unmarshal cached user: %w", err)
	}

	utils.TrackCacheOperation("hit")
	return &model.User{
		UserID:    entry.UserID,
		Email:     entry.Email,
		Name:      entry.Name,
		CreatedAt: entry.CreatedAt,
	}, nil
}

func (uc *RedisUserCache) SetUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return fmt.Errorf("cannot cache nil user")
	}

	data, err := json.Marshal(userCacheEntry{
		UserID:    user.UserID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	if err := uc.client.Set(ctx, userKey(user.UserID), data, uc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}
	return nil
}

// IsConnected checks if the Redis connection is alive
func (uc *RedisUserCache) IsConnected(ctx context.Context) bool {
	if uc == nil || uc.client == nil {
		return false
	}
	return uc.client.Ping(ctx).Err() == nil
}

func (uc *RedisUserCache) Close() error {
	return uc.client.Close()
}
