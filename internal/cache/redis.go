package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/railbooking/config"
	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client      *redis.Client
	journeysTTL time.Duration
	sessionTTL  time.Duration
}

func NewRedisCache(cfg config.RedisConfig, journeysTTL, sessionTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		journeysTTL: journeysTTL,
		sessionTTL:  sessionTTL,
	}
}

func (c *RedisCache) GetJourneys(ctx context.Context) ([]domain.JourneyView, error) {
	data, err := c.client.Get(ctx, journeysKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var journeys []domain.JourneyView
	if err := json.Unmarshal(data, &journeys); err != nil {
		return nil, err
	}
	return journeys, nil
}

func (c *RedisCache) SetJourneys(ctx context.Context, journeys []domain.JourneyView) error {
	payload, err := json.Marshal(journeys)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, journeysKey(), payload, c.journeysTTL).Err()
}

// InvalidateJourneys drops the snapshot after a booking or cancellation so the
// next listing reflects the new counters instead of waiting out the TTL.
func (c *RedisCache) InvalidateJourneys(ctx context.Context) error {
	return c.client.Del(ctx, journeysKey()).Err()
}

func (c *RedisCache) PutSession(ctx context.Context, token, username string) error {
	return c.client.Set(ctx, sessionKey(token), username, c.sessionTTL).Err()
}

func (c *RedisCache) GetSession(ctx context.Context, token string) (string, error) {
	username, err := c.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return username, nil
}

func (c *RedisCache) DeleteSession(ctx context.Context, token string) error {
	return c.client.Del(ctx, sessionKey(token)).Err()
}

func journeysKey() string {
	return "cache:journeys"
}

func sessionKey(token string) string {
	return "session:" + token
}
