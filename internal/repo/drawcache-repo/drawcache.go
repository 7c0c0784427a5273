package drawcacherepo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix = "thetop36:draw:"
	keyTTL    = 48 * time.Hour
)

// Redis shares the "already drawn" marker between instances.
type Redis struct {
	client redis.Cmdable
}

func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client}
}

func (r *Redis) WasDrawn(ctx context.Context, day string) (bool, error) {
	_, err := r.client.Get(ctx, keyPrefix+day).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		zap.L().Warn("draw cache lookup failed", zap.String("day", day), zap.Error(err))
		return false, err
	}
	return true, nil
}

func (r *Redis) MarkDrawn(ctx context.Context, day string) error {
	if err := r.client.Set(ctx, keyPrefix+day, "1", keyTTL).Err(); err != nil {
		zap.L().Warn("draw cache update failed", zap.String("day", day), zap.Error(err))
		return err
	}
	return nil
}

// Memory remembers the last drawn day of this process only.
type Memory struct {
	mu      sync.RWMutex
	lastDay string
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) WasDrawn(_ context.Context, day string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastDay == day, nil
}

func (m *Memory) MarkDrawn(_ context.Context, day string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastDay = day
	return nil
}
