package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTravelCache keeps travel durations in Redis so that several planner
// instances can share one warm cache. Entries expire after TTL; zero means
// keep forever.
type RedisTravelCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisTravelCache(client *redis.Client, ttl time.Duration) *RedisTravelCache {
	return &RedisTravelCache{Client: client, TTL: ttl}
}

func travelKey(originID, destinationID int) string {
	return fmt.Sprintf("travel:%d:%d", originID, destinationID)
}

func (r *RedisTravelCache) GetMany(ctx context.Context, originID int, destinationIDs []int) (map[int]float64, error) {
	if r.Client == nil {
		return nil, errors.New("travel cache: redis client is nil")
	}

	if len(destinationIDs) == 0 {
		return map[int]float64{}, nil
	}

	keys := make([]string, len(destinationIDs))
	for i, dest := range destinationIDs {
		keys[i] = travelKey(originID, dest)
	}

	vals, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get travel cache: redis mget: %w", err)
	}

	out := make(map[int]float64, len(destinationIDs))
	for i, v := range vals {
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		minutes, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("get travel cache: parse %q: %w", keys[i], err)
		}
		out[destinationIDs[i]] = minutes
	}

	return out, nil
}

func (r *RedisTravelCache) PutMany(ctx context.Context, originID int, minutes map[int]float64) error {
	if r.Client == nil {
		return errors.New("travel cache: redis client is nil")
	}

	if len(minutes) == 0 {
		return nil
	}

	pipe := r.Client.Pipeline()
	for dest, m := range minutes {
		pipe.Set(ctx, travelKey(originID, dest), strconv.FormatFloat(m, 'f', -1, 64), r.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert travel cache: redis pipeline: %w", err)
	}

	return nil
}
