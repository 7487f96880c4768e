package store

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter caps cumulative LLM token spend per caller. Usage is a
// plain counter; a caller is allowed until the counter reaches the
// budget.
type RedisLimiter struct {
	client *redis.Client
	budget int
}

func NewRedisLimiter(client *redis.Client, budget int) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		budget: budget,
	}
}

func (r *RedisLimiter) CheckLimit(ctx context.Context, callerID string) (bool, error) {
	val, err := r.client.Get(ctx, "llm_tokens:"+callerID).Result()
	if errors.Is(err, redis.Nil) {
		return true, nil // No usage yet
	}
	if err != nil {
		return false, err
	}
	usage, err := strconv.Atoi(val)
	if err != nil {
		return false, err
	}
	return usage < r.budget, nil
}

func (r *RedisLimiter) Increment(ctx context.Context, callerID string, tokens int) error {
	return r.client.IncrBy(ctx, "llm_tokens:"+callerID, int64(tokens)).Err()
}
