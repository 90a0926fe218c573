package repository

import (
	redisapp "lavender_breeze/internal/storage/redis"

	"github.com/redis/go-redis/v9"

	"context"
	"errors"
	"time"
)

type RedisAttemptRepo struct {
	Client *redisapp.Client
}

func NewRedisAttemptRepo(client *redisapp.Client) *RedisAttemptRepo {
	return &RedisAttemptRepo{Client: client}
}

func (r *RedisAttemptRepo) CountAttempts(ctx context.Context, key string) (int, error) {
	n, err := r.Client.Get(ctx, attemptKey(key)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// RecordAttempt увеличивает счетчик. Окно отсчитывается от первой попытки.
func (r *RedisAttemptRepo) RecordAttempt(ctx context.Context, key string, window time.Duration) error {
	n, err := r.Client.Incr(ctx, attemptKey(key)).Result()
	if err != nil {
		return err
	}
	if n == 1 {
		return r.Client.Expire(ctx, attemptKey(key), window).Err()
	}
	return nil
}

func (r *RedisAttemptRepo) ResetAttempts(ctx context.Context, key string) error {
	return r.Client.Del(ctx, attemptKey(key)).Err()
}

func attemptKey(key string) string {
	return "login_attempts:" + key
}
