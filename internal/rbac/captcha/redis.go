package captcha

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "warden:captcha:"

// RedisStore keeps answers as expiring keys. Take uses GETDEL so two
// concurrent validations cannot both succeed.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, id, answer string, ttl time.Duration) error {
	return s.client.Set(ctx, keyPrefix+id, answer, ttl).Err()
}

func (s *RedisStore) Take(ctx context.Context, id string) (string, bool, error) {
	v, err := s.client.GetDel(ctx, keyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}
