package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisPrefix = "pokerdirector:share:"

type redisShortener struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisShortener stores tokens as plain keys; ttl 0 keeps them forever.
func NewRedisShortener(client *redis.Client, prefix string, ttl time.Duration) Shortener {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &redisShortener{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *redisShortener) Shorten(ctx context.Context, long string) (string, error) {
	if long == "" {
		return "", ErrEmptyValue
	}

	for i := 0; i < maxAttempts; i++ {
		token := NewToken()
		ok, err := s.client.SetNX(ctx, s.prefix+token, long, s.ttl).Result()
		if err != nil {
			return "", fmt.Errorf("shortener: shorten: %w", err)
		}
		if ok {
			return token, nil
		}
	}
	return "", ErrTokenCollision
}

func (s *redisShortener) Resolve(ctx context.Context, token string) (string, error) {
	long, err := s.client.Get(ctx, s.prefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("shortener: resolve %s: %w", token, err)
	}
	return long, nil
}
