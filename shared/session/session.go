package session

//go:generate go run go.uber.org/mock/mockgen -source=./session.go -destination=./mocks/session_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"nutrisur/shared"
	"nutrisur/shared/cache"

	"github.com/rs/zerolog/log"
)

// Store keeps one JSON record per owner. A missing key means no session.
type Store[T any] interface {
	Load(ctx context.Context, owner string) (value T, found bool, err error)
	Save(ctx context.Context, owner string, value T) error
	Delete(ctx context.Context, owner string) error
}

type redisStore[T any] struct {
	cache  cache.RedisCache
	prefix string
	ttl    int
}

// NewStore returns a Store keyed as "<prefix>:<owner>" that expires after ttlSeconds.
func NewStore[T any](redisCache cache.RedisCache, prefix string, ttlSeconds int) Store[T] {
	return &redisStore[T]{
		cache:  redisCache,
		prefix: prefix,
		ttl:    ttlSeconds,
	}
}

func (s *redisStore[T]) Load(ctx context.Context, owner string) (value T, found bool, err error) {
	err = s.cache.Get(ctx, s.key(owner), &value)
	if errors.Is(err, cache.Nil) {
		return value, false, nil
	}

	if err != nil {
		log.Error().Err(err).Str("owner", owner).Str("prefix", s.prefix).Msg("failed to load session")

		return value, false, fmt.Errorf("failed to load session: %w", err)
	}

	return value, true, nil
}

func (s *redisStore[T]) Save(ctx context.Context, owner string, value T) error {
	if err := s.cache.Save(ctx, s.key(owner), value, s.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (s *redisStore[T]) Delete(ctx context.Context, owner string) error {
	if err := s.cache.Delete(ctx, s.key(owner)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (s *redisStore[T]) key(owner string) string {
	return shared.BuildCacheKey(s.prefix, owner)
}
