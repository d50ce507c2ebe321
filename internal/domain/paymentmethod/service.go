package paymentmethod

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const cacheTTL = 5 * time.Minute

// Service reads method configuration with a Redis read-through cache.
// The core never writes methods; configuration is managed out of band.
type Service struct {
	repo  *Repository
	redis *redis.Client
}

func NewService(repo *Repository, redisClient *redis.Client) *Service {
	return &Service{repo: repo, redis: redisClient}
}

func (s *Service) GetByKey(ctx context.Context, key string) (*Method, error) {
	cacheKey := "payment_method:" + key

	if s.redis != nil {
		if raw, err := s.redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var m Method
			if err := json.Unmarshal(raw, &m); err == nil {
				return &m, nil
			}
		}
	}

	m, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if raw, err := json.Marshal(m); err == nil {
			if err := s.redis.Set(ctx, cacheKey, raw, cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("failed to cache payment method")
			}
		}
	}
	return m, nil
}

func (s *Service) ListEnabled(ctx context.Context, kind Kind) ([]*Method, error) {
	return s.repo.ListEnabled(ctx, kind)
}

// Validate checks an operation amount against the method configuration
func (s *Service) Validate(m *Method, amount int64, paymentReference string) error {
	if !m.Enabled {
		return ErrDisabled
	}
	if amount < m.MinAmount {
		return ErrBelowMinimum
	}
	if m.MaxAmount.Valid && amount > m.MaxAmount.Int64 {
		return ErrAboveMaximum
	}
	if m.RequiresReference && paymentReference == "" {
		return ErrReferenceRequired
	}
	return nil
}
