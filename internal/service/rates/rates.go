// internal/service/rates/rates.go
package rates

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"diaspora-portal-service/internal/domain/rates"
)

const (
	cacheKey = "rates:board"
	cacheTTL = 60 * time.Second
)

type Repository interface {
	List(ctx context.Context) ([]*rates.ExchangeRate, error)
	GetByCurrency(ctx context.Context, currency string) (*rates.ExchangeRate, error)
	Upsert(ctx context.Context, rate *rates.ExchangeRate) error
	Delete(ctx context.Context, currency string) error
}

// RateService serves the public rate board through a short-TTL Redis cache
// and writes through it on admin edits.
type RateService struct {
	repo   Repository
	cache  *redis.Client
	logger *zap.Logger
}

func NewRateService(repo Repository, cache *redis.Client, logger *zap.Logger) *RateService {
	return &RateService{repo: repo, cache: cache, logger: logger}
}

// List returns the rate board, preferring the cache. Cache failures fall
// through to the database.
func (s *RateService) List(ctx context.Context) ([]*rates.ExchangeRate, error) {
	if s.cache != nil {
		data, err := s.cache.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var cached []*rates.ExchangeRate
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("rate cache read failed", zap.Error(err))
		}
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	s.fillCache(ctx, list)
	return list, nil
}

// Get returns the quote for one currency, uncached.
func (s *RateService) Get(ctx context.Context, currency string) (*rates.ExchangeRate, error) {
	return s.repo.GetByCurrency(ctx, currency)
}

// Upsert saves an admin edit and invalidates the board cache.
func (s *RateService) Upsert(ctx context.Context, req *rates.UpsertRateRequest, editor string) (*rates.ExchangeRate, error) {
	rate := &rates.ExchangeRate{
		Currency:  req.Currency,
		Buy:       req.Buy,
		Sell:      req.Sell,
		Mid:       (req.Buy + req.Sell) / 2,
		UpdatedBy: editor,
	}

	if err := s.repo.Upsert(ctx, rate); err != nil {
		return nil, err
	}

	s.dropCache(ctx)
	return rate, nil
}

// Delete removes a currency from the board and invalidates the cache.
func (s *RateService) Delete(ctx context.Context, currency string) error {
	if err := s.repo.Delete(ctx, currency); err != nil {
		return err
	}
	s.dropCache(ctx)
	return nil
}

func (s *RateService) fillCache(ctx context.Context, list []*rates.ExchangeRate) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, data, cacheTTL).Err(); err != nil {
		s.logger.Warn("rate cache write failed", zap.Error(err))
	}
}

func (s *RateService) dropCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Warn("rate cache invalidation failed", zap.Error(err))
	}
}
