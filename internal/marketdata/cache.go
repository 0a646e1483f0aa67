package marketdata

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PriceStore is the subset of the repository the caching provider
// needs: nearest cached close within a window, and write-through saves.
type PriceStore interface {
	GetCachedClose(ctx context.Context, symbol string, date time.Time, windowDays int) (float64, error)
	SaveClose(ctx context.Context, symbol string, date time.Time, price float64) error
}

// CachingProvider checks the local stock_prices table before asking the
// upstream provider, and writes successful lookups back through. A
// cache write failure is logged but never fails the lookup.
type CachingProvider struct {
	store  PriceStore
	next   PriceProvider
	window int
	logger zerolog.Logger
}

// NewCachingProvider wraps next with the repository-backed price cache
func NewCachingProvider(store PriceStore, next PriceProvider, windowDays int) *CachingProvider {
	if windowDays == 0 {
		windowDays = 5
	}
	return &CachingProvider{
		store:  store,
		next:   next,
		window: windowDays,
		logger: log.With().Str("component", "price_cache").Logger(),
	}
}

// PriceOnOrNear implements PriceProvider
func (p *CachingProvider) PriceOnOrNear(ctx context.Context, symbol string, date time.Time) (float64, error) {
	price, err := p.store.GetCachedClose(ctx, symbol, date, p.window)
	if err == nil {
		return price, nil
	}
	if !errors.Is(err, ErrPriceUnavailable) {
		p.logger.Warn().Err(err).Str("symbol", symbol).Msg("Price cache lookup failed")
	}

	price, err = p.next.PriceOnOrNear(ctx, symbol, date)
	if err != nil {
		return 0, err
	}

	if saveErr := p.store.SaveClose(ctx, symbol, date, price); saveErr != nil {
		p.logger.Warn().Err(saveErr).Str("symbol", symbol).Msg("Price cache write failed")
	}

	return price, nil
}
