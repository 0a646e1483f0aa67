package marketdata

import (
	"context"
	"errors"
	"time"
)

// ErrPriceUnavailable is returned when no closing price exists on or
// near the requested date. The scoring engine treats it as retryable:
// the affected prediction stays active for a later sweep.
var ErrPriceUnavailable = errors.New("price data unavailable")

// PriceProvider supplies, for a stock symbol and date, the closing
// price on or nearest to that date.
type PriceProvider interface {
	PriceOnOrNear(ctx context.Context, symbol string, date time.Time) (float64, error)
}
