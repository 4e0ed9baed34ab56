// Package currency resolves exchange rates and converts expense amounts into
// a display currency. Rates are keyed by calendar date and currency pair;
// rates for past dates are immutable once observed and cached indefinitely.
package currency

import (
	"context"
	"errors"
	"time"
)

// ErrRateUnavailable is returned when no exchange rate can be resolved for a
// date and currency pair. Callers must surface this: substituting a rate of 1
// would silently break balance conservation in the display currency.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// RateSource resolves the multiplicative rate that converts an amount in
// from-currency to to-currency on the given calendar date.
type RateSource interface {
	Rate(ctx context.Context, date time.Time, from, to string) (float64, error)
}

// Converter converts amounts into a display currency. Conversion is always
// applied to the original amount and currency recorded on the expense, never
// to an already-converted value, so repeated conversion cannot drift.
type Converter struct {
	source RateSource
}

// NewConverter creates a Converter backed by the given rate source.
func NewConverter(source RateSource) *Converter {
	return &Converter{source: source}
}

// Convert returns amount expressed in the target currency using the rate for
// the given date. Same-currency conversion never hits the rate source.
func (c *Converter) Convert(ctx context.Context, amount float64, date time.Time, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}
	rate, err := c.source.Rate(ctx, date, from, to)
	if err != nil {
		return 0, err
	}
	return amount * rate, nil
}
