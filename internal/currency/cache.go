package currency

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedSource memoizes another RateSource. Historical rates never change, so
// entries are stored without expiration; recomputing a whole event after a
// display-currency switch costs one lookup per distinct (date, pair) instead
// of one per expense.
type CachedSource struct {
	source RateSource
	cache  *gocache.Cache
}

// Ensure CachedSource implements RateSource
var _ RateSource = (*CachedSource)(nil)

// NewCachedSource wraps source with an in-memory rate cache.
func NewCachedSource(source RateSource) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  gocache.New(gocache.NoExpiration, 0),
	}
}

// Rate returns the cached rate for (date, from, to), consulting the wrapped
// source on a miss. Failed lookups are not cached.
func (s *CachedSource) Rate(ctx context.Context, date time.Time, from, to string) (float64, error) {
	key := fmt.Sprintf("%s/%s/%s", date.Format(dateFormat), from, to)
	if v, ok := s.cache.Get(key); ok {
		return v.(float64), nil
	}

	rate, err := s.source.Rate(ctx, date, from, to)
	if err != nil {
		return 0, err
	}
	s.cache.Set(key, rate, gocache.NoExpiration)
	return rate, nil
}
