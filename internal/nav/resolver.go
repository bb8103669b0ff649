package nav

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "wealthdesk/internal/errors"
	"wealthdesk/internal/logger"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultToleranceDays = 50
	DefaultCacheTTL      = 10 * time.Minute
)

// Resolver answers NAV lookups for a fund on a date or at the present.
type Resolver interface {
	// NavAt returns the published NAV closest to date. Records further than
	// the tolerance are ignored; when two records are equally close the
	// later one wins.
	NavAt(ctx context.Context, fundCode string, date time.Time) (Quote, error)

	// LatestNav returns the provider's current NAV for the fund.
	LatestNav(ctx context.Context, fundCode string) (Quote, error)

	// Scheme returns the fund's full series including scheme metadata.
	Scheme(ctx context.Context, fundCode string) (*Series, error)
}

// ResolverOption configures a resolver
type ResolverOption func(*cachingResolver)

// WithToleranceDays sets the maximum distance in days between the target
// date and an acceptable record.
func WithToleranceDays(days int) ResolverOption {
	return func(r *cachingResolver) {
		r.toleranceDays = days
	}
}

// WithCacheTTL sets how long a fetched series is reused. Zero disables caching.
func WithCacheTTL(ttl time.Duration) ResolverOption {
	return func(r *cachingResolver) {
		r.ttl = ttl
	}
}

// WithClock overrides the clock used for cache expiry.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *cachingResolver) {
		r.now = now
	}
}

type cacheEntry struct {
	value     any
	fetchedAt time.Time
}

type cachingResolver struct {
	provider      Provider
	toleranceDays int
	ttl           time.Duration
	now           func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
	group singleflight.Group
}

// NewResolver creates a Resolver backed by provider. Series fetches are
// memoized per fund and concurrent fetches of the same fund share one call.
func NewResolver(provider Provider, opts ...ResolverOption) Resolver {
	r := &cachingResolver{
		provider:      provider,
		toleranceDays: DefaultToleranceDays,
		ttl:           DefaultCacheTTL,
		now:           time.Now,
		cache:         make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NavAt scans the whole series and picks the closest record within tolerance.
func (r *cachingResolver) NavAt(ctx context.Context, fundCode string, date time.Time) (Quote, error) {
	series, err := r.Scheme(ctx, fundCode)
	if err != nil {
		return Quote{}, err
	}

	target := CivilDate(date)
	best := -1
	bestDist := 0
	for i, q := range series.Quotes {
		dist := DaysBetween(q.Date, target)
		if dist > r.toleranceDays {
			continue
		}
		if best == -1 || dist < bestDist || (dist == bestDist && q.Date.After(series.Quotes[best].Date)) {
			best = i
			bestDist = dist
		}
	}

	if best == -1 {
		return Quote{}, apperrors.WithMessage(apperrors.ErrNavUnavailable,
			fmt.Sprintf("No NAV for fund %s within %d days of %s", fundCode, r.toleranceDays, target.Format("2006-01-02")))
	}
	return series.Quotes[best], nil
}

// LatestNav returns the provider's current quote.
func (r *cachingResolver) LatestNav(ctx context.Context, fundCode string) (Quote, error) {
	v, err := r.cached(ctx, "latest:"+fundCode, func(ctx context.Context) (any, error) {
		return r.provider.FetchLatest(ctx, fundCode)
	})
	if err != nil {
		return Quote{}, err
	}

	q, _ := v.(*Quote)
	if q == nil {
		return Quote{}, apperrors.WithMessage(apperrors.ErrNavUnavailable,
			fmt.Sprintf("No latest NAV published for fund %s", fundCode))
	}
	return *q, nil
}

// Scheme returns the full series for a fund, fetching it at most once per TTL.
func (r *cachingResolver) Scheme(ctx context.Context, fundCode string) (*Series, error) {
	v, err := r.cached(ctx, "history:"+fundCode, func(ctx context.Context) (any, error) {
		return r.provider.FetchHistory(ctx, fundCode)
	})
	if err != nil {
		return nil, err
	}

	series, _ := v.(*Series)
	if series == nil || len(series.Quotes) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrNavUnavailable,
			fmt.Sprintf("No NAV history published for fund %s", fundCode))
	}
	return series, nil
}

// cached serves key from the cache or runs fetch once for all concurrent
// callers. Failed fetches are not cached and surface as ErrNavUnavailable.
func (r *cachingResolver) cached(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if v, ok := r.lookup(key); ok {
		return v, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		// Shared by every caller in the flight; the provider timeout bounds it.
		v, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		r.store(key, v)
		return v, nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Get().Warnw("NAV provider fetch failed", "key", key, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrNavUnavailable, err)
	}
	return v, nil
}

func (r *cachingResolver) lookup(key string) (any, bool) {
	if r.ttl <= 0 {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.cache[key]
	if !ok || r.now().Sub(e.fetchedAt) > r.ttl {
		return nil, false
	}
	return e.value, true
}

func (r *cachingResolver) store(key string, v any) {
	if r.ttl <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[key] = cacheEntry{value: v, fetchedAt: r.now()}
}
