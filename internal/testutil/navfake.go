package testutil

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"wealthdesk/internal/nav"

	"github.com/shopspring/decimal"
)

// FakeNavProvider is an in-memory nav.Provider for deterministic tests.
type FakeNavProvider struct {
	mu       sync.Mutex
	history  map[string][]nav.Quote
	latest   map[string]*nav.Quote
	failures map[string]error

	HistoryCalls atomic.Int32
	LatestCalls  atomic.Int32
}

// NewFakeNavProvider creates an empty fake provider.
func NewFakeNavProvider() *FakeNavProvider {
	return &FakeNavProvider{
		history:  make(map[string][]nav.Quote),
		latest:   make(map[string]*nav.Quote),
		failures: make(map[string]error),
	}
}

// AddQuote appends a published NAV to the fund's history.
func (f *FakeNavProvider) AddQuote(fundCode string, date time.Time, value string) *FakeNavProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history[fundCode] = append(f.history[fundCode], nav.Quote{
		Date: nav.CivilDate(date),
		NAV:  decimal.RequireFromString(value),
	})
	return f
}

// SetLatest sets the fund's current NAV.
func (f *FakeNavProvider) SetLatest(fundCode string, value string) *FakeNavProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest[fundCode] = &nav.Quote{NAV: decimal.RequireFromString(value)}
	return f
}

// Fail makes every call for the fund return err.
func (f *FakeNavProvider) Fail(fundCode string, err error) *FakeNavProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[fundCode] = err
	return f
}

// FetchHistory implements nav.Provider.
func (f *FakeNavProvider) FetchHistory(_ context.Context, fundCode string) (*nav.Series, error) {
	f.HistoryCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failures[fundCode]; err != nil {
		return nil, err
	}
	quotes := make([]nav.Quote, len(f.history[fundCode]))
	copy(quotes, f.history[fundCode])
	return &nav.Series{
		FundCode:   fundCode,
		SchemeName: "Fake Scheme " + fundCode,
		FundHouse:  "Fake AMC",
		Quotes:     quotes,
	}, nil
}

// FetchLatest implements nav.Provider.
func (f *FakeNavProvider) FetchLatest(_ context.Context, fundCode string) (*nav.Quote, error) {
	f.LatestCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failures[fundCode]; err != nil {
		return nil, err
	}
	q := f.latest[fundCode]
	if q == nil {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

// NewTestResolver wraps a provider in a resolver without caching, so tests
// observe provider changes immediately.
func NewTestResolver(p nav.Provider) nav.Resolver {
	return nav.NewResolver(p, nav.WithCacheTTL(0))
}

// ScenarioProvider returns a provider for fund code with NAVs 10, 10.5 and
// 11 on the 15th of January, February and March 2023, and a latest NAV of 11.
func ScenarioProvider(fundCode string) *FakeNavProvider {
	return NewFakeNavProvider().
		AddQuote(fundCode, Date(2023, time.January, 15), "10").
		AddQuote(fundCode, Date(2023, time.February, 15), "10.5").
		AddQuote(fundCode, Date(2023, time.March, 15), "11").
		SetLatest(fundCode, "11")
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
