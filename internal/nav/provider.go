// Package nav resolves mutual-fund net asset values from an external provider.
package nav

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a single published NAV for a fund on a calendar date.
// Date is always midnight UTC.
type Quote struct {
	Date time.Time       `json:"date"`
	NAV  decimal.Decimal `json:"nav"`
}

// Series is the full NAV history for one fund plus the scheme metadata the
// provider reports alongside it. Quotes are in no particular order.
type Series struct {
	FundCode   string
	SchemeName string
	FundHouse  string
	Quotes     []Quote
}

// Provider fetches NAV data for mutual funds.
type Provider interface {
	// FetchHistory returns every NAV the provider has published for the fund.
	FetchHistory(ctx context.Context, fundCode string) (*Series, error)

	// FetchLatest returns the provider's current quote for the fund, or nil
	// when the provider has none.
	FetchLatest(ctx context.Context, fundCode string) (*Quote, error)
}

// CivilDate truncates t to midnight UTC of its calendar date in t's own
// location. All day arithmetic in this package works on civil dates.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the absolute number of calendar days between a and b.
func DaysBetween(a, b time.Time) int {
	d := CivilDate(a).Sub(CivilDate(b))
	if d < 0 {
		d = -d
	}
	return int(d / (24 * time.Hour))
}
