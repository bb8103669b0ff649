package valuation

import (
	"context"
	"time"

	"wealthdesk/internal/nav"

	"github.com/shopspring/decimal"
)

// ComputeLumpsumUnits returns the units bought by investing amount in the
// fund on date. A missing NAV is returned as ErrNavUnavailable.
func ComputeLumpsumUnits(ctx context.Context, resolver nav.Resolver, fundCode string, amount decimal.Decimal, date time.Time) (decimal.Decimal, error) {
	q, err := resolver.NavAt(ctx, fundCode, date)
	if err != nil {
		return decimal.Zero, err
	}
	return UnitsFor(amount, q.NAV), nil
}

// UnitsFor divides amount by nav at unit precision.
func UnitsFor(amount, navValue decimal.Decimal) decimal.Decimal {
	return amount.DivRound(navValue, UnitPlaces)
}
