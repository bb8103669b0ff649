// Package valuation reconstructs purchase lots for mutual-fund investments
// and values the resulting holdings.
package valuation

import (
	"context"

	"wealthdesk/internal/models"
	"wealthdesk/internal/nav"

	"github.com/shopspring/decimal"
)

// Units are kept at 6 decimal places and money at 2.
const (
	UnitPlaces  = 6
	MoneyPlaces = 2
)

// EffectiveUnits returns the units still held: purchased units less
// redeemed units. It never calls the NAV provider.
func EffectiveUnits(inv *models.Investment) decimal.Decimal {
	if inv.IsSIP() {
		total := decimal.Zero
		for i := range inv.Lots {
			total = total.Add(inv.Lots[i].AvailableUnits())
		}
		return total
	}

	redeemed := decimal.Zero
	for _, r := range inv.Redemptions {
		redeemed = redeemed.Add(r.UnitsRedeemed)
	}
	return inv.Units.Sub(redeemed)
}

// TotalInvested sums the lot amounts of a SIP, or returns the lumpsum amount.
func TotalInvested(inv *models.Investment) decimal.Decimal {
	if !inv.IsSIP() {
		return inv.Amount
	}
	total := decimal.Zero
	for _, lot := range inv.Lots {
		total = total.Add(lot.Amount)
	}
	return total
}

// CurrentValue prices the effective units at the fund's latest NAV.
// A holding with no units is worth zero without a provider call.
func CurrentValue(ctx context.Context, resolver nav.Resolver, inv *models.Investment) (decimal.Decimal, error) {
	units := EffectiveUnits(inv)
	if !units.IsPositive() {
		return decimal.Zero, nil
	}
	q, err := resolver.LatestNav(ctx, inv.FundCode)
	if err != nil {
		return decimal.Zero, err
	}
	return units.Mul(q.NAV).Round(MoneyPlaces), nil
}
