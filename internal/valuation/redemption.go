package valuation

import (
	"fmt"
	"sort"
	"time"

	apperrors "wealthdesk/internal/errors"
	"wealthdesk/internal/models"
	"wealthdesk/internal/uuid"

	"github.com/shopspring/decimal"
)

// Redeem appends a redemption of units to the investment's ledger. SIP
// redemptions are charged against lots oldest first. Nothing is changed
// when the request exceeds the effective units.
// It returns the new ledger row and, for SIPs, the indexes of the lots it
// touched; each touched lot's last allocation is the new one.
func Redeem(inv *models.Investment, units decimal.Decimal, date time.Time, navAt decimal.NullDecimal) (*models.Redemption, []int, error) {
	units = units.Round(UnitPlaces)
	if !units.IsPositive() {
		return nil, nil, apperrors.WithMessage(apperrors.ErrValidation, "units to redeem must be greater than zero")
	}

	available := EffectiveUnits(inv)
	if units.GreaterThan(available) {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInsufficientUnits,
			fmt.Sprintf("Cannot redeem %s units; only %s available", units.String(), available.String()))
	}

	red := &models.Redemption{
		ID:              uuid.New(),
		InvestmentID:    inv.ID,
		Date:            date,
		UnitsRedeemed:   units,
		NavAtRedemption: navAt,
	}

	var touched []int
	if inv.IsSIP() {
		var err error
		touched, err = AllocateFIFO(inv.Lots, red)
		if err != nil {
			return nil, nil, err
		}
	}

	inv.Redemptions = append(inv.Redemptions, *red)
	return red, touched, nil
}

// AllocateFIFO charges a redemption against lots in date order, never
// letting a lot's redeemed units exceed its own units. Lots are left
// untouched when they cannot cover the redemption.
func AllocateFIFO(lots []models.SIPLot, red *models.Redemption) ([]int, error) {
	order := make([]int, len(lots))
	available := decimal.Zero
	for i := range lots {
		order[i] = i
		available = available.Add(lots[i].AvailableUnits())
	}
	if red.UnitsRedeemed.GreaterThan(available) {
		return nil, apperrors.WithMessage(apperrors.ErrInsufficientUnits,
			fmt.Sprintf("Cannot redeem %s units; only %s available", red.UnitsRedeemed.String(), available.String()))
	}
	sort.SliceStable(order, func(a, b int) bool {
		return lots[order[a]].Date.Before(lots[order[b]].Date)
	})

	remaining := red.UnitsRedeemed
	var touched []int
	for _, i := range order {
		if !remaining.IsPositive() {
			break
		}
		lot := &lots[i]
		take := decimal.Min(lot.AvailableUnits(), remaining)
		if !take.IsPositive() {
			continue
		}
		lot.RedeemedUnits = lot.RedeemedUnits.Add(take)
		lot.Allocations = append(lot.Allocations, models.LotRedemption{
			LotID:        lot.ID,
			RedemptionID: red.ID,
			Date:         red.Date,
			Units:        take,
		})
		remaining = remaining.Sub(take)
		touched = append(touched, i)
	}

	return touched, nil
}

// ReplayRedemptions re-applies the redemption ledger to freshly generated
// lots in ledger order. Existing allocations on the lots are discarded.
func ReplayRedemptions(lots []models.SIPLot, ledger []models.Redemption) error {
	for i := range lots {
		lots[i].RedeemedUnits = decimal.Zero
		lots[i].Allocations = nil
	}

	for _, red := range SortLedger(ledger) {
		if _, err := AllocateFIFO(lots, &red); err != nil {
			return err
		}
	}
	return nil
}

// CheckLumpsumLedger verifies the ledger still fits within units.
func CheckLumpsumLedger(units decimal.Decimal, ledger []models.Redemption) error {
	redeemed := decimal.Zero
	for _, r := range ledger {
		redeemed = redeemed.Add(r.UnitsRedeemed)
	}
	if redeemed.GreaterThan(units) {
		return apperrors.WithMessage(apperrors.ErrInsufficientUnits,
			fmt.Sprintf("Existing redemptions of %s units exceed the recomputed %s units", redeemed.String(), units.String()))
	}
	return nil
}

// SortLedger returns a copy of the ledger ordered by date, then creation.
func SortLedger(ledger []models.Redemption) []models.Redemption {
	sorted := make([]models.Redemption, len(ledger))
	copy(sorted, ledger)
	sort.SliceStable(sorted, func(a, b int) bool {
		if !sorted[a].Date.Equal(sorted[b].Date) {
			return sorted[a].Date.Before(sorted[b].Date)
		}
		if !sorted[a].CreatedAt.Equal(sorted[b].CreatedAt) {
			return sorted[a].CreatedAt.Before(sorted[b].CreatedAt)
		}
		return sorted[a].ID < sorted[b].ID
	})
	return sorted
}
