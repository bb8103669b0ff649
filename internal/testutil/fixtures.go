package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"wealthdesk/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewHolderID returns a unique opaque client reference.
func NewHolderID() string {
	return fmt.Sprintf("client-%d", nextID())
}

// CreateTestLumpsum stores a lumpsum investment with precomputed derived
// fields. No NAV provider is involved.
func CreateTestLumpsum(t *testing.T, db *gorm.DB, holderID, fundCode string, amount, units string) *models.Investment {
	t.Helper()

	d := Date(2023, time.January, 15)
	now := time.Now().UTC()
	inv := &models.Investment{
		FundCode:       fundCode,
		SchemeName:     "Test Scheme " + fundCode,
		Type:           models.InvestmentTypeLumpsum,
		HolderID:       holderID,
		Amount:         decimal.RequireFromString(amount),
		Date:           &d,
		Units:          decimal.RequireFromString(units),
		CurrentValue:   decimal.RequireFromString(amount),
		LastRecomputed: &now,
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test lumpsum: %v", err)
	}
	return inv
}

// CreateTestSIP stores an active SIP of 1000 per month on the 15th with
// one lot per given NAV, starting January 2023.
func CreateTestSIP(t *testing.T, db *gorm.DB, holderID, fundCode string, navs ...string) *models.Investment {
	t.Helper()

	start := Date(2023, time.January, 15)
	amount := decimal.NewFromInt(1000)
	now := time.Now().UTC()
	inv := &models.Investment{
		FundCode:       fundCode,
		SchemeName:     "Test SIP " + fundCode,
		Type:           models.InvestmentTypeSIP,
		HolderID:       holderID,
		Amount:         amount,
		StartDate:      &start,
		DayOfMonth:     15,
		SIPStatus:      models.SIPStatusActive,
		LastRecomputed: &now,
	}

	value := decimal.Zero
	for i, n := range navs {
		navValue := decimal.RequireFromString(n)
		units := amount.DivRound(navValue, 6)
		inv.Lots = append(inv.Lots, models.SIPLot{
			Date:          start.AddDate(0, i, 0),
			Amount:        amount,
			NavAtPurchase: navValue,
			Units:         units,
		})
		value = value.Add(units.Mul(navValue))
	}
	inv.CurrentValue = value.Round(2)

	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test SIP: %v", err)
	}
	return inv
}
