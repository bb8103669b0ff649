package models

import (
	"time"

	"wealthdesk/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Redemption is an immutable ledger entry recording units sold back to the
// fund. Entries are only ever appended.
type Redemption struct {
	ID              string              `gorm:"type:uuid;primaryKey" json:"id"`
	InvestmentID    string              `gorm:"not null;index" json:"investment_id"`
	Date            time.Time           `gorm:"not null" json:"date"`
	UnitsRedeemed   decimal.Decimal     `gorm:"type:numeric(24,6);not null" json:"units_redeemed"`
	NavAtRedemption decimal.NullDecimal `gorm:"type:numeric(20,6)" json:"nav_at_redemption"`
	CreatedAt       time.Time           `json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (r *Redemption) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New()
	}
	return nil
}

// LotRedemption is the share of a Redemption charged against one SIP lot.
// Allocations are derived and are rebuilt together with the lots.
type LotRedemption struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	LotID        string          `gorm:"not null;index" json:"lot_id"`
	RedemptionID string          `gorm:"not null;index" json:"redemption_id"`
	Date         time.Time       `gorm:"not null" json:"date"`
	Units        decimal.Decimal `gorm:"type:numeric(24,6);not null" json:"units"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (r *LotRedemption) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New()
	}
	return nil
}
