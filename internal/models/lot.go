package models

import (
	"time"

	"wealthdesk/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SIPLot is one synthetic monthly purchase reconstructed for a SIP.
// Lots are derived data: they are deleted and rebuilt whenever the SIP's
// defining fields change, so there is no Base embed and no soft delete.
type SIPLot struct {
	ID            string          `gorm:"type:uuid;primaryKey" json:"id"`
	InvestmentID  string          `gorm:"not null;index" json:"investment_id"`
	Date          time.Time       `gorm:"not null" json:"date"`
	Amount        decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"amount"`
	NavAtPurchase decimal.Decimal `gorm:"type:numeric(20,6);not null" json:"nav_at_purchase"`
	Units         decimal.Decimal `gorm:"type:numeric(24,6);not null" json:"units"`
	RedeemedUnits decimal.Decimal `gorm:"type:numeric(24,6);not null;default:0" json:"redeemed_units"`
	CreatedAt     time.Time       `json:"created_at"`

	Allocations []LotRedemption `gorm:"foreignKey:LotID" json:"redemptions,omitempty"`
}

// TableName overrides the default table name.
func (SIPLot) TableName() string { return "sip_lots" }

// AvailableUnits returns the units of the lot that are still held.
func (l *SIPLot) AvailableUnits() decimal.Decimal {
	return l.Units.Sub(l.RedeemedUnits)
}

// BeforeCreate hook generates a UUIDv7 for new records
func (l *SIPLot) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New()
	}
	return nil
}
