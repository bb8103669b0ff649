package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentType selects which sub-fields of an Investment are mandatory.
type InvestmentType string

const (
	InvestmentTypeLumpsum InvestmentType = "lumpsum"
	InvestmentTypeSIP     InvestmentType = "sip"
)

// SIPStatus represents whether a SIP is still running.
type SIPStatus string

const (
	SIPStatusActive   SIPStatus = "active"
	SIPStatusInactive SIPStatus = "inactive"
)

// Investment is a client's holding in a single mutual fund, bought either
// as one lumpsum or through a monthly SIP.
type Investment struct {
	Base
	FundCode   string         `gorm:"not null;index" json:"fund_code"`
	SchemeName string         `json:"scheme_name"`
	FundHouse  string         `json:"fund_house"`
	Type       InvestmentType `gorm:"column:investment_type;not null" json:"investment_type"`

	HolderID   string  `gorm:"not null;index" json:"holder_id"`
	Nominee1ID *string `gorm:"column:nominee1_id" json:"nominee1_id,omitempty"`
	Nominee2ID *string `gorm:"column:nominee2_id" json:"nominee2_id,omitempty"`
	Nominee3ID *string `gorm:"column:nominee3_id" json:"nominee3_id,omitempty"`

	// Lumpsum purchase amount, or the per-installment amount of a SIP.
	Amount decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"amount"`

	// Lumpsum
	Date  *time.Time      `json:"date,omitempty"`
	Units decimal.Decimal `gorm:"type:numeric(24,6);not null;default:0" json:"units"`

	// SIP
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	DayOfMonth int        `json:"day_of_month,omitempty"`
	SIPStatus  SIPStatus  `gorm:"column:sip_status" json:"sip_status,omitempty"`

	CurrentValue   decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"current_value"`
	LastRecomputed *time.Time      `json:"last_recomputed,omitempty"`
	SkippedMonths  int             `gorm:"not null;default:0" json:"skipped_months"`

	// Relationships
	Lots        []SIPLot     `gorm:"foreignKey:InvestmentID" json:"lots,omitempty"`
	Redemptions []Redemption `gorm:"foreignKey:InvestmentID" json:"redemptions,omitempty"`
}

// IsSIP reports whether the investment is a recurring SIP.
func (i *Investment) IsSIP() bool {
	return i.Type == InvestmentTypeSIP
}

// Nominees returns the non-empty nominee references in slot order.
func (i *Investment) Nominees() []string {
	var ids []string
	for _, n := range []*string{i.Nominee1ID, i.Nominee2ID, i.Nominee3ID} {
		if n != nil && *n != "" {
			ids = append(ids, *n)
		}
	}
	return ids
}
