package services

import (
	"context"
	"time"

	"wealthdesk/internal/models"
	"wealthdesk/internal/pagination"
	"wealthdesk/internal/valuation"

	"github.com/shopspring/decimal"
)

// CreateInvestmentInput holds the defining fields of a new investment.
type CreateInvestmentInput struct {
	FundCode   string
	SchemeName string
	FundHouse  string
	Type       models.InvestmentType
	HolderID   string
	Nominee1ID *string
	Nominee2ID *string
	Nominee3ID *string
	Amount     decimal.Decimal

	// Lumpsum
	Date *time.Time

	// SIP
	StartDate  *time.Time
	EndDate    *time.Time
	DayOfMonth int
	SIPStatus  models.SIPStatus
}

// PortfolioSummary aggregates the stored values of a holder's investments.
type PortfolioSummary struct {
	HolderID       string                                 `json:"holder_id"`
	TotalInvested  decimal.Decimal                        `json:"total_invested"`
	CurrentValue   decimal.Decimal                        `json:"current_value"`
	TotalGainLoss  decimal.Decimal                        `json:"total_gain_loss"`
	GainLossPct    float64                                `json:"gain_loss_pct"`
	Investments    int                                    `json:"investments"`
	HoldingsByType map[models.InvestmentType]TypeSummary `json:"holdings_by_type"`
}

// TypeSummary contains summary data for a single investment type.
type TypeSummary struct {
	Invested decimal.Decimal `json:"invested"`
	Value    decimal.Decimal `json:"value"`
	Count    int             `json:"count"`
}

// InvestmentServicer defines the contract for investment-related business logic.
type InvestmentServicer interface {
	CreateInvestment(ctx context.Context, input CreateInvestmentInput) (*models.Investment, error)
	GetInvestment(ctx context.Context, id string) (*models.Investment, error)
	GetHolderInvestments(ctx context.Context, holderID string, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)
	UpdateInvestment(ctx context.Context, id string, changes valuation.Changes, recompute bool) (*models.Investment, error)
	DeleteInvestment(ctx context.Context, id string) error
	RecomputeInvestment(ctx context.Context, id string) (*models.Investment, error)
	GetLots(ctx context.Context, id string) ([]models.SIPLot, error)
	GetHolderPortfolio(ctx context.Context, holderID string) (*PortfolioSummary, error)
}

// RedemptionOutcome is the state of an investment after a redemption.
type RedemptionOutcome struct {
	Redemption     *models.Redemption `json:"redemption"`
	EffectiveUnits decimal.Decimal    `json:"effective_units"`
	CurrentValue   decimal.Decimal    `json:"current_value"`
}

// BatchRedemptionResult reports one entry of a batch redemption.
type BatchRedemptionResult struct {
	InvestmentID   string           `json:"investment_id"`
	Success        bool             `json:"success"`
	EffectiveUnits *decimal.Decimal `json:"effective_units,omitempty"`
	CurrentValue   *decimal.Decimal `json:"current_value,omitempty"`
	ErrorCode      string           `json:"error_code,omitempty"`
	Error          string           `json:"error,omitempty"`
}

// RedemptionServicer defines the contract for redeeming units.
type RedemptionServicer interface {
	Redeem(ctx context.Context, investmentID string, units decimal.Decimal, date *time.Time) (*RedemptionOutcome, error)
	RedeemBatch(ctx context.Context, requests map[string]decimal.Decimal) []BatchRedemptionResult
	GetRedemptions(ctx context.Context, investmentID string) ([]models.Redemption, error)
}

// FundNav is a resolved NAV with the fund's scheme metadata.
type FundNav struct {
	FundCode      string          `json:"fund_code"`
	SchemeName    string          `json:"scheme_name,omitempty"`
	FundHouse     string          `json:"fund_house,omitempty"`
	RequestedDate *time.Time      `json:"requested_date,omitempty"`
	Date          *time.Time      `json:"date,omitempty"`
	NAV           decimal.Decimal `json:"nav"`
}

// FundServicer defines the contract for NAV lookups.
type FundServicer interface {
	GetNav(ctx context.Context, fundCode string, date *time.Time) (*FundNav, error)
}

// RecomputeFailure identifies an investment the pipeline could not recompute.
type RecomputeFailure struct {
	InvestmentID string `json:"investment_id"`
	Code         string `json:"code"`
	Message      string `json:"message"`
}

// RecomputeReport summarises a pipeline recompute run.
type RecomputeReport struct {
	Processed     int                `json:"processed"`
	Succeeded     int                `json:"succeeded"`
	Failed        int                `json:"failed"`
	SkippedMonths int                `json:"skipped_months"`
	Failures      []RecomputeFailure `json:"failures,omitempty"`
}

// RecomputeServicer defines the contract for bulk recomputation.
type RecomputeServicer interface {
	RecomputeActive(ctx context.Context, all bool) (*RecomputeReport, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
