package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "wealthdesk/internal/errors"
	"wealthdesk/internal/logger"
	"wealthdesk/internal/models"
	"wealthdesk/internal/nav"
	"wealthdesk/internal/pagination"
	"wealthdesk/internal/valuation"

	"github.com/shopspring/decimal"
)

// loadInvestment fetches an investment with its lots, their allocations and
// the redemption ledger.
func loadInvestment(db *gorm.DB, id string) (*models.Investment, error) {
	var investment models.Investment
	err := db.
		Preload("Lots", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		Preload("Lots.Allocations").
		Preload("Redemptions", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC, created_at ASC") }).
		First(&investment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}

// lockInvestment loads an investment inside tx and holds a row lock on it
// until tx ends, so ledger appends and lot rebuilds on the same investment
// are serialized.
func lockInvestment(tx *gorm.DB, id string) (*models.Investment, error) {
	return loadInvestment(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// saveDerived persists an investment's scalar fields and, when its lots were
// regenerated, replaces the stored lots and their allocations.
func saveDerived(tx *gorm.DB, inv *models.Investment, regenerated bool) error {
	if err := tx.Omit(clause.Associations).Save(inv).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !regenerated {
		return nil
	}

	oldLots := tx.Model(&models.SIPLot{}).Select("id").Where("investment_id = ?", inv.ID)
	if err := tx.Where("lot_id IN (?)", oldLots).Delete(&models.LotRedemption{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := tx.Where("investment_id = ?", inv.ID).Delete(&models.SIPLot{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if len(inv.Lots) == 0 {
		return nil
	}
	for i := range inv.Lots {
		inv.Lots[i].ID = ""
		inv.Lots[i].InvestmentID = inv.ID
		for j := range inv.Lots[i].Allocations {
			inv.Lots[i].Allocations[j].ID = ""
		}
	}
	if err := tx.Create(&inv.Lots).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// sortableColumns are the investment columns a listing may be ordered by.
var sortableColumns = []string{"created_at", "amount", "current_value", "fund_code", "last_recomputed"}

// investmentService handles investment-related business logic.
type investmentService struct {
	db       *gorm.DB
	resolver nav.Resolver
	recalc   *valuation.Recalculator
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB, resolver nav.Resolver, recalc *valuation.Recalculator) InvestmentServicer {
	return &investmentService{db: db, resolver: resolver, recalc: recalc}
}

// CreateInvestment validates a new investment, computes its units or lots
// and current value, and stores it.
func (s *investmentService) CreateInvestment(ctx context.Context, input CreateInvestmentInput) (*models.Investment, error) {
	investment := &models.Investment{
		FundCode:   input.FundCode,
		SchemeName: input.SchemeName,
		FundHouse:  input.FundHouse,
		Type:       input.Type,
		HolderID:   input.HolderID,
		Nominee1ID: input.Nominee1ID,
		Nominee2ID: input.Nominee2ID,
		Nominee3ID: input.Nominee3ID,
		Amount:     input.Amount.Round(valuation.MoneyPlaces),
		DayOfMonth: input.DayOfMonth,
		SIPStatus:  input.SIPStatus,
	}
	investment.Date = civilPtr(input.Date)
	investment.StartDate = civilPtr(input.StartDate)
	investment.EndDate = civilPtr(input.EndDate)

	res, err := s.recalc.OnCreate(ctx, investment)
	if err != nil {
		return nil, err
	}
	s.fillSchemeMetadata(ctx, investment)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Create(investment).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("Investment created",
		"investment_id", investment.ID,
		"investment_type", investment.Type,
		"fund_code", investment.FundCode,
		"lots", len(investment.Lots),
		"skipped_months", len(res.Skipped),
	)
	return investment, nil
}

// GetInvestment returns an investment with its lots and redemptions.
func (s *investmentService) GetInvestment(ctx context.Context, id string) (*models.Investment, error) {
	return loadInvestment(s.db.WithContext(ctx), id)
}

// GetHolderInvestments returns a paginated list of a holder's investments.
// Lots and redemptions are not loaded.
func (s *investmentService) GetHolderInvestments(ctx context.Context, holderID string, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	page.Defaults()
	db := s.db.WithContext(ctx)

	var totalItems int64
	if err := db.Model(&models.Investment{}).Where("holder_id = ?", holderID).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	order := page.OrderBy(sortableColumns, clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true})
	var investments []models.Investment
	if err := db.Where("holder_id = ?", holderID).Order(order).
		Scopes(pagination.Paginate(page)).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(investments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateInvestment applies a partial update. Trigger-field changes rebuild
// the derived state unless recompute is false. On any failure the stored
// investment is left as it was.
func (s *investmentService) UpdateInvestment(ctx context.Context, id string, changes valuation.Changes, recompute bool) (*models.Investment, error) {
	db := s.db.WithContext(ctx)

	var res *valuation.Result
	err := db.Transaction(func(tx *gorm.DB) error {
		previous, err := lockInvestment(tx, id)
		if err != nil {
			return err
		}

		var next *models.Investment
		next, res, err = s.recalc.OnUpdate(ctx, previous, changes, recompute)
		if err != nil {
			return err
		}
		if changes.FundCode != nil && changes.SchemeName == nil {
			next.SchemeName, next.FundHouse = "", ""
			s.fillSchemeMetadata(ctx, next)
		}
		return saveDerived(tx, next, res.Regenerated)
	})
	if err != nil {
		return nil, err
	}

	if len(res.TriggerFields) > 0 && !res.Regenerated {
		logger.Get().Infow("Investment patched without recompute",
			"investment_id", id,
			"trigger_fields", res.TriggerFields,
		)
	}
	return loadInvestment(db, id)
}

// DeleteInvestment soft-deletes an investment. Its lots and ledger are kept.
func (s *investmentService) DeleteInvestment(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Investment{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrInvestmentNotFound
	}
	return nil
}

// RecomputeInvestment rebuilds an investment's derived state from its
// current fields and the latest NAV data.
func (s *investmentService) RecomputeInvestment(ctx context.Context, id string) (*models.Investment, error) {
	db := s.db.WithContext(ctx)
	err := db.Transaction(func(tx *gorm.DB) error {
		investment, err := lockInvestment(tx, id)
		if err != nil {
			return err
		}
		if _, err := s.recalc.Recompute(ctx, investment); err != nil {
			return err
		}
		return saveDerived(tx, investment, true)
	})
	if err != nil {
		return nil, err
	}
	return loadInvestment(db, id)
}

// GetLots returns the lots of a SIP in date order.
func (s *investmentService) GetLots(ctx context.Context, id string) ([]models.SIPLot, error) {
	investment, err := loadInvestment(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if !investment.IsSIP() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Lumpsum investments have no lots")
	}
	if investment.Lots == nil {
		return []models.SIPLot{}, nil
	}
	return investment.Lots, nil
}

// GetHolderPortfolio aggregates the stored values of all of a holder's
// investments. No NAV lookups are made.
func (s *investmentService) GetHolderPortfolio(ctx context.Context, holderID string) (*PortfolioSummary, error) {
	var investments []models.Investment
	if err := s.db.WithContext(ctx).Preload("Lots").Where("holder_id = ?", holderID).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &PortfolioSummary{
		HolderID:       holderID,
		TotalInvested:  decimal.Zero,
		CurrentValue:   decimal.Zero,
		HoldingsByType: make(map[models.InvestmentType]TypeSummary),
	}

	for i := range investments {
		inv := &investments[i]
		invested := valuation.TotalInvested(inv)
		summary.TotalInvested = summary.TotalInvested.Add(invested)
		summary.CurrentValue = summary.CurrentValue.Add(inv.CurrentValue)

		ts := summary.HoldingsByType[inv.Type]
		ts.Invested = ts.Invested.Add(invested)
		ts.Value = ts.Value.Add(inv.CurrentValue)
		ts.Count++
		summary.HoldingsByType[inv.Type] = ts
	}
	summary.Investments = len(investments)

	summary.TotalGainLoss = summary.CurrentValue.Sub(summary.TotalInvested)
	if summary.TotalInvested.IsPositive() {
		summary.GainLossPct = summary.TotalGainLoss.Div(summary.TotalInvested).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}

	return summary, nil
}

// fillSchemeMetadata copies the provider's scheme name and fund house onto
// the investment when the caller left them empty. Lookup failures are ignored.
func (s *investmentService) fillSchemeMetadata(ctx context.Context, inv *models.Investment) {
	if inv.SchemeName != "" && inv.FundHouse != "" {
		return
	}
	series, err := s.resolver.Scheme(ctx, inv.FundCode)
	if err != nil {
		return
	}
	if inv.SchemeName == "" {
		inv.SchemeName = series.SchemeName
	}
	if inv.FundHouse == "" {
		inv.FundHouse = series.FundHouse
	}
}

func civilPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := nav.CivilDate(*t)
	return &d
}
