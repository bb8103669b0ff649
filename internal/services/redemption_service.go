package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "wealthdesk/internal/errors"
	"wealthdesk/internal/logger"
	"wealthdesk/internal/models"
	"wealthdesk/internal/nav"
	"wealthdesk/internal/valuation"

	"github.com/shopspring/decimal"
)

// redemptionService handles unit redemptions against the ledger.
type redemptionService struct {
	db       *gorm.DB
	resolver nav.Resolver
	recalc   *valuation.Recalculator
}

// NewRedemptionService creates a new RedemptionServicer.
func NewRedemptionService(db *gorm.DB, resolver nav.Resolver, recalc *valuation.Recalculator) RedemptionServicer {
	return &redemptionService{db: db, resolver: resolver, recalc: recalc}
}

// Redeem sells units of an investment. The request is rejected without any
// change when it exceeds the effective units. date defaults to today.
func (s *redemptionService) Redeem(ctx context.Context, investmentID string, units decimal.Decimal, date *time.Time) (*RedemptionOutcome, error) {
	redeemOn := s.recalc.Today()
	if date != nil {
		redeemOn = nav.CivilDate(*date)
	}

	var (
		investment *models.Investment
		redemption *models.Redemption
		touched    []int
		value      decimal.Decimal
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		investment, err = lockInvestment(tx, investmentID)
		if err != nil {
			return err
		}

		var navAt decimal.NullDecimal
		if q, navErr := s.resolver.NavAt(ctx, investment.FundCode, redeemOn); navErr == nil {
			navAt = decimal.NewNullDecimal(q.NAV)
		}

		redemption, touched, err = valuation.Redeem(investment, units, redeemOn, navAt)
		if err != nil {
			return err
		}
		value, err = valuation.CurrentValue(ctx, s.resolver, investment)
		if err != nil {
			return err
		}

		if err := tx.Create(redemption).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, i := range touched {
			lot := &investment.Lots[i]
			if err := tx.Create(&lot.Allocations[len(lot.Allocations)-1]).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if err := tx.Model(&models.SIPLot{ID: lot.ID}).Update("redeemed_units", lot.RedeemedUnits).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if err := tx.Model(&models.Investment{}).Where("id = ?", investment.ID).Update("current_value", value).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		investment.CurrentValue = value
		return nil
	})
	if err != nil {
		return nil, err
	}

	effective := valuation.EffectiveUnits(investment)
	logger.Get().Infow("Units redeemed",
		"investment_id", investmentID,
		"units", redemption.UnitsRedeemed.String(),
		"effective_units", effective.String(),
		"lots_touched", len(touched),
	)

	return &RedemptionOutcome{
		Redemption:     redemption,
		EffectiveUnits: effective,
		CurrentValue:   value,
	}, nil
}

// RedeemBatch applies each request independently. A failed entry never
// rolls back the others.
func (s *redemptionService) RedeemBatch(ctx context.Context, requests map[string]decimal.Decimal) []BatchRedemptionResult {
	ids := make([]string, 0, len(requests))
	for id := range requests {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	results := make([]BatchRedemptionResult, 0, len(ids))
	for _, id := range ids {
		result := BatchRedemptionResult{InvestmentID: id}

		outcome, err := s.Redeem(ctx, id, requests[id], nil)
		if err != nil {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) {
				result.ErrorCode = appErr.Code
				result.Error = appErr.Message
			} else {
				result.ErrorCode = apperrors.ErrInternalServer.Code
				result.Error = apperrors.ErrInternalServer.Message
			}
			logger.Get().Warnw("Batch redemption entry failed", "investment_id", id, "error", err)
		} else {
			result.Success = true
			result.EffectiveUnits = &outcome.EffectiveUnits
			result.CurrentValue = &outcome.CurrentValue
		}

		results = append(results, result)
	}
	return results
}

// GetRedemptions returns the redemption ledger of an investment in order.
func (s *redemptionService) GetRedemptions(ctx context.Context, investmentID string) ([]models.Redemption, error) {
	investment, err := loadInvestment(s.db.WithContext(ctx), investmentID)
	if err != nil {
		return nil, err
	}
	if investment.Redemptions == nil {
		return []models.Redemption{}, nil
	}
	return investment.Redemptions, nil
}
