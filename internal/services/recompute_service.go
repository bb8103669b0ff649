package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "wealthdesk/internal/errors"
	"wealthdesk/internal/logger"
	"wealthdesk/internal/models"
	"wealthdesk/internal/valuation"
)

// recomputeService regenerates stored investments in bulk.
type recomputeService struct {
	db     *gorm.DB
	recalc *valuation.Recalculator
}

// NewRecomputeService creates a new RecomputeServicer.
func NewRecomputeService(db *gorm.DB, recalc *valuation.Recalculator) RecomputeServicer {
	return &recomputeService{db: db, recalc: recalc}
}

// RecomputeActive regenerates every active SIP, or every investment when all
// is set. A failing investment is reported and keeps its stored state; only
// context cancellation stops the run.
func (s *recomputeService) RecomputeActive(ctx context.Context, all bool) (*RecomputeReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	query := db.Model(&models.Investment{})
	if !all {
		query = query.Where("investment_type = ? AND sip_status = ?", models.InvestmentTypeSIP, models.SIPStatusActive)
	}
	var ids []string
	if err := query.Order("created_at ASC").Pluck("id", &ids).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	report := &RecomputeReport{}
	log := logger.Get()

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Processed++

		skipped, err := s.recomputeOne(ctx, id)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			report.Failed++
			failure := RecomputeFailure{InvestmentID: id, Code: apperrors.ErrInternalServer.Code, Message: err.Error()}
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) {
				failure.Code = appErr.Code
				failure.Message = appErr.Message
			}
			report.Failures = append(report.Failures, failure)
			log.Warnw("Recompute failed", "investment_id", id, "error", err)
			continue
		}
		report.Succeeded++
		report.SkippedMonths += skipped
	}

	log.Infow("Recompute run finished",
		"processed", report.Processed,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"skipped_months", report.SkippedMonths,
	)
	return report, nil
}

func (s *recomputeService) recomputeOne(ctx context.Context, id string) (int, error) {
	skipped := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		investment, err := lockInvestment(tx, id)
		if err != nil {
			return err
		}
		res, err := s.recalc.Recompute(ctx, investment)
		if err != nil {
			return err
		}
		skipped = len(res.Skipped)
		return saveDerived(tx, investment, true)
	})
	if err != nil {
		return 0, err
	}
	return skipped, nil
}
