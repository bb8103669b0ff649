package valuation

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "wealthdesk/internal/errors"
	"wealthdesk/internal/logger"
	"wealthdesk/internal/models"
	"wealthdesk/internal/nav"

	"github.com/shopspring/decimal"
)

// Changes is a partial update to an investment. Nil fields are absent.
type Changes struct {
	InvestmentType *models.InvestmentType

	FundCode   *string
	SchemeName *string
	FundHouse  *string
	HolderID   *string
	Nominee1ID *string
	Nominee2ID *string
	Nominee3ID *string

	Amount     *decimal.Decimal
	Date       *time.Time
	StartDate  *time.Time
	EndDate    *time.Time
	DayOfMonth *int
	SIPStatus  *models.SIPStatus
}

// TriggerFields returns the names of present fields that force a full
// regeneration for an investment in the given effective state.
func (c Changes) TriggerFields(effective *models.Investment) []string {
	var fields []string
	if c.FundCode != nil {
		fields = append(fields, "fund_code")
	}
	if c.Amount != nil {
		fields = append(fields, "amount")
	}

	if !effective.IsSIP() {
		if c.Date != nil {
			fields = append(fields, "date")
		}
		return fields
	}

	if c.StartDate != nil {
		fields = append(fields, "start_date")
	}
	if c.DayOfMonth != nil {
		fields = append(fields, "day_of_month")
	}
	if c.SIPStatus != nil {
		fields = append(fields, "sip_status")
	}
	if c.EndDate != nil && effective.SIPStatus == models.SIPStatusInactive {
		fields = append(fields, "end_date")
	}
	return fields
}

// Apply copies the present fields onto inv.
func (c Changes) Apply(inv *models.Investment) {
	if c.FundCode != nil {
		inv.FundCode = *c.FundCode
	}
	if c.SchemeName != nil {
		inv.SchemeName = *c.SchemeName
	}
	if c.FundHouse != nil {
		inv.FundHouse = *c.FundHouse
	}
	if c.HolderID != nil {
		inv.HolderID = *c.HolderID
	}
	if c.Nominee1ID != nil {
		inv.Nominee1ID = c.Nominee1ID
	}
	if c.Nominee2ID != nil {
		inv.Nominee2ID = c.Nominee2ID
	}
	if c.Nominee3ID != nil {
		inv.Nominee3ID = c.Nominee3ID
	}
	if c.Amount != nil {
		inv.Amount = *c.Amount
	}
	if c.Date != nil {
		d := nav.CivilDate(*c.Date)
		inv.Date = &d
	}
	if c.StartDate != nil {
		d := nav.CivilDate(*c.StartDate)
		inv.StartDate = &d
	}
	if c.EndDate != nil {
		d := nav.CivilDate(*c.EndDate)
		inv.EndDate = &d
	}
	if c.DayOfMonth != nil {
		inv.DayOfMonth = *c.DayOfMonth
	}
	if c.SIPStatus != nil {
		inv.SIPStatus = *c.SIPStatus
	}
}

// Result describes what a recalculation did.
type Result struct {
	Regenerated   bool
	TriggerFields []string
	Skipped       []SkippedMonth
}

// Recalculator keeps an investment's derived state (units, lots, current
// value) consistent with its defining fields.
type Recalculator struct {
	resolver  nav.Resolver
	generator *Generator
	now       func() time.Time
}

// NewRecalculator creates a Recalculator. The generator's clock is also
// used to stamp LastRecomputed.
func NewRecalculator(resolver nav.Resolver, generator *Generator) *Recalculator {
	return &Recalculator{
		resolver:  resolver,
		generator: generator,
		now:       generator.now,
	}
}

// Today returns the current civil date in the SIP calendar.
func (r *Recalculator) Today() time.Time {
	return r.generator.Today()
}

// Validate checks the fields required by the investment's declared type.
func Validate(inv *models.Investment) error {
	var problems []string

	if strings.TrimSpace(inv.FundCode) == "" {
		problems = append(problems, "fund_code is required")
	}
	if strings.TrimSpace(inv.HolderID) == "" {
		problems = append(problems, "holder_id is required")
	}
	if !inv.Amount.IsPositive() {
		problems = append(problems, "amount must be greater than zero")
	}
	seen := map[string]bool{inv.HolderID: true}
	for _, nominee := range inv.Nominees() {
		if seen[nominee] {
			problems = append(problems, "nominees must be distinct from each other and from the holder")
			break
		}
		seen[nominee] = true
	}

	switch inv.Type {
	case models.InvestmentTypeLumpsum:
		if inv.Date == nil || inv.Date.IsZero() {
			problems = append(problems, "date is required for a lumpsum investment")
		}
	case models.InvestmentTypeSIP:
		if inv.StartDate == nil || inv.StartDate.IsZero() {
			problems = append(problems, "start_date is required for a SIP")
		}
		if inv.DayOfMonth < 1 || inv.DayOfMonth > 31 {
			problems = append(problems, "day_of_month must be between 1 and 31")
		}
		switch inv.SIPStatus {
		case models.SIPStatusActive:
		case models.SIPStatusInactive:
			if inv.EndDate == nil || inv.EndDate.IsZero() {
				problems = append(problems, "end_date is required for an inactive SIP")
			}
		default:
			problems = append(problems, "sip_status must be active or inactive")
		}
		if inv.StartDate != nil && inv.EndDate != nil && inv.EndDate.Before(*inv.StartDate) {
			problems = append(problems, "end_date must not be before start_date")
		}
	default:
		problems = append(problems, "investment_type must be lumpsum or sip")
	}

	if len(problems) > 0 {
		return apperrors.WithMessage(apperrors.ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

// OnCreate validates a new investment and computes its derived state.
func (r *Recalculator) OnCreate(ctx context.Context, inv *models.Investment) (*Result, error) {
	if err := Validate(inv); err != nil {
		return nil, err
	}
	return r.regenerate(ctx, inv, nil)
}

// OnUpdate applies changes to a copy of previous. When a trigger field is
// present and recompute is set, the copy's derived state is rebuilt from
// scratch; otherwise the changes are a plain field patch. previous is
// never modified.
func (r *Recalculator) OnUpdate(ctx context.Context, previous *models.Investment, changes Changes, recompute bool) (*models.Investment, *Result, error) {
	if changes.InvestmentType != nil && *changes.InvestmentType != previous.Type {
		return nil, nil, apperrors.ErrTypeImmutable
	}

	effective := *previous
	changes.Apply(&effective)
	if err := Validate(&effective); err != nil {
		return nil, nil, err
	}

	triggers := changes.TriggerFields(&effective)
	if len(triggers) == 0 || !recompute {
		return &effective, &Result{TriggerFields: triggers}, nil
	}

	res, err := r.regenerate(ctx, &effective, triggers)
	if err != nil {
		return nil, nil, err
	}
	return &effective, res, nil
}

// Recompute rebuilds the derived state of inv unconditionally.
func (r *Recalculator) Recompute(ctx context.Context, inv *models.Investment) (*Result, error) {
	if err := Validate(inv); err != nil {
		return nil, err
	}
	return r.regenerate(ctx, inv, nil)
}

// regenerate replaces the derived fields of inv. On error inv is unchanged.
func (r *Recalculator) regenerate(ctx context.Context, inv *models.Investment, triggers []string) (*Result, error) {
	res := &Result{Regenerated: true, TriggerFields: triggers}
	next := *inv

	if next.IsSIP() {
		lots, skipped, err := r.generator.GenerateLots(ctx, SIPParams{
			FundCode:   next.FundCode,
			Amount:     next.Amount,
			StartDate:  *next.StartDate,
			DayOfMonth: next.DayOfMonth,
			Status:     next.SIPStatus,
			EndDate:    next.EndDate,
		})
		if err != nil {
			return nil, err
		}
		if len(lots) == 0 && len(skipped) > 0 {
			return nil, apperrors.WithMessage(apperrors.ErrNavUnavailable,
				fmt.Sprintf("No NAV resolvable for any of the %d installments of fund %s", len(skipped), next.FundCode))
		}
		for i := range lots {
			lots[i].InvestmentID = next.ID
		}
		if err := ReplayRedemptions(lots, next.Redemptions); err != nil {
			return nil, err
		}
		next.Lots = lots
		next.Units = decimal.Zero
		next.SkippedMonths = len(skipped)
		res.Skipped = skipped
	} else {
		units, err := ComputeLumpsumUnits(ctx, r.resolver, next.FundCode, next.Amount, *next.Date)
		if err != nil {
			return nil, err
		}
		if err := CheckLumpsumLedger(units, next.Redemptions); err != nil {
			return nil, err
		}
		next.Units = units
		next.Lots = nil
		next.SkippedMonths = 0
	}

	value, err := CurrentValue(ctx, r.resolver, &next)
	if err != nil {
		return nil, err
	}
	next.CurrentValue = value
	now := r.now().UTC()
	next.LastRecomputed = &now

	*inv = next

	logger.Get().Infow("Investment recomputed",
		"investment_id", inv.ID,
		"investment_type", inv.Type,
		"trigger_fields", triggers,
		"skipped_months", inv.SkippedMonths,
		"current_value", inv.CurrentValue.String(),
	)
	return res, nil
}
