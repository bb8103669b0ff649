package valuation

import (
	"context"
	"time"

	apperrors "wealthdesk/internal/errors"
	"wealthdesk/internal/logger"
	"wealthdesk/internal/models"
	"wealthdesk/internal/nav"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultLookupConcurrency bounds parallel NAV lookups for one SIP.
const DefaultLookupConcurrency = 4

// SIPParams are the defining inputs of a SIP schedule.
type SIPParams struct {
	FundCode   string
	Amount     decimal.Decimal
	StartDate  time.Time
	DayOfMonth int
	Status     models.SIPStatus
	EndDate    *time.Time
}

// SkippedMonth is a SIP installment left out because its NAV could not be
// resolved. It is reported to callers, never returned as an error.
type SkippedMonth struct {
	Date   time.Time
	Reason error
}

// Generator rebuilds the monthly lots of a SIP.
type Generator struct {
	resolver    nav.Resolver
	location    *time.Location
	now         func() time.Time
	concurrency int
}

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithLocation sets the calendar used to decide today's date.
func WithLocation(loc *time.Location) GeneratorOption {
	return func(g *Generator) {
		if loc != nil {
			g.location = loc
		}
	}
}

// WithNow overrides the generator clock.
func WithNow(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = now
	}
}

// WithConcurrency sets the number of month lookups run in parallel.
func WithConcurrency(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.concurrency = n
		}
	}
}

// NewGenerator creates a SIP lot generator.
func NewGenerator(resolver nav.Resolver, opts ...GeneratorOption) *Generator {
	g := &Generator{
		resolver:    resolver,
		location:    time.UTC,
		now:         time.Now,
		concurrency: DefaultLookupConcurrency,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Today returns the current civil date in the generator's calendar.
func (g *Generator) Today() time.Time {
	return nav.CivilDate(g.now().In(g.location))
}

// LotDate returns dayOfMonth within the given month. A day past the end of
// the month overflows into the next one and is pulled back to the last day
// of the month preceding the overflow.
func LotDate(year int, month time.Month, dayOfMonth int) time.Time {
	d := time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
	if d.Month() != month {
		return time.Date(d.Year(), d.Month(), 0, 0, 0, 0, 0, time.UTC)
	}
	return d
}

// Candidates lists the installment dates between the start date and the
// boundary, one per calendar month, in ascending order.
func Candidates(start, boundary time.Time, dayOfMonth int) []time.Time {
	start = nav.CivilDate(start)
	boundary = nav.CivilDate(boundary)

	var dates []time.Time
	for month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC); !month.After(boundary); month = month.AddDate(0, 1, 0) {
		d := LotDate(month.Year(), month.Month(), dayOfMonth)
		if d.Before(start) || d.After(boundary) {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

// Boundary returns the last date a SIP may buy on: today while active, the
// end date once inactive.
func (g *Generator) Boundary(p SIPParams) (time.Time, error) {
	if p.Status == models.SIPStatusActive {
		return g.Today(), nil
	}
	if p.EndDate == nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrValidation, "end_date is required for an inactive SIP")
	}
	return nav.CivilDate(*p.EndDate), nil
}

// GenerateLots resolves a NAV for every installment date and returns the
// purchased lots in date order. Months without a NAV are skipped and
// reported; only context cancellation aborts generation.
func (g *Generator) GenerateLots(ctx context.Context, p SIPParams) ([]models.SIPLot, []SkippedMonth, error) {
	boundary, err := g.Boundary(p)
	if err != nil {
		return nil, nil, err
	}

	dates := Candidates(p.StartDate, boundary, p.DayOfMonth)
	quotes := make([]*nav.Quote, len(dates))
	reasons := make([]error, len(dates))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	for i, d := range dates {
		eg.Go(func() error {
			q, err := g.resolver.NavAt(egCtx, p.FundCode, d)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				reasons[i] = err
				return nil
			}
			quotes[i] = &q
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	log := logger.Get()
	lots := make([]models.SIPLot, 0, len(dates))
	var skipped []SkippedMonth
	for i, d := range dates {
		if quotes[i] == nil {
			skipped = append(skipped, SkippedMonth{Date: d, Reason: reasons[i]})
			log.Warnw("SIP month skipped", "fund_code", p.FundCode, "date", d.Format("2006-01-02"), "error", reasons[i])
			continue
		}
		lots = append(lots, models.SIPLot{
			Date:          d,
			Amount:        p.Amount,
			NavAtPurchase: quotes[i].NAV,
			Units:         UnitsFor(p.Amount, quotes[i].NAV),
			RedeemedUnits: decimal.Zero,
		})
	}

	return lots, skipped, nil
}
