package services

import (
	"context"
	"time"

	"wealthdesk/internal/nav"
)

// fundService answers NAV lookups for funds.
type fundService struct {
	resolver nav.Resolver
}

// NewFundService creates a new FundServicer.
func NewFundService(resolver nav.Resolver) FundServicer {
	return &fundService{resolver: resolver}
}

// GetNav returns the NAV closest to date, or the latest NAV when date is nil.
func (s *fundService) GetNav(ctx context.Context, fundCode string, date *time.Time) (*FundNav, error) {
	result := &FundNav{FundCode: fundCode}

	if date == nil {
		q, err := s.resolver.LatestNav(ctx, fundCode)
		if err != nil {
			return nil, err
		}
		result.NAV = q.NAV
		if !q.Date.IsZero() {
			d := q.Date
			result.Date = &d
		}
		if series, err := s.resolver.Scheme(ctx, fundCode); err == nil {
			result.SchemeName = series.SchemeName
			result.FundHouse = series.FundHouse
		}
		return result, nil
	}

	requested := nav.CivilDate(*date)
	q, err := s.resolver.NavAt(ctx, fundCode, requested)
	if err != nil {
		return nil, err
	}
	series, err := s.resolver.Scheme(ctx, fundCode)
	if err != nil {
		return nil, err
	}

	result.RequestedDate = &requested
	result.Date = &q.Date
	result.NAV = q.NAV
	result.SchemeName = series.SchemeName
	result.FundHouse = series.FundHouse
	return result, nil
}
