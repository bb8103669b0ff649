package services

import (
	"context"
	"testing"
	"time"

	"wealthdesk/internal/testutil"
)

func TestGetNav(t *testing.T) {
	ctx := context.Background()
	svc := NewFundService(testutil.NewTestResolver(testutil.ScenarioProvider("F1")))

	t.Run("nearest_date", func(t *testing.T) {
		on := time.Date(2023, time.February, 18, 9, 0, 0, 0, time.UTC)
		got, err := svc.GetNav(ctx, "F1", &on)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, got.NAV, "10.5", "0")
		if !got.Date.Equal(testutil.Date(2023, time.February, 15)) {
			t.Errorf("expected the 15 Feb NAV, got %s", got.Date)
		}
		if !got.RequestedDate.Equal(testutil.Date(2023, time.February, 18)) {
			t.Errorf("expected requested date 18 Feb, got %s", got.RequestedDate)
		}
		if got.SchemeName != "Fake Scheme F1" {
			t.Errorf("expected scheme name, got %q", got.SchemeName)
		}
	})

	t.Run("latest", func(t *testing.T) {
		got, err := svc.GetNav(ctx, "F1", nil)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, got.NAV, "11", "0")
		if got.RequestedDate != nil {
			t.Error("latest lookups carry no requested date")
		}
	})

	t.Run("outside_tolerance", func(t *testing.T) {
		on := testutil.Date(2024, time.January, 1)
		_, err := svc.GetNav(ctx, "F1", &on)
		testutil.AssertAppError(t, err, "NAV_UNAVAILABLE")
	})

	t.Run("unknown_fund", func(t *testing.T) {
		_, err := svc.GetNav(ctx, "F404", nil)
		testutil.AssertAppError(t, err, "NAV_UNAVAILABLE")
	})
}
