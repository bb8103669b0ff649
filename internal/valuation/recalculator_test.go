package valuation_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"wealthdesk/internal/models"
	"wealthdesk/internal/testutil"
	"wealthdesk/internal/valuation"

	"github.com/shopspring/decimal"
)

var scenarioNow = time.Date(2023, time.March, 20, 11, 0, 0, 0, ist)

func newRecalculator(p *testutil.FakeNavProvider) *valuation.Recalculator {
	resolver := testutil.NewTestResolver(p)
	gen := valuation.NewGenerator(resolver,
		valuation.WithLocation(ist),
		valuation.WithNow(testutil.FixedClock(scenarioNow)),
	)
	return valuation.NewRecalculator(resolver, gen)
}

func newSIP() *models.Investment {
	start := testutil.Date(2023, time.January, 15)
	return &models.Investment{
		FundCode:   "F1",
		Type:       models.InvestmentTypeSIP,
		HolderID:   "client-1",
		Amount:     decimal.NewFromInt(1000),
		StartDate:  &start,
		DayOfMonth: 15,
		SIPStatus:  models.SIPStatusActive,
	}
}

func newLumpsum() *models.Investment {
	d := testutil.Date(2023, time.February, 15)
	return &models.Investment{
		FundCode: "F1",
		Type:     models.InvestmentTypeLumpsum,
		HolderID: "client-1",
		Amount:   decimal.NewFromInt(2100),
		Date:     &d,
	}
}

func TestOnCreate_SIPScenario(t *testing.T) {
	r := newRecalculator(testutil.ScenarioProvider("F1"))
	inv := newSIP()

	res, err := r.OnCreate(context.Background(), inv)
	testutil.AssertNoError(t, err)

	if !res.Regenerated {
		t.Error("expected regeneration on create")
	}
	if len(inv.Lots) != 3 {
		t.Fatalf("expected 3 lots, got %d", len(inv.Lots))
	}
	testutil.AssertDecimal(t, inv.CurrentValue, "3147.62", "0")
	if inv.LastRecomputed == nil || !inv.LastRecomputed.Equal(scenarioNow) {
		t.Errorf("expected LastRecomputed %s, got %v", scenarioNow, inv.LastRecomputed)
	}
}

func TestOnCreate_Lumpsum(t *testing.T) {
	r := newRecalculator(testutil.ScenarioProvider("F1"))
	inv := newLumpsum()

	_, err := r.OnCreate(context.Background(), inv)
	testutil.AssertNoError(t, err)

	testutil.AssertDecimal(t, inv.Units, "200", "0")
	testutil.AssertDecimal(t, inv.CurrentValue, "2200", "0")
}

func TestOnCreate_ValidationBeforeNavCalls(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Investment)
	}{
		{name: "sip without day of month", mutate: func(i *models.Investment) { i.DayOfMonth = 0 }},
		{name: "sip day of month too large", mutate: func(i *models.Investment) { i.DayOfMonth = 32 }},
		{name: "sip without start date", mutate: func(i *models.Investment) { i.StartDate = nil }},
		{name: "inactive sip without end date", mutate: func(i *models.Investment) { i.SIPStatus = models.SIPStatusInactive }},
		{name: "unknown status", mutate: func(i *models.Investment) { i.SIPStatus = "paused" }},
		{name: "zero amount", mutate: func(i *models.Investment) { i.Amount = decimal.Zero }},
		{name: "missing fund code", mutate: func(i *models.Investment) { i.FundCode = "" }},
		{name: "unknown type", mutate: func(i *models.Investment) { i.Type = "bond" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testutil.ScenarioProvider("F1")
			r := newRecalculator(p)
			inv := newSIP()
			tt.mutate(inv)

			_, err := r.OnCreate(context.Background(), inv)
			testutil.AssertAppError(t, err, "VALIDATION_ERROR")
			if calls := p.HistoryCalls.Load() + p.LatestCalls.Load(); calls != 0 {
				t.Errorf("expected no NAV calls, got %d", calls)
			}
		})
	}

	t.Run("lumpsum without date", func(t *testing.T) {
		p := testutil.ScenarioProvider("F1")
		inv := newLumpsum()
		inv.Date = nil
		_, err := newRecalculator(p).OnCreate(context.Background(), inv)
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
		if p.HistoryCalls.Load() != 0 {
			t.Error("expected no NAV calls")
		}
	})
}

func TestOnCreate_LumpsumNavUnavailable(t *testing.T) {
	r := newRecalculator(testutil.NewFakeNavProvider())
	inv := newLumpsum()

	_, err := r.OnCreate(context.Background(), inv)
	testutil.AssertAppError(t, err, "NAV_UNAVAILABLE")
	if !inv.Units.IsZero() || inv.LastRecomputed != nil {
		t.Error("failed create must not set derived fields")
	}
}

func TestOnUpdate_PatchWithoutTrigger(t *testing.T) {
	p := testutil.ScenarioProvider("F1")
	r := newRecalculator(p)
	prev := newSIP()
	_, err := r.OnCreate(context.Background(), prev)
	testutil.AssertNoError(t, err)
	calls := p.HistoryCalls.Load()

	name := "Renamed Scheme"
	nominee := "client-9"
	next, res, err := r.OnUpdate(context.Background(), prev, valuation.Changes{SchemeName: &name, Nominee1ID: &nominee}, true)
	testutil.AssertNoError(t, err)

	if res.Regenerated {
		t.Error("non-trigger changes must not regenerate")
	}
	if p.HistoryCalls.Load() != calls {
		t.Error("non-trigger changes must not call the NAV provider")
	}
	if next.SchemeName != name || *next.Nominee1ID != nominee {
		t.Error("expected fields to be patched")
	}
	if len(next.Lots) != 3 || !next.CurrentValue.Equal(prev.CurrentValue) {
		t.Error("derived state must be untouched by a plain patch")
	}
	if prev.SchemeName == name {
		t.Error("previous must not be modified")
	}
}

func TestOnUpdate_EndDateOnActiveSIPIsNotATrigger(t *testing.T) {
	r := newRecalculator(testutil.ScenarioProvider("F1"))
	prev := newSIP()
	_, err := r.OnCreate(context.Background(), prev)
	testutil.AssertNoError(t, err)

	end := testutil.Date(2023, time.February, 1)
	_, res, err := r.OnUpdate(context.Background(), prev, valuation.Changes{EndDate: &end}, true)
	testutil.AssertNoError(t, err)
	if res.Regenerated {
		t.Error("end_date on an active SIP must not trigger regeneration")
	}
}

func TestOnUpdate_RecomputeFalse(t *testing.T) {
	r := newRecalculator(testutil.ScenarioProvider("F1"))
	prev := newSIP()
	_, err := r.OnCreate(context.Background(), prev)
	testutil.AssertNoError(t, err)

	amount := decimal.NewFromInt(2000)
	next, res, err := r.OnUpdate(context.Background(), prev, valuation.Changes{Amount: &amount}, false)
	testutil.AssertNoError(t, err)

	if res.Regenerated {
		t.Error("recompute=false must not regenerate")
	}
	if !next.Amount.Equal(amount) {
		t.Error("expected amount to be patched")
	}
	testutil.AssertDecimal(t, next.Lots[0].Amount, "1000", "0")
}

func TestOnUpdate_TriggerRegenerates(t *testing.T) {
	r := newRecalculator(testutil.ScenarioProvider("F1"))
	prev := newSIP()
	_, err := r.OnCreate(context.Background(), prev)
	testutil.AssertNoError(t, err)

	status := models.SIPStatusInactive
	end := testutil.Date(2023, time.February, 28)
	next, res, err := r.OnUpdate(context.Background(), prev, valuation.Changes{SIPStatus: &status, EndDate: &end}, true)
	testutil.AssertNoError(t, err)

	if !res.Regenerated {
		t.Fatal("expected regeneration")
	}
	if len(next.Lots) != 2 {
		t.Errorf("expected 2 lots after stopping the SIP, got %d", len(next.Lots))
	}
	// (100 + 95.238095) x 11
	testutil.AssertDecimal(t, next.CurrentValue, "2147.62", "0")
	if len(prev.Lots) != 3 {
		t.Error("previous lots must be untouched")
	}
}

func TestOnUpdate_Idempotent(t *testing.T) {
	r := newRecalculator(testutil.ScenarioProvider("F1"))
	prev := newSIP()
	_, err := r.OnCreate(context.Background(), prev)
	testutil.AssertNoError(t, err)

	day := 10
	amount := decimal.NewFromInt(1500)
	changes := valuation.Changes{DayOfMonth: &day, Amount: &amount}

	first, _, err := r.OnUpdate(context.Background(), prev, changes, true)
	testutil.AssertNoError(t, err)
	second, _, err := r.OnUpdate(context.Background(), first, changes, true)
	testutil.AssertNoError(t, err)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("expected identical derived state\nfirst:  %s\nsecond: %s", a, b)
	}
}

func TestOnUpdate_TypeImmutable(t *testing.T) {
	r := newRecalculator(testutil.ScenarioProvider("F1"))
	prev := newSIP()

	lumpsum := models.InvestmentTypeLumpsum
	_, _, err := r.OnUpdate(context.Background(), prev, valuation.Changes{InvestmentType: &lumpsum}, true)
	testutil.AssertAppError(t, err, "INVESTMENT_TYPE_IMMUTABLE")

	sip := models.InvestmentTypeSIP
	_, _, err = r.OnUpdate(context.Background(), prev, valuation.Changes{InvestmentType: &sip}, true)
	testutil.AssertNoError(t, err)
}

func TestOnUpdate_LumpsumNavUnavailableKeepsPrevious(t *testing.T) {
	r := newRecalculator(testutil.ScenarioProvider("F1"))
	prev := newLumpsum()
	_, err := r.OnCreate(context.Background(), prev)
	testutil.AssertNoError(t, err)

	d := testutil.Date(2015, time.January, 1)
	next, _, err := r.OnUpdate(context.Background(), prev, valuation.Changes{Date: &d}, true)
	testutil.AssertAppError(t, err, "NAV_UNAVAILABLE")
	if next != nil {
		t.Error("expected no result on failure")
	}
	testutil.AssertDecimal(t, prev.Units, "200", "0")
}

func TestOnUpdate_ReplaysRedemptions(t *testing.T) {
	r := newRecalculator(testutil.ScenarioProvider("F1"))
	prev := newSIP()
	_, err := r.OnCreate(context.Background(), prev)
	testutil.AssertNoError(t, err)

	_, _, err = valuation.Redeem(prev, decimal.NewFromInt(150), testutil.Date(2023, time.March, 16), decimal.NullDecimal{})
	testutil.AssertNoError(t, err)

	t.Run("ledger fits regenerated lots", func(t *testing.T) {
		amount := decimal.NewFromInt(2000)
		next, _, err := r.OnUpdate(context.Background(), prev, valuation.Changes{Amount: &amount}, true)
		testutil.AssertNoError(t, err)

		// Lots are now 200, 190.476190 and 181.818182 units.
		testutil.AssertDecimal(t, next.Lots[0].RedeemedUnits, "150", "0")
		testutil.AssertDecimal(t, valuation.EffectiveUnits(next), "422.294372", "0")
	})

	t.Run("ledger exceeds regenerated lots", func(t *testing.T) {
		amount := decimal.NewFromInt(100)
		_, _, err := r.OnUpdate(context.Background(), prev, valuation.Changes{Amount: &amount}, true)
		testutil.AssertAppError(t, err, "INSUFFICIENT_UNITS")
		testutil.AssertDecimal(t, valuation.EffectiveUnits(prev), "136.147186", "0")
	})
}

func TestTriggerFields(t *testing.T) {
	fund := "F2"
	day := 3
	d := testutil.Date(2023, time.January, 1)

	lump := newLumpsum()
	if got := (valuation.Changes{Date: &d, DayOfMonth: &day}).TriggerFields(lump); len(got) != 1 || got[0] != "date" {
		t.Errorf("lumpsum triggers: got %v", got)
	}

	sip := newSIP()
	if got := (valuation.Changes{FundCode: &fund, Date: &d}).TriggerFields(sip); len(got) != 1 || got[0] != "fund_code" {
		t.Errorf("sip triggers: got %v", got)
	}

	sip.SIPStatus = models.SIPStatusInactive
	if got := (valuation.Changes{EndDate: &d}).TriggerFields(sip); len(got) != 1 || got[0] != "end_date" {
		t.Errorf("inactive sip triggers: got %v", got)
	}
}

func TestOnCreate_SIPWithNoResolvableMonth(t *testing.T) {
	p := testutil.NewFakeNavProvider().AddQuote("F1", testutil.Date(2010, time.January, 1), "10").SetLatest("F1", "11")
	r := newRecalculator(p)
	inv := newSIP()

	_, err := r.OnCreate(context.Background(), inv)
	testutil.AssertAppError(t, err, "NAV_UNAVAILABLE")
	if inv.Lots != nil {
		t.Error("failed create must not set lots")
	}
}

func TestOnCreate_FutureSIPHasNoLots(t *testing.T) {
	p := testutil.NewFakeNavProvider()
	r := newRecalculator(p)
	inv := newSIP()
	start := testutil.Date(2023, time.June, 1)
	inv.StartDate = &start

	_, err := r.OnCreate(context.Background(), inv)
	testutil.AssertNoError(t, err)
	if len(inv.Lots) != 0 || !inv.CurrentValue.IsZero() {
		t.Errorf("expected an empty SIP, got %d lots worth %s", len(inv.Lots), inv.CurrentValue)
	}
}

func TestValidate_Nominees(t *testing.T) {
	ref := func(s string) *string { return &s }

	tests := []struct {
		name    string
		mutate  func(inv *models.Investment)
		wantErr bool
	}{
		{name: "none", mutate: func(*models.Investment) {}},
		{name: "distinct", mutate: func(inv *models.Investment) {
			inv.Nominee1ID, inv.Nominee3ID = ref("client-2"), ref("client-3")
		}},
		{name: "empty_slots_ignored", mutate: func(inv *models.Investment) {
			inv.Nominee1ID, inv.Nominee2ID = ref(""), ref("")
		}},
		{name: "duplicate", mutate: func(inv *models.Investment) {
			inv.Nominee1ID, inv.Nominee2ID = ref("client-2"), ref("client-2")
		}, wantErr: true},
		{name: "holder_as_nominee", mutate: func(inv *models.Investment) {
			inv.Nominee2ID = ref("client-1")
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newLumpsum()
			tt.mutate(inv)
			err := valuation.Validate(inv)
			if tt.wantErr {
				testutil.AssertAppError(t, err, "VALIDATION_ERROR")
				return
			}
			testutil.AssertNoError(t, err)
		})
	}
}
