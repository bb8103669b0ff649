package integration

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"wealthdesk/internal/handlers"
	"wealthdesk/internal/logger"
	"wealthdesk/internal/middleware"
	"wealthdesk/internal/server"
	"wealthdesk/internal/services"
	"wealthdesk/internal/testutil"
	"wealthdesk/internal/validator"
	"wealthdesk/internal/valuation"
)

const (
	testJWTSecret   = "integration-secret"
	testPipelineKey = "integration-pipeline-key"
	testAdvisorID   = "advisor-7"
)

var (
	ist = time.FixedZone("IST", 5*3600+1800)
	// now is the wall clock every test runs at.
	now = time.Date(2023, time.March, 20, 11, 0, 0, 0, ist)
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Provider *testutil.FakeNavProvider
	Token    string
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite database and a fake NAV provider seeded with the F1 scenario.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	provider := testutil.ScenarioProvider("F1")
	resolver := testutil.NewTestResolver(provider)
	generator := valuation.NewGenerator(resolver,
		valuation.WithLocation(ist),
		valuation.WithNow(testutil.FixedClock(now)),
	)
	recalc := valuation.NewRecalculator(resolver, generator)

	auditService := services.NewAuditService(db)
	router := server.NewRouter(server.Handlers{
		Investment: handlers.NewInvestmentHandler(services.NewInvestmentService(db, resolver, recalc), auditService),
		Redemption: handlers.NewRedemptionHandler(services.NewRedemptionService(db, resolver, recalc), auditService),
		Fund:       handlers.NewFundHandler(services.NewFundService(resolver)),
		Pipeline:   handlers.NewPipelineHandler(services.NewRecomputeService(db, recalc), auditService),
	}, server.Options{
		JWTSecret:      testJWTSecret,
		PipelineAPIKey: testPipelineKey,
	})

	token, err := middleware.GenerateAccessToken(testJWTSecret, testAdvisorID, "Test Advisor", time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	return &testApp{DB: db, Router: router, Provider: provider, Token: token}
}

// request makes an authenticated HTTP request to the test router.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	return app.requestWithHeaders(method, path, body, map[string]string{"Authorization": "Bearer " + app.Token})
}

// requestWithHeaders makes an HTTP request with exactly the given headers.
func (app *testApp) requestWithHeaders(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// expectStatus fails the test when the response has a different status.
func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

// expectErrorCode checks the error code of an error response.
func expectErrorCode(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected an error object, got %s", rec.Body.String())
	}
	if code, _ := errObj["code"].(string); code != want {
		t.Errorf("expected error code %s, got %s", want, code)
	}
}

// expectDecimal checks a decimal encoded as a JSON string.
func expectDecimal(t *testing.T, raw interface{}, want, tolerance string) {
	t.Helper()
	s, ok := raw.(string)
	if !ok {
		t.Fatalf("expected a decimal string, got %T (%v)", raw, raw)
	}
	got, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	testutil.AssertDecimal(t, got, want, tolerance)
}

// createSIP creates the standard monthly SIP (1000 on the 15th from
// 15 Jan 2023) and returns the investment object.
func (app *testApp) createSIP(t *testing.T, holderID, fundCode string) map[string]interface{} {
	t.Helper()
	body := `{"fund_code":"` + fundCode + `","investment_type":"sip","holder_id":"` + holderID + `",
		"amount":"1000","start_date":"2023-01-15","day_of_month":15,"sip_status":"active"}`
	rec := app.request("POST", "/api/v1/investments", body)
	expectStatus(t, rec, 201)
	return parseJSON(t, rec)["investment"].(map[string]interface{})
}
