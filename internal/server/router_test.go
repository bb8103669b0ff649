package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"wealthdesk/internal/handlers"
	"wealthdesk/internal/logger"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

func newTestRouter(opts Options) *gin.Engine {
	return NewRouter(Handlers{
		Investment: handlers.NewInvestmentHandler(nil, nil),
		Redemption: handlers.NewRedemptionHandler(nil, nil),
		Fund:       handlers.NewFundHandler(nil),
		Pipeline:   handlers.NewPipelineHandler(nil, nil),
	}, opts)
}

func TestNewRouter(t *testing.T) {
	router := newTestRouter(Options{JWTSecret: "secret"})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/api/health", wantStatus: http.StatusOK},
		{name: "investments_need_token", method: http.MethodPost, path: "/api/v1/investments", wantStatus: http.StatusUnauthorized},
		{name: "holders_need_token", method: http.MethodGet, path: "/api/v1/holders/h1/portfolio", wantStatus: http.StatusUnauthorized},
		{name: "batch_needs_token", method: http.MethodPost, path: "/api/v1/redemptions", wantStatus: http.StatusUnauthorized},
		{name: "funds_need_token", method: http.MethodGet, path: "/api/v1/funds/119551/nav", wantStatus: http.StatusUnauthorized},
		{name: "pipeline_unconfigured", method: http.MethodPost, path: "/api/v1/pipeline/recompute", wantStatus: http.StatusServiceUnavailable},
		{name: "swagger_disabled", method: http.MethodGet, path: "/swagger/index.html", wantStatus: http.StatusNotFound},
		{name: "preflight", method: http.MethodOptions, path: "/api/health", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, http.NoBody))
			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, rec.Code, tt.wantStatus)
			}
		})
	}
}
