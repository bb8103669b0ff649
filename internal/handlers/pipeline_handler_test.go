package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"wealthdesk/internal/services"
)

type mockRecomputeService struct {
	recomputeActiveFn func(ctx context.Context, all bool) (*services.RecomputeReport, error)
}

var _ services.RecomputeServicer = (*mockRecomputeService)(nil)

func (m *mockRecomputeService) RecomputeActive(ctx context.Context, all bool) (*services.RecomputeReport, error) {
	if m.recomputeActiveFn != nil {
		return m.recomputeActiveFn(ctx, all)
	}
	return &services.RecomputeReport{}, nil
}

func setupPipelineRouter(handler *PipelineHandler) *gin.Engine {
	r := gin.New()
	r.POST("/pipeline/recompute", handler.Recompute)
	return r
}

func TestPipelineHandler_Recompute(t *testing.T) {
	t.Run("returns the report", func(t *testing.T) {
		var gotAll bool
		svc := &mockRecomputeService{
			recomputeActiveFn: func(_ context.Context, all bool) (*services.RecomputeReport, error) {
				gotAll = all
				return &services.RecomputeReport{
					Processed: 3, Succeeded: 2, Failed: 1,
					Failures: []services.RecomputeFailure{{InvestmentID: testInvestmentID, Code: "NAV_UNAVAILABLE"}},
				}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupPipelineRouter(NewPipelineHandler(svc, audit))

		rec := doRequest(r, "POST", "/pipeline/recompute", `{"all":true}`)
		assertStatus(t, rec, http.StatusOK)
		if !gotAll {
			t.Error("expected all=true to reach the service")
		}
		result := parseJSON(t, rec)
		if result["failed"].(float64) != 1 {
			t.Errorf("expected failed=1, got %v", result["failed"])
		}
		if len(audit.entries) != 1 || audit.entries[0].userID != pipelineActor {
			t.Errorf("expected a pipeline audit entry, got %+v", audit.entries)
		}
	})

	t.Run("empty body recomputes active SIPs", func(t *testing.T) {
		gotAll := true
		svc := &mockRecomputeService{
			recomputeActiveFn: func(_ context.Context, all bool) (*services.RecomputeReport, error) {
				gotAll = all
				return &services.RecomputeReport{}, nil
			},
		}
		r := setupPipelineRouter(NewPipelineHandler(svc, &mockAuditService{}))
		rec := doRequest(r, "POST", "/pipeline/recompute", "")
		assertStatus(t, rec, http.StatusOK)
		if gotAll {
			t.Error("expected all=false by default")
		}
	})

	t.Run("returns 400 for malformed JSON", func(t *testing.T) {
		r := setupPipelineRouter(NewPipelineHandler(&mockRecomputeService{}, &mockAuditService{}))
		rec := doRequest(r, "POST", "/pipeline/recompute", `{"all":`)
		assertStatus(t, rec, http.StatusBadRequest)
	})
}
