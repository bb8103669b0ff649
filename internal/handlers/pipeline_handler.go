package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "wealthdesk/internal/errors"
	"wealthdesk/internal/services"
)

// pipelineActor is recorded as the user for pipeline-triggered audit entries.
const pipelineActor = "pipeline"

// PipelineHandler handles scheduled maintenance requests.
type PipelineHandler struct {
	recomputeService services.RecomputeServicer
	auditService     services.AuditServicer
}

// NewPipelineHandler creates a new PipelineHandler.
func NewPipelineHandler(recomputeService services.RecomputeServicer, auditService services.AuditServicer) *PipelineHandler {
	return &PipelineHandler{recomputeService: recomputeService, auditService: auditService}
}

// RecomputeRequest represents the request payload for a recompute run.
type RecomputeRequest struct {
	All bool `json:"all"`
}

// Recompute handles regenerating stored investments.
// @Summary     Recompute investments
// @Description Regenerate every active SIP, or every investment with all=true (pipeline endpoint). Failures are reported per investment.
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Param       X-API-Key header   string           true  "Pipeline API key"
// @Param       request   body     RecomputeRequest false "Run options"
// @Success     200       {object} services.RecomputeReport "Run report"
// @Failure     400       {object} ErrorResponse "Invalid input"
// @Failure     401       {object} ErrorResponse "Invalid API key"
// @Failure     503       {object} ErrorResponse "Pipeline not configured"
// @Router      /pipeline/recompute [post]
func (h *PipelineHandler) Recompute(c *gin.Context) {
	var req RecomputeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	report, err := h.recomputeService.RecomputeActive(c.Request.Context(), req.All)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(pipelineActor, services.AuditPipelineRecompute, "investment", "", c.ClientIP(),
		map[string]interface{}{
			"all":       req.All,
			"processed": report.Processed,
			"failed":    report.Failed,
		})

	c.JSON(http.StatusOK, report)
}
