package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "wealthdesk/internal/errors"
	"wealthdesk/internal/services"
	"wealthdesk/internal/uuid"
)

// maxBatchRedemptions bounds the entries accepted in one batch request.
const maxBatchRedemptions = 500

// RedemptionHandler handles unit redemption requests.
type RedemptionHandler struct {
	redemptionService services.RedemptionServicer
	auditService      services.AuditServicer
}

// NewRedemptionHandler creates a new RedemptionHandler.
func NewRedemptionHandler(redemptionService services.RedemptionServicer, auditService services.AuditServicer) *RedemptionHandler {
	return &RedemptionHandler{redemptionService: redemptionService, auditService: auditService}
}

// RedeemRequest represents the request payload for redeeming units.
type RedeemRequest struct {
	Units decimal.Decimal `json:"units" binding:"required,gt=0" swaggertype:"string"`
	Date  *string         `json:"date,omitempty"`
}

// BatchRedeemRequest maps investment IDs to the units to redeem from each.
type BatchRedeemRequest struct {
	Redemptions map[string]decimal.Decimal `json:"redemptions" binding:"required,min=1"`
}

// Redeem handles redeeming units of a single investment.
// @Summary     Redeem units
// @Description Redeem units of an investment. SIP units are taken from the oldest lots first. The request is rejected whole if it exceeds the units held.
// @Tags        redemptions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string        true "Investment ID"
// @Param       request body RedeemRequest true "Units and optional date (default today)"
// @Success     201 {object} services.RedemptionOutcome "Redemption recorded"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient units"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     422 {object} ErrorResponse "NAV unavailable"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/redeem [post]
func (h *RedemptionHandler) Redeem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	date, err := parseOptionalDate("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	outcome, err := h.redemptionService.Redeem(c.Request.Context(), investmentID, req.Units, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditRedeem, "investment", investmentID, c.ClientIP(),
		map[string]interface{}{
			"units":           outcome.Redemption.UnitsRedeemed.String(),
			"redemption_id":   outcome.Redemption.ID,
			"effective_units": outcome.EffectiveUnits.String(),
		})

	c.JSON(http.StatusCreated, outcome)
}

// RedeemBatch handles redeeming units across several investments.
// @Summary     Redeem units in bulk
// @Description Each entry succeeds or fails on its own. A failed entry never undoes the others.
// @Tags        redemptions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BatchRedeemRequest true "Units per investment ID"
// @Success     200 {object} map[string][]services.BatchRedemptionResult "Per-entry results"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /redemptions [post]
func (h *RedemptionHandler) RedeemBatch(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BatchRedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if len(req.Redemptions) > maxBatchRedemptions {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Too many redemptions in one batch"))
		return
	}

	requests := make(map[string]decimal.Decimal, len(req.Redemptions))
	for id, units := range req.Redemptions {
		if !uuid.IsValid(id) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid investment id "+id))
			return
		}
		canonical, _ := uuid.Canonical(id)
		requests[canonical] = units
	}

	results := h.redemptionService.RedeemBatch(c.Request.Context(), requests)

	succeeded := 0
	for _, r := range results {
		if !r.Success {
			continue
		}
		succeeded++
		h.auditService.Log(userID, services.AuditRedeem, "investment", r.InvestmentID, c.ClientIP(),
			map[string]interface{}{"units": requests[r.InvestmentID].String(), "batch": true})
	}

	c.JSON(http.StatusOK, gin.H{
		"results":   results,
		"succeeded": succeeded,
		"failed":    len(results) - succeeded,
	})
}

// GetRedemptions handles listing the redemption ledger of an investment.
// @Summary     Get redemption ledger
// @Tags        redemptions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} map[string][]models.Redemption "Ledger in date order"
// @Failure     400 {object} ErrorResponse "Invalid investment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/redemptions [get]
func (h *RedemptionHandler) GetRedemptions(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	ledger, err := h.redemptionService.GetRedemptions(c.Request.Context(), investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"redemptions": ledger})
}
