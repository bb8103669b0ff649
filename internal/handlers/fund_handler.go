package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "wealthdesk/internal/errors"
	"wealthdesk/internal/services"
	"wealthdesk/internal/validator"
)

// FundHandler handles NAV lookups.
type FundHandler struct {
	fundService services.FundServicer
}

// NewFundHandler creates a new FundHandler.
func NewFundHandler(fundService services.FundServicer) *FundHandler {
	return &FundHandler{fundService: fundService}
}

// GetNav handles looking up a fund's NAV.
// @Summary     Get fund NAV
// @Description Get the NAV published closest to date, or the latest NAV when date is omitted
// @Tags        funds
// @Produce     json
// @Security    BearerAuth
// @Param       code path  string true  "Fund scheme code"
// @Param       date query string false "Date (YYYY-MM-DD)"
// @Success     200 {object} services.FundNav "Resolved NAV"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "NAV unavailable"
// @Router      /funds/{code}/nav [get]
func (h *FundHandler) GetNav(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	code := c.Param("code")
	if !validator.IsFundCode(code) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid fund code"))
		return
	}

	date, err := parseDateQuery(c, "date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.fundService.GetNav(c.Request.Context(), code, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"nav": result})
}
