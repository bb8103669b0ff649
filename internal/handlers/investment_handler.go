package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "wealthdesk/internal/errors"
	"wealthdesk/internal/models"
	"wealthdesk/internal/pagination"
	"wealthdesk/internal/services"
	"wealthdesk/internal/valuation"
)

// InvestmentHandler handles investment-related requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
	auditService      services.AuditServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer, auditService services.AuditServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService, auditService: auditService}
}

// CreateInvestmentRequest represents the request payload for creating an investment.
// Lumpsum investments need date; SIPs need start_date, day_of_month and sip_status.
type CreateInvestmentRequest struct {
	FundCode       string                `json:"fund_code" binding:"required,fund_code"`
	SchemeName     string                `json:"scheme_name" binding:"max=200"`
	FundHouse      string                `json:"fund_house" binding:"max=200"`
	InvestmentType models.InvestmentType `json:"investment_type" binding:"required,investment_type"`
	HolderID       string                `json:"holder_id" binding:"required,max=100"`
	Nominee1ID     *string               `json:"nominee1_id" binding:"omitempty,max=100"`
	Nominee2ID     *string               `json:"nominee2_id" binding:"omitempty,max=100"`
	Nominee3ID     *string               `json:"nominee3_id" binding:"omitempty,max=100"`
	Amount         decimal.Decimal       `json:"amount" binding:"required,gt=0" swaggertype:"string"`
	Date           *string               `json:"date,omitempty"`
	StartDate      *string               `json:"start_date,omitempty"`
	EndDate        *string               `json:"end_date,omitempty"`
	DayOfMonth     int                   `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	SIPStatus      models.SIPStatus      `json:"sip_status" binding:"omitempty,sip_status"`
}

// UpdateInvestmentRequest represents a partial update. Absent fields are unchanged.
type UpdateInvestmentRequest struct {
	InvestmentType *models.InvestmentType `json:"investment_type" binding:"omitempty,investment_type"`
	FundCode       *string                `json:"fund_code" binding:"omitempty,fund_code"`
	SchemeName     *string                `json:"scheme_name" binding:"omitempty,max=200"`
	FundHouse      *string                `json:"fund_house" binding:"omitempty,max=200"`
	HolderID       *string                `json:"holder_id" binding:"omitempty,min=1,max=100"`
	Nominee1ID     *string                `json:"nominee1_id" binding:"omitempty,max=100"`
	Nominee2ID     *string                `json:"nominee2_id" binding:"omitempty,max=100"`
	Nominee3ID     *string                `json:"nominee3_id" binding:"omitempty,max=100"`
	Amount         *decimal.Decimal       `json:"amount" binding:"omitempty,gt=0" swaggertype:"string"`
	Date           *string                `json:"date"`
	StartDate      *string                `json:"start_date"`
	EndDate        *string                `json:"end_date"`
	DayOfMonth     *int                   `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	SIPStatus      *models.SIPStatus      `json:"sip_status" binding:"omitempty,sip_status"`
}

// InvestmentResponse is an investment with its effective units.
type InvestmentResponse struct {
	Investment     *models.Investment `json:"investment"`
	EffectiveUnits decimal.Decimal    `json:"effective_units" swaggertype:"string"`
}

func newInvestmentResponse(inv *models.Investment) InvestmentResponse {
	return InvestmentResponse{Investment: inv, EffectiveUnits: valuation.EffectiveUnits(inv)}
}

// toChanges converts the request into a valuation.Changes, parsing dates.
func (r UpdateInvestmentRequest) toChanges() (valuation.Changes, []string, error) {
	ch := valuation.Changes{
		InvestmentType: r.InvestmentType,
		FundCode:       r.FundCode,
		SchemeName:     r.SchemeName,
		FundHouse:      r.FundHouse,
		HolderID:       r.HolderID,
		Nominee1ID:     r.Nominee1ID,
		Nominee2ID:     r.Nominee2ID,
		Nominee3ID:     r.Nominee3ID,
		Amount:         r.Amount,
		DayOfMonth:     r.DayOfMonth,
		SIPStatus:      r.SIPStatus,
	}

	var err error
	if ch.Date, err = parseOptionalDate("date", r.Date); err != nil {
		return ch, nil, err
	}
	if ch.StartDate, err = parseOptionalDate("start_date", r.StartDate); err != nil {
		return ch, nil, err
	}
	if ch.EndDate, err = parseOptionalDate("end_date", r.EndDate); err != nil {
		return ch, nil, err
	}

	var fields []string
	add := func(present bool, name string) {
		if present {
			fields = append(fields, name)
		}
	}
	add(r.InvestmentType != nil, "investment_type")
	add(r.FundCode != nil, "fund_code")
	add(r.SchemeName != nil, "scheme_name")
	add(r.FundHouse != nil, "fund_house")
	add(r.HolderID != nil, "holder_id")
	add(r.Nominee1ID != nil || r.Nominee2ID != nil || r.Nominee3ID != nil, "nominees")
	add(r.Amount != nil, "amount")
	add(ch.Date != nil, "date")
	add(ch.StartDate != nil, "start_date")
	add(ch.EndDate != nil, "end_date")
	add(r.DayOfMonth != nil, "day_of_month")
	add(r.SIPStatus != nil, "sip_status")
	return ch, fields, nil
}

// CreateInvestment handles creating a lumpsum investment or SIP.
// @Summary     Create investment
// @Description Create a lumpsum investment or SIP. Units, lots and current value are computed from NAV history.
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvestmentRequest true "Investment details"
// @Success     201 {object} InvestmentResponse "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "NAV unavailable"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.CreateInvestmentInput{
		FundCode:   req.FundCode,
		SchemeName: req.SchemeName,
		FundHouse:  req.FundHouse,
		Type:       req.InvestmentType,
		HolderID:   req.HolderID,
		Nominee1ID: req.Nominee1ID,
		Nominee2ID: req.Nominee2ID,
		Nominee3ID: req.Nominee3ID,
		Amount:     req.Amount,
		DayOfMonth: req.DayOfMonth,
		SIPStatus:  req.SIPStatus,
	}
	if input.Date, err = parseOptionalDate("date", req.Date); err != nil {
		respondWithError(c, err)
		return
	}
	if input.StartDate, err = parseOptionalDate("start_date", req.StartDate); err != nil {
		respondWithError(c, err)
		return
	}
	if input.EndDate, err = parseOptionalDate("end_date", req.EndDate); err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.CreateInvestment(c.Request.Context(), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditCreateInvestment, "investment", investment.ID, c.ClientIP(),
		map[string]interface{}{
			"fund_code":       investment.FundCode,
			"investment_type": string(investment.Type),
			"amount":          investment.Amount.String(),
		})

	c.JSON(http.StatusCreated, newInvestmentResponse(investment))
}

// GetInvestment handles retrieving a specific investment.
// @Summary     Get investment by ID
// @Description Get an investment with its lots and redemption ledger
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} InvestmentResponse "Investment details"
// @Failure     400 {object} ErrorResponse "Invalid investment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [get]
func (h *InvestmentHandler) GetInvestment(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.GetInvestment(c.Request.Context(), investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newInvestmentResponse(investment))
}

// UpdateInvestment handles a partial update of an investment.
// @Summary     Update investment
// @Description Patch an investment. Changing a field that defines units or lots rebuilds them unless recompute=false.
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string                  true  "Investment ID"
// @Param       recompute query bool                    false "Rebuild derived state on trigger-field changes (default true)"
// @Param       request   body  UpdateInvestmentRequest true  "Fields to change"
// @Success     200 {object} InvestmentResponse "Investment updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     422 {object} ErrorResponse "NAV unavailable"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [patch]
func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
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

	recompute := true
	if v := c.Query("recompute"); v != "" {
		recompute, err = strconv.ParseBool(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid recompute, use true or false"))
			return
		}
	}

	var req UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	changes, fields, err := req.toChanges()
	if err != nil {
		respondWithError(c, err)
		return
	}
	if len(fields) == 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "No fields to update"))
		return
	}

	investment, err := h.investmentService.UpdateInvestment(c.Request.Context(), investmentID, changes, recompute)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditUpdateInvestment, "investment", investmentID, c.ClientIP(),
		map[string]interface{}{"fields": strings.Join(fields, ","), "recompute": recompute})

	c.JSON(http.StatusOK, newInvestmentResponse(investment))
}

// DeleteInvestment handles deleting an investment.
// @Summary     Delete investment
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} map[string]string "Investment deleted"
// @Failure     400 {object} ErrorResponse "Invalid investment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id} [delete]
func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) {
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

	if err := h.investmentService.DeleteInvestment(c.Request.Context(), investmentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditDeleteInvestment, "investment", investmentID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Investment deleted successfully"})
}

// RecomputeInvestment handles a forced regeneration of an investment.
// @Summary     Recompute investment
// @Description Rebuild units or lots and current value from the latest NAV data
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} InvestmentResponse "Investment recomputed"
// @Failure     400 {object} ErrorResponse "Invalid investment ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     422 {object} ErrorResponse "NAV unavailable"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/recompute [post]
func (h *InvestmentHandler) RecomputeInvestment(c *gin.Context) {
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

	investment, err := h.investmentService.RecomputeInvestment(c.Request.Context(), investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditRecomputeInvestment, "investment", investmentID, c.ClientIP(),
		map[string]interface{}{"current_value": investment.CurrentValue.String()})

	c.JSON(http.StatusOK, newInvestmentResponse(investment))
}

// GetLots handles listing the lots of a SIP.
// @Summary     Get SIP lots
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} map[string][]models.SIPLot "Lots in date order"
// @Failure     400 {object} ErrorResponse "Invalid input or not a SIP"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/lots [get]
func (h *InvestmentHandler) GetLots(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	lots, err := h.investmentService.GetLots(c.Request.Context(), investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lots": lots})
}

// GetHolderInvestments handles listing a holder's investments.
// @Summary     Get holder investments
// @Description Get a paginated list of a holder's investments
// @Tags        holders
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Holder ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       sort      query string false "created_at, amount, current_value, fund_code or last_recomputed; prefix - for descending"
// @Success     200 {object} pagination.PageResponse[models.Investment] "Paginated investments"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /holders/{id}/investments [get]
func (h *InvestmentHandler) GetHolderInvestments(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	holderID, err := parseHolderID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.investmentService.GetHolderInvestments(c.Request.Context(), holderID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetHolderPortfolio handles retrieving a holder's portfolio summary.
// @Summary     Get holder portfolio
// @Description Aggregate invested amount, current value and gain across a holder's investments
// @Tags        holders
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Holder ID"
// @Success     200 {object} services.PortfolioSummary "Portfolio summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /holders/{id}/portfolio [get]
func (h *InvestmentHandler) GetHolderPortfolio(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	holderID, err := parseHolderID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.investmentService.GetHolderPortfolio(c.Request.Context(), holderID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": summary})
}

// parseHolderID reads the opaque holder reference from the path.
func parseHolderID(c *gin.Context) (string, error) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" || len(id) > 100 {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid holder id")
	}
	return id, nil
}
