package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portssvc "github.com/tillpoint/tillpoint_backend/internal/core/ports/services"
	"github.com/tillpoint/tillpoint_backend/internal/dto"
	"github.com/tillpoint/tillpoint_backend/internal/middleware"
)

// cashPeriodHandler handles HTTP requests for the cash period lifecycle.
type cashPeriodHandler struct {
	cashPeriodService portssvc.CashPeriodSvcFacade
}

func newCashPeriodHandler(cs portssvc.CashPeriodSvcFacade) *cashPeriodHandler {
	return &cashPeriodHandler{cashPeriodService: cs}
}

// registerCashPeriodRoutes registers routes related to cash periods.
func registerCashPeriodRoutes(rg *gin.RouterGroup, cashPeriodService portssvc.CashPeriodSvcFacade) {
	h := newCashPeriodHandler(cashPeriodService)

	periods := rg.Group("/cash-periods")
	{
		periods.POST("", h.openPeriod)
		periods.POST("/:id/close", h.closePeriod)
		periods.POST("/:id/movements", h.recordMovement)
		periods.GET("/:id", h.getPeriod)
		periods.GET("/:id/totals", h.getPeriodTotals)
		periods.GET("", h.listPeriods)
	}
}

// openPeriod godoc
// @Summary Open a cash period
// @Description Opens a session, box or register period for the given owner. Only one open period per owner is allowed.
// @Tags cash-periods
// @Accept json
// @Produce json
// @Param period body dto.OpenCashPeriodRequest true "Period details"
// @Success 201 {object} dto.CashPeriodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "An open period already exists for the owner"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-periods [post]
func (h *cashPeriodHandler) openPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenCashPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for openPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	sellerID, ok := middleware.GetSellerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	owner := domain.CashPeriodOwner{
		Kind:     domain.CashPeriodKind(req.Kind),
		TenantID: tenantID,
		OwnerID:  req.OwnerID,
	}
	period, err := h.cashPeriodService.Open(c.Request.Context(), owner, req.OpeningBalance, sellerID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrAlreadyOpen):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "An open period already exists for this owner"})
		default:
			logger.Error("Failed to open cash period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to open cash period"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToCashPeriodResponse(period))
}

// closePeriod godoc
// @Summary Close a cash period
// @Description Folds the period's movements into final totals, freezes them together with the reported-vs-calculated difference and flips the period to closed.
// @Tags cash-periods
// @Accept json
// @Produce json
// @Param id path string true "Period ID"
// @Param close body dto.CloseCashPeriodRequest true "Reported closing balance"
// @Success 200 {object} dto.CloseCashPeriodResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Period is not open"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-periods/{id}/close [post]
func (h *cashPeriodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CloseCashPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for closePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	sellerID, ok := middleware.GetSellerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	period, totals, err := h.cashPeriodService.Close(c.Request.Context(), tenantID, c.Param("id"), req.ReportedClosing, sellerID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Cash period not found"})
		case errors.Is(err, apperrors.ErrNotOpen):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Cash period is not open"})
		default:
			logger.Error("Failed to close cash period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to close cash period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.CloseCashPeriodResponse{
		Period: dto.ToCashPeriodResponse(period),
		Totals: dto.ToCashTotalsResponse(*totals),
	})
}

// recordMovement godoc
// @Summary Record a cash movement
// @Description Appends an immutable movement to an open period. Movements carry unsigned amounts; their type decides the direction.
// @Tags cash-periods
// @Accept json
// @Produce json
// @Param id path string true "Period ID"
// @Param movement body dto.RecordMovementRequest true "Movement details"
// @Success 201 {object} dto.CashMovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Period is not open"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-periods/{id}/movements [post]
func (h *cashPeriodHandler) recordMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	sellerID, ok := middleware.GetSellerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movement, err := h.cashPeriodService.RecordMovement(c.Request.Context(), tenantID, c.Param("id"), req, sellerID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Cash period not found"})
		case errors.Is(err, apperrors.ErrNotOpen):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Cash period is not open"})
		default:
			logger.Error("Failed to record movement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record movement"})
		}
		return
	}

	resp := dto.ToCashMovementResponses([]domain.CashMovement{*movement})
	c.JSON(http.StatusCreated, resp[0])
}

// getPeriod godoc
// @Summary Get a cash period with live totals
// @Tags cash-periods
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} dto.CloseCashPeriodResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-periods/{id} [get]
func (h *cashPeriodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	period, totals, err := h.cashPeriodService.GetPeriod(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Cash period not found"})
			return
		}
		logger.Error("Failed to get cash period", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve cash period"})
		return
	}

	c.JSON(http.StatusOK, dto.CloseCashPeriodResponse{
		Period: dto.ToCashPeriodResponse(period),
		Totals: dto.ToCashTotalsResponse(*totals),
	})
}

// getPeriodTotals godoc
// @Summary Get live totals for a cash period
// @Description Recomputes the period's totals from its movement stream. For a closed period this mirrors the frozen closing figures.
// @Tags cash-periods
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} dto.CashTotalsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-periods/{id}/totals [get]
func (h *cashPeriodHandler) getPeriodTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	_, totals, err := h.cashPeriodService.GetPeriod(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Cash period not found"})
			return
		}
		logger.Error("Failed to compute cash period totals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute totals"})
		return
	}
	c.JSON(http.StatusOK, dto.ToCashTotalsResponse(*totals))
}

// listPeriods godoc
// @Summary List cash periods
// @Tags cash-periods
// @Produce json
// @Param kind query string false "Filter by owner kind" Enums(SESSION, BOX, REGISTER)
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListCashPeriodsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-periods [get]
func (h *cashPeriodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListCashPeriodsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.cashPeriodService.ListPeriods(c.Request.Context(), tenantID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list cash periods", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list cash periods"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
