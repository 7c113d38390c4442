package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	portssvc "github.com/tillpoint/tillpoint_backend/internal/core/ports/services"
	"github.com/tillpoint/tillpoint_backend/internal/dto"
	"github.com/tillpoint/tillpoint_backend/internal/middleware"
)

// reportingHandler handles read-only report requests.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers report routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/cash-periods/:id", h.cashPeriodReport)
		reports.GET("/reconciliation-summary", h.reconciliationSummary)
	}
}

// cashPeriodReport godoc
// @Summary Cash period report
// @Description Returns the period row, recomputed totals and every movement as plain tabular data.
// @Tags reports
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} dto.CashPeriodReportResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/cash-periods/{id} [get]
func (h *reportingHandler) cashPeriodReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	report, err := h.reportingService.CashPeriodReport(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Cash period not found"})
			return
		}
		logger.Error("Failed to build cash period report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}
	c.JSON(http.StatusOK, dto.ToCashPeriodReportResponse(report))
}

// reconciliationSummary godoc
// @Summary Reconciliation summary
// @Description Aggregates payment match outcomes and unconsumed transfer counts over a time window.
// @Tags reports
// @Produce json
// @Param from query string true "Window start (RFC3339)"
// @Param to query string true "Window end (RFC3339)"
// @Success 200 {object} dto.ReconciliationSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/reconciliation-summary [get]
func (h *reportingHandler) reconciliationSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ReconciliationSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	from, err := time.Parse(time.RFC3339, params.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'from' timestamp, expected RFC3339"})
		return
	}
	to, err := time.Parse(time.RFC3339, params.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'to' timestamp, expected RFC3339"})
		return
	}

	summary, err := h.reportingService.ReconciliationSummary(c.Request.Context(), tenantID, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to build reconciliation summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationSummaryResponse(summary))
}
