package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	portssvc "github.com/tillpoint/tillpoint_backend/internal/core/ports/services"
	"github.com/tillpoint/tillpoint_backend/internal/dto"
	"github.com/tillpoint/tillpoint_backend/internal/middleware"
)

// paymentHandler handles HTTP requests related to payments.
type paymentHandler struct {
	paymentService   portssvc.PaymentSvcFacade
	reconcileService portssvc.ReconcileSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade, rs portssvc.ReconcileSvcFacade) *paymentHandler {
	return &paymentHandler{
		paymentService:   ps,
		reconcileService: rs,
	}
}

// registerPaymentRoutes registers routes related to payments.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade, reconcileService portssvc.ReconcileSvcFacade) {
	h := newPaymentHandler(paymentService, reconcileService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("/:id", h.getPayment)
		payments.GET("", h.listPayments)
		payments.POST("/:id/confirm", h.confirmPayment)
	}
}

// createPayment godoc
// @Summary Register a payment attempt
// @Description Registers a payment against a sale. Retries with the same sale, amount, method and reference return the original payment with status 200 instead of creating a second row.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Success 200 {object} dto.PaymentResponse "Idempotent replay of an earlier request"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Referenced sale not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPayment", slog.String("error", err.Error()))
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

	payment, created, err := h.paymentService.CreatePayment(c.Request.Context(), tenantID, req, sellerID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Sale not found"})
		default:
			logger.Error("Failed to create payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create payment"})
		}
		return
	}

	status := http.StatusCreated
	if !created {
		// Idempotent replay: same row, no side effects.
		status = http.StatusOK
	}
	c.JSON(status, dto.ToPaymentResponse(payment))
}

// getPayment godoc
// @Summary Get a payment by ID
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Payment not found"})
			return
		}
		logger.Error("Failed to get payment", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve payment"})
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// listPayments godoc
// @Summary List payments
// @Tags payments
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.paymentService.ListPayments(c.Request.Context(), tenantID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list payments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list payments"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// confirmPayment godoc
// @Summary Confirm a pending payment
// @Description Manually confirms a pending payment. When the payment carries a suggested transfer, the transfer is consumed in the same transaction. The owning sale's balance is recomputed and returned.
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.ConfirmPaymentResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Payment already confirmed or lost a concurrent match"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{id}/confirm [post]
func (h *paymentHandler) confirmPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
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

	payment, balance, err := h.reconcileService.ConfirmPayment(c.Request.Context(), tenantID, c.Param("id"), sellerID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Payment not found"})
		case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrConcurrentMatch):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to confirm payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to confirm payment"})
		}
		return
	}

	resp := dto.ConfirmPaymentResponse{Payment: dto.ToPaymentResponse(payment)}
	if balance != nil {
		b := dto.ToBalanceResponse(*balance)
		resp.Balance = &b
	}
	c.JSON(http.StatusOK, resp)
}
