package handlers

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portssvc "github.com/tillpoint/tillpoint_backend/internal/core/ports/services"
	"github.com/tillpoint/tillpoint_backend/internal/dto"
	"github.com/tillpoint/tillpoint_backend/internal/middleware"
)

// transferHandler handles HTTP requests related to incoming transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: ts}
}

// registerTransferRoutes registers routes related to incoming transfers.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	transfers := rg.Group("/transfers")
	{
		transfers.POST("/import", h.importTransfers)
		transfers.POST("/import/csv", h.importTransfersCSV)
		transfers.GET("/:id", h.getTransfer)
		transfers.GET("", h.listTransfers)
		transfers.GET("/:id/candidates", h.getCandidates)
	}
}

// importTransfers godoc
// @Summary Import a batch of reported transfers
// @Description Persists the batch in arrival order and runs a matching pass for each transfer. One bad row does not abort the rest; its result carries the error.
// @Tags transfers
// @Accept json
// @Produce json
// @Param batch body dto.ImportTransfersRequest true "Transfer batch"
// @Success 200 {object} dto.ImportTransfersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers/import [post]
func (h *transferHandler) importTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ImportTransfersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for importTransfers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	source := domain.SourceAPI
	if req.Source != nil && *req.Source == string(domain.SourceManual) {
		source = domain.SourceManual
	}
	h.runImport(c, req.Transfers, source)
}

// importTransfersCSV godoc
// @Summary Import reported transfers from a CSV file
// @Description Accepts a CSV body with columns amount, reference, origin_label, raw_description, received_at (RFC3339, optional). A header row is detected and skipped.
// @Tags transfers
// @Accept text/csv
// @Produce json
// @Success 200 {object} dto.ImportTransfersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers/import/csv [post]
func (h *transferHandler) importTransfersCSV(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batch, err := parseTransferCSV(c.Request.Body)
	if err != nil {
		logger.Warn("Failed to parse transfer CSV", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if len(batch) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "CSV contains no transfer rows"})
		return
	}
	h.runImport(c, batch, domain.SourceCSV)
}

func (h *transferHandler) runImport(c *gin.Context, batch []dto.ImportTransferRequest, source domain.TransferSource) {
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

	results, err := h.transferService.ImportTransfers(c.Request.Context(), tenantID, batch, source, sellerID)
	if err != nil {
		logger.Error("Transfer import failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to import transfers"})
		return
	}

	resp := dto.ImportTransfersResponse{Results: make([]dto.ReconcileResultResponse, len(results))}
	for i := range results {
		resp.Results[i] = dto.ToReconcileResultResponse(&results[i])
	}
	c.JSON(http.StatusOK, resp)
}

// parseTransferCSV reads rows of amount, reference, origin_label,
// raw_description, received_at. Trailing columns may be omitted.
func parseTransferCSV(r io.Reader) ([]dto.ImportTransferRequest, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var batch []dto.ImportTransferRequest
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.New("malformed CSV: " + err.Error())
		}
		if len(record) == 0 {
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "amount") {
			continue // header row
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, errors.New("invalid amount in CSV row: " + record[0])
		}
		row := dto.ImportTransferRequest{Amount: amount}
		if v := csvField(record, 1); v != "" {
			row.Reference = &v
		}
		if v := csvField(record, 2); v != "" {
			row.OriginLabel = &v
		}
		row.RawDescription = csvField(record, 3)
		if v := csvField(record, 4); v != "" {
			receivedAt, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return nil, errors.New("invalid received_at in CSV row: " + v)
			}
			row.ReceivedAt = &receivedAt
		}
		batch = append(batch, row)
	}
	return batch, nil
}

func csvField(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// getTransfer godoc
// @Summary Get a transfer by ID
// @Tags transfers
// @Produce json
// @Param id path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers/{id} [get]
func (h *transferHandler) getTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	transfer, err := h.transferService.GetTransfer(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transfer not found"})
			return
		}
		logger.Error("Failed to get transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve transfer"})
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}

// listTransfers godoc
// @Summary List transfers
// @Tags transfers
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from the previous page"
// @Param unconsumedOnly query bool false "Only transfers not yet consumed by a match"
// @Success 200 {object} dto.ListTransfersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers [get]
func (h *transferHandler) listTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListTransfersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.transferService.ListTransfers(c.Request.Context(), tenantID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list transfers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list transfers"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getCandidates godoc
// @Summary Re-score match candidates for a transfer
// @Description Scores the transfer against currently pending payments without persisting anything. Intended for review screens.
// @Tags transfers
// @Produce json
// @Param id path string true "Transfer ID"
// @Success 200 {array} dto.MatchCandidateResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transfers/{id}/candidates [get]
func (h *transferHandler) getCandidates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	candidates, err := h.transferService.GetCandidates(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transfer not found"})
			return
		}
		logger.Error("Failed to score candidates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to score candidates"})
		return
	}
	c.JSON(http.StatusOK, dto.ToMatchCandidateResponses(candidates))
}
