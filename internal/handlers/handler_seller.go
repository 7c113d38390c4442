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

// sellerHandler handles HTTP requests related to sellers.
type sellerHandler struct {
	sellerService portssvc.SellerSvcFacade
}

func newSellerHandler(ss portssvc.SellerSvcFacade) *sellerHandler {
	return &sellerHandler{sellerService: ss}
}

// registerSellerRoutes registers routes related to sellers.
func registerSellerRoutes(rg *gin.RouterGroup, sellerService portssvc.SellerSvcFacade) {
	h := newSellerHandler(sellerService)

	sellers := rg.Group("/sellers")
	{
		sellers.POST("", h.createSeller)
		sellers.GET("/:id", h.getSeller)
		sellers.GET("", h.listSellers)
		sellers.PUT("/:id", h.updateSeller)
		sellers.DELETE("/:id", h.deactivateSeller)
	}
}

// createSeller godoc
// @Summary Create a seller
// @Tags sellers
// @Accept json
// @Produce json
// @Param seller body dto.CreateSellerRequest true "Seller details"
// @Success 201 {object} dto.SellerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sellers [post]
func (h *sellerHandler) createSeller(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createSeller", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	creatorID, ok := middleware.GetSellerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	seller, err := h.sellerService.CreateSeller(c.Request.Context(), tenantID, req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email already registered"})
		default:
			logger.Error("Failed to create seller", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create seller"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToSellerResponse(seller))
}

// getSeller godoc
// @Summary Get a seller by ID
// @Tags sellers
// @Produce json
// @Param id path string true "Seller ID"
// @Success 200 {object} dto.SellerResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sellers/{id} [get]
func (h *sellerHandler) getSeller(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	seller, err := h.sellerService.GetSeller(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Seller not found"})
			return
		}
		logger.Error("Failed to get seller", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve seller"})
		return
	}
	c.JSON(http.StatusOK, dto.ToSellerResponse(seller))
}

// listSellers godoc
// @Summary List sellers
// @Tags sellers
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListSellersResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sellers [get]
func (h *sellerHandler) listSellers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListSellersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.sellerService.ListSellers(c.Request.Context(), tenantID, params)
	if err != nil {
		logger.Error("Failed to list sellers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list sellers"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateSeller godoc
// @Summary Update a seller
// @Tags sellers
// @Accept json
// @Produce json
// @Param id path string true "Seller ID"
// @Param seller body dto.UpdateSellerRequest true "Fields to update"
// @Success 200 {object} dto.SellerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sellers/{id} [put]
func (h *sellerHandler) updateSeller(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	actorID, ok := middleware.GetSellerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	seller, err := h.sellerService.UpdateSeller(c.Request.Context(), tenantID, c.Param("id"), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Seller not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update seller", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update seller"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToSellerResponse(seller))
}

// deactivateSeller godoc
// @Summary Deactivate a seller
// @Tags sellers
// @Produce json
// @Param id path string true "Seller ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sellers/{id} [delete]
func (h *sellerHandler) deactivateSeller(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetSellerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.sellerService.DeactivateSeller(c.Request.Context(), tenantID, c.Param("id"), actorID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Seller not found"})
			return
		}
		logger.Error("Failed to deactivate seller", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate seller"})
		return
	}
	c.Status(http.StatusNoContent)
}
