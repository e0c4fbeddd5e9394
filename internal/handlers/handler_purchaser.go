package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/apperrors"
	portssvc "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/services"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/dto"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/middleware"
)

// purchaserHandler handles HTTP requests for purchasers (buying agents).
type purchaserHandler struct {
	purchaserService portssvc.PurchaserSvcFacade
}

func newPurchaserHandler(ps portssvc.PurchaserSvcFacade) *purchaserHandler {
	return &purchaserHandler{purchaserService: ps}
}

// registerPurchaserRoutes registers routes related to purchasers.
func registerPurchaserRoutes(rg *gin.RouterGroup, purchaserService portssvc.PurchaserSvcFacade) {
	h := newPurchaserHandler(purchaserService)

	purchasers := rg.Group("/purchasers")
	{
		purchasers.POST("", h.createPurchaser)
		purchasers.GET("", h.listPurchasers)
		purchasers.GET("/:id", h.getPurchaser)
		purchasers.PUT("/:id", h.updatePurchaser)
		purchasers.DELETE("/:id", h.deactivatePurchaser)
	}
}

// createPurchaser godoc
// @Summary Create a purchaser
// @Tags purchasers
// @Accept  json
// @Produce  json
// @Param   purchaser body dto.CreatePurchaserRequest true "Purchaser details"
// @Success 201 {object} dto.PurchaserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchasers [post]
func (h *purchaserHandler) createPurchaser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePurchaserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	p, err := h.purchaserService.CreatePurchaser(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create purchaser", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create purchaser"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPurchaserResponse(p))
}

// getPurchaser godoc
// @Summary Get a purchaser by ID
// @Tags purchasers
// @Produce  json
// @Param   id path string true "Purchaser ID"
// @Success 200 {object} dto.PurchaserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchasers/{id} [get]
func (h *purchaserHandler) getPurchaser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaserID := c.Param("id")

	p, err := h.purchaserService.GetPurchaserByID(c.Request.Context(), purchaserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Purchaser not found"})
		} else {
			logger.Error("Failed to get purchaser", slog.String("purchaser_id", purchaserID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve purchaser"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaserResponse(p))
}

// listPurchasers godoc
// @Summary List purchasers
// @Tags purchasers
// @Produce  json
// @Param   include_inactive query bool false "Include deactivated purchasers"
// @Success 200 {array} dto.PurchaserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchasers [get]
func (h *purchaserHandler) listPurchasers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	includeInactive := c.Query("include_inactive") == "true"

	purchasers, err := h.purchaserService.ListPurchasers(c.Request.Context(), includeInactive)
	if err != nil {
		logger.Error("Failed to list purchasers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list purchasers"})
		return
	}

	resp := make([]dto.PurchaserResponse, len(purchasers))
	for i := range purchasers {
		resp[i] = dto.ToPurchaserResponse(&purchasers[i])
	}
	c.JSON(http.StatusOK, resp)
}

// updatePurchaser godoc
// @Summary Update a purchaser
// @Tags purchasers
// @Accept  json
// @Produce  json
// @Param   id path string true "Purchaser ID"
// @Param   purchaser body dto.UpdatePurchaserRequest true "Fields to update"
// @Success 200 {object} dto.PurchaserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchasers/{id} [put]
func (h *purchaserHandler) updatePurchaser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaserID := c.Param("id")

	var req dto.UpdatePurchaserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	p, err := h.purchaserService.UpdatePurchaser(c.Request.Context(), purchaserID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Purchaser not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to update purchaser", slog.String("purchaser_id", purchaserID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update purchaser"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaserResponse(p))
}

// deactivatePurchaser godoc
// @Summary Deactivate a purchaser
// @Tags purchasers
// @Produce  json
// @Param   id path string true "Purchaser ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /purchasers/{id} [delete]
func (h *purchaserHandler) deactivatePurchaser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	purchaserID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.purchaserService.DeactivatePurchaser(c.Request.Context(), purchaserID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Purchaser not found"})
		} else {
			logger.Error("Failed to deactivate purchaser", slog.String("purchaser_id", purchaserID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate purchaser"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
