package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/apperrors"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	portssvc "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/services"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/dto"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/middleware"
)

// counterpartyHandler serves both the payables and receivables route
// families. The role is fixed per route group, never taken from the body.
type counterpartyHandler struct {
	counterpartyService portssvc.CounterpartySvcFacade
	role                domain.CounterpartyRole
}

func newCounterpartyHandler(cs portssvc.CounterpartySvcFacade, role domain.CounterpartyRole) *counterpartyHandler {
	return &counterpartyHandler{counterpartyService: cs, role: role}
}

// registerCounterpartyRoutes registers the /payables (vendors) and
// /receivables (clients) route groups.
func registerCounterpartyRoutes(rg *gin.RouterGroup, counterpartyService portssvc.CounterpartySvcFacade) {
	mount := func(path string, role domain.CounterpartyRole) {
		h := newCounterpartyHandler(counterpartyService, role)
		group := rg.Group(path)
		{
			group.POST("", h.createCounterparty)
			group.GET("", h.listCounterparties)
			group.GET("/candidates", h.listSettlementCandidates)
			group.GET("/:id", h.getCounterparty)
			group.PUT("/:id", h.updateCounterparty)
			group.DELETE("/:id", h.deactivateCounterparty)
		}
	}
	mount("/payables", domain.RoleVendor)
	mount("/receivables", domain.RoleClient)
}

// createCounterparty godoc
// @Summary Create a payable or receivable
// @Description Creates a vendor (payables route) or client (receivables route) with an opening balance
// @Tags counterparties
// @Accept  json
// @Produce  json
// @Param   counterparty body dto.CreateCounterpartyRequest true "Counterparty details"
// @Success 201 {object} dto.CounterpartyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payables [post]
func (h *counterpartyHandler) createCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCounterparty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	cp, err := h.counterpartyService.CreateCounterparty(c.Request.Context(), h.role, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create counterparty", slog.String("role", string(h.role)), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create counterparty"})
		}
		return
	}

	logger.Info("Counterparty created successfully", slog.String("counterparty_id", cp.CounterpartyID), slog.String("role", string(h.role)))
	c.JSON(http.StatusCreated, dto.ToCounterpartyResponse(cp))
}

// getCounterparty godoc
// @Summary Get a counterparty by ID
// @Tags counterparties
// @Produce  json
// @Param   id path string true "Counterparty ID"
// @Success 200 {object} dto.CounterpartyResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payables/{id} [get]
func (h *counterpartyHandler) getCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	counterpartyID := c.Param("id")

	cp, err := h.counterpartyService.GetCounterpartyByID(c.Request.Context(), counterpartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Counterparty not found"})
		} else {
			logger.Error("Failed to get counterparty", slog.String("counterparty_id", counterpartyID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve counterparty"})
		}
		return
	}
	if cp.Role != h.role {
		// A vendor fetched through /receivables (or vice versa) is not found.
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Counterparty not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCounterpartyResponse(cp))
}

// listCounterparties godoc
// @Summary List counterparties for this role
// @Tags counterparties
// @Produce  json
// @Success 200 {object} dto.ListCounterpartiesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payables [get]
func (h *counterpartyHandler) listCounterparties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cps, err := h.counterpartyService.ListCounterparties(c.Request.Context(), h.role)
	if err != nil {
		logger.Error("Failed to list counterparties", slog.String("role", string(h.role)), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list counterparties"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCounterpartiesResponse(cps))
}

// listSettlementCandidates godoc
// @Summary List counterparties eligible for settlement
// @Description Only counterparties with a positive outstanding balance are offered for settlement
// @Tags counterparties
// @Produce  json
// @Success 200 {object} dto.ListCounterpartiesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payables/candidates [get]
func (h *counterpartyHandler) listSettlementCandidates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cps, err := h.counterpartyService.ListSettlementCandidates(c.Request.Context(), h.role)
	if err != nil {
		logger.Error("Failed to list settlement candidates", slog.String("role", string(h.role)), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list settlement candidates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCounterpartiesResponse(cps))
}

// updateCounterparty godoc
// @Summary Update a counterparty
// @Description Updates contact details or active flag. Balance cannot be edited.
// @Tags counterparties
// @Accept  json
// @Produce  json
// @Param   id path string true "Counterparty ID"
// @Param   counterparty body dto.UpdateCounterpartyRequest true "Fields to update"
// @Success 200 {object} dto.CounterpartyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payables/{id} [put]
func (h *counterpartyHandler) updateCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	counterpartyID := c.Param("id")

	var req dto.UpdateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateCounterparty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	updated, err := h.counterpartyService.UpdateCounterparty(c.Request.Context(), counterpartyID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Counterparty not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to update counterparty", slog.String("counterparty_id", counterpartyID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update counterparty"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCounterpartyResponse(updated))
}

// deactivateCounterparty godoc
// @Summary Deactivate a counterparty
// @Tags counterparties
// @Produce  json
// @Param   id path string true "Counterparty ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /payables/{id} [delete]
func (h *counterpartyHandler) deactivateCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	counterpartyID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.counterpartyService.DeactivateCounterparty(c.Request.Context(), counterpartyID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Counterparty not found"})
		} else {
			logger.Error("Failed to deactivate counterparty", slog.String("counterparty_id", counterpartyID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to deactivate counterparty"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
