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

// junctionHandler serves one of the three association route families
// (product-vendors, product-purchasers, purchaser-vendors).
type junctionHandler struct {
	associationService portssvc.AssociationSvcFacade
	kind               domain.JunctionKind
}

func newJunctionHandler(as portssvc.AssociationSvcFacade, kind domain.JunctionKind) *junctionHandler {
	return &junctionHandler{associationService: as, kind: kind}
}

// registerJunctionRoutes mounts the routes for a single junction kind.
func registerJunctionRoutes(rg *gin.RouterGroup, path string, kind domain.JunctionKind, associationService portssvc.AssociationSvcFacade) {
	h := newJunctionHandler(associationService, kind)

	group := rg.Group(path)
	{
		group.POST("", h.associate)
		group.POST("/batch", h.associateBatch)
		group.DELETE("", h.dissociate)
		group.GET("", h.list)
	}
}

// associate godoc
// @Summary Create one association pair
// @Description Idempotent: a pair that already exists is reported as created again, never as a conflict
// @Tags associations
// @Accept  json
// @Produce  json
// @Param   pair body dto.CreateJunctionRequest true "Association pair"
// @Success 201
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /product-vendors [post]
func (h *junctionHandler) associate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJunctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.associationService.Associate(c.Request.Context(), h.kind, req, userID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicateRelationship):
			// Already associated: idempotent, success from the caller's view.
			logger.Info("Association already exists",
				slog.String("kind", string(h.kind)),
				slog.String("left_id", req.LeftID),
				slog.String("right_id", req.RightID))
			c.Status(http.StatusCreated)
		case errors.Is(err, apperrors.ErrEntityNotFound), errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create association", slog.String("kind", string(h.kind)), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create association"})
		}
		return
	}

	c.Status(http.StatusCreated)
}

// associateBatch godoc
// @Summary Associate one entity with many others in one write
// @Description Validates every pair up front; any unknown entity fails the whole batch. Pairs that already exist are skipped and counted.
// @Tags associations
// @Accept  json
// @Produce  json
// @Param   batch body dto.BatchJunctionRequest true "Batch association"
// @Success 201 {object} dto.BatchJunctionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /product-vendors/batch [post]
func (h *junctionHandler) associateBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BatchJunctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	result, err := h.associationService.AssociateBatch(c.Request.Context(), h.kind, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPartialBatch):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrEntityNotFound), errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create association batch", slog.String("kind", string(h.kind)), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create associations"})
		}
		return
	}

	logger.Info("Association batch applied",
		slog.String("kind", string(h.kind)),
		slog.Int("requested", result.Requested),
		slog.Int("inserted", result.Inserted),
		slog.Int("skipped", result.Skipped))
	c.JSON(http.StatusCreated, result)
}

// dissociate godoc
// @Summary Remove one association pair
// @Tags associations
// @Accept  json
// @Produce  json
// @Param   pair body dto.CreateJunctionRequest true "Association pair"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /product-vendors [delete]
func (h *junctionHandler) dissociate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJunctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.associationService.Dissociate(c.Request.Context(), h.kind, req, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Association not found"})
		} else {
			logger.Error("Failed to remove association", slog.String("kind", string(h.kind)), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to remove association"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// list godoc
// @Summary List association pairs
// @Tags associations
// @Produce  json
// @Param   left_id query string false "Filter by the left-side entity"
// @Success 200 {array} domain.JunctionPair
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /product-vendors [get]
func (h *junctionHandler) list(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	leftID := c.Query("left_id")

	pairs, err := h.associationService.ListAssociations(c.Request.Context(), h.kind, leftID)
	if err != nil {
		logger.Error("Failed to list associations", slog.String("kind", string(h.kind)), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list associations"})
		return
	}

	c.JSON(http.StatusOK, pairs)
}
