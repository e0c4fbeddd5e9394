package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/services"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/dto"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/middleware"
)

// reportingHandler serves aggregate metrics over filtered transactions.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.summary)
	}
}

// summary godoc
// @Summary Aggregate metrics for a filtered transaction collection
// @Description Returns counts, paid/unpaid splits and truncated distinct-name display lists. The unfiltered summary is cached until the next ledger mutation.
// @Tags reports
// @Produce  json
// @Param   search query string false "Case-insensitive text match"
// @Param   date_from query string false "Inclusive start date (2006-01-02)"
// @Param   date_to query string false "Inclusive end date (2006-01-02)"
// @Param   account_id query string false "Account filter, or all_accounts"
// @Param   counterparty_id query string false "Counterparty filter"
// @Param   payment_status query string false "paid or unpaid, or all_payments"
// @Param   mode_of_payment query string false "Payment mode filter"
// @Param   type query string false "Transaction type filter, or all_transactions"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) summary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for summary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	metrics, err := h.reportingService.Summary(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to compute summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(*metrics))
}
