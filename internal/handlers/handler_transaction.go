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

// idempotencyKeyHeader carries the client's duplicate-submission guard.
// Re-sending a create with the same key returns the original record.
const idempotencyKeyHeader = "X-Idempotency-Key"

// transactionHandler handles HTTP requests for ledger records.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers routes related to ledger records.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("/settlement", h.createSettlement)
		transactions.POST("/advance", h.createAdvance)
		transactions.POST("/internal", h.createInternal)
		transactions.POST("/daily-book", h.createDailyBook)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
	}
}

// mapTransactionError translates service errors to HTTP responses. The
// fallthrough 500 hides internals from the client; the logger keeps them.
func mapTransactionError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrEntityNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrMissingAccount),
		errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// createSettlement godoc
// @Summary Record a settlement against a counterparty
// @Description Records a payment/receipt against the counterparty's outstanding balance. The record snapshots the pre-transaction balance as its total.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   X-Idempotency-Key header string false "Duplicate-submission guard"
// @Param   settlement body dto.CreateSettlementRequest true "Settlement details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/settlement [post]
func (h *transactionHandler) createSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createSettlement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rec, err := h.transactionService.CreateSettlement(c.Request.Context(), req, userID, c.GetHeader(idempotencyKeyHeader))
	if err != nil {
		mapTransactionError(c, logger, err, "create settlement")
		return
	}

	logger.Info("Settlement recorded", slog.String("transaction_id", rec.TransactionID), slog.String("type", string(rec.Type)))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(rec))
}

// createAdvance godoc
// @Summary Record an advance sale payment
// @Description Records a fully settled advance; the counterparty balance goes negative (credit)
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   X-Idempotency-Key header string false "Duplicate-submission guard"
// @Param   advance body dto.CreateAdvanceRequest true "Advance details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/advance [post]
func (h *transactionHandler) createAdvance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAdvance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rec, err := h.transactionService.CreateAdvance(c.Request.Context(), req, userID, c.GetHeader(idempotencyKeyHeader))
	if err != nil {
		mapTransactionError(c, logger, err, "create advance")
		return
	}

	logger.Info("Advance recorded", slog.String("transaction_id", rec.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(rec))
}

// createInternal godoc
// @Summary Record an internal operation
// @Description Records a deposit, payroll, fixed expense/utility or miscellaneous operation against one account
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   X-Idempotency-Key header string false "Duplicate-submission guard"
// @Param   operation body dto.CreateInternalRequest true "Operation details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/internal [post]
func (h *transactionHandler) createInternal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInternalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createInternal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rec, err := h.transactionService.CreateInternal(c.Request.Context(), req, userID, c.GetHeader(idempotencyKeyHeader))
	if err != nil {
		mapTransactionError(c, logger, err, "create internal operation")
		return
	}

	logger.Info("Internal operation recorded", slog.String("transaction_id", rec.TransactionID), slog.String("type", string(rec.Type)))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(rec))
}

// createDailyBook godoc
// @Summary Record a sale or purchase with line items
// @Description Records a daily-book entry; the unpaid part becomes counterparty debt
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   X-Idempotency-Key header string false "Duplicate-submission guard"
// @Param   entry body dto.CreateDailyBookRequest true "Daily-book entry"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/daily-book [post]
func (h *transactionHandler) createDailyBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDailyBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createDailyBook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rec, err := h.transactionService.CreateDailyBook(c.Request.Context(), req, userID, c.GetHeader(idempotencyKeyHeader))
	if err != nil {
		mapTransactionError(c, logger, err, "create daily book entry")
		return
	}

	logger.Info("Daily book entry recorded", slog.String("transaction_id", rec.TransactionID), slog.String("type", string(rec.Type)))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(rec))
}

// getTransaction godoc
// @Summary Get a ledger record by ID
// @Description Retrieves a record; sale/purchase records include line items
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	rec, items, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
		} else {
			logger.Error("Failed to get transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve transaction"})
		}
		return
	}

	resp := dto.ToTransactionResponse(rec)
	resp.LineItems = dto.ToLineItemResponses(items)
	c.JSON(http.StatusOK, resp)
}

// listTransactions godoc
// @Summary List ledger records
// @Description Retrieves a filtered page ordered by date desc, with an opaque next-token
// @Tags transactions
// @Produce  json
// @Param   type query string false "Transaction type, or all_transactions"
// @Param   source_account_id query string false "Source account filter, or all_accounts"
// @Param   counterparty_id query string false "Counterparty filter"
// @Param   mode_of_payment query string false "Payment mode filter"
// @Param   payment_status query string false "paid or unpaid"
// @Param   search query string false "Case-insensitive text match"
// @Param   date_from query string false "Inclusive start date (2006-01-02)"
// @Param   date_to query string false "Inclusive end date (2006-01-02)"
// @Param   limit query int false "Page size" default(20)
// @Param   next_token query string false "Opaque pagination token"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for listTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	records, nextToken, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to list transactions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list transactions"})
		}
		return
	}

	resp := dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, len(records)),
		NextToken:    nextToken,
	}
	for i := range records {
		resp.Transactions[i] = dto.ToTransactionResponse(&records[i])
	}
	c.JSON(http.StatusOK, resp)
}

// deleteTransaction godoc
// @Summary Delete a ledger record
// @Description Removes a record and reverses its balance effects atomically
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
		} else {
			logger.Error("Failed to delete transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete transaction"})
		}
		return
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}
