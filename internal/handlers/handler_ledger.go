package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bizrecords/ledger_backend/internal/apperrors"
	portssvc "github.com/bizrecords/ledger_backend/internal/core/ports/services"
	"github.com/bizrecords/ledger_backend/internal/core/services"
	"github.com/bizrecords/ledger_backend/internal/dto"
	"github.com/bizrecords/ledger_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests related to ledger transactions.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// RegisterLedgerRoutes registers routes related to ledger transactions.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledgers := rg.Group("/ledgers")
	{
		ledgers.POST("", h.createMoney)
		ledgers.GET("", h.listTransactions)
		ledgers.GET("/:id", h.getTransactionByID)
		ledgers.POST("/:id/conciliate", h.conciliate)
	}
}

// createMoney accepts raw JSON so unknown fields can be rejected against the
// creation whitelist before validation runs.
func (h *ledgerHandler) createMoney(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		logger.Warn("Failed to bind JSON for CreateMoney", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req, err := dto.ParseCreateMoneyRequest(raw)
	if err != nil {
		var errs apperrors.ValidationErrors
		if errors.As(err, &errs) {
			logger.Warn("Money creation input rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationErrorBody(errs)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create money transaction", slog.String("operation", req.Operation))

	createdTxn, err := h.ledgerService.CreateMoney(c.Request.Context(), *req, creatorUserID)
	if err != nil {
		var errs apperrors.ValidationErrors
		if errors.As(err, &errs) {
			logger.Warn("Money transaction rejected by validation", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationErrorBody(errs)})
			return
		}
		logger.Error("Failed to create money transaction in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	logger.Info("Money transaction created successfully", slog.String("transaction_id", createdTxn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToLedgerTransactionResponse(createdTxn))
}

// getTransactionByID retrieves one transaction with its postings.
func (h *ledgerHandler) getTransactionByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	logger = logger.With(slog.String("transaction_id", transactionID))

	txn, err := h.ledgerService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Error("Failed to get transaction from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerTransactionResponse(txn))
}

// listTransactions retrieves a paginated list of transactions.
func (h *ledgerHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list transactions from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// conciliate confirms a transaction and freezes it together with its postings.
func (h *ledgerHandler) conciliate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	approverUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Approver user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(
		slog.String("transaction_id", transactionID),
		slog.String("approver_user_id", approverUserID),
	)
	logger.Info("Received request to conciliate transaction")

	txn, err := h.ledgerService.Conciliate(c.Request.Context(), transactionID, approverUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Transaction not found for conciliation")
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, services.ErrAlreadyConciliated):
			logger.Warn("Transaction already conciliated")
			c.JSON(http.StatusConflict, gin.H{"error": "Transaction is already conciliated"})
		case errors.Is(err, services.ErrNotActive):
			logger.Warn("Transaction not active")
			c.JSON(http.StatusConflict, gin.H{"error": "Transaction is not active"})
		case errors.Is(err, apperrors.ErrConflict):
			// Lost a concurrent conciliation to the repository's state guard.
			logger.Warn("Transaction state changed concurrently")
			c.JSON(http.StatusConflict, gin.H{"error": "Transaction state has changed, please retry"})
		default:
			logger.Error("Failed to conciliate transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to conciliate transaction"})
		}
		return
	}

	logger.Info("Transaction conciliated successfully")
	c.JSON(http.StatusOK, dto.ToLedgerTransactionResponse(txn))
}
