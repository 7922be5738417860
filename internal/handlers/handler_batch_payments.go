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

// batchPaymentHandler handles HTTP requests for batch settlement of
// receivables.
type batchPaymentHandler struct {
	batchPaymentService portssvc.BatchPaymentSvcFacade
}

// newBatchPaymentHandler creates a new batchPaymentHandler.
func newBatchPaymentHandler(bs portssvc.BatchPaymentSvcFacade) *batchPaymentHandler {
	return &batchPaymentHandler{
		batchPaymentService: bs,
	}
}

// registerBatchPaymentRoutes registers the batch payment route.
func registerBatchPaymentRoutes(rg *gin.RouterGroup, batchPaymentService portssvc.BatchPaymentSvcFacade) {
	h := newBatchPaymentHandler(batchPaymentService)

	rg.POST("/batch_payments", h.processPayments)
}

// processPayments settles the named receivables against a cash/bank account.
// The response reports per-receivable outcomes; a failed item does not fail
// the request.
func (h *batchPaymentHandler) processPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BatchPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BatchPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("user_id", userID))
	logger.Info("Received batch payment request",
		slog.Int("receivable_count", len(req.IDs)),
		slog.String("account_id", req.AccountID))

	resp, err := h.batchPaymentService.ProcessPayments(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Batch payment account not found", slog.String("account_id", req.AccountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, services.ErrNotMoneyStore):
			logger.Warn("Batch payment account is not a money store", slog.String("account_id", req.AccountID))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Account must be a cash or bank account"})
		default:
			logger.Error("Failed to process batch payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process batch payment"})
		}
		return
	}

	logger.Info("Batch payment completed", slog.Int("settled", resp.Settled), slog.Int("failed", resp.Failed))
	c.JSON(http.StatusOK, resp)
}
