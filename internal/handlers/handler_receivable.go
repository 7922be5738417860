package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bizrecords/ledger_backend/internal/apperrors"
	portssvc "github.com/bizrecords/ledger_backend/internal/core/ports/services"
	"github.com/bizrecords/ledger_backend/internal/dto"
	"github.com/bizrecords/ledger_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// receivableHandler handles HTTP requests related to receivables.
type receivableHandler struct {
	receivableService portssvc.ReceivableSvcFacade
}

// newReceivableHandler creates a new receivableHandler.
func newReceivableHandler(rs portssvc.ReceivableSvcFacade) *receivableHandler {
	return &receivableHandler{
		receivableService: rs,
	}
}

// registerReceivableRoutes registers routes related to receivables.
func registerReceivableRoutes(rg *gin.RouterGroup, receivableService portssvc.ReceivableSvcFacade) {
	h := newReceivableHandler(receivableService)

	receivables := rg.Group("/receivables")
	{
		receivables.POST("", h.createReceivable)
		receivables.GET("", h.listReceivables)
		receivables.GET("/:id", h.getReceivableByID)
	}
}

func (h *receivableHandler) createReceivable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateReceivable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create receivable", slog.String("name", req.Name))

	createdReceivable, err := h.receivableService.CreateReceivable(c.Request.Context(), req, creatorUserID)
	if err != nil {
		var errs apperrors.ValidationErrors
		if errors.As(err, &errs) {
			logger.Warn("Receivable creation rejected by validation", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationErrorBody(errs)})
			return
		}
		logger.Error("Failed to create receivable in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create receivable"})
		return
	}

	logger.Info("Receivable created successfully", slog.String("receivable_id", createdReceivable.ReceivableID))
	c.JSON(http.StatusCreated, dto.ToReceivableResponse(createdReceivable))
}

func (h *receivableHandler) getReceivableByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receivableID := c.Param("id")

	receivable, err := h.receivableService.GetReceivableByID(c.Request.Context(), receivableID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Receivable not found"})
			return
		}
		logger.Error("Failed to get receivable from service", slog.String("receivable_id", receivableID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve receivable"})
		return
	}

	c.JSON(http.StatusOK, dto.ToReceivableResponse(receivable))
}

func (h *receivableHandler) listReceivables(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	receivables, err := h.receivableService.ListReceivables(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list receivables from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list receivables"})
		return
	}

	c.JSON(http.StatusOK, dto.ToReceivableResponses(receivables))
}
