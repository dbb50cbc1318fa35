package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sweetshop/backend/internal/auth"
	"github.com/sweetshop/backend/internal/inventory"
	"github.com/sweetshop/backend/internal/inventory/dto"
	"github.com/sweetshop/backend/internal/model"
	"github.com/sweetshop/backend/internal/pkg/logger"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

type adjustRequest struct {
	Quantity int    `json:"quantity" binding:"required"`
	Note     string `json:"note"`
}

// Reserve decrements stock when an item is added to a cart.
func (h *InventoryHandler) Reserve(c *gin.Context) {
	h.adjust(c, model.KindReserve)
}

// Purchase decrements stock for an immediate buy.
func (h *InventoryHandler) Purchase(c *gin.Context) {
	h.adjust(c, model.KindPurchase)
}

// Restock increments stock; admin only (enforced by route middleware).
func (h *InventoryHandler) Restock(c *gin.Context) {
	h.adjust(c, model.KindRestock)
}

func (h *InventoryHandler) adjust(c *gin.Context, kind model.LedgerKind) {
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.uc.AdjustStock(c.Request.Context(), &dto.AdjustStockInput{
		ProductID:    c.Param("id"),
		Quantity:     req.Quantity,
		Kind:         kind,
		ActingUserID: auth.GetUserID(c),
		Note:         req.Note,
	})
	if err != nil {
		h.respondAdjustError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *InventoryHandler) respondAdjustError(c *gin.Context, err error) {
	var insufficient *inventory.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "insufficient stock",
			"available": insufficient.Available,
		})
	case errors.Is(err, inventory.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrInvalidQuantity), errors.Is(err, inventory.ErrInvalidKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrLockContention):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.logger.Error("stock adjustment failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// ListLedger returns the stock audit trail, newest first.
func (h *InventoryHandler) ListLedger(c *gin.Context) {
	filters := &dto.LedgerFilters{
		ProductID: c.Query("product_id"),
		UserID:    c.Query("user_id"),
		Kind:      model.LedgerKind(c.Query("kind")),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "page_size", 20),
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filters.StartDate = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filters.EndDate = &t
		}
	}

	entries, total, err := h.uc.ListLedger(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list ledger", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "total": total})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
