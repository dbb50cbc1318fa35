package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sweetshop/backend/internal/pkg/logger"
	"github.com/sweetshop/backend/internal/report"
	"github.com/sweetshop/backend/internal/report/dto"
	"go.uber.org/zap"
)

type ReportHandler struct {
	uc     report.UseCase
	logger logger.ZapLogger
}

func NewReportHandler(uc report.UseCase, log logger.ZapLogger) *ReportHandler {
	return &ReportHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ReportHandler) TopSelling(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.uc.TopSelling(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("top selling report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": rows})
}

func (h *ReportHandler) SalesByDay(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.uc.SalesByDay(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("sales by day report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": rows})
}

func (h *ReportHandler) OrderStatusBreakdown(c *gin.Context) {
	rows, err := h.uc.OrderStatusBreakdown(c.Request.Context())
	if err != nil {
		h.logger.Error("order status report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"statuses": rows})
}

func parseFilters(c *gin.Context) (*dto.ReportFilters, error) {
	filters := &dto.ReportFilters{}

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, err
		}
		filters.StartDate = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, err
		}
		filters.EndDate = &t
	}
	if v := c.Query("limit"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			filters.Limit = i
		}
	}

	return filters, nil
}
