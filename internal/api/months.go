package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dinerboard/internal/store"
)

type monthsResponse struct {
	CurrentYear  int                   `json:"currentYear"`
	CurrentMonth int                   `json:"currentMonth"`
	Items        []store.YearMonthStat `json:"items"`
}

// ListMonths 获取有记录的年月列表
// GET /api/months
func (h *Handler) ListMonths(c *gin.Context) {
	items, err := h.repo.ListRecordedMonths()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []store.YearMonthStat{}
	}

	year, month, err := h.repo.GetCurrentYearMonth()
	if err != nil {
		year = 0
		month = 0
	}

	c.JSON(http.StatusOK, monthsResponse{
		CurrentYear:  year,
		CurrentMonth: month,
		Items:        items,
	})
}

type selectMonthRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// SelectMonth 切换当前操作年月（新开会话的默认年月）；空月份也允许，用于录入新月份
// POST /api/months/select
func (h *Handler) SelectMonth(c *gin.Context) {
	var req selectMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}
	if req.Month < 1 || req.Month > 12 || req.Year <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法年月"})
		return
	}

	if err := h.repo.SetCurrentYearMonth(req.Year, req.Month); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": h.status()})
}
