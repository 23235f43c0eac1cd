package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized    bool `json:"initialized"`    // 是否已有账户
	CurrentYear    int  `json:"currentYear"`    // 当前操作年份
	CurrentMonth   int  `json:"currentMonth"`   // 当前操作月份
	TotalAccounts  int  `json:"totalAccounts"`  // 账户总数
	OpenSessions   int  `json:"openSessions"`   // 编辑中的会话数
	RecordedMonths int  `json:"recordedMonths"` // 有记录的年月数
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.status())
}

func (h *Handler) status() StatusResponse {
	resp := StatusResponse{OpenSessions: h.sessions.Count()}

	if year, month, err := h.repo.GetCurrentYearMonth(); err == nil {
		resp.CurrentYear = year
		resp.CurrentMonth = month
	}
	if accounts, err := h.repo.ListAccounts(); err == nil {
		resp.TotalAccounts = len(accounts)
	}
	if months, err := h.repo.ListRecordedMonths(); err == nil {
		resp.RecordedMonths = len(months)
	}
	resp.Initialized = resp.TotalAccounts > 0
	return resp
}
