package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"dinerboard/internal/model"
	"dinerboard/internal/service/sheet"
)

type openSheetRequest struct {
	AccountID model.AccountID `json:"accountId"`
	Year      int             `json:"year"`
	Month     int             `json:"month"`
}

// OpenSheet 打开某账户某月的식수表；年月缺省时使用当前操作年月
// POST /api/sheets
func (h *Handler) OpenSheet(c *gin.Context) {
	var req openSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}
	if req.AccountID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid accountId"})
		return
	}
	if req.Year == 0 && req.Month == 0 {
		year, month, err := h.repo.GetCurrentYearMonth()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "未选择年月"})
			return
		}
		req.Year, req.Month = year, month
	}
	if req.Month < 1 || req.Month > 12 || req.Year <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法年月"})
		return
	}

	s := sheet.Load(h.repo, h.engine, req.AccountID, req.Year, req.Month)
	token := h.sessions.Add(s)

	v, err := h.sessions.View(token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, v)
}

// GetSheet 读取会话视图
// GET /api/sheets/:token
func (h *Handler) GetSheet(c *gin.Context) {
	v, err := h.sessions.View(c.Param("token"))
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// CloseSheet 丢弃会话（未保存的修改一并丢弃）
// DELETE /api/sheets/:token
func (h *Handler) CloseSheet(c *gin.Context) {
	token := c.Param("token")
	if _, err := h.sessions.View(token); err != nil {
		writeSessionError(c, err)
		return
	}
	h.sessions.Delete(token)
	c.Status(http.StatusNoContent)
}

type editCellRequest struct {
	Day   int    `json:"day"`
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// EditCell 修改单元格，返回最新视图（含重算后的合计与汇总行）
// PATCH /api/sheets/:token/cells
func (h *Handler) EditCell(c *gin.Context) {
	var req editCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	var v sheet.View
	err := h.sessions.Update(c.Param("token"), func(s *sheet.Session) error {
		if err := s.Edit(req.Day, req.Key, req.Value); err != nil {
			return err
		}
		v = s.View()
		return nil
	})
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

type saveSheetRequest struct {
	WorkingDays *int `json:"workingDays"`
}

// SaveSheet 保存与基线不同的行；失败时会话保持原样，可重试
// POST /api/sheets/:token/save
func (h *Handler) SaveSheet(c *gin.Context) {
	var req saveSheetRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
			return
		}
	}
	if req.WorkingDays != nil && *req.WorkingDays < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "근무일수不能为负数"})
		return
	}

	saved, v, err := h.sessions.Save(c.Param("token"), req.WorkingDays,
		func(p model.AccountProfile, year, month int, changes []model.DinerRow, workingDays int) error {
			if err := h.repo.SaveDinerRows(p.ID, year, month, changes, workingDays); err != nil {
				return &saveError{err: err}
			}
			return nil
		})
	if err != nil {
		var se *saveError
		if errors.As(err, &se) {
			log.Printf("save sheet %s failed: %v", c.Param("token"), se.err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "保存失败: " + se.err.Error()})
			return
		}
		writeSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": saved, "sheet": v})
}

type saveError struct {
	err error
}

func (e *saveError) Error() string { return e.err.Error() }

func (e *saveError) Unwrap() error { return e.err }

func writeSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sheet.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "会话不存在或已过期"})
	case errors.Is(err, sheet.ErrDayOutOfRange),
		errors.Is(err, sheet.ErrReadOnlyField),
		errors.Is(err, sheet.ErrInvalidField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
