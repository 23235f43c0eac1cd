package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dinerboard/internal/service/rangefill"
	"dinerboard/internal/service/sheet"
)

type pointerRequest struct {
	Row      int  `json:"row"`
	Col      int  `json:"col"`
	Modifier bool `json:"modifier"`
}

type selectionResponse struct {
	Phase     string                    `json:"phase"`
	Selection *rangefill.SelectionRange `json:"selection,omitempty"`
}

func selectionOf(s *sheet.Session) selectionResponse {
	resp := selectionResponse{Phase: s.Selector.Phase().String()}
	if r, ok := s.Selector.Range(); ok {
		resp.Selection = &r
	}
	return resp
}

// SelectionDown 按下（需修饰键）开始选区
// POST /api/sheets/:token/selection/down
func (h *Handler) SelectionDown(c *gin.Context) {
	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}
	h.updateSelection(c, func(s *sheet.Session) {
		s.PointerDown(rangefill.Cell{Row: req.Row, Col: req.Col}, req.Modifier)
	})
}

// SelectionEnter 拖动经过单元格
// POST /api/sheets/:token/selection/enter
func (h *Handler) SelectionEnter(c *gin.Context) {
	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}
	h.updateSelection(c, func(s *sheet.Session) {
		s.PointerEnter(rangefill.Cell{Row: req.Row, Col: req.Col})
	})
}

// SelectionUp 松开，进入等待输入
// POST /api/sheets/:token/selection/up
func (h *Handler) SelectionUp(c *gin.Context) {
	h.updateSelection(c, func(s *sheet.Session) {
		s.PointerUp()
	})
}

// CancelSelection 取消选区
// DELETE /api/sheets/:token/selection
func (h *Handler) CancelSelection(c *gin.Context) {
	h.updateSelection(c, func(s *sheet.Session) {
		s.CancelFill()
	})
}

func (h *Handler) updateSelection(c *gin.Context, fn func(*sheet.Session)) {
	var resp selectionResponse
	err := h.sessions.Update(c.Param("token"), func(s *sheet.Session) error {
		fn(s)
		resp = selectionOf(s)
		return nil
	})
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type fillRequest struct {
	Value string `json:"value"`
}

// Fill 用输入值填充选区；输入无效时返回 400，选区保持等待输入
// POST /api/sheets/:token/fill
func (h *Handler) Fill(c *gin.Context) {
	var req fillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	var (
		v     sheet.View
		phase selectionResponse
	)
	err := h.sessions.Update(c.Param("token"), func(s *sheet.Session) error {
		err := s.ConfirmFill(req.Value)
		phase = selectionOf(s)
		if err != nil {
			return err
		}
		v = s.View()
		return nil
	})

	switch {
	case errors.Is(err, rangefill.ErrInvalidValue):
		c.JSON(http.StatusBadRequest, gin.H{"error": "숫자를 입력하세요", "phase": phase.Phase, "selection": phase.Selection})
	case errors.Is(err, rangefill.ErrNotPrompting):
		c.JSON(http.StatusConflict, gin.H{"error": "没有等待填充的选区", "phase": phase.Phase})
	case err != nil:
		writeSessionError(c, err)
	default:
		c.JSON(http.StatusOK, v)
	}
}
