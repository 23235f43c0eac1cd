package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"dinerboard/internal/parser"
	"dinerboard/internal/service/sheet"
)

type importResponse struct {
	Applied int               `json:"applied"`
	Issues  []parser.RowIssue `json:"issues"`
	Sheet   sheet.View        `json:"sheet"`
}

// ImportSheet 上传之前导出的 식수表，把数据覆盖到当前会话（不自动保存）
// POST /api/sheets/:token/import
func (h *Handler) ImportSheet(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}
	src, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取文件失败"})
		return
	}
	defer src.Close()

	f, err := excelize.OpenReader(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无法解析 Excel 文件"})
		return
	}
	defer f.Close()

	var resp importResponse
	err = h.sessions.Update(c.Param("token"), func(s *sheet.Session) error {
		result, err := parser.NewSheetParser(f, c.PostForm("sheet")).ParseSheet(s.Layout)
		if err != nil {
			return err
		}
		if result.Year != 0 && (result.Year != s.Year || result.Month != s.Month) {
			return &monthMismatchError{year: result.Year, month: result.Month}
		}
		resp.Applied = s.Merge(result.Records)
		resp.Issues = result.Issues
		resp.Sheet = s.View()
		return nil
	})
	if err != nil {
		var mm *monthMismatchError
		switch {
		case errors.Is(err, parser.ErrLayoutMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "表头与该账户不一致", "details": err.Error()})
		case errors.As(err, &mm):
			c.JSON(http.StatusBadRequest, gin.H{"error": mm.Error()})
		default:
			writeSessionError(c, err)
		}
		return
	}
	if resp.Issues == nil {
		resp.Issues = []parser.RowIssue{}
	}

	log.Printf("import %s into sheet %s: %d rows, %d issues", fh.Filename, c.Param("token"), resp.Applied, len(resp.Issues))
	c.JSON(http.StatusOK, resp)
}

type monthMismatchError struct {
	year, month int
}

func (e *monthMismatchError) Error() string {
	return "文件年月与当前表格不一致"
}
