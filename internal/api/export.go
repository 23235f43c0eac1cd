package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dinerboard/internal/service/excel"
	"dinerboard/internal/service/grid"
	"dinerboard/internal/service/sheet"
	"dinerboard/internal/util"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// snapshot 复制会话当前内容（含未保存的修改），导出在锁外进行
func (h *Handler) snapshot(token string) (excel.SheetExport, error) {
	var out excel.SheetExport
	err := h.sessions.Update(token, func(s *sheet.Session) error {
		out = excel.SheetExport{
			Profile:     s.Profile,
			Year:        s.Year,
			Month:       s.Month,
			WorkingDays: s.WorkingDays,
			Layout:      s.Layout,
			Rows:        grid.Clone(s.Rows),
			Summary:     s.Summary(),
		}
		return nil
	})
	return out, err
}

// ExportSheet 导出当前表格为 Excel（与屏幕一致的表头合并结构）
// POST /api/sheets/:token/export
func (h *Handler) ExportSheet(c *gin.Context) {
	in, err := h.snapshot(c.Param("token"))
	if err != nil {
		writeSessionError(c, err)
		return
	}

	file, err := h.exporter.Export(in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", buildExportContentDisposition(in))
	c.Header("Content-Type", xlsxContentType)

	if err := file.Write(c.Writer); err != nil {
		log.Printf("write export failed: %v", err)
	}
}

type exportProgressEvent struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// ExportSheetStream 导出 Excel（SSE 进度 + 完成后提供一次性下载地址）
// POST /api/sheets/:token/export/stream
func (h *Handler) ExportSheetStream(c *gin.Context) {
	in, err := h.snapshot(c.Param("token"))
	if err != nil {
		writeSessionError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	send := func(event exportProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}
	fail := func(msg string, err error) {
		send(exportProgressEvent{
			Type:      "error",
			Message:   msg + err.Error(),
			Data:      map[string]any{},
			Timestamp: time.Now(),
		})
	}

	send(exportProgressEvent{
		Type:    "start",
		Message: "开始导出",
		Data: map[string]any{
			"accountId": in.Profile.ID,
			"year":      in.Year,
			"month":     in.Month,
		},
		Timestamp: time.Now(),
	})

	file, err := h.exporter.ExportWithProgress(in, func(p excel.ProgressEvent) {
		send(exportProgressEvent{
			Type:      "progress",
			Message:   p.Stage,
			Data:      map[string]any{"percent": p.Percent},
			Timestamp: time.Now(),
		})
	})
	if err != nil {
		fail("导出失败: ", err)
		return
	}
	defer file.Close()

	buf, err := file.WriteToBuffer()
	if err != nil {
		fail("生成导出文件失败: ", err)
		return
	}
	tempPath := filepath.Join(h.exportDir, fmt.Sprintf("dinerboard_export_%s.xlsx", uuid.NewString()))
	if err := util.WriteFileAtomic(tempPath, buf.Bytes()); err != nil {
		fail("写入导出文件失败: ", err)
		return
	}

	token := h.downloads.put(tempPath, excel.FileName(in.Profile.ID, in.Year, in.Month), 10*time.Minute)
	send(exportProgressEvent{
		Type:    "done",
		Message: "导出完成",
		Data: map[string]any{
			"percent":     100,
			"downloadUrl": "/api/export/download/" + token,
		},
		Timestamp: time.Now(),
	})
}

// DownloadExport 下载导出的 Excel 文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}

	if !util.FileExists(item.filePath) {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.fileName))
	c.Header("Content-Type", xlsxContentType)
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}

// buildExportContentDisposition ASCII 文件名 + RFC 5987 的 UTF-8 文件名（账户名为韩文）
func buildExportContentDisposition(in excel.SheetExport) string {
	ascii := excel.FileName(in.Profile.ID, in.Year, in.Month)
	name := in.Profile.Name
	if name == "" {
		name = fmt.Sprint(in.Profile.ID)
	}
	utf8Name := fmt.Sprintf("%s_%d년%02d월_식수.xlsx", name, in.Year, in.Month)
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", ascii, url.PathEscape(utf8Name))
}
