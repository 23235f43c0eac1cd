package api

import (
	"os"

	"github.com/gin-gonic/gin"

	"dinerboard/internal/model"
	"dinerboard/internal/service/calculator"
	"dinerboard/internal/service/excel"
	"dinerboard/internal/service/sheet"
	"dinerboard/internal/store"
)

// Repository API 依赖的持久化能力（*store.Store 实现）
type Repository interface {
	ListAccounts() ([]model.Account, error)
	GetAccount(id model.AccountID) (model.Account, error)
	UpsertAccount(a model.Account) error
	ListExtraColumns(id model.AccountID) ([]model.ExtraDietColumn, error)
	ReplaceExtraColumns(id model.AccountID, cols []model.ExtraDietColumn) error
	FetchPersistedRows(id model.AccountID, year, month int) ([]model.RawRecord, error)
	SaveDinerRows(id model.AccountID, year, month int, rows []model.DinerRow, workingDays int) error
	GetWorkingDays(id model.AccountID, year, month int) (int, error)
	ListRecordedMonths() ([]store.YearMonthStat, error)
	GetCurrentYearMonth() (int, int, error)
	SetCurrentYearMonth(year, month int) error
}

// Handler API 处理器
type Handler struct {
	repo      Repository
	engine    *calculator.Engine
	sessions  *sheet.MemoryStore
	exporter  *excel.Exporter
	downloads *exportDownloadStore
	exportDir string
}

// NewHandler 创建 API 处理器；engine/sessions/exporter 为 nil 时使用默认值
func NewHandler(repo Repository, engine *calculator.Engine, sessions *sheet.MemoryStore, exporter *excel.Exporter) *Handler {
	if engine == nil {
		engine = calculator.Default()
	}
	if sessions == nil {
		sessions = sheet.NewMemoryStore(0)
	}
	if exporter == nil {
		exporter = excel.NewExporter("", 0)
	}
	return &Handler{
		repo:      repo,
		engine:    engine,
		sessions:  sessions,
		exporter:  exporter,
		downloads: newExportDownloadStore(),
		exportDir: os.TempDir(),
	}
}

// SetExportDir 设置流式导出文件的存放目录
func (h *Handler) SetExportDir(dir string) {
	if dir != "" {
		h.exportDir = dir
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)
	// 年月
	router.GET("/months", h.ListMonths)
	router.POST("/months/select", h.SelectMonth)

	// 账户与额外饮食列
	router.GET("/accounts", h.ListAccounts)
	router.PUT("/accounts/:id", h.PutAccount)
	router.GET("/accounts/:id/extra-columns", h.GetExtraColumns)
	router.PUT("/accounts/:id/extra-columns", h.ReplaceExtraColumns)

	// 식수表编辑会话
	router.POST("/sheets", h.OpenSheet)
	router.GET("/sheets/:token", h.GetSheet)
	router.DELETE("/sheets/:token", h.CloseSheet)
	router.PATCH("/sheets/:token/cells", h.EditCell)
	router.POST("/sheets/:token/save", h.SaveSheet)

	// 区域批量填充
	router.POST("/sheets/:token/selection/down", h.SelectionDown)
	router.POST("/sheets/:token/selection/enter", h.SelectionEnter)
	router.POST("/sheets/:token/selection/up", h.SelectionUp)
	router.DELETE("/sheets/:token/selection", h.CancelSelection)
	router.POST("/sheets/:token/fill", h.Fill)

	// 导入
	router.POST("/sheets/:token/import", h.ImportSheet)

	// 导出
	router.POST("/sheets/:token/export", h.ExportSheet)
	router.POST("/sheets/:token/export/stream", h.ExportSheetStream)
	router.GET("/export/download/:token", h.DownloadExport)
}
