package excel

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"dinerboard/internal/model"
)

// 默认工作表名
const (
	DefaultSheetName = "식수"
	InfoSheetName    = "정보"
)

// SheetExport 一个账户一个月的导出内容
type SheetExport struct {
	Profile     model.AccountProfile
	Year        int
	Month       int
	WorkingDays int
	Layout      model.LayoutDescriptor
	Rows        []model.DinerRow
	Summary     model.SummaryRow
}

// Exporter 식수表 Excel 导出器
type Exporter struct {
	sheetName string
	opts      WriteOptions
}

// NewExporter 创建导出器；sheetName 为空时使用默认名
func NewExporter(sheetName string, colWidth float64) *Exporter {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	if colWidth <= 0 {
		colWidth = 10
	}
	return &Exporter{
		sheetName: sheetName,
		opts:      WriteOptions{ColWidth: colWidth, DateWidth: 12},
	}
}

// Export 生成工作簿：主表与屏幕显示的列顺序、合并结构完全一致；附带一张信息表
func (e *Exporter) Export(in SheetExport) (*excelize.File, error) {
	return e.ExportWithProgress(in, nil)
}

// ExportWithProgress 同 Export，按阶段回调进度
func (e *Exporter) ExportWithProgress(in SheetExport, progress func(ProgressEvent)) (*excelize.File, error) {
	if len(in.Layout.VisibleColumns) == 0 {
		return nil, errors.New("layout has no columns")
	}
	if err := in.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", e.sheetName); err != nil {
		_ = f.Close()
		return nil, err
	}

	reportProgress(progress, 10, "构建表格")
	table := Mirror(in.Layout, in.Rows, in.Summary)
	reportProgress(progress, 30, "写入식수表")
	if err := WriteTable(f, e.sheetName, table, e.opts); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write table: %w", err)
	}

	reportProgress(progress, 70, "写入信息表")
	if _, err := f.NewSheet(InfoSheetName); err != nil {
		_ = f.Close()
		return nil, err
	}
	info := [][]any{
		{"거래처", in.Profile.Name},
		{"거래처 ID", int(in.Profile.ID)},
		{"유형", string(in.Profile.Type)},
		{"연월", fmt.Sprintf("%d-%02d", in.Year, in.Month)},
		{"근무일수", in.WorkingDays},
	}
	for i, row := range info {
		for j, val := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := f.SetCellValue(InfoSheetName, cell, val); err != nil {
				_ = f.Close()
				return nil, err
			}
		}
	}
	_ = f.SetColWidth(InfoSheetName, "A", "A", 14)
	_ = f.SetColWidth(InfoSheetName, "B", "B", 24)

	f.SetActiveSheet(0)
	reportProgress(progress, 90, "完成工作簿")
	return f, nil
}

// FileName 导出文件名
func FileName(accountID model.AccountID, year, month int) string {
	return fmt.Sprintf("diner-%d-%d-%02d.xlsx", accountID, year, month)
}
