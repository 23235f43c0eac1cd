package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"dinerboard/internal/model"
	"dinerboard/internal/service/excel"
	"dinerboard/internal/service/grid"
)

// ErrLayoutMismatch 表头与账户当前的表头结构不一致
var ErrLayoutMismatch = errors.New("sheet header does not match account layout")

// RowIssue 被跳过的行或单元格
type RowIssue struct {
	RowNo   int    `json:"rowNo"` // Excel 行号（1 起始）
	Key     string `json:"key,omitempty"`
	Message string `json:"message"`
}

// ParseResult 解析结果
type ParseResult struct {
	Records []model.RawRecord `json:"-"`
	Issues  []RowIssue        `json:"issues"`
	// Year/Month 来自信息表 연월，读取不到时为 0
	Year  int `json:"year"`
	Month int `json:"month"`
}

// SheetParser 식수表解析器：读取本系统导出的工作簿（表头结构与屏幕一致）
type SheetParser struct {
	file      *excelize.File
	sheetName string
}

// NewSheetParser 创建解析器；sheetName 为空时优先使用默认表名，其次第一个工作表
func NewSheetParser(file *excelize.File, sheetName string) *SheetParser {
	if sheetName == "" {
		sheetName = excel.DefaultSheetName
		if idx, err := file.GetSheetIndex(sheetName); err != nil || idx < 0 {
			sheetName = file.GetSheetName(0)
		}
	}
	return &SheetParser{file: file, sheetName: sheetName}
}

// ParseSheet 按账户表头结构解析数据行：校验表头 → 逐行读取直到 합계/空行
func (p *SheetParser) ParseSheet(layout model.LayoutDescriptor) (ParseResult, error) {
	var result ParseResult

	rows, err := p.file.GetRows(p.sheetName)
	if err != nil {
		return result, fmt.Errorf("failed to read sheet: %w", err)
	}

	headerRows := len(layout.HeaderRows)
	if len(rows) < headerRows {
		return result, fmt.Errorf("%w: sheet has only %d rows", ErrLayoutMismatch, len(rows))
	}
	if err := checkHeader(rows, layout); err != nil {
		return result, err
	}

	for rowIdx := headerRows; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		first := strings.TrimSpace(cellAt(row, 0))
		if first == "" || first == excel.LabelTotals || first == excel.LabelAverages {
			break
		}
		rec, issues := parseRow(row, rowIdx+1, layout.VisibleColumns)
		result.Issues = append(result.Issues, issues...)
		if rec != nil {
			result.Records = append(result.Records, rec)
		}
	}

	result.Year, result.Month = p.infoYearMonth()
	return result, nil
}

func checkHeader(rows [][]string, layout model.LayoutDescriptor) error {
	expected := excel.Mirror(layout, nil, model.SummaryRow{})
	for _, c := range expected.Cells {
		if c.Row >= expected.HeaderRows {
			continue
		}
		want, _ := c.Value.(string)
		got := cellAt(rows[c.Row], c.Col)
		if NormalizeLabel(got) != NormalizeLabel(want) {
			cell, _ := excelize.CoordinatesToCellName(c.Col+1, c.Row+1)
			return fmt.Errorf("%w: %s is %q, want %q", ErrLayoutMismatch, cell, got, want)
		}
	}
	return nil
}

func parseRow(row []string, rowNo int, visible []string) (model.RawRecord, []RowIssue) {
	var issues []RowIssue

	date := strings.TrimSpace(cellAt(row, 0))
	if _, ok := grid.ParseDay(date); !ok {
		return nil, []RowIssue{{RowNo: rowNo, Message: fmt.Sprintf("invalid date %q", date)}}
	}

	rec := model.RawRecord{model.KeyDate: date}
	for i, key := range visible {
		if key == model.KeyTotal {
			continue
		}
		raw := cellAt(row, i+1)
		if model.IsNumericKey(key) {
			n, ok := parseCount(raw)
			if !ok {
				issues = append(issues, RowIssue{RowNo: rowNo, Key: key, Message: fmt.Sprintf("invalid number %q", raw)})
				continue
			}
			rec[key] = n
			continue
		}
		rec[key] = strings.TrimSpace(raw)
	}
	return rec, issues
}

// infoYearMonth 读取信息表中的 연월
func (p *SheetParser) infoYearMonth() (int, int) {
	rows, err := p.file.GetRows(excel.InfoSheetName)
	if err != nil {
		return 0, 0
	}
	for _, row := range rows {
		if NormalizeLabel(cellAt(row, 0)) != "연월" {
			continue
		}
		if y, m, ok := ExtractYearMonth(cellAt(row, 1)); ok {
			return y, m
		}
	}
	return 0, 0
}

func cellAt(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}
