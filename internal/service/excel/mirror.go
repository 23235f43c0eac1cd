package excel

import (
	"dinerboard/internal/model"
)

// CellStyle 导出单元格样式类别
type CellStyle int

const (
	StyleData CellStyle = iota
	StyleHeader
	StyleTotals
	StyleAverages
)

// TableCell 表格中的一个单元格（0 起始坐标）
type TableCell struct {
	Row   int
	Col   int
	Value any
	Style CellStyle
}

// Merge 合并区域（闭区间，0 起始坐标）
type Merge struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// Table 与写入介质无关的“单元格 + 合并”描述
type Table struct {
	Width      int
	HeaderRows int
	Rows       int
	Cells      []TableCell
	Merges     []Merge
}

// 汇总行标签
const (
	LabelTotals   = "합계"
	LabelAverages = "평균"
)

// Mirror 按表头结构转写出表格：表头（按跨度放置、跳过已占用格）→ 每日数据 → 합계 → 평균。
// 只做结构转写，不做业务计算。
func Mirror(layout model.LayoutDescriptor, rows []model.DinerRow, summary model.SummaryRow) Table {
	width := layout.Width()
	headerRows := len(layout.HeaderRows)
	t := Table{Width: width, HeaderRows: headerRows}

	occupied := make([][]bool, headerRows)
	for i := range occupied {
		occupied[i] = make([]bool, width)
	}

	for ri, header := range layout.HeaderRows {
		col := 0
		for _, hc := range header {
			for col < width && occupied[ri][col] {
				col++
			}
			if col >= width {
				break
			}
			bottom := min(ri+hc.Rows()-1, headerRows-1)
			right := min(col+hc.Cols()-1, width-1)
			for r := ri; r <= bottom; r++ {
				for c := col; c <= right; c++ {
					occupied[r][c] = true
				}
			}
			t.Cells = append(t.Cells, TableCell{Row: ri, Col: col, Value: hc.Label, Style: StyleHeader})
			if bottom > ri || right > col {
				t.Merges = append(t.Merges, Merge{Top: ri, Left: col, Bottom: bottom, Right: right})
			}
			col = right + 1
		}
	}

	r := headerRows
	for i := range rows {
		t.Cells = append(t.Cells, TableCell{Row: r, Col: 0, Value: rows[i].Date, Style: StyleData})
		for ci, key := range layout.VisibleColumns {
			t.Cells = append(t.Cells, TableCell{Row: r, Col: ci + 1, Value: rows[i].Cell(key), Style: StyleData})
		}
		r++
	}

	t.Cells = append(t.Cells, summaryCells(r, LabelTotals, layout.VisibleColumns, summary.Totals, StyleTotals)...)
	r++
	t.Cells = append(t.Cells, summaryCells(r, LabelAverages, layout.VisibleColumns, summary.Averages, StyleAverages)...)
	r++

	t.Rows = r
	return t
}

func summaryCells(row int, label string, visible []string, values map[string]int, style CellStyle) []TableCell {
	out := make([]TableCell, 0, len(visible)+1)
	out = append(out, TableCell{Row: row, Col: 0, Value: label, Style: style})
	for ci, key := range visible {
		var v any = ""
		if n, ok := values[key]; ok {
			v = n
		}
		out = append(out, TableCell{Row: row, Col: ci + 1, Value: v, Style: style})
	}
	return out
}

// At 查找某坐标的单元格
func (t Table) At(row, col int) (TableCell, bool) {
	for _, c := range t.Cells {
		if c.Row == row && c.Col == col {
			return c, true
		}
	}
	return TableCell{}, false
}
