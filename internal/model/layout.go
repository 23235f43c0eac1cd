package model

import "fmt"

// HeaderCell 表头单元格，RowSpan/ColSpan 为 0 时按 1 处理
type HeaderCell struct {
	Label   string `json:"label"`
	RowSpan int    `json:"rowSpan,omitempty"`
	ColSpan int    `json:"colSpan,omitempty"`
}

// Rows 实际占用行数
func (c HeaderCell) Rows() int {
	if c.RowSpan < 1 {
		return 1
	}
	return c.RowSpan
}

// Cols 实际占用列数
func (c HeaderCell) Cols() int {
	if c.ColSpan < 1 {
		return 1
	}
	return c.ColSpan
}

// LayoutDescriptor 表头结构 + 数据列顺序；屏幕渲染与导出共用
type LayoutDescriptor struct {
	HeaderRows     [][]HeaderCell `json:"headerRows"`
	VisibleColumns []string       `json:"visibleColumns"`
}

// Width 总列数（含 구분 日期列）
func (d LayoutDescriptor) Width() int {
	return 1 + len(d.VisibleColumns)
}

// Validate 校验表头跨度：每一表头行（含上方 rowSpan 延续占位）的宽度都必须等于 Width()
func (d LayoutDescriptor) Validate() error {
	if len(d.HeaderRows) == 0 {
		return fmt.Errorf("layout has no header rows")
	}
	width := d.Width()

	// carry[c] 记录第 c 列还要被上方单元格占用多少行
	carry := make([]int, width)
	for ri, row := range d.HeaderRows {
		col := 0
		for _, cell := range row {
			for col < width && carry[col] > 0 {
				col++
			}
			if col+cell.Cols() > width {
				return fmt.Errorf("header row %d: cell %q overflows width %d", ri, cell.Label, width)
			}
			if ri+cell.Rows() > len(d.HeaderRows) {
				return fmt.Errorf("header row %d: cell %q spans past last header row", ri, cell.Label)
			}
			for c := col; c < col+cell.Cols(); c++ {
				if carry[c] > 0 {
					return fmt.Errorf("header row %d: cell %q overlaps a spanning cell", ri, cell.Label)
				}
				carry[c] = cell.Rows()
			}
			col += cell.Cols()
		}
		for c := 0; c < width; c++ {
			if carry[c] == 0 {
				return fmt.Errorf("header row %d: column %d left empty", ri, c)
			}
			carry[c]--
		}
	}
	return nil
}
