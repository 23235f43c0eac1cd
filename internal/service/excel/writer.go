package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteOptions 写入选项
type WriteOptions struct {
	ColWidth  float64
	DateWidth float64
}

// WriteTable 把表格描述写入 excelize 工作表：值、合并单元格、表头/汇总样式、列宽
func WriteTable(f *excelize.File, sheet string, t Table, opts WriteOptions) error {
	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	for _, c := range t.Cells {
		axis, err := excelize.CoordinatesToCellName(c.Col+1, c.Row+1)
		if err != nil {
			return fmt.Errorf("cell %d,%d: %w", c.Row, c.Col, err)
		}
		if err := f.SetCellValue(sheet, axis, c.Value); err != nil {
			return fmt.Errorf("set %s: %w", axis, err)
		}
		if id, ok := styles[c.Style]; ok {
			if err := f.SetCellStyle(sheet, axis, axis, id); err != nil {
				return fmt.Errorf("style %s: %w", axis, err)
			}
		}
	}

	for _, m := range t.Merges {
		topLeft, err := excelize.CoordinatesToCellName(m.Left+1, m.Top+1)
		if err != nil {
			return err
		}
		bottomRight, err := excelize.CoordinatesToCellName(m.Right+1, m.Bottom+1)
		if err != nil {
			return err
		}
		if err := f.MergeCell(sheet, topLeft, bottomRight); err != nil {
			return fmt.Errorf("merge %s:%s: %w", topLeft, bottomRight, err)
		}
	}

	if t.Width > 0 {
		if opts.DateWidth > 0 {
			if err := f.SetColWidth(sheet, "A", "A", opts.DateWidth); err != nil {
				return err
			}
		}
		if opts.ColWidth > 0 && t.Width > 1 {
			last, err := excelize.ColumnNumberToName(t.Width)
			if err != nil {
				return err
			}
			if err := f.SetColWidth(sheet, "B", last, opts.ColWidth); err != nil {
				return err
			}
		}
	}
	if t.HeaderRows > 0 {
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			XSplit:      1,
			YSplit:      t.HeaderRows,
			TopLeftCell: fmt.Sprintf("B%d", t.HeaderRows+1),
			ActivePane:  "bottomRight",
		}); err != nil {
			return err
		}
	}
	return nil
}

func newStyles(f *excelize.File) (map[CellStyle]int, error) {
	border := []excelize.Border{
		{Type: "left", Color: "#A0AEC0", Style: 1},
		{Type: "right", Color: "#A0AEC0", Style: 1},
		{Type: "top", Color: "#A0AEC0", Style: 1},
		{Type: "bottom", Color: "#A0AEC0", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}

	defs := map[CellStyle]*excelize.Style{
		StyleHeader: {
			Font:      &excelize.Font{Bold: true},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
			Alignment: center,
			Border:    border,
		},
		StyleData: {
			Alignment: &excelize.Alignment{Horizontal: "center"},
			Border:    border,
		},
		StyleTotals: {
			Font:      &excelize.Font{Bold: true},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#FEFCBF"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
			Border:    border,
		},
		StyleAverages: {
			Font:      &excelize.Font{Italic: true},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#C6F6D5"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
			Border:    border,
		},
	}

	out := make(map[CellStyle]int, len(defs))
	for k, def := range defs {
		id, err := f.NewStyle(def)
		if err != nil {
			return nil, fmt.Errorf("new style: %w", err)
		}
		out[k] = id
	}
	return out, nil
}
