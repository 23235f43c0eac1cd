package excel_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinerboard/internal/model"
	"dinerboard/internal/service/excel"
	"dinerboard/internal/service/grid"
	"dinerboard/internal/service/layout"
)

func floorSheet(t *testing.T) (model.LayoutDescriptor, []model.DinerRow, model.SummaryRow) {
	t.Helper()

	d := layout.Build(102, false, nil, model.AccountTypeNursingHome)
	rows := grid.Synthesize([]model.RawRecord{
		{"date": "2025-04-01", "breakfast": 10, "lunch": 20, "dinner": 30, "breakfast2": 4, "note": "점검"},
		{"date": "2025-04-02", "breakfast": 12},
	}, 2025, 4, model.AccountTypeNursingHome, nil, 102)
	return d, rows, grid.Summarize(rows, d.VisibleColumns)
}

func TestMirrorHeaderGeometry(t *testing.T) {
	d, rows, summary := floorSheet(t)
	table := excel.Mirror(d, rows, summary)

	assert.Equal(t, 11, table.Width)
	assert.Equal(t, 2, table.HeaderRows)
	assert.Equal(t, 2+30+2, table.Rows)
	assert.Equal(t, []excel.Merge{
		{Top: 0, Left: 0, Bottom: 1, Right: 0},
		{Top: 0, Left: 1, Bottom: 0, Right: 4},
		{Top: 0, Left: 5, Bottom: 0, Right: 8},
		{Top: 0, Left: 9, Bottom: 1, Right: 9},
		{Top: 0, Left: 10, Bottom: 1, Right: 10},
	}, table.Merges)

	// 第二行表头从 B 列开始，被 구분/계/비고 占用的格不重复写
	c, ok := table.At(1, 1)
	require.True(t, ok)
	assert.Equal(t, "조식", c.Value)
	_, ok = table.At(1, 0)
	assert.False(t, ok)
	_, ok = table.At(1, 9)
	assert.False(t, ok)

	c, _ = table.At(2, 0)
	assert.Equal(t, "2025-04-01", c.Value)
	c, _ = table.At(2, 5)
	assert.Equal(t, 4, c.Value)
	c, _ = table.At(2, 9)
	assert.Equal(t, rows[0].Total, c.Value)
	c, _ = table.At(2, 10)
	assert.Equal(t, "점검", c.Value)

	totals, _ := table.At(32, 0)
	assert.Equal(t, excel.LabelTotals, totals.Value)
	assert.Equal(t, excel.StyleTotals, totals.Style)
	c, _ = table.At(32, 1)
	assert.Equal(t, 22, c.Value)
	c, _ = table.At(32, 9)
	assert.Equal(t, "", c.Value, "grand total column is not summed again")

	avg, _ := table.At(33, 1)
	assert.Equal(t, 11, avg.Value)
	assert.Equal(t, excel.StyleAverages, avg.Style)
}

func TestMirrorColumnOrderMatchesLayout(t *testing.T) {
	extras := []model.ExtraDietColumn{{Name: "특식", PriceKey: model.KeyPrice1}}
	d := layout.Build(900, true, extras, model.AccountTypeWelfare)
	rows := grid.Synthesize(nil, 2025, 2, model.AccountTypeWelfare, extras, 900)
	table := excel.Mirror(d, rows, grid.Summarize(rows, d.VisibleColumns))

	assert.Empty(t, table.Merges)
	for i, hc := range d.HeaderRows[0] {
		c, ok := table.At(0, i)
		require.True(t, ok)
		assert.Equal(t, hc.Label, c.Value)
		assert.Equal(t, excel.StyleHeader, c.Style)
	}
	assert.Equal(t, 1+28+2, table.Rows)
}

func TestExportWritesMergedHeader(t *testing.T) {
	d, rows, summary := floorSheet(t)

	f, err := excel.NewExporter("", 0).Export(excel.SheetExport{
		Profile:     model.AccountProfile{ID: 102, Name: "행복요양원", Type: model.AccountTypeNursingHome},
		Year:        2025,
		Month:       4,
		WorkingDays: 22,
		Layout:      d,
		Rows:        rows,
		Summary:     summary,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, []string{excel.DefaultSheetName, "정보"}, f.GetSheetList())

	merges, err := f.GetMergeCells(excel.DefaultSheetName)
	require.NoError(t, err)
	var refs []string
	for _, m := range merges {
		refs = append(refs, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	sort.Strings(refs)
	assert.Equal(t, []string{"A1:A2", "B1:E1", "F1:I1", "J1:J2", "K1:K2"}, refs)

	got, err := f.GetCellValue(excel.DefaultSheetName, "B3")
	require.NoError(t, err)
	assert.Equal(t, "10", got)

	got, err = f.GetCellValue(excel.DefaultSheetName, "A33")
	require.NoError(t, err)
	assert.Equal(t, excel.LabelTotals, got)

	got, err = f.GetCellValue("정보", "B5")
	require.NoError(t, err)
	assert.Equal(t, "22", got)
}

func TestExportReportsProgress(t *testing.T) {
	d, rows, summary := floorSheet(t)

	var percents []int
	f, err := excel.NewExporter("", 0).ExportWithProgress(excel.SheetExport{
		Profile: model.AccountProfile{ID: 102}, Year: 2025, Month: 4,
		Layout: d, Rows: rows, Summary: summary,
	}, func(p excel.ProgressEvent) {
		percents = append(percents, p.Percent)
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, []int{10, 30, 70, 90}, percents)
}

func TestExportRejectsBrokenLayout(t *testing.T) {
	_, err := excel.NewExporter("", 0).Export(excel.SheetExport{
		Layout: model.LayoutDescriptor{
			HeaderRows:     [][]model.HeaderCell{{{Label: "구분"}}},
			VisibleColumns: []string{model.KeyLunch},
		},
	})
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "diner-102-2025-04.xlsx", excel.FileName(102, 2025, 4))
}
