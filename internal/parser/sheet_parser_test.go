package parser

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"dinerboard/internal/model"
	"dinerboard/internal/service/excel"
	"dinerboard/internal/service/grid"
	"dinerboard/internal/service/layout"
)

func exportedWorkbook(t *testing.T, d model.LayoutDescriptor, rows []model.DinerRow) *excelize.File {
	t.Helper()
	f, err := excel.NewExporter("", 0).Export(excel.SheetExport{
		Profile:     model.AccountProfile{ID: 102, Name: "햇살요양원", Type: model.AccountTypeNursingHome},
		Year:        2025,
		Month:       3,
		WorkingDays: 20,
		Layout:      d,
		Rows:        rows,
		Summary:     grid.Summarize(rows, d.VisibleColumns),
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestParseExportedSheet(t *testing.T) {
	d := layout.Build(102, false, nil, model.AccountTypeNursingHome)
	rows := grid.Synthesize([]model.RawRecord{
		{"date": "2025-03-01", "breakfast": 10, "lunch": 20, "dinner": 30, "breakfast2": 5, "note": "행사"},
		{"date": "2025-03-31", "ceremony2": 3},
	}, 2025, 3, model.AccountTypeNursingHome, nil, 102)

	f := exportedWorkbook(t, d, rows)
	result, err := NewSheetParser(f, "").ParseSheet(d)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(result.Records) != 31 {
		t.Fatalf("expected 31 records, got %d", len(result.Records))
	}
	if len(result.Issues) != 0 {
		t.Fatalf("unexpected issues: %+v", result.Issues)
	}
	if result.Year != 2025 || result.Month != 3 {
		t.Fatalf("info year/month = %d-%d", result.Year, result.Month)
	}
	if _, ok := result.Records[0][model.KeyTotal]; ok {
		t.Fatalf("total column must not be imported")
	}

	back := grid.Synthesize(result.Records, 2025, 3, model.AccountTypeNursingHome, nil, 102)
	if changed := grid.Changed(rows, back); len(changed) != 0 {
		t.Fatalf("round trip changed %d rows, first: %+v", len(changed), changed[0])
	}
}

func TestParseReportsBadCells(t *testing.T) {
	d := layout.Build(900, false, nil, model.AccountTypeHospital)
	rows := grid.Synthesize(nil, 2025, 3, model.AccountTypeHospital, nil, 900)
	f := exportedWorkbook(t, d, rows)

	// 单行表头：第 1 天在第 2 行，C 列为 중식
	if err := f.SetCellValue(excel.DefaultSheetName, "C3", "1,200"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := f.SetCellValue(excel.DefaultSheetName, "C4", "many"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := f.SetCellValue(excel.DefaultSheetName, "A5", "someday"); err != nil {
		t.Fatalf("set: %v", err)
	}

	result, err := NewSheetParser(f, excel.DefaultSheetName).ParseSheet(d)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(result.Records) != 30 {
		t.Fatalf("expected 30 records, got %d", len(result.Records))
	}
	if len(result.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %+v", result.Issues)
	}
	if result.Issues[0].RowNo != 4 || result.Issues[0].Key != model.KeyLunch {
		t.Fatalf("unexpected first issue: %+v", result.Issues[0])
	}
	if result.Issues[1].RowNo != 5 {
		t.Fatalf("unexpected second issue: %+v", result.Issues[1])
	}
	if result.Records[1][model.KeyLunch] != 1200 {
		t.Fatalf("thousands separator not handled: %v", result.Records[1][model.KeyLunch])
	}
}

func TestParseCountRejectsOutOfRange(t *testing.T) {
	for _, in := range []string{"NaN", "nan", "Inf", "-Inf", "+Inf", "1e19", "2147483648", "-1", "abc"} {
		if n, ok := parseCount(in); ok {
			t.Fatalf("parseCount(%q) = %d, want rejected", in, n)
		}
	}
	for in, want := range map[string]int{"": 0, " 7 ": 7, "2.5": 3, "2,147,483,647": 2147483647} {
		n, ok := parseCount(in)
		if !ok || n != want {
			t.Fatalf("parseCount(%q) = %d, %v; want %d", in, n, ok, want)
		}
	}
}

func TestParseReportsNonFiniteAndHugeCells(t *testing.T) {
	d := layout.Build(900, false, nil, model.AccountTypeHospital)
	rows := grid.Synthesize(nil, 2025, 3, model.AccountTypeHospital, nil, 900)
	f := exportedWorkbook(t, d, rows)

	for cell, v := range map[string]string{"C2": "NaN", "C3": "Inf", "C4": "1e19", "B5": "-3"} {
		if err := f.SetCellValue(excel.DefaultSheetName, cell, v); err != nil {
			t.Fatalf("set %s: %v", cell, err)
		}
	}

	result, err := NewSheetParser(f, "").ParseSheet(d)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(result.Records) != 31 {
		t.Fatalf("expected 31 records, got %d", len(result.Records))
	}
	if len(result.Issues) != 4 {
		t.Fatalf("expected 4 issues, got %+v", result.Issues)
	}
	for i, want := range []struct {
		row int
		key string
	}{{2, model.KeyLunch}, {3, model.KeyLunch}, {4, model.KeyLunch}, {5, model.KeyBreakfast}} {
		got := result.Issues[i]
		if got.RowNo != want.row || got.Key != want.key {
			t.Fatalf("issue %d = %+v, want row %d key %s", i, got, want.row, want.key)
		}
	}
	if _, ok := result.Records[0][model.KeyLunch]; ok {
		t.Fatalf("rejected cell must not be imported: %v", result.Records[0])
	}
}

func TestParseRejectsOtherLayout(t *testing.T) {
	special := layout.Build(102, false, nil, model.AccountTypeNursingHome)
	f := exportedWorkbook(t, special, grid.Synthesize(nil, 2025, 3, model.AccountTypeNursingHome, nil, 102))

	generic := layout.Build(900, false, nil, model.AccountTypeNursingHome)
	_, err := NewSheetParser(f, "").ParseSheet(generic)
	if !errors.Is(err, ErrLayoutMismatch) {
		t.Fatalf("expected ErrLayoutMismatch, got %v", err)
	}
}

func TestExtractYearMonth(t *testing.T) {
	cases := []struct {
		in    string
		year  int
		month int
		found bool
	}{
		{"2025-03", 2025, 3, true},
		{"2025.12", 2025, 12, true},
		{"2025년 3월", 2025, 3, true},
		{"식수_2024년11월", 2024, 11, true},
		{"2025-13", 0, 0, false},
		{"식수", 0, 0, false},
	}
	for _, tc := range cases {
		y, m, ok := ExtractYearMonth(tc.in)
		if y != tc.year || m != tc.month || ok != tc.found {
			t.Fatalf("ExtractYearMonth(%q) = %d %d %v", tc.in, y, m, ok)
		}
	}
}
