package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"dinerboard/internal/model"
	"dinerboard/internal/service/sheet"
)

func testSession() *sheet.Session {
	profile := model.AccountProfile{ID: 900, Name: "행복요양원", Type: model.AccountTypeNursingHome}
	return sheet.Open(nil, profile, nil, nil, 2025, 6, 0)
}

func testCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

func TestRunFillRepromptsUntilValid(t *testing.T) {
	s := testSession()
	var out bytes.Buffer

	changed, err := runFill(testCommand(), s, fillRange{fromDay: 1, toDay: 3, fromCol: "breakfast", toCol: "dinner"},
		strings.NewReader("abc\n-1\n7\n"), &out)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if !changed {
		t.Fatalf("expected changes")
	}
	if strings.Count(out.String(), "숫자를 입력하세요") != 2 {
		t.Fatalf("expected two re-prompts, got output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "9개 셀 선택") {
		t.Fatalf("selection size not reported:\n%s", out.String())
	}
	for i := 0; i < 3; i++ {
		if s.Rows[i].Breakfast != 7 || s.Rows[i].Dinner != 7 || s.Rows[i].Total != 7 {
			t.Fatalf("row %d not filled: %+v", i, s.Rows[i])
		}
	}
	if len(s.Changes()) != 3 {
		t.Fatalf("expected 3 changed rows, got %d", len(s.Changes()))
	}
}

func TestRunFillCancel(t *testing.T) {
	s := testSession()
	var out bytes.Buffer

	changed, err := runFill(testCommand(), s, fillRange{fromDay: 2, fromCol: "lunch"}, strings.NewReader("q\n"), &out)
	if err != nil || changed {
		t.Fatalf("cancel should not change anything: changed=%v err=%v", changed, err)
	}
	if len(s.Changes()) != 0 {
		t.Fatalf("rows modified after cancel")
	}
}

func TestRunFillRejectsIneligibleCells(t *testing.T) {
	s := testSession()

	if _, err := runFill(testCommand(), s, fillRange{fromDay: 1, fromCol: "total"}, strings.NewReader("1\n"), &bytes.Buffer{}); err == nil {
		t.Fatalf("total column must not be fillable")
	}
	s.CancelFill()
	if _, err := runFill(testCommand(), s, fillRange{fromDay: 1, fromCol: "price3"}, strings.NewReader("1\n"), &bytes.Buffer{}); err == nil {
		t.Fatalf("column outside the layout must be rejected")
	}
	if _, err := runFill(testCommand(), s, fillRange{fromDay: 31, fromCol: "lunch"}, strings.NewReader("1\n"), &bytes.Buffer{}); err == nil {
		t.Fatalf("day 31 does not exist in June")
	}
}

func TestMonthFlagsResolve(t *testing.T) {
	current := func() (int, int, error) { return 2025, 7, nil }

	f := monthFlags{account: 101}
	id, y, m, err := f.resolve(current)
	if err != nil || id != 101 || y != 2025 || m != 7 {
		t.Fatalf("resolve = %d %d-%d, %v", id, y, m, err)
	}

	f = monthFlags{account: 101, year: 2024, month: 13}
	if _, _, _, err := f.resolve(current); err == nil {
		t.Fatalf("expected invalid month error")
	}
	f = monthFlags{}
	if _, _, _, err := f.resolve(current); err == nil {
		t.Fatalf("expected invalid account error")
	}
}
