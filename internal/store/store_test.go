package store

import (
	"errors"
	"path/filepath"
	"testing"

	"dinerboard/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "dinerboard.db")
	st, err := New(dbPath)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestAccounts(t *testing.T) {
	st := newTestStore(t)

	if _, err := st.GetAccount(1); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	for _, a := range []model.Account{
		{ID: 301, Name: "한빛산업", Type: model.AccountTypeIndustrial},
		{ID: 101, Name: "햇살요양원", Type: model.AccountTypeNursingHome},
		{ID: 900, Name: "기타", Type: "unknown"},
	} {
		if err := st.UpsertAccount(a); err != nil {
			t.Fatalf("upsert %d: %v", a.ID, err)
		}
	}
	if err := st.UpsertAccount(model.Account{ID: 101, Name: "햇살요양원 본관", Type: model.AccountTypeNursingHome}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := st.UpsertAccount(model.Account{ID: 5}); err == nil {
		t.Fatalf("expected error for empty name")
	}

	list, err := st.ListAccounts()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].ID != 101 || list[2].ID != 900 {
		t.Fatalf("unexpected order: %+v", list)
	}
	if list[0].Name != "햇살요양원 본관" {
		t.Fatalf("name not updated: %q", list[0].Name)
	}
	if list[2].Type != model.AccountTypeOther {
		t.Fatalf("unknown type should map to other, got %q", list[2].Type)
	}
}

func TestExtraColumns(t *testing.T) {
	st := newTestStore(t)
	if err := st.UpsertAccount(model.Account{ID: 500, Name: "한빛중학교", Type: model.AccountTypeSchool}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	cols := []model.ExtraDietColumn{
		{Name: "석식", PriceKey: model.KeyPrice3},
		{Name: "간식", PriceKey: model.KeyPrice1},
	}
	if err := st.ReplaceExtraColumns(500, cols); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, err := st.ListExtraColumns(500)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0] != cols[0] || got[1] != cols[1] {
		t.Fatalf("order not preserved: %+v", got)
	}

	dup := []model.ExtraDietColumn{
		{Name: "a", PriceKey: model.KeyPrice1},
		{Name: "b", PriceKey: model.KeyPrice1},
	}
	if err := st.ReplaceExtraColumns(500, dup); !errors.Is(err, ErrInvalidExtraColumns) {
		t.Fatalf("expected ErrInvalidExtraColumns, got %v", err)
	}
	if err := st.ReplaceExtraColumns(404, cols); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	// 校验失败不影响已有配置
	got, _ = st.ListExtraColumns(500)
	if len(got) != 2 {
		t.Fatalf("existing columns lost: %+v", got)
	}

	if err := st.ReplaceExtraColumns(500, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, _ = st.ListExtraColumns(500)
	if len(got) != 0 {
		t.Fatalf("expected no columns, got %+v", got)
	}
}

func TestSaveAndFetchDinerRows(t *testing.T) {
	st := newTestStore(t)

	rows := []model.DinerRow{
		{Date: "2025-03-02", Breakfast: 10, Lunch: 20, Price1: 3, Note: "행사", Total: 999},
		{Date: "2025-03-05", Lunch: 7},
	}
	if err := st.SaveDinerRows(101, 2025, 3, rows, 21); err != nil {
		t.Fatalf("save: %v", err)
	}

	recs, err := st.FetchPersistedRows(101, 2025, 3)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0][model.KeyDate] != "2025-03-02" {
		t.Fatalf("unexpected date: %v", recs[0][model.KeyDate])
	}
	if _, ok := recs[0][model.KeyTotal]; ok {
		t.Fatalf("total must not be persisted")
	}
	var back model.DinerRow
	for k, v := range recs[0] {
		back.Apply(k, v)
	}
	if back.Breakfast != 10 || back.Lunch != 20 || back.Price1 != 3 || back.Note != "행사" {
		t.Fatalf("round trip mismatch: %+v", back)
	}

	// 再次保存覆盖同一天
	if err := st.SaveDinerRows(101, 2025, 3, []model.DinerRow{{Date: "2025-03-05", Lunch: 8}}, 22); err != nil {
		t.Fatalf("resave: %v", err)
	}
	recs, _ = st.FetchPersistedRows(101, 2025, 3)
	if len(recs) != 2 {
		t.Fatalf("expected upsert, got %d records", len(recs))
	}
	days, err := st.GetWorkingDays(101, 2025, 3)
	if err != nil || days != 22 {
		t.Fatalf("working days = %d, %v", days, err)
	}

	other, _ := st.FetchPersistedRows(101, 2025, 4)
	if len(other) != 0 {
		t.Fatalf("expected no records for another month")
	}
	if days, _ := st.GetWorkingDays(101, 2025, 4); days != 0 {
		t.Fatalf("expected 0 working days, got %d", days)
	}
}

func TestSaveDinerRowsIsAtomic(t *testing.T) {
	st := newTestStore(t)

	rows := []model.DinerRow{
		{Date: "2025-03-02", Lunch: 1},
		{Date: "2025-04-01", Lunch: 2},
	}
	if err := st.SaveDinerRows(101, 2025, 3, rows, 20); err == nil {
		t.Fatalf("expected error for row outside month")
	}
	recs, _ := st.FetchPersistedRows(101, 2025, 3)
	if len(recs) != 0 {
		t.Fatalf("partial save leaked %d records", len(recs))
	}
	if days, _ := st.GetWorkingDays(101, 2025, 3); days != 0 {
		t.Fatalf("working days leaked: %d", days)
	}
}

func TestRecordedMonthsAndCurrentYearMonth(t *testing.T) {
	st := newTestStore(t)

	if _, _, err := st.GetCurrentYearMonth(); !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
	if err := st.SetCurrentYearMonth(2025, 3); err != nil {
		t.Fatalf("set ym: %v", err)
	}
	if err := st.SetCurrentYearMonth(2025, 13); err == nil {
		t.Fatalf("expected invalid month error")
	}
	y, m, err := st.GetCurrentYearMonth()
	if err != nil || y != 2025 || m != 3 {
		t.Fatalf("current ym = %d-%d, %v", y, m, err)
	}

	_ = st.SaveDinerRows(101, 2025, 3, []model.DinerRow{{Date: "2025-03-01"}, {Date: "2025-03-02"}}, 20)
	_ = st.SaveDinerRows(102, 2025, 3, []model.DinerRow{{Date: "2025-03-01"}}, 20)
	_ = st.SaveDinerRows(101, 2024, 12, nil, 18)

	months, err := st.ListRecordedMonths()
	if err != nil {
		t.Fatalf("list months: %v", err)
	}
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %+v", months)
	}
	if months[0].Year != 2025 || months[0].Accounts != 2 || months[0].Records != 3 {
		t.Fatalf("unexpected first month: %+v", months[0])
	}
	if months[1].Year != 2024 || months[1].Month != 12 || months[1].Records != 0 {
		t.Fatalf("unexpected second month: %+v", months[1])
	}
}
