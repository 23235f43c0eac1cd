package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestApplyCoercesCounts(t *testing.T) {
	var r DinerRow
	for _, in := range []any{12, int64(12), 12.4, json.Number("12"), " 12 "} {
		if !r.Apply(KeyLunch, in) || r.Lunch != 12 {
			t.Fatalf("Apply(%v) -> lunch=%d", in, r.Lunch)
		}
	}
	if !r.Apply(KeyLunch, "") || r.Lunch != 0 {
		t.Fatalf("empty string should clear the count, got %d", r.Lunch)
	}
}

func TestApplyRejectsOutOfRangeCounts(t *testing.T) {
	r := DinerRow{Lunch: 5}
	for _, in := range []any{math.NaN(), math.Inf(1), 1e19, "1e19", "NaN", json.Number("9e18"), int64(math.MaxInt32) + 1} {
		if r.Apply(KeyLunch, in) {
			t.Fatalf("Apply(%v) accepted, lunch=%d", in, r.Lunch)
		}
	}
	if r.Lunch != 5 {
		t.Fatalf("rejected input changed the row: %d", r.Lunch)
	}
}

func TestNewAccount(t *testing.T) {
	a, err := NewAccount(700, " 새빛고등학교 ", "School")
	if err != nil {
		t.Fatalf("new account: %v", err)
	}
	if a.Name != "새빛고등학교" || a.Type != AccountTypeSchool {
		t.Fatalf("unexpected account: %+v", a)
	}
	if a, err := NewAccount(701, "기타", ""); err != nil || a.Type != AccountTypeOther {
		t.Fatalf("empty type: %+v %v", a, err)
	}
	for _, bad := range []struct {
		id        AccountID
		name, typ string
	}{{0, "x", "school"}, {1, " ", "school"}, {1, "x", "cafeteria"}} {
		if _, err := NewAccount(bad.id, bad.name, bad.typ); err == nil {
			t.Fatalf("NewAccount(%d, %q, %q) accepted", bad.id, bad.name, bad.typ)
		}
	}
}
