package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"dinerboard/internal/model"
	"dinerboard/internal/store"
)

func TestSetAndListAccounts(t *testing.T) {
	st, err := store.New(filepath.Join(t.TempDir(), "dinerboard.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	defer st.Close()

	var out bytes.Buffer
	if err := setAccount(st, 301, "한빛산업", "industrial", &out); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := setAccount(st, 102, "햇살요양원", "nursing_home", &out); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := setAccount(st, 103, "x", "cafeteria", &out); err == nil {
		t.Fatalf("expected unknown type to be rejected")
	}

	a, err := st.GetAccount(301)
	if err != nil || a.Type != model.AccountTypeIndustrial {
		t.Fatalf("account 301: %+v %v", a, err)
	}

	out.Reset()
	if err := listAccounts(st, &out); err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "102\t햇살요양원\tnursing_home") {
		t.Fatalf("unexpected list output:\n%s", out.String())
	}
}
