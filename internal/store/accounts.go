package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"dinerboard/internal/model"
)

// ErrAccountNotFound 账户不存在
var ErrAccountNotFound = errors.New("account not found")

// ListAccounts 账户列表（按 id 排序）
func (s *Store) ListAccounts() ([]model.Account, error) {
	rows, err := s.db.Query(`SELECT id, name, account_type FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query accounts failed: %w", err)
	}
	defer rows.Close()

	var out []model.Account
	for rows.Next() {
		var (
			a   model.Account
			typ string
		)
		if err := rows.Scan(&a.ID, &a.Name, &typ); err != nil {
			return nil, fmt.Errorf("scan account failed: %w", err)
		}
		a.Type = model.ParseAccountType(typ)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts failed: %w", err)
	}
	return out, nil
}

// GetAccount 按 id 查询账户
func (s *Store) GetAccount(id model.AccountID) (model.Account, error) {
	var (
		a   model.Account
		typ string
	)
	err := s.db.QueryRow(`SELECT id, name, account_type FROM accounts WHERE id = ?`, id).Scan(&a.ID, &a.Name, &typ)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, fmt.Errorf("%w: %d", ErrAccountNotFound, id)
		}
		return model.Account{}, fmt.Errorf("query account failed: %w", err)
	}
	a.Type = model.ParseAccountType(typ)
	return a, nil
}

// UpsertAccount 新增或更新账户
func (s *Store) UpsertAccount(a model.Account) error {
	if a.ID <= 0 {
		return fmt.Errorf("invalid account id: %d", a.ID)
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("account %d: empty name", a.ID)
	}
	_, err := s.db.Exec(`
		INSERT INTO accounts (id, name, account_type) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			account_type = excluded.account_type,
			updated_at = CURRENT_TIMESTAMP
	`, a.ID, a.Name, string(model.ParseAccountType(string(a.Type))))
	if err != nil {
		return fmt.Errorf("upsert account failed: %w", err)
	}
	return nil
}
