package store

import (
	"errors"
	"fmt"
	"strings"

	"dinerboard/internal/model"
)

// ErrInvalidExtraColumns 额外饮食列配置不合法
var ErrInvalidExtraColumns = errors.New("invalid extra diet columns")

// ListExtraColumns 账户的额外饮食列（按显示顺序）
func (s *Store) ListExtraColumns(accountID model.AccountID) ([]model.ExtraDietColumn, error) {
	rows, err := s.db.Query(`
		SELECT name, price_key FROM extra_diet_columns
		WHERE account_id = ?
		ORDER BY position
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("query extra columns failed: %w", err)
	}
	defer rows.Close()

	out := make([]model.ExtraDietColumn, 0, model.MaxExtraDietColumns)
	for rows.Next() {
		var c model.ExtraDietColumn
		if err := rows.Scan(&c.Name, &c.PriceKey); err != nil {
			return nil, fmt.Errorf("scan extra column failed: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate extra columns failed: %w", err)
	}
	return out, nil
}

// ReplaceExtraColumns 整体替换账户的额外饮食列
func (s *Store) ReplaceExtraColumns(accountID model.AccountID, cols []model.ExtraDietColumn) error {
	if errs := model.ValidateExtraColumns(cols); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidExtraColumns, strings.Join(errs, "; "))
	}
	if _, err := s.GetAccount(accountID); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM extra_diet_columns WHERE account_id = ?`, accountID); err != nil {
		return fmt.Errorf("clear extra columns failed: %w", err)
	}
	for i, c := range cols {
		if _, err := tx.Exec(`
			INSERT INTO extra_diet_columns (account_id, position, name, price_key)
			VALUES (?, ?, ?, ?)
		`, accountID, i, strings.TrimSpace(c.Name), c.PriceKey); err != nil {
			return fmt.Errorf("insert extra column %d failed: %w", i+1, err)
		}
	}
	return tx.Commit()
}
