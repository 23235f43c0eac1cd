package store

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dinerboard/internal/model"
)

const workDateLayout = "2006-01-02"

// FetchPersistedRows 读取账户某月已保存的记录（稀疏，日期为 work_date）
func (s *Store) FetchPersistedRows(accountID model.AccountID, year, month int) ([]model.RawRecord, error) {
	rows, err := s.db.Query(`
		SELECT work_date, payload FROM diner_records
		WHERE account_id = ? AND data_year = ? AND data_month = ?
		ORDER BY work_date
	`, accountID, year, month)
	if err != nil {
		return nil, fmt.Errorf("query diner records failed: %w", err)
	}
	defer rows.Close()

	var out []model.RawRecord
	for rows.Next() {
		var workDate, payload string
		if err := rows.Scan(&workDate, &payload); err != nil {
			return nil, fmt.Errorf("scan diner record failed: %w", err)
		}

		rec := model.RawRecord{}
		dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
		dec.UseNumber()
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode diner record %s failed: %w", workDate, err)
		}
		rec[model.KeyDate] = workDate
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diner records failed: %w", err)
	}
	return out, nil
}

// SaveDinerRows 在一个事务内保存变更行与当月근무일수；任一行失败则整体回滚
func (s *Store) SaveDinerRows(accountID model.AccountID, year, month int, rows []model.DinerRow, workingDays int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("invalid month: %d", month)
	}
	if workingDays < 0 {
		return fmt.Errorf("invalid working days: %d", workingDays)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO diner_records (account_id, work_date, data_year, data_month, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(account_id, work_date) DO UPDATE SET
			payload = excluded.payload,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("prepare diner record upsert failed: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		d, err := time.Parse(workDateLayout, r.Date)
		if err != nil {
			return fmt.Errorf("row %q: %w", r.Date, err)
		}
		if d.Year() != year || int(d.Month()) != month {
			return fmt.Errorf("row %s is outside %d-%02d", r.Date, year, month)
		}

		rec, err := model.RecordFromRow(r)
		if err != nil {
			return fmt.Errorf("encode row %s: %w", r.Date, err)
		}
		delete(rec, model.KeyDate)
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode row %s: %w", r.Date, err)
		}

		if _, err := stmt.Exec(accountID, r.Date, year, month, string(payload)); err != nil {
			return fmt.Errorf("save row %s failed: %w", r.Date, err)
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO account_month_settings (account_id, data_year, data_month, working_days)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(account_id, data_year, data_month) DO UPDATE SET
			working_days = excluded.working_days,
			updated_at = CURRENT_TIMESTAMP
	`, accountID, year, month, workingDays); err != nil {
		return fmt.Errorf("save working days failed: %w", err)
	}

	return tx.Commit()
}

// GetWorkingDays 当月근무일수；未设置时为 0
func (s *Store) GetWorkingDays(accountID model.AccountID, year, month int) (int, error) {
	var days int
	err := s.db.QueryRow(`
		SELECT working_days FROM account_month_settings
		WHERE account_id = ? AND data_year = ? AND data_month = ?
	`, accountID, year, month).Scan(&days)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("query working days failed: %w", err)
	}
	return days, nil
}
