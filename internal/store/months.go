package store

import "fmt"

// YearMonthStat 有数据的年月统计
type YearMonthStat struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	Accounts int `json:"accounts"`
	Records  int `json:"records"`
}

// ListRecordedMonths 列出存在식수记录或月度设置的年月（按年/月倒序）
func (s *Store) ListRecordedMonths() ([]YearMonthStat, error) {
	rows, err := s.db.Query(`
		WITH ym AS (
			SELECT DISTINCT data_year AS y, data_month AS m FROM diner_records
			UNION
			SELECT DISTINCT data_year AS y, data_month AS m FROM account_month_settings
		)
		SELECT
			ym.y,
			ym.m,
			(SELECT COUNT(DISTINCT account_id) FROM diner_records WHERE data_year = ym.y AND data_month = ym.m) AS accounts,
			(SELECT COUNT(1) FROM diner_records WHERE data_year = ym.y AND data_month = ym.m) AS records
		FROM ym
		ORDER BY ym.y DESC, ym.m DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query recorded months failed: %w", err)
	}
	defer rows.Close()

	var out []YearMonthStat
	for rows.Next() {
		var it YearMonthStat
		if err := rows.Scan(&it.Year, &it.Month, &it.Accounts, &it.Records); err != nil {
			return nil, fmt.Errorf("scan recorded months failed: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recorded months failed: %w", err)
	}
	return out, nil
}
