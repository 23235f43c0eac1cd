package grid

import "dinerboard/internal/model"

// Changed 返回与基线快照逐字段不同的行（按日期对齐）
func Changed(baseline, current []model.DinerRow) []model.DinerRow {
	base := make(map[string]model.DinerRow, len(baseline))
	for _, r := range baseline {
		base[r.Date] = r
	}

	var out []model.DinerRow
	for _, r := range current {
		if b, ok := base[r.Date]; ok && b == r {
			continue
		}
		out = append(out, r)
	}
	return out
}
