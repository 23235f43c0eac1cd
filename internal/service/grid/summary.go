package grid

import (
	"dinerboard/internal/model"
	"dinerboard/internal/service/calculator"
)

// Summarize 按可见数值列求合计与非零平均；계(合计列)本身不再汇总
func Summarize(rows []model.DinerRow, visible []string) model.SummaryRow {
	out := model.SummaryRow{
		Totals:   make(map[string]int),
		Averages: make(map[string]int),
	}
	for _, key := range visible {
		if key == model.KeyTotal || !model.IsNumericKey(key) {
			continue
		}
		sum, nonZero := 0, 0
		for i := range rows {
			v := rows[i].Int(key)
			sum += v
			if v > 0 {
				nonZero++
			}
		}
		out.Totals[key] = sum
		out.Averages[key] = calculator.RoundRatio(sum, nonZero)
	}
	return out
}
