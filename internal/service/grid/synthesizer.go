package grid

import (
	"dinerboard/internal/model"
	"dinerboard/internal/service/calculator"
)

// Synthesizer 把稀疏的持久化记录合成为“每天一行”的月度表格
type Synthesizer struct {
	engine *calculator.Engine
}

// NewSynthesizer 创建合成器
func NewSynthesizer(engine *calculator.Engine) *Synthesizer {
	if engine == nil {
		engine = calculator.Default()
	}
	return &Synthesizer{engine: engine}
}

// Synthesize 使用默认计算引擎合成
func Synthesize(persisted []model.RawRecord, year, month int, accountType model.AccountType, extras []model.ExtraDietColumn, accountID model.AccountID) []model.DinerRow {
	return NewSynthesizer(nil).Synthesize(persisted, year, month, accountType, extras, accountID)
}

// Synthesize 生成当月每一天的行：零值模板 + 同一日历日的持久化记录浅合并 + 重算合计。
// 日期缺失或无法解析的记录直接忽略。
func (s *Synthesizer) Synthesize(persisted []model.RawRecord, year, month int, accountType model.AccountType, extras []model.ExtraDietColumn, accountID model.AccountID) []model.DinerRow {
	if month < 1 || month > 12 {
		return nil
	}

	byDay := make(map[Day]model.RawRecord, len(persisted))
	for _, rec := range persisted {
		d, ok := ParseDay(rec[model.KeyDate])
		if !ok || d.Year != year || d.Month != month {
			continue
		}
		if _, dup := byDay[d]; dup {
			continue
		}
		byDay[d] = rec
	}

	n := DaysIn(year, month)
	rows := make([]model.DinerRow, 0, n)
	for day := 1; day <= n; day++ {
		d := Day{Year: year, Month: month, Day: day}
		row := template(d, extras)
		if rec, ok := byDay[d]; ok {
			for k, v := range rec {
				row.Apply(k, v)
			}
		}
		s.engine.Recompute(&row, accountType, extras, accountID)
		rows = append(rows, row)
	}
	return rows
}

// template 零值模板行；额外饮食列键显式置 0
func template(d Day, extras []model.ExtraDietColumn) model.DinerRow {
	row := model.DinerRow{Date: d.String()}
	for _, c := range extras {
		row.SetValue(c.PriceKey, 0)
	}
	return row
}

// Clone 拷贝行切片（编辑产生新切片，不共享底层数组）
func Clone(rows []model.DinerRow) []model.DinerRow {
	if rows == nil {
		return nil
	}
	out := make([]model.DinerRow, len(rows))
	copy(out, rows)
	return out
}
