package sheet

import (
	"errors"
	"fmt"

	"dinerboard/internal/model"
	"dinerboard/internal/service/calculator"
	"dinerboard/internal/service/grid"
	"dinerboard/internal/service/layout"
	"dinerboard/internal/service/rangefill"
)

var (
	ErrDayOutOfRange = errors.New("day out of range")
	ErrReadOnlyField = errors.New("field is read-only")
	ErrInvalidField  = errors.New("unknown field or invalid value")
)

// Session 某账户某月的编辑会话：表格 + 基线快照 + 区域填充状态
type Session struct {
	Token       string
	Profile     model.AccountProfile
	Year        int
	Month       int
	Extras      []model.ExtraDietColumn
	Layout      model.LayoutDescriptor
	Rows        []model.DinerRow
	Baseline    []model.DinerRow
	WorkingDays int
	Selector    rangefill.Selector

	baselineWorkingDays int
	engine              *calculator.Engine
}

// Open 合成当月表格并记录基线快照
func Open(engine *calculator.Engine, profile model.AccountProfile, extras []model.ExtraDietColumn, persisted []model.RawRecord, year, month, workingDays int) *Session {
	if engine == nil {
		engine = calculator.Default()
	}
	rows := grid.NewSynthesizer(engine).Synthesize(persisted, year, month, profile.Type, extras, profile.ID)
	d := layout.ForProfile(profile, extras)

	return &Session{
		Profile:             profile,
		Year:                year,
		Month:               month,
		Extras:              extras,
		Layout:              d,
		Rows:                rows,
		Baseline:            grid.Clone(rows),
		WorkingDays:         workingDays,
		Selector:            rangefill.NewSelector(d.VisibleColumns, len(rows)),
		baselineWorkingDays: workingDays,
		engine:              engine,
	}
}

func (s *Session) recompute(r *model.DinerRow) {
	s.engine.Recompute(r, s.Profile.Type, s.Extras, s.Profile.ID)
}

// Edit 修改某天（1 起始）的单个字段并立即重算该行合计
func (s *Session) Edit(day int, key string, value any) error {
	if day < 1 || day > len(s.Rows) {
		return fmt.Errorf("%w: %d", ErrDayOutOfRange, day)
	}
	if key == model.KeyDate || key == model.KeyTotal {
		return fmt.Errorf("%w: %s", ErrReadOnlyField, key)
	}

	rows := grid.Clone(s.Rows)
	if !rows[day-1].Apply(key, value) {
		return fmt.Errorf("%w: %s", ErrInvalidField, key)
	}
	if v, ok := rows[day-1].Value(key); ok && v < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidField, key)
	}
	s.recompute(&rows[day-1])
	s.Rows = rows
	return nil
}

// Merge 把导入的记录覆盖到当前表格（只改会话，不保存）；返回覆盖的天数。
// 不属于本月或日期无法解析的记录忽略；负数人数按 0 处理。
func (s *Session) Merge(records []model.RawRecord) int {
	rows := grid.Clone(s.Rows)
	applied := 0
	for _, rec := range records {
		d, ok := grid.ParseDay(rec[model.KeyDate])
		if !ok || d.Year != s.Year || d.Month != s.Month || d.Day > len(rows) {
			continue
		}
		r := &rows[d.Day-1]
		for k, v := range rec {
			r.Apply(k, v)
			if n, ok := r.Value(k); ok && n < 0 {
				r.SetValue(k, 0)
			}
		}
		s.recompute(r)
		applied++
	}
	s.Rows = rows
	return applied
}

// PointerDown 区域填充：按下
func (s *Session) PointerDown(cell rangefill.Cell, modifier bool) {
	s.Selector = s.Selector.PointerDown(cell, modifier)
}

// PointerEnter 区域填充：经过
func (s *Session) PointerEnter(cell rangefill.Cell) {
	s.Selector = s.Selector.PointerEnter(cell)
}

// PointerUp 区域填充：松开
func (s *Session) PointerUp() {
	s.Selector = s.Selector.PointerUp()
}

// ConfirmFill 用输入值填充选区；输入无效时保持等待输入
func (s *Session) ConfirmFill(input string) error {
	rows, next, err := s.Selector.Confirm(s.Rows, input, s.recompute)
	s.Selector = next
	if err != nil {
		return err
	}
	s.Rows = rows
	return nil
}

// CancelFill 取消选区
func (s *Session) CancelFill() {
	s.Selector = s.Selector.Cancel()
}

// Summary 合计/平均行
func (s *Session) Summary() model.SummaryRow {
	return grid.Summarize(s.Rows, s.Layout.VisibleColumns)
}

// Changes 与基线不同的行
func (s *Session) Changes() []model.DinerRow {
	return grid.Changed(s.Baseline, s.Rows)
}

// Dirty 是否有未保存的修改
func (s *Session) Dirty() bool {
	return len(s.Changes()) > 0 || s.WorkingDays != s.baselineWorkingDays
}

// MarkPersisted 保存成功后把当前表格设为新的基线
func (s *Session) MarkPersisted() {
	s.Baseline = grid.Clone(s.Rows)
	s.baselineWorkingDays = s.WorkingDays
}

// MarkSaved 只把已写入的行与工作日数并入基线；保存期间的新修改仍算未保存
func (s *Session) MarkSaved(saved []model.DinerRow, workingDays int) {
	idx := make(map[string]int, len(s.Baseline))
	for i, r := range s.Baseline {
		idx[r.Date] = i
	}
	for _, r := range saved {
		if i, ok := idx[r.Date]; ok {
			s.Baseline[i] = r
		}
	}
	s.baselineWorkingDays = workingDays
}

// View 会话的只读视图（API 输出）
type View struct {
	Token       string                    `json:"token"`
	Profile     model.AccountProfile      `json:"account"`
	Year        int                       `json:"year"`
	Month       int                       `json:"month"`
	WorkingDays int                       `json:"workingDays"`
	Layout      model.LayoutDescriptor    `json:"layout"`
	Rows        []model.DinerRow          `json:"rows"`
	Summary     model.SummaryRow          `json:"summary"`
	Selection   *rangefill.SelectionRange `json:"selection,omitempty"`
	Phase       string                    `json:"phase"`
	Changed     int                       `json:"changedRows"`
	Dirty       bool                      `json:"dirty"`
	Formula     string                    `json:"formula"` // 账户专用합계公式，没有时为 "none"
}

// View 生成视图
func (s *Session) View() View {
	v := View{
		Token:       s.Token,
		Profile:     s.Profile,
		Year:        s.Year,
		Month:       s.Month,
		WorkingDays: s.WorkingDays,
		Layout:      s.Layout,
		Rows:        grid.Clone(s.Rows),
		Summary:     s.Summary(),
		Phase:       s.Selector.Phase().String(),
		Changed:     len(s.Changes()),
		Dirty:       s.Dirty(),
		Formula:     calculator.OverrideName(s.Profile.ID),
	}
	if r, ok := s.Selector.Range(); ok {
		v.Selection = &r
	}
	return v
}
