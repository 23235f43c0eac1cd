package rangefill

import (
	"errors"
	"strconv"
	"strings"

	"dinerboard/internal/model"
	"dinerboard/internal/service/calculator"
	"dinerboard/internal/service/grid"
)

var (
	// ErrInvalidValue 输入为空或不是非负数字，需重新输入
	ErrInvalidValue = errors.New("invalid fill value")
	// ErrNotPrompting 当前没有等待输入的选区
	ErrNotPrompting = errors.New("no selection awaiting a value")
)

// Phase 选区状态
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSelecting
	PhasePrompting
)

func (p Phase) String() string {
	switch p {
	case PhaseSelecting:
		return "selecting"
	case PhasePrompting:
		return "prompting"
	}
	return "idle"
}

// Cell 表格坐标：Col 0 为日期列，Col i 对应 visibleColumns[i-1]
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SelectionRange 规范化后的矩形选区（闭区间）
type SelectionRange struct {
	StartRow int `json:"startRow"`
	EndRow   int `json:"endRow"`
	StartCol int `json:"startCol"`
	EndCol   int `json:"endCol"`
}

// Cells 选区内单元格数量
func (r SelectionRange) Cells() int {
	return (r.EndRow - r.StartRow + 1) * (r.EndCol - r.StartCol + 1)
}

// Selector 区域批量填充的状态机（值类型：每次迁移返回新值）
//
//	idle --PointerDown(modifier)--> selecting --PointerEnter--> selecting
//	selecting --PointerUp--> prompting --Confirm/Cancel--> idle
type Selector struct {
	phase   Phase
	anchor  Cell
	current Cell
	columns []string
	rows    int
}

// NewSelector 基于可见列与行数创建
func NewSelector(visible []string, rowCount int) Selector {
	return Selector{columns: visible, rows: rowCount}
}

// Phase 当前状态
func (s Selector) Phase() Phase {
	return s.phase
}

// Eligible 单元格是否可参与批量填充：数值列且可编辑（排除日期、계、특이여부、文本列）
func (s Selector) Eligible(c Cell) bool {
	if c.Row < 0 || c.Row >= s.rows {
		return false
	}
	key, ok := s.columnKey(c.Col)
	return ok && model.IsEditableNumericKey(key)
}

func (s Selector) columnKey(col int) (string, bool) {
	if col < 1 || col > len(s.columns) {
		return "", false
	}
	return s.columns[col-1], true
}

// PointerDown 带修饰键按下：记录锚点，进入 selecting
func (s Selector) PointerDown(c Cell, modifier bool) Selector {
	if s.phase != PhaseIdle || !modifier || !s.Eligible(c) {
		return s
	}
	s.phase = PhaseSelecting
	s.anchor = c
	s.current = c
	return s
}

// PointerEnter 拖动经过其他可填充单元格：扩展选区
func (s Selector) PointerEnter(c Cell) Selector {
	if s.phase != PhaseSelecting || !s.Eligible(c) {
		return s
	}
	s.current = c
	return s
}

// PointerUp 松开：结束拖动，等待输入（一次性，仅在 selecting 时生效）
func (s Selector) PointerUp() Selector {
	if s.phase != PhaseSelecting {
		return s
	}
	s.phase = PhasePrompting
	return s
}

// Range 读取时才规范化 min/max，锚点与当前点可以任意先后
func (s Selector) Range() (SelectionRange, bool) {
	if s.phase == PhaseIdle {
		return SelectionRange{}, false
	}
	return SelectionRange{
		StartRow: min(s.anchor.Row, s.current.Row),
		EndRow:   max(s.anchor.Row, s.current.Row),
		StartCol: min(s.anchor.Col, s.current.Col),
		EndCol:   max(s.anchor.Col, s.current.Col),
	}, true
}

// Cancel 取消：清空选区，不修改数据
func (s Selector) Cancel() Selector {
	return NewSelector(s.columns, s.rows)
}

// Confirm 应用输入值到选区内所有可编辑数值单元格，并重算受影响行的合计。
// 输入无效时保持 prompting 并返回 ErrInvalidValue，rows 原样返回。
func (s Selector) Confirm(rows []model.DinerRow, input string, recompute func(*model.DinerRow)) ([]model.DinerRow, Selector, error) {
	if s.phase != PhasePrompting {
		return rows, s, ErrNotPrompting
	}
	value, err := ParseValue(input)
	if err != nil {
		return rows, s, err
	}
	r, _ := s.Range()
	return Apply(rows, r, s.columns, value, recompute), s.Cancel(), nil
}

// Apply 把 value 写入选区内可编辑的数值单元格；返回新切片
func Apply(rows []model.DinerRow, r SelectionRange, visible []string, value int, recompute func(*model.DinerRow)) []model.DinerRow {
	out := grid.Clone(rows)
	for ri := max(r.StartRow, 0); ri <= r.EndRow && ri < len(out); ri++ {
		touched := false
		for ci := max(r.StartCol, 1); ci <= r.EndCol && ci <= len(visible); ci++ {
			key := visible[ci-1]
			if !model.IsEditableNumericKey(key) {
				continue
			}
			out[ri].SetValue(key, value)
			touched = true
		}
		if touched && recompute != nil {
			recompute(&out[ri])
		}
	}
	return out
}

// ParseValue 校验输入：非空、数字、非负；小数四舍五入为整数
func ParseValue(input string) (int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, ErrInvalidValue
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidValue
	}
	v, ok := calculator.CountFromFloat(f)
	if !ok {
		return 0, ErrInvalidValue
	}
	return v, nil
}
