package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// 数据列键
const (
	KeyDate = "date"

	KeyBreakfast = "breakfast"
	KeyLunch     = "lunch"
	KeyDinner    = "dinner"
	KeyCeremony  = "ceremony" // 경관식

	KeyBreakfast2 = "breakfast2"
	KeyLunch2     = "lunch2"
	KeyDinner2    = "dinner2"
	KeyCeremony2  = "ceremony2"

	KeyDaycareBreakfast = "daycare_breakfast"
	KeyDaycareLunch     = "daycare_lunch"
	KeyDaycareDinner    = "daycare_dinner"

	KeyDaycareEmployeeBreakfast = "daycare_employee_breakfast"
	KeyDaycareEmployeeLunch     = "daycare_employee_lunch"
	KeyDaycareEmployeeDinner    = "daycare_employee_dinner"

	KeyEmployee          = "employee"
	KeyEmployeeBreakfast = "employee_breakfast"
	KeyEmployeeLunch     = "employee_lunch"
	KeyEmployeeDinner    = "employee_dinner"

	KeyPrice1 = "price1"
	KeyPrice2 = "price2"
	KeyPrice3 = "price3"
	KeyPrice4 = "price4"
	KeyPrice5 = "price5"

	KeySpecialYN       = "special_yn"
	KeyNote            = "note"
	KeyBreakfastCancel = "breakfast_cancel"
	KeyLunchCancel     = "lunch_cancel"
	KeyDinnerCancel    = "dinner_cancel"

	KeyTotal = "total"
)

// MaxCount 单元格人数上限
const MaxCount = math.MaxInt32

// PriceKeys 额外饮食列可用的数据键
var PriceKeys = []string{KeyPrice1, KeyPrice2, KeyPrice3, KeyPrice4, KeyPrice5}

// IsPriceKey 是否为额外饮食列键
func IsPriceKey(key string) bool {
	for _, k := range PriceKeys {
		if k == key {
			return true
		}
	}
	return false
}

// DinerRow 某账户某一天的식수记录
//
// 全部字段均为可比较的值类型：按值拷贝即深拷贝，== 可直接用于变更检测。
type DinerRow struct {
	Date string `json:"date"` // 2006-01-02

	Breakfast int `json:"breakfast"`
	Lunch     int `json:"lunch"`
	Dinner    int `json:"dinner"`
	Ceremony  int `json:"ceremony"`

	Breakfast2 int `json:"breakfast2"`
	Lunch2     int `json:"lunch2"`
	Dinner2    int `json:"dinner2"`
	Ceremony2  int `json:"ceremony2"`

	DaycareBreakfast int `json:"daycare_breakfast"`
	DaycareLunch     int `json:"daycare_lunch"`
	DaycareDinner    int `json:"daycare_dinner"`

	DaycareEmployeeBreakfast int `json:"daycare_employee_breakfast"`
	DaycareEmployeeLunch     int `json:"daycare_employee_lunch"`
	DaycareEmployeeDinner    int `json:"daycare_employee_dinner"`

	Employee          int `json:"employee"`
	EmployeeBreakfast int `json:"employee_breakfast"`
	EmployeeLunch     int `json:"employee_lunch"`
	EmployeeDinner    int `json:"employee_dinner"`

	Price1 int `json:"price1"`
	Price2 int `json:"price2"`
	Price3 int `json:"price3"`
	Price4 int `json:"price4"`
	Price5 int `json:"price5"`

	SpecialYN       string `json:"special_yn"`
	Note            string `json:"note"`
	BreakfastCancel string `json:"breakfast_cancel"`
	LunchCancel     string `json:"lunch_cancel"`
	DinnerCancel    string `json:"dinner_cancel"`

	Total int `json:"total"`
}

func (r *DinerRow) intField(key string) *int {
	switch key {
	case KeyBreakfast:
		return &r.Breakfast
	case KeyLunch:
		return &r.Lunch
	case KeyDinner:
		return &r.Dinner
	case KeyCeremony:
		return &r.Ceremony
	case KeyBreakfast2:
		return &r.Breakfast2
	case KeyLunch2:
		return &r.Lunch2
	case KeyDinner2:
		return &r.Dinner2
	case KeyCeremony2:
		return &r.Ceremony2
	case KeyDaycareBreakfast:
		return &r.DaycareBreakfast
	case KeyDaycareLunch:
		return &r.DaycareLunch
	case KeyDaycareDinner:
		return &r.DaycareDinner
	case KeyDaycareEmployeeBreakfast:
		return &r.DaycareEmployeeBreakfast
	case KeyDaycareEmployeeLunch:
		return &r.DaycareEmployeeLunch
	case KeyDaycareEmployeeDinner:
		return &r.DaycareEmployeeDinner
	case KeyEmployee:
		return &r.Employee
	case KeyEmployeeBreakfast:
		return &r.EmployeeBreakfast
	case KeyEmployeeLunch:
		return &r.EmployeeLunch
	case KeyEmployeeDinner:
		return &r.EmployeeDinner
	case KeyPrice1:
		return &r.Price1
	case KeyPrice2:
		return &r.Price2
	case KeyPrice3:
		return &r.Price3
	case KeyPrice4:
		return &r.Price4
	case KeyPrice5:
		return &r.Price5
	case KeyTotal:
		return &r.Total
	}
	return nil
}

func (r *DinerRow) textField(key string) *string {
	switch key {
	case KeySpecialYN:
		return &r.SpecialYN
	case KeyNote:
		return &r.Note
	case KeyBreakfastCancel:
		return &r.BreakfastCancel
	case KeyLunchCancel:
		return &r.LunchCancel
	case KeyDinnerCancel:
		return &r.DinnerCancel
	}
	return nil
}

// Value 按键读取数值字段；非数值键返回 false
func (r *DinerRow) Value(key string) (int, bool) {
	p := r.intField(key)
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Int 按键读取数值字段，未知键视为 0
func (r *DinerRow) Int(key string) int {
	v, _ := r.Value(key)
	return v
}

// SetValue 按键写入数值字段；非数值键返回 false
func (r *DinerRow) SetValue(key string, v int) bool {
	p := r.intField(key)
	if p == nil {
		return false
	}
	*p = v
	return true
}

// Text 按键读取文本字段
func (r *DinerRow) Text(key string) (string, bool) {
	p := r.textField(key)
	if p == nil {
		return "", false
	}
	return *p, true
}

// Cell 渲染用单元格值（数值或文本）
func (r *DinerRow) Cell(key string) any {
	if key == KeyDate {
		return r.Date
	}
	if v, ok := r.Value(key); ok {
		return v
	}
	if s, ok := r.Text(key); ok {
		return s
	}
	return nil
}

// Apply 将持久化记录中的单个键覆盖到行上（浅合并），未知键或类型不符时忽略
func (r *DinerRow) Apply(key string, raw any) bool {
	if key == KeyDate || key == KeyTotal {
		return false
	}
	if p := r.intField(key); p != nil {
		v, ok := coerceInt(raw)
		if !ok {
			return false
		}
		*p = v
		return true
	}
	if p := r.textField(key); p != nil {
		switch v := raw.(type) {
		case string:
			*p = v
		case nil:
			*p = ""
		default:
			return false
		}
		return true
	}
	return false
}

// IsNumericKey 数值列（可汇总）
func IsNumericKey(key string) bool {
	var r DinerRow
	return r.intField(key) != nil
}

// IsEditableNumericKey 数值且允许用户输入的列（합계为派生值，不可编辑）
func IsEditableNumericKey(key string) bool {
	return key != KeyTotal && IsNumericKey(key)
}

func coerceInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, true
	case int:
		return v, inCountRange(float64(v))
	case int64:
		return int(v), inCountRange(float64(v))
	case float64:
		return roundCount(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return roundCount(f)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return roundCount(f)
	}
	return 0, false
}

// 负数保留给调用方校验；只拒绝 NaN/Inf 与超出 ±MaxCount 的值
func inCountRange(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f <= MaxCount && f >= -MaxCount
}

func roundCount(f float64) (int, bool) {
	if !inCountRange(f) {
		return 0, false
	}
	return int(math.Round(f)), true
}

// RawRecord 持久化的稀疏记录：任意日期表示 + 部分字段
type RawRecord map[string]any

// RecordFromRow 将行转为完整的持久化记录（date 统一为 2006-01-02）
func RecordFromRow(r DinerRow) (RawRecord, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	rec := RawRecord{}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	delete(rec, KeyTotal)
	return rec, nil
}

// SummaryRow 汇总行：合计 + 非零平均
type SummaryRow struct {
	Totals   map[string]int `json:"totals"`
	Averages map[string]int `json:"averages"`
}
