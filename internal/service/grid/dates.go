package grid

import (
	"encoding/json"
	"strings"
	"time"
)

// Day 规范化后的日历日（年、月、日）
type Day struct {
	Year  int
	Month int
	Day   int
}

// String 2006-01-02
func (d Day) String() string {
	return d.Time().Format(dateLayout)
}

// Time 当天零点（UTC）
func (d Day) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

const dateLayout = "2006-01-02"

// 持久化记录中出现过的日期写法
var dayLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
	"20060102",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
}

// ParseDay 解析任意日期表示；数字视为 Unix 毫秒时间戳（本地时区）
func ParseDay(v any) (Day, bool) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return Day{}, false
		}
		return dayOf(d), true
	case string:
		return parseDayString(d)
	case float64:
		if d <= 0 {
			return Day{}, false
		}
		return dayOf(time.UnixMilli(int64(d)).In(time.Local)), true
	case int64:
		if d <= 0 {
			return Day{}, false
		}
		return dayOf(time.UnixMilli(d).In(time.Local)), true
	case json.Number:
		n, err := d.Int64()
		if err != nil {
			return parseDayString(d.String())
		}
		return ParseDay(n)
	}
	return Day{}, false
}

func parseDayString(s string) (Day, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Day{}, false
	}
	// 2024.03.05. 这种带尾点的写法
	s = strings.TrimSuffix(s, ".")
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dayOf(t), true
		}
	}
	return Day{}, false
}

func dayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: int(m), Day: d}
}

// DaysIn 某年某月的天数
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1).Day()
}
