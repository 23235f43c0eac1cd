package parser

import (
	"regexp"
	"strconv"
	"strings"

	"dinerboard/internal/service/calculator"
)

var (
	yearMonthKo   = regexp.MustCompile(`(\d{4})\s*년\s*0?(\d{1,2})\s*월`)
	yearMonthDash = regexp.MustCompile(`(\d{4})[-./]0?(\d{1,2})\b`)
	spaces        = regexp.MustCompile(`\s+`)
)

// ExtractYearMonth 从字符串中提取年月
// 支持格式: "2025-03" / "2025.3" / "2025년 3월" / "식수_2025년03월"
func ExtractYearMonth(text string) (year, month int, found bool) {
	for _, re := range []*regexp.Regexp{yearMonthKo, yearMonthDash} {
		matches := re.FindStringSubmatch(text)
		if len(matches) < 3 {
			continue
		}
		year, _ = strconv.Atoi(matches[1])
		month, _ = strconv.Atoi(matches[2])
		if month >= 1 && month <= 12 {
			return year, month, true
		}
	}
	return 0, 0, false
}

// NormalizeLabel 规范化表头文字：去除所有空白
func NormalizeLabel(name string) string {
	return spaces.ReplaceAllString(strings.TrimSpace(name), "")
}

// parseCount 解析单元格中的人数；空白为 0，允许千分位
func parseCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return calculator.CountFromFloat(f)
}
