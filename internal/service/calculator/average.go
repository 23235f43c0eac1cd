package calculator

import (
	"math"

	"github.com/shopspring/decimal"

	"dinerboard/internal/model"
)

// AvgOfExisting 只对大于 0 的值求平均；0/空视为“没有该餐”，不计入分母。全为 0 时返回 0。
func AvgOfExisting(values ...int) float64 {
	sum, n := 0, 0
	for _, v := range values {
		if v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// RoundHalfUp 四舍五入到整数
func RoundHalfUp(f float64) int {
	return int(decimal.NewFromFloat(f).Round(0).IntPart())
}

// CountFromFloat 把输入的人数四舍五入为整数；NaN/Inf、负数与超过 model.MaxCount 的值返回 false
func CountFromFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > model.MaxCount {
		return 0, false
	}
	return RoundHalfUp(f), true
}

// RoundRatio 四舍五入 sum/count；count 为 0 时返回 0
func RoundRatio(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(sum)).
		DivRound(decimal.NewFromInt(int64(count)), 8).
		Round(0).
		IntPart())
}
