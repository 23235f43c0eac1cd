package calculator

import "dinerboard/internal/model"

// Engine 식수合计计算引擎（纯函数，无 I/O）
type Engine struct {
	classifier Classifier
}

// NewEngine 创建计算引擎
func NewEngine(classifier Classifier) *Engine {
	return &Engine{classifier: classifier}
}

var defaultEngine = NewEngine(DefaultClassifier())

// Default 默认分类口径的引擎
func Default() *Engine {
	return defaultEngine
}

// ComputeTotal 使用默认引擎计算合计
func ComputeTotal(row model.DinerRow, accountType model.AccountType, extras []model.ExtraDietColumn, accountID model.AccountID) int {
	return defaultEngine.Total(row, accountType, extras, accountID)
}

// Total 计算一行的合计，按以下顺序取第一个命中的公式：
//  1. 账户专用公式
//  2. 학교/산업체类型公式
//  3. 默认公式
func (e *Engine) Total(row model.DinerRow, accountType model.AccountType, extras []model.ExtraDietColumn, accountID model.AccountID) int {
	if rule, ok := accountOverrides[accountID]; ok {
		return clampZero(RoundHalfUp(rule.apply(row)))
	}
	if accountType.IsSchoolOrIndustrial() {
		return clampZero(e.schoolIndustrialTotal(row, accountType, extras, accountID))
	}
	return clampZero(e.defaultTotal(row, accountType, extras))
}

// Recompute 重新计算并写回 row.Total
func (e *Engine) Recompute(row *model.DinerRow, accountType model.AccountType, extras []model.ExtraDietColumn, accountID model.AccountID) {
	row.Total = e.Total(*row, accountType, extras, accountID)
}

func (e *Engine) schoolIndustrialTotal(row model.DinerRow, accountType model.AccountType, extras []model.ExtraDietColumn, accountID model.AccountID) int {
	mainKey, _ := MainMeal(accountID)
	main := row.Int(mainKey)

	if prefixAveragingAccounts[accountID] {
		var breakfast, lunch, dinner, other int
		if mainKey == model.KeyBreakfast {
			breakfast = main
		} else {
			lunch = main
		}
		for _, c := range extras {
			v := row.Int(c.PriceKey)
			switch e.classifier.Classify(c.Name) {
			case MealClassLunch:
				lunch += v
			case MealClassDinner:
				dinner += v
			default:
				other += v
			}
		}
		return RoundHalfUp(AvgOfExisting(breakfast, lunch, dinner)) + other
	}

	if accountType == model.AccountTypeIndustrial && e.hasSnackOrDinner(extras) {
		var snack, dinner, other int
		for _, c := range extras {
			v := row.Int(c.PriceKey)
			switch {
			case e.classifier.IsSnack(c.Name):
				snack += v
			case e.classifier.IsDinner(c.Name):
				dinner += v
			default:
				other += v
			}
		}
		return RoundHalfUp(AvgOfExisting(main, snack, dinner)) + other
	}

	return main + sumExtras(row, extras)
}

func (e *Engine) defaultTotal(row model.DinerRow, accountType model.AccountType, extras []model.ExtraDietColumn) int {
	total := RoundHalfUp(AvgOfExisting(row.Breakfast, row.Lunch, row.Dinner) + float64(row.Ceremony))
	if extraEligibleTypes[accountType] && len(extras) > 0 {
		total += sumExtras(row, extras)
	}
	return total
}

func (e *Engine) hasSnackOrDinner(extras []model.ExtraDietColumn) bool {
	for _, c := range extras {
		if e.classifier.IsSnack(c.Name) || e.classifier.IsDinner(c.Name) {
			return true
		}
	}
	return false
}

func sumExtras(row model.DinerRow, extras []model.ExtraDietColumn) int {
	sum := 0
	for _, c := range extras {
		sum += row.Int(c.PriceKey)
	}
	return sum
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
