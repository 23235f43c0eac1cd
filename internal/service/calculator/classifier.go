package calculator

import "strings"

// MealClass 额外饮食列按名称归类的结果
type MealClass int

const (
	MealClassOther MealClass = iota
	MealClassLunch
	MealClassDinner
)

// Classifier 额外饮食列名称分类器（前缀/名称均可通过 config.toml 配置）
type Classifier struct {
	LunchPrefixes  []string
	DinnerPrefixes []string
	SnackNames     []string
	DinnerNames    []string
}

// DefaultClassifier 默认分类口径
func DefaultClassifier() Classifier {
	return Classifier{
		LunchPrefixes:  []string{"중식"},
		DinnerPrefixes: []string{"석식"},
		SnackNames:     []string{"간식"},
		DinnerNames:    []string{"석식"},
	}
}

// Classify 按名称前缀归类；两类都不匹配时为 Other
func (c Classifier) Classify(name string) MealClass {
	name = strings.TrimSpace(name)
	if hasAnyPrefix(name, c.LunchPrefixes) {
		return MealClassLunch
	}
	if hasAnyPrefix(name, c.DinnerPrefixes) {
		return MealClassDinner
	}
	return MealClassOther
}

// IsSnack 名称是否正好是간식
func (c Classifier) IsSnack(name string) bool {
	return equalsAny(strings.TrimSpace(name), c.SnackNames)
}

// IsDinner 名称是否正好是석식
func (c Classifier) IsDinner(name string) bool {
	return equalsAny(strings.TrimSpace(name), c.DinnerNames)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func equalsAny(s string, items []string) bool {
	for _, it := range items {
		if it != "" && s == it {
			return true
		}
	}
	return false
}
