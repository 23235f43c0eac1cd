package calculator

import "dinerboard/internal/model"

// overrideRule 按账户登记的专用合计公式
type overrideRule int

const (
	ruleAvgPlusStaff          overrideRule = iota + 1 // 平均(조/중/석) + 직원
	ruleTwoFloors                                     // 平均(1층) + 平均(2층) + 경관식 ×2
	ruleBreakfastLunchDaycare                         // 平均(조/중) + 주간보호 중식
	ruleResidentDaycare                               // 平均(입소자) + 平均(주간보호) + 경관식
	ruleResidentStaff                                 // 平均(입소자) + 平均(직원)
	ruleDaycareMeals                                  // 平均(조/중/석) + 경관식 + 주간보호 중식/석식
	ruleDaycareStaff                                  // 平均(주간보호 어르신) + 平均(주간보호 직원)
)

func (r overrideRule) String() string {
	switch r {
	case ruleAvgPlusStaff:
		return "avgPlusStaff"
	case ruleTwoFloors:
		return "twoFloors"
	case ruleBreakfastLunchDaycare:
		return "breakfastLunchDaycare"
	case ruleResidentDaycare:
		return "residentDaycare"
	case ruleResidentStaff:
		return "residentStaff"
	case ruleDaycareMeals:
		return "daycareMeals"
	case ruleDaycareStaff:
		return "daycareStaff"
	}
	return "none"
}

// 账户专用公式表（优先级最高）
var accountOverrides = map[model.AccountID]overrideRule{
	101: ruleAvgPlusStaff,
	102: ruleTwoFloors,
	103: ruleBreakfastLunchDaycare,
	104: ruleResidentDaycare,
	105: ruleResidentStaff,
	107: ruleDaycareMeals,
	108: ruleDaycareStaff,
	109: ruleDaycareStaff,
}

// 以조식为主餐的학교/산업체账户
var breakfastMainAccounts = map[model.AccountID]bool{
	301: true,
}

// 按名称前缀把额外饮食列折算成중식/석식再平均的학교/산업체账户
var prefixAveragingAccounts = map[model.AccountID]bool{
	301: true,
	302: true,
	303: true,
}

// 默认公式下可叠加额外饮食列的类型
var extraEligibleTypes = map[model.AccountType]bool{
	model.AccountTypeSchool:      true,
	model.AccountTypeIndustrial:  true,
	model.AccountTypeNursingHome: true,
}

// OverrideName 账户专用公式名称，没有时返回 "none"
func OverrideName(id model.AccountID) string {
	return accountOverrides[id].String()
}

// MainMeal 학교/산업체账户的主餐列键与标签
func MainMeal(id model.AccountID) (key, label string) {
	if breakfastMainAccounts[id] {
		return model.KeyBreakfast, "조식"
	}
	return model.KeyLunch, "중식"
}

func (r overrideRule) apply(row model.DinerRow) float64 {
	switch r {
	case ruleAvgPlusStaff:
		return AvgOfExisting(row.Breakfast, row.Lunch, row.Dinner) + float64(row.Employee)
	case ruleTwoFloors:
		return AvgOfExisting(row.Breakfast, row.Lunch, row.Dinner) +
			AvgOfExisting(row.Breakfast2, row.Lunch2, row.Dinner2) +
			float64(row.Ceremony+row.Ceremony2)
	case ruleBreakfastLunchDaycare:
		return AvgOfExisting(row.Breakfast, row.Lunch) + float64(row.DaycareLunch)
	case ruleResidentDaycare:
		return AvgOfExisting(row.Breakfast, row.Lunch, row.Dinner) +
			AvgOfExisting(row.DaycareBreakfast, row.DaycareLunch, row.DaycareDinner) +
			float64(row.Ceremony)
	case ruleResidentStaff:
		return AvgOfExisting(row.Breakfast, row.Lunch, row.Dinner) +
			AvgOfExisting(row.EmployeeBreakfast, row.EmployeeLunch, row.EmployeeDinner)
	case ruleDaycareMeals:
		return AvgOfExisting(row.Breakfast, row.Lunch, row.Dinner) +
			float64(row.Ceremony+row.DaycareLunch+row.DaycareDinner)
	case ruleDaycareStaff:
		return AvgOfExisting(row.DaycareBreakfast, row.DaycareLunch, row.DaycareDinner) +
			AvgOfExisting(row.DaycareEmployeeBreakfast, row.DaycareEmployeeLunch, row.DaycareEmployeeDinner)
	}
	return 0
}
