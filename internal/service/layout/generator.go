package layout

import (
	"dinerboard/internal/model"
	"dinerboard/internal/service/account"
	"dinerboard/internal/service/calculator"
)

// 通用表头标签
const (
	labelDate      = "구분"
	labelBreakfast = "조식"
	labelLunch     = "중식"
	labelDinner    = "석식"
	labelCeremony  = "경관식"
	labelEmployee  = "직원"
	labelTotal     = "계"
	labelNote      = "비고"
	labelSpecial   = "특이여부"
)

// Build 生成账户的表头结构与数据列顺序
func Build(accountID model.AccountID, daycareVisible bool, extras []model.ExtraDietColumn, accountType model.AccountType) model.LayoutDescriptor {
	if accountType.IsSchoolOrIndustrial() {
		return schoolIndustrialLayout(accountID, extras)
	}
	if account.IsSpecialLayout(accountID) {
		if d, ok := specialLayout(accountID, extras); ok {
			return d
		}
	}
	return defaultLayout(extras, daycareVisible)
}

// ForProfile 按账户画像生成
func ForProfile(p model.AccountProfile, extras []model.ExtraDietColumn) model.LayoutDescriptor {
	return Build(p.ID, p.DaycareVisible, extras, p.Type)
}

func schoolIndustrialLayout(accountID model.AccountID, extras []model.ExtraDietColumn) model.LayoutDescriptor {
	mainKey, mainLabel := calculator.MainMeal(accountID)

	header := []model.HeaderCell{
		{Label: labelDate},
		{Label: mainLabel},
		{Label: labelSpecial},
	}
	visible := []string{mainKey, model.KeySpecialYN}
	for _, c := range extras {
		header = append(header, model.HeaderCell{Label: c.Name})
		visible = append(visible, c.PriceKey)
	}
	header = append(header, model.HeaderCell{Label: labelTotal}, model.HeaderCell{Label: labelNote})
	visible = append(visible, model.KeyTotal, model.KeyNote)

	return model.LayoutDescriptor{
		HeaderRows:     [][]model.HeaderCell{header},
		VisibleColumns: visible,
	}
}

func defaultLayout(extras []model.ExtraDietColumn, daycareVisible bool) model.LayoutDescriptor {
	header := []model.HeaderCell{
		{Label: labelDate},
		{Label: labelBreakfast},
		{Label: labelLunch},
		{Label: labelDinner},
		{Label: labelCeremony},
	}
	visible := []string{model.KeyBreakfast, model.KeyLunch, model.KeyDinner, model.KeyCeremony}

	for _, c := range extras {
		header = append(header, model.HeaderCell{Label: c.Name})
		visible = append(visible, c.PriceKey)
	}
	if daycareVisible {
		header = append(header,
			model.HeaderCell{Label: "주간보호 중식"},
			model.HeaderCell{Label: "주간보호 석식"},
		)
		visible = append(visible, model.KeyDaycareLunch, model.KeyDaycareDinner)
	}

	header = append(header,
		model.HeaderCell{Label: labelEmployee},
		model.HeaderCell{Label: labelTotal},
		model.HeaderCell{Label: labelNote},
		model.HeaderCell{Label: "조식취소"},
		model.HeaderCell{Label: "중식취소"},
		model.HeaderCell{Label: "석식취소"},
	)
	visible = append(visible,
		model.KeyEmployee, model.KeyTotal, model.KeyNote,
		model.KeyBreakfastCancel, model.KeyLunchCancel, model.KeyDinnerCancel,
	)

	return model.LayoutDescriptor{
		HeaderRows:     [][]model.HeaderCell{header},
		VisibleColumns: visible,
	}
}
