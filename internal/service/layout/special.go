package layout

import "dinerboard/internal/model"

// 定制表头：每家机构的实际菜单结构不同，逐个手写，不做推导。

func tall(label string) model.HeaderCell {
	return model.HeaderCell{Label: label, RowSpan: 2}
}

func group(label string, cols int) model.HeaderCell {
	return model.HeaderCell{Label: label, ColSpan: cols}
}

func cells(labels ...string) []model.HeaderCell {
	out := make([]model.HeaderCell, 0, len(labels))
	for _, l := range labels {
		out = append(out, model.HeaderCell{Label: l})
	}
	return out
}

func specialLayout(accountID model.AccountID, extras []model.ExtraDietColumn) (model.LayoutDescriptor, bool) {
	switch accountID {
	case 101:
		return residentWithStaffCount(), true
	case 102:
		return byFloor(), true
	case 103:
		return residentBreakfastLunchDaycare(), true
	case 104:
		return residentAndDaycare(), true
	case 105:
		return residentAndStaff(), true
	case 107:
		return residentAndDaycareLunchDinner(), true
	case 108, 109:
		return daycareSeniorAndStaff(), true
	case 110:
		return mealsWithExtraGroup(extras), true
	case 111:
		return mealsWithCancelReasons(), true
	}
	return model.LayoutDescriptor{}, false
}

// 입소자(조/중/석) + 직원
func residentWithStaffCount() model.LayoutDescriptor {
	return model.LayoutDescriptor{
		HeaderRows: [][]model.HeaderCell{
			{tall(labelDate), group("입소자", 3), tall(labelEmployee), tall(labelTotal), tall(labelNote)},
			cells(labelBreakfast, labelLunch, labelDinner),
		},
		VisibleColumns: []string{
			model.KeyBreakfast, model.KeyLunch, model.KeyDinner,
			model.KeyEmployee, model.KeyTotal, model.KeyNote,
		},
	}
}

// 1층 / 2층 各自一套조/중/석/경관식
func byFloor() model.LayoutDescriptor {
	return model.LayoutDescriptor{
		HeaderRows: [][]model.HeaderCell{
			{tall(labelDate), group("1층", 4), group("2층", 4), tall(labelTotal), tall(labelNote)},
			cells(
				labelBreakfast, labelLunch, labelDinner, labelCeremony,
				labelBreakfast, labelLunch, labelDinner, labelCeremony,
			),
		},
		VisibleColumns: []string{
			model.KeyBreakfast, model.KeyLunch, model.KeyDinner, model.KeyCeremony,
			model.KeyBreakfast2, model.KeyLunch2, model.KeyDinner2, model.KeyCeremony2,
			model.KeyTotal, model.KeyNote,
		},
	}
}

// 입소자(조/중) + 주간보호(중)
func residentBreakfastLunchDaycare() model.LayoutDescriptor {
	return model.LayoutDescriptor{
		HeaderRows: [][]model.HeaderCell{
			{tall(labelDate), group("입소자", 2), group("주간보호", 1), tall(labelTotal), tall(labelNote)},
			cells(labelBreakfast, labelLunch, labelLunch),
		},
		VisibleColumns: []string{
			model.KeyBreakfast, model.KeyLunch, model.KeyDaycareLunch,
			model.KeyTotal, model.KeyNote,
		},
	}
}

// 입소자(조/중/석/경관식) + 주간보호(조/중/석)
func residentAndDaycare() model.LayoutDescriptor {
	return model.LayoutDescriptor{
		HeaderRows: [][]model.HeaderCell{
			{tall(labelDate), group("입소자", 4), group("주간보호", 3), tall(labelTotal), tall(labelNote)},
			cells(
				labelBreakfast, labelLunch, labelDinner, labelCeremony,
				labelBreakfast, labelLunch, labelDinner,
			),
		},
		VisibleColumns: []string{
			model.KeyBreakfast, model.KeyLunch, model.KeyDinner, model.KeyCeremony,
			model.KeyDaycareBreakfast, model.KeyDaycareLunch, model.KeyDaycareDinner,
			model.KeyTotal, model.KeyNote,
		},
	}
}

// 입소자(조/중/석) + 직원(조/중/석)
func residentAndStaff() model.LayoutDescriptor {
	return model.LayoutDescriptor{
		HeaderRows: [][]model.HeaderCell{
			{tall(labelDate), group("입소자", 3), group(labelEmployee, 3), tall(labelTotal), tall(labelNote)},
			cells(
				labelBreakfast, labelLunch, labelDinner,
				labelBreakfast, labelLunch, labelDinner,
			),
		},
		VisibleColumns: []string{
			model.KeyBreakfast, model.KeyLunch, model.KeyDinner,
			model.KeyEmployeeBreakfast, model.KeyEmployeeLunch, model.KeyEmployeeDinner,
			model.KeyTotal, model.KeyNote,
		},
	}
}

// 입소자(조/중/석/경관식) + 주간보호(중/석)
func residentAndDaycareLunchDinner() model.LayoutDescriptor {
	return model.LayoutDescriptor{
		HeaderRows: [][]model.HeaderCell{
			{tall(labelDate), group("입소자", 4), group("주간보호", 2), tall(labelTotal), tall(labelNote)},
			cells(
				labelBreakfast, labelLunch, labelDinner, labelCeremony,
				labelLunch, labelDinner,
			),
		},
		VisibleColumns: []string{
			model.KeyBreakfast, model.KeyLunch, model.KeyDinner, model.KeyCeremony,
			model.KeyDaycareLunch, model.KeyDaycareDinner,
			model.KeyTotal, model.KeyNote,
		},
	}
}

// 주간보호 어르신 / 주간보호 직원
func daycareSeniorAndStaff() model.LayoutDescriptor {
	return model.LayoutDescriptor{
		HeaderRows: [][]model.HeaderCell{
			{tall(labelDate), group("주간보호 어르신", 3), group("주간보호 직원", 3), tall(labelTotal), tall(labelNote)},
			cells(
				labelBreakfast, labelLunch, labelDinner,
				labelBreakfast, labelLunch, labelDinner,
			),
		},
		VisibleColumns: []string{
			model.KeyDaycareBreakfast, model.KeyDaycareLunch, model.KeyDaycareDinner,
			model.KeyDaycareEmployeeBreakfast, model.KeyDaycareEmployeeLunch, model.KeyDaycareEmployeeDinner,
			model.KeyTotal, model.KeyNote,
		},
	}
}

// 식수(조/중/석/경관식) + 추가식단(额外列，数量可变) + 직원
func mealsWithExtraGroup(extras []model.ExtraDietColumn) model.LayoutDescriptor {
	top := []model.HeaderCell{tall(labelDate), group("식수", 4)}
	sub := cells(labelBreakfast, labelLunch, labelDinner, labelCeremony)
	visible := []string{model.KeyBreakfast, model.KeyLunch, model.KeyDinner, model.KeyCeremony}

	if len(extras) > 0 {
		top = append(top, group("추가식단", len(extras)))
		for _, c := range extras {
			sub = append(sub, model.HeaderCell{Label: c.Name})
			visible = append(visible, c.PriceKey)
		}
	}

	top = append(top, tall(labelEmployee), tall(labelTotal), tall(labelNote))
	visible = append(visible, model.KeyEmployee, model.KeyTotal, model.KeyNote)

	return model.LayoutDescriptor{
		HeaderRows:     [][]model.HeaderCell{top, sub},
		VisibleColumns: visible,
	}
}

// 식수(조/중/석) + 경관식 + 취소사유(조/중/석)
func mealsWithCancelReasons() model.LayoutDescriptor {
	return model.LayoutDescriptor{
		HeaderRows: [][]model.HeaderCell{
			{
				tall(labelDate), group("식수", 3), tall(labelCeremony),
				tall(labelTotal), tall(labelNote), group("취소사유", 3),
			},
			cells(
				labelBreakfast, labelLunch, labelDinner,
				labelBreakfast, labelLunch, labelDinner,
			),
		},
		VisibleColumns: []string{
			model.KeyBreakfast, model.KeyLunch, model.KeyDinner, model.KeyCeremony,
			model.KeyTotal, model.KeyNote,
			model.KeyBreakfastCancel, model.KeyLunchCancel, model.KeyDinnerCancel,
		},
	}
}
