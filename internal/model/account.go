package model

import (
	"fmt"
	"strings"
)

// AccountID 거래처（客户账户）编号
type AccountID int

// AccountType 账户类型分类
type AccountType string

const (
	AccountTypeSchool      AccountType = "school"       // 학교
	AccountTypeIndustrial  AccountType = "industrial"   // 산업체
	AccountTypeNursingHome AccountType = "nursing_home" // 요양원
	AccountTypeHospital    AccountType = "hospital"     // 병원
	AccountTypeWelfare     AccountType = "welfare"      // 복지관
	AccountTypeOther       AccountType = "other"
)

// ParseAccountType 解析账户类型，无法识别时归为 other
func ParseAccountType(s string) AccountType {
	switch t := AccountType(strings.ToLower(strings.TrimSpace(s))); t {
	case AccountTypeSchool, AccountTypeIndustrial, AccountTypeNursingHome,
		AccountTypeHospital, AccountTypeWelfare:
		return t
	default:
		return AccountTypeOther
	}
}

// IsSchoolOrIndustrial 학교/산업체：单一主餐 + 额外饮食列的口径
func (t AccountType) IsSchoolOrIndustrial() bool {
	return t == AccountTypeSchool || t == AccountTypeIndustrial
}

// Account 账户主数据（由账户管理子系统维护）
type Account struct {
	ID   AccountID   `json:"id"`
	Name string      `json:"name"`
	Type AccountType `json:"type"`
}

// NewAccount 校验并构造账户；类型为空时归为 other，无法识别的类型报错
func NewAccount(id AccountID, name, typ string) (Account, error) {
	if id <= 0 {
		return Account{}, fmt.Errorf("invalid account id: %d", id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Account{}, fmt.Errorf("account %d: empty name", id)
	}
	t := ParseAccountType(typ)
	if t == AccountTypeOther && strings.TrimSpace(typ) != "" && !strings.EqualFold(strings.TrimSpace(typ), string(AccountTypeOther)) {
		return Account{}, fmt.Errorf("account %d: unknown type %q", id, typ)
	}
	return Account{ID: id, Name: name, Type: t}, nil
}

// AccountProfile 账户画像：类型 + 固定参考集合成员关系
type AccountProfile struct {
	ID             AccountID   `json:"id"`
	Name           string      `json:"name"`
	Type           AccountType `json:"type"`
	DaycareVisible bool        `json:"daycareVisible"` // 是否显示주간보호列
	SpecialLayout  bool        `json:"specialLayout"`  // 是否使用定制表头
}

// MaxExtraDietColumns 每个账户最多的额外饮食列
const MaxExtraDietColumns = 5

// ExtraDietColumn 额外饮食列（按账户动态配置，顺序即显示顺序）
type ExtraDietColumn struct {
	Name     string `json:"name"`
	PriceKey string `json:"priceKey"`
}

// ValidateExtraColumns 校验额外饮食列配置
func ValidateExtraColumns(cols []ExtraDietColumn) []string {
	errs := make([]string, 0, 2)
	if len(cols) > MaxExtraDietColumns {
		errs = append(errs, fmt.Sprintf("extra columns exceed %d", MaxExtraDietColumns))
	}

	seen := make(map[string]bool, len(cols))
	for i, c := range cols {
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, fmt.Sprintf("column %d: empty name", i+1))
		}
		if !IsPriceKey(c.PriceKey) {
			errs = append(errs, fmt.Sprintf("column %d: unknown price key %q", i+1, c.PriceKey))
			continue
		}
		if seen[c.PriceKey] {
			errs = append(errs, fmt.Sprintf("column %d: duplicate price key %q", i+1, c.PriceKey))
		}
		seen[c.PriceKey] = true
	}
	return errs
}
