package account

import (
	"sync"

	"dinerboard/internal/model"
)

// 定制表头的账户（每家机构菜单结构不同，逐一登记）
var specialLayoutAccounts = map[model.AccountID]bool{
	101: true,
	102: true,
	103: true,
	104: true,
	105: true,
	107: true,
	108: true,
	109: true,
	110: true,
	111: true,
}

// 默认表头中显示주간보호列的账户
var daycareVisibleAccounts = map[model.AccountID]bool{
	201: true,
	202: true,
	203: true,
	204: true,
}

// IsSpecialLayout 是否使用定制表头
func IsSpecialLayout(id model.AccountID) bool {
	return specialLayoutAccounts[id]
}

// IsDaycareVisible 是否显示주간보호列
func IsDaycareVisible(id model.AccountID) bool {
	return daycareVisibleAccounts[id]
}

// Resolver 账户画像解析器
type Resolver struct {
	mu       sync.RWMutex
	accounts map[model.AccountID]model.Account
}

// NewResolver 基于账户列表创建解析器
func NewResolver(accounts []model.Account) *Resolver {
	r := &Resolver{}
	r.Reset(accounts)
	return r
}

// Reset 替换账户列表（账户管理子系统刷新后调用）
func (r *Resolver) Reset(accounts []model.Account) {
	m := make(map[model.AccountID]model.Account, len(accounts))
	for _, a := range accounts {
		m[a.ID] = a
	}
	r.mu.Lock()
	r.accounts = m
	r.mu.Unlock()
}

// Profile 解析账户画像；未知账户按 other 类型返回，不报错
func (r *Resolver) Profile(id model.AccountID) model.AccountProfile {
	r.mu.RLock()
	a, ok := r.accounts[id]
	r.mu.RUnlock()

	p := model.AccountProfile{
		ID:             id,
		Type:           model.AccountTypeOther,
		DaycareVisible: IsDaycareVisible(id),
		SpecialLayout:  IsSpecialLayout(id),
	}
	if ok {
		p.Name = a.Name
		p.Type = model.ParseAccountType(string(a.Type))
	}
	return p
}
