package sheet

import (
	"log"

	"dinerboard/internal/model"
	"dinerboard/internal/service/account"
	"dinerboard/internal/service/calculator"
)

// Source 打开会话所需的数据来源（*store.Store 实现）
type Source interface {
	ListAccounts() ([]model.Account, error)
	ListExtraColumns(id model.AccountID) ([]model.ExtraDietColumn, error)
	FetchPersistedRows(id model.AccountID, year, month int) ([]model.RawRecord, error)
	GetWorkingDays(id model.AccountID, year, month int) (int, error)
}

// Load 读取账户画像、额外列与已保存记录并打开会话。
// 任何读取失败都降级为空数据（未知账户 / 无额外列 / 全零表格），只记录日志。
func Load(src Source, engine *calculator.Engine, id model.AccountID, year, month int) *Session {
	accounts, err := src.ListAccounts()
	if err != nil {
		log.Printf("load account list failed: %v", err)
	}
	profile := account.NewResolver(accounts).Profile(id)

	extras, err := src.ListExtraColumns(id)
	if err != nil {
		log.Printf("load extra columns for account %d failed: %v", id, err)
		extras = nil
	}

	persisted, err := src.FetchPersistedRows(id, year, month)
	if err != nil {
		log.Printf("fetch diner rows for account %d %d-%02d failed: %v", id, year, month, err)
		persisted = nil
	}

	workingDays, err := src.GetWorkingDays(id, year, month)
	if err != nil {
		log.Printf("fetch working days for account %d %d-%02d failed: %v", id, year, month, err)
		workingDays = 0
	}

	return Open(engine, profile, extras, persisted, year, month, workingDays)
}
