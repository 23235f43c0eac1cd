package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"dinerboard/internal/model"
	"dinerboard/internal/service/account"
	"dinerboard/internal/store"
)

type accountItem struct {
	model.AccountProfile
	ExtraColumns []model.ExtraDietColumn `json:"extraColumns"`
}

// ListAccounts 账户列表（含画像与额外饮食列）
// GET /api/accounts
func (h *Handler) ListAccounts(c *gin.Context) {
	accounts, err := h.repo.ListAccounts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resolver := account.NewResolver(accounts)
	items := make([]accountItem, 0, len(accounts))
	for _, a := range accounts {
		items = append(items, accountItem{
			AccountProfile: resolver.Profile(a.ID),
			ExtraColumns:   h.extraColumns(a.ID),
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

type putAccountRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// PutAccount 新增或更新账户主数据（名称 + 类型）
// PUT /api/accounts/:id
func (h *Handler) PutAccount(c *gin.Context) {
	id, ok := parseAccountID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req putAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}
	a, err := model.NewAccount(id, req.Name, req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.UpsertAccount(a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, accountItem{
		AccountProfile: account.NewResolver([]model.Account{a}).Profile(id),
		ExtraColumns:   h.extraColumns(id),
	})
}

// GetExtraColumns 账户的额外饮食列
// GET /api/accounts/:id/extra-columns
func (h *Handler) GetExtraColumns(c *gin.Context) {
	id, ok := parseAccountID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	cols, err := h.repo.ListExtraColumns(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accountId": id, "items": cols})
}

type replaceExtraColumnsRequest struct {
	Items []model.ExtraDietColumn `json:"items"`
}

// ReplaceExtraColumns 整体替换额外饮食列（已打开的会话不受影响，重新打开后生效）
// PUT /api/accounts/:id/extra-columns
func (h *Handler) ReplaceExtraColumns(c *gin.Context) {
	id, ok := parseAccountID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req replaceExtraColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}
	if errs := model.ValidateExtraColumns(req.Items); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "额外饮食列配置不合法", "details": errs})
		return
	}

	if err := h.repo.ReplaceExtraColumns(id, req.Items); err != nil {
		switch {
		case errors.Is(err, store.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrInvalidExtraColumns):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	cols, err := h.repo.ListExtraColumns(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accountId": id, "items": cols})
}

// extraColumns 读取失败时按无额外列处理
func (h *Handler) extraColumns(id model.AccountID) []model.ExtraDietColumn {
	cols, err := h.repo.ListExtraColumns(id)
	if err != nil {
		log.Printf("load extra columns for account %d failed: %v", id, err)
		return []model.ExtraDietColumn{}
	}
	return cols
}

func parseAccountID(v string) (model.AccountID, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0, false
	}
	return model.AccountID(n), true
}
