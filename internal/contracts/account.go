package contracts

import "github.com/shopspring/decimal"

type AccountCreateRequest struct {
	Name              string          `json:"name" binding:"required,max=100"`
	AccountCategoryId string          `json:"account_category_id" binding:"required"`
	InitialBalance    decimal.Decimal `json:"initial_balance"`
}

type AccountUpdateRequest struct {
	Name              *string          `json:"name" binding:"omitempty,max=100"`
	AccountCategoryId *string          `json:"account_category_id" binding:"omitempty"`
	InitialBalance    *decimal.Decimal `json:"initial_balance" binding:"omitempty"`
}

type AccountBalanceData struct {
	TotalBalance decimal.Decimal `json:"totalBalance"`
}
