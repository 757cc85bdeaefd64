package contracts

import (
	"time"

	"github.com/shopspring/decimal"
)

type DebtCreateRequest struct {
	ContactName string          `json:"contact_name" binding:"required,max=255"`
	Direction   string          `json:"direction" binding:"required,oneof=owed_to_me i_owe"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	DueDate     *time.Time      `json:"due_date" binding:"omitempty"`
	Note        string          `json:"note" binding:"omitempty,max=255"`
}

type DebtUpdateRequest struct {
	ContactName *string    `json:"contact_name" binding:"omitempty,max=255"`
	DueDate     *time.Time `json:"due_date" binding:"omitempty"`
	Note        *string    `json:"note" binding:"omitempty,max=255"`
}

type DebtSettlementRequest struct {
	AccountId string          `json:"account_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
	Note      string          `json:"note" binding:"omitempty,max=255"`
}
