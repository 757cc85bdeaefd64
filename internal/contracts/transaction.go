package contracts

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionCreateRequest struct {
	AccountId  string          `json:"account_id" binding:"required"`
	CategoryId string          `json:"category_id" binding:"required"`
	Type       string          `json:"type" binding:"required,oneof=income expense"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Date       time.Time       `json:"date" binding:"required"`
	Note       string          `json:"note" binding:"omitempty,max=255"`
	TagIds     []string        `json:"tag_ids" binding:"omitempty"`
}

type TransactionBulkCreateRequest struct {
	Transactions []TransactionCreateRequest `json:"transactions" binding:"required,min=1,dive"`
}

type TransactionUpdateRequest struct {
	AccountId  string          `json:"account_id" binding:"required"`
	CategoryId string          `json:"category_id" binding:"required"`
	Type       string          `json:"type" binding:"required,oneof=income expense"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Date       time.Time       `json:"date" binding:"required"`
	Note       string          `json:"note" binding:"omitempty,max=255"`
	TagIds     []string        `json:"tag_ids" binding:"omitempty"`
}
