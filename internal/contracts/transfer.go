package contracts

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransferCreateRequest struct {
	FromAccountId string           `json:"from_account_id" binding:"required"`
	ToAccountId   string           `json:"to_account_id" binding:"required"`
	Amount        decimal.Decimal  `json:"amount" binding:"required"`
	Fee           *decimal.Decimal `json:"fee" binding:"omitempty"`
	Date          time.Time        `json:"date" binding:"required"`
	Note          string           `json:"note" binding:"omitempty,max=255"`
}
