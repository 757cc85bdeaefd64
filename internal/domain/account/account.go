package account

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Account é um recipiente de dinheiro do usuário. CurrentBalance é cache,
// recalculado a partir do razão de transações; não é mantido por constraint.
type Account struct {
	Id                ulid.ULID       `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId            ulid.ULID       `gorm:"type:varchar(26);index:idx_accounts_user_id;not null" json:"userId"`
	AccountCategoryId ulid.ULID       `gorm:"type:varchar(26);index:idx_accounts_category_id;not null" json:"accountCategoryId"`
	Name              string          `gorm:"type:varchar(100);not null" json:"name"`
	InitialBalance    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"initialBalance"`
	CurrentBalance    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"currentBalance"`
	CreatedAt         time.Time       `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Account) TableName() string {
	return "accounts"
}
