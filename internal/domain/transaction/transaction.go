package transaction

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Transaction struct {
	Id                    ulid.ULID       `gorm:"type:varchar(26);primaryKey" json:"id"`
	ImportId              *ulid.ULID      `gorm:"type:varchar(26);index:idx_transactions_import_id" json:"importId"`
	UserId                ulid.ULID       `gorm:"type:varchar(26);index:idx_transactions_user_id;index:idx_transactions_user_date,priority:1;not null" json:"userId"`
	AccountId             ulid.ULID       `gorm:"type:varchar(26);index:idx_transactions_account_id;not null" json:"accountId"`
	TransactionCategoryId ulid.ULID       `gorm:"type:varchar(26);index:idx_transactions_category_id;not null" json:"transactionCategoryId"`
	Type                  Types           `gorm:"type:varchar(10);not null;index:idx_transactions_type" json:"type"`
	Amount                decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date                  time.Time       `gorm:"type:date;not null;index:idx_transactions_user_date,priority:2" json:"date"`
	Note                  string          `gorm:"type:varchar(255)" json:"note"`
	SourceType            *string         `gorm:"type:varchar(20);index:idx_transactions_source,priority:1" json:"sourceType"`
	SourceId              *ulid.ULID      `gorm:"type:varchar(26);index:idx_transactions_source,priority:2" json:"sourceId"`
	Flag                  Flag            `gorm:"type:varchar(20);not null;default:'normal';index:idx_transactions_flag" json:"flag"`
	CreatedAt             time.Time       `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt             time.Time       `gorm:"autoUpdateTime;not null" json:"updatedAt"`

	TagIds []ulid.ULID `gorm:"-" json:"tagIds,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}
