package tag

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Tag struct {
	Id        ulid.ULID `json:"id" gorm:"type:varchar(26);primaryKey"`
	UserId    ulid.ULID `json:"user_id" gorm:"type:varchar(26);not null;index"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Tag) TableName() string {
	return "tags"
}

// TransactionTag é a tabela de junção entre transações e tags.
type TransactionTag struct {
	TransactionId ulid.ULID `json:"transaction_id" gorm:"type:varchar(26);primaryKey"`
	TagId         ulid.ULID `json:"tag_id" gorm:"type:varchar(26);primaryKey"`
}

func (TransactionTag) TableName() string {
	return "transaction_tags"
}
