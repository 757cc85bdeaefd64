package user

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type User struct {
	Id        ulid.ULID       `gorm:"type:varchar(26);primaryKey" json:"id"`
	Name      string          `gorm:"type:varchar(100);not null" json:"name"`
	Email     string          `gorm:"type:varchar(100);uniqueIndex:idx_users_email;not null" json:"email"`
	Password  string          `gorm:"type:varchar(255);not null" json:"-"`
	Balance   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	CreatedAt time.Time       `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
