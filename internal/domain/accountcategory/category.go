package accountcategory

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// AccountCategory agrupa contas (banco, dinheiro, carteira digital...).
// UserId nulo indica categoria padrão global, imutável pelos usuários.
type AccountCategory struct {
	Id        ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId    *ulid.ULID `gorm:"type:varchar(26);index:idx_account_categories_user_id" json:"userId"`
	Name      string     `gorm:"type:varchar(100);not null" json:"name"`
	Type      Types      `gorm:"type:varchar(20);not null" json:"type"`
	IsDefault bool       `gorm:"not null;default:false" json:"isDefault"`
	CreatedAt time.Time  `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (AccountCategory) TableName() string {
	return "account_categories"
}

type Types string

const (
	TypeBank    Types = "BANK"
	TypeCash    Types = "CASH"
	TypeEwallet Types = "EWALLET"
	TypeOther   Types = "OTHER"
)

func (t Types) IsValid() bool {
	switch t {
	case TypeBank, TypeCash, TypeEwallet, TypeOther:
		return true
	}
	return false
}

type DefaultDefinition struct {
	Name string
	Type Types
}

// FallbackCategoryName é a categoria usada para contas criadas
// automaticamente pela importação de planilhas.
const FallbackCategoryName = "Outros"

var DefaultCategories = []DefaultDefinition{
	{Name: "Banco", Type: TypeBank},
	{Name: "Dinheiro", Type: TypeCash},
	{Name: "Carteira Digital", Type: TypeEwallet},
	{Name: "Outros", Type: TypeOther},
}
