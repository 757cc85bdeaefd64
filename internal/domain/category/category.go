package category

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// TransactionCategory classifica lançamentos de receita ou despesa.
// UserId nulo indica categoria padrão global, imutável pelos usuários.
type TransactionCategory struct {
	Id        ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId    *ulid.ULID `gorm:"type:varchar(26);index:idx_transaction_categories_user_id" json:"userId"`
	Name      string     `gorm:"type:varchar(100);not null" json:"name"`
	Type      Types      `gorm:"type:varchar(10);not null" json:"type"`
	IsDefault bool       `gorm:"not null;default:false" json:"isDefault"`
	IsHide    bool       `gorm:"not null;default:false" json:"isHide"`
	CreatedAt time.Time  `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (TransactionCategory) TableName() string {
	return "transaction_categories"
}

type Types string

const (
	TypeIncome  Types = "income"
	TypeExpense Types = "expense"
)

func (t Types) IsValid() bool {
	switch t {
	case TypeIncome, TypeExpense:
		return true
	}
	return false
}

type DefaultDefinition struct {
	Name string
	Type Types
}

var DefaultCategories = []DefaultDefinition{
	{Name: "Salário", Type: TypeIncome},
	{Name: "Freelance", Type: TypeIncome},
	{Name: "Rendimentos", Type: TypeIncome},
	{Name: "Outras Receitas", Type: TypeIncome},
	{Name: "Alimentação", Type: TypeExpense},
	{Name: "Transporte", Type: TypeExpense},
	{Name: "Moradia", Type: TypeExpense},
	{Name: "Saúde", Type: TypeExpense},
	{Name: "Educação", Type: TypeExpense},
	{Name: "Lazer", Type: TypeExpense},
	{Name: "Compras", Type: TypeExpense},
	{Name: "Contas", Type: TypeExpense},
	{Name: "Outras Despesas", Type: TypeExpense},
}
