package debt

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Direction string

const (
	// OwedToMe registra valores a receber de um contato.
	OwedToMe Direction = "owed_to_me"
	// IOwe registra valores que o usuário deve a um contato.
	IOwe Direction = "i_owe"
)

func (d Direction) IsValid() bool {
	switch d {
	case OwedToMe, IOwe:
		return true
	}
	return false
}

type Status string

const (
	StatusOpen    Status = "open"
	StatusSettled Status = "settled"
)

// Debt acompanha uma dívida ou um valor a receber. As baixas são transações
// com flag debt_payment ou debt_collect ligadas pelo vínculo polimórfico.
type Debt struct {
	Id          ulid.ULID       `json:"id" gorm:"type:varchar(26);primaryKey"`
	UserId      ulid.ULID       `json:"user_id" gorm:"type:varchar(26);not null;index"`
	ContactName string          `json:"contact_name" gorm:"type:varchar(255);not null"`
	Direction   Direction       `json:"direction" gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null"`
	Remaining   decimal.Decimal `json:"remaining" gorm:"type:decimal(15,2);not null"`
	Status      Status          `json:"status" gorm:"type:varchar(20);not null;default:open"`
	DueDate     *time.Time      `json:"due_date"`
	Note        string          `json:"note" gorm:"type:text"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Debt) TableName() string {
	return "debts"
}

// Nomes das categorias usadas pelas transações de baixa de dívida.
const (
	CategoryPaymentName = "Pagamento de Dívida"
	CategoryCollectName = "Recebimento de Dívida"
)
