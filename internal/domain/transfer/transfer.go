package transfer

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Transfer movimenta saldo entre duas contas do mesmo usuário. O valor é
// materializado como um par de transações (despesa na origem, receita no
// destino) ligadas pelo vínculo polimórfico source_type/source_id.
type Transfer struct {
	Id            ulid.ULID       `json:"id" gorm:"type:varchar(26);primaryKey"`
	UserId        ulid.ULID       `json:"user_id" gorm:"type:varchar(26);not null;index"`
	FromAccountId ulid.ULID       `json:"from_account_id" gorm:"type:varchar(26);not null"`
	ToAccountId   ulid.ULID       `json:"to_account_id" gorm:"type:varchar(26);not null"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null"`
	Fee           decimal.Decimal `json:"fee" gorm:"type:decimal(15,2);not null;default:0"`
	Date          time.Time       `json:"date" gorm:"not null"`
	Note          string          `json:"note" gorm:"type:text"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Transfer) TableName() string {
	return "transfers"
}

// Nomes das categorias usadas pelas transações geradas por transferências.
const (
	CategoryOutName = "Transferência Enviada"
	CategoryInName  = "Transferência Recebida"
)
