package balance

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// AccountBalance é a projeção mínima de conta usada pelo recálculo.
type AccountBalance struct {
	Id             ulid.ULID
	InitialBalance decimal.Decimal
}

type Repository interface {
	GetAccountsWithTx(ctx context.Context, tx interface{}, userID ulid.ULID) ([]*AccountBalance, error)
	// SumAmountsWithTx soma receitas e despesas da conta ignorando as
	// transações de saldo inicial, que já estão em initial_balance.
	SumAmountsWithTx(ctx context.Context, tx interface{}, accountID ulid.ULID) (income, expense decimal.Decimal, err error)
	UpdateAccountBalanceWithTx(ctx context.Context, tx interface{}, accountID ulid.ULID, balance decimal.Decimal) error
	UpdateUserBalanceWithTx(ctx context.Context, tx interface{}, userID ulid.ULID, balance decimal.Decimal) error
}
