package account

import (
	"context"

	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, account *Account) error
	CreateWithTx(ctx context.Context, tx interface{}, account *Account) error
	Update(ctx context.Context, account *Account) error
	UpdateWithTx(ctx context.Context, tx interface{}, account *Account) error
	Delete(ctx context.Context, accountID, userID ulid.ULID) error
	DeleteWithTx(ctx context.Context, tx interface{}, accountID, userID ulid.ULID) error
	GetByID(ctx context.Context, accountID, userID ulid.ULID) (*Account, error)
	GetByName(ctx context.Context, name string, userID ulid.ULID) (*Account, error)
	GetByUserID(ctx context.Context, userID ulid.ULID, categoryID *ulid.ULID, search *string, pagination *pkg.PaginationParams) ([]*Account, int64, error)
	CountTransactions(ctx context.Context, accountID ulid.ULID) (int64, error)
	GetTotalBalance(ctx context.Context, userID ulid.ULID) (decimal.Decimal, error)
}
