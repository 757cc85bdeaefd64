package category

import (
	"context"

	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, category *TransactionCategory) error
	CreateWithTx(ctx context.Context, tx interface{}, category *TransactionCategory) error
	Update(ctx context.Context, category *TransactionCategory) error
	Delete(ctx context.Context, categoryID, userID ulid.ULID) error
	GetByID(ctx context.Context, categoryID, userID ulid.ULID) (*TransactionCategory, error)
	GetByName(ctx context.Context, name string, userID ulid.ULID) (*TransactionCategory, error)
	GetAll(ctx context.Context, userID ulid.ULID, categoryType *Types, includeHidden bool, pagination *pkg.PaginationParams) ([]*TransactionCategory, int64, error)
	CountTransactions(ctx context.Context, categoryID ulid.ULID) (int64, error)
}
