package accountcategory

import (
	"context"

	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, category *AccountCategory) error
	CreateWithTx(ctx context.Context, tx interface{}, category *AccountCategory) error
	Update(ctx context.Context, category *AccountCategory) error
	Delete(ctx context.Context, categoryID, userID ulid.ULID) error
	GetByID(ctx context.Context, categoryID, userID ulid.ULID) (*AccountCategory, error)
	GetByName(ctx context.Context, name string, userID ulid.ULID) (*AccountCategory, error)
	GetAll(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*AccountCategory, int64, error)
	CountAccounts(ctx context.Context, categoryID ulid.ULID) (int64, error)
}
