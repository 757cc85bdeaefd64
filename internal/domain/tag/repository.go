package tag

import (
	"context"

	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, t *Tag) error
	Update(ctx context.Context, t *Tag) error
	Delete(ctx context.Context, id ulid.ULID) error
	GetByID(ctx context.Context, id ulid.ULID) (*Tag, error)
	GetByName(ctx context.Context, userID ulid.ULID, name string) (*Tag, error)
	GetByUserID(ctx context.Context, userID ulid.ULID, search *string, pagination *pkg.PaginationParams) ([]*Tag, int64, error)
	CountTransactions(ctx context.Context, tagID ulid.ULID) (int64, error)
}
