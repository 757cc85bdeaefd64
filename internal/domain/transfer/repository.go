package transfer

import (
	"context"

	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	CreateWithTx(ctx context.Context, tx interface{}, t *Transfer) error
	DeleteWithTx(ctx context.Context, tx interface{}, id ulid.ULID) error
	GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*Transfer, error)
	GetAll(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Transfer, int64, error)
}
