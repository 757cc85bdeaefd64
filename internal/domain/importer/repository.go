package importer

import (
	"context"

	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	CreateWithTx(ctx context.Context, tx interface{}, record *ImportRecord) error
	DeleteWithTx(ctx context.Context, tx interface{}, id ulid.ULID) error
	GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*ImportRecord, error)
	GetAll(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*ImportRecord, int64, error)
}
