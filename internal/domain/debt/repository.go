package debt

import (
	"context"

	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, d *Debt) error
	Update(ctx context.Context, d *Debt) error
	UpdateWithTx(ctx context.Context, tx interface{}, d *Debt) error
	Delete(ctx context.Context, id ulid.ULID) error
	GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*Debt, error)
	GetAll(ctx context.Context, userID ulid.ULID, status *Status, pagination *pkg.PaginationParams) ([]*Debt, int64, error)
	CountSettlements(ctx context.Context, debtID ulid.ULID) (int64, error)
}
