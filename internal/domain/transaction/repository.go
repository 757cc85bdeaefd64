package transaction

import (
	"context"
	"time"

	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// Filter restringe a listagem de transações; campos nulos são ignorados.
type Filter struct {
	AccountId  *ulid.ULID
	CategoryId *ulid.ULID
	TagId      *ulid.ULID
	Type       *Types
	Flag       *Flag
	DateFrom   *time.Time
	DateTo     *time.Time
	Search     *string
	SortBy     string // date | amount | created_at
	SortDir    string // asc | desc
}

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	CreateWithTx(ctx context.Context, tx interface{}, t *Transaction) error
	CreateBatchWithTx(ctx context.Context, tx interface{}, ts []*Transaction) error
	Update(ctx context.Context, t *Transaction) error
	UpdateWithTx(ctx context.Context, tx interface{}, t *Transaction) error
	DeleteWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID) error
	DeleteBySourceWithTx(ctx context.Context, tx interface{}, sourceType string, sourceID ulid.ULID) error
	DeleteByImportWithTx(ctx context.Context, tx interface{}, importID ulid.ULID) error
	GetByIDAndUser(ctx context.Context, transactionID, userID ulid.ULID) (*Transaction, error)
	GetAll(ctx context.Context, userID ulid.ULID, filter *Filter, pagination *pkg.PaginationParams) ([]*Transaction, int64, error)
	GetBySource(ctx context.Context, sourceType string, sourceID ulid.ULID) ([]*Transaction, error)
	ReplaceTagsWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID, tagIDs []ulid.ULID) error
	GetTagIDs(ctx context.Context, transactionID ulid.ULID) ([]ulid.ULID, error)
}
