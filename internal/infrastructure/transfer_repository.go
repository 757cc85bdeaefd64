package infrastructure

import (
	"context"
	"time"

	"MeuBolso/internal/domain/transfer"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransferRepository struct {
	DB *gorm.DB
}

var _ transfer.Repository = (*TransferRepository)(nil)

type transferDB struct {
	Id            string          `gorm:"type:varchar(26);primaryKey;column:id"`
	UserId        string          `gorm:"type:varchar(26);index;not null;column:user_id"`
	FromAccountId string          `gorm:"type:varchar(26);not null;column:from_account_id"`
	ToAccountId   string          `gorm:"type:varchar(26);not null;column:to_account_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null;column:amount"`
	Fee           decimal.Decimal `gorm:"type:decimal(15,2);not null;column:fee"`
	Date          time.Time       `gorm:"not null;column:date"`
	Note          string          `gorm:"type:text;column:note"`
	CreatedAt     time.Time       `gorm:"not null;column:created_at"`
	UpdatedAt     time.Time       `gorm:"not null;column:updated_at"`
}

func toDomainTransfer(tdb *transferDB) (*transfer.Transfer, error) {
	id, err := pkg.ParseULID(tdb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULID(tdb.UserId)
	if err != nil {
		return nil, err
	}
	from, err := pkg.ParseULID(tdb.FromAccountId)
	if err != nil {
		return nil, err
	}
	to, err := pkg.ParseULID(tdb.ToAccountId)
	if err != nil {
		return nil, err
	}
	return &transfer.Transfer{
		Id:            id,
		UserId:        uid,
		FromAccountId: from,
		ToAccountId:   to,
		Amount:        tdb.Amount,
		Fee:           tdb.Fee,
		Date:          tdb.Date,
		Note:          tdb.Note,
		CreatedAt:     tdb.CreatedAt,
		UpdatedAt:     tdb.UpdatedAt,
	}, nil
}

func toDBTransfer(t *transfer.Transfer) *transferDB {
	return &transferDB{
		Id:            t.Id.String(),
		UserId:        t.UserId.String(),
		FromAccountId: t.FromAccountId.String(),
		ToAccountId:   t.ToAccountId.String(),
		Amount:        t.Amount,
		Fee:           t.Fee,
		Date:          t.Date,
		Note:          t.Note,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (r *TransferRepository) CreateWithTx(ctx context.Context, tx interface{}, t *transfer.Transfer) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Table("transfers").Create(toDBTransfer(t)).Error
}

func (r *TransferRepository) DeleteWithTx(ctx context.Context, tx interface{}, id ulid.ULID) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Table("transfers").Where("id = ?", id.String()).Delete(&transferDB{}).Error
}

func (r *TransferRepository) GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*transfer.Transfer, error) {
	var tdb transferDB
	err := r.DB.WithContext(ctx).Table("transfers").
		Where("id = ? AND user_id = ?", id.String(), userID.String()).
		First(&tdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransfer(&tdb)
}

func (r *TransferRepository) GetAll(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*transfer.Transfer, int64, error) {
	query := r.DB.WithContext(ctx).Table("transfers").Where("user_id = ?", userID.String())
	return pkg.Paginate[transfer.Transfer, transferDB](query, pagination, "date DESC, created_at DESC", toDomainTransfer)
}
