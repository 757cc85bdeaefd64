package infrastructure

import (
	"context"
	"time"

	"MeuBolso/internal/domain/debt"
	"MeuBolso/internal/domain/transaction"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DebtRepository struct {
	DB *gorm.DB
}

var _ debt.Repository = (*DebtRepository)(nil)

type debtDB struct {
	Id          string          `gorm:"type:varchar(26);primaryKey;column:id"`
	UserId      string          `gorm:"type:varchar(26);index;not null;column:user_id"`
	ContactName string          `gorm:"size:255;not null;column:contact_name"`
	Direction   string          `gorm:"size:20;not null;column:direction"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null;column:amount"`
	Remaining   decimal.Decimal `gorm:"type:decimal(15,2);not null;column:remaining"`
	Status      string          `gorm:"size:20;not null;column:status"`
	DueDate     *time.Time      `gorm:"column:due_date"`
	Note        string          `gorm:"type:text;column:note"`
	CreatedAt   time.Time       `gorm:"not null;column:created_at"`
	UpdatedAt   time.Time       `gorm:"not null;column:updated_at"`
}

func toDomainDebt(ddb *debtDB) (*debt.Debt, error) {
	id, err := pkg.ParseULID(ddb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULID(ddb.UserId)
	if err != nil {
		return nil, err
	}
	return &debt.Debt{
		Id:          id,
		UserId:      uid,
		ContactName: ddb.ContactName,
		Direction:   debt.Direction(ddb.Direction),
		Amount:      ddb.Amount,
		Remaining:   ddb.Remaining,
		Status:      debt.Status(ddb.Status),
		DueDate:     ddb.DueDate,
		Note:        ddb.Note,
		CreatedAt:   ddb.CreatedAt,
		UpdatedAt:   ddb.UpdatedAt,
	}, nil
}

func toDBDebt(d *debt.Debt) *debtDB {
	return &debtDB{
		Id:          d.Id.String(),
		UserId:      d.UserId.String(),
		ContactName: d.ContactName,
		Direction:   string(d.Direction),
		Amount:      d.Amount,
		Remaining:   d.Remaining,
		Status:      string(d.Status),
		DueDate:     d.DueDate,
		Note:        d.Note,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *DebtRepository) Create(ctx context.Context, d *debt.Debt) error {
	return r.DB.WithContext(ctx).Table("debts").Create(toDBDebt(d)).Error
}

func (r *DebtRepository) Update(ctx context.Context, d *debt.Debt) error {
	ddb := toDBDebt(d)
	return r.DB.WithContext(ctx).Table("debts").
		Where("id = ?", ddb.Id).
		Select("contact_name", "direction", "amount", "remaining", "status", "due_date", "note", "updated_at").
		Updates(ddb).Error
}

func (r *DebtRepository) UpdateWithTx(ctx context.Context, tx interface{}, d *debt.Debt) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	ddb := toDBDebt(d)
	return db.WithContext(ctx).Table("debts").
		Where("id = ?", ddb.Id).
		Select("contact_name", "direction", "amount", "remaining", "status", "due_date", "note", "updated_at").
		Updates(ddb).Error
}

func (r *DebtRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("debts").Where("id = ?", id.String()).Delete(&debtDB{}).Error
}

func (r *DebtRepository) GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*debt.Debt, error) {
	var ddb debtDB
	err := r.DB.WithContext(ctx).Table("debts").
		Where("id = ? AND user_id = ?", id.String(), userID.String()).
		First(&ddb).Error
	if err != nil {
		return nil, err
	}
	return toDomainDebt(&ddb)
}

func (r *DebtRepository) GetAll(ctx context.Context, userID ulid.ULID, status *debt.Status, pagination *pkg.PaginationParams) ([]*debt.Debt, int64, error) {
	query := r.DB.WithContext(ctx).Table("debts").Where("user_id = ?", userID.String())
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}
	return pkg.Paginate[debt.Debt, debtDB](query, pagination, "created_at DESC", toDomainDebt)
}

func (r *DebtRepository) CountSettlements(ctx context.Context, debtID ulid.ULID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Table("transactions").
		Where("source_type = ? AND source_id = ?", transaction.SourceDebt, debtID.String()).
		Count(&count).Error
	return count, err
}
