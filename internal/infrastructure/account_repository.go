package infrastructure

import (
	"context"
	"time"

	"MeuBolso/internal/domain/account"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AccountRepository struct {
	DB *gorm.DB
}

var _ account.Repository = (*AccountRepository)(nil)

type accountDB struct {
	Id                string          `gorm:"type:varchar(26);primaryKey;column:id"`
	UserId            string          `gorm:"type:varchar(26);index;not null;column:user_id"`
	AccountCategoryId string          `gorm:"type:varchar(26);index;not null;column:account_category_id"`
	Name              string          `gorm:"size:255;not null;column:name"`
	InitialBalance    decimal.Decimal `gorm:"type:decimal(15,2);not null;column:initial_balance"`
	CurrentBalance    decimal.Decimal `gorm:"type:decimal(15,2);not null;column:current_balance"`
	CreatedAt         time.Time       `gorm:"not null;column:created_at"`
	UpdatedAt         time.Time       `gorm:"not null;column:updated_at"`
}

func toDomainAccount(adb *accountDB) (*account.Account, error) {
	id, err := pkg.ParseULID(adb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULID(adb.UserId)
	if err != nil {
		return nil, err
	}
	cid, err := pkg.ParseULID(adb.AccountCategoryId)
	if err != nil {
		return nil, err
	}
	return &account.Account{
		Id:                id,
		UserId:            uid,
		AccountCategoryId: cid,
		Name:              adb.Name,
		InitialBalance:    adb.InitialBalance,
		CurrentBalance:    adb.CurrentBalance,
		CreatedAt:         adb.CreatedAt,
		UpdatedAt:         adb.UpdatedAt,
	}, nil
}

func toDBAccount(a *account.Account) *accountDB {
	return &accountDB{
		Id:                a.Id.String(),
		UserId:            a.UserId.String(),
		AccountCategoryId: a.AccountCategoryId.String(),
		Name:              a.Name,
		InitialBalance:    a.InitialBalance,
		CurrentBalance:    a.CurrentBalance,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	return r.DB.WithContext(ctx).Table("accounts").Create(toDBAccount(a)).Error
}

func (r *AccountRepository) CreateWithTx(ctx context.Context, tx interface{}, a *account.Account) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Table("accounts").Create(toDBAccount(a)).Error
}

func (r *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	adb := toDBAccount(a)
	return r.DB.WithContext(ctx).Table("accounts").Where("id = ?", adb.Id).Updates(adb).Error
}

func (r *AccountRepository) UpdateWithTx(ctx context.Context, tx interface{}, a *account.Account) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	adb := toDBAccount(a)
	return db.WithContext(ctx).Table("accounts").Where("id = ?", adb.Id).Updates(adb).Error
}

func (r *AccountRepository) Delete(ctx context.Context, accountID, userID ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("accounts").
		Where("id = ? AND user_id = ?", accountID.String(), userID.String()).
		Delete(&accountDB{}).Error
}

func (r *AccountRepository) DeleteWithTx(ctx context.Context, tx interface{}, accountID, userID ulid.ULID) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Table("accounts").
		Where("id = ? AND user_id = ?", accountID.String(), userID.String()).
		Delete(&accountDB{}).Error
}

func (r *AccountRepository) GetByID(ctx context.Context, accountID, userID ulid.ULID) (*account.Account, error) {
	var adb accountDB
	err := r.DB.WithContext(ctx).Table("accounts").
		Where("id = ? AND user_id = ?", accountID.String(), userID.String()).
		First(&adb).Error
	if err != nil {
		return nil, err
	}
	return toDomainAccount(&adb)
}

func (r *AccountRepository) GetByName(ctx context.Context, name string, userID ulid.ULID) (*account.Account, error) {
	var adb accountDB
	err := r.DB.WithContext(ctx).Table("accounts").
		Where("LOWER(name) = LOWER(?) AND user_id = ?", name, userID.String()).
		First(&adb).Error
	if err != nil {
		return nil, err
	}
	return toDomainAccount(&adb)
}

func (r *AccountRepository) GetByUserID(ctx context.Context, userID ulid.ULID, categoryID *ulid.ULID, search *string, pagination *pkg.PaginationParams) ([]*account.Account, int64, error) {
	query := r.DB.WithContext(ctx).Table("accounts").Where("user_id = ?", userID.String())
	if categoryID != nil {
		query = query.Where("account_category_id = ?", categoryID.String())
	}
	if search != nil && *search != "" {
		query = query.Where("name ILIKE ?", "%"+*search+"%")
	}

	return pkg.Paginate[account.Account, accountDB](query, pagination, "name ASC", toDomainAccount)
}

func (r *AccountRepository) CountTransactions(ctx context.Context, accountID ulid.ULID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Table("transactions").
		Where("account_id = ?", accountID.String()).
		Count(&count).Error
	return count, err
}

func (r *AccountRepository) GetTotalBalance(ctx context.Context, userID ulid.ULID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.DB.WithContext(ctx).Table("accounts").
		Where("user_id = ?", userID.String()).
		Select("COALESCE(SUM(current_balance), 0)").
		Scan(&total).Error
	return total, err
}
