package infrastructure

import (
	"context"
	"time"

	"MeuBolso/internal/domain/accountcategory"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type AccountCategoryRepository struct {
	DB *gorm.DB
}

var _ accountcategory.Repository = (*AccountCategoryRepository)(nil)

type accountCategoryDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey;column:id"`
	UserId    *string   `gorm:"type:varchar(26);index;column:user_id"`
	Name      string    `gorm:"size:100;not null;column:name"`
	Type      string    `gorm:"size:20;not null;column:type"`
	IsDefault bool      `gorm:"not null;column:is_default"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
}

func toDomainAccountCategory(cdb *accountCategoryDB) (*accountcategory.AccountCategory, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULIDPtr(cdb.UserId)
	if err != nil {
		return nil, err
	}
	return &accountcategory.AccountCategory{
		Id:        id,
		UserId:    uid,
		Name:      cdb.Name,
		Type:      accountcategory.Types(cdb.Type),
		IsDefault: cdb.IsDefault,
		CreatedAt: cdb.CreatedAt,
		UpdatedAt: cdb.UpdatedAt,
	}, nil
}

func toDBAccountCategory(c *accountcategory.AccountCategory) *accountCategoryDB {
	var uid *string
	if c.UserId != nil {
		s := c.UserId.String()
		uid = &s
	}
	return &accountCategoryDB{
		Id:        c.Id.String(),
		UserId:    uid,
		Name:      c.Name,
		Type:      string(c.Type),
		IsDefault: c.IsDefault,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *AccountCategoryRepository) Create(ctx context.Context, c *accountcategory.AccountCategory) error {
	return r.DB.WithContext(ctx).Table("account_categories").Create(toDBAccountCategory(c)).Error
}

func (r *AccountCategoryRepository) CreateWithTx(ctx context.Context, tx interface{}, c *accountcategory.AccountCategory) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Table("account_categories").Create(toDBAccountCategory(c)).Error
}

func (r *AccountCategoryRepository) Update(ctx context.Context, c *accountcategory.AccountCategory) error {
	cdb := toDBAccountCategory(c)
	return r.DB.WithContext(ctx).Table("account_categories").Where("id = ?", cdb.Id).Updates(cdb).Error
}

func (r *AccountCategoryRepository) Delete(ctx context.Context, categoryID, userID ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("account_categories").
		Where("id = ? AND user_id = ?", categoryID.String(), userID.String()).
		Delete(&accountCategoryDB{}).Error
}

func (r *AccountCategoryRepository) GetByID(ctx context.Context, categoryID, userID ulid.ULID) (*accountcategory.AccountCategory, error) {
	var cdb accountCategoryDB
	err := r.DB.WithContext(ctx).Table("account_categories").
		Where("id = ? AND (user_id = ? OR user_id IS NULL)", categoryID.String(), userID.String()).
		First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainAccountCategory(&cdb)
}

func (r *AccountCategoryRepository) GetByName(ctx context.Context, name string, userID ulid.ULID) (*accountcategory.AccountCategory, error) {
	var cdb accountCategoryDB
	err := r.DB.WithContext(ctx).Table("account_categories").
		Where("LOWER(name) = LOWER(?) AND (user_id = ? OR user_id IS NULL)", name, userID.String()).
		First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainAccountCategory(&cdb)
}

func (r *AccountCategoryRepository) GetAll(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*accountcategory.AccountCategory, int64, error) {
	query := r.DB.WithContext(ctx).Table("account_categories").
		Where("user_id = ? OR user_id IS NULL", userID.String())

	return pkg.Paginate[accountcategory.AccountCategory, accountCategoryDB](
		query, pagination, "is_default DESC, name ASC", toDomainAccountCategory)
}

func (r *AccountCategoryRepository) CountAccounts(ctx context.Context, categoryID ulid.ULID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Table("accounts").
		Where("account_category_id = ?", categoryID.String()).
		Count(&count).Error
	return count, err
}
