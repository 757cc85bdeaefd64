package infrastructure

import (
	"context"
	"time"

	"MeuBolso/internal/domain/category"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type TransactionCategoryRepository struct {
	DB *gorm.DB
}

var _ category.Repository = (*TransactionCategoryRepository)(nil)

type transactionCategoryDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey;column:id"`
	UserId    *string   `gorm:"type:varchar(26);index;column:user_id"`
	Name      string    `gorm:"size:100;not null;column:name"`
	Type      string    `gorm:"size:10;not null;column:type"`
	IsDefault bool      `gorm:"not null;column:is_default"`
	IsHide    bool      `gorm:"not null;column:is_hide"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
}

func toDomainTransactionCategory(cdb *transactionCategoryDB) (*category.TransactionCategory, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULIDPtr(cdb.UserId)
	if err != nil {
		return nil, err
	}
	return &category.TransactionCategory{
		Id:        id,
		UserId:    uid,
		Name:      cdb.Name,
		Type:      category.Types(cdb.Type),
		IsDefault: cdb.IsDefault,
		IsHide:    cdb.IsHide,
		CreatedAt: cdb.CreatedAt,
		UpdatedAt: cdb.UpdatedAt,
	}, nil
}

func toDBTransactionCategory(c *category.TransactionCategory) *transactionCategoryDB {
	var uid *string
	if c.UserId != nil {
		s := c.UserId.String()
		uid = &s
	}
	return &transactionCategoryDB{
		Id:        c.Id.String(),
		UserId:    uid,
		Name:      c.Name,
		Type:      string(c.Type),
		IsDefault: c.IsDefault,
		IsHide:    c.IsHide,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *TransactionCategoryRepository) Create(ctx context.Context, c *category.TransactionCategory) error {
	return r.DB.WithContext(ctx).Table("transaction_categories").Create(toDBTransactionCategory(c)).Error
}

func (r *TransactionCategoryRepository) CreateWithTx(ctx context.Context, tx interface{}, c *category.TransactionCategory) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Table("transaction_categories").Create(toDBTransactionCategory(c)).Error
}

func (r *TransactionCategoryRepository) Update(ctx context.Context, c *category.TransactionCategory) error {
	cdb := toDBTransactionCategory(c)
	// Updates ignora zero values; is_hide volta a false explicitamente.
	return r.DB.WithContext(ctx).Table("transaction_categories").
		Where("id = ?", cdb.Id).
		Select("name", "type", "is_hide", "updated_at").
		Updates(cdb).Error
}

func (r *TransactionCategoryRepository) Delete(ctx context.Context, categoryID, userID ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("transaction_categories").
		Where("id = ? AND user_id = ?", categoryID.String(), userID.String()).
		Delete(&transactionCategoryDB{}).Error
}

func (r *TransactionCategoryRepository) GetByID(ctx context.Context, categoryID, userID ulid.ULID) (*category.TransactionCategory, error) {
	var cdb transactionCategoryDB
	err := r.DB.WithContext(ctx).Table("transaction_categories").
		Where("id = ? AND (user_id = ? OR user_id IS NULL)", categoryID.String(), userID.String()).
		First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransactionCategory(&cdb)
}

func (r *TransactionCategoryRepository) GetByName(ctx context.Context, name string, userID ulid.ULID) (*category.TransactionCategory, error) {
	var cdb transactionCategoryDB
	err := r.DB.WithContext(ctx).Table("transaction_categories").
		Where("LOWER(name) = LOWER(?) AND (user_id = ? OR user_id IS NULL)", name, userID.String()).
		First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransactionCategory(&cdb)
}

func (r *TransactionCategoryRepository) GetAll(ctx context.Context, userID ulid.ULID, categoryType *category.Types, includeHidden bool, pagination *pkg.PaginationParams) ([]*category.TransactionCategory, int64, error) {
	query := r.DB.WithContext(ctx).Table("transaction_categories").
		Where("user_id = ? OR user_id IS NULL", userID.String())
	if categoryType != nil {
		query = query.Where("type = ?", string(*categoryType))
	}
	if !includeHidden {
		query = query.Where("is_hide = ?", false)
	}

	return pkg.Paginate[category.TransactionCategory, transactionCategoryDB](
		query, pagination, "is_default DESC, type ASC, name ASC", toDomainTransactionCategory)
}

func (r *TransactionCategoryRepository) CountTransactions(ctx context.Context, categoryID ulid.ULID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Table("transactions").
		Where("transaction_category_id = ?", categoryID.String()).
		Count(&count).Error
	return count, err
}
