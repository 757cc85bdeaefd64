package infrastructure

import (
	"context"
	"time"

	"MeuBolso/internal/domain/transaction"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	DB *gorm.DB
}

var _ transaction.Repository = (*TransactionRepository)(nil)

type transactionDB struct {
	Id                    string          `gorm:"type:varchar(26);primaryKey;column:id"`
	ImportId              *string         `gorm:"type:varchar(26);index;column:import_id"`
	UserId                string          `gorm:"type:varchar(26);index;not null;column:user_id"`
	AccountId             string          `gorm:"type:varchar(26);index;not null;column:account_id"`
	TransactionCategoryId string          `gorm:"type:varchar(26);index;not null;column:transaction_category_id"`
	Type                  string          `gorm:"type:varchar(10);not null;column:type"`
	Amount                decimal.Decimal `gorm:"type:decimal(15,2);not null;column:amount"`
	Date                  time.Time       `gorm:"not null;column:date"`
	Note                  string          `gorm:"size:255;column:note"`
	SourceType            *string         `gorm:"type:varchar(20);column:source_type"`
	SourceId              *string         `gorm:"type:varchar(26);column:source_id"`
	Flag                  string          `gorm:"type:varchar(20);not null;column:flag"`
	CreatedAt             time.Time       `gorm:"not null;column:created_at"`
	UpdatedAt             time.Time       `gorm:"not null;column:updated_at"`
}

type transactionTagDB struct {
	TransactionId string `gorm:"type:varchar(26);primaryKey;column:transaction_id"`
	TagId         string `gorm:"type:varchar(26);primaryKey;column:tag_id"`
}

func toDomainTransaction(tdb *transactionDB) (*transaction.Transaction, error) {
	id, err := pkg.ParseULID(tdb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULID(tdb.UserId)
	if err != nil {
		return nil, err
	}
	aid, err := pkg.ParseULID(tdb.AccountId)
	if err != nil {
		return nil, err
	}
	cid, err := pkg.ParseULID(tdb.TransactionCategoryId)
	if err != nil {
		return nil, err
	}
	importID, err := pkg.ParseULIDPtr(tdb.ImportId)
	if err != nil {
		return nil, err
	}
	sourceID, err := pkg.ParseULIDPtr(tdb.SourceId)
	if err != nil {
		return nil, err
	}

	return &transaction.Transaction{
		Id:                    id,
		ImportId:              importID,
		UserId:                uid,
		AccountId:             aid,
		TransactionCategoryId: cid,
		Type:                  transaction.Types(tdb.Type),
		Amount:                tdb.Amount,
		Date:                  tdb.Date,
		Note:                  tdb.Note,
		SourceType:            tdb.SourceType,
		SourceId:              sourceID,
		Flag:                  transaction.Flag(tdb.Flag),
		CreatedAt:             tdb.CreatedAt,
		UpdatedAt:             tdb.UpdatedAt,
	}, nil
}

func toDBTransaction(t *transaction.Transaction) *transactionDB {
	var importID, sourceID *string
	if t.ImportId != nil {
		s := t.ImportId.String()
		importID = &s
	}
	if t.SourceId != nil {
		s := t.SourceId.String()
		sourceID = &s
	}
	return &transactionDB{
		Id:                    t.Id.String(),
		ImportId:              importID,
		UserId:                t.UserId.String(),
		AccountId:             t.AccountId.String(),
		TransactionCategoryId: t.TransactionCategoryId.String(),
		Type:                  string(t.Type),
		Amount:                t.Amount,
		Date:                  t.Date,
		Note:                  t.Note,
		SourceType:            t.SourceType,
		SourceId:              sourceID,
		Flag:                  string(t.Flag),
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	return r.DB.WithContext(ctx).Table("transactions").Create(toDBTransaction(t)).Error
}

func (r *TransactionRepository) CreateWithTx(ctx context.Context, tx interface{}, t *transaction.Transaction) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Table("transactions").Create(toDBTransaction(t)).Error
}

func (r *TransactionRepository) CreateBatchWithTx(ctx context.Context, tx interface{}, ts []*transaction.Transaction) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	rows := make([]*transactionDB, 0, len(ts))
	for _, t := range ts {
		rows = append(rows, toDBTransaction(t))
	}
	return db.WithContext(ctx).Table("transactions").CreateInBatches(rows, 200).Error
}

func (r *TransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	tdb := toDBTransaction(t)
	return r.DB.WithContext(ctx).Table("transactions").Where("id = ?", tdb.Id).Updates(tdb).Error
}

func (r *TransactionRepository) UpdateWithTx(ctx context.Context, tx interface{}, t *transaction.Transaction) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	tdb := toDBTransaction(t)
	return db.WithContext(ctx).Table("transactions").Where("id = ?", tdb.Id).Updates(tdb).Error
}

func (r *TransactionRepository) DeleteWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Table("transactions").
		Where("id = ?", transactionID.String()).
		Delete(&transactionDB{}).Error
}

func (r *TransactionRepository) DeleteBySourceWithTx(ctx context.Context, tx interface{}, sourceType string, sourceID ulid.ULID) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Table("transactions").
		Where("source_type = ? AND source_id = ?", sourceType, sourceID.String()).
		Delete(&transactionDB{}).Error
}

func (r *TransactionRepository) DeleteByImportWithTx(ctx context.Context, tx interface{}, importID ulid.ULID) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).
		Exec(`DELETE FROM transaction_tags WHERE transaction_id IN (SELECT id FROM transactions WHERE import_id = ?)`, importID.String()).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Table("transactions").
		Where("import_id = ?", importID.String()).
		Delete(&transactionDB{}).Error
}

func (r *TransactionRepository) GetByIDAndUser(ctx context.Context, transactionID, userID ulid.ULID) (*transaction.Transaction, error) {
	var tdb transactionDB
	err := r.DB.WithContext(ctx).Table("transactions").
		Where("id = ? AND user_id = ?", transactionID.String(), userID.String()).
		First(&tdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransaction(&tdb)
}

func (r *TransactionRepository) GetAll(ctx context.Context, userID ulid.ULID, filter *transaction.Filter, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	query := r.DB.WithContext(ctx).Table("transactions").Where("transactions.user_id = ?", userID.String())

	orderBy := "date DESC, created_at DESC"
	if filter != nil {
		if filter.AccountId != nil {
			query = query.Where("account_id = ?", filter.AccountId.String())
		}
		if filter.CategoryId != nil {
			query = query.Where("transaction_category_id = ?", filter.CategoryId.String())
		}
		if filter.TagId != nil {
			query = query.Joins("JOIN transaction_tags tt ON tt.transaction_id = transactions.id").
				Where("tt.tag_id = ?", filter.TagId.String())
		}
		if filter.Type != nil {
			query = query.Where("type = ?", string(*filter.Type))
		}
		if filter.Flag != nil {
			query = query.Where("flag = ?", string(*filter.Flag))
		}
		if filter.DateFrom != nil {
			query = query.Where("date >= ?", *filter.DateFrom)
		}
		if filter.DateTo != nil {
			query = query.Where("date <= ?", *filter.DateTo)
		}
		if filter.Search != nil && *filter.Search != "" {
			query = query.Where("note ILIKE ?", "%"+*filter.Search+"%")
		}
		orderBy = sortClause(filter.SortBy, filter.SortDir)
	}

	return pkg.Paginate[transaction.Transaction, transactionDB](query, pagination, orderBy, toDomainTransaction)
}

func sortClause(sortBy, sortDir string) string {
	column := "date"
	switch sortBy {
	case "amount":
		column = "amount"
	case "created_at":
		column = "created_at"
	}
	direction := "DESC"
	if sortDir == "asc" {
		direction = "ASC"
	}
	return column + " " + direction + ", created_at DESC"
}

func (r *TransactionRepository) GetBySource(ctx context.Context, sourceType string, sourceID ulid.ULID) ([]*transaction.Transaction, error) {
	var rows []*transactionDB
	err := r.DB.WithContext(ctx).Table("transactions").
		Where("source_type = ? AND source_id = ?", sourceType, sourceID.String()).
		Order("type ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	transactions := make([]*transaction.Transaction, 0, len(rows))
	for _, row := range rows {
		t, err := toDomainTransaction(row)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

func (r *TransactionRepository) ReplaceTagsWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID, tagIDs []ulid.ULID) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}

	if err := db.WithContext(ctx).Table("transaction_tags").
		Where("transaction_id = ?", transactionID.String()).
		Delete(&transactionTagDB{}).Error; err != nil {
		return err
	}

	if len(tagIDs) == 0 {
		return nil
	}

	rows := make([]*transactionTagDB, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, &transactionTagDB{
			TransactionId: transactionID.String(),
			TagId:         tagID.String(),
		})
	}
	return db.WithContext(ctx).Table("transaction_tags").Create(rows).Error
}

func (r *TransactionRepository) GetTagIDs(ctx context.Context, transactionID ulid.ULID) ([]ulid.ULID, error) {
	var ids []string
	err := r.DB.WithContext(ctx).Table("transaction_tags").
		Where("transaction_id = ?", transactionID.String()).
		Pluck("tag_id", &ids).Error
	if err != nil {
		return nil, err
	}

	tagIDs := make([]ulid.ULID, 0, len(ids))
	for _, raw := range ids {
		id, err := pkg.ParseULID(raw)
		if err != nil {
			return nil, err
		}
		tagIDs = append(tagIDs, id)
	}
	return tagIDs, nil
}
