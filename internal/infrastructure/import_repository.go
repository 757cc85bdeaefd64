package infrastructure

import (
	"context"
	"time"

	"MeuBolso/internal/domain/importer"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type ImportRepository struct {
	DB *gorm.DB
}

var _ importer.Repository = (*ImportRepository)(nil)

type importRecordDB struct {
	Id           string    `gorm:"type:varchar(26);primaryKey;column:id"`
	UserId       string    `gorm:"type:varchar(26);index;not null;column:user_id"`
	FileName     string    `gorm:"size:255;not null;column:file_name"`
	RowCount     int       `gorm:"not null;column:row_count"`
	CreatedCount int       `gorm:"not null;column:created_count"`
	Status       string    `gorm:"size:20;not null;column:status"`
	CreatedAt    time.Time `gorm:"not null;column:created_at"`
	UpdatedAt    time.Time `gorm:"not null;column:updated_at"`
}

func toDomainImportRecord(idb *importRecordDB) (*importer.ImportRecord, error) {
	id, err := pkg.ParseULID(idb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULID(idb.UserId)
	if err != nil {
		return nil, err
	}
	return &importer.ImportRecord{
		Id:           id,
		UserId:       uid,
		FileName:     idb.FileName,
		RowCount:     idb.RowCount,
		CreatedCount: idb.CreatedCount,
		Status:       importer.Status(idb.Status),
		CreatedAt:    idb.CreatedAt,
		UpdatedAt:    idb.UpdatedAt,
	}, nil
}

func toDBImportRecord(record *importer.ImportRecord) *importRecordDB {
	return &importRecordDB{
		Id:           record.Id.String(),
		UserId:       record.UserId.String(),
		FileName:     record.FileName,
		RowCount:     record.RowCount,
		CreatedCount: record.CreatedCount,
		Status:       string(record.Status),
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

func (r *ImportRepository) CreateWithTx(ctx context.Context, tx interface{}, record *importer.ImportRecord) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Table("import_transactions").Create(toDBImportRecord(record)).Error
}

func (r *ImportRepository) DeleteWithTx(ctx context.Context, tx interface{}, id ulid.ULID) error {
	db, err := gormTx(tx, r.DB)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Table("import_transactions").
		Where("id = ?", id.String()).
		Delete(&importRecordDB{}).Error
}

func (r *ImportRepository) GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*importer.ImportRecord, error) {
	var idb importRecordDB
	err := r.DB.WithContext(ctx).Table("import_transactions").
		Where("id = ? AND user_id = ?", id.String(), userID.String()).
		First(&idb).Error
	if err != nil {
		return nil, err
	}
	return toDomainImportRecord(&idb)
}

func (r *ImportRepository) GetAll(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*importer.ImportRecord, int64, error) {
	query := r.DB.WithContext(ctx).Table("import_transactions").Where("user_id = ?", userID.String())
	return pkg.Paginate[importer.ImportRecord, importRecordDB](query, pagination, "created_at DESC", toDomainImportRecord)
}
