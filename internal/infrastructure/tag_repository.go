package infrastructure

import (
	"context"
	"time"

	"MeuBolso/internal/domain/tag"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type TagRepository struct {
	DB *gorm.DB
}

var _ tag.Repository = (*TagRepository)(nil)

type tagDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey;column:id"`
	UserId    string    `gorm:"type:varchar(26);index;not null;column:user_id"`
	Name      string    `gorm:"size:100;not null;column:name"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
}

func toDomainTag(tdb *tagDB) (*tag.Tag, error) {
	id, err := pkg.ParseULID(tdb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULID(tdb.UserId)
	if err != nil {
		return nil, err
	}
	return &tag.Tag{
		Id:        id,
		UserId:    uid,
		Name:      tdb.Name,
		CreatedAt: tdb.CreatedAt,
		UpdatedAt: tdb.UpdatedAt,
	}, nil
}

func toDBTag(t *tag.Tag) *tagDB {
	return &tagDB{
		Id:        t.Id.String(),
		UserId:    t.UserId.String(),
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (r *TagRepository) Create(ctx context.Context, t *tag.Tag) error {
	return r.DB.WithContext(ctx).Table("tags").Create(toDBTag(t)).Error
}

func (r *TagRepository) Update(ctx context.Context, t *tag.Tag) error {
	tdb := toDBTag(t)
	return r.DB.WithContext(ctx).Table("tags").Where("id = ?", tdb.Id).Updates(tdb).Error
}

func (r *TagRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return r.DB.WithContext(ctx).Table("tags").Where("id = ?", id.String()).Delete(&tagDB{}).Error
}

func (r *TagRepository) GetByID(ctx context.Context, id ulid.ULID) (*tag.Tag, error) {
	var tdb tagDB
	err := r.DB.WithContext(ctx).Table("tags").Where("id = ?", id.String()).First(&tdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainTag(&tdb)
}

func (r *TagRepository) GetByName(ctx context.Context, userID ulid.ULID, name string) (*tag.Tag, error) {
	var tdb tagDB
	err := r.DB.WithContext(ctx).Table("tags").
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID.String(), name).
		First(&tdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainTag(&tdb)
}

func (r *TagRepository) GetByUserID(ctx context.Context, userID ulid.ULID, search *string, pagination *pkg.PaginationParams) ([]*tag.Tag, int64, error) {
	query := r.DB.WithContext(ctx).Table("tags").Where("user_id = ?", userID.String())
	if search != nil && *search != "" {
		query = query.Where("name ILIKE ?", "%"+*search+"%")
	}
	return pkg.Paginate[tag.Tag, tagDB](query, pagination, "name ASC", toDomainTag)
}

func (r *TagRepository) CountTransactions(ctx context.Context, tagID ulid.ULID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Table("transaction_tags").
		Where("tag_id = ?", tagID.String()).
		Count(&count).Error
	return count, err
}
