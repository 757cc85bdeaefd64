package infrastructure

import (
	"context"
	"time"

	"MeuBolso/internal/domain/setting"
	"MeuBolso/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository struct {
	DB *gorm.DB
}

var _ setting.Repository = (*SettingRepository)(nil)

type settingDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey;column:id"`
	UserId    string    `gorm:"type:varchar(26);uniqueIndex:idx_settings_user_key;not null;column:user_id"`
	Key       string    `gorm:"size:100;uniqueIndex:idx_settings_user_key;not null;column:key"`
	Value     string    `gorm:"type:text;column:value"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
}

func toDomainSetting(sdb *settingDB) (*setting.Setting, error) {
	id, err := pkg.ParseULID(sdb.Id)
	if err != nil {
		return nil, err
	}
	uid, err := pkg.ParseULID(sdb.UserId)
	if err != nil {
		return nil, err
	}
	return &setting.Setting{
		Id:        id,
		UserId:    uid,
		Key:       sdb.Key,
		Value:     sdb.Value,
		CreatedAt: sdb.CreatedAt,
		UpdatedAt: sdb.UpdatedAt,
	}, nil
}

func (r *SettingRepository) Upsert(ctx context.Context, s *setting.Setting) error {
	sdb := &settingDB{
		Id:        s.Id.String(),
		UserId:    s.UserId.String(),
		Key:       s.Key,
		Value:     s.Value,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	return r.DB.WithContext(ctx).Table("settings").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(sdb).Error
}

func (r *SettingRepository) GetByKey(ctx context.Context, userID ulid.ULID, key string) (*setting.Setting, error) {
	var sdb settingDB
	err := r.DB.WithContext(ctx).Table("settings").
		Where("user_id = ? AND key = ?", userID.String(), key).
		First(&sdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainSetting(&sdb)
}

func (r *SettingRepository) GetAll(ctx context.Context, userID ulid.ULID) ([]*setting.Setting, error) {
	var rows []*settingDB
	err := r.DB.WithContext(ctx).Table("settings").
		Where("user_id = ?", userID.String()).
		Order("key ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	settings := make([]*setting.Setting, 0, len(rows))
	for _, row := range rows {
		s, err := toDomainSetting(row)
		if err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, nil
}
