package setting

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Setting guarda pares chave/valor por usuário (moeda, tema, preferências).
type Setting struct {
	Id        ulid.ULID `json:"id" gorm:"type:varchar(26);primaryKey"`
	UserId    ulid.ULID `json:"user_id" gorm:"type:varchar(26);not null;uniqueIndex:idx_settings_user_key"`
	Key       string    `json:"key" gorm:"type:varchar(100);not null;uniqueIndex:idx_settings_user_key"`
	Value     string    `json:"value" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}
