package importer

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Status string

const (
	StatusCompleted Status = "completed"
)

// ImportRecord registra um arquivo importado e agrupa, via import_id, as
// transações que ele produziu. Como a importação roda inteira em uma única
// transação de banco, só importações concluídas chegam a ser persistidas.
type ImportRecord struct {
	Id           ulid.ULID `json:"id" gorm:"type:varchar(26);primaryKey"`
	UserId       ulid.ULID `json:"user_id" gorm:"type:varchar(26);not null;index"`
	FileName     string    `json:"file_name" gorm:"type:varchar(255);not null"`
	RowCount     int       `json:"row_count" gorm:"not null"`
	CreatedCount int       `json:"created_count" gorm:"not null"`
	Status       Status    `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (ImportRecord) TableName() string {
	return "import_transactions"
}
