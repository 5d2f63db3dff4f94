package model

import (
	"time"

	"github.com/google/uuid"
)

// LoginHistoryModel mirrors the 'login_history' table. Append-only audit
// rows; nothing in the service reads them back.
type LoginHistoryModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	LoggedInAt time.Time `gorm:"not null"`
	UserAgent  string    `gorm:"type:varchar(512)"`
}

// TableName explicitly sets the table name for GORM.
func (LoginHistoryModel) TableName() string {
	return "login_history"
}
