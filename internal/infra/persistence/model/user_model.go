// Package model holds the GORM table mappings for the PostgreSQL schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Login        string    `gorm:"type:varchar(255);unique;not null"`
	FullName     string    `gorm:"type:varchar(255)"`
	Role         string    `gorm:"type:varchar(50);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Sessions      []SessionModel      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	IdentityLinks []IdentityLinkModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
