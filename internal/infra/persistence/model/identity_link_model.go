package model

import (
	"time"

	"github.com/google/uuid"
)

// IdentityLinkModel mirrors the 'identity_links' table. The composite
// unique index on (provider, external id) is the authoritative guard
// against two concurrent first logins creating duplicate accounts.
type IdentityLinkModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Provider   string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_identity_links_provider_external_id"`
	ExternalID string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_identity_links_provider_external_id"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (IdentityLinkModel) TableName() string {
	return "identity_links"
}
