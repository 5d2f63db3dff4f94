package repository

import (
	"context"

	"passport/internal/domain/entity"
)

// LoginHistoryRepository is the append-only audit sink for successful
// logins. The token subsystem writes rows and never reads them back.
type LoginHistoryRepository interface {
	// Create appends one login record.
	Create(ctx context.Context, record *entity.LoginHistory) error
}
