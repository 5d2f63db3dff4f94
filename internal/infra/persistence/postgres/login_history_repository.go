package postgres

import (
	"context"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// loginHistoryRepository implements the domain.LoginHistoryRepository interface using GORM.
type loginHistoryRepository struct {
	db *gorm.DB
}

// NewLoginHistoryRepository is the constructor for loginHistoryRepository.
func NewLoginHistoryRepository(db *gorm.DB) repository.LoginHistoryRepository {
	return &loginHistoryRepository{db: db}
}

// Create appends one login record.
func (repo *loginHistoryRepository) Create(ctx context.Context, record *entity.LoginHistory) error {
	recordM := &model.LoginHistoryModel{
		UserID:     record.UserID,
		LoggedInAt: record.LoggedInAt,
		UserAgent:  record.UserAgent,
	}

	if err := repo.db.WithContext(ctx).Create(recordM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNotFound.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create login history record")
	}

	return nil
}
