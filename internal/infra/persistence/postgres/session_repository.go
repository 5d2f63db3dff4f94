package postgres

import (
	"context"
	"time"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sessionRepository implements the domain.SessionRepository interface using GORM.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new session row.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("session token already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNotFound.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}

	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt
	session.UpdatedAt = sessionM.UpdatedAt

	return nil
}

// FindByToken retrieves a session by its opaque refresh-token value.
func (repo *sessionRepository) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	var sessionM model.SessionModel
	err := repo.db.WithContext(ctx).
		Where("token = ?", token).
		First(&sessionM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session by token")
	}

	return toSessionDomain(&sessionM), nil
}

// FindByID retrieves a session by its unique ID.
func (repo *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	var sessionM model.SessionModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sessionM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session by id")
	}

	return toSessionDomain(&sessionM), nil
}

// FindActiveByUserID retrieves every session of the user whose expiry is
// set and later than now, newest first.
func (repo *sessionRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID, now time.Time) ([]*entity.Session, error) {
	var sessionModels []model.SessionModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND expired_at IS NOT NULL AND expired_at > ?", userID, now).
		Order("created_at DESC").
		Find(&sessionModels).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find active sessions")
	}

	sessions := make([]*entity.Session, 0, len(sessionModels))
	for i := range sessionModels {
		sessions = append(sessions, toSessionDomain(&sessionModels[i]))
	}

	return sessions, nil
}

// RevokeByToken nulls the expiry of the session with the given token.
// The IS NOT NULL guard makes the write conditional: of two concurrent
// rotations of the same token, only one observes RowsAffected == 1.
func (repo *sessionRepository) RevokeByToken(ctx context.Context, token string) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.SessionModel{}).
		Where("token = ? AND expired_at IS NOT NULL", token).
		Updates(map[string]any{"expired_at": nil, "updated_at": time.Now()})

	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to revoke session by token")
	}

	return result.RowsAffected, nil
}

// RevokeByID nulls the expiry of the session with the given ID under the
// same conditional-write rules as RevokeByToken.
func (repo *sessionRepository) RevokeByID(ctx context.Context, id uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.SessionModel{}).
		Where("id = ? AND expired_at IS NOT NULL", id).
		Updates(map[string]any{"expired_at": nil, "updated_at": time.Now()})

	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to revoke session by id")
	}

	return result.RowsAffected, nil
}

// DeleteExpiredBefore removes sessions whose expiry passed before the
// given instant. Revoked rows (NULL expiry) are kept for audit.
func (repo *sessionRepository) DeleteExpiredBefore(ctx context.Context, before time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expired_at IS NOT NULL AND expired_at < ?", before).
		Delete(&model.SessionModel{})

	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete expired sessions")
	}

	return result.RowsAffected, nil
}

// toSessionDomain converts a GORM SessionModel to a domain Session entity.
func toSessionDomain(data *model.SessionModel) *entity.Session {
	if data == nil {
		return nil
	}

	return &entity.Session{
		ID:        data.ID,
		UserID:    data.UserID,
		Token:     data.Token,
		ExpiredAt: data.ExpiredAt,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromSessionDomain converts a domain Session entity to a GORM SessionModel for persistence.
func fromSessionDomain(data *entity.Session) *model.SessionModel {
	if data == nil {
		return nil
	}

	return &model.SessionModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Token:     data.Token,
		ExpiredAt: data.ExpiredAt,
	}
}
