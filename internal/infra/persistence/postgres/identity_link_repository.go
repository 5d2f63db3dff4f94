package postgres

import (
	"context"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// identityLinkRepository implements the domain.IdentityLinkRepository interface using GORM.
type identityLinkRepository struct {
	db *gorm.DB
}

// NewIdentityLinkRepository is the constructor for identityLinkRepository.
func NewIdentityLinkRepository(db *gorm.DB) repository.IdentityLinkRepository {
	return &identityLinkRepository{db: db}
}

// FindByExternalID retrieves the link for an external identity.
func (repo *identityLinkRepository) FindByExternalID(ctx context.Context, provider entity.Provider, externalID string) (*entity.IdentityLink, error) {
	var linkM model.IdentityLinkModel
	err := repo.db.WithContext(ctx).
		Where("provider = ? AND external_id = ?", provider.String(), externalID).
		First(&linkM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLinkNotFound
		}

		return nil, errors.Wrap(err, "failed to find identity link")
	}

	return toIdentityLinkDomain(&linkM), nil
}

// Create persists a new identity link. A violation of the unique
// (provider, external id) constraint surfaces as a domain conflict so
// the caller can re-read the winning row.
func (repo *identityLinkRepository) Create(ctx context.Context, link *entity.IdentityLink) error {
	linkM := fromIdentityLinkDomain(link)

	if err := repo.db.WithContext(ctx).Create(linkM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("identity link already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNotFound.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create identity link")
	}

	link.ID = linkM.ID
	link.CreatedAt = linkM.CreatedAt

	return nil
}

// toIdentityLinkDomain converts a GORM IdentityLinkModel to a domain IdentityLink entity.
func toIdentityLinkDomain(data *model.IdentityLinkModel) *entity.IdentityLink {
	if data == nil {
		return nil
	}

	return &entity.IdentityLink{
		ID:         data.ID,
		UserID:     data.UserID,
		Provider:   entity.Provider(data.Provider),
		ExternalID: data.ExternalID,
		CreatedAt:  data.CreatedAt,
	}
}

// fromIdentityLinkDomain converts a domain IdentityLink entity to a GORM IdentityLinkModel for persistence.
func fromIdentityLinkDomain(data *entity.IdentityLink) *model.IdentityLinkModel {
	if data == nil {
		return nil
	}

	return &model.IdentityLinkModel{
		ID:         data.ID,
		UserID:     data.UserID,
		Provider:   data.Provider.String(),
		ExternalID: data.ExternalID,
	}
}
