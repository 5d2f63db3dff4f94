// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"passport/config"
	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// tokenManager implements the TokenUsecase interface.
type tokenManager struct {
	txManager  repository.TransactionManager
	codec      service.TokenCodec
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *slog.Logger
}

// TokenManagerParams holds dependencies for the token manager, injected by Fx.
type TokenManagerParams struct {
	fx.In

	TxManager repository.TransactionManager
	Codec     service.TokenCodec
	Config    *config.Config
	Logger    *slog.Logger
}

// NewTokenManager is the constructor for tokenManager.
func NewTokenManager(params TokenManagerParams) usecase.TokenUsecase {
	return &tokenManager{
		txManager:  params.TxManager,
		codec:      params.Codec,
		accessTTL:  params.Config.Token.AccessTTL(),
		refreshTTL: params.Config.Token.RefreshTTL(),
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *tokenManager) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Issue creates a fresh token pair for the user. The access token embeds
// the user's claims with expiry now+accessTTL; the refresh token is an
// opaque random value backed by a session row expiring at now+refreshTTL.
// Session rows only ever enter the active state here.
func (srv *tokenManager) Issue(ctx context.Context, userID uuid.UUID) (*entity.TokenPair, error) {
	var pair *entity.TokenPair

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		sessionRepo := repoFactory.SessionRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		now := time.Now()
		accessToken, err := srv.codec.Encode(&entity.AccessClaims{
			UserID:       user.ID,
			Login:        user.Login,
			FullName:     user.FullName,
			Role:         user.Role,
			ValidThrough: now.Add(srv.accessTTL),
		})
		if err != nil {
			return errors.Wrap(err, "failed to encode access token")
		}

		expiredAt := now.Add(srv.refreshTTL)
		session := &entity.Session{
			UserID:    user.ID,
			Token:     uuid.New().String(),
			ExpiredAt: &expiredAt,
		}
		if err := sessionRepo.Create(ctx, session); err != nil {
			return errors.Wrap(err, "failed to create session")
		}

		pair = &entity.TokenPair{
			AccessToken:  accessToken,
			RefreshToken: session.Token,
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to issue token pair", "error", err, "userID", userID)

		return nil, err
	}

	return pair, nil
}

// CheckRefresh reports whether the refresh token belongs to an active
// session. Absent, revoked and expired sessions all read the same: false.
func (srv *tokenManager) CheckRefresh(ctx context.Context, refreshToken string) bool {
	active := false

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		session, err := repoFactory.SessionRepo().FindByToken(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to find session")
		}

		active = session.IsActive(time.Now())

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to check refresh token", "error", err)

		return false
	}

	return active
}

// Rotate redeems an active refresh token for a wholly new pair. The old
// session is revoked with a conditional write; when the write matches no
// row a concurrent rotation already spent the token and this caller gets
// the same uniform unauthorized signal as an invalid token.
func (srv *tokenManager) Rotate(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	var userID uuid.UUID

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sessionRepo := repoFactory.SessionRepo()

		session, err := sessionRepo.FindByToken(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				return domainerrors.ErrUnauthorized
			}

			return errors.Wrap(err, "failed to find session")
		}
		if !session.IsActive(time.Now()) {
			return domainerrors.ErrUnauthorized
		}

		rows, err := sessionRepo.RevokeByToken(ctx, refreshToken)
		if err != nil {
			return errors.Wrap(err, "failed to revoke session")
		}
		if rows == 0 {
			// A concurrent rotation of the same token got there first.
			return domainerrors.ErrUnauthorized
		}

		userID = session.UserID

		return nil
	})
	if err != nil {
		return nil, err
	}

	return srv.Issue(ctx, userID)
}

// Revoke invalidates the session behind the refresh token. Idempotent:
// unknown and already-revoked tokens are a no-op.
func (srv *tokenManager) Revoke(ctx context.Context, refreshToken string) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.SessionRepo().RevokeByToken(ctx, refreshToken); err != nil {
			return errors.Wrap(err, "failed to revoke session")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to revoke refresh token", "error", err)

		return err
	}

	return nil
}

// RevokeAll revokes every active session of the user and returns how many
// were revoked. Only active sessions are touched: expired and already
// revoked rows stay as they are.
func (srv *tokenManager) RevokeAll(ctx context.Context, userID uuid.UUID) (int, error) {
	revoked := 0

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sessionRepo := repoFactory.SessionRepo()

		sessions, err := sessionRepo.FindActiveByUserID(ctx, userID, time.Now())
		if err != nil {
			return errors.Wrap(err, "failed to find active sessions")
		}

		for _, session := range sessions {
			rows, err := sessionRepo.RevokeByID(ctx, session.ID)
			if err != nil {
				return errors.Wrap(err, "failed to revoke session")
			}
			revoked += int(rows)
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to revoke all sessions", "error", err, "userID", userID)

		return 0, err
	}

	srv.log(ctx).Info("Revoked all sessions", "userID", userID, "count", revoked)

	return revoked, nil
}

// DecodeAccess verifies an access token and returns its claims, or nil
// when the token is malformed, forged or past its embedded expiry.
func (srv *tokenManager) DecodeAccess(_ context.Context, accessToken string) *entity.AccessClaims {
	claims, err := srv.codec.Decode(accessToken)
	if err != nil {
		return nil
	}
	if claims.ExpiredAt(time.Now()) {
		return nil
	}

	return claims
}

// CheckAccess reports whether the access token carries a genuine
// signature, regardless of its embedded expiry.
func (srv *tokenManager) CheckAccess(_ context.Context, accessToken string) bool {
	return srv.codec.Verify(accessToken)
}
