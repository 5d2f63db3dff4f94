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

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	tokens    usecase.TokenUsecase
	logger    *slog.Logger
}

// AccountServiceParams holds dependencies for the account service, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Tokens    usecase.TokenUsecase
	Config    *config.Config
	Logger    *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager: params.TxManager,
		hasher:    params.Hasher,
		tokens:    params.Tokens,
		logger:    params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup registers a new account with the default user role.
func (srv *accountService) Signup(ctx context.Context, input usecase.SignupInput) (*usecase.SignupOutput, error) {
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Login:        input.Login,
		FullName:     input.FullName,
		Role:         entity.RoleUser,
		PasswordHash: passwordHash,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.UserRepo().Create(ctx, user)
	})
	if err != nil {
		srv.log(ctx).Warn("Signup failed", "error", err, "login", input.Login)

		return nil, err
	}

	srv.log(ctx).Info("Account created", "userID", user.ID, "login", user.Login)

	return &usecase.SignupOutput{User: user}, nil
}

// Login verifies the credentials, issues a token pair, stamps the user's
// last login and appends a login history record.
func (srv *accountService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		historyRepo := repoFactory.LoginHistoryRepo()

		found, err := userRepo.FindByLogin(ctx, input.Login)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if !srv.hasher.Check(input.Password, found.PasswordHash) {
			return domainerrors.ErrInvalidCredentials
		}

		now := time.Now()
		found.LastLoginAt = &now
		if err := userRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to stamp last login")
		}

		if err := historyRepo.Create(ctx, &entity.LoginHistory{
			UserID:     found.ID,
			LoggedInAt: now,
			UserAgent:  input.UserAgent,
		}); err != nil {
			return errors.Wrap(err, "failed to append login history")
		}

		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	pair, err := srv.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Login succeeded", "userID", user.ID)

	return &usecase.LoginOutput{Tokens: pair, User: user}, nil
}

// Logout revokes the refresh token after checking the access token's
// signature. Expiry is deliberately ignored: a client whose access token
// just lapsed can still prove prior authentication and log out.
func (srv *accountService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if !srv.tokens.CheckAccess(ctx, accessToken) {
		return domainerrors.ErrUnauthorized
	}

	return srv.tokens.Revoke(ctx, refreshToken)
}

// LogoutAll revokes every active session of the user.
func (srv *accountService) LogoutAll(ctx context.Context, userID uuid.UUID) (int, error) {
	return srv.tokens.RevokeAll(ctx, userID)
}

// ChangePassword verifies the old password, rejects reuse, stores the new
// hash and revokes all active sessions so stolen refresh tokens die with
// the old credential.
func (srv *accountService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if !srv.hasher.Check(oldPassword, user.PasswordHash) {
			return domainerrors.ErrInvalidCredentials
		}
		if oldPassword == newPassword {
			return domainerrors.ErrPasswordReuse
		}

		newHash, err := srv.hasher.Hash(newPassword)
		if err != nil {
			return errors.Wrap(err, "failed to hash new password")
		}

		user.PasswordHash = newHash

		return userRepo.Update(ctx, user)
	})
	if err != nil {
		return err
	}

	if _, err := srv.tokens.RevokeAll(ctx, userID); err != nil {
		return err
	}

	srv.log(ctx).Info("Password changed", "userID", userID)

	return nil
}

// RevokeSession revokes one of the user's sessions by id. The lookup is
// owner-scoped: a session owned by another user is indistinguishable
// from a missing one. Revoking an already-revoked session is a no-op.
func (srv *accountService) RevokeSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sessionRepo := repoFactory.SessionRepo()

		session, err := sessionRepo.FindByID(ctx, sessionID)
		if err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("session not found")
			}

			return errors.Wrap(err, "failed to find session")
		}

		if session.UserID != userID {
			return domainerrors.ErrNotFound.WrapMessage("session not found")
		}

		if _, err := sessionRepo.RevokeByID(ctx, sessionID); err != nil {
			return errors.Wrap(err, "failed to revoke session")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Session revoked", "userID", userID, "sessionID", sessionID)

	return nil
}

// ListSessions returns the user's active sessions, newest first.
func (srv *accountService) ListSessions(ctx context.Context, userID uuid.UUID) ([]*entity.Session, error) {
	var sessions []*entity.Session

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.SessionRepo().FindActiveByUserID(ctx, userID, time.Now())
		if err != nil {
			return errors.Wrap(err, "failed to find active sessions")
		}

		sessions = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sessions, nil
}
