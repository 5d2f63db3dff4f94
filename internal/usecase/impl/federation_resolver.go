package impl

import (
	"context"
	"log/slog"
	"time"

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

// federationResolver implements the FederationUsecase interface.
type federationResolver struct {
	txManager repository.TransactionManager
	registry  service.ProviderRegistry
	hasher    service.PasswordHasher
	tokens    usecase.TokenUsecase
	logger    *slog.Logger
}

// FederationResolverParams holds dependencies for the federation resolver, injected by Fx.
type FederationResolverParams struct {
	fx.In

	TxManager repository.TransactionManager
	Registry  service.ProviderRegistry
	Hasher    service.PasswordHasher
	Tokens    usecase.TokenUsecase
	Logger    *slog.Logger
}

// NewFederationResolver is the constructor for federationResolver.
func NewFederationResolver(params FederationResolverParams) usecase.FederationUsecase {
	return &federationResolver{
		txManager: params.TxManager,
		registry:  params.Registry,
		hasher:    params.Hasher,
		tokens:    params.Tokens,
		logger:    params.Logger,
	}
}

func (srv *federationResolver) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Resolve runs the full federated login. The find-or-create step is one
// transaction: a user row without its identity link is never observable
// from outside. When two first logins for the same external identity
// race, the unique constraint on (provider, external id) fails the
// second insert; that loser retries once and finds the winner's link.
func (srv *federationResolver) Resolve(ctx context.Context, provider entity.Provider, code, userAgent string) (*usecase.FederationResult, error) {
	client, ok := srv.registry.Get(provider)
	if !ok {
		return nil, domainerrors.ErrProviderError.WrapMessage("unknown provider " + provider.String())
	}

	accessToken, err := client.ExchangeCode(ctx, code)
	if err != nil {
		srv.log(ctx).Error("Provider code exchange failed", "error", err, "provider", provider)

		return nil, domainerrors.ErrProviderError.WrapMessage("code exchange failed")
	}
	if accessToken == "" {
		return nil, domainerrors.ErrProviderError.WrapMessage("provider rejected the authorization code")
	}

	identity, err := client.FetchIdentity(ctx, accessToken)
	if err != nil {
		srv.log(ctx).Error("Provider identity fetch failed", "error", err, "provider", provider)

		return nil, domainerrors.ErrProviderError.WrapMessage("identity fetch failed")
	}
	if identity == nil || identity.ExternalID == "" {
		return nil, domainerrors.ErrProviderError.WrapMessage("provider returned no usable identity")
	}

	user, outcome, err := srv.resolveLocal(ctx, provider, identity, userAgent)
	if errors.Is(err, domainerrors.ErrConflict) {
		// Lost the first-login race; the winner's link exists now.
		user, outcome, err = srv.resolveLocal(ctx, provider, identity, userAgent)
	}
	if err != nil {
		return nil, err
	}

	pair, err := srv.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Federated login resolved",
		"provider", provider, "outcome", outcome, "userID", user.ID)

	return &usecase.FederationResult{
		User:    user,
		Outcome: outcome,
		Tokens:  pair,
	}, nil
}

// resolveLocal maps the external identity to a local account within one
// transaction, creating the account and link on first login.
func (srv *federationResolver) resolveLocal(ctx context.Context, provider entity.Provider, identity *service.ProviderIdentity, userAgent string) (*entity.User, usecase.FederationOutcome, error) {
	var (
		user    *entity.User
		outcome usecase.FederationOutcome
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		linkRepo := repoFactory.IdentityLinkRepo()
		historyRepo := repoFactory.LoginHistoryRepo()

		link, err := linkRepo.FindByExternalID(ctx, provider, identity.ExternalID)
		if err != nil && !errors.Is(err, repository.ErrLinkNotFound) {
			return errors.Wrap(err, "failed to find identity link")
		}

		if link != nil {
			user, err = userRepo.FindByID(ctx, link.UserID)
			if err != nil {
				return errors.Wrap(err, "failed to find linked user")
			}
			outcome = usecase.OutcomeFound

			return historyRepo.Create(ctx, &entity.LoginHistory{
				UserID:     user.ID,
				LoggedInAt: time.Now(),
				UserAgent:  userAgent,
			})
		}

		// First login: the account password is random and never
		// disclosed, so the account is reachable only through the
		// provider until a password reset.
		passwordHash, err := srv.hasher.Hash(uuid.New().String())
		if err != nil {
			return errors.Wrap(err, "failed to hash generated password")
		}

		login := identity.Email
		if login == "" {
			login = provider.String() + "_" + identity.ExternalID
		}

		user = &entity.User{
			Login:        login,
			Role:         entity.RoleUser,
			PasswordHash: passwordHash,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}

		if err := linkRepo.Create(ctx, &entity.IdentityLink{
			UserID:     user.ID,
			Provider:   provider,
			ExternalID: identity.ExternalID,
		}); err != nil {
			return err
		}

		outcome = usecase.OutcomeCreated

		return nil
	})
	if err != nil {
		return nil, "", err
	}

	return user, outcome, nil
}
