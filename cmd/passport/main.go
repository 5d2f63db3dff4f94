package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"passport/config"
	"passport/internal/delivery"
	"passport/internal/delivery/http"
	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/router/handler"
	"passport/internal/domain/service"
	"passport/internal/infra/auth"
	logs "passport/internal/infra/log"
	"passport/internal/infra/oauth"
	"passport/internal/infra/persistence/postgres"
	"passport/internal/infra/token"
	"passport/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			impl.NewSessionJanitor,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newPasswordHasher,
			newTokenCodec,
			newProviderRegistry,
		),
	)
}

// newPasswordHasher creates a bcrypt hasher with the configured cost.
func newPasswordHasher(cfg *config.Config) service.PasswordHasher {
	if cfg.Auth == nil {
		return auth.NewBcryptHasher(0)
	}

	return auth.NewBcryptHasher(cfg.Auth.BcryptCost)
}

// newTokenCodec creates the signed-token codec from the configured secret.
func newTokenCodec(cfg *config.Config) (service.TokenCodec, error) {
	codec, err := token.NewCodec(cfg.Token.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}

	return codec, nil
}

// newProviderRegistry wires every configured identity provider client.
func newProviderRegistry(cfg *config.Config) service.ProviderRegistry {
	return oauth.NewRegistry(
		oauth.NewVKClient(cfg),
		oauth.NewYandexClient(cfg),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewTokenManager,
			impl.NewFederationResolver,
			impl.NewAccountService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
			middleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
