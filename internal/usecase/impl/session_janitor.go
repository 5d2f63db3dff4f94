package impl

import (
	"context"
	"log/slog"
	"time"

	"passport/config"
	"passport/internal/domain/repository"

	"go.uber.org/fx"
)

// sessionJanitor periodically deletes session rows whose expiry has
// passed. Revoked rows keep their null expiry and are never purged, so
// the logout audit trail survives retention cleanup.
type sessionJanitor struct {
	txManager repository.TransactionManager
	interval  time.Duration
	logger    *slog.Logger
}

// SessionJanitorParams defines the parameters needed to run the janitor.
type SessionJanitorParams struct {
	fx.In
	fx.Lifecycle

	TxManager repository.TransactionManager
	Config    *config.Config
	Logger    *slog.Logger
}

// NewSessionJanitor registers the periodic expired-session purge with
// the application lifecycle.
func NewSessionJanitor(params SessionJanitorParams) *sessionJanitor {
	janitor := &sessionJanitor{
		txManager: params.TxManager,
		interval:  params.Config.Token.PurgeInterval(),
		logger:    params.Logger,
	}

	runCtx, cancel := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go janitor.run(runCtx)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()

			return nil
		},
	})

	return janitor
}

func (j *sessionJanitor) run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.purgeOnce(ctx)
		}
	}
}

// purgeOnce removes every session whose expiry lies in the past.
func (j *sessionJanitor) purgeOnce(ctx context.Context) {
	var deleted int64
	err := j.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		count, err := factory.SessionRepo().DeleteExpiredBefore(ctx, time.Now())
		if err != nil {
			return err
		}
		deleted = count

		return nil
	})
	if err != nil {
		j.logger.Error("Failed to purge expired sessions", slog.Any("error", err))

		return
	}

	if deleted > 0 {
		j.logger.Info("Purged expired sessions", slog.Int64("deleted", deleted))
	}
}
