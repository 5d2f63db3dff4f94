package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"passport/config"
	"passport/internal/domain/repository"
	mockRepo "passport/internal/mocks/repository"
)

// fakeTxManager runs the transactional closure directly against a fixed
// repository factory, so tests observe the exact repository calls a real
// transaction would carry.
type fakeTxManager struct {
	factory repository.RepositoryFactory
	err     error
}

func (f *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	if f.err != nil {
		return f.err
	}

	return fn(f.factory)
}

// fakeFactory hands out the repository mocks created for one test.
type fakeFactory struct {
	users    *mockRepo.MockUserRepository
	sessions *mockRepo.MockSessionRepository
	links    *mockRepo.MockIdentityLinkRepository
	history  *mockRepo.MockLoginHistoryRepository
}

func newFakeFactory(t *testing.T) *fakeFactory {
	return &fakeFactory{
		users:    mockRepo.NewMockUserRepository(t),
		sessions: mockRepo.NewMockSessionRepository(t),
		links:    mockRepo.NewMockIdentityLinkRepository(t),
		history:  mockRepo.NewMockLoginHistoryRepository(t),
	}
}

func (f *fakeFactory) UserRepo() repository.UserRepository                 { return f.users }
func (f *fakeFactory) SessionRepo() repository.SessionRepository           { return f.sessions }
func (f *fakeFactory) IdentityLinkRepo() repository.IdentityLinkRepository { return f.links }
func (f *fakeFactory) LoginHistoryRepo() repository.LoginHistoryRepository { return f.history }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Token = &config.TokenConfig{AccessTTLMinutes: 60, RefreshTTLMinutes: 20160}

	return cfg
}
