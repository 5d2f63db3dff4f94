// Package repository provides testify mocks for the domain repository
// interfaces. Each constructor registers an expectations assertion with
// the test's cleanup so forgotten stubs fail the test.
package repository

import (
	"context"
	"testing"
	"time"

	"passport/internal/domain/entity"
	"passport/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTransactionManager mocks repository.TransactionManager.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates a mock wired to the test lifecycle.
func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)

	return args.Error(0)
}

// MockRepositoryFactory mocks repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

func NewMockRepositoryFactory(t *testing.T) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) UserRepo() repository.UserRepository {
	return m.Called().Get(0).(repository.UserRepository)
}

func (m *MockRepositoryFactory) SessionRepo() repository.SessionRepository {
	return m.Called().Get(0).(repository.SessionRepository)
}

func (m *MockRepositoryFactory) IdentityLinkRepo() repository.IdentityLinkRepository {
	return m.Called().Get(0).(repository.IdentityLinkRepository)
}

func (m *MockRepositoryFactory) LoginHistoryRepo() repository.LoginHistoryRepository {
	return m.Called().Get(0).(repository.LoginHistoryRepository)
}

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserRepository) FindByLogin(ctx context.Context, login string) (*entity.User, error) {
	args := m.Called(ctx, login)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockSessionRepository mocks repository.SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func NewMockSessionRepository(t *testing.T) *MockSessionRepository {
	m := &MockSessionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockSessionRepository) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	session, _ := args.Get(0).(*entity.Session)

	return session, args.Error(1)
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*entity.Session)

	return session, args.Error(1)
}

func (m *MockSessionRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID, now time.Time) ([]*entity.Session, error) {
	args := m.Called(ctx, userID, now)
	sessions, _ := args.Get(0).([]*entity.Session)

	return sessions, args.Error(1)
}

func (m *MockSessionRepository) RevokeByToken(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) RevokeByID(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) DeleteExpiredBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)

	return args.Get(0).(int64), args.Error(1)
}

// MockIdentityLinkRepository mocks repository.IdentityLinkRepository.
type MockIdentityLinkRepository struct {
	mock.Mock
}

func NewMockIdentityLinkRepository(t *testing.T) *MockIdentityLinkRepository {
	m := &MockIdentityLinkRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockIdentityLinkRepository) FindByExternalID(ctx context.Context, provider entity.Provider, externalID string) (*entity.IdentityLink, error) {
	args := m.Called(ctx, provider, externalID)
	link, _ := args.Get(0).(*entity.IdentityLink)

	return link, args.Error(1)
}

func (m *MockIdentityLinkRepository) Create(ctx context.Context, link *entity.IdentityLink) error {
	return m.Called(ctx, link).Error(0)
}

// MockLoginHistoryRepository mocks repository.LoginHistoryRepository.
type MockLoginHistoryRepository struct {
	mock.Mock
}

func NewMockLoginHistoryRepository(t *testing.T) *MockLoginHistoryRepository {
	m := &MockLoginHistoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockLoginHistoryRepository) Create(ctx context.Context, record *entity.LoginHistory) error {
	return m.Called(ctx, record).Error(0)
}
