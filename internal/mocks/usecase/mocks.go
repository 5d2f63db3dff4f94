// Package usecase provides testify mocks for the usecase interfaces,
// used by delivery-layer and composite-service tests.
package usecase

import (
	"context"
	"testing"

	"passport/internal/domain/entity"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTokenUsecase mocks usecase.TokenUsecase.
type MockTokenUsecase struct {
	mock.Mock
}

func NewMockTokenUsecase(t *testing.T) *MockTokenUsecase {
	m := &MockTokenUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenUsecase) Issue(ctx context.Context, userID uuid.UUID) (*entity.TokenPair, error) {
	args := m.Called(ctx, userID)
	pair, _ := args.Get(0).(*entity.TokenPair)

	return pair, args.Error(1)
}

func (m *MockTokenUsecase) CheckRefresh(ctx context.Context, refreshToken string) bool {
	return m.Called(ctx, refreshToken).Bool(0)
}

func (m *MockTokenUsecase) Rotate(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	pair, _ := args.Get(0).(*entity.TokenPair)

	return pair, args.Error(1)
}

func (m *MockTokenUsecase) Revoke(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *MockTokenUsecase) RevokeAll(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)

	return args.Int(0), args.Error(1)
}

func (m *MockTokenUsecase) DecodeAccess(ctx context.Context, accessToken string) *entity.AccessClaims {
	claims, _ := m.Called(ctx, accessToken).Get(0).(*entity.AccessClaims)

	return claims
}

func (m *MockTokenUsecase) CheckAccess(ctx context.Context, accessToken string) bool {
	return m.Called(ctx, accessToken).Bool(0)
}

// MockAccountUsecase mocks usecase.AccountUsecase.
type MockAccountUsecase struct {
	mock.Mock
}

func NewMockAccountUsecase(t *testing.T) *MockAccountUsecase {
	m := &MockAccountUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAccountUsecase) Signup(ctx context.Context, input usecase.SignupInput) (*usecase.SignupOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.SignupOutput)

	return out, args.Error(1)
}

func (m *MockAccountUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.LoginOutput)

	return out, args.Error(1)
}

func (m *MockAccountUsecase) Logout(ctx context.Context, accessToken, refreshToken string) error {
	return m.Called(ctx, accessToken, refreshToken).Error(0)
}

func (m *MockAccountUsecase) LogoutAll(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)

	return args.Int(0), args.Error(1)
}

func (m *MockAccountUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	return m.Called(ctx, userID, oldPassword, newPassword).Error(0)
}

func (m *MockAccountUsecase) RevokeSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	return m.Called(ctx, userID, sessionID).Error(0)
}

func (m *MockAccountUsecase) ListSessions(ctx context.Context, userID uuid.UUID) ([]*entity.Session, error) {
	args := m.Called(ctx, userID)
	sessions, _ := args.Get(0).([]*entity.Session)

	return sessions, args.Error(1)
}

// MockFederationUsecase mocks usecase.FederationUsecase.
type MockFederationUsecase struct {
	mock.Mock
}

func NewMockFederationUsecase(t *testing.T) *MockFederationUsecase {
	m := &MockFederationUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockFederationUsecase) Resolve(ctx context.Context, provider entity.Provider, code, userAgent string) (*usecase.FederationResult, error) {
	args := m.Called(ctx, provider, code, userAgent)
	result, _ := args.Get(0).(*usecase.FederationResult)

	return result, args.Error(1)
}
