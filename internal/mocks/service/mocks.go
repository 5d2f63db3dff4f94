// Package service provides testify mocks for the domain service
// interfaces.
package service

import (
	"context"
	"testing"

	"passport/internal/domain/entity"
	"passport/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// MockTokenCodec mocks service.TokenCodec.
type MockTokenCodec struct {
	mock.Mock
}

func NewMockTokenCodec(t *testing.T) *MockTokenCodec {
	m := &MockTokenCodec{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenCodec) Encode(claims *entity.AccessClaims) (string, error) {
	args := m.Called(claims)

	return args.String(0), args.Error(1)
}

func (m *MockTokenCodec) Decode(token string) (*entity.AccessClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*entity.AccessClaims)

	return claims, args.Error(1)
}

func (m *MockTokenCodec) Verify(token string) bool {
	return m.Called(token).Bool(0)
}

// MockProviderClient mocks service.ProviderClient.
type MockProviderClient struct {
	mock.Mock
}

func NewMockProviderClient(t *testing.T) *MockProviderClient {
	m := &MockProviderClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProviderClient) ExchangeCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)

	return args.String(0), args.Error(1)
}

func (m *MockProviderClient) FetchIdentity(ctx context.Context, accessToken string) (*service.ProviderIdentity, error) {
	args := m.Called(ctx, accessToken)
	identity, _ := args.Get(0).(*service.ProviderIdentity)

	return identity, args.Error(1)
}

func (m *MockProviderClient) Provider() entity.Provider {
	return m.Called().Get(0).(entity.Provider)
}

// MockProviderRegistry mocks service.ProviderRegistry.
type MockProviderRegistry struct {
	mock.Mock
}

func NewMockProviderRegistry(t *testing.T) *MockProviderRegistry {
	m := &MockProviderRegistry{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProviderRegistry) Get(provider entity.Provider) (service.ProviderClient, bool) {
	args := m.Called(provider)
	client, _ := args.Get(0).(service.ProviderClient)

	return client, args.Bool(1)
}
