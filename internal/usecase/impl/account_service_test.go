package impl

import (
	"context"
	"testing"
	"time"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	mockService "passport/internal/mocks/service"
	mockUsecase "passport/internal/mocks/usecase"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAccountService(t *testing.T, factory *fakeFactory, hasher *mockService.MockPasswordHasher, tokens *mockUsecase.MockTokenUsecase) usecase.AccountUsecase {
	return NewAccountService(AccountServiceParams{
		TxManager: &fakeTxManager{factory: factory},
		Hasher:    hasher,
		Tokens:    tokens,
		Config:    testConfig(),
		Logger:    testLogger(),
	})
}

func TestAccountService_Signup_Success(t *testing.T) {
	factory := newFakeFactory(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockUsecase.NewMockTokenUsecase(t)
	service := newAccountService(t, factory, hasher, tokens)

	ctx := context.Background()

	hasher.On("Hash", "s3cret").Return("$2a$10$hash", nil)
	factory.users.On("Create", ctx, mock.MatchedBy(func(user *entity.User) bool {
		return user.Login == "alice" &&
			user.FullName == "Alice Liddell" &&
			user.Role == entity.RoleUser &&
			user.PasswordHash == "$2a$10$hash"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.User).ID = uuid.New()
	}).Return(nil)

	out, err := service.Signup(ctx, usecase.SignupInput{Login: "alice", FullName: "Alice Liddell", Password: "s3cret"})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, out.User.ID)
}

func TestAccountService_Signup_DuplicateLogin(t *testing.T) {
	factory := newFakeFactory(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockUsecase.NewMockTokenUsecase(t)
	service := newAccountService(t, factory, hasher, tokens)

	ctx := context.Background()

	hasher.On("Hash", "s3cret").Return("$2a$10$hash", nil)
	factory.users.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrConflict.WrapMessage("login already exists"))

	out, err := service.Signup(ctx, usecase.SignupInput{Login: "alice", Password: "s3cret"})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestAccountService_Login_Success(t *testing.T) {
	factory := newFakeFactory(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockUsecase.NewMockTokenUsecase(t)
	service := newAccountService(t, factory, hasher, tokens)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, Login: "alice", PasswordHash: "$2a$10$hash", Role: entity.RoleUser}
	pair := &entity.TokenPair{AccessToken: "access", RefreshToken: "refresh"}

	factory.users.On("FindByLogin", ctx, "alice").Return(user, nil)
	hasher.On("Check", "s3cret", "$2a$10$hash").Return(true)
	factory.users.On("Update", ctx, mock.MatchedBy(func(updated *entity.User) bool {
		return updated.ID == userID && updated.LastLoginAt != nil
	})).Return(nil)
	factory.history.On("Create", ctx, mock.MatchedBy(func(record *entity.LoginHistory) bool {
		return record.UserID == userID && record.UserAgent == "curl/8.0"
	})).Return(nil)
	tokens.On("Issue", ctx, userID).Return(pair, nil)

	out, err := service.Login(ctx, usecase.LoginInput{Login: "alice", Password: "s3cret", UserAgent: "curl/8.0"})

	require.NoError(t, err)
	assert.Equal(t, pair, out.Tokens)
	assert.Equal(t, userID, out.User.ID)
}

func TestAccountService_Login_UnknownUser(t *testing.T) {
	factory := newFakeFactory(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockUsecase.NewMockTokenUsecase(t)
	service := newAccountService(t, factory, hasher, tokens)

	ctx := context.Background()

	factory.users.On("FindByLogin", ctx, "ghost").Return(nil, repository.ErrUserNotFound)

	out, err := service.Login(ctx, usecase.LoginInput{Login: "ghost", Password: "whatever"})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	factory := newFakeFactory(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockUsecase.NewMockTokenUsecase(t)
	service := newAccountService(t, factory, hasher, tokens)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Login: "alice", PasswordHash: "$2a$10$hash"}

	factory.users.On("FindByLogin", ctx, "alice").Return(user, nil)
	hasher.On("Check", "wrong", "$2a$10$hash").Return(false)

	out, err := service.Login(ctx, usecase.LoginInput{Login: "alice", Password: "wrong"})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_Logout_AcceptsExpiredAccessToken(t *testing.T) {
	factory := newFakeFactory(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockUsecase.NewMockTokenUsecase(t)
	service := newAccountService(t, factory, hasher, tokens)

	ctx := context.Background()

	// CheckAccess is expiry-independent, so a lapsed but genuine access
	// token still authorizes the logout.
	tokens.On("CheckAccess", ctx, "expired-but-genuine").Return(true)
	tokens.On("Revoke", ctx, "refresh").Return(nil)

	assert.NoError(t, service.Logout(ctx, "expired-but-genuine", "refresh"))
}

func TestAccountService_Logout_ForgedAccessToken(t *testing.T) {
	factory := newFakeFactory(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockUsecase.NewMockTokenUsecase(t)
	service := newAccountService(t, factory, hasher, tokens)

	ctx := context.Background()

	tokens.On("CheckAccess", ctx, "forged").Return(false)

	err := service.Logout(ctx, "forged", "refresh")

	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAccountService_LogoutAll(t *testing.T) {
	factory := newFakeFactory(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockUsecase.NewMockTokenUsecase(t)
	service := newAccountService(t, factory, hasher, tokens)

	ctx := context.Background()
	userID := uuid.New()

	tokens.On("RevokeAll", ctx, userID).Return(3, nil)

	count, err := service.LogoutAll(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestAccountService_ChangePassword_Success(t *testing.T) {
	factory := newFakeFactory(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockUsecase.NewMockTokenUsecase(t)
	service := newAccountService(t, factory, hasher, tokens)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, PasswordHash: "$2a$10$old"}

	factory.users.On("FindByID", ctx, userID).Return(user, nil)
	hasher.On("Check", "old-pass", "$2a$10$old").Return(true)
	hasher.On("Hash", "new-pass").Return("$2a$10$new", nil)
	factory.users.On("Update", ctx, mock.MatchedBy(func(updated *entity.User) bool {
		return updated.PasswordHash == "$2a$10$new"
	})).Return(nil)

	// Every live session dies with the old credential.
	tokens.On("RevokeAll", ctx, userID).Return(2, nil)

	assert.NoError(t, service.ChangePassword(ctx, userID, "old-pass", "new-pass"))
}

func TestAccountService_ChangePassword_RejectsReuse(t *testing.T) {
	factory := newFakeFactory(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockUsecase.NewMockTokenUsecase(t)
	service := newAccountService(t, factory, hasher, tokens)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, PasswordHash: "$2a$10$old"}

	factory.users.On("FindByID", ctx, userID).Return(user, nil)
	hasher.On("Check", "same-pass", "$2a$10$old").Return(true)

	err := service.ChangePassword(ctx, userID, "same-pass", "same-pass")

	assert.ErrorIs(t, err, domainerrors.ErrPasswordReuse)
}

func TestAccountService_ChangePassword_WrongOldPassword(t *testing.T) {
	factory := newFakeFactory(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockUsecase.NewMockTokenUsecase(t)
	service := newAccountService(t, factory, hasher, tokens)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, PasswordHash: "$2a$10$old"}

	factory.users.On("FindByID", ctx, userID).Return(user, nil)
	hasher.On("Check", "wrong", "$2a$10$old").Return(false)

	err := service.ChangePassword(ctx, userID, "wrong", "new-pass")

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_RevokeSession_Success(t *testing.T) {
	factory := newFakeFactory(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockUsecase.NewMockTokenUsecase(t)
	service := newAccountService(t, factory, hasher, tokens)

	ctx := context.Background()
	userID := uuid.New()
	sessionID := uuid.New()
	expiry := time.Now().Add(time.Hour)

	factory.sessions.On("FindByID", ctx, sessionID).Return(&entity.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiredAt: &expiry,
	}, nil)
	factory.sessions.On("RevokeByID", ctx, sessionID).Return(int64(1), nil)

	require.NoError(t, service.RevokeSession(ctx, userID, sessionID))
}

func TestAccountService_RevokeSession_OtherUsersSessionHidden(t *testing.T) {
	factory := newFakeFactory(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockUsecase.NewMockTokenUsecase(t)
	service := newAccountService(t, factory, hasher, tokens)

	ctx := context.Background()
	sessionID := uuid.New()
	expiry := time.Now().Add(time.Hour)

	factory.sessions.On("FindByID", ctx, sessionID).Return(&entity.Session{
		ID:        sessionID,
		UserID:    uuid.New(),
		ExpiredAt: &expiry,
	}, nil)

	err := service.RevokeSession(ctx, uuid.New(), sessionID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAccountService_RevokeSession_UnknownSession(t *testing.T) {
	factory := newFakeFactory(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockUsecase.NewMockTokenUsecase(t)
	service := newAccountService(t, factory, hasher, tokens)

	ctx := context.Background()
	sessionID := uuid.New()

	factory.sessions.On("FindByID", ctx, sessionID).Return(nil, repository.ErrSessionNotFound)

	err := service.RevokeSession(ctx, uuid.New(), sessionID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAccountService_ListSessions(t *testing.T) {
	factory := newFakeFactory(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokens := mockUsecase.NewMockTokenUsecase(t)
	service := newAccountService(t, factory, hasher, tokens)

	ctx := context.Background()
	userID := uuid.New()
	future := time.Now().Add(time.Hour)
	active := []*entity.Session{{ID: uuid.New(), UserID: userID, ExpiredAt: &future}}

	factory.sessions.On("FindActiveByUserID", ctx, userID, mock.AnythingOfType("time.Time")).
		Return(active, nil)

	sessions, err := service.ListSessions(ctx, userID)

	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}
