package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/delivery/http/validator"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	mocksusecase "passport/internal/mocks/usecase"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newTestHandler(t *testing.T) (*AuthHandler, *mocksusecase.MockAccountUsecase, *mocksusecase.MockTokenUsecase, *mocksusecase.MockFederationUsecase) {
	t.Helper()

	accounts := mocksusecase.NewMockAccountUsecase(t)
	tokens := mocksusecase.NewMockTokenUsecase(t)
	federation := mocksusecase.NewMockFederationUsecase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAuthHandler(accounts, tokens, federation, logger), accounts, tokens, federation
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	handler, accounts, _, _ := newTestHandler(t)

	user := &entity.User{
		ID:       uuid.New(),
		Login:    "alice",
		FullName: "Alice",
		Role:     entity.RoleUser,
	}
	accounts.On("Signup", mock.Anything, usecase.SignupInput{
		Login:    "alice",
		FullName: "Alice",
		Password: "secret-password",
	}).Return(&usecase.SignupOutput{User: user}, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/signup",
		`{"login":"alice","full_name":"Alice","password":"secret-password"}`)

	require.NoError(t, handler.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), user.ID.String())
	assert.Contains(t, rec.Body.String(), `"login":"alice"`)
}

func TestAuthHandler_Signup_ShortPasswordRejected(t *testing.T) {
	handler, _, _, _ := newTestHandler(t)

	c, _ := newTestContext(t, http.MethodPost, "/auth/signup",
		`{"login":"alice","password":"short"}`)

	err := handler.Signup(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestAuthHandler_Login_PassesUserAgent(t *testing.T) {
	handler, accounts, _, _ := newTestHandler(t)

	accounts.On("Login", mock.Anything, usecase.LoginInput{
		Login:     "alice",
		Password:  "secret-password",
		UserAgent: "test-agent/1.0",
	}).Return(&usecase.LoginOutput{
		Tokens: &entity.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
	}, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"login":"alice","password":"secret-password"}`)
	c.Request().Header.Set("User-Agent", "test-agent/1.0")

	require.NoError(t, handler.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"access"`)
	assert.Contains(t, rec.Body.String(), `"refresh_token":"refresh"`)
}

func TestAuthHandler_Login_InvalidCredentialsPropagate(t *testing.T) {
	handler, accounts, _, _ := newTestHandler(t)

	accounts.On("Login", mock.Anything, mock.Anything).
		Return(nil, errors.WithStack(domainerrors.ErrInvalidCredentials))

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"login":"alice","password":"wrong-password"}`)

	err := handler.Login(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	handler, _, tokens, _ := newTestHandler(t)

	tokens.On("Rotate", mock.Anything, "old-refresh").
		Return(&entity.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/refresh",
		`{"refresh_token":"old-refresh"}`)

	require.NoError(t, handler.Refresh(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"refresh_token":"new-refresh"`)
}

func TestAuthHandler_Refresh_RevokedTokenPropagates(t *testing.T) {
	handler, _, tokens, _ := newTestHandler(t)

	tokens.On("Rotate", mock.Anything, "revoked-refresh").
		Return(nil, errors.WithStack(domainerrors.ErrUnauthorized))

	c, _ := newTestContext(t, http.MethodPost, "/auth/refresh",
		`{"refresh_token":"revoked-refresh"}`)

	err := handler.Refresh(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthHandler_Logout_MissingBearerRejected(t *testing.T) {
	handler, _, _, _ := newTestHandler(t)

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout",
		`{"refresh_token":"refresh"}`)

	require.NoError(t, handler.Logout(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	handler, accounts, _, _ := newTestHandler(t)

	accounts.On("Logout", mock.Anything, "expired-access", "refresh").Return(nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout",
		`{"refresh_token":"refresh"}`)
	c.Request().Header.Set("Authorization", "Bearer expired-access")

	require.NoError(t, handler.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_LogoutAll_UsesPrincipal(t *testing.T) {
	handler, accounts, _, _ := newTestHandler(t)

	userID := uuid.New()
	accounts.On("LogoutAll", mock.Anything, userID).Return(3, nil)

	c, rec := newTestContext(t, http.MethodPost, "/sessions/logout_all", "")
	deliverycontext.SetPrincipal(c, entity.Authenticated(userID, entity.RoleUser))

	require.NoError(t, handler.LogoutAll(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"revoked":3`)
}

func TestAuthHandler_LogoutAll_AnonymousRejected(t *testing.T) {
	handler, _, _, _ := newTestHandler(t)

	c, rec := newTestContext(t, http.MethodPost, "/sessions/logout_all", "")

	require.NoError(t, handler.LogoutAll(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_ChangePassword_Success(t *testing.T) {
	handler, accounts, _, _ := newTestHandler(t)

	userID := uuid.New()
	accounts.On("ChangePassword", mock.Anything, userID, "old-password", "new-password").Return(nil)

	c, rec := newTestContext(t, http.MethodPost, "/account/password",
		`{"old_password":"old-password","new_password":"new-password"}`)
	deliverycontext.SetPrincipal(c, entity.Authenticated(userID, entity.RoleUser))

	require.NoError(t, handler.ChangePassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_OAuthLogin_UnknownProviderRejected(t *testing.T) {
	handler, _, _, _ := newTestHandler(t)

	c, rec := newTestContext(t, http.MethodPost, "/auth/oauth/github", `{"code":"abc"}`)
	c.SetParamNames("provider")
	c.SetParamValues("github")

	require.NoError(t, handler.OAuthLogin(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_OAuthLogin_CreatedOutcomeReturns201(t *testing.T) {
	handler, _, _, federation := newTestHandler(t)

	user := &entity.User{ID: uuid.New(), Login: "vk_882918", Role: entity.RoleUser}
	federation.On("Resolve", mock.Anything, entity.ProviderVK, "auth-code", mock.Anything).
		Return(&usecase.FederationResult{
			User:    user,
			Outcome: usecase.OutcomeCreated,
			Tokens:  &entity.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
		}, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/oauth/vk", `{"code":"auth-code"}`)
	c.SetParamNames("provider")
	c.SetParamValues("vk")

	require.NoError(t, handler.OAuthLogin(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"outcome":"created"`)
}

func TestAuthHandler_ListSessions_Success(t *testing.T) {
	handler, accounts, _, _ := newTestHandler(t)

	userID := uuid.New()
	expiry := time.Now().Add(time.Hour).UTC()
	accounts.On("ListSessions", mock.Anything, userID).Return([]*entity.Session{
		{ID: uuid.New(), UserID: userID, CreatedAt: time.Now().UTC(), ExpiredAt: &expiry},
	}, nil)

	c, rec := newTestContext(t, http.MethodGet, "/sessions", "")
	deliverycontext.SetPrincipal(c, entity.Authenticated(userID, entity.RoleUser))

	require.NoError(t, handler.ListSessions(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_RevokeSession_Success(t *testing.T) {
	handler, accounts, _, _ := newTestHandler(t)

	userID := uuid.New()
	sessionID := uuid.New()
	accounts.On("RevokeSession", mock.Anything, userID, sessionID).Return(nil)

	c, rec := newTestContext(t, http.MethodDelete, "/sessions/"+sessionID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(sessionID.String())
	deliverycontext.SetPrincipal(c, entity.Authenticated(userID, entity.RoleUser))

	require.NoError(t, handler.RevokeSession(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_RevokeSession_InvalidIDRejected(t *testing.T) {
	handler, _, _, _ := newTestHandler(t)

	c, rec := newTestContext(t, http.MethodDelete, "/sessions/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	deliverycontext.SetPrincipal(c, entity.Authenticated(uuid.New(), entity.RoleUser))

	require.NoError(t, handler.RevokeSession(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_AdminLogoutAll_InvalidIDRejected(t *testing.T) {
	handler, _, _, _ := newTestHandler(t)

	c, rec := newTestContext(t, http.MethodPost, "/admin/users/not-a-uuid/logout_all", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, handler.AdminLogoutAll(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	c, rec := newTestContext(t, http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
