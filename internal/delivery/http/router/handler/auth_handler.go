// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/delivery/http/response"
	"passport/internal/domain/entity"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the authentication endpoints.
type AuthHandler struct {
	accounts   usecase.AccountUsecase
	tokens     usecase.TokenUsecase
	federation usecase.FederationUsecase
	logger     *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(accounts usecase.AccountUsecase, tokens usecase.TokenUsecase, federation usecase.FederationUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts:   accounts,
		tokens:     tokens,
		federation: federation,
		logger:     logger,
	}
}

type signupRequest struct {
	Login    string `json:"login" validate:"required"`
	FullName string `json:"full_name"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type oauthRequest struct {
	Code string `json:"code" validate:"required"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type userResponse struct {
	ID       string `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type sessionResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	ExpiredAt string `json:"expired_at"`
}

func toUserResponse(user *entity.User) userResponse {
	return userResponse{
		ID:       user.ID.String(),
		Login:    user.Login,
		FullName: user.FullName,
		Role:     user.Role.String(),
	}
}

// Signup handles account registration.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.accounts.Signup(c.Request().Context(), usecase.SignupInput{
		Login:    req.Login,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(out.User), "Account created")
}

// Login handles password login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.accounts.Login(c.Request().Context(), usecase.LoginInput{
		Login:     req.Login,
		Password:  req.Password,
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokenPairResponse{
		AccessToken:  out.Tokens.AccessToken,
		RefreshToken: out.Tokens.RefreshToken,
	}, "Login successful")
}

// Refresh rotates a refresh token into a new token pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pair, err := h.tokens.Rotate(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Token refreshed")
}

// Logout revokes the presented refresh token. The access token comes
// from the Authorization header and only needs a genuine signature, so
// an expired token still authorizes its own session's logout.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req logoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid logout input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	accessToken := bearerToken(c)
	if accessToken == "" {
		return response.Unauthorized(c, "UNAUTHORIZED", "invalid or expired token")
	}

	if err := h.accounts.Logout(c.Request().Context(), accessToken, req.RefreshToken); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logged out")
}

// LogoutAll revokes every active session of the authenticated user.
func (h *AuthHandler) LogoutAll(c echo.Context) error {
	userID, ok := deliverycontext.GetPrincipal(c).UserID()
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "invalid or expired token")
	}

	count, err := h.accounts.LogoutAll(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"revoked": count}, "All sessions revoked")
}

// ChangePassword updates the authenticated user's password.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, ok := deliverycontext.GetPrincipal(c).UserID()
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "invalid or expired token")
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.accounts.ChangePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed")
}

// OAuthLogin handles a federated login for the provider given in the path.
func (h *AuthHandler) OAuthLogin(c echo.Context) error {
	provider := entity.Provider(c.Param("provider"))
	if !provider.IsValid() {
		return response.BindingError(c, "INVALID_INPUT", "Unknown identity provider")
	}

	var req oauthRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid oauth input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.federation.Resolve(c.Request().Context(), provider, req.Code, c.Request().UserAgent())
	if err != nil {
		return errors.WithStack(err)
	}

	status := http.StatusOK
	if result.Outcome == usecase.OutcomeCreated {
		status = http.StatusCreated
	}

	return response.Success(c, status, map[string]any{
		"outcome": string(result.Outcome),
		"user":    toUserResponse(result.User),
		"tokens": tokenPairResponse{
			AccessToken:  result.Tokens.AccessToken,
			RefreshToken: result.Tokens.RefreshToken,
		},
	}, "Federated login successful")
}

// RevokeSession revokes one of the authenticated user's sessions by id.
func (h *AuthHandler) RevokeSession(c echo.Context) error {
	userID, ok := deliverycontext.GetPrincipal(c).UserID()
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "invalid or expired token")
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid session id")
	}

	if err := h.accounts.RevokeSession(c.Request().Context(), userID, sessionID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Session revoked")
}

// AdminLogoutAll lets an administrator revoke every active session of
// the user given in the path.
func (h *AuthHandler) AdminLogoutAll(c echo.Context) error {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user id")
	}

	count, err := h.accounts.LogoutAll(c.Request().Context(), targetID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"revoked": count}, "All sessions revoked")
}

// ListSessions returns the authenticated user's active sessions.
func (h *AuthHandler) ListSessions(c echo.Context) error {
	userID, ok := deliverycontext.GetPrincipal(c).UserID()
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "invalid or expired token")
	}

	sessions, err := h.accounts.ListSessions(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]sessionResponse, 0, len(sessions))
	for _, session := range sessions {
		item := sessionResponse{
			ID:        session.ID.String(),
			CreatedAt: session.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if session.ExpiredAt != nil {
			item.ExpiredAt = session.ExpiredAt.Format("2006-01-02T15:04:05Z07:00")
		}
		out = append(out, item)
	}

	return response.Success(c, http.StatusOK, out, "Active sessions")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return ""
	}

	return token
}
