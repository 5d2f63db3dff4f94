package middleware

import (
	"strings"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/delivery/http/response"
	"passport/internal/domain/entity"
	"passport/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware verifies the access token of incoming requests and
// attaches the resulting principal to the request context.
type AuthMiddleware struct {
	tokens usecase.TokenUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokens usecase.TokenUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate validates the bearer access token. Missing, forged and
// expired tokens all produce the same reason-free unauthorized reply.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "invalid or expired token")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHORIZED", "invalid or expired token")
		}

		claims := m.tokens.DecodeAccess(c.Request().Context(), tokenString)
		if claims == nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "invalid or expired token")
		}

		deliverycontext.SetPrincipal(c, entity.Authenticated(claims.UserID, claims.Role))

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the principal's role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := deliverycontext.GetPrincipal(c)
			if !principal.HasRole(requiredRole) {
				return response.Forbidden(c, "FORBIDDEN", "require '"+requiredRole.String()+"' role")
			}

			return next(c)
		}
	}
}
