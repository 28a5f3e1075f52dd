package middleware

import (
	"context"
	"net/http"
	"strings"

	"article-search/domain"
	"article-search/internal/auth"
	"article-search/logger"

	"github.com/labstack/echo/v4"
)

type contextKey string

// UserContextKey is the request context key for *domain.CurrentUser.
const UserContextKey contextKey = "user"

type TokenValidator interface {
	Validate(tokenString string) (*domain.CurrentUser, error)
}

var _ TokenValidator = (*auth.TokenValidator)(nil)

type AuthMiddleware struct {
	validator TokenValidator
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
	}
}

// RequireAuth rejects requests without a valid bearer token.
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := bearerToken(c.Request())
			if tokenString == "" {
				return c.JSON(http.StatusUnauthorized, domain.ErrorResult(domain.CodeNeedLogin))
			}

			user, err := m.validator.Validate(tokenString)
			if err != nil {
				logger.FromContext(c.Request().Context()).Debug("token rejected", "error", err)
				return c.JSON(http.StatusUnauthorized, domain.ErrorResult(domain.CodeNeedLogin))
			}

			setUser(c, user)
			return next(c)
		}
	}
}

// OptionalAuth attaches the user when a valid token is present and otherwise
// lets the request through anonymously.
func (m *AuthMiddleware) OptionalAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := bearerToken(c.Request())
			if tokenString == "" {
				return next(c)
			}

			user, err := m.validator.Validate(tokenString)
			if err != nil {
				logger.FromContext(c.Request().Context()).Debug("token ignored", "error", err)
				return next(c)
			}

			setUser(c, user)
			return next(c)
		}
	}
}

// UserFromContext returns the authenticated user, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *domain.CurrentUser {
	user, _ := ctx.Value(UserContextKey).(*domain.CurrentUser)
	return user
}

func setUser(c echo.Context, user *domain.CurrentUser) {
	ctx := context.WithValue(c.Request().Context(), UserContextKey, user)
	ctx = logger.WithUserID(ctx, user.ID)
	c.SetRequest(c.Request().WithContext(ctx))
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
