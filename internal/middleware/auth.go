// Package middleware provides the gin middlewares for authentication and
// rate limiting.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/JuanLadeira/task-challenge/internal/auth"
	"github.com/JuanLadeira/task-challenge/internal/domain"
	"github.com/JuanLadeira/task-challenge/internal/repository"
)

// ContextUserKey is the gin context key under which the authenticated user is
// stored.
const ContextUserKey = "current_user"

// AccessTokenCookie is the cookie carrying the UI credential. Its value is
// the literal string "Bearer <token>".
const AccessTokenCookie = "access_token"

// ErrMissingAuthHeader indicates the Authorization header was absent.
var ErrMissingAuthHeader = errors.New("missing Authorization header")

// CurrentUser returns the user resolved by RequireAuth or CookieAuth, or nil
// when the request is anonymous.
func CurrentUser(c *gin.Context) *domain.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// RequireAuth returns a middleware enforcing bearer-token authentication for
// the JSON API. Every failure mode (missing header, malformed or expired
// token, empty subject, unknown user) is a 401 with a WWW-Authenticate
// challenge.
func RequireAuth(tokens *auth.TokenManager, users repository.UserRepository) gin.HandlerFunc {
	if tokens == nil {
		panic("TokenManager cannot be nil for RequireAuth middleware")
	}
	if users == nil {
		panic("UserRepository cannot be nil for RequireAuth middleware")
	}

	return func(c *gin.Context) {
		tokenStr, err := extractBearerToken(c)
		if err != nil {
			logrus.WithError(err).Warn("RequireAuth: missing or malformed credential")
			unauthorized(c)
			return
		}

		user, err := resolveUser(c.Request.Context(), tokens, users, tokenStr)
		if err != nil {
			logrus.WithError(err).Warn("RequireAuth: could not validate credentials")
			unauthorized(c)
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CookieAuth returns a middleware resolving the access_token cookie for the
// HTML surface. Any failure leaves the request anonymous; handlers decide
// whether anonymous is acceptable.
func CookieAuth(tokens *auth.TokenManager, users repository.UserRepository) gin.HandlerFunc {
	if tokens == nil {
		panic("TokenManager cannot be nil for CookieAuth middleware")
	}
	if users == nil {
		panic("UserRepository cannot be nil for CookieAuth middleware")
	}

	return func(c *gin.Context) {
		cookie, err := c.Cookie(AccessTokenCookie)
		if err != nil || cookie == "" {
			c.Next()
			return
		}

		// Cookie value is "Bearer <token>".
		fields := strings.Fields(cookie)
		if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
			logrus.Debug("CookieAuth: malformed access_token cookie, treating as anonymous")
			c.Next()
			return
		}

		user, err := resolveUser(c.Request.Context(), tokens, users, fields[1])
		if err != nil {
			logrus.WithError(err).Debug("CookieAuth: invalid credential, treating as anonymous")
			c.Next()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// resolveUser verifies the token and resolves its subject to a user record.
func resolveUser(ctx context.Context, tokens *auth.TokenManager, users repository.UserRepository, tokenStr string) (*domain.User, error) {
	claims, err := tokens.Verify(tokenStr)
	if err != nil {
		return nil, err
	}
	username, err := auth.Subject(claims)
	if err != nil {
		return nil, err
	}
	user, err := users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

func extractBearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", auth.ErrTokenMalformed
	}
	return parts[1], nil
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
	c.Abort()
}
