package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/budgetwise/backend/internal/httperrors"
	"github.com/budgetwise/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type contextKey string

const (
	userKey  contextKey = "budgetwise-user"
	tokenKey contextKey = "budgetwise-token"
)

// BearerToken returns the token from the Authorization header.
func BearerToken(c *gin.Context) string {
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}

// Middleware authenticates the request with its bearer token. Requests
// without a valid session are rejected.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)

		user, err := s.Authenticate(c.Request.Context(), token)
		if errors.Is(err, ErrUnauthorized) {
			c.Header("WWW-Authenticate", `Bearer realm="budgetwise"`)
			httperrors.New(c, http.StatusUnauthorized, err.Error())
			return
		} else if err != nil {
			httperrors.Handler(c, err)
			return
		}

		c.Set(string(userKey), user)
		c.Set(string(tokenKey), token)
		c.Next()
	}
}

// CurrentUser returns the user authenticated by the Middleware.
func CurrentUser(c *gin.Context) models.User {
	user, _ := c.MustGet(string(userKey)).(models.User)
	return user
}

// UserID returns the ID of the user authenticated by the Middleware.
func UserID(c *gin.Context) uuid.UUID {
	return CurrentUser(c).ID
}

// SessionToken returns the token the request was authenticated with.
func SessionToken(c *gin.Context) string {
	return c.GetString(string(tokenKey))
}
