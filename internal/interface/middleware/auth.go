package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-videotube/internal/domain/entity"
	"github.com/oksasatya/go-videotube/internal/domain/repository"
	"github.com/oksasatya/go-videotube/pkg/helpers"
	"github.com/oksasatya/go-videotube/pkg/response"
)

// Context keys set by Auth.
const (
	CtxUserIDKey = "userID"
	CtxUserKey   = "user"
)

// AccessTokenParser is satisfied by helpers.JWTManager.
type AccessTokenParser interface {
	ParseAccessToken(token string) (*helpers.Claims, error)
}

type UserFinder interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// Auth validates the access token from the access_token cookie or an Authorization: Bearer header,
// then resolves the user. It sets userID and user (a sanitized entity.UserProfile) on success.
func Auth(tokens AccessTokenParser, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "unauthorized request", nil)
			return
		}
		claims, err := tokens.ParseAccessToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.Error(c, http.StatusUnauthorized, "invalid access token", nil)
				return
			}
			response.Error(c, http.StatusInternalServerError, "internal server error", nil)
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserKey, u.Profile())
		c.Next()
	}
}

func accessToken(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.AccessCookie); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// UserID returns the authenticated user's ID, or "" outside Auth.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}
