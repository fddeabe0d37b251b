package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-user-accounts/internal/application"
	"github.com/oksasatya/go-user-accounts/internal/application/apperrors"
	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
	"github.com/oksasatya/go-user-accounts/pkg/response"
)

const (
	// CtxUserIDKey holds the authenticated user's id in the Gin context.
	CtxUserIDKey = "userID"
	// CtxUserKey holds the resolved *entity.User in the Gin context.
	CtxUserKey = "authUser"

	bearerPrefix = "Bearer "
)

// Auth gates protected routes on a bearer token. It validates the token,
// resolves the subject to a stored active user on every request (no caching
// of validity), and exposes the user to downstream handlers.
func Auth(tokens application.TokenService, users *application.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			unauthorized(c, apperrors.MissingToken())
			return
		}

		subject, err := tokens.Subject(token)
		if err != nil {
			if errors.Is(err, helpers.ErrTokenExpired) {
				unauthorized(c, apperrors.ExpiredToken())
				return
			}
			unauthorized(c, apperrors.InvalidToken())
			return
		}

		u, err := users.GetActiveUser(c.Request.Context(), subject)
		if err != nil {
			switch apperrors.KindOf(err) {
			case apperrors.KindUserNotFound:
				unauthorized(c, err)
			case apperrors.KindUserIsDeactivated:
				resp := response.Error[any](c, http.StatusForbidden, err.Error(), string(apperrors.KindUserIsDeactivated))
				c.AbortWithStatusJSON(resp.Status, resp)
			default:
				resp := response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
				c.AbortWithStatusJSON(resp.Status, resp)
			}
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// AuthUser returns the user resolved by Auth for the current request.
func AuthUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if h == "" || !strings.HasPrefix(h, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(h, bearerPrefix))
	return token, token != ""
}

func unauthorized(c *gin.Context, err error) {
	c.Header("WWW-Authenticate", "Bearer")
	resp := response.Error[any](c, http.StatusUnauthorized, err.Error(), string(apperrors.KindOf(err)))
	c.AbortWithStatusJSON(resp.Status, resp)
}
