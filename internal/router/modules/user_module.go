package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-user-accounts/internal/application"
	handlers "github.com/oksasatya/go-user-accounts/internal/interface/http"
	"github.com/oksasatya/go-user-accounts/internal/interface/middleware"
)

// UserModule wires user HTTP handlers and the bearer-auth middleware.
// Public: POST /api/users
// Protected: GET /api/users/me, PATCH /api/users/me,
// PATCH /api/users/me/{password,preferences,deactivate}
type UserModule struct {
	Handler *handlers.UserHandler
	Users   *application.UserService
	Tokens  application.TokenService
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, users *application.UserService, tokens application.TokenService, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Users: users, Tokens: tokens, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/users", registerLimiter, m.Handler.Create)

	auth := rg.Group("/users/me")
	auth.Use(middleware.Auth(m.Tokens, m.Users))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.GET("", m.Handler.Me)
		auth.PATCH("", m.Handler.UpdatePersonalData)
		auth.PATCH("/password", m.Handler.UpdatePassword)
		auth.PATCH("/preferences", m.Handler.UpdatePreferences)
		auth.PATCH("/deactivate", m.Handler.Deactivate)
	}
}
