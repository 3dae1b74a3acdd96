package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dforero/ecobarrio-api/internal/container"
	handlers "github.com/dforero/ecobarrio-api/internal/interface/http"
	"github.com/dforero/ecobarrio-api/internal/interface/middleware"
	"github.com/dforero/ecobarrio-api/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetInitLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetConfirmLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/send-reset-password-email", resetInitLimiter, m.Handler.SendResetPasswordEmail)
	rg.POST("/auth/reset-password", resetConfirmLimiter, m.Handler.ResetPassword)

	// Protected endpoints with user-based rate limit
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.PUT("/auth/users/:id/password", m.Handler.ChangePassword)
		auth.GET("/auth/profile", m.Handler.GetProfile)
		auth.PUT("/auth/profile", m.Handler.UpdateProfile)
	}
}
