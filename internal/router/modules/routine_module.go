package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dforero/ecobarrio-api/internal/container"
	handlers "github.com/dforero/ecobarrio-api/internal/interface/http"
	"github.com/dforero/ecobarrio-api/internal/interface/middleware"
	"github.com/dforero/ecobarrio-api/pkg/helpers"
)

type RoutineModule struct {
	Handler *handlers.RoutineHandler
	JWT     *helpers.JWTManager
}

func NewRoutineModule(h *handlers.RoutineHandler, jwt *helpers.JWTManager) *RoutineModule {
	return &RoutineModule{Handler: h, JWT: jwt}
}

func (m *RoutineModule) Register(rg *gin.RouterGroup) {
	// Public lookup endpoints
	rg.GET("/routines", m.Handler.List)
	rg.GET("/routines/neighborhood/:name", m.Handler.ByNeighborhood)

	// Protected management endpoints
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/routines", m.Handler.Create)
		auth.PUT("/routines/:id", m.Handler.Update)
		auth.DELETE("/routines/:id", m.Handler.Delete)
	}
}
