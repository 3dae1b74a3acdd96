package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dforero/ecobarrio-api/internal/container"
	handlers "github.com/dforero/ecobarrio-api/internal/interface/http"
	"github.com/dforero/ecobarrio-api/internal/interface/middleware"
	"github.com/dforero/ecobarrio-api/pkg/helpers"
)

type ReportModule struct {
	Handler *handlers.ReportHandler
	JWT     *helpers.JWTManager
}

func NewReportModule(h *handlers.ReportHandler, jwt *helpers.JWTManager) *ReportModule {
	return &ReportModule{Handler: h, JWT: jwt}
}

func (m *ReportModule) Register(rg *gin.RouterGroup) {
	// Public read endpoints. Search and uploads live outside /reports/:id
	// because gin does not mix static and param siblings in one subtree.
	rg.GET("/reports", m.Handler.List)
	rg.GET("/reports/:id", m.Handler.Get)
	rg.GET("/uploads/:name", m.Handler.Image)

	// Protected write and search endpoints
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/reports", m.Handler.Create)
		auth.PUT("/reports/:id/status", m.Handler.UpdateStatus)
		auth.GET("/search/reports", m.Handler.Search)
	}
}
