package router

import (
	"github.com/dforero/ecobarrio-api/internal/application"
	"github.com/dforero/ecobarrio-api/internal/container"
	pginfra "github.com/dforero/ecobarrio-api/internal/infrastructure/postgres"
	"github.com/dforero/ecobarrio-api/internal/infrastructure/storage"
	handlers "github.com/dforero/ecobarrio-api/internal/interface/http"
	"github.com/dforero/ecobarrio-api/internal/router/modules"
)

func buildAuthHandler() *handlers.AuthHandler {
	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	resetRepo := pginfra.NewResetTokenRepository(container.GetPGPool())

	svc := application.NewAuthService(
		userRepo,
		resetRepo,
		container.GetJWT(),
		container.GetMailer(),
		container.GetLogger(),
		container.GetConfig(),
	)
	return handlers.NewAuthHandler(svc, container.GetLogger())
}

func buildReportHandler() *handlers.ReportHandler {
	cfg := container.GetConfig()
	repo := pginfra.NewReportRepository(container.GetPGPool())

	var photos storage.PhotoStore
	uploadsDir := ""
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		photos = storage.NewGCSPhotoStore(gcs, cfg.GCSBucket)
	} else {
		local, err := storage.NewLocalPhotoStore(cfg.UploadsDir)
		if err != nil {
			container.GetLogger().WithError(err).Fatal("uploads dir unavailable")
		}
		photos = local
		uploadsDir = cfg.UploadsDir
	}

	svc := application.NewReportService(repo, photos, container.GetLogger(), container.GetES(), cfg.ESReportsIndex)
	return handlers.NewReportHandler(svc, container.GetLogger(), uploadsDir)
}

func buildRoutineHandler() *handlers.RoutineHandler {
	repo := pginfra.NewRoutineRepository(container.GetPGPool())
	svc := application.NewRoutineService(repo, container.GetLogger())
	return handlers.NewRoutineHandler(svc, container.GetLogger())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	jwt := container.GetJWT()
	r.Add(modules.NewAuthModule(buildAuthHandler(), jwt))
	r.Add(modules.NewReportModule(buildReportHandler(), jwt))
	r.Add(modules.NewRoutineModule(buildRoutineHandler(), jwt))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
