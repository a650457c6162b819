package routes

import (
	aiapi "release-desk/internal/api/ai"
	dashboardapi "release-desk/internal/api/dashboard"
	musicapi "release-desk/internal/api/music"
	publishingapi "release-desk/internal/api/publishing"
	tasksapi "release-desk/internal/api/tasks"
	uploadsapi "release-desk/internal/api/uploads"
	"release-desk/internal/app/http/middleware"
	"release-desk/internal/dashboard"
	"release-desk/internal/domain/tasks"
	"release-desk/internal/mutation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps is everything the routes need. Presigner and Generator may be nil when the
// integration is not configured.
type Deps struct {
	DB        *gorm.DB
	Logger    *zap.Logger
	Prefix    string
	Presigner uploadsapi.Presigner
	Bucket    string
	Region    string
	Generator aiapi.Generator
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middleware.ErrorHandler(d.Logger))
	r.NoRoute(middleware.NotFound())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	coord := mutation.NewCoordinator(d.DB)
	dash := dashboardapi.NewHandler(dashboard.NewAssembler(d.DB))
	music := musicapi.NewHandler(coord)
	publishing := publishingapi.NewHandler(coord)
	musicTasks := tasksapi.NewHandler(coord, tasks.KindMusic)
	publishingTasks := tasksapi.NewHandler(coord, tasks.KindPublishing)
	uploads := uploadsapi.NewHandler(d.Presigner, d.Bucket, d.Region)
	ai := aiapi.NewHandler(d.Generator)

	api := r.Group(d.Prefix)
	api.GET("/data", dash.GetData)
	api.GET("/s3-presigned-url", uploads.PresignedURL)

	// Chapter bodies and AI prompts are nested or free text and skip sanitising.
	api.POST("/ai/generate-content", ai.GenerateContent)
	api.POST("/ai/generate-images", ai.GenerateImages)

	clean := api.Group("/")
	clean.Use(middleware.SanitizeAndCleanInputMiddleware())

	clean.PUT("/onboarding", dash.SetOnboarding)

	clean.POST("/music/releases", music.CreateRelease)
	clean.PATCH("/music/releases/:id/splits", music.ReplaceSplits)
	clean.POST("/music/tasks", musicTasks.Create)
	clean.PATCH("/music/tasks/:id", musicTasks.UpdateStatus)

	clean.POST("/publishing/books", publishing.CreateBook)
	clean.PATCH("/publishing/books/:id", publishing.UpdateBook)
	clean.POST("/publishing/books/:id/illustrations", publishing.AddIllustration)
	clean.POST("/publishing/tasks", publishingTasks.Create)
	clean.PATCH("/publishing/tasks/:id", publishingTasks.UpdateStatus)
}
