package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/slidekit/carousel-backend/internal/handlers"
)

type RouterConfig struct {
	CanvasHandler   *handlers.CanvasHandler
	TemplateHandler *handlers.TemplateHandler
	FontHandler     *handlers.FontHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware("carousel-backend"))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/canvas/render", cfg.CanvasHandler.RenderSlide)
		api.POST("/canvas/export", cfg.CanvasHandler.ExportCarousel)

		api.GET("/templates", cfg.TemplateHandler.ListTemplates)
		api.GET("/templates/:id", cfg.TemplateHandler.GetTemplate)
		api.POST("/templates/:id/export", cfg.TemplateHandler.ExportFromTemplate)

		api.GET("/fonts", cfg.FontHandler.ListFonts)
	}

	return router
}
