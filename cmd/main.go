package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/slidekit/carousel-backend/internal/handlers"
	"github.com/slidekit/carousel-backend/internal/observability"
	"github.com/slidekit/carousel-backend/internal/platform/envutil"
	"github.com/slidekit/carousel-backend/internal/platform/logger"
	"github.com/slidekit/carousel-backend/internal/server"
	"github.com/slidekit/carousel-backend/internal/services"
)

func main() {
	// Logger
	logMode := envutil.Str("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "carousel-backend",
		Environment: envutil.Str("DEPLOY_ENV", "local"),
		Version:     envutil.Str("SERVICE_VERSION", "dev"),
	})
	if shutdown != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	// Services
	log.Info("Setting up services from main...")
	fontCatalog := services.FontCatalogFromEnv(log)
	fontService := services.NewFontService(log)
	grainService := services.NewGrainService(log)
	renderService := services.NewRenderService(log, fontService, grainService)
	exportService := services.NewExportService(log, renderService)

	// Handlers
	log.Info("Setting up handlers from main...")
	canvasHandler := handlers.NewCanvasHandler(log, renderService, exportService)
	templateHandler := handlers.NewTemplateHandler(log, exportService)
	fontHandler := handlers.NewFontHandler(log, fontCatalog)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		CanvasHandler:   canvasHandler,
		TemplateHandler: templateHandler,
		FontHandler:     fontHandler,
	})

	port := envutil.Str("PORT", "8080")
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
