package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Hllyys/FullStackCase/internal/adapters/http/middleware"
	"github.com/Hllyys/FullStackCase/internal/adapters/http/routes"
	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/models"
	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/repositories"
	"github.com/Hllyys/FullStackCase/internal/config"
	"github.com/Hllyys/FullStackCase/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	if err := config.SeedRoles(db); err != nil {
		log.Fatalf("❌ Failed to seed roles: %v", err)
	}

	// Purge expired refresh tokens daily
	cleanupService := services.NewTokenCleanupService(repositories.NewRefreshTokenRepository(db))
	cleanupService.Start()
	defer cleanupService.Stop()

	app := fiber.New(fiber.Config{
		AppName:      "FullStackCase API",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg)
	routes.Setup(app, db, cfg)

	go gracefulShutdown(app)

	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
