package routes

import (
	"github.com/Hllyys/FullStackCase/internal/adapters/http/handlers"
	"github.com/Hllyys/FullStackCase/internal/adapters/http/middleware"
	"github.com/Hllyys/FullStackCase/internal/adapters/persistence/repositories"
	"github.com/Hllyys/FullStackCase/internal/config"
	"github.com/Hllyys/FullStackCase/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers, then registers all routes.
// Everything is passed by injection; there is no ambient global lookup.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, roleRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo, roleRepo, refreshTokenRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)

	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api")

	auth := api.Group("/auth", middleware.AuthRateLimiter())
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/logout-all", middleware.AuthMiddleware(authService), authHandler.LogoutAll)

	users := api.Group("/users", middleware.AuthMiddleware(authService))
	users.Get("/", userHandler.ListUsers)
	users.Post("/", userHandler.CreateUser)
	users.Get("/:id", userHandler.GetUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Patch("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)
	users.Get("/:id/reports", userHandler.GetReports)
}
