package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/parts-tracker/internal/application/analytics"
	"github.com/tu-usuario/parts-tracker/internal/application/auth"
	"github.com/tu-usuario/parts-tracker/internal/application/stock"
	"github.com/tu-usuario/parts-tracker/internal/application/usecase"
	"github.com/tu-usuario/parts-tracker/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PartUC      *usecase.PartUseCase
	UserUC      *usecase.UserUseCase
	StockEngine *stock.Engine
	DashboardUC *analytics.DashboardUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Parts (protegido)
	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC, deps.StockEngine, deps.DashboardUC)
	parts.Get("/", partHandler.List)
	// Rutas fijas antes de /:id para que Fiber no las capture como ID.
	parts.Get("/low-stock", partHandler.LowStock)
	parts.Get("/categories", partHandler.Categories)
	parts.Post("/", partHandler.Create)
	parts.Get("/:id", partHandler.GetByID)
	parts.Put("/:id", partHandler.Update)
	parts.Delete("/:id", partHandler.Delete)
	parts.Get("/:id/history", partHandler.History)
	parts.Put("/:id/stock", partHandler.UpdateStock)
	parts.Patch("/:id/sell", partHandler.Sell)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)

	// Users (protegido; lista y borrado solo admin)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", RequireRole(entity.RoleAdmin), userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", RequireRole(entity.RoleAdmin), userHandler.Delete)
}
