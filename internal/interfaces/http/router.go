package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/categorias-api/internal/application/auth"
	"github.com/jhoicas/categorias-api/internal/application/usecase"
	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC   *usecase.CategoryUseCase
	AuthUC       *auth.AuthUseCase
	Logger       *logger.Logger
	JWTSecret    string
	SecureCookie bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString("<h1>Multi-Level Category Management API</h1>")
	})

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Logger, deps.SecureCookie)
	authGroup := api.Group("/auth")
	authGroup.Get("/public", authHandler.Public)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", requireAuth, authHandler.Me)
	authGroup.Get("/admin/dashboard", requireAuth, adminOnly, authHandler.AdminDashboard)

	// Categories: lectura para cualquier autenticado, escritura solo Admin.
	// bulk-update va antes de /:id para que no se capture como id.
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Logger)
	categories := api.Group("/categories", requireAuth)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Put("/bulk-update", adminOnly, categoryHandler.BulkUpdateStatus)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id/status", adminOnly, categoryHandler.CascadeStatus)
	categories.Put("/:id", adminOnly, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	app.Use(NotFoundHandler)
}
