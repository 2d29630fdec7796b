package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/karnifashions/catalog-api/internal/application/auth"
	appcatalog "github.com/karnifashions/catalog-api/internal/application/catalog"
	"github.com/karnifashions/catalog-api/internal/application/report"
	"github.com/karnifashions/catalog-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC *appcatalog.UseCase
	ReportUC  *report.StockReportUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo (público): imágenes, series y categorías
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/image/:productId", catalogHandler.GetImage)
	images := api.Group("/images")
	images.Post("/series/list", catalogHandler.ImagesBySeriesList)
	images.Post("/category/list", catalogHandler.ImagesByCategoryList)
	images.Get("/series/:series", catalogHandler.ImagesBySeries)
	images.Get("/category/:category", catalogHandler.ImagesByCategory)
	api.Get("/series", catalogHandler.ListSeries)
	api.Get("/categories", catalogHandler.ListCategories)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	staffOnly := RequireRole(entity.RoleAdmin, entity.RoleUser)

	productHandler := NewProductHandler(deps.CatalogUC, deps.ReportUC)
	protected.Get("/products", productHandler.List)
	protected.Get("/stock", productHandler.Stock)
	protected.Get("/stock/report.pdf", staffOnly, productHandler.StockReport)

	protected.Post("/images", staffOnly, catalogHandler.SaveImage)
	protected.Get("/auth/me", authHandler.Me)
}
