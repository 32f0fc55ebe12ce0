package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/credit"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ProductUC   *usecase.ProductUseCase
	ClientUC    *usecase.ClientUseCase
	InventoryUC *inventory.UseCase
	SalesUC     *sales.UseCase
	CreditUC    *credit.UseCase
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

	admin := RequireRole(entity.RoleAdmin)
	sellers := RequireRole(entity.RoleAdmin, entity.RoleVendedor)
	collectors := RequireRole(entity.RoleAdmin, entity.RoleCobrador)

	// Products: lecturas para cualquier autenticado; mutaciones solo admin
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", admin, productHandler.Create)
	products.Put("/:id", admin, productHandler.Update)
	products.Delete("/:id", admin, productHandler.Delete)

	// Clients
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	creditHandler := NewCreditHandler(deps.CreditUC)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Get("/:id/credit-availability", creditHandler.Availability)
	clients.Post("/", admin, clientHandler.Create)
	clients.Put("/:id", admin, clientHandler.Update)
	clients.Delete("/:id", admin, clientHandler.Delete)

	// Inventory: movimientos para admin/vendedor; ajustes solo admin
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/in", sellers, inventoryHandler.RecordIn)
	invGroup.Post("/out", sellers, inventoryHandler.RecordOut)
	invGroup.Post("/adjust", admin, inventoryHandler.Adjust)
	invGroup.Get("/:productId/kardex", inventoryHandler.Kardex)
	invGroup.Get("/:productId/movements", inventoryHandler.History)
	invGroup.Get("/:productId/stats", inventoryHandler.Stats)

	// Sales
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Post("/cash", sellers, saleHandler.CreateCash)
	salesGroup.Post("/credit", sellers, saleHandler.CreateCredit)
	salesGroup.Post("/:id/void", admin, saleHandler.Void)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)

	// Credits: pagos para admin/cobrador; barrido solo admin (scheduler)
	credits := protected.Group("/credits")
	credits.Post("/sweep-overdue", admin, creditHandler.SweepOverdue)
	credits.Post("/:id/payments", collectors, creditHandler.ApplyPayment)
	credits.Get("/", creditHandler.List)
	credits.Get("/:id", creditHandler.GetByID)
}
