package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ordenes-inventario/internal/application/inventory"
	"github.com/jhoicas/ordenes-inventario/internal/application/purchasing"
	"github.com/jhoicas/ordenes-inventario/internal/application/reception"
	"github.com/jhoicas/ordenes-inventario/internal/application/sales"
	"github.com/jhoicas/ordenes-inventario/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC         *usecase.ProductUseCase
	SupplierUC        *usecase.SupplierUseCase
	CustomerUC        *usecase.CustomerUseCase
	LocationUC        *usecase.LocationUseCase
	Ledger            *inventory.StockLedger
	PurchaseOrderUC   *purchasing.PurchaseOrderUseCase
	SupplierProductUC *purchasing.SupplierProductUseCase
	ReceptionUC       *reception.ReceptionUseCase
	SalesOrderUC      *sales.SalesOrderUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)

	// Libro de stock
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	invGroup.Post("/entries", inventoryHandler.RegisterEntry)
	invGroup.Post("/exits", inventoryHandler.RegisterExit)
	invGroup.Get("/stock/:productId", inventoryHandler.GetStock)
	invGroup.Get("/movements/:productId", inventoryHandler.ListMovements)

	// Compras y recepciones
	purchases := api.Group("/purchase-orders")
	purchaseHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC, deps.ReceptionUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Delete("/:id", purchaseHandler.Delete)
	purchases.Post("/:id/cancel", purchaseHandler.Cancel)
	purchases.Post("/:id/complete", purchaseHandler.Complete)
	purchases.Post("/:id/payment", purchaseHandler.RegisterPayment)
	purchases.Get("/:id/receptions", purchaseHandler.ListReceptions)
	purchases.Post("/:id/receptions", purchaseHandler.ApplyReception)

	receptions := api.Group("/receptions")
	receptionHandler := NewReceptionHandler(deps.ReceptionUC)
	receptions.Patch("/:id/items/:itemId", receptionHandler.UpdateItem)

	links := api.Group("/supplier-products")
	linkHandler := NewSupplierProductHandler(deps.SupplierProductUC)
	links.Put("/", linkHandler.Upsert)
	links.Get("/", linkHandler.List)

	// Ventas
	salesGroup := api.Group("/sales-orders")
	salesHandler := NewSalesOrderHandler(deps.SalesOrderUC)
	salesGroup.Post("/", salesHandler.Create)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/:id", salesHandler.GetByID)
	salesGroup.Delete("/:id", salesHandler.Delete)
	salesGroup.Post("/:id/cancel", salesHandler.Cancel)
	salesGroup.Post("/:id/confirm", salesHandler.Confirm)
	salesGroup.Post("/:id/payment", salesHandler.RegisterPayment)
}
