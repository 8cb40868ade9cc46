package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amigopos/amigo-pos/internal/application/auth"
	"github.com/amigopos/amigo-pos/internal/application/inventory"
	"github.com/amigopos/amigo-pos/internal/application/reports"
	"github.com/amigopos/amigo-pos/internal/application/sales"
	"github.com/amigopos/amigo-pos/internal/application/usecase"
	"github.com/amigopos/amigo-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	ProductUC    *usecase.ProductUseCase
	BranchUC     *usecase.BranchUseCase
	SupplierUC   *usecase.SupplierUseCase
	CustomerUC   *sales.CustomerUseCase
	StockUC      *inventory.StockUseCase
	RecordSaleUC *sales.RecordSaleUseCase
	ReceiptUC    *sales.ReceiptUseCase
	ReporterUC   *reports.ReporterUseCase
	ExportUC     *reports.ExportUseCase
	DashboardUC  *reports.DashboardUseCase
	AlertsUC     *reports.AlertsUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
//
// Política de acceso: la caja (ventas, clientes, consulta de catálogo y stock)
// es para cualquier usuario autenticado; el back office (catálogo, inventario,
// reportes) pide admin o manager; usuarios y sucursales son solo de admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	mgr := RequireRole(entity.RoleAdmin, entity.RoleManager)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth: login público; registro y bitácora solo admin
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), adminOnly, authHandler.Register)
	authGroup.Post("/logout", AuthMiddleware(deps.JWTSecret), authHandler.Logout)
	authGroup.Get("/activity", AuthMiddleware(deps.JWTSecret), adminOnly, authHandler.Activity)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products: lectura para caja, escritura para admin/manager
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", mgr, productHandler.Create)
	products.Put("/:id", mgr, productHandler.Update)
	products.Delete("/:id", mgr, productHandler.Delete)

	// Branches: lectura para todos, cambios solo admin
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Post("/", adminOnly, branchHandler.Create)
	branches.Put("/:id", adminOnly, branchHandler.Update)
	branches.Delete("/:id", adminOnly, branchHandler.Delete)

	// Suppliers (admin/manager)
	suppliers := protected.Group("/suppliers", mgr)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Stock: consulta libre; ingresos, ajustes y rastro para admin/manager
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/product/:id", stockHandler.ProductStock)
	stock.Post("/receive", mgr, stockHandler.Receive)
	stock.Post("/adjust", mgr, stockHandler.Adjust)
	stock.Get("/movements", mgr, stockHandler.Movements)

	// Sales: la caja es de los cajeros, cualquier rol autenticado
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.RecordSaleUC, deps.ReceiptUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Get("/:id/receipt.pdf", saleHandler.ReceiptPDF)
	salesGroup.Post("/:id/receipt/send", saleHandler.SendReceipt)

	// Customers (cualquier rol autenticado)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)

	// Reports y exportaciones (admin/manager)
	reportsGroup := protected.Group("/reports", mgr)
	reportHandler := NewReportHandler(deps.ReporterUC, deps.ExportUC)
	reportsGroup.Get("/sales", reportHandler.Sales)
	reportsGroup.Get("/sales/export.xlsx", reportHandler.ExportXLSX)
	reportsGroup.Get("/sales/export.xml", reportHandler.ExportXML)

	// Dashboard y alertas (admin/manager)
	dashboard := protected.Group("/dashboard", mgr)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)

	alerts := protected.Group("/alerts", mgr)
	alertsHandler := NewAlertsHandler(deps.AlertsUC)
	alerts.Get("/", alertsHandler.List)

	// Users (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
}
