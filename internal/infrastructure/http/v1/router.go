// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"cotizador/internal/core/numerator"
	"cotizador/internal/domain/audit"
	"cotizador/internal/domain/auth"
	"cotizador/internal/domain/catalogs/client"
	"cotizador/internal/domain/catalogs/expense"
	"cotizador/internal/domain/catalogs/material"
	"cotizador/internal/domain/catalogs/product"
	"cotizador/internal/domain/catalogs/serviceitem"
	"cotizador/internal/domain/documents/quotation"
	"cotizador/internal/domain/expenses/realexpense"
	"cotizador/internal/domain/reports"
	"cotizador/internal/infrastructure/http/v1/handlers"
	"cotizador/internal/infrastructure/http/v1/middleware"
	"cotizador/internal/infrastructure/storage/postgres"
	"cotizador/internal/infrastructure/storage/postgres/catalog_repo"
	"cotizador/internal/infrastructure/storage/postgres/document_repo"
	"cotizador/internal/infrastructure/storage/postgres/expense_repo"
	"cotizador/internal/infrastructure/storage/postgres/report_repo"
	"cotizador/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (used by health checks)
	Pool *postgres.Pool

	// TxManager runs repository operations inside transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Numerator for document number generation
	Numerator numerator.Generator

	// Audit records entity change history (optional)
	Audit *postgres.AuditService
}

// services groups the domain services shared across route groups.
// Quotations price catalog lines through the product service and real
// expenses read quotations back, so everything is built in one place.
type services struct {
	material    *material.Service
	serviceItem *serviceitem.Service
	expense     *expense.Service
	client      *client.Service
	product     *product.Service
	quotation   *quotation.Service
	realExpense *realexpense.Service
	reports     *reports.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	svc := buildServices(cfg)

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, cfg)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerCatalogRoutes(protected, svc)
		registerQuotationRoutes(protected, svc)
		registerRealExpenseRoutes(protected, svc)
		registerPricingRoutes(protected)
		registerReportRoutes(protected, svc)
	}

	return router
}

// buildServices wires repositories, domain services and cross-service hooks.
func buildServices(cfg RouterConfig) *services {
	txm := cfg.TxManager

	materialSvc := material.NewService(catalog_repo.NewMaterialRepo(txm), txm, cfg.Numerator)
	serviceItemSvc := serviceitem.NewService(catalog_repo.NewServiceItemRepo(txm), txm, cfg.Numerator)
	expenseSvc := expense.NewService(catalog_repo.NewFixedExpenseRepo(txm), txm, cfg.Numerator)
	clientSvc := client.NewService(catalog_repo.NewClientRepo(txm), txm, cfg.Numerator)
	productSvc := product.NewService(catalog_repo.NewProductRepo(txm), txm, cfg.Numerator)

	quotationSvc := quotation.NewService(document_repo.NewQuotationRepo(txm), cfg.Numerator, txm)
	quotationSvc.SetProductLookup(productSvc)

	realExpenseSvc := realexpense.NewService(expense_repo.NewRealExpenseRepo(txm), txm, quotationSvc)

	reportSvc := reports.NewService(report_repo.NewReportRepo(txm))

	// Stamp the acting user on every quotation write.
	quotationSvc.Hooks().OnBeforeCreate(func(ctx context.Context, doc *quotation.Quotation) error {
		audit.EnrichCreatedByDirect(ctx, &doc.CreatedBy, &doc.UpdatedBy)
		return nil
	})
	quotationSvc.Hooks().OnBeforeUpdate(func(ctx context.Context, doc *quotation.Quotation) error {
		audit.EnrichUpdatedByDirect(ctx, &doc.UpdatedBy)
		return nil
	})

	if cfg.Audit != nil {
		auditSvc := cfg.Audit
		quotationSvc.Hooks().OnAfterCreate(func(ctx context.Context, doc *quotation.Quotation) error {
			return auditSvc.LogChange(ctx, "quotation", doc.ID, postgres.AuditActionCreate, map[string]any{
				"number": doc.Number,
				"status": doc.Status,
				"total":  doc.Total,
			})
		})
		quotationSvc.Hooks().OnAfterUpdate(func(ctx context.Context, doc *quotation.Quotation) error {
			return auditSvc.LogChange(ctx, "quotation", doc.ID, postgres.AuditActionUpdate, map[string]any{
				"number": doc.Number,
				"status": doc.Status,
				"total":  doc.Total,
			})
		})
	}

	return &services{
		material:    materialSvc,
		serviceItem: serviceItemSvc,
		expense:     expenseSvc,
		client:      clientSvc,
		product:     productSvc,
		quotation:   quotationSvc,
		realExpense: realExpenseSvc,
		reports:     reportSvc,
	}
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	// Public auth endpoints (no JWT required)
	publicAuth := rg.Group("/auth")

	// Protected auth endpoints (JWT required)
	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, svc *services) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	RegisterCatalogRoutes(catalogs.Group("/materials"),
		handlers.NewMaterialHandler(baseHandler, svc.material), "catalog:material")
	RegisterCatalogRoutes(catalogs.Group("/service-items"),
		handlers.NewServiceItemHandler(baseHandler, svc.serviceItem), "catalog:service_item")
	RegisterCatalogRoutes(catalogs.Group("/clients"),
		handlers.NewClientHandler(baseHandler, svc.client), "catalog:client")
	RegisterCatalogRoutes(catalogs.Group("/products"),
		handlers.NewProductHandler(baseHandler, svc.product), "catalog:product")

	// Fixed expenses carry an extra aggregate endpoint on top of the CRUD set.
	expenseHandler := handlers.NewFixedExpenseHandler(baseHandler, svc.expense)
	expenseGroup := catalogs.Group("/fixed-expenses")
	RegisterCatalogRoutes(expenseGroup, expenseHandler, "catalog:fixed_expense")
	expenseGroup.GET("/monthly-total",
		middleware.RequirePermission("catalog:fixed_expense:read"), expenseHandler.MonthlyTotal)
}

// registerQuotationRoutes registers quotation document endpoints.
func registerQuotationRoutes(rg *gin.RouterGroup, svc *services) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewQuotationHandler(baseHandler, svc.quotation, svc.realExpense)
	RegisterQuotationRoutes(rg.Group("/document/quotations"), handler, "document:quotation")
}

// registerRealExpenseRoutes registers real expense endpoints.
func registerRealExpenseRoutes(rg *gin.RouterGroup, svc *services) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewRealExpenseHandler(baseHandler, svc.realExpense)
	RegisterRealExpenseRoutes(rg.Group("/real-expenses"), handler, "expense:real")
}

// registerPricingRoutes registers the stateless pricing preview endpoint.
func registerPricingRoutes(rg *gin.RouterGroup) {
	handler := handlers.NewPricingHandler(handlers.NewBaseHandler())
	rg.POST("/pricing/preview", handler.Preview)
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, svc *services) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewReportsHandler(baseHandler, svc.reports)

	reportsGroup := rg.Group("/reports")
	reportsGroup.GET("/dashboard", middleware.RequirePermission("report:quoting:read"), handler.GetDashboard)
	reportsGroup.GET("/quoted-by-month", middleware.RequirePermission("report:quoting:read"), handler.GetMonthlyQuoted)
	reportsGroup.GET("/top-materials", middleware.RequirePermission("report:quoting:read"), handler.GetTopMaterials)
	reportsGroup.GET("/budget-vs-actual", middleware.RequirePermission("report:quoting:read"), handler.GetBudgetVsActual)
}
