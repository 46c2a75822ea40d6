// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"cotizador/internal/infrastructure/http/v1/handlers"
	"cotizador/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler defines the interface for catalog handlers.
// All catalog handlers must implement these methods.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
	GetTree(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// This eliminates the need to manually wire up routes for each catalog.
//
// Usage:
//
//	repo := catalog_repo.NewMaterialRepo(txManager)
//	service := material.NewService(repo, txManager, cfg.Numerator)
//	handler := handlers.NewMaterialHandler(baseHandler, service)
//	RegisterCatalogRoutes(catalogs.Group("/materials"), handler, "catalog:material")
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler, permission string) {
	group.GET("", middleware.RequirePermission(permission+":read"), handler.List)
	group.POST("", middleware.RequirePermission(permission+":create"), handler.Create)
	group.GET("/:id", middleware.RequirePermission(permission+":read"), handler.Get)
	group.PUT("/:id", middleware.RequirePermission(permission+":update"), handler.Update)
	group.DELETE("/:id", middleware.RequirePermission(permission+":delete"), handler.Delete)
	group.POST("/:id/deletion-mark", middleware.RequirePermission(permission+":delete"), handler.SetDeletionMark)
	group.GET("/tree", middleware.RequirePermission(permission+":read"), handler.GetTree)
}

// RegisterQuotationRoutes registers CRUD plus lifecycle routes for quotations.
// Lifecycle transitions (issue, reopen, status) require the update permission;
// copy creates a fresh draft and therefore requires create.
func RegisterQuotationRoutes(group *gin.RouterGroup, handler *handlers.QuotationHandler, permission string) {
	group.GET("", middleware.RequirePermission(permission+":read"), handler.List)
	group.POST("", middleware.RequirePermission(permission+":create"), handler.Create)
	group.GET("/by-number/:number", middleware.RequirePermission(permission+":read"), handler.GetByNumber)
	group.GET("/:id", middleware.RequirePermission(permission+":read"), handler.Get)
	group.PUT("/:id", middleware.RequirePermission(permission+":update"), handler.Update)
	group.DELETE("/:id", middleware.RequirePermission(permission+":delete"), handler.Delete)
	group.POST("/:id/deletion-mark", middleware.RequirePermission(permission+":delete"), handler.SetDeletionMark)
	group.POST("/:id/issue", middleware.RequirePermission(permission+":update"), handler.Issue)
	group.POST("/:id/reopen", middleware.RequirePermission(permission+":update"), handler.Reopen)
	group.POST("/:id/status", middleware.RequirePermission(permission+":update"), handler.SetStatus)
	group.POST("/:id/copy", middleware.RequirePermission(permission+":create"), handler.Copy)
	group.POST("/:id/apply-real-costs", middleware.RequirePermission(permission+":update"), handler.ApplyRealCosts)
}

// RegisterRealExpenseRoutes registers CRUD and reconciliation routes for real expenses.
func RegisterRealExpenseRoutes(group *gin.RouterGroup, handler *handlers.RealExpenseHandler, permission string) {
	group.GET("", middleware.RequirePermission(permission+":read"), handler.List)
	group.POST("", middleware.RequirePermission(permission+":create"), handler.Create)
	group.GET("/:id", middleware.RequirePermission(permission+":read"), handler.Get)
	group.PUT("/:id", middleware.RequirePermission(permission+":update"), handler.Update)
	group.DELETE("/:id", middleware.RequirePermission(permission+":delete"), handler.Delete)
	group.GET("/reconciliation/:quotationId", middleware.RequirePermission(permission+":read"), handler.Reconcile)
}
