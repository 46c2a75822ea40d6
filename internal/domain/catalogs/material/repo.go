package material

import (
	"context"

	"cotizador/internal/domain"
)

// Repository defines the interface for Material persistence.
type Repository interface {
	domain.CatalogRepository[*Material]

	// FindByCategory retrieves materials of one category.
	FindByCategory(ctx context.Context, category MaterialCategory, filter domain.ListFilter) (domain.ListResult[*Material], error)
}
