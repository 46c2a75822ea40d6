package serviceitem

import (
	"cotizador/internal/domain"
)

// Repository defines the interface for ServiceItem persistence.
type Repository interface {
	domain.CatalogRepository[*ServiceItem]
}
