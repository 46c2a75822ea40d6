package catalog_repo

import (
	"cotizador/internal/domain/catalogs/serviceitem"
	"cotizador/internal/infrastructure/storage/postgres"
)

const serviceItemTable = "cat_service_items"

// ServiceItemRepo implements serviceitem.Repository.
type ServiceItemRepo struct {
	*BaseCatalogRepo[*serviceitem.ServiceItem]
}

// NewServiceItemRepo creates a new service item repository.
func NewServiceItemRepo(txManager *postgres.TxManager) *ServiceItemRepo {
	return &ServiceItemRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*serviceitem.ServiceItem](
			txManager,
			serviceItemTable,
			postgres.ExtractDBColumns[serviceitem.ServiceItem](),
			func() *serviceitem.ServiceItem { return &serviceitem.ServiceItem{} },
		),
	}
}
