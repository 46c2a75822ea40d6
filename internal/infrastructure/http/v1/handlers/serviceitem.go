package handlers

import (
	"cotizador/internal/domain/catalogs/serviceitem"
	"cotizador/internal/infrastructure/http/v1/dto"
)

// ServiceItemHTTPHandler is a shorthand for the generic catalog handler.
type ServiceItemHTTPHandler = CatalogHandler[
	*serviceitem.ServiceItem,
	dto.CreateServiceItemRequest,
	dto.UpdateServiceItemRequest,
]

// NewServiceItemHandler wires the service-item service into the generic catalog handler.
func NewServiceItemHandler(
	base *BaseHandler,
	service *serviceitem.Service,
) *ServiceItemHTTPHandler {

	config := CatalogHandlerConfig[
		*serviceitem.ServiceItem,
		dto.CreateServiceItemRequest,
		dto.UpdateServiceItemRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "serviceItem",

		MapCreateDTO: func(req dto.CreateServiceItemRequest) *serviceitem.ServiceItem {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateServiceItemRequest, existing *serviceitem.ServiceItem) *serviceitem.ServiceItem {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *serviceitem.ServiceItem) any {
			return dto.FromServiceItem(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
