package handlers

import (
	"cotizador/internal/domain/catalogs/client"
	"cotizador/internal/infrastructure/http/v1/dto"
)

// ClientHTTPHandler is a shorthand for the generic catalog handler.
type ClientHTTPHandler = CatalogHandler[
	*client.Client,
	dto.CreateClientRequest,
	dto.UpdateClientRequest,
]

// NewClientHandler wires the client service into the generic catalog handler.
func NewClientHandler(
	base *BaseHandler,
	service *client.Service,
) *ClientHTTPHandler {

	config := CatalogHandlerConfig[
		*client.Client,
		dto.CreateClientRequest,
		dto.UpdateClientRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "client",

		MapCreateDTO: func(req dto.CreateClientRequest) *client.Client {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateClientRequest, existing *client.Client) *client.Client {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *client.Client) any {
			return dto.FromClient(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
