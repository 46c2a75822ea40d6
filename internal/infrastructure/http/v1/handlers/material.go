package handlers

import (
	"cotizador/internal/domain/catalogs/material"
	"cotizador/internal/infrastructure/http/v1/dto"
)

// MaterialHTTPHandler is a shorthand for the generic catalog handler.
type MaterialHTTPHandler = CatalogHandler[
	*material.Material,
	dto.CreateMaterialRequest,
	dto.UpdateMaterialRequest,
]

// NewMaterialHandler wires the material service into the generic catalog handler.
func NewMaterialHandler(
	base *BaseHandler,
	service *material.Service,
) *MaterialHTTPHandler {

	config := CatalogHandlerConfig[
		*material.Material,
		dto.CreateMaterialRequest,
		dto.UpdateMaterialRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "material",

		MapCreateDTO: func(req dto.CreateMaterialRequest) *material.Material {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateMaterialRequest, existing *material.Material) *material.Material {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *material.Material) any {
			return dto.FromMaterial(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
