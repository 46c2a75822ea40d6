package dto

import (
	"cotizador/internal/core/entity"
	"cotizador/internal/core/types"
	"cotizador/internal/domain/catalogs/serviceitem"
)

// CreateServiceItemRequest is the request body for creating a service item.
type CreateServiceItemRequest struct {
	Code        string                  `json:"code"`
	Name        string                  `json:"name" binding:"required"`
	BasePrice   types.Money             `json:"basePrice"`
	PricingUnit serviceitem.PricingUnit `json:"pricingUnit"`
	Description string                  `json:"description"`
	ParentID    *string                 `json:"parentId"`
	IsFolder    bool                    `json:"isFolder"`
	Attributes  entity.Attributes       `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateServiceItemRequest) ToEntity() *serviceitem.ServiceItem {
	item := serviceitem.New(r.Code, r.Name, r.BasePrice, r.PricingUnit)
	item.Description = r.Description
	item.ParentID = r.ParentID
	item.IsFolder = r.IsFolder
	item.Attributes = r.Attributes
	return item
}

// UpdateServiceItemRequest is the request body for updating a service item.
type UpdateServiceItemRequest struct {
	Code        string                  `json:"code"`
	Name        string                  `json:"name" binding:"required"`
	BasePrice   types.Money             `json:"basePrice"`
	PricingUnit serviceitem.PricingUnit `json:"pricingUnit"`
	Description string                  `json:"description"`
	ParentID    *string                 `json:"parentId"`
	IsFolder    bool                    `json:"isFolder"`
	Attributes  entity.Attributes       `json:"attributes"`
	Version     int                     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateServiceItemRequest) ApplyTo(item *serviceitem.ServiceItem) {
	item.Code = r.Code
	item.Name = r.Name
	item.BasePrice = r.BasePrice
	item.PricingUnit = r.PricingUnit
	item.Description = r.Description
	item.ParentID = r.ParentID
	item.IsFolder = r.IsFolder
	item.Attributes = r.Attributes
	item.Version = r.Version
}

// ServiceItemResponse is the response body for a service item.
type ServiceItemResponse struct {
	CatalogResponse
	BasePrice   types.Money             `json:"basePrice"`
	PricingUnit serviceitem.PricingUnit `json:"pricingUnit"`
	Description string                  `json:"description,omitempty"`
}

// FromServiceItem creates response DTO from domain entity.
func FromServiceItem(item *serviceitem.ServiceItem) *ServiceItemResponse {
	return &ServiceItemResponse{
		CatalogResponse: FromCatalog(item.Catalog),
		BasePrice:       item.BasePrice,
		PricingUnit:     item.PricingUnit,
		Description:     item.Description,
	}
}
