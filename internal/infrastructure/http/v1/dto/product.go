package dto

import (
	"cotizador/internal/core/entity"
	"cotizador/internal/core/types"
	"cotizador/internal/domain/catalogs/product"
)

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code               string             `json:"code"`
	Name               string             `json:"name" binding:"required"`
	BasePrice          types.Money        `json:"basePrice"`
	AvailableColors    []string           `json:"availableColors"`
	AvailableMaterials []string           `json:"availableMaterials"`
	DefaultDimensions  product.Dimensions `json:"defaultDimensions"`
	Description        string             `json:"description"`
	ImageURL           string             `json:"imageUrl"`
	ParentID           *string            `json:"parentId"`
	IsFolder           bool               `json:"isFolder"`
	Attributes         entity.Attributes  `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	item := product.New(r.Code, r.Name, r.BasePrice)
	item.AvailableColors = r.AvailableColors
	item.AvailableMaterials = r.AvailableMaterials
	item.DefaultDimensions = r.DefaultDimensions
	item.Description = r.Description
	item.ImageURL = r.ImageURL
	item.ParentID = r.ParentID
	item.IsFolder = r.IsFolder
	item.Attributes = r.Attributes
	return item
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Code               string             `json:"code"`
	Name               string             `json:"name" binding:"required"`
	BasePrice          types.Money        `json:"basePrice"`
	AvailableColors    []string           `json:"availableColors"`
	AvailableMaterials []string           `json:"availableMaterials"`
	DefaultDimensions  product.Dimensions `json:"defaultDimensions"`
	Description        string             `json:"description"`
	ImageURL           string             `json:"imageUrl"`
	ParentID           *string            `json:"parentId"`
	IsFolder           bool               `json:"isFolder"`
	Attributes         entity.Attributes  `json:"attributes"`
	Version            int                `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(item *product.Product) {
	item.Code = r.Code
	item.Name = r.Name
	item.BasePrice = r.BasePrice
	item.AvailableColors = r.AvailableColors
	item.AvailableMaterials = r.AvailableMaterials
	item.DefaultDimensions = r.DefaultDimensions
	item.Description = r.Description
	item.ImageURL = r.ImageURL
	item.ParentID = r.ParentID
	item.IsFolder = r.IsFolder
	item.Attributes = r.Attributes
	item.Version = r.Version
}

// ProductResponse is the response body for a product.
type ProductResponse struct {
	CatalogResponse
	BasePrice          types.Money        `json:"basePrice"`
	AvailableColors    []string           `json:"availableColors,omitempty"`
	AvailableMaterials []string           `json:"availableMaterials,omitempty"`
	DefaultDimensions  product.Dimensions `json:"defaultDimensions"`
	Description        string             `json:"description,omitempty"`
	ImageURL           string             `json:"imageUrl,omitempty"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(item *product.Product) *ProductResponse {
	return &ProductResponse{
		CatalogResponse:    FromCatalog(item.Catalog),
		BasePrice:          item.BasePrice,
		AvailableColors:    item.AvailableColors,
		AvailableMaterials: item.AvailableMaterials,
		DefaultDimensions:  item.DefaultDimensions,
		Description:        item.Description,
		ImageURL:           item.ImageURL,
	}
}
