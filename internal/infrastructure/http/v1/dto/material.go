package dto

import (
	"cotizador/internal/core/entity"
	"cotizador/internal/core/types"
	"cotizador/internal/domain/catalogs/material"
)

// --- Request DTOs ---

// CreateMaterialRequest is the request body for creating a material.
type CreateMaterialRequest struct {
	Code            string                    `json:"code"`
	Name            string                    `json:"name" binding:"required"`
	Unit            string                    `json:"unit"`
	UnitPrice       types.Money               `json:"unitPrice"`
	Category        material.MaterialCategory `json:"category"`
	DefaultSupplier string                    `json:"defaultSupplier"`
	Notes           string                    `json:"notes"`
	ParentID        *string                   `json:"parentId"`
	IsFolder        bool                      `json:"isFolder"`
	Attributes      entity.Attributes         `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateMaterialRequest) ToEntity() *material.Material {
	item := material.New(r.Code, r.Name, r.Unit, r.UnitPrice)
	if r.Category != "" {
		item.Category = r.Category
	}
	item.DefaultSupplier = r.DefaultSupplier
	item.Notes = r.Notes
	item.ParentID = r.ParentID
	item.IsFolder = r.IsFolder
	item.Attributes = r.Attributes
	return item
}

// UpdateMaterialRequest is the request body for updating a material.
type UpdateMaterialRequest struct {
	Code            string                    `json:"code"`
	Name            string                    `json:"name" binding:"required"`
	Unit            string                    `json:"unit"`
	UnitPrice       types.Money               `json:"unitPrice"`
	Category        material.MaterialCategory `json:"category"`
	DefaultSupplier string                    `json:"defaultSupplier"`
	Notes           string                    `json:"notes"`
	ParentID        *string                   `json:"parentId"`
	IsFolder        bool                      `json:"isFolder"`
	Attributes      entity.Attributes         `json:"attributes"`
	Version         int                       `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateMaterialRequest) ApplyTo(item *material.Material) {
	item.Code = r.Code
	item.Name = r.Name
	item.Unit = r.Unit
	item.UnitPrice = r.UnitPrice
	item.Category = r.Category
	item.DefaultSupplier = r.DefaultSupplier
	item.Notes = r.Notes
	item.ParentID = r.ParentID
	item.IsFolder = r.IsFolder
	item.Attributes = r.Attributes
	item.Version = r.Version
}

// --- Response DTOs ---

// MaterialResponse is the response body for a material.
type MaterialResponse struct {
	CatalogResponse
	Unit            string                    `json:"unit"`
	UnitPrice       types.Money               `json:"unitPrice"`
	Category        material.MaterialCategory `json:"category"`
	DefaultSupplier string                    `json:"defaultSupplier,omitempty"`
	Notes           string                    `json:"notes,omitempty"`
}

// FromMaterial creates response DTO from domain entity.
func FromMaterial(item *material.Material) *MaterialResponse {
	return &MaterialResponse{
		CatalogResponse: FromCatalog(item.Catalog),
		Unit:            item.Unit,
		UnitPrice:       item.UnitPrice,
		Category:        item.Category,
		DefaultSupplier: item.DefaultSupplier,
		Notes:           item.Notes,
	}
}
