package dto

import (
	"cotizador/internal/core/entity"
	"cotizador/internal/domain/catalogs/client"
)

// CreateClientRequest is the request body for creating a client.
type CreateClientRequest struct {
	Code       string            `json:"code"`
	Name       string            `json:"name" binding:"required"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Address    string            `json:"address"`
	TaxID      string            `json:"taxId"`
	Notes      string            `json:"notes"`
	ParentID   *string           `json:"parentId"`
	IsFolder   bool              `json:"isFolder"`
	Attributes entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateClientRequest) ToEntity() *client.Client {
	item := client.New(r.Code, r.Name)
	item.Email = r.Email
	item.Phone = r.Phone
	item.Address = r.Address
	item.TaxID = r.TaxID
	item.Notes = r.Notes
	item.ParentID = r.ParentID
	item.IsFolder = r.IsFolder
	item.Attributes = r.Attributes
	return item
}

// UpdateClientRequest is the request body for updating a client.
type UpdateClientRequest struct {
	Code       string            `json:"code"`
	Name       string            `json:"name" binding:"required"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Address    string            `json:"address"`
	TaxID      string            `json:"taxId"`
	Notes      string            `json:"notes"`
	ParentID   *string           `json:"parentId"`
	IsFolder   bool              `json:"isFolder"`
	Attributes entity.Attributes `json:"attributes"`
	Version    int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateClientRequest) ApplyTo(item *client.Client) {
	item.Code = r.Code
	item.Name = r.Name
	item.Email = r.Email
	item.Phone = r.Phone
	item.Address = r.Address
	item.TaxID = r.TaxID
	item.Notes = r.Notes
	item.ParentID = r.ParentID
	item.IsFolder = r.IsFolder
	item.Attributes = r.Attributes
	item.Version = r.Version
}

// ClientResponse is the response body for a client.
type ClientResponse struct {
	CatalogResponse
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	TaxID   string `json:"taxId,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// FromClient creates response DTO from domain entity.
func FromClient(item *client.Client) *ClientResponse {
	return &ClientResponse{
		CatalogResponse: FromCatalog(item.Catalog),
		Email:           item.Email,
		Phone:           item.Phone,
		Address:         item.Address,
		TaxID:           item.TaxID,
		Notes:           item.Notes,
	}
}
