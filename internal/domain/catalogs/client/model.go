// Package client provides the Client catalog: customers quotations are
// issued to.
package client

import (
	"context"
	"strings"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/entity"
)

// Client represents a customer.
type Client struct {
	entity.Catalog

	Email   string `db:"email" json:"email,omitempty"`
	Phone   string `db:"phone" json:"phone,omitempty"`
	Address string `db:"address" json:"address,omitempty"`

	// TaxID is the fiscal identifier (NIT, RUT)
	TaxID string `db:"tax_id" json:"taxId,omitempty"`

	Notes string `db:"notes" json:"notes,omitempty"`
}

// New creates a Client with required fields.
func New(code, name string) *Client {
	return &Client{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable.
func (c *Client) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return apperror.NewValidation("invalid email").
			WithDetail("field", "email")
	}

	return nil
}
