package entity

import (
	"context"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/id"
)

// ClientAware is a trait for entities tied to a client.
// Used for composition in models like Quotation.
type ClientAware struct {
	// ClientID is the client this entity belongs to
	ClientID id.ID `db:"client_id" json:"clientId"`
}

// ValidateClient ensures a client is set.
func (c *ClientAware) ValidateClient(ctx context.Context) error {
	if id.IsNil(c.ClientID) {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}
	return nil
}

// GetClientID returns the client ID (useful for interfaces).
func (c *ClientAware) GetClientID() id.ID {
	return c.ClientID
}

// IClientAware is an interface for any document that belongs to a client.
type IClientAware interface {
	GetClientID() id.ID
	ValidateClient(ctx context.Context) error
}
