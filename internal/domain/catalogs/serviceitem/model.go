// Package serviceitem provides the ServiceItem catalog: services the
// workshop offers (assembly, restoration, custom painting).
package serviceitem

import (
	"context"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/entity"
	"cotizador/internal/core/types"
)

// PricingUnit defines how a service item is billed.
type PricingUnit string

const (
	PerHour  PricingUnit = "hour"
	PerDay   PricingUnit = "day"
	PerFixed PricingUnit = "fixed"
)

// ServiceItem represents an offered service with a base price.
type ServiceItem struct {
	entity.Catalog

	BasePrice   types.Money `db:"base_price" json:"basePrice"`
	PricingUnit PricingUnit `db:"pricing_unit" json:"pricingUnit"`
	Description string      `db:"description" json:"description,omitempty"`
}

// New creates a ServiceItem with required fields.
func New(code, name string, basePrice types.Money, unit PricingUnit) *ServiceItem {
	return &ServiceItem{
		Catalog:     entity.NewCatalog(code, name),
		BasePrice:   basePrice,
		PricingUnit: unit,
	}
}

// Validate implements entity.Validatable.
func (s *ServiceItem) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if s.IsFolder {
		return nil
	}

	if s.BasePrice.IsNegative() {
		return apperror.NewValidation("base price cannot be negative").
			WithDetail("field", "basePrice")
	}
	switch s.PricingUnit {
	case PerHour, PerDay, PerFixed:
	default:
		return apperror.NewValidation("invalid pricing unit").
			WithDetail("field", "pricingUnit").
			WithDetail("value", string(s.PricingUnit))
	}

	return nil
}
