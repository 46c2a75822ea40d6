// Package material provides the Material catalog: raw inputs used in
// manual quotation lines (boards, paint, hardware).
package material

import (
	"context"

	"github.com/shopspring/decimal"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/entity"
	"cotizador/internal/core/types"
)

// MaterialCategory groups materials for reporting.
type MaterialCategory string

const (
	CategoryWood     MaterialCategory = "wood"
	CategoryPaint    MaterialCategory = "paint"
	CategoryHardware MaterialCategory = "hardware"
	CategoryFabric   MaterialCategory = "fabric"
	CategoryOther    MaterialCategory = "other"
)

// Material represents a purchasable raw material with a reference price.
type Material struct {
	entity.Catalog

	// Unit of measure as sold (sheet, gallon, meter, unit)
	Unit string `db:"unit" json:"unit"`

	// UnitPrice is the current reference purchase price
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	Category MaterialCategory `db:"category" json:"category"`

	// DefaultSupplier is free text; suppliers are not a catalog here
	DefaultSupplier string `db:"default_supplier" json:"defaultSupplier,omitempty"`

	Notes string `db:"notes" json:"notes,omitempty"`
}

// New creates a Material with required fields.
func New(code, name, unit string, unitPrice types.Money) *Material {
	return &Material{
		Catalog:   entity.NewCatalog(code, name),
		Unit:      unit,
		UnitPrice: unitPrice,
		Category:  CategoryOther,
	}
}

// Validate implements entity.Validatable.
func (m *Material) Validate(ctx context.Context) error {
	if err := m.Catalog.Validate(ctx); err != nil {
		return err
	}

	if m.IsFolder {
		return nil
	}

	if m.Unit == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}
	if m.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice")
	}
	if !isValidCategory(m.Category) {
		return apperror.NewValidation("invalid material category").
			WithDetail("field", "category").
			WithDetail("value", string(m.Category))
	}

	return nil
}

// PriceFor returns the cost of a given quantity at the reference price.
func (m *Material) PriceFor(quantity decimal.Decimal) types.Money {
	return m.UnitPrice.Mul(quantity)
}

func isValidCategory(c MaterialCategory) bool {
	switch c {
	case CategoryWood, CategoryPaint, CategoryHardware, CategoryFabric, CategoryOther, "":
		return true
	}
	return false
}
