// Package product provides the CatalogProduct catalog: furniture models
// with a fixed base price, used by catalog-backed quotation lines.
package product

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/entity"
	"cotizador/internal/core/types"
)

// Dimensions describe the default size of a product in centimeters.
// Stored as JSONB.
type Dimensions struct {
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`
	Depth  decimal.Decimal `json:"depth"`
}

// Scan implements sql.Scanner for reading from PostgreSQL JSONB.
func (d *Dimensions) Scan(src any) error {
	if src == nil {
		*d = Dimensions{}
		return nil
	}
	var source []byte
	switch v := src.(type) {
	case []byte:
		source = v
	case string:
		source = []byte(v)
	default:
		return fmt.Errorf("unsupported type for Dimensions: %T", src)
	}
	if len(source) == 0 {
		*d = Dimensions{}
		return nil
	}
	return json.Unmarshal(source, d)
}

// Value implements driver.Valuer for writing to PostgreSQL JSONB.
func (d Dimensions) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Product represents a pre-priced furniture model.
type Product struct {
	entity.Catalog

	BasePrice types.Money `db:"base_price" json:"basePrice"`

	// Options the client can pick when quoting this model
	AvailableColors    []string `db:"available_colors" json:"availableColors"`
	AvailableMaterials []string `db:"available_materials" json:"availableMaterials"`

	DefaultDimensions Dimensions `db:"default_dimensions" json:"defaultDimensions"`

	Description string `db:"description" json:"description,omitempty"`
	ImageURL    string `db:"image_url" json:"imageUrl,omitempty"`
}

// New creates a Product with required fields.
func New(code, name string, basePrice types.Money) *Product {
	return &Product{
		Catalog:   entity.NewCatalog(code, name),
		BasePrice: basePrice,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.IsFolder {
		return nil
	}

	if p.BasePrice.IsNegative() {
		return apperror.NewValidation("base price cannot be negative").
			WithDetail("field", "basePrice")
	}

	return nil
}

// HasColor reports whether a color option is offered for this product.
// Products without options accept any value.
func (p *Product) HasColor(color string) bool {
	return hasOption(p.AvailableColors, color)
}

// HasMaterial reports whether a material option is offered for this product.
func (p *Product) HasMaterial(materialName string) bool {
	return hasOption(p.AvailableMaterials, materialName)
}

func hasOption(options []string, value string) bool {
	if len(options) == 0 || value == "" {
		return true
	}
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
