// Package realexpense provides real purchase records registered against
// quotation lines, and their reconciliation against budgeted materials.
package realexpense

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/entity"
	"cotizador/internal/core/id"
	"cotizador/internal/core/types"
	"cotizador/internal/domain/pricing"
)

// Record is one real purchase made for a quotation line.
type Record struct {
	entity.BaseEntity

	QuotationID id.ID `db:"quotation_id" json:"quotationId"`
	LineID      id.ID `db:"line_id" json:"lineId"`

	MaterialName string `db:"material_name" json:"materialName"`

	// Budgeted figures are a snapshot at whole-line scale, kept for
	// later reporting even if the quotation changes.
	BudgetedQuantity  decimal.Decimal `db:"budgeted_quantity" json:"budgetedQuantity"`
	BudgetedUnitPrice types.Money     `db:"budgeted_unit_price" json:"budgetedUnitPrice"`

	ActualQuantity  decimal.Decimal `db:"actual_quantity" json:"actualQuantity"`
	ActualUnitPrice types.Money     `db:"actual_unit_price" json:"actualUnitPrice"`

	PurchaseDate time.Time `db:"purchase_date" json:"purchaseDate"`

	Provider      string `db:"provider" json:"provider,omitempty"`
	InvoiceNumber string `db:"invoice_number" json:"invoiceNumber,omitempty"`

	// Scope controls how the actual amount is allocated across the line
	// quantity. Empty means a record created before scopes existed and is
	// treated as total.
	Scope            pricing.AllocationScope `db:"scope" json:"scope"`
	AppliedUnitCount int                     `db:"applied_unit_count" json:"appliedUnitCount,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
}

// New creates a Record for a quotation line.
func New(quotationID, lineID id.ID, materialName string) *Record {
	return &Record{
		BaseEntity:   entity.NewBaseEntity(),
		QuotationID:  quotationID,
		LineID:       lineID,
		MaterialName: materialName,
		PurchaseDate: time.Now().UTC(),
		Scope:        pricing.ScopeTotal,
		CreatedAt:    time.Now().UTC(),
	}
}

// Validate implements entity.Validatable.
func (r *Record) Validate(ctx context.Context) error {
	if id.IsNil(r.QuotationID) {
		return apperror.NewValidation("quotation is required").
			WithDetail("field", "quotationId")
	}
	if id.IsNil(r.LineID) {
		return apperror.NewValidation("line is required").
			WithDetail("field", "lineId")
	}
	if r.MaterialName == "" {
		return apperror.NewValidation("material name is required").
			WithDetail("field", "materialName")
	}
	if r.ActualQuantity.IsNegative() {
		return apperror.NewValidation("actual quantity cannot be negative").
			WithDetail("field", "actualQuantity")
	}
	if r.ActualUnitPrice.IsNegative() {
		return apperror.NewValidation("actual unit price cannot be negative").
			WithDetail("field", "actualUnitPrice")
	}
	if r.BudgetedQuantity.IsNegative() {
		return apperror.NewValidation("budgeted quantity cannot be negative").
			WithDetail("field", "budgetedQuantity")
	}
	if r.BudgetedUnitPrice.IsNegative() {
		return apperror.NewValidation("budgeted unit price cannot be negative").
			WithDetail("field", "budgetedUnitPrice")
	}

	switch r.Scope {
	case pricing.ScopePerUnit, pricing.ScopeTotal, "":
	case pricing.ScopePartial:
		if r.AppliedUnitCount < 1 {
			return apperror.NewInvalidInput("partial scope requires an applied unit count of at least 1").
				WithDetail("field", "appliedUnitCount")
		}
	default:
		return apperror.NewInvalidInput("unknown allocation scope").
			WithDetail("field", "scope").
			WithDetail("value", string(r.Scope))
	}

	return nil
}

// ToEngine converts the record to the pricing engine representation.
func (r *Record) ToEngine() pricing.RealExpense {
	return pricing.RealExpense{
		MaterialName:     r.MaterialName,
		ActualQuantity:   r.ActualQuantity,
		ActualUnitPrice:  r.ActualUnitPrice,
		PurchaseDate:     r.PurchaseDate,
		Scope:            r.Scope,
		AppliedUnitCount: r.AppliedUnitCount,
	}
}
