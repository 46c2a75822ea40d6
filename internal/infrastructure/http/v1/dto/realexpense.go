package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/id"
	"cotizador/internal/core/types"
	"cotizador/internal/domain/expenses/realexpense"
	"cotizador/internal/domain/pricing"
)

// --- Request DTOs ---

// CreateRealExpenseRequest is the request body for registering a purchase.
type CreateRealExpenseRequest struct {
	QuotationID  string `json:"quotationId" binding:"required"`
	LineID       string `json:"lineId" binding:"required"`
	MaterialName string `json:"materialName" binding:"required"`

	ActualQuantity  decimal.Decimal `json:"actualQuantity"`
	ActualUnitPrice types.Money     `json:"actualUnitPrice"`

	PurchaseDate  *time.Time `json:"purchaseDate"`
	Provider      string     `json:"provider"`
	InvoiceNumber string     `json:"invoiceNumber"`

	Scope            pricing.AllocationScope `json:"scope"`
	AppliedUnitCount int                     `json:"appliedUnitCount"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateRealExpenseRequest) ToEntity() (*realexpense.Record, error) {
	quotationID, err := id.Parse(r.QuotationID)
	if err != nil {
		return nil, apperror.NewValidation("invalid quotationId format")
	}
	lineID, err := id.Parse(r.LineID)
	if err != nil {
		return nil, apperror.NewValidation("invalid lineId format")
	}

	rec := realexpense.New(quotationID, lineID, r.MaterialName)
	rec.ActualQuantity = r.ActualQuantity
	rec.ActualUnitPrice = r.ActualUnitPrice
	rec.Provider = r.Provider
	rec.InvoiceNumber = r.InvoiceNumber
	rec.Scope = r.Scope
	rec.AppliedUnitCount = r.AppliedUnitCount
	if r.PurchaseDate != nil {
		rec.PurchaseDate = *r.PurchaseDate
	}
	return rec, nil
}

// UpdateRealExpenseRequest is the request body for correcting a purchase.
type UpdateRealExpenseRequest struct {
	MaterialName string `json:"materialName" binding:"required"`

	ActualQuantity  decimal.Decimal `json:"actualQuantity"`
	ActualUnitPrice types.Money     `json:"actualUnitPrice"`

	PurchaseDate  *time.Time `json:"purchaseDate"`
	Provider      string     `json:"provider"`
	InvoiceNumber string     `json:"invoiceNumber"`

	Scope            pricing.AllocationScope `json:"scope"`
	AppliedUnitCount int                     `json:"appliedUnitCount"`

	Version int `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateRealExpenseRequest) ApplyTo(rec *realexpense.Record) {
	rec.MaterialName = r.MaterialName
	rec.ActualQuantity = r.ActualQuantity
	rec.ActualUnitPrice = r.ActualUnitPrice
	rec.Provider = r.Provider
	rec.InvoiceNumber = r.InvoiceNumber
	rec.Scope = r.Scope
	rec.AppliedUnitCount = r.AppliedUnitCount
	if r.PurchaseDate != nil {
		rec.PurchaseDate = *r.PurchaseDate
	}
	rec.Version = r.Version
}

// --- Response DTOs ---

// RealExpenseResponse is the response body for a purchase record.
type RealExpenseResponse struct {
	ID           string `json:"id"`
	QuotationID  string `json:"quotationId"`
	LineID       string `json:"lineId"`
	MaterialName string `json:"materialName"`

	BudgetedQuantity  decimal.Decimal `json:"budgetedQuantity"`
	BudgetedUnitPrice types.Money     `json:"budgetedUnitPrice"`
	ActualQuantity    decimal.Decimal `json:"actualQuantity"`
	ActualUnitPrice   types.Money     `json:"actualUnitPrice"`

	PurchaseDate  time.Time `json:"purchaseDate"`
	Provider      string    `json:"provider,omitempty"`
	InvoiceNumber string    `json:"invoiceNumber,omitempty"`

	Scope            pricing.AllocationScope `json:"scope"`
	AppliedUnitCount int                     `json:"appliedUnitCount,omitempty"`

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
}

// FromRealExpense creates response DTO from domain entity.
func FromRealExpense(rec *realexpense.Record) *RealExpenseResponse {
	return &RealExpenseResponse{
		ID:                rec.ID.String(),
		QuotationID:       rec.QuotationID.String(),
		LineID:            rec.LineID.String(),
		MaterialName:      rec.MaterialName,
		BudgetedQuantity:  rec.BudgetedQuantity,
		BudgetedUnitPrice: rec.BudgetedUnitPrice,
		ActualQuantity:    rec.ActualQuantity,
		ActualUnitPrice:   rec.ActualUnitPrice,
		PurchaseDate:      rec.PurchaseDate,
		Provider:          rec.Provider,
		InvoiceNumber:     rec.InvoiceNumber,
		Scope:             rec.Scope,
		AppliedUnitCount:  rec.AppliedUnitCount,
		Version:           rec.Version,
		CreatedAt:         rec.CreatedAt,
		CreatedBy:         rec.CreatedBy,
	}
}

// ReconciliationResponse is the budget-vs-actual comparison for one quotation.
type ReconciliationResponse struct {
	QuotationID string                           `json:"quotationId"`
	Lines       []realexpense.LineReconciliation `json:"lines"`
}
