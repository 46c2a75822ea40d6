package dto

import (
	"cotizador/internal/core/entity"
	"cotizador/internal/core/types"
	"cotizador/internal/domain/catalogs/expense"
)

// CreateFixedExpenseRequest is the request body for creating a fixed expense.
type CreateFixedExpenseRequest struct {
	Code          string              `json:"code"`
	Name          string              `json:"name" binding:"required"`
	MonthlyAmount types.Money         `json:"monthlyAmount"`
	Kind          expense.ExpenseKind `json:"kind"`
	Active        *bool               `json:"active"`
	ParentID      *string             `json:"parentId"`
	IsFolder      bool                `json:"isFolder"`
	Attributes    entity.Attributes   `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateFixedExpenseRequest) ToEntity() *expense.FixedExpense {
	item := expense.New(r.Code, r.Name, r.MonthlyAmount, r.Kind)
	if r.Active != nil {
		item.Active = *r.Active
	}
	item.ParentID = r.ParentID
	item.IsFolder = r.IsFolder
	item.Attributes = r.Attributes
	return item
}

// UpdateFixedExpenseRequest is the request body for updating a fixed expense.
type UpdateFixedExpenseRequest struct {
	Code          string              `json:"code"`
	Name          string              `json:"name" binding:"required"`
	MonthlyAmount types.Money         `json:"monthlyAmount"`
	Kind          expense.ExpenseKind `json:"kind"`
	Active        bool                `json:"active"`
	ParentID      *string             `json:"parentId"`
	IsFolder      bool                `json:"isFolder"`
	Attributes    entity.Attributes   `json:"attributes"`
	Version       int                 `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateFixedExpenseRequest) ApplyTo(item *expense.FixedExpense) {
	item.Code = r.Code
	item.Name = r.Name
	item.MonthlyAmount = r.MonthlyAmount
	item.Kind = r.Kind
	item.Active = r.Active
	item.ParentID = r.ParentID
	item.IsFolder = r.IsFolder
	item.Attributes = r.Attributes
	item.Version = r.Version
}

// FixedExpenseResponse is the response body for a fixed expense.
type FixedExpenseResponse struct {
	CatalogResponse
	MonthlyAmount types.Money         `json:"monthlyAmount"`
	Kind          expense.ExpenseKind `json:"kind"`
	Active        bool                `json:"active"`
}

// FromFixedExpense creates response DTO from domain entity.
func FromFixedExpense(item *expense.FixedExpense) *FixedExpenseResponse {
	return &FixedExpenseResponse{
		CatalogResponse: FromCatalog(item.Catalog),
		MonthlyAmount:   item.MonthlyAmount,
		Kind:            item.Kind,
		Active:          item.Active,
	}
}
