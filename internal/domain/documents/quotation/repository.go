// Package quotation provides the Quotation document repository contract.
package quotation

import (
	"context"
	"time"

	"cotizador/internal/core/entity"
	"cotizador/internal/core/id"
	"cotizador/internal/domain"
)

// Repository defines operations for quotation documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Quotation) error
	GetByID(ctx context.Context, docID id.ID) (*Quotation, error)
	GetByNumber(ctx context.Context, number string) (*Quotation, error)
	Update(ctx context.Context, doc *Quotation) error
	Delete(ctx context.Context, docID id.ID) error
	SetDeletionMark(ctx context.Context, docID id.ID, marked bool) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Quotation], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*Quotation, error)
}

// ListFilter for filtering quotations.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	ClientID *id.ID
	Status   *entity.DocumentStatus
	DateFrom *time.Time
	DateTo   *time.Time
}
