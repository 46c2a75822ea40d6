package realexpense

import (
	"context"
	"time"

	"cotizador/internal/core/id"
	"cotizador/internal/domain"
)

// Repository defines the interface for real-expense persistence.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, recID id.ID) (*Record, error)
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, recID id.ID) error

	// ListByQuotation returns all records of a quotation ordered by purchase date.
	ListByQuotation(ctx context.Context, quotationID id.ID) ([]*Record, error)

	// ListByLine returns the records of one quotation line.
	ListByLine(ctx context.Context, quotationID, lineID id.ID) ([]*Record, error)

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Record], error)
}

// ListFilter for filtering real-expense records.
type ListFilter struct {
	domain.ListFilter

	QuotationID *id.ID
	LineID      *id.ID
	Provider    string
	DateFrom    *time.Time
	DateTo      *time.Time
}
