package entity

import (
	"context"
	"time"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/id"
)

// DocumentStatus is the lifecycle state of a business document.
type DocumentStatus string

const (
	StatusDraft    DocumentStatus = "draft"
	StatusIssued   DocumentStatus = "issued"
	StatusAccepted DocumentStatus = "accepted"
	StatusRejected DocumentStatus = "rejected"
)

// ValidStatus reports whether s is a known document status.
func ValidStatus(s DocumentStatus) bool {
	switch s {
	case StatusDraft, StatusIssued, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Document is the base type for business transactions.
// Examples: Quotation, Invoice, Order.
type Document struct {
	BaseDocument

	// Number is the document number (auto-generated, unique within type+period)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// Status is the lifecycle state (draft documents are freely editable)
	Status DocumentStatus `db:"status" json:"status"`

	// Comment is an optional user comment
	Comment string `db:"comment" json:"comment,omitempty"`
}

// NewDocument creates a new Document in draft state with generated ID.
func NewDocument() Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         time.Now().UTC(),
		Status:       StatusDraft,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	if d.Status != "" && !ValidStatus(d.Status) {
		return apperror.NewValidation("unknown document status").
			WithDetail("field", "status").
			WithDetail("value", string(d.Status))
	}

	return nil
}

// IsDraft returns true while the document has not been issued.
func (d *Document) IsDraft() bool {
	return d.Status == StatusDraft || d.Status == ""
}

// CanModify checks if document can be modified.
// Issued documents require reopening first.
func (d *Document) CanModify() error {
	if !d.IsDraft() {
		return apperror.NewQuotationIssued(d.Number).
			WithDetail("document_id", d.ID.String())
	}
	return nil
}

// MarkIssued moves the document out of draft.
func (d *Document) MarkIssued() {
	d.Status = StatusIssued
	d.Touch()
}

// Reopen returns the document to draft for editing.
func (d *Document) Reopen() {
	d.Status = StatusDraft
	d.Touch()
}

// IsBackdated checks if document date is in the past.
func (d *Document) IsBackdated() bool {
	return d.Date.Before(time.Now().UTC().Truncate(24 * time.Hour))
}

// GetID returns the document ID.
func (d *Document) GetID() id.ID {
	return d.ID
}
