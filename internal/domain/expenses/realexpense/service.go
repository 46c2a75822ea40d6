package realexpense

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"cotizador/internal/core/apperror"
	appctx "cotizador/internal/core/context"
	"cotizador/internal/core/id"
	"cotizador/internal/core/tx"
	"cotizador/internal/domain"
	"cotizador/internal/domain/documents/quotation"
	"cotizador/internal/domain/pricing"
	"cotizador/pkg/logger"
)

// QuotationReader is the slice of the quotation service this package needs.
type QuotationReader interface {
	GetByID(ctx context.Context, docID id.ID) (*quotation.Quotation, error)
}

// Service provides business operations for real-expense records.
type Service struct {
	repo       Repository
	txManager  tx.Manager
	quotations QuotationReader
	matcher    pricing.Matcher
}

// NewService creates a new real-expense service.
func NewService(repo Repository, txManager tx.Manager, quotations QuotationReader) *Service {
	return &Service{
		repo:       repo,
		txManager:  txManager,
		quotations: quotations,
		matcher:    pricing.HeuristicMatcher{},
	}
}

// SetMatcher replaces the name matching policy.
func (s *Service) SetMatcher(m pricing.Matcher) {
	if m != nil {
		s.matcher = m
	}
}

// Create registers a purchase record. Budgeted figures are snapshotted from
// the quotation line when the material name matches a budgeted material.
func (s *Service) Create(ctx context.Context, rec *Record) error {
	if err := rec.Validate(ctx); err != nil {
		return err
	}

	doc, err := s.quotations.GetByID(ctx, rec.QuotationID)
	if err != nil {
		return err
	}
	if err := s.validateScopeAgainstLine(doc, rec); err != nil {
		return err
	}

	if rec.CreatedBy == "" {
		rec.CreatedBy = appctx.GetUserID(ctx)
	}
	s.snapshotBudget(doc, rec)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, rec)
	})
	if err != nil {
		return fmt.Errorf("create real expense: %w", err)
	}

	logger.Info(ctx, "real expense recorded",
		"id", rec.ID.String(),
		"quotation", rec.QuotationID.String(),
		"material", rec.MaterialName,
	)
	return nil
}

// snapshotBudget fills budgeted quantity and unit price at whole-line scale
// from the matching budgeted material, when there is one.
func (s *Service) snapshotBudget(doc *quotation.Quotation, rec *Record) {
	materials, lineQty, ok := doc.ManualMaterials(rec.LineID)
	if !ok {
		return
	}
	pool := make([]string, len(materials))
	for i, m := range materials {
		pool[i] = m.Name
	}
	idx, matched := s.matcher.Match(rec.MaterialName, pool)
	if !matched {
		return
	}
	b := materials[idx]
	rec.BudgetedQuantity = b.Quantity.Mul(intDec(lineQty))
	rec.BudgetedUnitPrice = b.UnitPrice
}

// validateScopeAgainstLine rejects partial records whose applied unit count
// exceeds the line quantity. Accepting one would make every later
// reconciliation of the quotation fail.
func (s *Service) validateScopeAgainstLine(doc *quotation.Quotation, rec *Record) error {
	if rec.Scope != pricing.ScopePartial {
		return nil
	}
	_, lineQty, ok := doc.ManualMaterials(rec.LineID)
	if !ok {
		return nil
	}
	if rec.AppliedUnitCount > lineQty {
		return apperror.NewInvalidInput("applied unit count cannot exceed the line quantity").
			WithDetail("appliedUnitCount", rec.AppliedUnitCount).
			WithDetail("lineQuantity", lineQty)
	}
	return nil
}

// GetByID retrieves a record.
func (s *Service) GetByID(ctx context.Context, recID id.ID) (*Record, error) {
	return s.repo.GetByID(ctx, recID)
}

// Update modifies a record.
func (s *Service) Update(ctx context.Context, rec *Record) error {
	if err := rec.Validate(ctx); err != nil {
		return err
	}
	doc, err := s.quotations.GetByID(ctx, rec.QuotationID)
	if err != nil {
		return err
	}
	if err := s.validateScopeAgainstLine(doc, rec); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, rec)
	})
}

// Delete removes a record.
func (s *Service) Delete(ctx context.Context, recID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, recID)
	})
}

// List retrieves records with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Record], error) {
	return s.repo.List(ctx, filter)
}

// ListByQuotation returns all records of a quotation.
func (s *Service) ListByQuotation(ctx context.Context, quotationID id.ID) ([]*Record, error) {
	return s.repo.ListByQuotation(ctx, quotationID)
}

// LineReconciliation pairs a quotation line with its reconciliation result.
type LineReconciliation struct {
	LineID   id.ID                  `json:"lineId"`
	LineNo   int                    `json:"lineNo"`
	LineName string                 `json:"lineName"`
	Result   pricing.Reconciliation `json:"result"`
}

// ReconcileQuotation reconciles every manual line of a quotation against its
// recorded purchases. Lines without records are skipped.
func (s *Service) ReconcileQuotation(ctx context.Context, quotationID id.ID) ([]LineReconciliation, error) {
	doc, err := s.quotations.GetByID(ctx, quotationID)
	if err != nil {
		return nil, err
	}

	byLine, err := s.RecordsByLine(ctx, quotationID)
	if err != nil {
		return nil, err
	}

	var results []LineReconciliation
	for _, line := range doc.Lines {
		records, ok := byLine[line.LineID]
		if !ok {
			continue
		}
		materials, lineQty, ok := doc.ManualMaterials(line.LineID)
		if !ok {
			return nil, apperror.NewInvalidInput("records reference a line without budgeted materials").
				WithDetail("lineId", line.LineID.String())
		}
		result, err := pricing.ReconcileLineItem(materials, lineQty, records, s.matcher)
		if err != nil {
			return nil, err
		}
		results = append(results, LineReconciliation{
			LineID:   line.LineID,
			LineNo:   line.LineNo,
			LineName: line.Name,
			Result:   result,
		})
	}

	return results, nil
}

func intDec(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// RecordsByLine groups the engine view of a quotation's records per line.
// Used by the apply-real-costs operation on quotations.
func (s *Service) RecordsByLine(ctx context.Context, quotationID id.ID) (map[id.ID][]pricing.RealExpense, error) {
	records, err := s.repo.ListByQuotation(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	byLine := make(map[id.ID][]pricing.RealExpense, len(records))
	for _, rec := range records {
		byLine[rec.LineID] = append(byLine[rec.LineID], rec.ToEngine())
	}
	return byLine, nil
}
