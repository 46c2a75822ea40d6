// Package quotation provides the Quotation document service.
package quotation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cotizador/internal/core/apperror"
	"cotizador/internal/core/entity"
	"cotizador/internal/core/id"
	"cotizador/internal/core/numerator"
	"cotizador/internal/core/tx"
	"cotizador/internal/core/types"
	"cotizador/internal/domain"
	"cotizador/internal/domain/pricing"
	"cotizador/pkg/logger"
)

// ProductLookup resolves catalog product prices for catalog-backed lines.
// Implemented by the product catalog service.
type ProductLookup interface {
	GetUnitPrice(ctx context.Context, productID id.ID) (name string, unitPrice types.Money, err error)
}

// Service provides business operations for quotation documents.
type Service struct {
	repo      Repository
	numerator numerator.Generator
	txManager tx.Manager
	products  ProductLookup
	matcher   pricing.Matcher
	hooks     *domain.HookRegistry[*Quotation]
}

// NewService creates a new quotation service.
func NewService(
	repo Repository,
	numerator numerator.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		numerator: numerator,
		txManager: txManager,
		matcher:   pricing.HeuristicMatcher{},
		hooks:     domain.NewHookRegistry[*Quotation](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Quotation] {
	return s.hooks
}

// SetMatcher swaps the material name-matching policy.
func (s *Service) SetMatcher(m pricing.Matcher) {
	if m != nil {
		s.matcher = m
	}
}

// SetProductLookup wires the product catalog used to price catalog lines.
func (s *Service) SetProductLookup(p ProductLookup) {
	s.products = p
}

// resolveCatalogLines fills unit prices for catalog-backed lines that have
// none yet. Lines with an explicit price keep it (price was agreed already).
func (s *Service) resolveCatalogLines(ctx context.Context, doc *Quotation) error {
	for i := range doc.Lines {
		line := &doc.Lines[i]
		if line.Kind != KindCatalog || !line.UnitPrice.IsZero() {
			continue
		}
		if s.products == nil {
			return apperror.NewValidation("catalog line requires a unit price").
				WithDetail("lineNo", line.LineNo)
		}
		name, price, err := s.products.GetUnitPrice(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if line.Name == "" {
			line.Name = name
		}
		line.UnitPrice = price
	}
	return nil
}

// Create prices and persists a new draft quotation.
func (s *Service) Create(ctx context.Context, doc *Quotation) error {
	// Run before-create hooks (for enrichment, validation, etc.)
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	// Every save is a full recompute from lines.
	if err := s.resolveCatalogLines(ctx, doc); err != nil {
		return err
	}
	if err := doc.Reprice(); err != nil {
		return err
	}

	// Generate number if empty
	if doc.Number == "" {
		cfg := numerator.DefaultConfig(NumberPrefix)
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "quotation created",
		"id", doc.ID,
		"number", doc.Number,
		"total", doc.Total)

	return nil
}

// GetByID retrieves a quotation with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Quotation, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// GetByNumber retrieves a quotation by its document number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Quotation, error) {
	doc, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.GetLines(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines
	return doc, nil
}

// Update replaces a draft quotation and recomputes all derived fields.
func (s *Service) Update(ctx context.Context, doc *Quotation) error {
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}
	if err := doc.Validate(ctx); err != nil {
		return err
	}
	if err := s.resolveCatalogLines(ctx, doc); err != nil {
		return err
	}
	if err := doc.Reprice(); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterUpdate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-update hook failed", "error", err)
	}

	return nil
}

// Delete soft-deletes a draft quotation.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}

	return s.repo.Delete(ctx, docID)
}

// SetDeletionMark sets or clears the deletion mark.
func (s *Service) SetDeletionMark(ctx context.Context, docID id.ID, marked bool) error {
	return s.repo.SetDeletionMark(ctx, docID, marked)
}

// Issue finalizes a draft quotation. Issued quotations reject mutation
// until explicitly reopened.
func (s *Service) Issue(ctx context.Context, docID id.ID) (*Quotation, error) {
	return s.transition(ctx, docID, func(doc *Quotation) error {
		if !doc.IsDraft() {
			return apperror.NewQuotationNotDraft(doc.Number, string(doc.Status))
		}
		if len(doc.Lines) == 0 {
			return apperror.NewValidation("cannot issue a quotation without lines").
				WithDetail("number", doc.Number)
		}
		// Final recompute before freezing the figures.
		if err := doc.Reprice(); err != nil {
			return err
		}
		doc.MarkIssued()
		return nil
	})
}

// Reopen returns an issued quotation to draft and recomputes totals.
func (s *Service) Reopen(ctx context.Context, docID id.ID) (*Quotation, error) {
	return s.transition(ctx, docID, func(doc *Quotation) error {
		if doc.IsDraft() {
			return apperror.NewConflict("quotation is already a draft").
				WithDetail("number", doc.Number)
		}
		doc.Reopen()
		return doc.Reprice()
	})
}

// SetStatus moves an issued quotation to accepted or rejected.
func (s *Service) SetStatus(ctx context.Context, docID id.ID, status entity.DocumentStatus) (*Quotation, error) {
	if status != entity.StatusAccepted && status != entity.StatusRejected {
		return nil, apperror.NewValidation("status must be accepted or rejected").
			WithDetail("value", string(status))
	}
	return s.transition(ctx, docID, func(doc *Quotation) error {
		if doc.IsDraft() {
			return apperror.NewBusinessRule(apperror.CodeQuotationNotDraft,
				"draft quotations must be issued before accepting or rejecting").
				WithDetail("number", doc.Number)
		}
		doc.Status = status
		doc.Touch()
		return nil
	})
}

// transition loads a quotation with row lock, applies fn and saves.
func (s *Service) transition(ctx context.Context, docID id.ID, fn func(*Quotation) error) (*Quotation, error) {
	var doc *Quotation
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}
		lines, err := s.repo.GetLines(ctx, docID)
		if err != nil {
			return fmt.Errorf("get lines: %w", err)
		}
		doc.Lines = lines

		if err := fn(doc); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "quotation status changed",
		"id", doc.ID,
		"number", doc.Number,
		"status", doc.Status)

	return doc, nil
}

// Copy creates a new draft quotation from an existing one.
// Lines get fresh IDs; the number is regenerated on create.
func (s *Service) Copy(ctx context.Context, docID id.ID) (*Quotation, error) {
	src, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	dst := New(src.ClientID, src.ClientName)
	dst.ClientEmail = src.ClientEmail
	dst.ClientPhone = src.ClientPhone
	dst.DiscountPercent = src.DiscountPercent
	dst.TaxPercent = src.TaxPercent
	dst.Comment = src.Comment

	for _, line := range src.Lines {
		copied := line
		copied.LineID = id.New()
		if line.Manual != nil {
			manual := *line.Manual
			copied.Manual = &manual
		}
		dst.Lines = append(dst.Lines, copied)
	}

	if err := s.Create(ctx, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// List retrieves quotations with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Quotation], error) {
	return s.repo.List(ctx, filter)
}

// UnmatchedCost identifies a real-expense record that matched no budgeted
// material on its line.
type UnmatchedCost struct {
	LineID       id.ID  `json:"lineId"`
	MaterialName string `json:"materialName"`
}

// ApplyResult reports the outcome of ApplyRealCosts.
type ApplyResult struct {
	Quotation *Quotation      `json:"quotation"`
	Updated   int             `json:"updated"`
	Unmatched []UnmatchedCost `json:"unmatched,omitempty"`
}

// ApplyRealCosts writes actual purchase prices back into a draft quotation.
//
// For every manual line with recorded purchases, each record's material name
// is matched against the line's budgeted materials. Matched entries take the
// record's actual unit price (records applied in purchase-date order, so the
// most recent price wins). Unmatched records are reported and the budgeted
// entry is left unchanged. The whole document is then repriced and saved.
func (s *Service) ApplyRealCosts(ctx context.Context, docID id.ID, recordsByLine map[id.ID][]pricing.RealExpense) (*ApplyResult, error) {
	var result *ApplyResult
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}
		lines, err := s.repo.GetLines(ctx, docID)
		if err != nil {
			return fmt.Errorf("get lines: %w", err)
		}
		doc.Lines = lines

		if err := doc.CanModify(); err != nil {
			return err
		}

		result = &ApplyResult{Quotation: doc}

		for i := range doc.Lines {
			line := &doc.Lines[i]
			records := recordsByLine[line.LineID]
			if len(records) == 0 || line.Kind != KindManual || line.Manual == nil {
				for _, rec := range records {
					if line.Kind != KindManual {
						result.Unmatched = append(result.Unmatched, UnmatchedCost{
							LineID: line.LineID, MaterialName: rec.MaterialName,
						})
					}
				}
				continue
			}

			sorted := make([]pricing.RealExpense, len(records))
			copy(sorted, records)
			sort.SliceStable(sorted, func(a, b int) bool {
				return sorted[a].PurchaseDate.Before(sorted[b].PurchaseDate)
			})

			pool := make([]string, len(line.Manual.Materials))
			for j, m := range line.Manual.Materials {
				pool[j] = m.Name
			}

			for _, rec := range sorted {
				if rec.ActualUnitPrice.IsNegative() {
					return apperror.NewInvalidInput("actual unit price cannot be negative").
						WithDetail("material", rec.MaterialName)
				}
				idx, ok := s.matcher.Match(rec.MaterialName, pool)
				if !ok {
					result.Unmatched = append(result.Unmatched, UnmatchedCost{
						LineID: line.LineID, MaterialName: rec.MaterialName,
					})
					continue
				}
				line.Manual.Materials[idx].UnitPrice = rec.ActualUnitPrice
				result.Updated++
			}
		}

		if err := doc.Reprice(); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		return s.repo.SaveLines(ctx, doc.ID, doc.Lines)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "real costs applied to quotation",
		"id", docID,
		"updated", result.Updated,
		"unmatched", len(result.Unmatched))

	return result, nil
}
