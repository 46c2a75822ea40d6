package realexpense

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cotizador/internal/core/id"
	"cotizador/internal/domain"
	"cotizador/internal/domain/documents/quotation"
	"cotizador/internal/domain/pricing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// memRepo is an in-memory Repository for service tests.
type memRepo struct {
	records map[id.ID]*Record
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[id.ID]*Record)}
}

func (r *memRepo) Create(_ context.Context, rec *Record) error {
	r.records[rec.ID] = rec
	return nil
}

func (r *memRepo) GetByID(_ context.Context, recID id.ID) (*Record, error) {
	return r.records[recID], nil
}

func (r *memRepo) Update(_ context.Context, rec *Record) error {
	r.records[rec.ID] = rec
	return nil
}

func (r *memRepo) Delete(_ context.Context, recID id.ID) error {
	delete(r.records, recID)
	return nil
}

func (r *memRepo) ListByQuotation(_ context.Context, quotationID id.ID) ([]*Record, error) {
	var out []*Record
	for _, rec := range r.records {
		if rec.QuotationID == quotationID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memRepo) ListByLine(_ context.Context, quotationID, lineID id.ID) ([]*Record, error) {
	var out []*Record
	for _, rec := range r.records {
		if rec.QuotationID == quotationID && rec.LineID == lineID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memRepo) List(_ context.Context, _ ListFilter) (domain.ListResult[*Record], error) {
	var items []*Record
	for _, rec := range r.records {
		items = append(items, rec)
	}
	return domain.ListResult[*Record]{Items: items, TotalCount: int64(len(items))}, nil
}

// noTx runs the function directly, without a database.
type noTx struct{}

func (noTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fixedQuotations serves one prebuilt quotation.
type fixedQuotations struct {
	doc *quotation.Quotation
}

func (q fixedQuotations) GetByID(_ context.Context, _ id.ID) (*quotation.Quotation, error) {
	return q.doc, nil
}

func budgetedQuotation(t *testing.T) *quotation.Quotation {
	t.Helper()
	doc := quotation.New(id.New(), "Hotel Mirador")
	line := doc.AddManualLine(pricing.ManualItemInput{
		Name:     "Mesa lateral",
		Quantity: 2,
		Materials: []pricing.MaterialUsage{
			{Name: "MDF 18mm", Quantity: dec("3"), UnitPrice: dec("600")},
			{Name: "Barniz", Quantity: dec("1"), UnitPrice: dec("280")},
		},
		LaborMode:        pricing.LaborFixedAmount,
		FixedLaborAmount: dec("1500"),
	})
	require.NotNil(t, line)
	require.NoError(t, doc.Reprice())
	return doc
}

func TestService_Create_SnapshotsBudget(t *testing.T) {
	doc := budgetedQuotation(t)
	repo := newMemRepo()
	svc := NewService(repo, noTx{}, fixedQuotations{doc: doc})

	rec := New(doc.ID, doc.Lines[0].LineID, "mdf 18 mm")
	rec.ActualQuantity = dec("6")
	rec.ActualUnitPrice = dec("640")

	require.NoError(t, svc.Create(context.Background(), rec))

	// Budget snapshot scales the per-unit figure by the line quantity.
	assert.True(t, dec("6").Equal(rec.BudgetedQuantity), "budgeted qty %s", rec.BudgetedQuantity)
	assert.True(t, dec("600").Equal(rec.BudgetedUnitPrice), "budgeted price %s", rec.BudgetedUnitPrice)
}

func TestService_Create_NoBudgetMatch(t *testing.T) {
	doc := budgetedQuotation(t)
	svc := NewService(newMemRepo(), noTx{}, fixedQuotations{doc: doc})

	rec := New(doc.ID, doc.Lines[0].LineID, "Tornillos surtidos")
	rec.ActualQuantity = dec("1")
	rec.ActualUnitPrice = dec("85")

	require.NoError(t, svc.Create(context.Background(), rec))

	assert.True(t, rec.BudgetedQuantity.IsZero())
	assert.True(t, rec.BudgetedUnitPrice.IsZero())
}

func TestService_Create_ValidatesRecord(t *testing.T) {
	doc := budgetedQuotation(t)
	svc := NewService(newMemRepo(), noTx{}, fixedQuotations{doc: doc})

	rec := New(doc.ID, doc.Lines[0].LineID, "")
	err := svc.Create(context.Background(), rec)
	require.Error(t, err)
}

func TestService_Create_RejectsAppliedUnitCountAboveLineQuantity(t *testing.T) {
	doc := budgetedQuotation(t) // line quantity 2
	repo := newMemRepo()
	svc := NewService(repo, noTx{}, fixedQuotations{doc: doc})

	rec := New(doc.ID, doc.Lines[0].LineID, "MDF 18mm")
	rec.Scope = pricing.ScopePartial
	rec.AppliedUnitCount = 100
	rec.ActualQuantity = dec("1")
	rec.ActualUnitPrice = dec("640")

	err := svc.Create(context.Background(), rec)
	require.Error(t, err)
	assert.Empty(t, repo.records)

	// The quotation stays reconcilable afterwards.
	results, err := svc.ReconcileQuotation(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestService_Create_AcceptsAppliedUnitCountAtLineQuantity(t *testing.T) {
	doc := budgetedQuotation(t)
	svc := NewService(newMemRepo(), noTx{}, fixedQuotations{doc: doc})

	rec := New(doc.ID, doc.Lines[0].LineID, "MDF 18mm")
	rec.Scope = pricing.ScopePartial
	rec.AppliedUnitCount = 2
	rec.ActualQuantity = dec("3")
	rec.ActualUnitPrice = dec("640")

	require.NoError(t, svc.Create(context.Background(), rec))
}

func TestService_Update_RejectsAppliedUnitCountAboveLineQuantity(t *testing.T) {
	doc := budgetedQuotation(t)
	repo := newMemRepo()
	svc := NewService(repo, noTx{}, fixedQuotations{doc: doc})

	rec := New(doc.ID, doc.Lines[0].LineID, "MDF 18mm")
	rec.ActualQuantity = dec("1")
	rec.ActualUnitPrice = dec("640")
	require.NoError(t, svc.Create(context.Background(), rec))

	rec.Scope = pricing.ScopePartial
	rec.AppliedUnitCount = 3
	err := svc.Update(context.Background(), rec)
	require.Error(t, err)
}

func TestService_ReconcileQuotation(t *testing.T) {
	doc := budgetedQuotation(t)
	repo := newMemRepo()
	svc := NewService(repo, noTx{}, fixedQuotations{doc: doc})

	lineID := doc.Lines[0].LineID

	over := New(doc.ID, lineID, "MDF 18mm")
	over.ActualQuantity = dec("6")
	over.ActualUnitPrice = dec("700") // budgeted 600
	require.NoError(t, svc.Create(context.Background(), over))

	exact := New(doc.ID, lineID, "Barniz")
	exact.ActualQuantity = dec("2")
	exact.ActualUnitPrice = dec("280")
	require.NoError(t, svc.Create(context.Background(), exact))

	results, err := svc.ReconcileQuotation(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0].Result
	// Budget: (3*600 + 1*280) * 2 units = 4160. Actual: 6*700 + 2*280 = 4760.
	assert.True(t, dec("4160").Equal(res.BudgetedTotal), "budgeted %s", res.BudgetedTotal)
	assert.True(t, dec("4760").Equal(res.ActualTotal), "actual %s", res.ActualTotal)
	assert.True(t, dec("600").Equal(res.Variance), "variance %s", res.Variance)
	assert.Empty(t, res.Unmatched)
}

func TestService_ReconcileQuotation_SkipsLinesWithoutRecords(t *testing.T) {
	doc := budgetedQuotation(t)
	svc := NewService(newMemRepo(), noTx{}, fixedQuotations{doc: doc})

	results, err := svc.ReconcileQuotation(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestService_RecordsByLine(t *testing.T) {
	doc := budgetedQuotation(t)
	repo := newMemRepo()
	svc := NewService(repo, noTx{}, fixedQuotations{doc: doc})

	lineID := doc.Lines[0].LineID
	for _, name := range []string{"MDF 18mm", "Barniz"} {
		rec := New(doc.ID, lineID, name)
		rec.ActualQuantity = dec("1")
		rec.ActualUnitPrice = dec("100")
		require.NoError(t, svc.Create(context.Background(), rec))
	}

	byLine, err := svc.RecordsByLine(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Len(t, byLine, 1)
	assert.Len(t, byLine[lineID], 2)
}
