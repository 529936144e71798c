package billing_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jofra02/proyecto-ventas/internal/application/billing"
	"github.com/jofra02/proyecto-ventas/internal/application/dto"
	"github.com/jofra02/proyecto-ventas/internal/application/inventory"
	"github.com/jofra02/proyecto-ventas/internal/application/receivable"
	"github.com/jofra02/proyecto-ventas/internal/application/sales"
	"github.com/jofra02/proyecto-ventas/internal/domain"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
	"github.com/jofra02/proyecto-ventas/internal/infrastructure/memory"
	"github.com/jofra02/proyecto-ventas/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invalidatorSpy struct {
	mu    sync.Mutex
	calls int
}

func (s *invalidatorSpy) Invalidate(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return nil
}

type fixture struct {
	store    *memory.Store
	sales    *sales.SaleUseCase
	docs     *billing.DocumentUseCase
	accounts *receivable.AccountService
	spy      *invalidatorSpy
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	repos := store.Repos()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", SKU: "GAL-1", Name: "Galletitas", Price: decimal.NewFromInt(100), CreatedAt: now}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p2", SKU: "ACE-1", Name: "Aceite", Price: decimal.NewFromInt(100), CreatedAt: now}))
	require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{ID: "w1", Name: "Central", IsDefault: true, CreatedAt: now}))
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "c1", Name: "Kiosco Norte", CreatedAt: now}))

	stock := inventory.NewStockService()
	accounts := receivable.NewAccountService(repos.Ledger, repos.Customers)
	spy := &invalidatorSpy{}
	return &fixture{
		store:    store,
		sales:    sales.NewSaleUseCase(store, repos.Sales, stock, nil, logger.Nop()),
		docs:     billing.NewDocumentUseCase(store, repos.Sales, repos.Documents, stock, accounts, spy, logger.Nop()),
		accounts: accounts,
		spy:      spy,
	}
}

// twoItemSale dos líneas de cantidad 1 a precio 100.
func (f *fixture) twoItemSale(t *testing.T, customerID string, confirm bool) string {
	t.Helper()
	ctx := context.Background()
	hundred := decimal.NewFromInt(100)
	sale, err := f.sales.CreateSale(ctx, dto.CreateSaleRequest{
		WarehouseID: "w1",
		CustomerID:  customerID,
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(1), UnitPrice: &hundred},
			{ProductID: "p2", Quantity: decimal.NewFromInt(1), UnitPrice: &hundred},
		},
	})
	require.NoError(t, err)
	if confirm {
		_, err = f.sales.ConfirmSale(ctx, sale.ID)
		require.NoError(t, err)
	}
	return sale.ID
}

func (f *fixture) count(t *testing.T, typ string) int {
	t.Helper()
	all, err := f.store.Repos().Movements.List(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)
	n := 0
	for _, m := range all {
		if m.Type == typ {
			n++
		}
	}
	return n
}

func TestIssueDocument_ConfirmedSale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	saleID := f.twoItemSale(t, "c1", true)

	doc, err := f.docs.IssueDocument(ctx, saleID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentStatusIssued, doc.Status)
	assert.True(t, doc.Total.Equal(decimal.NewFromInt(200)), "total %s", doc.Total)
	assert.Len(t, doc.Items, 2)

	assert.Equal(t, 2, f.count(t, entity.MovementTypeRESERVE))
	assert.Equal(t, 2, f.count(t, entity.MovementTypeCOMMIT))
	assert.Equal(t, 2, f.count(t, entity.MovementTypeRELEASE))

	ledger, err := f.accounts.Entries(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, ledger.Entries, 1)
	assert.Equal(t, entity.LedgerEntryTypeInvoice, ledger.Entries[0].Type)
	assert.Equal(t, entity.DocumentReference(doc.ID), ledger.Entries[0].Reference)
	assert.True(t, ledger.Entries[0].Amount.Equal(decimal.NewFromInt(200)))
	assert.True(t, ledger.Balance.Equal(decimal.NewFromInt(200)))

	assert.Equal(t, 1, f.spy.calls)
}

func TestIssueDocument_SecondIssueConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	saleID := f.twoItemSale(t, "c1", true)

	_, err := f.docs.IssueDocument(ctx, saleID)
	require.NoError(t, err)

	_, err = f.docs.IssueDocument(ctx, saleID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.Equal(t, 2, f.count(t, entity.MovementTypeCOMMIT), "el segundo intento no descuenta stock")
	bal, err := f.accounts.Balance(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, bal.Balance.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, 1, f.spy.calls)
}

func TestIssueDocument_DraftSaleHasNoRelease(t *testing.T) {
	f := newFixture(t)
	saleID := f.twoItemSale(t, "c1", false)

	_, err := f.docs.IssueDocument(context.Background(), saleID)
	require.NoError(t, err)

	assert.Equal(t, 0, f.count(t, entity.MovementTypeRESERVE))
	assert.Equal(t, 2, f.count(t, entity.MovementTypeCOMMIT))
	assert.Equal(t, 0, f.count(t, entity.MovementTypeRELEASE))
}

func TestIssueDocument_WithoutCustomerSkipsLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	saleID := f.twoItemSale(t, "", true)

	doc, err := f.docs.IssueDocument(ctx, saleID)
	require.NoError(t, err)
	assert.Empty(t, doc.CustomerID)

	entries, err := f.store.Repos().Ledger.ListByCustomer(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIssueDocument_UnknownSale(t *testing.T) {
	f := newFixture(t)
	_, err := f.docs.IssueDocument(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, f.spy.calls)
}

func TestGetAndListDocuments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	saleID := f.twoItemSale(t, "c1", true)
	issued, err := f.docs.IssueDocument(ctx, saleID)
	require.NoError(t, err)

	got, err := f.docs.GetDocument(ctx, issued.ID)
	require.NoError(t, err)
	assert.Equal(t, saleID, got.SaleID)
	assert.Equal(t, "c1", got.CustomerID)
	assert.Len(t, got.Items, 2)

	_, err = f.docs.GetDocument(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := f.docs.ListDocuments(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, issued.ID, list.Items[0].ID)
}

func TestIssueDocument_ConcurrentIssuesCreateOneDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	saleID := f.twoItemSale(t, "c1", true)

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.docs.IssueDocument(ctx, saleID)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
	assert.Equal(t, 1, ok)

	docs, err := f.docs.ListDocuments(ctx, 20, 0)
	require.NoError(t, err)
	assert.Len(t, docs.Items, 1)
	assert.Equal(t, 2, f.count(t, entity.MovementTypeCOMMIT))
	assert.Equal(t, 2, f.count(t, entity.MovementTypeRELEASE))

	ledger, err := f.accounts.Entries(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, ledger.Entries, 1)
	assert.True(t, ledger.Balance.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, 1, f.spy.calls)
}

// releaseFails descuenta stock normalmente pero falla al liberar la reserva.
type releaseFails struct {
	*inventory.StockService
	err error
}

func (r releaseFails) ReleaseInTx(context.Context, repository.StockMovementRepository, *entity.Sale, time.Time) error {
	return r.err
}

// postingFails falla al registrar el débito en la cuenta corriente.
type postingFails struct{ err error }

func (p postingFails) PostInvoiceInTx(context.Context, repository.ReceivableLedgerRepository, string, decimal.Decimal, string, time.Time) error {
	return p.err
}

func TestIssueDocument_FailureRollsBackEverything(t *testing.T) {
	boom := errors.New("fallo de escritura")

	cases := []struct {
		name   string
		stock  billing.StockWriter
		ledger func(f *fixture) billing.InvoicePoster
	}{
		{
			name:   "falla la liberación",
			stock:  releaseFails{StockService: inventory.NewStockService(), err: boom},
			ledger: func(f *fixture) billing.InvoicePoster { return f.accounts },
		},
		{
			name:   "falla la cuenta corriente",
			stock:  inventory.NewStockService(),
			ledger: func(*fixture) billing.InvoicePoster { return postingFails{err: boom} },
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			saleID := f.twoItemSale(t, "c1", true)
			repos := f.store.Repos()
			docs := billing.NewDocumentUseCase(f.store, repos.Sales, repos.Documents, tc.stock, tc.ledger(f), f.spy, logger.Nop())

			_, err := docs.IssueDocument(ctx, saleID)
			require.ErrorIs(t, err, boom)

			assert.Equal(t, 0, f.count(t, entity.MovementTypeCOMMIT))
			assert.Equal(t, 0, f.count(t, entity.MovementTypeRELEASE))
			assert.Equal(t, 2, f.count(t, entity.MovementTypeRESERVE), "la reserva de la confirmación sigue en pie")

			doc, err := repos.Documents.GetBySaleID(ctx, saleID)
			require.NoError(t, err)
			assert.Nil(t, doc)
			entries, err := repos.Ledger.ListByCustomer(ctx, "c1")
			require.NoError(t, err)
			assert.Empty(t, entries)
			assert.Zero(t, f.spy.calls)

			// el reintento con los puertos sanos emite normalmente
			_, err = f.docs.IssueDocument(ctx, saleID)
			require.NoError(t, err)
		})
	}
}
