package payments_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jofra02/proyecto-ventas/internal/application/dto"
	"github.com/jofra02/proyecto-ventas/internal/application/payments"
	"github.com/jofra02/proyecto-ventas/internal/application/receivable"
	"github.com/jofra02/proyecto-ventas/internal/domain"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*payments.PaymentUseCase, *receivable.AccountService) {
	t.Helper()
	store := memory.New()
	repos := store.Repos()
	ctx := context.Background()
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "c1", Name: "Ferretería Sur", CreatedAt: time.Now()}))
	// deuda previa de 500
	require.NoError(t, repos.Ledger.Append(ctx, &entity.LedgerEntry{
		ID: "inv-1", CustomerID: "c1", Amount: decimal.NewFromInt(500), Type: entity.LedgerEntryTypeInvoice, Reference: "DOC-1", CreatedAt: time.Now(),
	}))
	accounts := receivable.NewAccountService(repos.Ledger, repos.Customers)
	return payments.NewPaymentUseCase(store, repos.Payments, accounts), accounts
}

func TestCreatePayment_CreditsLedger(t *testing.T) {
	uc, accounts := setup(t)
	ctx := context.Background()

	p, err := uc.CreatePayment(ctx, dto.CreatePaymentRequest{CustomerID: "c1", Amount: decimal.NewFromInt(200), Method: "CASH"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)

	ledger, err := accounts.Entries(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, ledger.Entries, 2)
	assert.Equal(t, entity.LedgerEntryTypePayment, ledger.Entries[0].Type, "más reciente primero")
	assert.Equal(t, entity.PaymentReference(p.ID), ledger.Entries[0].Reference)
	assert.True(t, ledger.Entries[0].Amount.Equal(decimal.NewFromInt(-200)))
	assert.True(t, ledger.Balance.Equal(decimal.NewFromInt(300)))
}

func TestCreatePayment_IdempotencyKey(t *testing.T) {
	uc, accounts := setup(t)
	ctx := context.Background()
	in := dto.CreatePaymentRequest{CustomerID: "c1", Amount: decimal.NewFromInt(100), Method: "TRANSFER", IdempotencyKey: "pos-42"}

	first, err := uc.CreatePayment(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "pos-42", first.IdempotencyKey)

	_, err = uc.CreatePayment(ctx, in)
	assert.ErrorIs(t, err, domain.ErrConflict)

	bal, err := accounts.Balance(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, bal.Balance.Equal(decimal.NewFromInt(400)), "un solo crédito, saldo %s", bal.Balance)

	list, err := uc.ListPayments(ctx, "c1", 20, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestCreatePayment_Validation(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	_, err := uc.CreatePayment(ctx, dto.CreatePaymentRequest{CustomerID: "c1", Amount: decimal.Zero, Method: "CASH"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreatePayment(ctx, dto.CreatePaymentRequest{CustomerID: "c1", Amount: decimal.NewFromInt(-5), Method: "CASH"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreatePayment(ctx, dto.CreatePaymentRequest{CustomerID: "c1", Amount: decimal.NewFromInt(5), Method: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreatePayment(ctx, dto.CreatePaymentRequest{CustomerID: "nope", Amount: decimal.NewFromInt(5), Method: "CASH"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountService_UnknownCustomer(t *testing.T) {
	_, accounts := setup(t)
	_, err := accounts.Balance(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = accounts.Entries(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreatePayment_ConcurrentRetriesCreditOnce(t *testing.T) {
	uc, accounts := setup(t)
	ctx := context.Background()
	in := dto.CreatePaymentRequest{CustomerID: "c1", Amount: decimal.NewFromInt(150), Method: "CARD", IdempotencyKey: "pos-77"}

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.CreatePayment(ctx, in)
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

	ledger, err := accounts.Entries(ctx, "c1")
	require.NoError(t, err)
	payments := 0
	for _, e := range ledger.Entries {
		if e.Type == entity.LedgerEntryTypePayment {
			payments++
		}
	}
	assert.Equal(t, 1, payments)
	assert.True(t, ledger.Balance.Equal(decimal.NewFromInt(350)), "saldo %s", ledger.Balance)

	list, err := uc.ListPayments(ctx, "c1", 20, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}
