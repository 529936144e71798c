package receivable

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jofra02/proyecto-ventas/internal/application/dto"
	"github.com/jofra02/proyecto-ventas/internal/domain"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/receivable"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// AccountService cuenta corriente de clientes. Los Post*InTx se ejecutan con el repo de la
// transacción del caller (emisión de documento, registro de cobro).
type AccountService struct {
	ledgerRepo   repository.ReceivableLedgerRepository
	customerRepo repository.CustomerRepository
}

// NewAccountService construye el servicio.
func NewAccountService(ledgerRepo repository.ReceivableLedgerRepository, customerRepo repository.CustomerRepository) *AccountService {
	return &AccountService{ledgerRepo: ledgerRepo, customerRepo: customerRepo}
}

// PostInvoiceInTx agrega un débito (+|amount|) referenciado al documento.
func (s *AccountService) PostInvoiceInTx(ctx context.Context, ledger repository.ReceivableLedgerRepository, customerID string, amount decimal.Decimal, documentID string, now time.Time) error {
	return ledger.Append(ctx, &entity.LedgerEntry{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Amount:     receivable.Debit(amount),
		Type:       entity.LedgerEntryTypeInvoice,
		Reference:  entity.DocumentReference(documentID),
		CreatedAt:  now,
	})
}

// PostPaymentInTx agrega un crédito (-|amount|) referenciado al cobro.
func (s *AccountService) PostPaymentInTx(ctx context.Context, ledger repository.ReceivableLedgerRepository, customerID string, amount decimal.Decimal, paymentID string, now time.Time) error {
	return ledger.Append(ctx, &entity.LedgerEntry{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Amount:     receivable.Credit(amount),
		Type:       entity.LedgerEntryTypePayment,
		Reference:  entity.PaymentReference(paymentID),
		CreatedAt:  now,
	})
}

// Balance saldo del cliente. Positivo = el cliente debe.
func (s *AccountService) Balance(ctx context.Context, customerID string) (*dto.BalanceResponse, error) {
	entries, err := s.entries(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{CustomerID: customerID, Balance: receivable.Balance(entries)}, nil
}

// Entries asientos del cliente, más recientes primero, con el saldo.
func (s *AccountService) Entries(ctx context.Context, customerID string) (*dto.LedgerResponse, error) {
	entries, err := s.entries(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := &dto.LedgerResponse{
		CustomerID: customerID,
		Balance:    receivable.Balance(entries),
		Entries:    make([]dto.LedgerEntryDTO, 0, len(entries)),
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, dto.LedgerEntryDTO{
			ID:        e.ID,
			Amount:    e.Amount,
			Type:      e.Type,
			Reference: e.Reference,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}

func (s *AccountService) entries(ctx context.Context, customerID string) ([]*entity.LedgerEntry, error) {
	c, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("cliente %s: %w", customerID, domain.ErrNotFound)
	}
	return s.ledgerRepo.ListByCustomer(ctx, customerID)
}
