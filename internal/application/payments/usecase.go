package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jofra02/proyecto-ventas/internal/application/dto"
	"github.com/jofra02/proyecto-ventas/internal/application/ports"
	"github.com/jofra02/proyecto-ventas/internal/domain"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// PaymentPoster acredita un cobro en la cuenta corriente con el repo de la transacción del caller.
type PaymentPoster interface {
	PostPaymentInTx(ctx context.Context, ledger repository.ReceivableLedgerRepository, customerID string, amount decimal.Decimal, paymentID string, now time.Time) error
}

// PaymentUseCase registra cobros con clave de idempotencia opcional.
type PaymentUseCase struct {
	txRunner    ports.TxRunner
	paymentRepo repository.PaymentRepository
	poster      PaymentPoster
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(txRunner ports.TxRunner, paymentRepo repository.PaymentRepository, poster PaymentPoster) *PaymentUseCase {
	return &PaymentUseCase{txRunner: txRunner, paymentRepo: paymentRepo, poster: poster}
}

// CreatePayment en una sola transacción: verifica la clave (ErrConflict si ya se usó), verifica el
// cliente, guarda el cobro y acredita la cuenta corriente. La unicidad de la clave la respalda
// además un índice único, así dos envíos concurrentes no acreditan dos veces.
func (uc *PaymentUseCase) CreatePayment(ctx context.Context, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("monto debe ser mayor a cero: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Method) == "" {
		return nil, fmt.Errorf("método de pago requerido: %w", domain.ErrInvalidInput)
	}
	p := &entity.Payment{
		ID:             uuid.New().String(),
		CustomerID:     in.CustomerID,
		Amount:         in.Amount,
		Method:         in.Method,
		IdempotencyKey: strings.TrimSpace(in.IdempotencyKey),
		CreatedAt:      time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		if p.IdempotencyKey != "" {
			exists, err := repos.Payments.ExistsByIdempotencyKey(ctx, p.IdempotencyKey)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("clave de idempotencia %q ya utilizada: %w", p.IdempotencyKey, domain.ErrConflict)
			}
		}
		c, err := repos.Customers.GetByID(ctx, p.CustomerID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("cliente %s: %w", p.CustomerID, domain.ErrNotFound)
		}
		if err := repos.Payments.Create(ctx, p); err != nil {
			return err
		}
		return uc.poster.PostPaymentInTx(ctx, repos.Ledger, p.CustomerID, p.Amount, p.ID, p.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(p), nil
}

// ListPayments lista cobros, opcionalmente de un cliente.
func (uc *PaymentUseCase) ListPayments(ctx context.Context, customerID string, limit, offset int) (*dto.PaymentListResponse, error) {
	list, err := uc.paymentRepo.List(ctx, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPaymentResponse(p))
	}
	return &dto.PaymentListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset, Count: len(items)}}, nil
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:             p.ID,
		CustomerID:     p.CustomerID,
		Amount:         p.Amount,
		Method:         p.Method,
		IdempotencyKey: p.IdempotencyKey,
		CreatedAt:      p.CreatedAt,
	}
}
