package postgres

import (
	"context"
	"fmt"

	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
)

var (
	_ repository.ReceivableLedgerRepository = (*ReceivableLedgerRepo)(nil)
	_ repository.PaymentRepository          = (*PaymentRepo)(nil)
)

// ReceivableLedgerRepo cuenta corriente (ledger_entries), solo INSERT y SELECT.
type ReceivableLedgerRepo struct {
	q Querier
}

func NewReceivableLedgerRepository(q Querier) *ReceivableLedgerRepo {
	return &ReceivableLedgerRepo{q: q}
}

// Append inserta un asiento. Cliente inexistente => domain.ErrNotFound.
func (r *ReceivableLedgerRepo) Append(ctx context.Context, e *entity.LedgerEntry) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO ledger_entries (id, customer_id, amount, type, reference, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.CustomerID, e.Amount, e.Type, nullable(e.Reference), e.CreatedAt)
	return mapWriteError("append ledger entry", err)
}

func (r *ReceivableLedgerRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.LedgerEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, customer_id, amount, type, reference, created_at
		FROM ledger_entries
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.LedgerEntry
	for rows.Next() {
		var (
			e   entity.LedgerEntry
			ref *string
		)
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.Amount, &e.Type, &ref, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.Reference = deref(ref)
		list = append(list, &e)
	}
	return list, rows.Err()
}

// PaymentRepo cobros (payments). La clave de idempotencia tiene índice único parcial.
type PaymentRepo struct {
	q Querier
}

func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create inserta el cobro. Clave de idempotencia repetida => domain.ErrConflict.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO payments (id, customer_id, amount, method, idempotency_key, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.CustomerID, p.Amount, p.Method, nullable(p.IdempotencyKey), p.CreatedAt)
	return mapWriteError("create payment", err)
}

func (r *PaymentRepo) ExistsByIdempotencyKey(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM payments WHERE idempotency_key = $1)`, key).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check idempotency key: %w", err)
	}
	return exists, nil
}

// List cobros más recientes primero; customerID vacío no filtra.
func (r *PaymentRepo) List(ctx context.Context, customerID string, limit, offset int) ([]*entity.Payment, error) {
	var (
		query = `SELECT id, customer_id, amount, method, idempotency_key, created_at FROM payments`
		args  []any
	)
	if customerID != "" {
		// comparación como texto: un filtro que no es UUID devuelve lista vacía, no 22P02
		query += ` WHERE customer_id::text = $1`
		args = append(args, customerID)
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Payment
	for rows.Next() {
		var (
			p   entity.Payment
			key *string
		)
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.Amount, &p.Method, &key, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.IdempotencyKey = deref(key)
		list = append(list, &p)
	}
	return list, rows.Err()
}
