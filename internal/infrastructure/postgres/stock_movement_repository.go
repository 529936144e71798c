package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
)

var (
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
	_ repository.BatchRepository         = (*BatchRepo)(nil)
)

// StockMovementRepo implementa el libro de movimientos (solo INSERT y SELECT).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el repositorio.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Append inserta un movimiento. Producto, bodega, lote o proveedor inexistente => domain.ErrNotFound.
func (r *StockMovementRepo) Append(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, warehouse_id, batch_id, supplier_id, quantity, type, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.WarehouseID, nullable(m.BatchID), nullable(m.SupplierID),
		m.Quantity, m.Type, nullable(m.Reference), m.CreatedAt,
	)
	return mapWriteError("append stock movement", err)
}

// List devuelve los movimientos que cumplen el filtro, ordenados por created_at.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var (
		conds []string
		args  []any
	)
	add := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	add("product_id", f.ProductID)
	add("warehouse_id", f.WarehouseID)
	add("batch_id", f.BatchID)
	add("supplier_id", f.SupplierID)

	query := `
		SELECT id, product_id, warehouse_id, batch_id, supplier_id, quantity, type, reference, created_at
		FROM stock_movements`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at, id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var (
			m                          entity.StockMovement
			batchID, supplierID, refer *string
		)
		if err := rows.Scan(&m.ID, &m.ProductID, &m.WarehouseID, &batchID, &supplierID,
			&m.Quantity, &m.Type, &refer, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.BatchID, m.SupplierID, m.Reference = deref(batchID), deref(supplierID), deref(refer)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// TotalsByProduct suma por producto y tipo en la base.
func (r *StockMovementRepo) TotalsByProduct(ctx context.Context) ([]entity.MovementTotal, error) {
	return r.totals(ctx, `
		SELECT product_id::text, type, COALESCE(SUM(quantity), 0)
		FROM stock_movements
		GROUP BY product_id, type`)
}

// TotalsByBatch suma por lote y tipo; los movimientos sin lote quedan fuera.
func (r *StockMovementRepo) TotalsByBatch(ctx context.Context) ([]entity.MovementTotal, error) {
	return r.totals(ctx, `
		SELECT batch_id::text, type, COALESCE(SUM(quantity), 0)
		FROM stock_movements
		WHERE batch_id IS NOT NULL
		GROUP BY batch_id, type`)
}

func (r *StockMovementRepo) totals(ctx context.Context, query string) ([]entity.MovementTotal, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stock movement totals: %w", err)
	}
	defer rows.Close()

	var list []entity.MovementTotal
	for rows.Next() {
		var t entity.MovementTotal
		if err := rows.Scan(&t.Key, &t.Type, &t.Quantity); err != nil {
			return nil, fmt.Errorf("scan stock movement total: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// BatchRepo implementa el registro de lotes.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el repositorio.
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create inserta un lote.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO batches (id, product_id, sku, manufacture_date, expiry_date, received_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, b.ID, b.ProductID, b.SKU, b.ManufactureDate, b.ExpiryDate, b.ReceivedAt)
	return mapWriteError("create batch", err)
}

// GetByID devuelve el lote o (nil, nil) si no existe.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	query := `SELECT id, product_id, sku, manufacture_date, expiry_date, received_at FROM batches WHERE id = $1`
	var b entity.Batch
	err := r.q.QueryRow(ctx, query, id).Scan(&b.ID, &b.ProductID, &b.SKU, &b.ManufactureDate, &b.ExpiryDate, &b.ReceivedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// ListExpiringBefore lotes con expiry_date <= cutoff, vencidos incluidos.
func (r *BatchRepo) ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]*entity.Batch, error) {
	query := `
		SELECT id, product_id, sku, manufacture_date, expiry_date, received_at
		FROM batches
		WHERE expiry_date IS NOT NULL AND expiry_date <= $1
		ORDER BY expiry_date`
	rows, err := r.q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list expiring batches: %w", err)
	}
	defer rows.Close()

	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.ProductID, &b.SKU, &b.ManufactureDate, &b.ExpiryDate, &b.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
