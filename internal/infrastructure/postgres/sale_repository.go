package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
)

var (
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.DocumentRepository = (*DocumentRepo)(nil)
)

// SaleRepo persiste ventas (sales) y sus líneas (sale_items).
// Create debe ejecutarse dentro de una transacción para que cabecera y líneas sean atómicas.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el repositorio.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta y sus líneas en orden.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO sales (id, status, warehouse_id, customer_id, created_at) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.Status, s.WarehouseID, nullable(s.CustomerID), s.CreatedAt)
	if err != nil {
		return mapWriteError("create sale", err)
	}
	for i, it := range s.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO sale_items (sale_id, line_no, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4, $5)`,
			s.ID, i+1, it.ProductID, it.Quantity, it.UnitPrice)
		if err != nil {
			return mapWriteError("create sale item", err)
		}
	}
	return nil
}

// GetByID devuelve la venta con sus líneas o (nil, nil).
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT id, status, warehouse_id, customer_id, created_at FROM sales WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT id, status, warehouse_id, customer_id, created_at FROM sales WHERE id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) get(ctx context.Context, query, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if s.Items, err = r.items(ctx, s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var (
		s          entity.Sale
		customerID *string
	)
	if err := row.Scan(&s.ID, &s.Status, &s.WarehouseID, &customerID, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.CustomerID = deref(customerID)
	return &s, nil
}

func (r *SaleRepo) items(ctx context.Context, saleID string) ([]entity.SaleItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT product_id, quantity, unit_price FROM sale_items WHERE sale_id = $1 ORDER BY line_no`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var items []entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateStatus cambia el estado de la venta. Venta inexistente => domain.ErrNotFound.
func (r *SaleRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE sales SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return mapWriteError("update sale status", errNoRowsAffected)
	}
	return nil
}

// List ventas más recientes primero; status vacío no filtra.
func (r *SaleRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, status, warehouse_id, customer_id, created_at
		FROM sales
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	// Las líneas se cargan con las filas ya cerradas: una conexión no admite dos result sets abiertos.
	for _, s := range list {
		if s.Items, err = r.items(ctx, s.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// DocumentRepo implementa DocumentRepository.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el repositorio.
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create inserta el documento. Segunda emisión para la misma venta => domain.ErrConflict (UNIQUE sale_id).
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO documents (id, sale_id, status, total, created_at) VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.SaleID, d.Status, d.Total, d.CreatedAt)
	return mapWriteError("create document", err)
}

func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	return r.get(ctx, `SELECT id, sale_id, status, total, created_at FROM documents WHERE id = $1`, id)
}

func (r *DocumentRepo) GetBySaleID(ctx context.Context, saleID string) (*entity.Document, error) {
	return r.get(ctx, `SELECT id, sale_id, status, total, created_at FROM documents WHERE sale_id = $1`, saleID)
}

func (r *DocumentRepo) get(ctx context.Context, query, arg string) (*entity.Document, error) {
	var d entity.Document
	err := r.q.QueryRow(ctx, query, arg).Scan(&d.ID, &d.SaleID, &d.Status, &d.Total, &d.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

// List documentos más recientes primero.
func (r *DocumentRepo) List(ctx context.Context, limit, offset int) ([]*entity.Document, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, sale_id, status, total, created_at FROM documents ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(&d.ID, &d.SaleID, &d.Status, &d.Total, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
