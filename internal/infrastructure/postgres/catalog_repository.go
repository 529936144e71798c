package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
)

var (
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.SupplierRepository  = (*SupplierRepo)(nil)
	_ repository.CustomerRepository  = (*CustomerRepo)(nil)
)

// ── Bodegas ──

// WarehouseRepo implementa WarehouseRepository.
type WarehouseRepo struct {
	q Querier
}

func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO warehouses (id, name, is_default, created_at) VALUES ($1, $2, $3, $4)`,
		w.ID, w.Name, w.IsDefault, w.CreatedAt)
	return mapWriteError("create warehouse", err)
}

func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, `SELECT id, name, is_default, created_at FROM warehouses WHERE id = $1`, id).
		Scan(&w.ID, &w.Name, &w.IsDefault, &w.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

func (r *WarehouseRepo) List(ctx context.Context) ([]*entity.Warehouse, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, is_default, created_at FROM warehouses ORDER BY is_default DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.IsDefault, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// ── Proveedores ──

// SupplierRepo implementa SupplierRepository. payment_details se guarda como JSONB.
type SupplierRepo struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, name, contact_name, email, phone, payment_method, payment_details, created_at`

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var (
		s                     entity.Supplier
		contact, email, phone *string
		details               []byte
	)
	if err := row.Scan(&s.ID, &s.Name, &contact, &email, &phone, &s.PaymentMethod, &details, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.ContactName, s.Email, s.Phone = deref(contact), deref(email), deref(phone)
	s.PaymentDetails = details
	return &s, nil
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	details := []byte(s.PaymentDetails)
	if len(details) == 0 {
		details = []byte("{}")
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO suppliers (`+supplierColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8)`,
		s.ID, s.Name, nullable(s.ContactName), nullable(s.Email), nullable(s.Phone),
		s.PaymentMethod, string(details), s.CreatedAt)
	return mapWriteError("create supplier", err)
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ── Clientes ──

// CustomerRepo implementa CustomerRepository.
type CustomerRepo struct {
	q Querier
}

func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var (
		c            entity.Customer
		taxID, email *string
	)
	if err := row.Scan(&c.ID, &c.Name, &taxID, &email, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.TaxID, c.Email = deref(taxID), deref(email)
	return &c, nil
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO customers (id, name, tax_id, email, created_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, nullable(c.TaxID), nullable(c.Email), c.CreatedAt)
	return mapWriteError("create customer", err)
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT id, name, tax_id, email, created_at FROM customers WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, tax_id, email, created_at FROM customers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
