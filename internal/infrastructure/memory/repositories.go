package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jofra02/proyecto-ventas/internal/domain"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/inventory"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
)

// ── Movimientos ───────────────────────────────────────────────────────────────

type movementRepo struct{ base }

func (r *movementRepo) Append(_ context.Context, m *entity.StockMovement) error {
	return r.with(func(st *state) error {
		if _, ok := st.products[m.ProductID]; !ok {
			return fmt.Errorf("producto %s: %w", m.ProductID, domain.ErrNotFound)
		}
		if _, ok := st.warehouses[m.WarehouseID]; !ok {
			return fmt.Errorf("bodega %s: %w", m.WarehouseID, domain.ErrNotFound)
		}
		if m.BatchID != "" {
			if _, ok := st.batches[m.BatchID]; !ok {
				return fmt.Errorf("lote %s: %w", m.BatchID, domain.ErrNotFound)
			}
		}
		if m.SupplierID != "" {
			if _, ok := st.suppliers[m.SupplierID]; !ok {
				return fmt.Errorf("proveedor %s: %w", m.SupplierID, domain.ErrNotFound)
			}
		}
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.with(func(st *state) error {
		for i := range st.movements {
			m := st.movements[i]
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			if f.WarehouseID != "" && m.WarehouseID != f.WarehouseID {
				continue
			}
			if f.BatchID != "" && m.BatchID != f.BatchID {
				continue
			}
			if f.SupplierID != "" && m.SupplierID != f.SupplierID {
				continue
			}
			out = append(out, &m)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, err
}

func (r *movementRepo) TotalsByProduct(ctx context.Context) ([]entity.MovementTotal, error) {
	return r.totals(ctx, inventory.ByProduct)
}

func (r *movementRepo) TotalsByBatch(ctx context.Context) ([]entity.MovementTotal, error) {
	return r.totals(ctx, inventory.ByBatch)
}

func (r *movementRepo) totals(ctx context.Context, key func(*entity.StockMovement) string) ([]entity.MovementTotal, error) {
	movs, err := r.List(ctx, repository.MovementFilter{})
	if err != nil {
		return nil, err
	}
	return inventory.Totals(movs, key), nil
}

// ── Lotes ─────────────────────────────────────────────────────────────────────

type batchRepo struct{ base }

func (r *batchRepo) Create(_ context.Context, b *entity.Batch) error {
	return r.with(func(st *state) error {
		if _, ok := st.products[b.ProductID]; !ok {
			return fmt.Errorf("producto %s: %w", b.ProductID, domain.ErrNotFound)
		}
		st.batches[b.ID] = *b
		return nil
	})
}

func (r *batchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	var out *entity.Batch
	err := r.with(func(st *state) error {
		if b, ok := st.batches[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *batchRepo) ListExpiringBefore(_ context.Context, cutoff time.Time) ([]*entity.Batch, error) {
	var out []*entity.Batch
	err := r.with(func(st *state) error {
		for _, b := range st.batches {
			if b.ExpiryDate != nil && !b.ExpiryDate.After(cutoff) {
				b := b
				out = append(out, &b)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiryDate.Before(*out[j].ExpiryDate) })
	return out, err
}

// ── Productos ─────────────────────────────────────────────────────────────────

type productRepo struct{ base }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.with(func(st *state) error {
		for _, existing := range st.products {
			if existing.SKU == p.SKU {
				return fmt.Errorf("sku %s: %w", p.SKU, domain.ErrConflict)
			}
		}
		st.products[p.ID] = *p
		st.productIDs = append(st.productIDs, p.ID)
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.with(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *productRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.with(func(st *state) error {
		for _, id := range st.productIDs {
			p := st.products[id]
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func (r *productRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	var out *entity.Product
	err := r.with(func(st *state) error {
		if id, ok := st.barcodes[barcode]; ok {
			p := st.products[id]
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *productRepo) AddBarcode(_ context.Context, b *entity.ProductBarcode) error {
	return r.with(func(st *state) error {
		if _, ok := st.products[b.ProductID]; !ok {
			return fmt.Errorf("producto %s: %w", b.ProductID, domain.ErrNotFound)
		}
		if _, taken := st.barcodes[b.Barcode]; taken {
			return fmt.Errorf("código %s ya asignado: %w", b.Barcode, domain.ErrConflict)
		}
		st.barcodes[b.Barcode] = b.ProductID
		return nil
	})
}

// ── Bodegas, proveedores y clientes ──────────────────────────────────────────

type warehouseRepo struct{ base }

func (r *warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.with(func(st *state) error {
		st.warehouses[w.ID] = *w
		st.whIDs = append(st.whIDs, w.ID)
		return nil
	})
}

func (r *warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.with(func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			out = &w
		}
		return nil
	})
	return out, err
}

func (r *warehouseRepo) List(_ context.Context) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	err := r.with(func(st *state) error {
		for _, id := range st.whIDs {
			w := st.warehouses[id]
			out = append(out, &w)
		}
		return nil
	})
	return out, err
}

type supplierRepo struct{ base }

func (r *supplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	return r.with(func(st *state) error {
		st.suppliers[s.ID] = *s
		st.supIDs = append(st.supIDs, s.ID)
		return nil
	})
}

func (r *supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.with(func(st *state) error {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *supplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.with(func(st *state) error {
		for _, id := range st.supIDs {
			s := st.suppliers[id]
			out = append(out, &s)
		}
		return nil
	})
	return out, err
}

type customerRepo struct{ base }

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.with(func(st *state) error {
		st.customers[c.ID] = *c
		st.custIDs = append(st.custIDs, c.ID)
		return nil
	})
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.with(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *customerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.with(func(st *state) error {
		for _, id := range st.custIDs {
			c := st.customers[id]
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}
