package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jofra02/proyecto-ventas/internal/domain"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
)

func copySale(s entity.Sale) *entity.Sale {
	s.Items = append([]entity.SaleItem(nil), s.Items...)
	return &s
}

// ── Ventas ────────────────────────────────────────────────────────────────────

type saleRepo struct{ base }

func (r *saleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.with(func(st *state) error {
		if _, ok := st.warehouses[s.WarehouseID]; !ok {
			return fmt.Errorf("bodega %s: %w", s.WarehouseID, domain.ErrNotFound)
		}
		st.sales[s.ID] = *copySale(*s)
		st.saleIDs = append(st.saleIDs, s.ID)
		return nil
	})
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.with(func(st *state) error {
		if s, ok := st.sales[id]; ok {
			out = copySale(s)
		}
		return nil
	})
	return out, err
}

// GetForUpdate dentro de Run el lock del store ya serializa el acceso.
func (r *saleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *saleRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.with(func(st *state) error {
		s, ok := st.sales[id]
		if !ok {
			return fmt.Errorf("venta %s: %w", id, domain.ErrNotFound)
		}
		s.Status = status
		st.sales[id] = s
		return nil
	})
}

func (r *saleRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.with(func(st *state) error {
		for i := len(st.saleIDs) - 1; i >= 0; i-- {
			s := st.sales[st.saleIDs[i]]
			if status != "" && s.Status != status {
				continue
			}
			out = append(out, copySale(s))
		}
		return nil
	})
	return paginate(out, limit, offset), err
}

// ── Documentos ────────────────────────────────────────────────────────────────

type documentRepo struct{ base }

func (r *documentRepo) Create(_ context.Context, d *entity.Document) error {
	return r.with(func(st *state) error {
		if d.SaleID != "" {
			for _, existing := range st.documents {
				if existing.SaleID == d.SaleID {
					return fmt.Errorf("documento para venta %s: %w", d.SaleID, domain.ErrConflict)
				}
			}
		}
		st.documents[d.ID] = *d
		st.docIDs = append(st.docIDs, d.ID)
		return nil
	})
}

func (r *documentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	var out *entity.Document
	err := r.with(func(st *state) error {
		if d, ok := st.documents[id]; ok {
			out = &d
		}
		return nil
	})
	return out, err
}

func (r *documentRepo) GetBySaleID(_ context.Context, saleID string) (*entity.Document, error) {
	var out *entity.Document
	err := r.with(func(st *state) error {
		for _, d := range st.documents {
			if d.SaleID == saleID {
				d := d
				out = &d
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *documentRepo) List(_ context.Context, limit, offset int) ([]*entity.Document, error) {
	var out []*entity.Document
	err := r.with(func(st *state) error {
		for i := len(st.docIDs) - 1; i >= 0; i-- {
			d := st.documents[st.docIDs[i]]
			out = append(out, &d)
		}
		return nil
	})
	return paginate(out, limit, offset), err
}

// ── Picking ───────────────────────────────────────────────────────────────────

type pickTaskRepo struct{ base }

func (r *pickTaskRepo) Create(_ context.Context, t *entity.PickTask) error {
	return r.with(func(st *state) error {
		for _, existing := range st.tasks {
			if existing.SaleID == t.SaleID {
				return fmt.Errorf("tarea para venta %s: %w", t.SaleID, domain.ErrConflict)
			}
		}
		st.tasks[t.ID] = *t
		return nil
	})
}

func (r *pickTaskRepo) GetByID(_ context.Context, id string) (*entity.PickTask, error) {
	var out *entity.PickTask
	err := r.with(func(st *state) error {
		if t, ok := st.tasks[id]; ok {
			out = &t
		}
		return nil
	})
	return out, err
}

func (r *pickTaskRepo) GetBySaleID(_ context.Context, saleID string) (*entity.PickTask, error) {
	var out *entity.PickTask
	err := r.with(func(st *state) error {
		for _, t := range st.tasks {
			if t.SaleID == saleID {
				t := t
				out = &t
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *pickTaskRepo) GetForUpdate(ctx context.Context, id string) (*entity.PickTask, error) {
	return r.GetByID(ctx, id)
}

func (r *pickTaskRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.with(func(st *state) error {
		t, ok := st.tasks[id]
		if !ok {
			return fmt.Errorf("tarea %s: %w", id, domain.ErrNotFound)
		}
		t.Status = status
		st.tasks[id] = t
		return nil
	})
}

func (r *pickTaskRepo) AddScan(_ context.Context, e *entity.PickScanEvent) error {
	return r.with(func(st *state) error {
		if _, ok := st.tasks[e.TaskID]; !ok {
			return fmt.Errorf("tarea %s: %w", e.TaskID, domain.ErrNotFound)
		}
		st.scans = append(st.scans, *e)
		return nil
	})
}

func (r *pickTaskRepo) CountScans(_ context.Context, taskID, productID string) (int, error) {
	n := 0
	err := r.with(func(st *state) error {
		for _, e := range st.scans {
			if e.TaskID == taskID && e.ProductID == productID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *pickTaskRepo) ListScans(_ context.Context, taskID string) ([]*entity.PickScanEvent, error) {
	var out []*entity.PickScanEvent
	err := r.with(func(st *state) error {
		for _, e := range st.scans {
			if e.TaskID == taskID {
				e := e
				out = append(out, &e)
			}
		}
		return nil
	})
	return out, err
}

// ── Cuenta corriente y cobros ─────────────────────────────────────────────────

type ledgerRepo struct{ base }

func (r *ledgerRepo) Append(_ context.Context, e *entity.LedgerEntry) error {
	return r.with(func(st *state) error {
		if _, ok := st.customers[e.CustomerID]; !ok {
			return fmt.Errorf("cliente %s: %w", e.CustomerID, domain.ErrNotFound)
		}
		st.ledger = append(st.ledger, *e)
		return nil
	})
}

func (r *ledgerRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	err := r.with(func(st *state) error {
		for i := len(st.ledger) - 1; i >= 0; i-- {
			if e := st.ledger[i]; e.CustomerID == customerID {
				out = append(out, &e)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

type paymentRepo struct{ base }

func (r *paymentRepo) Create(_ context.Context, p *entity.Payment) error {
	return r.with(func(st *state) error {
		if p.IdempotencyKey != "" {
			for _, existing := range st.payments {
				if existing.IdempotencyKey == p.IdempotencyKey {
					return fmt.Errorf("clave de idempotencia %s: %w", p.IdempotencyKey, domain.ErrConflict)
				}
			}
		}
		st.payments = append(st.payments, *p)
		return nil
	})
}

func (r *paymentRepo) ExistsByIdempotencyKey(_ context.Context, key string) (bool, error) {
	found := false
	err := r.with(func(st *state) error {
		for _, p := range st.payments {
			if p.IdempotencyKey == key {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}

func (r *paymentRepo) List(_ context.Context, customerID string, limit, offset int) ([]*entity.Payment, error) {
	var out []*entity.Payment
	err := r.with(func(st *state) error {
		for i := len(st.payments) - 1; i >= 0; i-- {
			if p := st.payments[i]; customerID == "" || p.CustomerID == customerID {
				out = append(out, &p)
			}
		}
		return nil
	})
	return paginate(out, limit, offset), err
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
