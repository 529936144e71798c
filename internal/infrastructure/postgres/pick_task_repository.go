package postgres

import (
	"context"
	"fmt"

	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
)

var _ repository.PickTaskRepository = (*PickTaskRepo)(nil)

// PickTaskRepo tareas de picking (pick_tasks) y lecturas (pick_scan_events).
type PickTaskRepo struct {
	q Querier
}

// NewPickTaskRepository construye el repositorio.
func NewPickTaskRepository(q Querier) *PickTaskRepo {
	return &PickTaskRepo{q: q}
}

// Create inserta la tarea. Una tarea por venta (UNIQUE sale_id) => domain.ErrConflict.
func (r *PickTaskRepo) Create(ctx context.Context, t *entity.PickTask) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO pick_tasks (id, sale_id, status, created_at) VALUES ($1, $2, $3, $4)`,
		t.ID, t.SaleID, t.Status, t.CreatedAt)
	return mapWriteError("create pick task", err)
}

func (r *PickTaskRepo) GetByID(ctx context.Context, id string) (*entity.PickTask, error) {
	return r.get(ctx, `SELECT id, sale_id, status, created_at FROM pick_tasks WHERE id = $1`, id)
}

func (r *PickTaskRepo) GetBySaleID(ctx context.Context, saleID string) (*entity.PickTask, error) {
	return r.get(ctx, `SELECT id, sale_id, status, created_at FROM pick_tasks WHERE sale_id = $1`, saleID)
}

// GetForUpdate bloquea la tarea: las lecturas concurrentes sobre la misma tarea se serializan.
func (r *PickTaskRepo) GetForUpdate(ctx context.Context, id string) (*entity.PickTask, error) {
	return r.get(ctx, `SELECT id, sale_id, status, created_at FROM pick_tasks WHERE id = $1 FOR UPDATE`, id)
}

func (r *PickTaskRepo) get(ctx context.Context, query, arg string) (*entity.PickTask, error) {
	var t entity.PickTask
	err := r.q.QueryRow(ctx, query, arg).Scan(&t.ID, &t.SaleID, &t.Status, &t.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pick task: %w", err)
	}
	return &t, nil
}

func (r *PickTaskRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE pick_tasks SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update pick task status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return mapWriteError("update pick task status", errNoRowsAffected)
	}
	return nil
}

// AddScan registra una lectura (append-only).
func (r *PickTaskRepo) AddScan(ctx context.Context, e *entity.PickScanEvent) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO pick_scan_events (id, task_id, barcode_scanned, product_id, scanned_at) VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.TaskID, e.BarcodeScanned, e.ProductID, e.Timestamp)
	return mapWriteError("add pick scan", err)
}

func (r *PickTaskRepo) CountScans(ctx context.Context, taskID, productID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM pick_scan_events WHERE task_id = $1 AND product_id = $2`, taskID, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pick scans: %w", err)
	}
	return n, nil
}

func (r *PickTaskRepo) ListScans(ctx context.Context, taskID string) ([]*entity.PickScanEvent, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, task_id, barcode_scanned, product_id, scanned_at FROM pick_scan_events WHERE task_id = $1 ORDER BY scanned_at, id`,
		taskID)
	if err != nil {
		return nil, fmt.Errorf("list pick scans: %w", err)
	}
	defer rows.Close()

	var list []*entity.PickScanEvent
	for rows.Next() {
		var e entity.PickScanEvent
		if err := rows.Scan(&e.ID, &e.TaskID, &e.BarcodeScanned, &e.ProductID, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan pick event: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
