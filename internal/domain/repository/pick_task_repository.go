package repository

import (
	"context"

	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
)

// PickTaskRepository tareas de picking y sus lecturas (append-only).
type PickTaskRepository interface {
	// Create falla con domain.ErrConflict si ya existe una tarea para la venta.
	Create(ctx context.Context, t *entity.PickTask) error
	GetByID(ctx context.Context, id string) (*entity.PickTask, error)
	GetBySaleID(ctx context.Context, saleID string) (*entity.PickTask, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PickTask, error)
	UpdateStatus(ctx context.Context, id, status string) error
	AddScan(ctx context.Context, e *entity.PickScanEvent) error
	// CountScans cantidad de lecturas de un producto en la tarea.
	CountScans(ctx context.Context, taskID, productID string) (int, error)
	ListScans(ctx context.Context, taskID string) ([]*entity.PickScanEvent, error)
}
