package picking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jofra02/proyecto-ventas/internal/application/dto"
	"github.com/jofra02/proyecto-ventas/internal/application/ports"
	"github.com/jofra02/proyecto-ventas/internal/domain"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
)

// PickingUseCase verificación de preparación de pedidos por lectura de códigos de barras.
// Nunca completa la tarea por su cuenta: CompleteTask es una decisión explícita del operador.
type PickingUseCase struct {
	txRunner    ports.TxRunner
	taskRepo    repository.PickTaskRepository
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewPickingUseCase construye el caso de uso.
func NewPickingUseCase(
	txRunner ports.TxRunner,
	taskRepo repository.PickTaskRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) *PickingUseCase {
	return &PickingUseCase{
		txRunner:    txRunner,
		taskRepo:    taskRepo,
		saleRepo:    saleRepo,
		productRepo: productRepo,
	}
}

// CreateTask crea la tarea de una venta CONFIRMED. Una sola tarea por venta.
func (uc *PickingUseCase) CreateTask(ctx context.Context, saleID string) (*dto.PickTaskResponse, error) {
	var (
		task *entity.PickTask
		sale *entity.Sale
	)
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		sale, err = repos.Sales.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("venta %s: %w", saleID, domain.ErrNotFound)
		}
		if sale.Status != entity.SaleStatusConfirmed {
			return fmt.Errorf("la venta %s debe estar CONFIRMED para preparar (estado %s): %w", saleID, sale.Status, domain.ErrInvalidState)
		}
		existing, err := repos.PickTasks.GetBySaleID(ctx, saleID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("ya existe la tarea %s para la venta %s: %w", existing.ID, saleID, domain.ErrConflict)
		}
		task = &entity.PickTask{
			ID:        uuid.New().String(),
			SaleID:    saleID,
			Status:    entity.PickTaskStatusPending,
			CreatedAt: time.Now(),
		}
		return repos.PickTasks.Create(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	return uc.progress(ctx, task, sale, nil)
}

// Scan registra una lectura. Código desconocido → NOT_FOUND y producto fuera del pedido → MISMATCH,
// ambos sin efectos. En MATCH guarda el evento, pasa PENDING→IN_PROGRESS y devuelve el conteo del producto.
func (uc *PickingUseCase) Scan(ctx context.Context, in dto.ScanRequest) (*dto.ScanResponse, error) {
	var out *dto.ScanResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		task, err := repos.PickTasks.GetForUpdate(ctx, in.TaskID)
		if err != nil {
			return err
		}
		if task == nil {
			return fmt.Errorf("tarea %s: %w", in.TaskID, domain.ErrNotFound)
		}
		product, err := repos.Products.GetByBarcode(ctx, in.Barcode)
		if err != nil {
			return err
		}
		if product == nil {
			out = &dto.ScanResponse{Status: dto.ScanResultNotFound, Message: "código de barras no registrado", TaskStatus: task.Status}
			return nil
		}
		sale, err := repos.Sales.GetByID(ctx, task.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("venta %s: %w", task.SaleID, domain.ErrNotFound)
		}
		item, ok := sale.FindItem(product.ID)
		if !ok {
			out = &dto.ScanResponse{
				Status:      dto.ScanResultMismatch,
				Message:     "el producto no pertenece al pedido",
				ProductID:   product.ID,
				ProductName: product.Name,
				TaskStatus:  task.Status,
			}
			return nil
		}

		if err := repos.PickTasks.AddScan(ctx, &entity.PickScanEvent{
			ID:             uuid.New().String(),
			TaskID:         task.ID,
			BarcodeScanned: in.Barcode,
			ProductID:      product.ID,
			Timestamp:      time.Now(),
		}); err != nil {
			return err
		}
		if task.Status == entity.PickTaskStatusPending {
			if err := repos.PickTasks.UpdateStatus(ctx, task.ID, entity.PickTaskStatusInProgress); err != nil {
				return err
			}
			task.Status = entity.PickTaskStatusInProgress
		}
		scanned, err := repos.PickTasks.CountScans(ctx, task.ID, product.ID)
		if err != nil {
			return err
		}
		out = &dto.ScanResponse{
			Status:      dto.ScanResultMatch,
			ProductID:   product.ID,
			ProductName: product.Name,
			ScannedQty:  scanned,
			RequiredQty: int(item.Quantity.IntPart()),
			TaskStatus:  task.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetTask devuelve la tarea con el avance por línea del pedido.
func (uc *PickingUseCase) GetTask(ctx context.Context, id string) (*dto.PickTaskResponse, error) {
	task, err := uc.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("tarea %s: %w", id, domain.ErrNotFound)
	}
	sale, err := uc.saleRepo.GetByID(ctx, task.SaleID)
	if err != nil {
		return nil, err
	}
	scans, err := uc.taskRepo.ListScans(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.progress(ctx, task, sale, scans)
}

// CompleteTask cierra una tarea en curso (IN_PROGRESS → COMPLETED).
func (uc *PickingUseCase) CompleteTask(ctx context.Context, id string) (*dto.PickTaskResponse, error) {
	var task *entity.PickTask
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		task, err = repos.PickTasks.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if task == nil {
			return fmt.Errorf("tarea %s: %w", id, domain.ErrNotFound)
		}
		if task.Status != entity.PickTaskStatusInProgress {
			return fmt.Errorf("tarea %s en estado %s: %w", id, task.Status, domain.ErrInvalidState)
		}
		return repos.PickTasks.UpdateStatus(ctx, id, entity.PickTaskStatusCompleted)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetTask(ctx, task.ID)
}

func (uc *PickingUseCase) progress(ctx context.Context, task *entity.PickTask, sale *entity.Sale, scans []*entity.PickScanEvent) (*dto.PickTaskResponse, error) {
	out := &dto.PickTaskResponse{
		ID:        task.ID,
		SaleID:    task.SaleID,
		Status:    task.Status,
		CreatedAt: task.CreatedAt,
		Items:     []dto.PickItemProgress{},
	}
	if sale == nil {
		return out, nil
	}
	counts := make(map[string]int)
	for _, s := range scans {
		counts[s.ProductID]++
	}
	for _, it := range sale.Items {
		p := dto.PickItemProgress{
			ProductID:   it.ProductID,
			RequiredQty: int(it.Quantity.IntPart()),
			ScannedQty:  counts[it.ProductID],
		}
		product, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("producto %s: %w", it.ProductID, err)
		}
		if product != nil {
			p.ProductName = product.Name
		}
		out.Items = append(out.Items, p)
	}
	return out, nil
}
