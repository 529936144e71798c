package inventory

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
	"github.com/shopspring/decimal"
)

// ReceiveUseCase registra entradas y ajustes de stock. Cada operación es una transacción:
// el lote (si corresponde) y el movimiento se confirman juntos o no se confirman.
type ReceiveUseCase struct {
	txRunner ports.TxRunner
}

// NewReceiveUseCase construye el caso de uso.
func NewReceiveUseCase(txRunner ports.TxRunner) *ReceiveUseCase {
	return &ReceiveUseCase{txRunner: txRunner}
}

// receiveLine datos de una línea a recibir, ya resuelto el proveedor.
type receiveLine struct {
	product         *entity.Product
	warehouseID     string
	supplierID      string
	quantity        decimal.Decimal
	expiryDate      *time.Time
	manufactureDate *time.Time
}

// ReceiveStock crea un lote si el producto maneja lote o se informó vencimiento, y registra un IN.
func (uc *ReceiveUseCase) ReceiveStock(ctx context.Context, in dto.ReceiveStockRequest) (*dto.MovementResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("cantidad debe ser mayor a cero: %w", domain.ErrInvalidInput)
	}
	var out *dto.MovementResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		product, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", in.ProductID, domain.ErrNotFound)
		}
		if err := requireWarehouse(ctx, repos, in.WarehouseID); err != nil {
			return err
		}
		if err := requireSupplier(ctx, repos, in.SupplierID); err != nil {
			return err
		}
		mov, err := receiveInTx(ctx, repos, receiveLine{
			product:         product,
			warehouseID:     in.WarehouseID,
			supplierID:      in.SupplierID,
			quantity:        in.Quantity,
			expiryDate:      in.ExpiryDate,
			manufactureDate: in.ManufactureDate,
		}, time.Now())
		if err != nil {
			return err
		}
		out = &dto.MovementResponse{MovementID: mov.ID, BatchID: mov.BatchID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReceiveStockBatch recibe varias líneas en una sola transacción. El proveedor de la línea tiene
// prioridad sobre el default del lote. Las líneas con producto inexistente se omiten.
func (uc *ReceiveUseCase) ReceiveStockBatch(ctx context.Context, in dto.ReceiveBatchRequest) (*dto.ReceiveBatchResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("la recepción no tiene líneas: %w", domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("producto %s: cantidad debe ser mayor a cero: %w", it.ProductID, domain.ErrInvalidInput)
		}
	}
	count := 0
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		if err := requireWarehouse(ctx, repos, in.WarehouseID); err != nil {
			return err
		}
		now := time.Now()
		checked := make(map[string]bool)
		for _, it := range in.Items {
			product, err := repos.Products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				continue
			}
			supplierID := it.SupplierID
			if supplierID == "" {
				supplierID = in.SupplierID
			}
			if supplierID != "" && !checked[supplierID] {
				if err := requireSupplier(ctx, repos, supplierID); err != nil {
					return err
				}
				checked[supplierID] = true
			}
			if _, err := receiveInTx(ctx, repos, receiveLine{
				product:         product,
				warehouseID:     in.WarehouseID,
				supplierID:      supplierID,
				quantity:        it.Quantity,
				expiryDate:      it.ExpiryDate,
				manufactureDate: it.ManufactureDate,
			}, now); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.ReceiveBatchResponse{Count: count}, nil
}

// AdjustStock registra un ADJUST con signo. El motivo queda como referencia del movimiento.
func (uc *ReceiveUseCase) AdjustStock(ctx context.Context, in dto.AdjustStockRequest) (*dto.MovementResponse, error) {
	if in.Quantity.IsZero() {
		return nil, fmt.Errorf("el ajuste no puede ser cero: %w", domain.ErrInvalidInput)
	}
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		Type:        entity.MovementTypeADJUST,
		Reference:   in.Reason,
		CreatedAt:   time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		product, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", in.ProductID, domain.ErrNotFound)
		}
		if err := requireWarehouse(ctx, repos, in.WarehouseID); err != nil {
			return err
		}
		return repos.Movements.Append(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	return &dto.MovementResponse{MovementID: mov.ID}, nil
}

// receiveInTx crea el lote (si aplica) y el movimiento IN con los repos de la transacción del caller.
func receiveInTx(ctx context.Context, repos repository.Repos, line receiveLine, now time.Time) (*entity.StockMovement, error) {
	var batchID string
	if line.product.IsBatchTracked || line.expiryDate != nil {
		batch := &entity.Batch{
			ID:              uuid.New().String(),
			ProductID:       line.product.ID,
			SKU:             line.product.SKU,
			ManufactureDate: line.manufactureDate,
			ExpiryDate:      line.expiryDate,
			ReceivedAt:      now,
		}
		if err := repos.Batches.Create(ctx, batch); err != nil {
			return nil, err
		}
		batchID = batch.ID
	}
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   line.product.ID,
		WarehouseID: line.warehouseID,
		BatchID:     batchID,
		SupplierID:  line.supplierID,
		Quantity:    line.quantity,
		Type:        entity.MovementTypeIN,
		CreatedAt:   now,
	}
	if err := repos.Movements.Append(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

func requireWarehouse(ctx context.Context, repos repository.Repos, id string) error {
	wh, err := repos.Warehouses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if wh == nil {
		return fmt.Errorf("bodega %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func requireSupplier(ctx context.Context, repos repository.Repos, id string) error {
	if id == "" {
		return nil
	}
	s, err := repos.Suppliers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("proveedor %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
