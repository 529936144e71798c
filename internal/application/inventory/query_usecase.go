package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jofra02/proyecto-ventas/internal/application/dto"
	"github.com/jofra02/proyecto-ventas/internal/domain"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/inventory"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
)

// DefaultExpiryDays horizonte de la alerta de vencimientos cuando no se indica.
const DefaultExpiryDays = 30

// StockQueryUseCase reportes de stock derivados del libro de movimientos (solo lectura).
type StockQueryUseCase struct {
	movRepo      repository.StockMovementRepository
	batchRepo    repository.BatchRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	projection   inventory.Projection
}

// NewStockQueryUseCase construye el caso de uso. projection define la fórmula de los saldos.
func NewStockQueryUseCase(
	movRepo repository.StockMovementRepository,
	batchRepo repository.BatchRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	projection inventory.Projection,
) *StockQueryUseCase {
	return &StockQueryUseCase{
		movRepo:      movRepo,
		batchRepo:    batchRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		projection:   projection,
	}
}

// StockLevels saldo de cada producto del catálogo (0 si no tiene movimientos).
func (uc *StockQueryUseCase) StockLevels(ctx context.Context) (*dto.StockLevelListResponse, error) {
	levels, err := uc.levels(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockLevelDTO, 0, len(levels))
	for _, l := range levels {
		items = append(items, dto.StockLevelDTO{
			ProductID:   l.Product.ID,
			SKU:         l.Product.SKU,
			ProductName: l.Product.Name,
			Quantity:    l.Quantity,
		})
	}
	return &dto.StockLevelListResponse{Projection: string(uc.projection), Items: items}, nil
}

// LowStockAlerts productos con saldo <= umbral; sin umbral definido se usa 10.
func (uc *StockQueryUseCase) LowStockAlerts(ctx context.Context) ([]dto.LowStockAlertDTO, error) {
	levels, err := uc.levels(ctx)
	if err != nil {
		return nil, err
	}
	low := inventory.LowStock(levels)
	out := make([]dto.LowStockAlertDTO, 0, len(low))
	for _, l := range low {
		out = append(out, dto.LowStockAlertDTO{
			ProductID:   l.Product.ID,
			SKU:         l.Product.SKU,
			ProductName: l.Product.Name,
			Quantity:    l.Quantity,
			Threshold:   l.Product.LowStockThreshold(),
		})
	}
	return out, nil
}

func (uc *StockQueryUseCase) levels(ctx context.Context) ([]inventory.StockLevel, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	totals, err := uc.movRepo.TotalsByProduct(ctx)
	if err != nil {
		return nil, fmt.Errorf("saldos por producto: %w", err)
	}
	return inventory.StockLevels(products, totals, uc.projection), nil
}

// StockDetailsByProduct desglose del stock físico del producto por proveedor y lote.
// Proveedores o lotes que no se pueden resolver se reportan como "Unknown / Mixed" / "General".
func (uc *StockQueryUseCase) StockDetailsByProduct(ctx context.Context, productID string) (*dto.StockDetailsResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	movs, err := uc.movRepo.List(ctx, repository.MovementFilter{ProductID: productID})
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	buckets := inventory.BucketsBySource(movs)

	suppliers := make(map[string]string)
	batches := make(map[string]*entity.Batch)
	for _, b := range buckets {
		if id := b.Key.SupplierID; id != "" {
			if _, done := suppliers[id]; !done {
				// un fallo de resolución degrada a la etiqueta genérica
				if s, err := uc.supplierRepo.GetByID(ctx, id); err == nil && s != nil {
					suppliers[id] = s.Name
				}
			}
		}
		if id := b.Key.BatchID; id != "" {
			if _, done := batches[id]; !done {
				if bt, err := uc.batchRepo.GetByID(ctx, id); err == nil && bt != nil {
					batches[id] = bt
				}
			}
		}
	}

	grouped := inventory.StockBySupplier(buckets, suppliers, batches)
	resp := &dto.StockDetailsResponse{ProductID: productID, Suppliers: make([]dto.SupplierStockDTO, 0, len(grouped))}
	for _, g := range grouped {
		resp.Total = resp.Total.Add(g.Quantity)
		sd := dto.SupplierStockDTO{Supplier: g.Supplier, Quantity: g.Quantity, Batches: make([]dto.BatchStockDTO, 0, len(g.Batches))}
		for _, b := range g.Batches {
			sd.Batches = append(sd.Batches, dto.BatchStockDTO{SKU: b.SKU, Quantity: b.Quantity, ExpiryDate: b.ExpiryDate})
		}
		resp.Suppliers = append(resp.Suppliers, sd)
	}
	return resp, nil
}

// ExpiringBatches lotes que vencen dentro de days días (incluye vencidos) con saldo > 0.
func (uc *StockQueryUseCase) ExpiringBatches(ctx context.Context, days int) ([]dto.ExpiringBatchDTO, error) {
	if days < 0 {
		return nil, fmt.Errorf("días no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	now := time.Now()
	batches, err := uc.batchRepo.ListExpiringBefore(ctx, inventory.ExpiryCutoff(now, days))
	if err != nil {
		return nil, fmt.Errorf("listar lotes: %w", err)
	}
	if len(batches) == 0 {
		return []dto.ExpiringBatchDTO{}, nil
	}
	totals, err := uc.movRepo.TotalsByBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("saldos por lote: %w", err)
	}
	expiring := inventory.ExpiringBatches(batches, totals, now, days)

	names := make(map[string]string)
	out := make([]dto.ExpiringBatchDTO, 0, len(expiring))
	for _, e := range expiring {
		name, ok := names[e.Batch.ProductID]
		if !ok {
			if p, err := uc.productRepo.GetByID(ctx, e.Batch.ProductID); err == nil && p != nil {
				name = p.Name
			}
			names[e.Batch.ProductID] = name
		}
		out = append(out, dto.ExpiringBatchDTO{
			BatchID:         e.Batch.ID,
			ProductID:       e.Batch.ProductID,
			ProductName:     name,
			SKU:             e.Batch.SKU,
			ExpiryDate:      *e.Batch.ExpiryDate,
			Quantity:        e.Quantity,
			DaysUntilExpiry: e.DaysUntilExpiry,
			Expired:         e.Expired,
		})
	}
	return out, nil
}
