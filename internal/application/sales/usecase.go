package sales

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
	"github.com/jofra02/proyecto-ventas/pkg/logger"
	"github.com/shopspring/decimal"
)

// SaleUseCase ciclo de vida de la venta: borrador y confirmación con reserva de stock.
type SaleUseCase struct {
	txRunner    ports.TxRunner
	saleRepo    repository.SaleRepository
	stock       StockReserver
	invalidator ports.AnalyticsInvalidator // opcional
	log         *logger.Logger
}

// NewSaleUseCase construye el caso de uso. invalidator puede ser nil.
func NewSaleUseCase(
	txRunner ports.TxRunner,
	saleRepo repository.SaleRepository,
	stock StockReserver,
	invalidator ports.AnalyticsInvalidator,
	log *logger.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		saleRepo:    saleRepo,
		stock:       stock,
		invalidator: invalidator,
		log:         log,
	}
}

// CreateSale crea la venta en DRAFT. El precio de cada línea queda congelado: si no viene
// se toma el precio de catálogo en este momento y no se recalcula después.
func (uc *SaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.WarehouseID == "" || len(in.Items) == 0 {
		return nil, fmt.Errorf("venta sin bodega o sin líneas: %w", domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if it.ProductID == "" || !it.Quantity.GreaterThan(decimal.Zero) || (it.UnitPrice != nil && it.UnitPrice.IsNegative()) {
			return nil, fmt.Errorf("línea inválida para producto %q: %w", it.ProductID, domain.ErrInvalidInput)
		}
	}

	sale := &entity.Sale{
		ID:          uuid.New().String(),
		Status:      entity.SaleStatusDraft,
		WarehouseID: in.WarehouseID,
		CustomerID:  in.CustomerID,
		CreatedAt:   time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		wh, err := repos.Warehouses.GetByID(ctx, in.WarehouseID)
		if err != nil {
			return err
		}
		if wh == nil {
			return fmt.Errorf("bodega %s: %w", in.WarehouseID, domain.ErrNotFound)
		}
		if in.CustomerID != "" {
			c, err := repos.Customers.GetByID(ctx, in.CustomerID)
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("cliente %s: %w", in.CustomerID, domain.ErrNotFound)
			}
		}
		sale.Items = make([]entity.SaleItem, 0, len(in.Items))
		for _, it := range in.Items {
			product, err := repos.Products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
			}
			price := product.Price
			if it.UnitPrice != nil {
				price = *it.UnitPrice
			}
			sale.Items = append(sale.Items, entity.SaleItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: price})
		}
		return repos.Sales.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// ConfirmSale bloquea la venta, exige DRAFT, agrega un RESERVE por línea y pasa a CONFIRMED.
// Todo en una transacción: una segunda confirmación falla con ErrInvalidState sin reservar de nuevo.
func (uc *SaleUseCase) ConfirmSale(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		sale, err = repos.Sales.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("venta %s: %w", saleID, domain.ErrNotFound)
		}
		if sale.Status != entity.SaleStatusDraft {
			return fmt.Errorf("venta %s en estado %s, solo se confirma desde DRAFT: %w", saleID, sale.Status, domain.ErrInvalidState)
		}
		if err := uc.stock.ReserveInTx(ctx, repos.Movements, sale, time.Now()); err != nil {
			return fmt.Errorf("reservar stock: %w", err)
		}
		if err := repos.Sales.UpdateStatus(ctx, saleID, entity.SaleStatusConfirmed); err != nil {
			return err
		}
		sale.Status = entity.SaleStatusConfirmed
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.invalidateAnalytics(ctx)
	return toSaleResponse(sale), nil
}

// GetSale obtiene una venta con sus líneas.
func (uc *SaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("venta %s: %w", id, domain.ErrNotFound)
	}
	return toSaleResponse(sale), nil
}

// ListSales lista ventas (más recientes primero), opcionalmente por estado.
func (uc *SaleUseCase) ListSales(ctx context.Context, status string, limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Count: len(items)},
	}, nil
}

func (uc *SaleUseCase) invalidateAnalytics(ctx context.Context) {
	if uc.invalidator == nil {
		return
	}
	if err := uc.invalidator.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de analítica")
	}
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		})
	}
	return &dto.SaleResponse{
		ID:          s.ID,
		Status:      s.Status,
		WarehouseID: s.WarehouseID,
		CustomerID:  s.CustomerID,
		Total:       s.Total(),
		CreatedAt:   s.CreatedAt,
		Items:       items,
	}
}
