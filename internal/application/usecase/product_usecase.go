package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jofra02/proyecto-ventas/internal/application/dto"
	"github.com/jofra02/proyecto-ventas/internal/application/ports"
	"github.com/jofra02/proyecto-ventas/internal/domain"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProductUseCase alta y consulta de productos. El stock no se toca aquí: se maneja vía movimientos.
type ProductUseCase struct {
	txRunner ports.TxRunner
	repo     repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner ports.TxRunner, repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo}
}

// Create crea un producto con sus códigos de barras en una transacción.
// Un código ya asignado a otro producto devuelve ErrConflict.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.SKU) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("sku y nombre son obligatorios: %w", domain.ErrInvalidInput)
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("precio negativo: %w", domain.ErrInvalidInput)
	}
	if in.MinStockLevel != nil && in.MinStockLevel.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("stock mínimo negativo: %w", domain.ErrInvalidInput)
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		SKU:            in.SKU,
		Name:           in.Name,
		Price:          in.Price,
		MinStockLevel:  in.MinStockLevel,
		IsBatchTracked: in.IsBatchTracked,
		TrackExpiry:    in.TrackExpiry,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		for _, code := range in.Barcodes {
			if err := repos.Products.AddBarcode(ctx, &entity.ProductBarcode{ProductID: product.ID, Barcode: code}); err != nil {
				return fmt.Errorf("código %q: %w", code, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// AddBarcode asocia un código de barras a un producto existente.
func (uc *ProductUseCase) AddBarcode(ctx context.Context, productID string, in dto.AddBarcodeRequest) error {
	code := strings.TrimSpace(in.Barcode)
	if code == "" {
		return fmt.Errorf("código vacío: %w", domain.ErrInvalidInput)
	}
	product, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	return uc.repo.AddBarcode(ctx, &entity.ProductBarcode{ProductID: productID, Barcode: code})
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return toProductResponse(product), nil
}

// List lista los productos.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Price:          p.Price,
		MinStockLevel:  p.MinStockLevel,
		IsBatchTracked: p.IsBatchTracked,
		TrackExpiry:    p.TrackExpiry,
		CreatedAt:      p.CreatedAt,
	}
}
