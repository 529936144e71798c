package repository

import (
	"context"

	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	// GetByBarcode resuelve un código de barras; (nil, nil) si no existe.
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// AddBarcode falla con domain.ErrConflict si el código ya está asignado.
	AddBarcode(ctx context.Context, b *entity.ProductBarcode) error
}
