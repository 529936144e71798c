package repository

import (
	"context"

	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
)

// SaleRepository persiste ventas junto con sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate bloquea la fila de la venta hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Sale, error)
}

// DocumentRepository comprobantes emitidos. Como máximo uno por venta.
type DocumentRepository interface {
	// Create falla con domain.ErrConflict si la venta ya tiene documento.
	Create(ctx context.Context, d *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	GetBySaleID(ctx context.Context, saleID string) (*entity.Document, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Document, error)
}
