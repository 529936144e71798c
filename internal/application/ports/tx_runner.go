package ports

import (
	"context"

	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y ningún movimiento o asiento queda a medias.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}
