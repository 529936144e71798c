package ports

import "context"

// AnalyticsInvalidator invalida las lecturas de analítica cacheadas.
// Lo llaman las operaciones que cambian ingresos (confirmar venta, emitir documento).
type AnalyticsInvalidator interface {
	Invalidate(ctx context.Context) error
}
