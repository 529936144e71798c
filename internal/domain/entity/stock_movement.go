package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de stock.
const (
	MovementTypeIN      = "IN"      // entrada (recepción)
	MovementTypeOUT     = "OUT"     // salida física
	MovementTypeADJUST  = "ADJUST"  // ajuste con signo
	MovementTypeRESERVE = "RESERVE" // reserva al confirmar venta
	MovementTypeRELEASE = "RELEASE" // liberación de una reserva
	MovementTypeCOMMIT  = "COMMIT"  // salida definitiva al emitir documento
)

// StockMovement es un registro inmutable del libro de movimientos.
// Quantity es magnitud positiva para todos los tipos salvo ADJUST, que lleva signo.
// Las correcciones se hacen con un nuevo movimiento compensatorio, nunca editando.
type StockMovement struct {
	ID          string
	ProductID   string
	WarehouseID string
	BatchID     string // vacío si el producto no maneja lote
	SupplierID  string // vacío si no se conoce el proveedor
	Quantity    decimal.Decimal
	Type        string
	Reference   string // referencia libre: SALE-<id>, DOC-<id>, motivo del ajuste
	CreatedAt   time.Time
}

// IsValidMovementType indica si t es uno de los tipos conocidos.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUST,
		MovementTypeRESERVE, MovementTypeRELEASE, MovementTypeCOMMIT:
		return true
	}
	return false
}

// MovementTotal suma de las cantidades de un tipo de movimiento para una clave
// (producto o lote, según la consulta que la produjo).
type MovementTotal struct {
	Key      string
	Type     string
	Quantity decimal.Decimal
}
