// Package inventory contiene el proyector de saldos: funciones puras que derivan
// cantidades a partir del libro de movimientos, sin estado ni acceso a datos.
package inventory

import (
	"fmt"

	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Projection nombra la fórmula de saldo a aplicar sobre los movimientos.
type Projection string

const (
	// ProjectionOnHand stock físico: IN + ADJUST - OUT - COMMIT. Ignora reservas.
	ProjectionOnHand Projection = "on_hand"
	// ProjectionAvailable disponible para prometer: on-hand - RESERVE + RELEASE.
	ProjectionAvailable Projection = "available"
)

// ParseProjection convierte el valor de configuración; vacío equivale a on_hand.
func ParseProjection(s string) (Projection, error) {
	switch Projection(s) {
	case "", ProjectionOnHand:
		return ProjectionOnHand, nil
	case ProjectionAvailable:
		return ProjectionAvailable, nil
	}
	return "", fmt.Errorf("proyección de stock desconocida: %q", s)
}

// Filter restringe los movimientos considerados. Campos vacíos no filtran.
type Filter struct {
	ProductID   string
	WarehouseID string
	BatchID     string
	SupplierID  string
}

// Matches indica si el movimiento cumple el filtro.
func (f Filter) Matches(m *entity.StockMovement) bool {
	if f.ProductID != "" && m.ProductID != f.ProductID {
		return false
	}
	if f.WarehouseID != "" && m.WarehouseID != f.WarehouseID {
		return false
	}
	if f.BatchID != "" && m.BatchID != f.BatchID {
		return false
	}
	if f.SupplierID != "" && m.SupplierID != f.SupplierID {
		return false
	}
	return true
}

// Signed devuelve la contribución con signo de un movimiento según la proyección.
func Signed(m *entity.StockMovement, p Projection) decimal.Decimal {
	return signed(m.Type, m.Quantity, p)
}

func signed(typ string, qty decimal.Decimal, p Projection) decimal.Decimal {
	switch typ {
	case entity.MovementTypeIN, entity.MovementTypeADJUST:
		return qty
	case entity.MovementTypeOUT, entity.MovementTypeCOMMIT:
		return qty.Neg()
	case entity.MovementTypeRESERVE:
		if p == ProjectionAvailable {
			return qty.Neg()
		}
	case entity.MovementTypeRELEASE:
		if p == ProjectionAvailable {
			return qty
		}
	}
	return decimal.Zero
}

// Quantity suma los movimientos que cumplen el filtro. El resultado no depende del orden.
func Quantity(movements []*entity.StockMovement, f Filter, p Projection) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if f.Matches(m) {
			total = total.Add(Signed(m, p))
		}
	}
	return total
}

// Totals agrupa los movimientos por key y tipo. Un key vacío descarta el movimiento.
// Es la misma agregación que hace la base con SUM ... GROUP BY.
func Totals(movements []*entity.StockMovement, key func(*entity.StockMovement) string) []entity.MovementTotal {
	type k struct{ key, typ string }
	idx := make(map[k]int)
	var out []entity.MovementTotal
	for _, m := range movements {
		kk := k{key(m), m.Type}
		if kk.key == "" {
			continue
		}
		i, ok := idx[kk]
		if !ok {
			i = len(out)
			idx[kk] = i
			out = append(out, entity.MovementTotal{Key: kk.key, Type: kk.typ})
		}
		out[i].Quantity = out[i].Quantity.Add(m.Quantity)
	}
	return out
}

// ByProduct clave de agrupación por producto.
func ByProduct(m *entity.StockMovement) string { return m.ProductID }

// ByBatch clave de agrupación por lote.
func ByBatch(m *entity.StockMovement) string { return m.BatchID }

// QuantityByKey aplica la proyección a los totales y devuelve el saldo por clave.
func QuantityByKey(totals []entity.MovementTotal, p Projection) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, t := range totals {
		out[t.Key] = out[t.Key].Add(signed(t.Type, t.Quantity, p))
	}
	return out
}

// StockLevel saldo de un producto.
type StockLevel struct {
	Product  *entity.Product
	Quantity decimal.Decimal
}

// StockLevels devuelve un nivel por producto, en el orden de products; sin movimientos = 0.
// totals viene agrupado por producto.
func StockLevels(products []*entity.Product, totals []entity.MovementTotal, p Projection) []StockLevel {
	byProduct := QuantityByKey(totals, p)
	levels := make([]StockLevel, 0, len(products))
	for _, prod := range products {
		levels = append(levels, StockLevel{Product: prod, Quantity: byProduct[prod.ID]})
	}
	return levels
}

// LowStock filtra los niveles con cantidad <= umbral del producto (10 si no tiene).
func LowStock(levels []StockLevel) []StockLevel {
	out := make([]StockLevel, 0)
	for _, l := range levels {
		if l.Quantity.LessThanOrEqual(l.Product.LowStockThreshold()) {
			out = append(out, l)
		}
	}
	return out
}
