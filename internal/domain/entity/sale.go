package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusDraft     = "DRAFT"
	SaleStatusConfirmed = "CONFIRMED"
	SaleStatusCancelled = "CANCELLED"
)

// Sale pedido de venta. Items se fija al crear el borrador y no se recalcula desde el catálogo.
type Sale struct {
	ID          string
	Status      string
	WarehouseID string
	CustomerID  string // vacío = consumidor final
	CreatedAt   time.Time
	Items       []SaleItem
}

// SaleItem línea de venta con el precio congelado al crear el borrador.
type SaleItem struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Subtotal cantidad por precio unitario.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// Total suma de subtotales de las líneas.
func (s *Sale) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// FindItem devuelve la línea del producto indicado, si existe.
func (s *Sale) FindItem(productID string) (SaleItem, bool) {
	for _, it := range s.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return SaleItem{}, false
}

// SaleReference referencia usada en los movimientos de reserva.
func SaleReference(saleID string) string { return "SALE-" + saleID }
