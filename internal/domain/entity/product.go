package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinStockLevel umbral de stock bajo cuando el producto no define uno.
var DefaultMinStockLevel = decimal.NewFromInt(10)

// Product representa un producto del catálogo.
// El stock no vive aquí: se deriva siempre del libro de movimientos.
type Product struct {
	ID             string
	SKU            string
	Name           string
	Price          decimal.Decimal  // precio de lista; la venta guarda su propia copia
	MinStockLevel  *decimal.Decimal // nil = usar DefaultMinStockLevel
	IsBatchTracked bool
	TrackExpiry    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LowStockThreshold devuelve el umbral efectivo de stock bajo.
func (p *Product) LowStockThreshold() decimal.Decimal {
	if p.MinStockLevel == nil {
		return DefaultMinStockLevel
	}
	return *p.MinStockLevel
}

// ProductBarcode asocia un código de barras (único) a un producto.
type ProductBarcode struct {
	ProductID string
	Barcode   string
}
