package analytics

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PercentChange variación porcentual ((c-p)/p)*100. Con p = 0 devuelve 100 si c > 0 y 0 en otro caso.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.GreaterThan(decimal.Zero) {
			return hundred
		}
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred)
}

// Totals métricas agregadas de un período.
type Totals struct {
	Revenue decimal.Decimal
	Orders  int
}

// AverageOrderValue ingreso promedio por pedido; 0 sin pedidos.
func (t Totals) AverageOrderValue() decimal.Decimal {
	if t.Orders == 0 {
		return decimal.Zero
	}
	return t.Revenue.Div(decimal.NewFromInt(int64(t.Orders)))
}

// Line línea de venta confirmada usada para totalizar.
type Line struct {
	SaleID  string
	Revenue decimal.Decimal
}

// Totalize suma ingresos y cuenta ventas distintas.
func Totalize(lines []Line) Totals {
	t := Totals{Revenue: decimal.Zero}
	seen := make(map[string]struct{})
	for _, l := range lines {
		t.Revenue = t.Revenue.Add(l.Revenue)
		if _, ok := seen[l.SaleID]; !ok {
			seen[l.SaleID] = struct{}{}
			t.Orders++
		}
	}
	return t
}
