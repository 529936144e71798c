// Package receivable reglas puras de la cuenta corriente de clientes.
package receivable

import (
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Debit monto positivo de un cargo (factura), sin importar el signo recibido.
func Debit(amount decimal.Decimal) decimal.Decimal { return amount.Abs() }

// Credit monto negativo de un abono (pago).
func Credit(amount decimal.Decimal) decimal.Decimal { return amount.Abs().Neg() }

// Balance suma de los asientos. Positivo = el cliente debe.
func Balance(entries []*entity.LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}
