package inventory

import (
	"sort"
	"time"

	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ExpiringBatch lote próximo a vencer (o vencido) con saldo remanente.
type ExpiringBatch struct {
	Batch           *entity.Batch
	Quantity        decimal.Decimal
	DaysUntilExpiry int
	Expired         bool
}

// ExpiryCutoff fecha límite para considerar un lote "por vencer".
func ExpiryCutoff(now time.Time, days int) time.Time {
	return now.Add(time.Duration(days) * 24 * time.Hour)
}

// DaysUntilExpiry días completos restantes; 0 si ya venció.
func DaysUntilExpiry(expiry, now time.Time) int {
	if expiry.Before(now) {
		return 0
	}
	return int(expiry.Sub(now) / (24 * time.Hour))
}

// ExpiringBatches selecciona los lotes con vencimiento <= now+days y saldo neto > 0.
// El saldo sale de los totales por lote (on-hand). Resultado ordenado por vencimiento ascendente.
func ExpiringBatches(batches []*entity.Batch, totals []entity.MovementTotal, now time.Time, days int) []ExpiringBatch {
	cutoff := ExpiryCutoff(now, days)
	byBatch := QuantityByKey(totals, ProjectionOnHand)
	out := make([]ExpiringBatch, 0)
	for _, b := range batches {
		if b.ExpiryDate == nil || b.ExpiryDate.After(cutoff) {
			continue
		}
		qty := byBatch[b.ID]
		if !qty.GreaterThan(decimal.Zero) {
			continue
		}
		out = append(out, ExpiringBatch{
			Batch:           b,
			Quantity:        qty,
			DaysUntilExpiry: DaysUntilExpiry(*b.ExpiryDate, now),
			Expired:         b.ExpiryDate.Before(now),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Batch.ExpiryDate.Before(*out[j].Batch.ExpiryDate)
	})
	return out
}
