package inventory

import (
	"time"

	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Etiquetas usadas cuando no se puede resolver el origen del stock.
const (
	UnknownSupplierLabel = "Unknown / Mixed"
	GeneralBatchLabel    = "General"
)

// SourceKey identifica el origen de un saldo: lote y proveedor (ambos opcionales).
type SourceKey struct {
	BatchID    string
	SupplierID string
}

// SourceBucket saldo neto de un origen.
type SourceBucket struct {
	Key      SourceKey
	Quantity decimal.Decimal
}

// BucketsBySource agrupa el stock físico por (lote, proveedor), en orden de primera aparición,
// y descarta los grupos con saldo <= 0.
func BucketsBySource(movements []*entity.StockMovement) []SourceBucket {
	var order []SourceKey
	sums := make(map[SourceKey]decimal.Decimal)
	for _, m := range movements {
		k := SourceKey{BatchID: m.BatchID, SupplierID: m.SupplierID}
		if _, seen := sums[k]; !seen {
			order = append(order, k)
		}
		sums[k] = sums[k].Add(Signed(m, ProjectionOnHand))
	}
	out := make([]SourceBucket, 0, len(order))
	for _, k := range order {
		if q := sums[k]; q.GreaterThan(decimal.Zero) {
			out = append(out, SourceBucket{Key: k, Quantity: q})
		}
	}
	return out
}

// BatchStock detalle por lote dentro de un proveedor.
type BatchStock struct {
	SKU        string
	Quantity   decimal.Decimal
	ExpiryDate *time.Time
}

// SupplierStock saldo agregado por nombre de proveedor.
type SupplierStock struct {
	Supplier string
	Quantity decimal.Decimal
	Batches  []BatchStock
}

// StockBySupplier re-agrega los grupos por nombre de proveedor. suppliers y batches son los
// datos ya resueltos; lo que falte se etiqueta como "Unknown / Mixed" / "General".
func StockBySupplier(buckets []SourceBucket, suppliers map[string]string, batches map[string]*entity.Batch) []SupplierStock {
	var out []SupplierStock
	index := make(map[string]int)
	for _, b := range buckets {
		name := UnknownSupplierLabel
		if n, ok := suppliers[b.Key.SupplierID]; ok && b.Key.SupplierID != "" {
			name = n
		}
		detail := BatchStock{SKU: GeneralBatchLabel, Quantity: b.Quantity}
		if bt, ok := batches[b.Key.BatchID]; ok && bt != nil {
			detail.SKU = bt.SKU
			detail.ExpiryDate = bt.ExpiryDate
		}
		if i, ok := index[name]; ok {
			out[i].Quantity = out[i].Quantity.Add(b.Quantity)
			out[i].Batches = append(out[i].Batches, detail)
			continue
		}
		index[name] = len(out)
		out = append(out, SupplierStock{Supplier: name, Quantity: b.Quantity, Batches: []BatchStock{detail}})
	}
	if out == nil {
		out = []SupplierStock{}
	}
	return out
}
