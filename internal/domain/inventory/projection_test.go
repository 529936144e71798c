package inventory_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func mov(productID, typ string, qty int64) *entity.StockMovement {
	return &entity.StockMovement{
		ProductID:   productID,
		WarehouseID: "wh-1",
		Type:        typ,
		Quantity:    decimal.NewFromInt(qty),
		CreatedAt:   time.Now(),
	}
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// ──────────────────────────────────────────────────────────────────────────────
// Quantity
// ──────────────────────────────────────────────────────────────────────────────

func TestQuantity_ReceiveThenAdjustDown(t *testing.T) {
	movs := []*entity.StockMovement{
		mov("p1", entity.MovementTypeIN, 10),
		mov("p1", entity.MovementTypeADJUST, -3),
	}
	got := inventory.Quantity(movs, inventory.Filter{ProductID: "p1"}, inventory.ProjectionOnHand)
	assert.True(t, got.Equal(dec("7")), "10 recibidos - 3 ajustados = 7, obtuvo %s", got)
}

func TestQuantity_AdjustUpFromZero(t *testing.T) {
	movs := []*entity.StockMovement{mov("p1", entity.MovementTypeADJUST, 10)}
	got := inventory.Quantity(movs, inventory.Filter{ProductID: "p1"}, inventory.ProjectionOnHand)
	assert.True(t, got.Equal(dec("10")))
}

func TestQuantity_OnHandIgnoresReservations(t *testing.T) {
	movs := []*entity.StockMovement{
		mov("p1", entity.MovementTypeIN, 20),
		mov("p1", entity.MovementTypeRESERVE, 5),
		mov("p1", entity.MovementTypeOUT, 2),
		mov("p1", entity.MovementTypeCOMMIT, 3),
		mov("p1", entity.MovementTypeRELEASE, 1),
	}
	onHand := inventory.Quantity(movs, inventory.Filter{}, inventory.ProjectionOnHand)
	available := inventory.Quantity(movs, inventory.Filter{}, inventory.ProjectionAvailable)

	assert.True(t, onHand.Equal(dec("15")), "on-hand: %s", onHand)
	assert.True(t, available.Equal(dec("11")), "available: %s", available)
}

func TestQuantity_FilterByWarehouseBatchSupplier(t *testing.T) {
	a := mov("p1", entity.MovementTypeIN, 4)
	a.BatchID, a.SupplierID = "b1", "s1"
	b := mov("p1", entity.MovementTypeIN, 6)
	b.WarehouseID, b.BatchID = "wh-2", "b2"

	movs := []*entity.StockMovement{a, b, mov("p2", entity.MovementTypeIN, 100)}

	assert.True(t, inventory.Quantity(movs, inventory.Filter{ProductID: "p1"}, inventory.ProjectionOnHand).Equal(dec("10")))
	assert.True(t, inventory.Quantity(movs, inventory.Filter{ProductID: "p1", WarehouseID: "wh-2"}, inventory.ProjectionOnHand).Equal(dec("6")))
	assert.True(t, inventory.Quantity(movs, inventory.Filter{BatchID: "b1"}, inventory.ProjectionOnHand).Equal(dec("4")))
	assert.True(t, inventory.Quantity(movs, inventory.Filter{SupplierID: "s1"}, inventory.ProjectionOnHand).Equal(dec("4")))
}

// TestQuantity_OrderIndependent el saldo no depende del orden de los movimientos.
func TestQuantity_OrderIndependent(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	types := []string{entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUST, entity.MovementTypeCOMMIT}

	for round := 0; round < 50; round++ {
		var movs []*entity.StockMovement
		expected := decimal.Zero
		for i := 0; i < 20; i++ {
			typ := types[r.Intn(len(types))]
			qty := int64(r.Intn(50) + 1)
			switch typ {
			case entity.MovementTypeIN:
				expected = expected.Add(decimal.NewFromInt(qty))
			case entity.MovementTypeADJUST:
				if r.Intn(2) == 0 {
					qty = -qty
				}
				expected = expected.Add(decimal.NewFromInt(qty))
			default:
				expected = expected.Sub(decimal.NewFromInt(qty))
			}
			movs = append(movs, mov("p1", typ, qty))
		}

		first := inventory.Quantity(movs, inventory.Filter{ProductID: "p1"}, inventory.ProjectionOnHand)
		r.Shuffle(len(movs), func(i, j int) { movs[i], movs[j] = movs[j], movs[i] })
		second := inventory.Quantity(movs, inventory.Filter{ProductID: "p1"}, inventory.ProjectionOnHand)

		require.True(t, first.Equal(expected), "ronda %d: esperado %s, obtuvo %s", round, expected, first)
		require.True(t, first.Equal(second), "ronda %d: el orden cambió el saldo", round)
	}
}

func TestParseProjection(t *testing.T) {
	p, err := inventory.ParseProjection("")
	require.NoError(t, err)
	assert.Equal(t, inventory.ProjectionOnHand, p)

	p, err = inventory.ParseProjection("available")
	require.NoError(t, err)
	assert.Equal(t, inventory.ProjectionAvailable, p)

	_, err = inventory.ParseProjection("fifo")
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock levels y alertas
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStock_NilThresholdIsTen(t *testing.T) {
	five := dec("5")
	products := []*entity.Product{
		{ID: "p1", Name: "Sin umbral"},
		{ID: "p2", Name: "Con umbral", MinStockLevel: &five},
		{ID: "p3", Name: "Sin movimientos"},
	}
	movs := []*entity.StockMovement{
		mov("p1", entity.MovementTypeIN, 10),
		mov("p2", entity.MovementTypeIN, 6),
	}

	levels := inventory.StockLevels(products, inventory.Totals(movs, inventory.ByProduct), inventory.ProjectionOnHand)
	require.Len(t, levels, 3)
	assert.True(t, levels[2].Quantity.IsZero(), "producto sin movimientos reporta 0")

	low := inventory.LowStock(levels)
	require.Len(t, low, 2)
	assert.Equal(t, "p1", low[0].Product.ID, "10 <= 10 entra en la alerta")
	assert.Equal(t, "10", low[0].Product.LowStockThreshold().StringFixed(0))
	assert.Equal(t, "p3", low[1].Product.ID)
}

func TestTotals_MatchesPerMovementProjection(t *testing.T) {
	movs := []*entity.StockMovement{
		mov("p1", entity.MovementTypeIN, 10),
		mov("p1", entity.MovementTypeIN, 5),
		mov("p1", entity.MovementTypeRESERVE, 4),
		mov("p1", entity.MovementTypeRELEASE, 1),
		mov("p1", entity.MovementTypeCOMMIT, 2),
		mov("p2", entity.MovementTypeADJUST, -3),
		mov("p2", entity.MovementTypeIN, 8),
	}
	totals := inventory.Totals(movs, inventory.ByProduct)
	assert.Len(t, totals, 6, "una fila por producto y tipo")

	for _, p := range []inventory.Projection{inventory.ProjectionOnHand, inventory.ProjectionAvailable} {
		byKey := inventory.QuantityByKey(totals, p)
		for _, id := range []string{"p1", "p2"} {
			want := inventory.Quantity(movs, inventory.Filter{ProductID: id}, p)
			assert.True(t, want.Equal(byKey[id]), "%s %s: %s != %s", p, id, want, byKey[id])
		}
	}
	assert.True(t, inventory.QuantityByKey(totals, inventory.ProjectionAvailable)["p1"].Equal(dec("10")))
}

func TestTotals_EmptyKeyIsSkipped(t *testing.T) {
	withBatch := mov("p1", entity.MovementTypeIN, 3)
	withBatch.BatchID = "b1"
	movs := []*entity.StockMovement{withBatch, mov("p1", entity.MovementTypeIN, 9)}

	totals := inventory.Totals(movs, inventory.ByBatch)
	require.Len(t, totals, 1)
	assert.Equal(t, "b1", totals[0].Key)
	assert.True(t, totals[0].Quantity.Equal(dec("3")))
}
