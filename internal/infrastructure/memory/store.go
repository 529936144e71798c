// Package memory implementa los puertos de repositorio en memoria.
// Las transacciones toman un lock del store completo y restauran una copia si fn falla,
// con la misma semántica todo-o-nada que el adaptador PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jofra02/proyecto-ventas/internal/application/ports"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	products   map[string]entity.Product
	productIDs []string
	barcodes   map[string]string // código -> product_id
	warehouses map[string]entity.Warehouse
	whIDs      []string
	suppliers  map[string]entity.Supplier
	supIDs     []string
	customers  map[string]entity.Customer
	custIDs    []string
	batches    map[string]entity.Batch
	movements  []entity.StockMovement
	sales      map[string]entity.Sale
	saleIDs    []string
	documents  map[string]entity.Document
	docIDs     []string
	tasks      map[string]entity.PickTask
	scans      []entity.PickScanEvent
	ledger     []entity.LedgerEntry
	payments   []entity.Payment
}

func newState() *state {
	return &state{
		products:   make(map[string]entity.Product),
		barcodes:   make(map[string]string),
		warehouses: make(map[string]entity.Warehouse),
		suppliers:  make(map[string]entity.Supplier),
		customers:  make(map[string]entity.Customer),
		batches:    make(map[string]entity.Batch),
		sales:      make(map[string]entity.Sale),
		documents:  make(map[string]entity.Document),
		tasks:      make(map[string]entity.PickTask),
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copySlice[T any](s []T) []T {
	return append([]T(nil), s...)
}

// clone copia superficial de cada colección. Los valores guardados nunca se mutan en su lugar
// (las ventas se reemplazan completas), así que compartir punteros internos es seguro.
func (s *state) clone() *state {
	return &state{
		products:   copyMap(s.products),
		productIDs: copySlice(s.productIDs),
		barcodes:   copyMap(s.barcodes),
		warehouses: copyMap(s.warehouses),
		whIDs:      copySlice(s.whIDs),
		suppliers:  copyMap(s.suppliers),
		supIDs:     copySlice(s.supIDs),
		customers:  copyMap(s.customers),
		custIDs:    copySlice(s.custIDs),
		batches:    copyMap(s.batches),
		movements:  copySlice(s.movements),
		sales:      copyMap(s.sales),
		saleIDs:    copySlice(s.saleIDs),
		documents:  copyMap(s.documents),
		docIDs:     copySlice(s.docIDs),
		tasks:      copyMap(s.tasks),
		scans:      copySlice(s.scans),
		ledger:     copySlice(s.ledger),
		payments:   copySlice(s.payments),
	}
}

// Store almacenamiento en memoria con soporte de transacciones.
type Store struct {
	mu sync.Mutex
	st *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{st: newState()}
}

// with ejecuta fn sobre el estado. Fuera de una transacción toma el lock; dentro ya lo tiene Run.
func (s *Store) with(inTx bool, fn func(st *state) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.st)
}

// Repos repositorios fuera de transacción (cada llamada es atómica por sí sola).
func (s *Store) Repos() repository.Repos {
	return s.repos(false)
}

// Analytics repositorio de lectura para analítica.
func (s *Store) Analytics() repository.AnalyticsRepository {
	return &analyticsRepo{s: s}
}

func (s *Store) repos(inTx bool) repository.Repos {
	b := base{s: s, inTx: inTx}
	return repository.Repos{
		Movements:  &movementRepo{b},
		Batches:    &batchRepo{b},
		Products:   &productRepo{b},
		Warehouses: &warehouseRepo{b},
		Suppliers:  &supplierRepo{b},
		Customers:  &customerRepo{b},
		Sales:      &saleRepo{b},
		Documents:  &documentRepo{b},
		PickTasks:  &pickTaskRepo{b},
		Ledger:     &ledgerRepo{b},
		Payments:   &paymentRepo{b},
	}
}

// Run ejecuta fn con el store bloqueado. Si fn devuelve error (o hace panic) el estado vuelve
// a la copia tomada al inicio.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	defer func() {
		if p := recover(); p != nil {
			s.st = snapshot
			panic(p)
		}
		if err != nil {
			s.st = snapshot
		}
	}()
	return fn(s.repos(true))
}

type base struct {
	s    *Store
	inTx bool
}

func (b base) with(fn func(st *state) error) error {
	return b.s.with(b.inTx, fn)
}
