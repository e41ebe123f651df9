// Package memory implementa el Store relacional en memoria con transacciones por snapshot.
// Run serializa las transacciones con un mutex y restaura el snapshot si fn falla.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/ordenes-inventario/internal/application/ports"
	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
	"github.com/jhoicas/ordenes-inventario/internal/domain/repository"
)

var _ ports.TxRunner = (*DB)(nil)
var _ repository.Store = (*Store)(nil)

type row[T any] struct {
	v   T
	seq int64
}

type data struct {
	seq int64

	products       map[string]row[entity.Product]
	suppliers      map[string]row[entity.Supplier]
	customers      map[string]row[entity.Customer]
	locations      map[string]row[entity.Location]
	movements      map[string]row[entity.StockMovement]
	purchases      map[string]row[entity.PurchaseOrder]
	purchaseLines  map[string]row[entity.PurchaseOrderLine]
	receptions     map[string]row[entity.Reception]
	receptionItems map[string]row[entity.ReceptionItem]
	sales          map[string]row[entity.SalesOrder]
	salesLines     map[string]row[entity.SalesOrderLine]
	links          map[string]row[entity.SupplierProduct]
}

func newData() *data {
	return &data{
		products:       map[string]row[entity.Product]{},
		suppliers:      map[string]row[entity.Supplier]{},
		customers:      map[string]row[entity.Customer]{},
		locations:      map[string]row[entity.Location]{},
		movements:      map[string]row[entity.StockMovement]{},
		purchases:      map[string]row[entity.PurchaseOrder]{},
		purchaseLines:  map[string]row[entity.PurchaseOrderLine]{},
		receptions:     map[string]row[entity.Reception]{},
		receptionItems: map[string]row[entity.ReceptionItem]{},
		sales:          map[string]row[entity.SalesOrder]{},
		salesLines:     map[string]row[entity.SalesOrderLine]{},
		links:          map[string]row[entity.SupplierProduct]{},
	}
}

func (d *data) next() int64 {
	d.seq++
	return d.seq
}

// clone copia superficial por fila: los punteros internos (fechas, referencias) nunca se mutan en sitio.
func (d *data) clone() *data {
	return &data{
		seq:            d.seq,
		products:       cloneMap(d.products),
		suppliers:      cloneMap(d.suppliers),
		customers:      cloneMap(d.customers),
		locations:      cloneMap(d.locations),
		movements:      cloneMap(d.movements),
		purchases:      cloneMap(d.purchases),
		purchaseLines:  cloneMap(d.purchaseLines),
		receptions:     cloneMap(d.receptions),
		receptionItems: cloneMap(d.receptionItems),
		sales:          cloneMap(d.sales),
		salesLines:     cloneMap(d.salesLines),
		links:          cloneMap(d.links),
	}
}

func cloneMap[T any](m map[string]row[T]) map[string]row[T] {
	out := make(map[string]row[T], len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// DB base de datos en memoria.
type DB struct {
	mu sync.Mutex
	d  *data
}

// New crea una base vacía.
func New() *DB {
	return &DB{d: newData()}
}

// Store devuelve un Store fuera de transacción: cada operación toma el lock por separado.
func (db *DB) Store() *Store {
	return &Store{db: db}
}

// Run ejecuta fn con un Store transaccional. Error en fn restaura el estado previo.
func (db *DB) Run(ctx context.Context, fn func(store repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	snapshot := db.d.clone()
	if err := fn(&Store{db: db, tx: true}); err != nil {
		db.d = snapshot
		return err
	}
	return nil
}

// Store implementa repository.Store sobre DB.
type Store struct {
	db *DB
	tx bool
}

// lock toma el mutex salvo dentro de Run, donde ya está tomado.
func (s *Store) lock() func() {
	if s.tx {
		return func() {}
	}
	s.db.mu.Lock()
	return s.db.mu.Unlock
}

func (s *Store) data() *data { return s.db.d }

func (s *Store) Products() repository.ProductRepository             { return &productRepo{s} }
func (s *Store) Suppliers() repository.SupplierRepository           { return &supplierRepo{s} }
func (s *Store) Customers() repository.CustomerRepository           { return &customerRepo{s} }
func (s *Store) Locations() repository.LocationRepository           { return &locationRepo{s} }
func (s *Store) Movements() repository.StockMovementRepository      { return &movementRepo{s} }
func (s *Store) PurchaseOrders() repository.PurchaseOrderRepository { return &purchaseRepo{s} }
func (s *Store) Receptions() repository.ReceptionRepository         { return &receptionRepo{s} }
func (s *Store) SalesOrders() repository.SalesOrderRepository       { return &salesRepo{s} }
func (s *Store) SupplierProducts() repository.SupplierProductRepository {
	return &supplierProductRepo{s}
}

// sortedRows devuelve las filas que cumplen keep, ordenadas por less (y por seq como desempate).
func sortedRows[T any](m map[string]row[T], keep func(T) bool, less func(a, b T) bool) []row[T] {
	out := make([]row[T], 0, len(m))
	for _, r := range m {
		if keep == nil || keep(r.v) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if less != nil {
			if less(out[i].v, out[j].v) {
				return true
			}
			if less(out[j].v, out[i].v) {
				return false
			}
		}
		return out[i].seq < out[j].seq
	})
	return out
}

func page[T any](rows []row[T], limit, offset int) []*T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []*T{}
	}
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]*T, 0, end-offset)
	for _, r := range rows[offset:end] {
		v := r.v
		out = append(out, &v)
	}
	return out
}
