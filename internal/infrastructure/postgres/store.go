package postgres

import "github.com/jhoicas/ordenes-inventario/internal/domain/repository"

var _ repository.Store = (*Store)(nil)

// Store agrupa los repositorios sobre un mismo Querier (pool o tx).
type Store struct {
	products         *ProductRepo
	suppliers        *SupplierRepo
	customers        *CustomerRepo
	locations        *LocationRepo
	movements        *StockMovementRepo
	purchaseOrders   *PurchaseOrderRepo
	receptions       *ReceptionRepo
	salesOrders      *SalesOrderRepo
	supplierProducts *SupplierProductRepo
}

// NewStore construye todos los repositorios atados a q.
func NewStore(q Querier) *Store {
	return &Store{
		products:         NewProductRepository(q),
		suppliers:        NewSupplierRepository(q),
		customers:        NewCustomerRepository(q),
		locations:        NewLocationRepository(q),
		movements:        NewStockMovementRepository(q),
		purchaseOrders:   NewPurchaseOrderRepository(q),
		receptions:       NewReceptionRepository(q),
		salesOrders:      NewSalesOrderRepository(q),
		supplierProducts: NewSupplierProductRepository(q),
	}
}

func (s *Store) Products() repository.ProductRepository                 { return s.products }
func (s *Store) Suppliers() repository.SupplierRepository               { return s.suppliers }
func (s *Store) Customers() repository.CustomerRepository               { return s.customers }
func (s *Store) Locations() repository.LocationRepository               { return s.locations }
func (s *Store) Movements() repository.StockMovementRepository          { return s.movements }
func (s *Store) PurchaseOrders() repository.PurchaseOrderRepository     { return s.purchaseOrders }
func (s *Store) Receptions() repository.ReceptionRepository             { return s.receptions }
func (s *Store) SalesOrders() repository.SalesOrderRepository           { return s.salesOrders }
func (s *Store) SupplierProducts() repository.SupplierProductRepository { return s.supplierProducts }
