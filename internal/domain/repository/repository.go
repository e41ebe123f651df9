package repository

import "context"

// Repository puerto CRUD genérico por entidad. GetByID devuelve (nil, nil) si no existe.
type Repository[T any] interface {
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, e *T) error
	Update(ctx context.Context, e *T) error
	Delete(ctx context.Context, id string) error
}

// Store agrupa los repositorios atados a una misma conexión o transacción.
type Store interface {
	Products() ProductRepository
	Suppliers() SupplierRepository
	Customers() CustomerRepository
	Locations() LocationRepository
	Movements() StockMovementRepository
	PurchaseOrders() PurchaseOrderRepository
	Receptions() ReceptionRepository
	SalesOrders() SalesOrderRepository
	SupplierProducts() SupplierProductRepository
}
