package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Update no toca Quantity; solo UpdateQuantity (usado por el libro de stock) lo hace.
// at es la marca updated_at que decide el reloj del caller.
type ProductRepository interface {
	Repository[entity.Product]
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	UpdateQuantity(ctx context.Context, productID string, quantity decimal.Decimal, at time.Time) error
}

// SupplierRepository puerto de persistencia para proveedores.
type SupplierRepository interface {
	Repository[entity.Supplier]
	List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error)
}

// CustomerRepository puerto de persistencia para clientes.
type CustomerRepository interface {
	Repository[entity.Customer]
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
}

// LocationRepository puerto de persistencia para ubicaciones.
type LocationRepository interface {
	Repository[entity.Location]
	List(ctx context.Context, limit, offset int) ([]*entity.Location, error)
}
