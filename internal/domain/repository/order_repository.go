package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
)

// PurchaseOrderRepository puerto de órdenes de compra. GetByID carga las líneas;
// Delete borra la orden y sus líneas (cascada).
type PurchaseOrderRepository interface {
	Repository[entity.PurchaseOrder]
	CreateLine(ctx context.Context, line *entity.PurchaseOrderLine) error
	UpdateLine(ctx context.Context, line *entity.PurchaseOrderLine) error
	ListBySupplier(ctx context.Context, supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error)
	ListByDateRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*entity.PurchaseOrder, error)
	ListByStatus(ctx context.Context, status entity.PurchaseStatus, limit, offset int) ([]*entity.PurchaseOrder, error)
}

// ReceptionRepository puerto de recepciones. GetByID y ListByPurchaseOrder cargan los ítems.
type ReceptionRepository interface {
	Create(ctx context.Context, reception *entity.Reception) error
	CreateItem(ctx context.Context, item *entity.ReceptionItem) error
	UpdateItem(ctx context.Context, item *entity.ReceptionItem) error
	GetByID(ctx context.Context, id string) (*entity.Reception, error)
	ListByPurchaseOrder(ctx context.Context, purchaseOrderID string) ([]*entity.Reception, error)
	DeleteByPurchaseOrder(ctx context.Context, purchaseOrderID string) error
}

// SalesOrderRepository puerto de órdenes de venta. GetByID carga las líneas.
type SalesOrderRepository interface {
	Repository[entity.SalesOrder]
	CreateLine(ctx context.Context, line *entity.SalesOrderLine) error
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.SalesOrder, error)
	ListByDateRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*entity.SalesOrder, error)
	ListByStatus(ctx context.Context, status entity.SalesStatus, limit, offset int) ([]*entity.SalesOrder, error)
}

// SupplierProductRepository puerto del vínculo proveedor-producto (upsert por par).
type SupplierProductRepository interface {
	Upsert(ctx context.Context, link *entity.SupplierProduct) error
	Get(ctx context.Context, supplierID, productID string) (*entity.SupplierProduct, error)
	ListBySupplier(ctx context.Context, supplierID string) ([]*entity.SupplierProduct, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.SupplierProduct, error)
}
