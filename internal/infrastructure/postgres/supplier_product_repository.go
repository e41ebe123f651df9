package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
	"github.com/jhoicas/ordenes-inventario/internal/domain/repository"
)

var _ repository.SupplierProductRepository = (*SupplierProductRepo)(nil)

// SupplierProductRepo vínculo proveedor-producto sobre PostgreSQL.
type SupplierProductRepo struct {
	q Querier
}

// NewSupplierProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierProductRepository(q Querier) *SupplierProductRepo {
	return &SupplierProductRepo{q: q}
}

// Upsert inserta o actualiza el par (proveedor, producto).
func (r *SupplierProductRepo) Upsert(ctx context.Context, l *entity.SupplierProduct) error {
	query := `
		INSERT INTO supplier_products (supplier_id, product_id, price, last_purchase_date, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (supplier_id, product_id)
		DO UPDATE SET price = EXCLUDED.price, last_purchase_date = EXCLUDED.last_purchase_date, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, l.SupplierID, l.ProductID, l.Price, l.LastPurchaseDate, l.UpdatedAt); err != nil {
		return fmt.Errorf("upsert supplier product: %w", err)
	}
	return nil
}

// Get obtiene el vínculo del par. (nil, nil) si no existe.
func (r *SupplierProductRepo) Get(ctx context.Context, supplierID, productID string) (*entity.SupplierProduct, error) {
	if !validID(supplierID) || !validID(productID) {
		return nil, nil
	}
	var l entity.SupplierProduct
	err := r.q.QueryRow(ctx, `
		SELECT supplier_id, product_id, price, last_purchase_date, updated_at
		FROM supplier_products WHERE supplier_id = $1 AND product_id = $2`, supplierID, productID).Scan(
		&l.SupplierID, &l.ProductID, &l.Price, &l.LastPurchaseDate, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier product: %w", err)
	}
	return &l, nil
}

func (r *SupplierProductRepo) list(ctx context.Context, where string, arg string) ([]*entity.SupplierProduct, error) {
	rows, err := r.q.Query(ctx, `
		SELECT supplier_id, product_id, price, last_purchase_date, updated_at
		FROM supplier_products WHERE `+where+` = $1 ORDER BY updated_at DESC`, arg)
	if err != nil {
		return nil, fmt.Errorf("list supplier products: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplierProduct
	for rows.Next() {
		var l entity.SupplierProduct
		if err := rows.Scan(&l.SupplierID, &l.ProductID, &l.Price, &l.LastPurchaseDate, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier product: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListBySupplier productos vinculados a un proveedor.
func (r *SupplierProductRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.SupplierProduct, error) {
	if !validID(supplierID) {
		return nil, nil
	}
	return r.list(ctx, "supplier_id", supplierID)
}

// ListByProduct proveedores vinculados a un producto.
func (r *SupplierProductRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.SupplierProduct, error) {
	if !validID(productID) {
		return nil, nil
	}
	return r.list(ctx, "product_id", productID)
}
