package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
	"github.com/jhoicas/ordenes-inventario/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const purchaseOrderColumns = `id, supplier_id, order_date, total, status, move_stock, document_number,
	document_date, accounting_date, due_date, currency, exchange_rate, discount, notes, created_at, updated_at`

// PurchaseOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var (
		o      entity.PurchaseOrder
		status string
	)
	err := row.Scan(&o.ID, &o.SupplierID, &o.OrderDate, &o.Total, &status, &o.MoveStock, &o.DocumentNumber,
		&o.DocumentDate, &o.AccountingDate, &o.DueDate, &o.Currency, &o.ExchangeRate, &o.Discount, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Status = entity.PurchaseStatus(status)
	return &o, nil
}

// Create persiste la cabecera. Las líneas se insertan con CreateLine.
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + purchaseOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.SupplierID, o.OrderDate, o.Total, string(o.Status), o.MoveStock, o.DocumentNumber,
		o.DocumentDate, o.AccountingDate, o.DueDate, o.Currency, o.ExchangeRate, o.Discount, o.Notes,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create purchase order: %w", err)
	}
	return nil
}

// CreateLine inserta una línea; position conserva el orden de inserción.
func (r *PurchaseOrderRepo) CreateLine(ctx context.Context, l *entity.PurchaseOrderLine) error {
	query := `
		INSERT INTO purchase_order_lines (id, order_id, product_id, quantity, unit_price, subtotal, received_quantity, stocked_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.OrderID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal, l.ReceivedQuantity, l.StockedQuantity,
	)
	if err != nil {
		return fmt.Errorf("create purchase order line: %w", err)
	}
	return nil
}

// UpdateLine actualiza las cantidades recibida y almacenada de la línea.
func (r *PurchaseOrderRepo) UpdateLine(ctx context.Context, l *entity.PurchaseOrderLine) error {
	_, err := r.q.Exec(ctx, `
		UPDATE purchase_order_lines SET received_quantity = $2, stocked_quantity = $3 WHERE id = $1`,
		l.ID, l.ReceivedQuantity, l.StockedQuantity,
	)
	if err != nil {
		return fmt.Errorf("update purchase order line: %w", err)
	}
	return nil
}

// GetByID obtiene la orden con sus líneas. (nil, nil) si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	if !validID(id) {
		return nil, nil
	}
	o, err := scanPurchaseOrder(r.q.QueryRow(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if o.Lines, err = r.lines(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *PurchaseOrderRepo) lines(ctx context.Context, orderID string) ([]*entity.PurchaseOrderLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price, subtotal, received_quantity, stocked_quantity
		FROM purchase_order_lines WHERE order_id = $1 ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal,
			&l.ReceivedQuantity, &l.StockedQuantity); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// Update actualiza la cabecera (estado, total y datos de documento).
func (r *PurchaseOrderRepo) Update(ctx context.Context, o *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET total = $2, status = $3, move_stock = $4, document_number = $5,
			document_date = $6, accounting_date = $7, due_date = $8, currency = $9, exchange_rate = $10,
			discount = $11, notes = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Total, string(o.Status), o.MoveStock, o.DocumentNumber,
		o.DocumentDate, o.AccountingDate, o.DueDate, o.Currency, o.ExchangeRate,
		o.Discount, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}

// Delete borra la orden; líneas y recepciones caen en cascada.
func (r *PurchaseOrderRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) list(ctx context.Context, where string, args ...any) ([]*entity.PurchaseOrder, error) {
	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM purchase_orders WHERE %s ORDER BY order_date DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		purchaseOrderColumns, where, n-1, n)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanPurchaseOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// las líneas se cargan con el cursor ya cerrado: una tx de pgx no admite dos consultas abiertas.
	for _, o := range list {
		if o.Lines, err = r.lines(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// ListBySupplier órdenes de un proveedor, más recientes primero.
func (r *PurchaseOrderRepo) ListBySupplier(ctx context.Context, supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	if !validID(supplierID) {
		return nil, nil
	}
	return r.list(ctx, "supplier_id = $1", supplierID, limit, offset)
}

// ListByDateRange órdenes con order_date en [from, to].
func (r *PurchaseOrderRepo) ListByDateRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.list(ctx, "order_date >= $1 AND order_date <= $2", from, to, limit, offset)
}

// ListByStatus órdenes en un estado.
func (r *PurchaseOrderRepo) ListByStatus(ctx context.Context, status entity.PurchaseStatus, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.list(ctx, "status = $1", string(status), limit, offset)
}
