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

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

const salesOrderColumns = `id, customer_id, order_date, total, status, stock_applied, notes, created_at, updated_at`

// SalesOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

func scanSalesOrder(row pgx.Row) (*entity.SalesOrder, error) {
	var (
		o      entity.SalesOrder
		status string
	)
	if err := row.Scan(&o.ID, &o.CustomerID, &o.OrderDate, &o.Total, &status, &o.StockApplied, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Status = entity.SalesStatus(status)
	return &o, nil
}

// Create persiste la cabecera. Las líneas se insertan con CreateLine.
func (r *SalesOrderRepo) Create(ctx context.Context, o *entity.SalesOrder) error {
	_, err := r.q.Exec(ctx, `INSERT INTO sales_orders (`+salesOrderColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.CustomerID, o.OrderDate, o.Total, string(o.Status), o.StockApplied, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sales order: %w", err)
	}
	return nil
}

// CreateLine inserta una línea de venta.
func (r *SalesOrderRepo) CreateLine(ctx context.Context, l *entity.SalesOrderLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales_order_lines (id, order_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.OrderID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("create sales order line: %w", err)
	}
	return nil
}

// GetByID obtiene la orden con sus líneas. (nil, nil) si no existe.
func (r *SalesOrderRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	if !validID(id) {
		return nil, nil
	}
	o, err := scanSalesOrder(r.q.QueryRow(ctx, `SELECT `+salesOrderColumns+` FROM sales_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	if o.Lines, err = r.lines(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *SalesOrderRepo) lines(ctx context.Context, orderID string) ([]*entity.SalesOrderLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price, subtotal
		FROM sales_order_lines WHERE order_id = $1 ORDER BY position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list sales order lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.SalesOrderLine
	for rows.Next() {
		var l entity.SalesOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sales order line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// Update actualiza estado, stock aplicado y notas.
func (r *SalesOrderRepo) Update(ctx context.Context, o *entity.SalesOrder) error {
	_, err := r.q.Exec(ctx, `
		UPDATE sales_orders SET total = $2, status = $3, stock_applied = $4, notes = $5, updated_at = $6 WHERE id = $1`,
		o.ID, o.Total, string(o.Status), o.StockApplied, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales order: %w", err)
	}
	return nil
}

// Delete borra físicamente la orden. El flujo normal usa el estado ELIMINATED.
func (r *SalesOrderRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM sales_orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete sales order: %w", err)
	}
	return nil
}

func (r *SalesOrderRepo) list(ctx context.Context, where string, args ...any) ([]*entity.SalesOrder, error) {
	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM sales_orders WHERE %s ORDER BY order_date DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		salesOrderColumns, where, n-1, n)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	var list []*entity.SalesOrder
	for rows.Next() {
		o, err := scanSalesOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		if o.Lines, err = r.lines(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// ListByCustomer órdenes de un cliente, más recientes primero.
func (r *SalesOrderRepo) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.SalesOrder, error) {
	if !validID(customerID) {
		return nil, nil
	}
	return r.list(ctx, "customer_id = $1", customerID, limit, offset)
}

// ListByDateRange órdenes con order_date en [from, to].
func (r *SalesOrderRepo) ListByDateRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*entity.SalesOrder, error) {
	return r.list(ctx, "order_date >= $1 AND order_date <= $2", from, to, limit, offset)
}

// ListByStatus órdenes en un estado.
func (r *SalesOrderRepo) ListByStatus(ctx context.Context, status entity.SalesStatus, limit, offset int) ([]*entity.SalesOrder, error) {
	return r.list(ctx, "status = $1", string(status), limit, offset)
}
