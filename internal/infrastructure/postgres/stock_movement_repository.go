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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, kind, quantity, reason, reference, date, lot, serial,
	expiry_date, reception_id, location_id, created_at`

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var (
		m           entity.StockMovement
		kind        string
		lot, serial *string
	)
	err := row.Scan(&m.ID, &m.ProductID, &kind, &m.Quantity, &m.Reason, &m.Reference, &m.Date,
		&lot, &serial, &m.ExpiryDate, &m.ReceptionID, &m.LocationID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Kind = entity.MovementKind(kind)
	m.Lot, m.Serial = derefString(lot), derefString(serial)
	return &m, nil
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, string(m.Kind), m.Quantity, m.Reason, m.Reference, m.Date,
		nullIfEmpty(m.Lot), nullIfEmpty(m.Serial), m.ExpiryDate, m.ReceptionID, m.LocationID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	if !validID(id) {
		return nil, nil
	}
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByProduct lista movimientos de un producto en un rango de fechas, más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if !validID(productID) {
		return nil, nil
	}
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(ctx, query, args...)
}

// ListByReception movimientos etiquetados con la recepción.
func (r *StockMovementRepo) ListByReception(ctx context.Context, receptionID string) ([]*entity.StockMovement, error) {
	if !validID(receptionID) {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE reception_id = $1 ORDER BY created_at`, receptionID)
}

// UpdateTrace reescribe solo la trazabilidad; cantidad y tipo quedan intactos.
func (r *StockMovementRepo) UpdateTrace(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		UPDATE stock_movements SET lot = $2, serial = $3, expiry_date = $4, location_id = $5 WHERE id = $1`,
		m.ID, nullIfEmpty(m.Lot), nullIfEmpty(m.Serial), m.ExpiryDate, m.LocationID,
	)
	if err != nil {
		return fmt.Errorf("update movement trace: %w", err)
	}
	return nil
}

// DetachReception quita la referencia a la recepción conservando los movimientos.
func (r *StockMovementRepo) DetachReception(ctx context.Context, receptionID string) error {
	if !validID(receptionID) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `UPDATE stock_movements SET reception_id = NULL WHERE reception_id = $1`, receptionID); err != nil {
		return fmt.Errorf("detach reception movements: %w", err)
	}
	return nil
}

// Delete borra un movimiento (solo como limpieza de una orden eliminada).
func (r *StockMovementRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}
