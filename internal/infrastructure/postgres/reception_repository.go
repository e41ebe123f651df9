package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
	"github.com/jhoicas/ordenes-inventario/internal/domain/repository"
)

var _ repository.ReceptionRepository = (*ReceptionRepo)(nil)

const (
	receptionColumns     = `id, purchase_order_id, document_type, document_number, date, stock_moved, created_at`
	receptionItemColumns = `id, reception_id, line_id, product_id, quantity, lot, serial, expiry_date, location_id, movement_id`
)

// ReceptionRepo implementación sobre PostgreSQL (usable con pool o tx).
type ReceptionRepo struct {
	q Querier
}

// NewReceptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceptionRepository(q Querier) *ReceptionRepo {
	return &ReceptionRepo{q: q}
}

func scanReception(row pgx.Row) (*entity.Reception, error) {
	var (
		rc      entity.Reception
		docType string
	)
	if err := row.Scan(&rc.ID, &rc.PurchaseOrderID, &docType, &rc.DocumentNumber, &rc.Date, &rc.StockMoved, &rc.CreatedAt); err != nil {
		return nil, err
	}
	rc.DocumentType = entity.DocumentType(docType)
	return &rc, nil
}

// Create persiste la cabecera de la recepción.
func (r *ReceptionRepo) Create(ctx context.Context, rc *entity.Reception) error {
	_, err := r.q.Exec(ctx, `INSERT INTO receptions (`+receptionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rc.ID, rc.PurchaseOrderID, string(rc.DocumentType), rc.DocumentNumber, rc.Date, rc.StockMoved, rc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create reception: %w", err)
	}
	return nil
}

// CreateItem inserta un ítem de recepción.
func (r *ReceptionRepo) CreateItem(ctx context.Context, it *entity.ReceptionItem) error {
	_, err := r.q.Exec(ctx, `INSERT INTO reception_items (`+receptionItemColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		it.ID, it.ReceptionID, it.LineID, it.ProductID, it.Quantity,
		nullIfEmpty(it.Lot), nullIfEmpty(it.Serial), it.ExpiryDate, it.LocationID, it.MovementID,
	)
	if err != nil {
		return fmt.Errorf("create reception item: %w", err)
	}
	return nil
}

// UpdateItem reescribe la trazabilidad del ítem; la cantidad no cambia.
func (r *ReceptionRepo) UpdateItem(ctx context.Context, it *entity.ReceptionItem) error {
	_, err := r.q.Exec(ctx, `
		UPDATE reception_items SET lot = $2, serial = $3, expiry_date = $4, location_id = $5 WHERE id = $1`,
		it.ID, nullIfEmpty(it.Lot), nullIfEmpty(it.Serial), it.ExpiryDate, it.LocationID,
	)
	if err != nil {
		return fmt.Errorf("update reception item: %w", err)
	}
	return nil
}

// GetByID obtiene la recepción con sus ítems. (nil, nil) si no existe.
func (r *ReceptionRepo) GetByID(ctx context.Context, id string) (*entity.Reception, error) {
	if !validID(id) {
		return nil, nil
	}
	rc, err := scanReception(r.q.QueryRow(ctx, `SELECT `+receptionColumns+` FROM receptions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reception: %w", err)
	}
	if rc.Items, err = r.items(ctx, rc.ID); err != nil {
		return nil, err
	}
	return rc, nil
}

func (r *ReceptionRepo) items(ctx context.Context, receptionID string) ([]*entity.ReceptionItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+receptionItemColumns+` FROM reception_items WHERE reception_id = $1 ORDER BY position`, receptionID)
	if err != nil {
		return nil, fmt.Errorf("list reception items: %w", err)
	}
	defer rows.Close()
	var items []*entity.ReceptionItem
	for rows.Next() {
		var (
			it          entity.ReceptionItem
			lot, serial *string
		)
		if err := rows.Scan(&it.ID, &it.ReceptionID, &it.LineID, &it.ProductID, &it.Quantity,
			&lot, &serial, &it.ExpiryDate, &it.LocationID, &it.MovementID); err != nil {
			return nil, fmt.Errorf("scan reception item: %w", err)
		}
		it.Lot, it.Serial = derefString(lot), derefString(serial)
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListByPurchaseOrder recepciones de una orden en orden de registro, con ítems.
func (r *ReceptionRepo) ListByPurchaseOrder(ctx context.Context, purchaseOrderID string) ([]*entity.Reception, error) {
	if !validID(purchaseOrderID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+receptionColumns+` FROM receptions WHERE purchase_order_id = $1 ORDER BY created_at`, purchaseOrderID)
	if err != nil {
		return nil, fmt.Errorf("list receptions: %w", err)
	}
	var list []*entity.Reception
	for rows.Next() {
		rc, err := scanReception(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan reception: %w", err)
		}
		list = append(list, rc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, rc := range list {
		if rc.Items, err = r.items(ctx, rc.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// DeleteByPurchaseOrder borra recepciones e ítems de la orden.
func (r *ReceptionRepo) DeleteByPurchaseOrder(ctx context.Context, purchaseOrderID string) error {
	if !validID(purchaseOrderID) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM receptions WHERE purchase_order_id = $1`, purchaseOrderID); err != nil {
		return fmt.Errorf("delete receptions: %w", err)
	}
	return nil
}
