package memory

import (
	"context"
	"time"

	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
)

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.s.lock()()
	d := r.s.data()
	d.movements[m.ID] = row[entity.StockMovement]{v: *m, seq: d.next()}
	return nil
}

func (r *movementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	defer r.s.lock()()
	rw, ok := r.s.data().movements[id]
	if !ok {
		return nil, nil
	}
	v := rw.v
	return &v, nil
}

// ListByProduct más recientes primero.
func (r *movementRepo) ListByProduct(_ context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.s.lock()()
	rows := sortedRows(r.s.data().movements, func(m entity.StockMovement) bool {
		if m.ProductID != productID {
			return false
		}
		if from != nil && m.Date.Before(*from) {
			return false
		}
		if to != nil && m.Date.After(*to) {
			return false
		}
		return true
	}, func(a, b entity.StockMovement) bool { return a.Date.Before(b.Date) })
	reverse(rows)
	return page(rows, limit, offset), nil
}

func (r *movementRepo) ListByReception(_ context.Context, receptionID string) ([]*entity.StockMovement, error) {
	defer r.s.lock()()
	rows := sortedRows(r.s.data().movements, func(m entity.StockMovement) bool {
		return m.ReceptionID != nil && *m.ReceptionID == receptionID
	}, nil)
	return page(rows, 0, 0), nil
}

// UpdateTrace reescribe solo la metadata de trazabilidad.
func (r *movementRepo) UpdateTrace(_ context.Context, m *entity.StockMovement) error {
	defer r.s.lock()()
	d := r.s.data()
	rw, ok := d.movements[m.ID]
	if !ok {
		return nil
	}
	rw.v.Lot = m.Lot
	rw.v.Serial = m.Serial
	rw.v.ExpiryDate = m.ExpiryDate
	rw.v.LocationID = m.LocationID
	d.movements[m.ID] = rw
	return nil
}

func (r *movementRepo) DetachReception(_ context.Context, receptionID string) error {
	defer r.s.lock()()
	d := r.s.data()
	for id, rw := range d.movements {
		if rw.v.ReceptionID != nil && *rw.v.ReceptionID == receptionID {
			rw.v.ReceptionID = nil
			d.movements[id] = rw
		}
	}
	return nil
}

func (r *movementRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock()()
	delete(r.s.data().movements, id)
	return nil
}

func reverse[T any](rows []row[T]) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
