package memory

import (
	"context"
	"time"

	"github.com/jhoicas/ordenes-inventario/internal/domain"
	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
	"github.com/jhoicas/ordenes-inventario/pkg/textnorm"
	"github.com/shopspring/decimal"
)

type productRepo struct{ s *Store }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.s.lock()()
	d := r.s.data()
	if _, ok := d.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	key := textnorm.Fold(p.SKU)
	for _, existing := range d.products {
		if textnorm.Fold(existing.v.SKU) == key {
			return domain.ErrDuplicate
		}
	}
	d.products[p.ID] = row[entity.Product]{v: *p, seq: d.next()}
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.s.lock()()
	rw, ok := r.s.data().products[id]
	if !ok {
		return nil, nil
	}
	p := rw.v
	return &p, nil
}

func (r *productRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	defer r.s.lock()()
	key := textnorm.Fold(sku)
	for _, rw := range r.s.data().products {
		if textnorm.Fold(rw.v.SKU) == key {
			p := rw.v
			return &p, nil
		}
	}
	return nil, nil
}

// Update no modifica Quantity.
func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.s.lock()()
	d := r.s.data()
	rw, ok := d.products[p.ID]
	if !ok {
		return nil
	}
	key := textnorm.Fold(p.SKU)
	for id, other := range d.products {
		if id != p.ID && textnorm.Fold(other.v.SKU) == key {
			return domain.ErrDuplicate
		}
	}
	updated := *p
	updated.Quantity = rw.v.Quantity
	updated.CreatedAt = rw.v.CreatedAt
	d.products[p.ID] = row[entity.Product]{v: updated, seq: rw.seq}
	return nil
}

func (r *productRepo) UpdateQuantity(_ context.Context, productID string, quantity decimal.Decimal, at time.Time) error {
	defer r.s.lock()()
	d := r.s.data()
	rw, ok := d.products[productID]
	if !ok {
		return domain.NewError(domain.ErrProductNotFound, productID, "el producto no existe")
	}
	rw.v.Quantity = quantity
	rw.v.UpdatedAt = at
	d.products[productID] = rw
	return nil
}

func (r *productRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	defer r.s.lock()()
	return page(sortedRows(r.s.data().products, nil, nil), limit, offset), nil
}

func (r *productRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock()()
	delete(r.s.data().products, id)
	return nil
}

type supplierRepo struct{ s *Store }

func (r *supplierRepo) Create(_ context.Context, e *entity.Supplier) error {
	defer r.s.lock()()
	d := r.s.data()
	if _, ok := d.suppliers[e.ID]; ok {
		return domain.ErrDuplicate
	}
	d.suppliers[e.ID] = row[entity.Supplier]{v: *e, seq: d.next()}
	return nil
}

func (r *supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	defer r.s.lock()()
	rw, ok := r.s.data().suppliers[id]
	if !ok {
		return nil, nil
	}
	v := rw.v
	return &v, nil
}

func (r *supplierRepo) Update(_ context.Context, e *entity.Supplier) error {
	defer r.s.lock()()
	d := r.s.data()
	if rw, ok := d.suppliers[e.ID]; ok {
		d.suppliers[e.ID] = row[entity.Supplier]{v: *e, seq: rw.seq}
	}
	return nil
}

func (r *supplierRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock()()
	delete(r.s.data().suppliers, id)
	return nil
}

func (r *supplierRepo) List(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	defer r.s.lock()()
	return page(sortedRows(r.s.data().suppliers, nil, nil), limit, offset), nil
}

type customerRepo struct{ s *Store }

func (r *customerRepo) Create(_ context.Context, e *entity.Customer) error {
	defer r.s.lock()()
	d := r.s.data()
	if _, ok := d.customers[e.ID]; ok {
		return domain.ErrDuplicate
	}
	d.customers[e.ID] = row[entity.Customer]{v: *e, seq: d.next()}
	return nil
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	defer r.s.lock()()
	rw, ok := r.s.data().customers[id]
	if !ok {
		return nil, nil
	}
	v := rw.v
	return &v, nil
}

func (r *customerRepo) Update(_ context.Context, e *entity.Customer) error {
	defer r.s.lock()()
	d := r.s.data()
	if rw, ok := d.customers[e.ID]; ok {
		d.customers[e.ID] = row[entity.Customer]{v: *e, seq: rw.seq}
	}
	return nil
}

func (r *customerRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock()()
	delete(r.s.data().customers, id)
	return nil
}

func (r *customerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	defer r.s.lock()()
	return page(sortedRows(r.s.data().customers, nil, nil), limit, offset), nil
}

type locationRepo struct{ s *Store }

func (r *locationRepo) Create(_ context.Context, e *entity.Location) error {
	defer r.s.lock()()
	d := r.s.data()
	if _, ok := d.locations[e.ID]; ok {
		return domain.ErrDuplicate
	}
	d.locations[e.ID] = row[entity.Location]{v: *e, seq: d.next()}
	return nil
}

func (r *locationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	defer r.s.lock()()
	rw, ok := r.s.data().locations[id]
	if !ok {
		return nil, nil
	}
	v := rw.v
	return &v, nil
}

func (r *locationRepo) Update(_ context.Context, e *entity.Location) error {
	defer r.s.lock()()
	d := r.s.data()
	if rw, ok := d.locations[e.ID]; ok {
		d.locations[e.ID] = row[entity.Location]{v: *e, seq: rw.seq}
	}
	return nil
}

func (r *locationRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock()()
	delete(r.s.data().locations, id)
	return nil
}

func (r *locationRepo) List(_ context.Context, limit, offset int) ([]*entity.Location, error) {
	defer r.s.lock()()
	return page(sortedRows(r.s.data().locations, nil, nil), limit, offset), nil
}
