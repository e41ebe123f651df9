package memory

import (
	"context"
	"time"

	"github.com/jhoicas/ordenes-inventario/internal/domain"
	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
)

func newestFirst[T any](date func(T) time.Time) func(a, b T) bool {
	return func(a, b T) bool { return date(a).After(date(b)) }
}

type purchaseRepo struct{ s *Store }

func (r *purchaseRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	defer r.s.lock()()
	d := r.s.data()
	if _, ok := d.purchases[o.ID]; ok {
		return domain.ErrDuplicate
	}
	header := *o
	header.Lines = nil
	d.purchases[o.ID] = row[entity.PurchaseOrder]{v: header, seq: d.next()}
	return nil
}

func (r *purchaseRepo) CreateLine(_ context.Context, l *entity.PurchaseOrderLine) error {
	defer r.s.lock()()
	d := r.s.data()
	d.purchaseLines[l.ID] = row[entity.PurchaseOrderLine]{v: *l, seq: d.next()}
	return nil
}

func (r *purchaseRepo) UpdateLine(_ context.Context, l *entity.PurchaseOrderLine) error {
	defer r.s.lock()()
	d := r.s.data()
	if rw, ok := d.purchaseLines[l.ID]; ok {
		d.purchaseLines[l.ID] = row[entity.PurchaseOrderLine]{v: *l, seq: rw.seq}
	}
	return nil
}

func (r *purchaseRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	defer r.s.lock()()
	rw, ok := r.s.data().purchases[id]
	if !ok {
		return nil, nil
	}
	return r.withLines(rw.v), nil
}

func (r *purchaseRepo) withLines(o entity.PurchaseOrder) *entity.PurchaseOrder {
	o.Lines = page(sortedRows(r.s.data().purchaseLines, func(l entity.PurchaseOrderLine) bool {
		return l.OrderID == o.ID
	}, nil), 0, 0)
	return &o
}

// Update reescribe la cabecera; las líneas se actualizan con UpdateLine.
func (r *purchaseRepo) Update(_ context.Context, o *entity.PurchaseOrder) error {
	defer r.s.lock()()
	d := r.s.data()
	if rw, ok := d.purchases[o.ID]; ok {
		header := *o
		header.Lines = nil
		d.purchases[o.ID] = row[entity.PurchaseOrder]{v: header, seq: rw.seq}
	}
	return nil
}

// Delete borra la orden y sus líneas.
func (r *purchaseRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock()()
	d := r.s.data()
	delete(d.purchases, id)
	for lid, l := range d.purchaseLines {
		if l.v.OrderID == id {
			delete(d.purchaseLines, lid)
		}
	}
	return nil
}

func (r *purchaseRepo) list(keep func(entity.PurchaseOrder) bool, limit, offset int) []*entity.PurchaseOrder {
	rows := sortedRows(r.s.data().purchases, keep, newestFirst(func(o entity.PurchaseOrder) time.Time { return o.OrderDate }))
	headers := page(rows, limit, offset)
	out := make([]*entity.PurchaseOrder, 0, len(headers))
	for _, h := range headers {
		out = append(out, r.withLines(*h))
	}
	return out
}

func (r *purchaseRepo) ListBySupplier(_ context.Context, supplierID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	defer r.s.lock()()
	return r.list(func(o entity.PurchaseOrder) bool { return o.SupplierID == supplierID }, limit, offset), nil
}

func (r *purchaseRepo) ListByDateRange(_ context.Context, from, to time.Time, limit, offset int) ([]*entity.PurchaseOrder, error) {
	defer r.s.lock()()
	return r.list(func(o entity.PurchaseOrder) bool {
		return !o.OrderDate.Before(from) && !o.OrderDate.After(to)
	}, limit, offset), nil
}

func (r *purchaseRepo) ListByStatus(_ context.Context, status entity.PurchaseStatus, limit, offset int) ([]*entity.PurchaseOrder, error) {
	defer r.s.lock()()
	return r.list(func(o entity.PurchaseOrder) bool { return o.Status == status }, limit, offset), nil
}

type receptionRepo struct{ s *Store }

func (r *receptionRepo) Create(_ context.Context, rc *entity.Reception) error {
	defer r.s.lock()()
	d := r.s.data()
	header := *rc
	header.Items = nil
	d.receptions[rc.ID] = row[entity.Reception]{v: header, seq: d.next()}
	return nil
}

func (r *receptionRepo) CreateItem(_ context.Context, it *entity.ReceptionItem) error {
	defer r.s.lock()()
	d := r.s.data()
	d.receptionItems[it.ID] = row[entity.ReceptionItem]{v: *it, seq: d.next()}
	return nil
}

func (r *receptionRepo) UpdateItem(_ context.Context, it *entity.ReceptionItem) error {
	defer r.s.lock()()
	d := r.s.data()
	if rw, ok := d.receptionItems[it.ID]; ok {
		d.receptionItems[it.ID] = row[entity.ReceptionItem]{v: *it, seq: rw.seq}
	}
	return nil
}

func (r *receptionRepo) withItems(rc entity.Reception) *entity.Reception {
	rc.Items = page(sortedRows(r.s.data().receptionItems, func(it entity.ReceptionItem) bool {
		return it.ReceptionID == rc.ID
	}, nil), 0, 0)
	return &rc
}

func (r *receptionRepo) GetByID(_ context.Context, id string) (*entity.Reception, error) {
	defer r.s.lock()()
	rw, ok := r.s.data().receptions[id]
	if !ok {
		return nil, nil
	}
	return r.withItems(rw.v), nil
}

func (r *receptionRepo) ListByPurchaseOrder(_ context.Context, purchaseOrderID string) ([]*entity.Reception, error) {
	defer r.s.lock()()
	rows := sortedRows(r.s.data().receptions, func(rc entity.Reception) bool {
		return rc.PurchaseOrderID == purchaseOrderID
	}, nil)
	out := make([]*entity.Reception, 0, len(rows))
	for _, rw := range rows {
		out = append(out, r.withItems(rw.v))
	}
	return out, nil
}

func (r *receptionRepo) DeleteByPurchaseOrder(_ context.Context, purchaseOrderID string) error {
	defer r.s.lock()()
	d := r.s.data()
	for id, rw := range d.receptions {
		if rw.v.PurchaseOrderID != purchaseOrderID {
			continue
		}
		for iid, it := range d.receptionItems {
			if it.v.ReceptionID == id {
				delete(d.receptionItems, iid)
			}
		}
		delete(d.receptions, id)
	}
	return nil
}

type salesRepo struct{ s *Store }

func (r *salesRepo) Create(_ context.Context, o *entity.SalesOrder) error {
	defer r.s.lock()()
	d := r.s.data()
	if _, ok := d.sales[o.ID]; ok {
		return domain.ErrDuplicate
	}
	header := *o
	header.Lines = nil
	d.sales[o.ID] = row[entity.SalesOrder]{v: header, seq: d.next()}
	return nil
}

func (r *salesRepo) CreateLine(_ context.Context, l *entity.SalesOrderLine) error {
	defer r.s.lock()()
	d := r.s.data()
	d.salesLines[l.ID] = row[entity.SalesOrderLine]{v: *l, seq: d.next()}
	return nil
}

func (r *salesRepo) withLines(o entity.SalesOrder) *entity.SalesOrder {
	o.Lines = page(sortedRows(r.s.data().salesLines, func(l entity.SalesOrderLine) bool {
		return l.OrderID == o.ID
	}, nil), 0, 0)
	return &o
}

func (r *salesRepo) GetByID(_ context.Context, id string) (*entity.SalesOrder, error) {
	defer r.s.lock()()
	rw, ok := r.s.data().sales[id]
	if !ok {
		return nil, nil
	}
	return r.withLines(rw.v), nil
}

func (r *salesRepo) Update(_ context.Context, o *entity.SalesOrder) error {
	defer r.s.lock()()
	d := r.s.data()
	if rw, ok := d.sales[o.ID]; ok {
		header := *o
		header.Lines = nil
		d.sales[o.ID] = row[entity.SalesOrder]{v: header, seq: rw.seq}
	}
	return nil
}

func (r *salesRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock()()
	d := r.s.data()
	delete(d.sales, id)
	for lid, l := range d.salesLines {
		if l.v.OrderID == id {
			delete(d.salesLines, lid)
		}
	}
	return nil
}

func (r *salesRepo) list(keep func(entity.SalesOrder) bool, limit, offset int) []*entity.SalesOrder {
	rows := sortedRows(r.s.data().sales, keep, newestFirst(func(o entity.SalesOrder) time.Time { return o.OrderDate }))
	headers := page(rows, limit, offset)
	out := make([]*entity.SalesOrder, 0, len(headers))
	for _, h := range headers {
		out = append(out, r.withLines(*h))
	}
	return out
}

func (r *salesRepo) ListByCustomer(_ context.Context, customerID string, limit, offset int) ([]*entity.SalesOrder, error) {
	defer r.s.lock()()
	return r.list(func(o entity.SalesOrder) bool { return o.CustomerID == customerID }, limit, offset), nil
}

func (r *salesRepo) ListByDateRange(_ context.Context, from, to time.Time, limit, offset int) ([]*entity.SalesOrder, error) {
	defer r.s.lock()()
	return r.list(func(o entity.SalesOrder) bool {
		return !o.OrderDate.Before(from) && !o.OrderDate.After(to)
	}, limit, offset), nil
}

func (r *salesRepo) ListByStatus(_ context.Context, status entity.SalesStatus, limit, offset int) ([]*entity.SalesOrder, error) {
	defer r.s.lock()()
	return r.list(func(o entity.SalesOrder) bool { return o.Status == status }, limit, offset), nil
}

type supplierProductRepo struct{ s *Store }

func linkKey(supplierID, productID string) string { return supplierID + "|" + productID }

func (r *supplierProductRepo) Upsert(_ context.Context, l *entity.SupplierProduct) error {
	defer r.s.lock()()
	d := r.s.data()
	key := linkKey(l.SupplierID, l.ProductID)
	if rw, ok := d.links[key]; ok {
		d.links[key] = row[entity.SupplierProduct]{v: *l, seq: rw.seq}
		return nil
	}
	d.links[key] = row[entity.SupplierProduct]{v: *l, seq: d.next()}
	return nil
}

func (r *supplierProductRepo) Get(_ context.Context, supplierID, productID string) (*entity.SupplierProduct, error) {
	defer r.s.lock()()
	rw, ok := r.s.data().links[linkKey(supplierID, productID)]
	if !ok {
		return nil, nil
	}
	v := rw.v
	return &v, nil
}

func (r *supplierProductRepo) ListBySupplier(_ context.Context, supplierID string) ([]*entity.SupplierProduct, error) {
	defer r.s.lock()()
	return page(sortedRows(r.s.data().links, func(l entity.SupplierProduct) bool {
		return l.SupplierID == supplierID
	}, nil), 0, 0), nil
}

func (r *supplierProductRepo) ListByProduct(_ context.Context, productID string) ([]*entity.SupplierProduct, error) {
	defer r.s.lock()()
	return page(sortedRows(r.s.data().links, func(l entity.SupplierProduct) bool {
		return l.ProductID == productID
	}, nil), 0, 0), nil
}
