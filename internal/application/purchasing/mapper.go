package purchasing

import (
	"github.com/jhoicas/ordenes-inventario/internal/application/dto"
	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
)

func toPurchaseOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	lines := make([]dto.PurchaseOrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.PurchaseOrderLineResponse{
			ID:               l.ID,
			ProductID:        l.ProductID,
			Quantity:         l.Quantity,
			UnitPrice:        l.UnitPrice,
			Subtotal:         l.Subtotal,
			ReceivedQuantity: l.ReceivedQuantity,
			StockedQuantity:  l.StockedQuantity,
			Remaining:        l.Remaining(),
		})
	}
	return &dto.PurchaseOrderResponse{
		ID:             o.ID,
		SupplierID:     o.SupplierID,
		OrderDate:      o.OrderDate,
		Total:          o.Total,
		Status:         o.Status.String(),
		MoveStock:      o.MoveStock,
		DocumentNumber: o.DocumentNumber,
		DocumentDate:   o.DocumentDate,
		AccountingDate: o.AccountingDate,
		DueDate:        o.DueDate,
		Currency:       o.Currency,
		ExchangeRate:   o.ExchangeRate,
		Discount:       o.Discount,
		Notes:          o.Notes,
		Lines:          lines,
	}
}

func toPurchaseOrderList(list []*entity.PurchaseOrder) []*dto.PurchaseOrderResponse {
	out := make([]*dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toPurchaseOrderResponse(o))
	}
	return out
}

func toSupplierProductResponse(sp *entity.SupplierProduct) *dto.SupplierProductResponse {
	return &dto.SupplierProductResponse{
		SupplierID:       sp.SupplierID,
		ProductID:        sp.ProductID,
		Price:            sp.Price,
		LastPurchaseDate: sp.LastPurchaseDate,
	}
}

func toSupplierProductList(list []*entity.SupplierProduct) []*dto.SupplierProductResponse {
	out := make([]*dto.SupplierProductResponse, 0, len(list))
	for _, sp := range list {
		out = append(out, toSupplierProductResponse(sp))
	}
	return out
}
