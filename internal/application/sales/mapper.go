package sales

import (
	"github.com/jhoicas/ordenes-inventario/internal/application/dto"
	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
)

func toSalesOrderResponse(o *entity.SalesOrder) *dto.SalesOrderResponse {
	lines := make([]dto.SalesOrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.SalesOrderLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return &dto.SalesOrderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		OrderDate:    o.OrderDate,
		Total:        o.Total,
		Status:       o.Status.String(),
		StockApplied: o.StockApplied,
		Notes:        o.Notes,
		Lines:        lines,
	}
}

func toSalesOrderList(list []*entity.SalesOrder) []*dto.SalesOrderResponse {
	out := make([]*dto.SalesOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toSalesOrderResponse(o))
	}
	return out
}
