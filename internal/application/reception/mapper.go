package reception

import (
	"github.com/jhoicas/ordenes-inventario/internal/application/dto"
	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
)

func toItemResponse(it *entity.ReceptionItem) dto.ReceptionItemResponse {
	return dto.ReceptionItemResponse{
		ID:         it.ID,
		LineID:     it.LineID,
		ProductID:  it.ProductID,
		Quantity:   it.Quantity,
		Lot:        it.Lot,
		Serial:     it.Serial,
		ExpiryDate: it.ExpiryDate,
		LocationID: it.LocationID,
		MovementID: it.MovementID,
	}
}

func toReceptionResponse(rc *entity.Reception, orderStatus entity.PurchaseStatus) *dto.ReceptionResponse {
	items := make([]dto.ReceptionItemResponse, 0, len(rc.Items))
	for _, it := range rc.Items {
		items = append(items, toItemResponse(it))
	}
	return &dto.ReceptionResponse{
		ID:                  rc.ID,
		PurchaseOrderID:     rc.PurchaseOrderID,
		DocumentType:        string(rc.DocumentType),
		DocumentNumber:      rc.DocumentNumber,
		Date:                rc.Date,
		StockMoved:          rc.StockMoved,
		PurchaseOrderStatus: string(orderStatus),
		Items:               items,
	}
}
