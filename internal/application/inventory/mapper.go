package inventory

import (
	"github.com/jhoicas/ordenes-inventario/internal/application/dto"
	"github.com/jhoicas/ordenes-inventario/internal/domain/entity"
)

// ToMovementResultResponse convierte el resultado del libro al DTO.
func ToMovementResultResponse(r *MovementResult) *dto.MovementResultResponse {
	return &dto.MovementResultResponse{
		MovementID:  r.Movement.ID,
		ProductID:   r.Movement.ProductID,
		OldQuantity: r.OldQuantity,
		NewQuantity: r.NewQuantity,
	}
}

// ToMovementList convierte el historial al DTO.
func ToMovementList(list []*entity.StockMovement) []*dto.StockMovementResponse {
	out := make([]*dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, &dto.StockMovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			Kind:        string(m.Kind),
			Quantity:    m.Quantity,
			Reason:      m.Reason,
			Reference:   m.Reference,
			Date:        m.Date,
			Lot:         m.Lot,
			Serial:      m.Serial,
			ExpiryDate:  m.ExpiryDate,
			ReceptionID: m.ReceptionID,
			LocationID:  m.LocationID,
		})
	}
	return out
}
