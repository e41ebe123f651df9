package inventory

import "github.com/jhoicas/ordenes-inventario/internal/domain/entity"

// StatusAfterReception deriva el estado de la orden a partir del estado de sus líneas (no del input).
//   - todas completas: factura → COMPLETED, guía → AWAITING_PAYMENT,
//     otro documento → AWAITING_PAYMENT si se movió stock, si no COMPLETED.
//   - alguna con cantidad recibida: INCOMPLETE.
//   - ninguna: se mantiene el estado actual.
func StatusAfterReception(order *entity.PurchaseOrder, doc entity.DocumentType, stockMoved bool) entity.PurchaseStatus {
	if order.FullyReceived() {
		switch doc {
		case entity.DocumentInvoice:
			return entity.PurchaseStatusCompleted
		case entity.DocumentDeliveryNote:
			return entity.PurchaseStatusAwaitingPayment
		default:
			if stockMoved {
				return entity.PurchaseStatusAwaitingPayment
			}
			return entity.PurchaseStatusCompleted
		}
	}
	if order.AnyReceived() {
		return entity.PurchaseStatusIncomplete
	}
	return order.Status
}
