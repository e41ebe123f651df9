package entity

import (
	"fmt"

	"github.com/jhoicas/ordenes-inventario/pkg/textnorm"
)

// PurchaseStatus estado de una orden de compra.
type PurchaseStatus string

const (
	PurchaseStatusPending         PurchaseStatus = "PENDING"
	PurchaseStatusIncomplete      PurchaseStatus = "INCOMPLETE"
	PurchaseStatusCompleted       PurchaseStatus = "COMPLETED"
	PurchaseStatusAwaitingPayment PurchaseStatus = "AWAITING_PAYMENT"
	PurchaseStatusCancelled       PurchaseStatus = "CANCELLED"
)

// purchaseTransitions tabla exhaustiva de transiciones. La eliminación física no es un estado.
var purchaseTransitions = map[PurchaseStatus][]PurchaseStatus{
	PurchaseStatusPending: {
		PurchaseStatusIncomplete, PurchaseStatusCompleted, PurchaseStatusAwaitingPayment, PurchaseStatusCancelled,
	},
	PurchaseStatusIncomplete: {
		PurchaseStatusIncomplete, PurchaseStatusCompleted, PurchaseStatusAwaitingPayment, PurchaseStatusCancelled,
	},
	PurchaseStatusAwaitingPayment: {PurchaseStatusCompleted, PurchaseStatusCancelled},
	PurchaseStatusCompleted:       {PurchaseStatusCancelled},
	PurchaseStatusCancelled:       nil,
}

var purchaseAliases = map[string]PurchaseStatus{
	"pending":          PurchaseStatusPending,
	"pendiente":        PurchaseStatusPending,
	"incomplete":       PurchaseStatusIncomplete,
	"incompleta":       PurchaseStatusIncomplete,
	"completed":        PurchaseStatusCompleted,
	"completada":       PurchaseStatusCompleted,
	"awaiting_payment": PurchaseStatusAwaitingPayment,
	"por_pagar":        PurchaseStatusAwaitingPayment,
	"cancelled":        PurchaseStatusCancelled,
	"cancelada":        PurchaseStatusCancelled,
}

// ParsePurchaseStatus acepta el nombre canónico (sin distinguir mayúsculas) o el literal heredado en español.
func ParsePurchaseStatus(s string) (PurchaseStatus, error) {
	if st, ok := purchaseAliases[textnorm.Key(s)]; ok {
		return st, nil
	}
	return "", fmt.Errorf("estado de compra desconocido: %q", s)
}

// IsValid indica si el estado pertenece al enumerado.
func (s PurchaseStatus) IsValid() bool {
	_, ok := purchaseTransitions[s]
	return ok
}

// CanTransitionTo consulta la tabla de transiciones.
func (s PurchaseStatus) CanTransitionTo(target PurchaseStatus) bool {
	for _, t := range purchaseTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsOpen indica si la orden admite recepciones.
func (s PurchaseStatus) IsOpen() bool {
	return s == PurchaseStatusPending || s == PurchaseStatusIncomplete
}

func (s PurchaseStatus) String() string { return string(s) }
