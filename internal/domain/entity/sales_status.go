package entity

import (
	"fmt"

	"github.com/jhoicas/ordenes-inventario/pkg/textnorm"
)

// SalesStatus estado de una orden de venta.
type SalesStatus string

const (
	SalesStatusPending    SalesStatus = "PENDING"
	SalesStatusReserved   SalesStatus = "RESERVED"
	SalesStatusConfirmed  SalesStatus = "CONFIRMED"
	SalesStatusPaid       SalesStatus = "PAID"
	SalesStatusCancelled  SalesStatus = "CANCELLED"
	SalesStatusEliminated SalesStatus = "ELIMINATED" // borrado lógico, la fila se conserva
)

var salesTransitions = map[SalesStatus][]SalesStatus{
	SalesStatusPending: {
		SalesStatusReserved, SalesStatusConfirmed, SalesStatusPaid, SalesStatusCancelled, SalesStatusEliminated,
	},
	SalesStatusReserved: {
		SalesStatusConfirmed, SalesStatusPaid, SalesStatusCancelled, SalesStatusEliminated,
	},
	SalesStatusConfirmed:  {SalesStatusPaid, SalesStatusCancelled, SalesStatusEliminated},
	SalesStatusPaid:       {SalesStatusCancelled, SalesStatusEliminated},
	SalesStatusCancelled:  nil,
	SalesStatusEliminated: nil,
}

var salesAliases = map[string]SalesStatus{
	"pending":    SalesStatusPending,
	"pendiente":  SalesStatusPending,
	"reserved":   SalesStatusReserved,
	"reservada":  SalesStatusReserved,
	"confirmed":  SalesStatusConfirmed,
	"confirmada": SalesStatusConfirmed,
	"paid":       SalesStatusPaid,
	"pagada":     SalesStatusPaid,
	"cancelled":  SalesStatusCancelled,
	"cancelada":  SalesStatusCancelled,
	"eliminated": SalesStatusEliminated,
	"eliminada":  SalesStatusEliminated,
}

// ParseSalesStatus acepta el nombre canónico o el literal heredado en español.
func ParseSalesStatus(s string) (SalesStatus, error) {
	if st, ok := salesAliases[textnorm.Key(s)]; ok {
		return st, nil
	}
	return "", fmt.Errorf("estado de venta desconocido: %q", s)
}

func (s SalesStatus) IsValid() bool {
	_, ok := salesTransitions[s]
	return ok
}

func (s SalesStatus) CanTransitionTo(target SalesStatus) bool {
	for _, t := range salesTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// AffectsStock indica los estados en los que la venta ya descontó inventario.
func (s SalesStatus) AffectsStock() bool {
	return s == SalesStatusConfirmed || s == SalesStatusPaid
}

func (s SalesStatus) String() string { return string(s) }
