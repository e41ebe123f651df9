package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind distingue la dirección del movimiento; Quantity siempre es positiva.
type MovementKind string

const (
	MovementEntry MovementKind = "ENTRY" // entrada
	MovementExit  MovementKind = "EXIT"  // salida
)

// StockMovement es el registro inmutable de un cambio de stock.
// Solo se borra como limpieza al eliminar la orden de compra que lo causó.
type StockMovement struct {
	ID          string
	ProductID   string
	Kind        MovementKind
	Quantity    decimal.Decimal
	Reason      string
	Reference   string // orden que originó el movimiento (referencia débil, sin FK)
	Date        time.Time
	Lot         string
	Serial      string
	ExpiryDate  *time.Time
	ReceptionID *string
	LocationID  *string
	CreatedAt   time.Time
}

// Signed devuelve la cantidad con signo: positiva en entradas, negativa en salidas.
func (m *StockMovement) Signed() decimal.Decimal {
	if m.Kind == MovementExit {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
