package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder cabecera de una orden de compra. Es dueña exclusiva de sus líneas.
type PurchaseOrder struct {
	ID         string
	SupplierID string
	OrderDate  time.Time
	Total      decimal.Decimal // suma de subtotales de línea
	Status     PurchaseStatus
	// MoveStock política de movimiento de stock: las recepciones solo mueven inventario si es true.
	MoveStock bool

	DocumentNumber string
	DocumentDate   *time.Time
	AccountingDate *time.Time
	DueDate        *time.Time
	Currency       string
	ExchangeRate   decimal.Decimal
	Discount       decimal.Decimal
	Notes          string

	CreatedAt time.Time
	UpdatedAt time.Time

	Lines []*PurchaseOrderLine
}

// PurchaseOrderLine línea de la orden. 0 <= ReceivedQuantity <= Quantity.
// StockedQuantity es lo que realmente entró a inventario por esta línea (base de las reversiones).
type PurchaseOrderLine struct {
	ID               string
	OrderID          string
	ProductID        string
	Quantity         decimal.Decimal
	UnitPrice        decimal.Decimal
	Subtotal         decimal.Decimal
	ReceivedQuantity decimal.Decimal
	StockedQuantity  decimal.Decimal
}

// Remaining cantidad pendiente de recibir.
func (l *PurchaseOrderLine) Remaining() decimal.Decimal {
	return l.Quantity.Sub(l.ReceivedQuantity)
}

// FullyReceived indica si la línea se recibió por completo.
func (l *PurchaseOrderLine) FullyReceived() bool {
	return l.ReceivedQuantity.GreaterThanOrEqual(l.Quantity)
}

// FullyReceived indica si todas las líneas se recibieron por completo.
func (o *PurchaseOrder) FullyReceived() bool {
	for _, l := range o.Lines {
		if !l.FullyReceived() {
			return false
		}
	}
	return len(o.Lines) > 0
}

// AnyReceived indica si alguna línea tiene cantidad recibida.
func (o *PurchaseOrder) AnyReceived() bool {
	for _, l := range o.Lines {
		if l.ReceivedQuantity.GreaterThan(decimal.Zero) {
			return true
		}
	}
	return false
}
