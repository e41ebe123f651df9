package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrder cabecera de una orden de venta. StockApplied indica que sus salidas ya se registraron.
type SalesOrder struct {
	ID           string
	CustomerID   string
	OrderDate    time.Time
	Total        decimal.Decimal
	Status       SalesStatus
	StockApplied bool
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Lines []*SalesOrderLine
}

// SalesOrderLine línea de venta.
type SalesOrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
