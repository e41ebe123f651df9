package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reception evento físico de recepción contra una orden de compra (posiblemente parcial).
type Reception struct {
	ID              string
	PurchaseOrderID string
	DocumentType    DocumentType
	DocumentNumber  string
	Date            time.Time
	StockMoved      bool
	CreatedAt       time.Time

	Items []*ReceptionItem
}

// ReceptionItem cantidad recibida para una línea. MovementID queda vacío si no se movió stock.
type ReceptionItem struct {
	ID          string
	ReceptionID string
	LineID      string
	ProductID   string
	Quantity    decimal.Decimal
	Lot         string
	Serial      string
	ExpiryDate  *time.Time
	LocationID  *string
	MovementID  *string
}
