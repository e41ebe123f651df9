package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Quantity es el stock disponible (on-hand); solo el libro de stock (inventory.StockLedger) lo modifica.
type Product struct {
	ID            string
	SKU           string // único sin distinguir mayúsculas
	Name          string
	Description   string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	UnitMeasure   string
	SupplierID    *string
	LocationID    *string // ubicación por defecto para entradas sin ubicación explícita
	Quantity      decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
