package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierProduct vincula un proveedor con un producto (par único): precio negociado y última compra.
type SupplierProduct struct {
	SupplierID       string
	ProductID        string
	Price            decimal.Decimal
	LastPurchaseDate *time.Time
	UpdatedAt        time.Time
}
