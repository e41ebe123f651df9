package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSalesOrderRequest body para POST /api/sales-orders.
// Status vacío = CONFIRMED; ApplyToStock nil = true.
type CreateSalesOrderRequest struct {
	CustomerID   string             `json:"customer_id"`
	Lines        []OrderLineRequest `json:"lines"`
	Date         *time.Time         `json:"date,omitempty"`
	Status       string             `json:"status,omitempty"`
	ApplyToStock *bool              `json:"apply_to_stock,omitempty"`
	Notes        string             `json:"notes,omitempty"`
}

// SalesOrderLineResponse línea de venta.
type SalesOrderLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SalesOrderResponse orden de venta con sus líneas.
type SalesOrderResponse struct {
	ID           string                   `json:"id"`
	CustomerID   string                   `json:"customer_id"`
	OrderDate    time.Time                `json:"order_date"`
	Total        decimal.Decimal          `json:"total"`
	Status       string                   `json:"status"`
	StockApplied bool                     `json:"stock_applied"`
	Notes        string                   `json:"notes,omitempty"`
	Lines        []SalesOrderLineResponse `json:"lines"`
}
