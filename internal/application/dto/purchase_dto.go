package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea de una orden (compra o venta).
type OrderLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
// Status vacío = COMPLETED; ApplyToStock nil = true.
type CreatePurchaseOrderRequest struct {
	SupplierID     string             `json:"supplier_id"`
	Lines          []OrderLineRequest `json:"lines"`
	Date           *time.Time         `json:"date,omitempty"`
	Status         string             `json:"status,omitempty"`
	ApplyToStock   *bool              `json:"apply_to_stock,omitempty"`
	DocumentNumber string             `json:"document_number,omitempty"`
	DocumentDate   *time.Time         `json:"document_date,omitempty"`
	AccountingDate *time.Time         `json:"accounting_date,omitempty"`
	DueDate        *time.Time         `json:"due_date,omitempty"`
	Currency       string             `json:"currency,omitempty"`
	ExchangeRate   decimal.Decimal    `json:"exchange_rate"`
	Discount       decimal.Decimal    `json:"discount"`
	Notes          string             `json:"notes,omitempty"`
}

// PurchaseOrderLineResponse línea con su estado de recepción.
type PurchaseOrderLineResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	StockedQuantity  decimal.Decimal `json:"stocked_quantity"`
	Remaining        decimal.Decimal `json:"remaining"`
}

// PurchaseOrderResponse orden de compra con sus líneas.
type PurchaseOrderResponse struct {
	ID             string                      `json:"id"`
	SupplierID     string                      `json:"supplier_id"`
	OrderDate      time.Time                   `json:"order_date"`
	Total          decimal.Decimal             `json:"total"`
	Status         string                      `json:"status"`
	MoveStock      bool                        `json:"move_stock"`
	DocumentNumber string                      `json:"document_number,omitempty"`
	DocumentDate   *time.Time                  `json:"document_date,omitempty"`
	AccountingDate *time.Time                  `json:"accounting_date,omitempty"`
	DueDate        *time.Time                  `json:"due_date,omitempty"`
	Currency       string                      `json:"currency"`
	ExchangeRate   decimal.Decimal             `json:"exchange_rate"`
	Discount       decimal.Decimal             `json:"discount"`
	Notes          string                      `json:"notes,omitempty"`
	Lines          []PurchaseOrderLineResponse `json:"lines"`
}

// UpsertSupplierProductRequest body para PUT /api/supplier-products.
type UpsertSupplierProductRequest struct {
	SupplierID       string          `json:"supplier_id"`
	ProductID        string          `json:"product_id"`
	Price            decimal.Decimal `json:"price"`
	LastPurchaseDate *time.Time      `json:"last_purchase_date,omitempty"`
}

// SupplierProductResponse vínculo proveedor-producto.
type SupplierProductResponse struct {
	SupplierID       string          `json:"supplier_id"`
	ProductID        string          `json:"product_id"`
	Price            decimal.Decimal `json:"price"`
	LastPurchaseDate *time.Time      `json:"last_purchase_date,omitempty"`
}
