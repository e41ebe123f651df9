package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceptionItemRequest cantidad recibida de un producto. LineID es opcional:
// sin él se usa la primera línea del producto con pendiente.
type ReceptionItemRequest struct {
	ProductID  string          `json:"product_id"`
	LineID     string          `json:"line_id,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	Lot        string          `json:"lot,omitempty"`
	Serial     string          `json:"serial,omitempty"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
	LocationID *string         `json:"location_id,omitempty"`
}

// ApplyReceptionRequest body para POST /api/purchase-orders/:id/receptions.
// DocumentType acepta INVOICE/DELIVERY_NOTE/OTHER y también "Factura"/"Guía".
type ApplyReceptionRequest struct {
	Items          []ReceptionItemRequest `json:"items"`
	DocumentType   string                 `json:"document_type"`
	DocumentNumber string                 `json:"document_number"`
	Date           *time.Time             `json:"date,omitempty"`
	ApplyToStock   *bool                  `json:"apply_to_stock,omitempty"`
}

// UpdateReceptionItemRequest body para PATCH /api/receptions/:id/items/:itemId. No cambia cantidades.
// Un campo omitido conserva el valor actual; "" borra lote o serie.
type UpdateReceptionItemRequest struct {
	Lot        *string    `json:"lot,omitempty"`
	Serial     *string    `json:"serial,omitempty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	LocationID *string    `json:"location_id,omitempty"`
}

// ReceptionItemResponse ítem recibido.
type ReceptionItemResponse struct {
	ID         string          `json:"id"`
	LineID     string          `json:"line_id"`
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Lot        string          `json:"lot,omitempty"`
	Serial     string          `json:"serial,omitempty"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
	LocationID *string         `json:"location_id,omitempty"`
	MovementID *string         `json:"movement_id,omitempty"`
}

// ReceptionResponse recepción con sus ítems y el estado resultante de la orden.
type ReceptionResponse struct {
	ID                  string                  `json:"id"`
	PurchaseOrderID     string                  `json:"purchase_order_id"`
	DocumentType        string                  `json:"document_type"`
	DocumentNumber      string                  `json:"document_number"`
	Date                time.Time               `json:"date"`
	StockMoved          bool                    `json:"stock_moved"`
	PurchaseOrderStatus string                  `json:"purchase_order_status,omitempty"`
	Items               []ReceptionItemResponse `json:"items"`
}
