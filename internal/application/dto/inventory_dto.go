package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterEntryRequest body para POST /api/inventory/entries (ajuste manual).
type RegisterEntryRequest struct {
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reason     string          `json:"reason"`
	Date       *time.Time      `json:"date,omitempty"`
	Lot        string          `json:"lot,omitempty"`
	Serial     string          `json:"serial,omitempty"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
	LocationID *string         `json:"location_id,omitempty"`
}

// RegisterExitRequest body para POST /api/inventory/exits (ajuste manual).
type RegisterExitRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason"`
	Date      *time.Time      `json:"date,omitempty"`
}

// MovementResultResponse stock antes y después del movimiento.
type MovementResultResponse struct {
	MovementID  string          `json:"movement_id"`
	ProductID   string          `json:"product_id"`
	OldQuantity decimal.Decimal `json:"old_quantity"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}

// StockMovementResponse movimiento del historial.
type StockMovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Kind        string          `json:"kind"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason"`
	Reference   string          `json:"reference,omitempty"`
	Date        time.Time       `json:"date"`
	Lot         string          `json:"lot,omitempty"`
	Serial      string          `json:"serial,omitempty"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
	ReceptionID *string         `json:"reception_id,omitempty"`
	LocationID  *string         `json:"location_id,omitempty"`
}

// StockResponse stock disponible de un producto.
type StockResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}
