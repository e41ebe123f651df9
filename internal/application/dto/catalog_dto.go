package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products. La cantidad inicial siempre es 0:
// el stock entra por el libro de movimientos.
type CreateProductRequest struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	UnitMeasure   string          `json:"unit_measure"`
	SupplierID    *string         `json:"supplier_id,omitempty"`
	LocationID    *string         `json:"location_id,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. No modifica la cantidad.
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty"`
	UnitMeasure   *string          `json:"unit_measure,omitempty"`
	SupplierID    *string          `json:"supplier_id,omitempty"`
	LocationID    *string          `json:"location_id,omitempty"`
}

// ProductResponse respuesta de producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	UnitMeasure   string          `json:"unit_measure"`
	SupplierID    *string         `json:"supplier_id,omitempty"`
	LocationID    *string         `json:"location_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreatePartyRequest body para crear proveedores y clientes.
type CreatePartyRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// PartyResponse respuesta de proveedor o cliente.
type PartyResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LocationResponse respuesta de ubicación.
type LocationResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
