package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")

	// Taxonomía del motor de órdenes e inventario.
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPurchase          = errors.New("error de orden de compra")
	ErrReception         = errors.New("error de recepción")
	ErrSales             = errors.New("error de orden de venta")
)

// Error es un fallo tipado: Kind es uno de los sentinelas de arriba e ID el identificador ofensor
// (producto, línea, orden). errors.Is(err, domain.ErrInsufficientStock) funciona a través de Unwrap.
type Error struct {
	Kind    error
	ID      string
	Message string
}

// NewError construye un *Error con mensaje formateado.
func NewError(kind error, id, format string, args ...any) *Error {
	return &Error{Kind: kind, ID: id, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%v: %s (id=%s)", e.Kind, e.Message, e.ID)
}

func (e *Error) Unwrap() error { return e.Kind }

// ResourceID devuelve el identificador ofensor si err es (o envuelve) un *Error.
func ResourceID(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.ID
	}
	return ""
}
