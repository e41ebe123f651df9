package inventory

import (
	"github.com/jhoicas/ordenes-inventario/internal/domain"
	"github.com/shopspring/decimal"
)

// ApplyEntry devuelve el stock resultante de sumar quantity. quantity debe ser > 0.
func ApplyEntry(productID string, onHand, quantity decimal.Decimal) (decimal.Decimal, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return onHand, domain.NewError(domain.ErrInvalidQuantity, productID, "la entrada debe ser mayor que cero (recibido %s)", quantity)
	}
	return onHand.Add(quantity), nil
}

// ApplyExit devuelve el stock resultante de restar quantity. Nunca deja el stock negativo.
func ApplyExit(productID string, onHand, quantity decimal.Decimal) (decimal.Decimal, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return onHand, domain.NewError(domain.ErrInvalidQuantity, productID, "la salida debe ser mayor que cero (recibido %s)", quantity)
	}
	if quantity.GreaterThan(onHand) {
		return onHand, domain.NewError(domain.ErrInsufficientStock, productID, "solicitado %s, disponible %s", quantity, onHand)
	}
	return onHand.Sub(quantity), nil
}

// ResolveTrace aplica la precedencia lote sobre serie: si llegan ambos se conserva solo el lote.
func ResolveTrace(lot, serial string) (string, string) {
	if lot != "" {
		return lot, ""
	}
	return "", serial
}
