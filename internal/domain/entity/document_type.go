package entity

import "github.com/jhoicas/ordenes-inventario/pkg/textnorm"

// DocumentType tipo del documento que respalda una recepción.
type DocumentType string

const (
	DocumentInvoice      DocumentType = "INVOICE"       // factura
	DocumentDeliveryNote DocumentType = "DELIVERY_NOTE" // guía de despacho
	DocumentOther        DocumentType = "OTHER"
)

// ParseDocumentType nunca falla: lo que no es factura ni guía cae en DocumentOther.
func ParseDocumentType(s string) DocumentType {
	switch textnorm.Key(s) {
	case "invoice", "factura":
		return DocumentInvoice
	case "delivery_note", "guia", "guia_de_despacho":
		return DocumentDeliveryNote
	}
	return DocumentOther
}
