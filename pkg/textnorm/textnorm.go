// Package textnorm normaliza textos de entrada (SKU, estados heredados, tipos de documento).
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold aplica case folding Unicode y recorta espacios. Dos SKU son iguales si sus Fold coinciden.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Key reduce s a una clave comparable: sin tildes, plegada y con separadores unificados a "_".
// "Guía de despacho", "GUIA_DE_DESPACHO" y "guia-de-despacho" producen la misma clave.
func Key(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}
	plain = Fold(plain)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.':
			return '_'
		}
		return r
	}, plain)
}
