package catalog

import (
	"strings"

	"github.com/karnifashions/catalog-api/internal/domain"
	"golang.org/x/text/unicode/norm"
)

// FilterKind dimensión por la que se filtran las imágenes del catálogo.
type FilterKind string

const (
	FilterSeries   FilterKind = "series"
	FilterCategory FilterKind = "category"
)

// MinImageStock una imagen solo se publica si el stock total del producto es mayor que este valor.
// Es el mismo umbral para series y categorías.
const MinImageStock int64 = 4

// ParseFilterKind valida el nombre de la dimensión.
func ParseFilterKind(s string) (FilterKind, error) {
	switch FilterKind(strings.ToLower(strings.TrimSpace(s))) {
	case FilterSeries:
		return FilterSeries, nil
	case FilterCategory:
		return FilterCategory, nil
	}
	return "", domain.ErrInvalidInput
}

// NormalizeFilterValues limpia la lista de valores del filtro: recorta espacios,
// normaliza a Unicode NFC y elimina duplicados conservando el primer orden de aparición.
// Lista vacía o algún valor en blanco -> domain.ErrInvalidInput.
func NormalizeFilterValues(values []string) ([]string, error) {
	if len(values) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		clean := norm.NFC.String(strings.TrimSpace(v))
		if clean == "" {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	return out, nil
}
