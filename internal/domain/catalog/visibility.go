// Package catalog contiene las reglas puras del catálogo: visibilidad de stock por rol,
// validación de filtros de imágenes y normalización de URLs de imagen.
package catalog

import (
	"github.com/karnifashions/catalog-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Visibility nivel de detalle de stock que puede ver un usuario.
type Visibility int

const (
	// VisibilityNone cliente Basic: no ve stock.
	VisibilityNone Visibility = iota
	// VisibilityAvailabilityOnly cliente Premium: solo la etiqueta de disponibilidad.
	VisibilityAvailabilityOnly
	// VisibilityFull personal (Admin, User) y cualquier combinación no reconocida.
	VisibilityFull
)

// AvailabilityThreshold un producto se marca disponible si TotalQty > AvailabilityThreshold.
const AvailabilityThreshold int64 = 5

// AvailableLabel etiqueta que ve el cliente Premium cuando hay stock suficiente.
const AvailableLabel = "Available"

var availabilityThreshold = decimal.NewFromInt(AvailabilityThreshold)

// Quantities cantidades por bodega y total de un producto.
type Quantities struct {
	Jaipur  decimal.Decimal
	Kolkata decimal.Decimal
	Total   decimal.Decimal
}

// VisibleRow fila de stock ya filtrada por el nivel de visibilidad.
// Quantities es nil cuando el nivel no permite ver cantidades;
// Availability solo se informa en el nivel VisibilityAvailabilityOnly.
type VisibleRow struct {
	ProductID    int64
	Item         string
	SeriesName   string
	CategoryName string
	Quantities   *Quantities
	Availability *string
}

// VisibilityFor resuelve el nivel de visibilidad para (rol, tipo de cliente).
//
// Solo Customer+Basic y Customer+Premium restringen. Todo lo demás, incluidos roles
// o tipos de cliente desconocidos, cae en VisibilityFull. Ese default es una decisión
// de negocio pendiente de confirmar; no cambiarlo a "cerrado" sin acordarlo.
func VisibilityFor(role string, customerType int) Visibility {
	if role == entity.RoleCustomer {
		switch customerType {
		case entity.CustomerTypeBasic:
			return VisibilityNone
		case entity.CustomerTypePremium:
			return VisibilityAvailabilityOnly
		}
	}
	return VisibilityFull
}

// ApplyVisibility transforma las filas de stock según el rol y tipo de cliente.
// Es una función pura: no modifica rows y siempre devuelve un slice no nil.
func ApplyVisibility(role string, customerType int, rows []entity.StockRow) []VisibleRow {
	switch VisibilityFor(role, customerType) {
	case VisibilityNone:
		return []VisibleRow{}
	case VisibilityAvailabilityOnly:
		out := make([]VisibleRow, 0, len(rows))
		for _, r := range rows {
			label := ""
			if r.TotalQty.GreaterThan(availabilityThreshold) {
				label = AvailableLabel
			}
			out = append(out, VisibleRow{
				ProductID:    r.ProductID,
				Item:         r.Item,
				SeriesName:   r.SeriesName,
				CategoryName: r.CategoryName,
				Availability: &label,
			})
		}
		return out
	default:
		out := make([]VisibleRow, 0, len(rows))
		for _, r := range rows {
			out = append(out, VisibleRow{
				ProductID:    r.ProductID,
				Item:         r.Item,
				SeriesName:   r.SeriesName,
				CategoryName: r.CategoryName,
				Quantities: &Quantities{
					Jaipur:  r.JaipurQty,
					Kolkata: r.KolkataQty,
					Total:   r.TotalQty,
				},
			})
		}
		return out
	}
}
