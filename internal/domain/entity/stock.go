package entity

import "github.com/shopspring/decimal"

// Bodegas con inventario propio. El resumen de stock las expone como columnas.
const (
	LocationJaipur  = "Jaipur"
	LocationKolkata = "Kolkata"
)

// StockRow agregado de inventario por producto (derivado, nunca se persiste).
// Invariante: TotalQty == JaipurQty + KolkataQty.
type StockRow struct {
	ProductID    int64
	Item         string
	SeriesName   string
	CategoryName string
	JaipurQty    decimal.Decimal
	KolkataQty   decimal.Decimal
	TotalQty     decimal.Decimal
}

// RecomputeTotal recalcula TotalQty como suma de las cantidades por bodega.
func (s *StockRow) RecomputeTotal() {
	s.TotalQty = s.JaipurQty.Add(s.KolkataQty)
}
