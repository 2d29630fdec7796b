package entity

// Product representa un diseño del catálogo. Item es el número de diseño (único).
// SeriesName y CategoryName son las dimensiones de filtro del catálogo.
type Product struct {
	ID           int64
	Item         string
	SeriesName   string
	CategoryName string
}
