package entity

// Category clasificación de productos; solo las activas se publican.
type Category struct {
	Name     string
	IsActive bool
}
