package entity

import "time"

// ProductImage URL (ya normalizada) de la imagen de un producto. Máximo una por producto.
type ProductImage struct {
	ProductID int64
	ImageURL  string
	UpdatedAt time.Time
}
