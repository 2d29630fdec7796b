package dto

import "github.com/shopspring/decimal"

// ProductResponse salida de un producto del catálogo.
type ProductResponse struct {
	ProductID    int64  `json:"product_id"`
	Item         string `json:"item"`
	SeriesName   string `json:"series_name"`
	CategoryName string `json:"category_name"`
}

// StockRowResponse fila de stock ya filtrada por rol.
// Las cantidades se omiten para clientes Premium; Availability solo aparece para ellos.
type StockRowResponse struct {
	ProductID    int64            `json:"product_id"`
	Item         string           `json:"item"`
	SeriesName   string           `json:"series_name"`
	CategoryName string           `json:"category_name"`
	JaipurQty    *decimal.Decimal `json:"jaipur_qty,omitempty"`
	KolkataQty   *decimal.Decimal `json:"kolkata_qty,omitempty"`
	TotalQty     *decimal.Decimal `json:"total_qty,omitempty"`
	Availability *string          `json:"availability,omitempty"`
}

// ProductImageResponse imagen de un producto.
type ProductImageResponse struct {
	ProductID int64  `json:"product_id"`
	ImageURL  string `json:"image_url"`
}

// SaveImageRequest entrada para guardar la imagen de un producto por número de diseño.
type SaveImageRequest struct {
	Item string `json:"item" validate:"required"`
	URL  string `json:"url" validate:"required"`
}

// SaveImageResponse resultado del guardado con la URL ya normalizada.
type SaveImageResponse struct {
	ProductID     int64  `json:"product_id"`
	NormalizedURL string `json:"normalized_url"`
}
