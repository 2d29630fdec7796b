package repository

import (
	"context"

	"github.com/karnifashions/catalog-api/internal/domain/entity"
)

// ImageRepository define el puerto de persistencia de la imagen de cada producto.
type ImageRepository interface {
	// GetImage devuelve (nil, nil) si el producto no tiene registro de imagen.
	GetImage(ctx context.Context, productID int64) (*entity.ProductImage, error)
	// UpsertImage crea o sobrescribe la imagen del producto. Nunca deja dos filas por producto.
	UpsertImage(ctx context.Context, productID int64, url string) (*entity.ProductImage, error)
}
