package repository

import (
	"context"

	"github.com/karnifashions/catalog-api/internal/domain/entity"
)

// ProductRepository define el puerto de lectura de productos (DIP).
type ProductRepository interface {
	// ListProducts devuelve todos los productos ordenados por Item ascendente.
	ListProducts(ctx context.Context) ([]entity.Product, error)
	// FindProductByItem devuelve (nil, nil) si el Item no existe.
	FindProductByItem(ctx context.Context, item string) (*entity.Product, error)
}
