package repository

import (
	"context"

	"github.com/karnifashions/catalog-api/internal/domain/catalog"
	"github.com/karnifashions/catalog-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CatalogRepository define el puerto para las dimensiones de filtro (series, categorías)
// y la resolución de imágenes por filtro.
type CatalogRepository interface {
	ListActiveSeries(ctx context.Context) ([]string, error)
	ListActiveCategories(ctx context.Context) ([]string, error)

	// ListImagesByFilter devuelve las imágenes de productos cuya serie/categoría está en values
	// y cuyo stock total es mayor que minStock, ordenadas por ProductID ascendente.
	// values ya llega validado (no vacío).
	ListImagesByFilter(ctx context.Context, kind catalog.FilterKind, values []string, minStock decimal.Decimal) ([]entity.ProductImage, error)
}
