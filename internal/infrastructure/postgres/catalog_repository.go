package postgres

import (
	"context"
	"fmt"

	"github.com/karnifashions/catalog-api/internal/domain"
	"github.com/karnifashions/catalog-api/internal/domain/catalog"
	"github.com/karnifashions/catalog-api/internal/domain/entity"
	"github.com/karnifashions/catalog-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// filterColumns columnas permitidas por dimensión de filtro.
var filterColumns = map[catalog.FilterKind]string{
	catalog.FilterSeries:   "s.series_name",
	catalog.FilterCategory: "s.category_name",
}

// CatalogRepo series, categorías e imágenes filtradas.
type CatalogRepo struct {
	q      Querier
	policy RetryPolicy
}

// NewCatalogRepository construye el adaptador del catálogo.
func NewCatalogRepository(q Querier, policy RetryPolicy) *CatalogRepo {
	return &CatalogRepo{q: q, policy: policy}
}

// ListActiveSeries nombres de series activas, orden ascendente.
func (r *CatalogRepo) ListActiveSeries(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, "list active series",
		`SELECT series_name FROM series WHERE is_active ORDER BY series_name`)
}

// ListActiveCategories nombres de categorías activas, orden ascendente.
func (r *CatalogRepo) ListActiveCategories(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, "list active categories",
		`SELECT category_name FROM categories WHERE is_active ORDER BY category_name`)
}

func (r *CatalogRepo) listNames(ctx context.Context, op, query string) ([]string, error) {
	names := []string{}
	err := withRetry(ctx, r.policy, op, func(ctx context.Context) error {
		names = names[:0]
		rows, err := r.q.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var n string
			if err := rows.Scan(&n); err != nil {
				return err
			}
			names = append(names, n)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// ListImagesByFilter imágenes de productos cuya serie/categoría está en values y con
// stock total > minStock, ordenadas por ProductID.
func (r *CatalogRepo) ListImagesByFilter(ctx context.Context, kind catalog.FilterKind, values []string, minStock decimal.Decimal) ([]entity.ProductImage, error) {
	query, args, err := imagesByFilterQuery(kind, values, minStock)
	if err != nil {
		return nil, err
	}
	images := []entity.ProductImage{}
	err = withRetry(ctx, r.policy, "list images by "+string(kind), func(ctx context.Context) error {
		images = images[:0]
		rows, err := r.q.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var img entity.ProductImage
			if err := rows.Scan(&img.ProductID, &img.ImageURL, &img.UpdatedAt); err != nil {
				return err
			}
			images = append(images, img)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// imagesByFilterQuery arma la consulta con un placeholder por valor ($1 es el umbral).
func imagesByFilterQuery(kind catalog.FilterKind, values []string, minStock decimal.Decimal) (string, []any, error) {
	column, ok := filterColumns[kind]
	if !ok {
		return "", nil, fmt.Errorf("%w: filtro desconocido %q", domain.ErrInvalidInput, kind)
	}
	cond, inArgs, err := inClause(column, 2, values)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	query := `
		SELECT i.product_id, i.image_url, i.updated_at
		FROM product_images i
		JOIN stock_summary s ON s.product_id = i.product_id
		WHERE ` + cond + `
		  AND s.total_qty > $1
		ORDER BY i.product_id`
	args := append([]any{minStock}, inArgs...)
	return query, args, nil
}
