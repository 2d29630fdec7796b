package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/karnifashions/catalog-api/internal/domain/entity"
	"github.com/karnifashions/catalog-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q      Querier
	policy RetryPolicy
}

// NewProductRepository construye el adaptador de lectura de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier, policy RetryPolicy) *ProductRepo {
	return &ProductRepo{q: q, policy: policy}
}

// ListProducts lista todos los productos ordenados por Item.
func (r *ProductRepo) ListProducts(ctx context.Context) ([]entity.Product, error) {
	query := `
		SELECT product_id, item, COALESCE(series_name, ''), COALESCE(category_name, '')
		FROM products
		ORDER BY item`
	var list []entity.Product
	err := withRetry(ctx, r.policy, "list products", func(ctx context.Context) error {
		list = list[:0]
		rows, err := r.q.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var p entity.Product
			if err := rows.Scan(&p.ID, &p.Item, &p.SeriesName, &p.CategoryName); err != nil {
				return err
			}
			list = append(list, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// FindProductByItem obtiene un producto por número de diseño. (nil, nil) si no existe.
func (r *ProductRepo) FindProductByItem(ctx context.Context, item string) (*entity.Product, error) {
	query := `
		SELECT product_id, item, COALESCE(series_name, ''), COALESCE(category_name, '')
		FROM products WHERE item = $1`
	var p entity.Product
	found := true
	err := withRetry(ctx, r.policy, "find product by item", func(ctx context.Context) error {
		err := r.q.QueryRow(ctx, query, item).Scan(&p.ID, &p.Item, &p.SeriesName, &p.CategoryName)
		if errors.Is(err, pgx.ErrNoRows) {
			found = false
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &p, nil
}
