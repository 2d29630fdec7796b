package postgres

import (
	"context"

	"github.com/karnifashions/catalog-api/internal/domain/entity"
	"github.com/karnifashions/catalog-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre la vista stock_summary.
type StockRepo struct {
	q      Querier
	policy RetryPolicy
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier, policy RetryPolicy) *StockRepo {
	return &StockRepo{q: q, policy: policy}
}

// GetStockSummary devuelve una fila por producto con inventario registrado, ordenada por Item.
// El total se recalcula aquí desde las cantidades por bodega.
func (r *StockRepo) GetStockSummary(ctx context.Context) ([]entity.StockRow, error) {
	query := `
		SELECT product_id, item, series_name, category_name, jaipur_qty, kolkata_qty
		FROM stock_summary
		ORDER BY item`
	var list []entity.StockRow
	err := withRetry(ctx, r.policy, "get stock summary", func(ctx context.Context) error {
		list = list[:0]
		rows, err := r.q.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var s entity.StockRow
			if err := rows.Scan(&s.ProductID, &s.Item, &s.SeriesName, &s.CategoryName, &s.JaipurQty, &s.KolkataQty); err != nil {
				return err
			}
			s.RecomputeTotal()
			list = append(list, s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
