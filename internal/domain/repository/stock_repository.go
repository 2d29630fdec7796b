package repository

import (
	"context"

	"github.com/karnifashions/catalog-api/internal/domain/entity"
)

// StockRepository define el puerto para el resumen de stock por producto.
// Las filas se recalculan desde el inventario en cada consulta.
type StockRepository interface {
	GetStockSummary(ctx context.Context) ([]entity.StockRow, error)
}
