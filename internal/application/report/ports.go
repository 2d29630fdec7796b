package report

import (
	"context"
	"time"

	"github.com/karnifashions/catalog-api/internal/domain/entity"
)

// StockReportGenerator puerto de salida para renderizar el resumen de stock en PDF.
// Implementado por infrastructure/pdf.MarotoStockReport.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, rows []entity.StockRow, generatedAt time.Time) ([]byte, error)
}
