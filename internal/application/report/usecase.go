// Package report genera el reporte PDF de stock para el personal.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/karnifashions/catalog-api/internal/domain"
	domcatalog "github.com/karnifashions/catalog-api/internal/domain/catalog"
	"github.com/karnifashions/catalog-api/internal/domain/repository"
	"github.com/karnifashions/catalog-api/pkg/logger"
)

// StockReportUseCase arma el PDF con las cantidades completas por bodega.
type StockReportUseCase struct {
	stockRepo repository.StockRepository
	generator StockReportGenerator
	now       func() time.Time
	log       *logger.Logger
}

// NewStockReportUseCase construye el caso de uso.
func NewStockReportUseCase(stockRepo repository.StockRepository, generator StockReportGenerator, log *logger.Logger) *StockReportUseCase {
	return &StockReportUseCase{
		stockRepo: stockRepo,
		generator: generator,
		now:       time.Now,
		log:       log.Named("report"),
	}
}

// DownloadStockReport devuelve (pdfBytes, filename, nil).
//
// Retorna:
//   - domain.ErrForbidden        si el usuario no tiene visibilidad completa del stock.
//   - domain.ErrStoreUnavailable si la consulta de stock falla.
func (uc *StockReportUseCase) DownloadStockReport(ctx context.Context, role string, customerType int) ([]byte, string, error) {
	if domcatalog.VisibilityFor(role, customerType) != domcatalog.VisibilityFull {
		return nil, "", domain.ErrForbidden
	}
	rows, err := uc.stockRepo.GetStockSummary(ctx)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "DownloadStockReport").Msg("fallo del almacén de datos")
		return nil, "", domain.ErrStoreUnavailable
	}
	at := uc.now()
	pdf, err := uc.generator.GenerateStockReport(ctx, rows, at)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar pdf: %w", err)
	}
	uc.log.Debug().Int("rows", len(rows)).Int("bytes", len(pdf)).Msg("reporte de stock generado")
	return pdf, fmt.Sprintf("stock_%s.pdf", at.Format("20060102_1504")), nil
}
