package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karnifashions/catalog-api/internal/domain"
	"github.com/karnifashions/catalog-api/internal/domain/entity"
	"github.com/karnifashions/catalog-api/pkg/logger"
)

type stubStock struct {
	rows  []entity.StockRow
	err   error
	calls int
}

func (s *stubStock) GetStockSummary(_ context.Context) ([]entity.StockRow, error) {
	s.calls++
	return s.rows, s.err
}

type stubGenerator struct{ got []entity.StockRow }

func (g *stubGenerator) GenerateStockReport(_ context.Context, rows []entity.StockRow, _ time.Time) ([]byte, error) {
	g.got = rows
	return []byte("%PDF-1.3"), nil
}

func newReport(stock *stubStock, gen *stubGenerator) *StockReportUseCase {
	uc := NewStockReportUseCase(stock, gen, logger.Nop())
	uc.now = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }
	return uc
}

func TestDownloadStockReport_Personal(t *testing.T) {
	stock := &stubStock{rows: []entity.StockRow{{ProductID: 1, Item: "KF-1", TotalQty: decimal.NewFromInt(3)}}}
	gen := &stubGenerator{}
	uc := newReport(stock, gen)

	pdf, name, err := uc.DownloadStockReport(context.Background(), entity.RoleAdmin, 0)
	require.NoError(t, err)
	assert.Equal(t, "stock_20260314_0930.pdf", name)
	assert.Equal(t, []byte("%PDF-1.3"), pdf)
	assert.Len(t, gen.got, 1)
}

func TestDownloadStockReport_ClientesNoPueden(t *testing.T) {
	stock := &stubStock{}
	uc := newReport(stock, &stubGenerator{})

	for _, ct := range []int{entity.CustomerTypeBasic, entity.CustomerTypePremium} {
		_, _, err := uc.DownloadStockReport(context.Background(), entity.RoleCustomer, ct)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	}
	assert.Equal(t, 0, stock.calls)
}

func TestDownloadStockReport_FalloDelAlmacen(t *testing.T) {
	uc := newReport(&stubStock{err: errors.New("timeout")}, &stubGenerator{})

	_, _, err := uc.DownloadStockReport(context.Background(), entity.RoleUser, 0)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
