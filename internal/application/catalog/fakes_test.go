package catalog_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domcatalog "github.com/karnifashions/catalog-api/internal/domain/catalog"
	"github.com/karnifashions/catalog-api/internal/domain/entity"
	"github.com/karnifashions/catalog-api/internal/domain/repository"
)

// memStore implementa todos los puertos del catálogo en memoria.
type memStore struct {
	mu         sync.Mutex
	products   []entity.Product
	stock      []entity.StockRow
	series     []entity.Series
	categories []entity.Category
	images     map[int64]entity.ProductImage

	failWith    error // si no es nil, toda operación falla con este error
	stockCalls  int
	upsertCalls int
}

func newMemStore() *memStore {
	return &memStore{images: map[int64]entity.ProductImage{}}
}

func (m *memStore) addProduct(id int64, item, series, category string, jaipur, kolkata int64) {
	m.products = append(m.products, entity.Product{ID: id, Item: item, SeriesName: series, CategoryName: category})
	row := entity.StockRow{
		ProductID: id, Item: item, SeriesName: series, CategoryName: category,
		JaipurQty: decimal.NewFromInt(jaipur), KolkataQty: decimal.NewFromInt(kolkata),
	}
	row.RecomputeTotal()
	m.stock = append(m.stock, row)
}

func (m *memStore) ListProducts(_ context.Context) ([]entity.Product, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := append([]entity.Product(nil), m.products...)
	sort.Slice(out, func(i, j int) bool { return out[i].Item < out[j].Item })
	return out, nil
}

func (m *memStore) FindProductByItem(_ context.Context, item string) (*entity.Product, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, p := range m.products {
		if p.Item == item {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetStockSummary(_ context.Context) ([]entity.StockRow, error) {
	m.stockCalls++
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := append([]entity.StockRow(nil), m.stock...)
	sort.Slice(out, func(i, j int) bool { return out[i].Item < out[j].Item })
	return out, nil
}

func (m *memStore) ListActiveSeries(_ context.Context) ([]string, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []string
	for _, s := range m.series {
		if s.IsActive {
			out = append(out, s.Name)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memStore) ListActiveCategories(_ context.Context) ([]string, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []string
	for _, c := range m.categories {
		if c.IsActive {
			out = append(out, c.Name)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memStore) ListImagesByFilter(_ context.Context, kind domcatalog.FilterKind, values []string, minStock decimal.Decimal) ([]entity.ProductImage, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	want := map[string]bool{}
	for _, v := range values {
		want[v] = true
	}
	out := []entity.ProductImage{}
	for _, s := range m.stock {
		dim := s.SeriesName
		if kind == domcatalog.FilterCategory {
			dim = s.CategoryName
		}
		img, ok := m.images[s.ProductID]
		if !ok || !want[dim] || !s.TotalQty.GreaterThan(minStock) {
			continue
		}
		out = append(out, img)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (m *memStore) GetImage(_ context.Context, productID int64) (*entity.ProductImage, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.images[productID]
	if !ok {
		return nil, nil
	}
	return &img, nil
}

func (m *memStore) UpsertImage(_ context.Context, productID int64, url string) (*entity.ProductImage, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertCalls++
	img := entity.ProductImage{ProductID: productID, ImageURL: url, UpdatedAt: time.Now()}
	m.images[productID] = img
	return &img, nil
}

// memTx ejecuta fn con los mismos repos en memoria.
type memTx struct{ store *memStore }

func (t memTx) Run(_ context.Context, fn func(repository.ProductRepository, repository.ImageRepository) error) error {
	return fn(t.store, t.store)
}

var errConnRefused = errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
