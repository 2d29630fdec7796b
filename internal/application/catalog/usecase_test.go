package catalog_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/karnifashions/catalog-api/internal/application/catalog"
	"github.com/karnifashions/catalog-api/internal/domain"
	domcatalog "github.com/karnifashions/catalog-api/internal/domain/catalog"
	"github.com/karnifashions/catalog-api/internal/domain/entity"
	"github.com/karnifashions/catalog-api/pkg/logger"
)

func newUseCase(store *memStore) *appcatalog.UseCase {
	return appcatalog.NewUseCase(store, store, store, store, memTx{store: store}, logger.Nop())
}

// fixtureStore: SeriesA con 2 productos sobre el umbral y 1 en el límite; SeriesB sin productos que califiquen.
func fixtureStore() *memStore {
	s := newMemStore()
	s.addProduct(30, "KF-300", "SeriesA", "Saree", 3, 3)  // total 6
	s.addProduct(10, "KF-100", "SeriesA", "Kurti", 5, 0)  // total 5
	s.addProduct(20, "KF-200", "SeriesA", "Saree", 2, 2)  // total 4: excluido
	s.addProduct(40, "KF-400", "SeriesB", "Lehenga", 1, 0) // total 1: excluido
	s.addProduct(50, "KF-500", "SeriesC", "Kurti", 9, 9)
	for _, id := range []int64{10, 20, 30, 40, 50} {
		s.images[id] = entity.ProductImage{ProductID: id, ImageURL: fmt.Sprintf("https://img/%d.png", id)}
	}
	s.series = []entity.Series{{Name: "SeriesB", IsActive: true}, {Name: "SeriesA", IsActive: true}, {Name: "Old", IsActive: false}}
	s.categories = []entity.Category{{Name: "Saree", IsActive: true}, {Name: "Kurti", IsActive: true}, {Name: "Dupatta", IsActive: false}}
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// GetStockForRole
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStockForRole_ClienteBasicNoConsultaLaBase(t *testing.T) {
	store := fixtureStore()
	uc := newUseCase(store)

	out, err := uc.GetStockForRole(context.Background(), entity.RoleCustomer, entity.CustomerTypeBasic)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Equal(t, 0, store.stockCalls)
}

func TestGetStockForRole_ClientePremium(t *testing.T) {
	uc := newUseCase(fixtureStore())

	out, err := uc.GetStockForRole(context.Background(), entity.RoleCustomer, entity.CustomerTypePremium)
	require.NoError(t, err)
	require.Len(t, out, 5)

	byItem := map[string]string{}
	for _, r := range out {
		assert.Nil(t, r.JaipurQty)
		assert.Nil(t, r.KolkataQty)
		assert.Nil(t, r.TotalQty)
		require.NotNil(t, r.Availability)
		byItem[r.Item] = *r.Availability
	}
	assert.Equal(t, "", byItem["KF-100"], "total 5 no es disponible")
	assert.Equal(t, "Available", byItem["KF-300"])
	assert.Equal(t, "Available", byItem["KF-500"])
}

func TestGetStockForRole_AdminVeCantidades(t *testing.T) {
	uc := newUseCase(fixtureStore())

	out, err := uc.GetStockForRole(context.Background(), entity.RoleAdmin, 0)
	require.NoError(t, err)
	require.Len(t, out, 5)
	assert.Equal(t, "KF-100", out[0].Item, "ordenado por Item")
	require.NotNil(t, out[0].TotalQty)
	assert.Equal(t, "5", out[0].TotalQty.String())
	assert.Nil(t, out[0].Availability)
}

func TestGetStockForRole_FalloDelAlmacen(t *testing.T) {
	store := fixtureStore()
	store.failWith = errConnRefused
	uc := newUseCase(store)

	_, err := uc.GetStockForRole(context.Background(), entity.RoleUser, 0)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.NotContains(t, err.Error(), "10.0.0.5", "no se filtra el detalle del almacén")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetProductImages
// ──────────────────────────────────────────────────────────────────────────────

func TestGetProductImages_VariasSeries(t *testing.T) {
	uc := newUseCase(fixtureStore())

	out, err := uc.GetProductImages(context.Background(), domcatalog.FilterSeries, []string{"SeriesA", "SeriesB"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(10), out[0].ProductID)
	assert.Equal(t, int64(30), out[1].ProductID)
}

func TestGetProductImages_UnValorEsListaDeUno(t *testing.T) {
	uc := newUseCase(fixtureStore())

	single, err := uc.GetProductImages(context.Background(), domcatalog.FilterCategory, []string{"Saree"})
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, int64(30), single[0].ProductID, "KF-200 tiene total 4 y queda fuera")
}

func TestGetProductImages_ListaVacia(t *testing.T) {
	uc := newUseCase(fixtureStore())

	_, err := uc.GetProductImages(context.Background(), domcatalog.FilterSeries, []string{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetProductImages(context.Background(), domcatalog.FilterKind("color"), []string{"x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// SaveProductImage / GetImage
// ──────────────────────────────────────────────────────────────────────────────

func TestSaveProductImage_NormalizaYGuarda(t *testing.T) {
	store := fixtureStore()
	uc := newUseCase(store)

	out, err := uc.SaveProductImage(context.Background(), " KF-300 ", "https://drive.google.com/file/d/ABCDEFGHIJ1234/view")
	require.NoError(t, err)
	assert.Equal(t, int64(30), out.ProductID)
	assert.Equal(t, "https://drive.google.com/uc?export=view&id=ABCDEFGHIJ1234", out.NormalizedURL)

	img, err := uc.GetImage(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, out.NormalizedURL, img.ImageURL)
}

func TestSaveProductImage_DosVecesQuedaLaSegunda(t *testing.T) {
	store := newMemStore()
	store.addProduct(7, "KF-7", "SeriesA", "Saree", 1, 1)
	uc := newUseCase(store)

	_, err := uc.SaveProductImage(context.Background(), "KF-7", "https://example.com/a.png")
	require.NoError(t, err)
	_, err = uc.SaveProductImage(context.Background(), "KF-7", "https://example.com/b.png")
	require.NoError(t, err)

	assert.Len(t, store.images, 1)
	assert.Equal(t, "https://example.com/b.png", store.images[7].ImageURL)
}

func TestSaveProductImage_Concurrente(t *testing.T) {
	store := newMemStore()
	store.addProduct(7, "KF-7", "SeriesA", "Saree", 1, 1)
	uc := newUseCase(store)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.SaveProductImage(context.Background(), "KF-7", fmt.Sprintf("https://example.com/%d.png", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.images, 1)
	assert.Equal(t, 20, store.upsertCalls)
}

func TestSaveProductImage_ItemInexistente(t *testing.T) {
	uc := newUseCase(fixtureStore())

	_, err := uc.SaveProductImage(context.Background(), "NO-EXISTE", "https://example.com/a.png")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveProductImage_CamposRequeridos(t *testing.T) {
	uc := newUseCase(fixtureStore())

	_, err := uc.SaveProductImage(context.Background(), "", "https://example.com/a.png")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.SaveProductImage(context.Background(), "KF-300", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetImage_SinRegistroEsNotFound(t *testing.T) {
	store := newMemStore()
	store.addProduct(7, "KF-7", "SeriesA", "Saree", 1, 1)
	store.images[8] = entity.ProductImage{ProductID: 8, ImageURL: ""}
	uc := newUseCase(store)

	_, err := uc.GetImage(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	img, err := uc.GetImage(context.Background(), 8)
	require.NoError(t, err, "URL vacía no es lo mismo que no tener registro")
	assert.Equal(t, "", img.ImageURL)

	_, err = uc.GetImage(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestListActiveSeriesYCategorias(t *testing.T) {
	uc := newUseCase(fixtureStore())

	series, err := uc.ListActiveSeries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"SeriesA", "SeriesB"}, series)

	cats, err := uc.ListActiveCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Kurti", "Saree"}, cats)
}

func TestListActiveSeries_SinDatosDevuelveListaVacia(t *testing.T) {
	uc := newUseCase(newMemStore())

	series, err := uc.ListActiveSeries(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, series)
	assert.Empty(t, series)
}

func TestListProducts_OrdenadoPorItem(t *testing.T) {
	uc := newUseCase(fixtureStore())

	out, err := uc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 5)
	for i := 1; i < len(out); i++ {
		assert.Less(t, out[i-1].Item, out[i].Item)
	}
}

func TestListProducts_ConflictoPasaSinTraducir(t *testing.T) {
	store := fixtureStore()
	store.failWith = fmt.Errorf("upsert image 7: %w", domain.ErrConflict)
	uc := newUseCase(store)

	_, err := uc.ListProducts(context.Background())
	assert.Equal(t, domain.ErrConflict, err)
}
