// Package catalog orquesta las consultas del catálogo: stock por rol, imágenes por
// serie/categoría, guardado de imágenes y listados.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/karnifashions/catalog-api/internal/application/dto"
	"github.com/karnifashions/catalog-api/internal/domain"
	domcatalog "github.com/karnifashions/catalog-api/internal/domain/catalog"
	"github.com/karnifashions/catalog-api/internal/domain/entity"
	"github.com/karnifashions/catalog-api/internal/domain/repository"
	"github.com/karnifashions/catalog-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// UseCase casos de uso del catálogo. No guarda estado entre llamadas.
type UseCase struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	catalogRepo repository.CatalogRepository
	imageRepo   repository.ImageRepository
	tx          TxRunner
	log         *logger.Logger
}

// NewUseCase construye el caso de uso inyectando repositorios, runner de tx y logger.
func NewUseCase(
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	catalogRepo repository.CatalogRepository,
	imageRepo repository.ImageRepository,
	tx TxRunner,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		productRepo: productRepo,
		stockRepo:   stockRepo,
		catalogRepo: catalogRepo,
		imageRepo:   imageRepo,
		tx:          tx,
		log:         log.Named("catalog"),
	}
}

// GetStockForRole devuelve el stock visible para (rol, tipo de cliente).
// Cliente Basic: lista vacía sin consultar la base.
func (uc *UseCase) GetStockForRole(ctx context.Context, role string, customerType int) ([]dto.StockRowResponse, error) {
	if domcatalog.VisibilityFor(role, customerType) == domcatalog.VisibilityNone {
		return []dto.StockRowResponse{}, nil
	}
	rows, err := uc.stockRepo.GetStockSummary(ctx)
	if err != nil {
		return nil, uc.storeErr("GetStockForRole", err)
	}
	visible := domcatalog.ApplyVisibility(role, customerType, rows)
	out := make([]dto.StockRowResponse, 0, len(visible))
	for _, v := range visible {
		out = append(out, toStockRowResponse(v))
	}
	return out, nil
}

// GetProductImages imágenes de los productos de las series/categorías indicadas con
// stock total mayor que MinImageStock, ordenadas por ProductID.
// Un solo valor es la lista de un elemento.
func (uc *UseCase) GetProductImages(ctx context.Context, kind domcatalog.FilterKind, values []string) ([]dto.ProductImageResponse, error) {
	if kind != domcatalog.FilterSeries && kind != domcatalog.FilterCategory {
		return nil, domain.ErrInvalidInput
	}
	clean, err := domcatalog.NormalizeFilterValues(values)
	if err != nil {
		return nil, err
	}
	images, err := uc.catalogRepo.ListImagesByFilter(ctx, kind, clean, decimal.NewFromInt(domcatalog.MinImageStock))
	if err != nil {
		return nil, uc.storeErr("GetProductImages", err)
	}
	out := make([]dto.ProductImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, dto.ProductImageResponse{ProductID: img.ProductID, ImageURL: img.ImageURL})
	}
	return out, nil
}

// SaveProductImage normaliza la URL y la guarda para el producto con ese Item.
// Resolver el producto y el upsert van en la misma transacción.
func (uc *UseCase) SaveProductImage(ctx context.Context, item, url string) (*dto.SaveImageResponse, error) {
	item = strings.TrimSpace(item)
	url = strings.TrimSpace(url)
	if item == "" || url == "" {
		return nil, domain.ErrInvalidInput
	}
	normalized := domcatalog.NormalizeImageURL(url)

	var saved *entity.ProductImage
	err := uc.tx.Run(ctx, func(productRepo repository.ProductRepository, imageRepo repository.ImageRepository) error {
		product, err := productRepo.FindProductByItem(ctx, item)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		saved, err = imageRepo.UpsertImage(ctx, product.ID, normalized)
		return err
	})
	if err != nil {
		return nil, uc.storeErr("SaveProductImage", err)
	}
	uc.log.Info().
		Str("item", item).
		Int64("product_id", saved.ProductID).
		Bool("normalized", normalized != url).
		Msg("imagen guardada")
	return &dto.SaveImageResponse{ProductID: saved.ProductID, NormalizedURL: saved.ImageURL}, nil
}

// GetImage imagen de un producto. ErrNotFound si no hay registro (distinto de URL vacía).
func (uc *UseCase) GetImage(ctx context.Context, productID int64) (*dto.ProductImageResponse, error) {
	if productID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	img, err := uc.imageRepo.GetImage(ctx, productID)
	if err != nil {
		return nil, uc.storeErr("GetImage", err)
	}
	if img == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.ProductImageResponse{ProductID: img.ProductID, ImageURL: img.ImageURL}, nil
}

// ListActiveSeries nombres de series activas en orden ascendente.
func (uc *UseCase) ListActiveSeries(ctx context.Context) ([]string, error) {
	names, err := uc.catalogRepo.ListActiveSeries(ctx)
	if err != nil {
		return nil, uc.storeErr("ListActiveSeries", err)
	}
	return nonNil(names), nil
}

// ListActiveCategories nombres de categorías activas en orden ascendente.
func (uc *UseCase) ListActiveCategories(ctx context.Context) ([]string, error) {
	names, err := uc.catalogRepo.ListActiveCategories(ctx)
	if err != nil {
		return nil, uc.storeErr("ListActiveCategories", err)
	}
	return nonNil(names), nil
}

// ListProducts todos los productos ordenados por Item.
func (uc *UseCase) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, uc.storeErr("ListProducts", err)
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ProductResponse{
			ProductID:    p.ID,
			Item:         p.Item,
			SeriesName:   p.SeriesName,
			CategoryName: p.CategoryName,
		})
	}
	return out, nil
}

// storeErr traduce errores al borde del caso de uso: los de dominio pasan tal cual,
// el resto se registra con detalle y se devuelve como ErrStoreUnavailable.
func (uc *UseCase) storeErr(op string, err error) error {
	for _, known := range []error{domain.ErrInvalidInput, domain.ErrNotFound, domain.ErrConflict} {
		if errors.Is(err, known) {
			return known
		}
	}
	uc.log.Error().Err(err).Str("op", op).Msg("fallo del almacén de datos")
	return domain.ErrStoreUnavailable
}

func toStockRowResponse(v domcatalog.VisibleRow) dto.StockRowResponse {
	out := dto.StockRowResponse{
		ProductID:    v.ProductID,
		Item:         v.Item,
		SeriesName:   v.SeriesName,
		CategoryName: v.CategoryName,
		Availability: v.Availability,
	}
	if q := v.Quantities; q != nil {
		jaipur, kolkata, total := q.Jaipur, q.Kolkata, q.Total
		out.JaipurQty = &jaipur
		out.KolkataQty = &kolkata
		out.TotalQty = &total
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
