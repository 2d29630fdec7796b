package http

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	appcatalog "github.com/karnifashions/catalog-api/internal/application/catalog"
	"github.com/karnifashions/catalog-api/internal/application/dto"
	domcatalog "github.com/karnifashions/catalog-api/internal/domain/catalog"
)

// CatalogHandler maneja imágenes, series y categorías.
type CatalogHandler struct {
	uc *appcatalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *appcatalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// GetImage godoc
// @Summary      Imagen de un producto
// @Tags         images
// @Produce      json
// @Param        productId  path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductImageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/image/{productId} [get]
func (h *CatalogHandler) GetImage(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("productId"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId debe ser un entero positivo"})
	}
	out, err := h.uc.GetImage(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ImagesBySeries godoc
// @Summary      Imágenes de una serie
// @Tags         images
// @Produce      json
// @Param        series  path  string  true  "Nombre de la serie"
// @Success      200  {array}   dto.ProductImageResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/images/series/{series} [get]
func (h *CatalogHandler) ImagesBySeries(c *fiber.Ctx) error {
	return h.imagesByPath(c, domcatalog.FilterSeries, "series")
}

// ImagesByCategory godoc
// @Summary      Imágenes de una categoría
// @Tags         images
// @Produce      json
// @Param        category  path  string  true  "Nombre de la categoría"
// @Success      200  {array}   dto.ProductImageResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/images/category/{category} [get]
func (h *CatalogHandler) ImagesByCategory(c *fiber.Ctx) error {
	return h.imagesByPath(c, domcatalog.FilterCategory, "category")
}

// ImagesBySeriesList godoc
// @Summary      Imágenes de varias series
// @Tags         images
// @Accept       json
// @Produce      json
// @Param        body  body  []string  true  "Nombres de series"
// @Success      200  {array}   dto.ProductImageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/images/series/list [post]
func (h *CatalogHandler) ImagesBySeriesList(c *fiber.Ctx) error {
	return h.imagesByBody(c, domcatalog.FilterSeries)
}

// ImagesByCategoryList godoc
// @Summary      Imágenes de varias categorías
// @Tags         images
// @Accept       json
// @Produce      json
// @Param        body  body  []string  true  "Nombres de categorías"
// @Success      200  {array}   dto.ProductImageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/images/category/list [post]
func (h *CatalogHandler) ImagesByCategoryList(c *fiber.Ctx) error {
	return h.imagesByBody(c, domcatalog.FilterCategory)
}

// SaveImage godoc
// @Summary      Guardar imagen de un producto
// @Description  Resuelve el producto por Item y guarda la URL normalizada (enlaces de Google Drive a descarga directa).
// @Tags         images
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveImageRequest  true  "item y url"
// @Success      200  {object}  dto.SaveImageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/images [post]
func (h *CatalogHandler) SaveImage(c *fiber.Ctx) error {
	var in dto.SaveImageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SaveProductImage(c.UserContext(), in.Item, in.URL)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListSeries godoc
// @Summary      Series activas
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   string
// @Router       /api/series [get]
func (h *CatalogHandler) ListSeries(c *fiber.Ctx) error {
	out, err := h.uc.ListActiveSeries(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListCategories godoc
// @Summary      Categorías activas
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   string
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.uc.ListActiveCategories(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) imagesByPath(c *fiber.Ctx, kind domcatalog.FilterKind, param string) error {
	// Fiber no decodifica %20 y similares en los params.
	value, err := unescapeParam(c.Params(param))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: param + " inválido"})
	}
	out, err := h.uc.GetProductImages(c.UserContext(), kind, []string{value})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) imagesByBody(c *fiber.Ctx, kind domcatalog.FilterKind) error {
	var values []string
	if err := c.BodyParser(&values); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se espera un arreglo JSON de nombres"})
	}
	if len(values) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la lista está vacía"})
	}
	out, err := h.uc.GetProductImages(c.UserContext(), kind, values)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func unescapeParam(raw string) (string, error) {
	return url.PathUnescape(raw)
}
