package http

import (
	"github.com/gofiber/fiber/v2"
	appcatalog "github.com/karnifashions/catalog-api/internal/application/catalog"
	"github.com/karnifashions/catalog-api/internal/application/report"
)

// ProductHandler maneja productos y stock (protegido).
type ProductHandler struct {
	uc     *appcatalog.UseCase
	report *report.StockReportUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *appcatalog.UseCase, reportUC *report.StockReportUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, report: reportUC}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ProductResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListProducts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stock godoc
// @Summary      Stock visible para el usuario
// @Description  Personal: cantidades por bodega. Cliente Premium: solo disponibilidad. Cliente Basic: lista vacía.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockRowResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *ProductHandler) Stock(c *fiber.Ctx) error {
	out, err := h.uc.GetStockForRole(c.UserContext(), GetRole(c), GetCustomerType(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StockReport godoc
// @Summary      Reporte PDF de stock
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock/report.pdf [get]
func (h *ProductHandler) StockReport(c *fiber.Ctx) error {
	pdf, filename, err := h.report.DownloadStockReport(c.UserContext(), GetRole(c), GetCustomerType(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
