package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/report"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// SaleHandler maneja ventas y su reporte PDF.
type SaleHandler struct {
	uc      *usecase.SaleUseCase
	reports *report.ReportUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *usecase.SaleUseCase, reports *report.ReportUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, reports: reports}
}

// Create godoc
// @Summary      Registrar venta
// @Description  El precio unitario se toma del producto y el total se calcula en el servidor.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Líneas de la venta"
// @Success      201   {object}  dto.Response{data=dto.SaleResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "producto inexistente"
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "/api/sales/"+out.ID, "venta registrada", out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.Response{data=dto.SaleResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "venta encontrada", out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from     query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to       query  string  false  "Hasta (RFC3339 o YYYY-MM-DD, inclusivo)"
// @Param        user_id  query  string  false  "Usuario que registró la venta"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.Response{data=dto.ListResponse[dto.SaleResponse]}
// @Failure      400  {object}  dto.ErrorResponse  "INVALID_DATE_RANGE"
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	page, err := queryPage(c)
	if err != nil {
		return respondError(c, err)
	}
	from, to, err := queryDateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	userID, err := queryUUID(c, "user_id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), repository.SaleFilter{
		From:   from,
		To:     to,
		UserID: userID,
		Page:   page,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "ventas", out)
}

// Update godoc
// @Summary      Actualizar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Response{data=dto.SaleResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateSaleRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "venta actualizada", out)
}

// Delete godoc
// @Summary      Eliminar venta
// @Tags         sales
// @Security     Bearer
// @Param        id   path  string  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return respondNoContent(c)
}

// Report godoc
// @Summary      Reporte de ventas en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (RFC3339 o YYYY-MM-DD, inclusivo)"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse  "REPORT_GENERATION_FAILED"
// @Router       /api/sales/report [get]
func (h *SaleHandler) Report(c *fiber.Ctx) error {
	from, to, err := queryDateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	pdf, err := h.reports.SalesReport(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`inline; filename="ventas-%s.pdf"`, time.Now().UTC().Format("20060102")))
	return c.Send(pdf)
}
