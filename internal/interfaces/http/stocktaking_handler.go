package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/report"
	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// StocktakingHandler maneja conteos físicos y su exportación XML.
type StocktakingHandler struct {
	uc      *usecase.StocktakingUseCase
	reports *report.ReportUseCase
}

// NewStocktakingHandler construye el handler.
func NewStocktakingHandler(uc *usecase.StocktakingUseCase, reports *report.ReportUseCase) *StocktakingHandler {
	return &StocktakingHandler{uc: uc, reports: reports}
}

// Create godoc
// @Summary      Registrar conteo físico
// @Description  La cantidad del sistema se toma del stock actual del producto.
// @Tags         stocktaking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStocktakingRequest  true  "Conteo"
// @Success      201   {object}  dto.Response{data=dto.StocktakingResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "producto inexistente"
// @Router       /api/stocktaking [post]
func (h *StocktakingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStocktakingRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "/api/stocktaking/"+out.ID, "conteo registrado", out)
}

// GetByID godoc
// @Summary      Obtener conteo por ID
// @Tags         stocktaking
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del conteo"
// @Success      200  {object}  dto.Response{data=dto.StocktakingResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocktaking/{id} [get]
func (h *StocktakingHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "conteo encontrado", out)
}

// List godoc
// @Summary      Listar conteos físicos
// @Tags         stocktaking
// @Security     Bearer
// @Produce      json
// @Param        from        query  string  false  "Desde"
// @Param        to          query  string  false  "Hasta (inclusivo)"
// @Param        product_id  query  string  false  "Producto"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.Response{data=dto.ListResponse[dto.StocktakingResponse]}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stocktaking [get]
func (h *StocktakingHandler) List(c *fiber.Ctx) error {
	page, err := queryPage(c)
	if err != nil {
		return respondError(c, err)
	}
	from, to, err := queryDateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	productID, err := queryUUID(c, "product_id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), repository.StocktakingFilter{
		From:      from,
		To:        to,
		ProductID: productID,
		Page:      page,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "conteos", out)
}

// Update godoc
// @Summary      Corregir conteo
// @Tags         stocktaking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del conteo"
// @Param        body  body  dto.UpdateStocktakingRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Response{data=dto.StocktakingResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stocktaking/{id} [put]
func (h *StocktakingHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateStocktakingRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "conteo actualizado", out)
}

// Delete godoc
// @Summary      Eliminar conteo
// @Tags         stocktaking
// @Security     Bearer
// @Param        id   path  string  true  "ID del conteo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocktaking/{id} [delete]
func (h *StocktakingHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return respondNoContent(c)
}

// Export godoc
// @Summary      Exportar conteos en XML
// @Description  La cabecera Digest lleva el SHA-256 de la forma canónica (C14N) del documento.
// @Tags         stocktaking
// @Security     Bearer
// @Produce      application/xml
// @Param        from        query  string  false  "Desde"
// @Param        to          query  string  false  "Hasta (inclusivo)"
// @Param        product_id  query  string  false  "Producto"
// @Success      200  {string}  string  "documento XML"
// @Header       200  {string}  Digest  "SHA-256=<base64>"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse  "REPORT_GENERATION_FAILED"
// @Router       /api/stocktaking/export [get]
func (h *StocktakingHandler) Export(c *fiber.Ctx) error {
	from, to, err := queryDateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	productID, err := queryUUID(c, "product_id")
	if err != nil {
		return respondError(c, err)
	}
	doc, digest, err := h.reports.StocktakingExport(c.UserContext(), from, to, productID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set("Digest", digest)
	return c.Send(doc)
}
