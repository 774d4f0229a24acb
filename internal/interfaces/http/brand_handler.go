package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/usecase"
)

// BrandHandler maneja las peticiones HTTP de marcas.
type BrandHandler struct {
	uc *usecase.BrandUseCase
}

// NewBrandHandler construye el handler.
func NewBrandHandler(uc *usecase.BrandUseCase) *BrandHandler {
	return &BrandHandler{uc: uc}
}

// Create godoc
// @Summary      Crear marca
// @Tags         brands
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCatalogRequest  true  "Datos de la marca"
// @Success      201   {object}  dto.Response{data=dto.BrandResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "nombre duplicado"
// @Router       /api/brands [post]
func (h *BrandHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCatalogRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "/api/brands/"+out.ID, "marca creada", out)
}

// GetByID godoc
// @Summary      Obtener marca por ID
// @Tags         brands
// @Produce      json
// @Param        id   path  string  true  "ID de la marca"
// @Success      200  {object}  dto.Response{data=dto.BrandResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [get]
func (h *BrandHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "marca encontrada", out)
}

// List godoc
// @Summary      Listar marcas
// @Tags         brands
// @Produce      json
// @Param        name    query  string  false  "Nombre (coincidencia parcial)"
// @Param        active  query  bool    false  "Solo activos / inactivos"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.Response{data=dto.ListResponse[dto.BrandResponse]}
// @Router       /api/brands [get]
func (h *BrandHandler) List(c *fiber.Ctx) error {
	f, err := queryNameFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "marcas", out)
}

// Update godoc
// @Summary      Actualizar marca
// @Tags         brands
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la marca"
// @Param        body  body  dto.UpdateCatalogRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Response{data=dto.BrandResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [put]
func (h *BrandHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateCatalogRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "marca actualizada", out)
}

// Delete godoc
// @Summary      Eliminar marca
// @Tags         brands
// @Security     Bearer
// @Param        id   path  string  true  "ID de la marca"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brands/{id} [delete]
func (h *BrandHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return respondNoContent(c)
}
