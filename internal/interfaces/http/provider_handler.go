package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/usecase"
)

// ProviderHandler maneja las peticiones HTTP de proveedores.
// Altas y cambios pasan por el validador de unicidad (RUC, DNI, email).
type ProviderHandler struct {
	uc *usecase.ProviderUseCase
}

// NewProviderHandler construye el handler.
func NewProviderHandler(uc *usecase.ProviderUseCase) *ProviderHandler {
	return &ProviderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         providers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProviderRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.Response{data=dto.ProviderResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "PROVIDER_ALREADY_EXISTS con los campos en conflicto"
// @Router       /api/providers [post]
func (h *ProviderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProviderRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "/api/providers/"+out.ID, "proveedor creado", out)
}

// GetByID godoc
// @Summary      Obtener proveedor por ID
// @Tags         providers
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.Response{data=dto.ProviderResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/providers/{id} [get]
func (h *ProviderHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "proveedor encontrado", out)
}

// List godoc
// @Summary      Listar proveedores
// @Tags         providers
// @Produce      json
// @Param        name    query  string  false  "Nombre (coincidencia parcial)"
// @Param        active  query  bool    false  "Solo activos / inactivos"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.Response{data=dto.ListResponse[dto.ProviderResponse]}
// @Router       /api/providers [get]
func (h *ProviderHandler) List(c *fiber.Ctx) error {
	f, err := queryNameFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "proveedores", out)
}

// Update godoc
// @Summary      Actualizar proveedor
// @Tags         providers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proveedor"
// @Param        body  body  dto.UpdateProviderRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Response{data=dto.ProviderResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/providers/{id} [put]
func (h *ProviderHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateProviderRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "proveedor actualizado", out)
}

// Delete godoc
// @Summary      Eliminar proveedor
// @Tags         providers
// @Security     Bearer
// @Param        id   path  string  true  "ID del proveedor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/providers/{id} [delete]
func (h *ProviderHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return respondNoContent(c)
}
