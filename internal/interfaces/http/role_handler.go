package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/usecase"
)

// RoleHandler maneja las peticiones HTTP de roles. Solo ROLE_ADMIN.
type RoleHandler struct {
	uc *usecase.RoleUseCase
}

// NewRoleHandler construye el handler.
func NewRoleHandler(uc *usecase.RoleUseCase) *RoleHandler {
	return &RoleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear rol
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRoleRequest  true  "Datos del rol"
// @Success      201   {object}  dto.Response{data=dto.RoleResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "PERMISSIONS_NOT_FOUND"
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/roles [post]
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRoleRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "/api/roles/"+out.ID, "rol creado", out)
}

// GetByID godoc
// @Summary      Obtener rol por ID
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del rol"
// @Success      200  {object}  dto.Response{data=dto.RoleResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [get]
func (h *RoleHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "rol encontrado", out)
}

// List godoc
// @Summary      Listar roles
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Param        name    query  string  false  "Nombre (coincidencia parcial)"
// @Param        active  query  bool    false  "Solo activos / inactivos"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.Response{data=dto.ListResponse[dto.RoleResponse]}
// @Router       /api/roles [get]
func (h *RoleHandler) List(c *fiber.Ctx) error {
	f, err := queryNameFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "roles", out)
}

// Update godoc
// @Summary      Actualizar rol
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del rol"
// @Param        body  body  dto.UpdateRoleRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Response{data=dto.RoleResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [put]
func (h *RoleHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateRoleRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "rol actualizado", out)
}

// Delete godoc
// @Summary      Eliminar rol
// @Tags         roles
// @Security     Bearer
// @Param        id   path  string  true  "ID del rol"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roles/{id} [delete]
func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return respondNoContent(c)
}
