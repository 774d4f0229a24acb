package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/application/usecase"
)

// PermissionHandler maneja las peticiones HTTP de permisos. Solo ROLE_ADMIN.
type PermissionHandler struct {
	uc *usecase.PermissionUseCase
}

// NewPermissionHandler construye el handler.
func NewPermissionHandler(uc *usecase.PermissionUseCase) *PermissionHandler {
	return &PermissionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear permiso
// @Tags         permissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePermissionRequest  true  "Datos del permiso"
// @Success      201   {object}  dto.Response{data=dto.PermissionResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/permissions [post]
func (h *PermissionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePermissionRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "/api/permissions/"+out.ID, "permiso creado", out)
}

// GetByID godoc
// @Summary      Obtener permiso por ID
// @Tags         permissions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del permiso"
// @Success      200  {object}  dto.Response{data=dto.PermissionResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/permissions/{id} [get]
func (h *PermissionHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "permiso encontrado", out)
}

// List godoc
// @Summary      Listar permisos
// @Tags         permissions
// @Security     Bearer
// @Produce      json
// @Param        name    query  string  false  "Nombre (coincidencia parcial)"
// @Param        active  query  bool    false  "Solo activos / inactivos"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.Response{data=dto.ListResponse[dto.PermissionResponse]}
// @Router       /api/permissions [get]
func (h *PermissionHandler) List(c *fiber.Ctx) error {
	f, err := queryNameFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "permisos", out)
}

// Update godoc
// @Summary      Actualizar permiso
// @Tags         permissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del permiso"
// @Param        body  body  dto.UpdatePermissionRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Response{data=dto.PermissionResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/permissions/{id} [put]
func (h *PermissionHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdatePermissionRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "permiso actualizado", out)
}

// Delete godoc
// @Summary      Eliminar permiso
// @Tags         permissions
// @Security     Bearer
// @Param        id   path  string  true  "ID del permiso"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/permissions/{id} [delete]
func (h *PermissionHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return respondNoContent(c)
}
