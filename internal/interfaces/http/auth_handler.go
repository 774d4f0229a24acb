package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/auth"
	"github.com/jhoicas/stock-api/internal/application/dto"
)

// AuthHandler maneja login, registro y la identidad actual.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, username, password, email"
// @Success      201   {object}  dto.Response{data=dto.UserResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	user, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "/api/users/"+user.ID, "usuario registrado", user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.Response{data=dto.LoginResponse}
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "autenticación exitosa", out)
}

// Me godoc
// @Summary      Identidad de la petición
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response{data=dto.MeResponse}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if p == nil {
		return writeError(c, &apiError{Status: fiber.StatusUnauthorized, Code: "UNAUTHORIZED", Message: errUnauthenticated.Error()})
	}
	roles := make([]string, 0, len(p.Roles))
	for _, r := range p.Roles {
		roles = append(roles, r.Name)
	}
	return respondOK(c, "identidad actual", dto.MeResponse{
		UserID:      p.UserID,
		Username:    p.Username,
		Roles:       roles,
		Authorities: p.Authorities(),
	})
}
