package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/security"
	"github.com/jhoicas/stock-api/pkg/jwt"
)

// LocalPrincipal clave de c.Locals donde queda el principal autenticado.
const LocalPrincipal = "principal"

// TokenDecoder valida un token y devuelve sus claims.
type TokenDecoder interface {
	Decode(token string) (jwt.Claims, error)
}

// PrincipalLoader recarga el principal desde el almacén de usuarios.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, username string) (*security.Principal, error)
}

// AuthFilter autentica la petición si trae "Authorization: Bearer <token>".
// Sin cabecera (o con otro esquema) la petición sigue como anónima y decide la política.
// Un token inválido o cualquier fallo al recargar el usuario cortan con 401 INVALID_TOKEN.
func AuthFilter(tokens TokenDecoder, loader PrincipalLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Next()
		}
		claims, err := tokens.Decode(raw)
		if err != nil {
			return rejectToken(c)
		}
		p, err := loader.LoadPrincipal(c.UserContext(), claims.Subject)
		if err != nil {
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				log.Warn().Err(err).Str("username", claims.Subject).Msg("no se pudo recargar el principal")
			}
			return rejectToken(c)
		}
		c.Locals(LocalPrincipal, p)
		c.SetUserContext(security.WithPrincipal(c.UserContext(), p))
		return c.Next()
	}
}

func rejectToken(c *fiber.Ctx) error {
	return writeError(c, &apiError{Status: fiber.StatusUnauthorized, Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetPrincipal devuelve el principal de la petición o nil si es anónima.
func GetPrincipal(c *fiber.Ctx) *security.Principal {
	p, _ := c.Locals(LocalPrincipal).(*security.Principal)
	return p
}
