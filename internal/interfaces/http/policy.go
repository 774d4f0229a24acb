package http

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/security"
)

// RoleAdmin rol con acceso total.
const RoleAdmin = "ROLE_ADMIN"

// Rule una fila de la tabla de autorización. Methods vacío aplica a cualquier método.
// Pattern es un glob con separador '/'; se compara contra la ruta terminada en '/',
// de modo que "/api/products/**" cubre la colección y sus elementos.
// Una regla no pública sin Authorities solo exige estar autenticado.
type Rule struct {
	Methods     []string
	Pattern     string
	Public      bool
	Authorities []string

	g glob.Glob
}

// errUnauthenticated la regla exige identidad y la petición es anónima.
var errUnauthenticated = errors.New("se requiere autenticación")

// Policy tabla ordenada de reglas; gana la primera que coincide.
// Sin coincidencia se exige autenticación.
type Policy struct {
	rules []Rule
}

// NewPolicy compila los patrones de las reglas.
func NewPolicy(rules []Rule) (*Policy, error) {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		g, err := glob.Compile(r.Pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("policy: patrón %q: %w", r.Pattern, err)
		}
		r.g = g
		out[i] = r
	}
	return &Policy{rules: out}, nil
}

// DefaultPolicy tabla de la API: lecturas de catálogo públicas, escrituras con permiso
// ACCION_RECURSO o ROLE_ADMIN, administración de identidades solo ROLE_ADMIN.
func DefaultPolicy() *Policy {
	p, err := NewPolicy(DefaultRules())
	if err != nil {
		panic(err)
	}
	return p
}

var (
	readMethods = []string{fiber.MethodGet, fiber.MethodHead}
	writeRules  = []struct {
		method string
		action string
	}{
		{fiber.MethodPost, entity.ActionCreate},
		{fiber.MethodPut, entity.ActionUpdate},
		{fiber.MethodDelete, entity.ActionDelete},
	}
)

// DefaultRules devuelve las reglas en orden de evaluación.
func DefaultRules() []Rule {
	rules := []Rule{
		{Methods: []string{fiber.MethodPost}, Pattern: "/api/auth/login/", Public: true},
		{Methods: []string{fiber.MethodPost}, Pattern: "/api/auth/register/", Public: true},
		{Pattern: "/api/auth/**"},
	}
	rules = append(rules, resourceRules("/api/products", entity.ResourceProduct, true)...)
	rules = append(rules, resourceRules("/api/categories", entity.ResourceCategory, true)...)
	rules = append(rules, resourceRules("/api/brands", entity.ResourceBrand, true)...)
	rules = append(rules, resourceRules("/api/providers", entity.ResourceProvider, true)...)
	rules = append(rules, resourceRules("/api/sales", entity.ResourceSale, false)...)
	rules = append(rules, resourceRules("/api/stocktaking", entity.ResourceStocktaking, false)...)
	return append(rules,
		Rule{Pattern: "/api/users/**", Authorities: []string{RoleAdmin}},
		Rule{Pattern: "/api/roles/**", Authorities: []string{RoleAdmin}},
		Rule{Pattern: "/api/permissions/**", Authorities: []string{RoleAdmin}},
	)
}

func resourceRules(base, resource string, publicRead bool) []Rule {
	pattern := base + "/**"
	read := Rule{Methods: readMethods, Pattern: pattern, Public: true}
	if !publicRead {
		read = Rule{Methods: readMethods, Pattern: pattern, Authorities: authorities(entity.ActionRead, resource)}
	}
	rules := []Rule{read}
	for _, w := range writeRules {
		rules = append(rules, Rule{
			Methods:     []string{w.method},
			Pattern:     pattern,
			Authorities: authorities(w.action, resource),
		})
	}
	return rules
}

func authorities(action, resource string) []string {
	return []string{RoleAdmin, entity.PermissionName(action, resource)}
}

// Match devuelve la primera regla que aplica a method y path.
// El router no distingue mayúsculas en la ruta, así que la política tampoco.
func (p *Policy) Match(method, path string) (Rule, bool) {
	key := strings.ToLower(strings.TrimSuffix(path, "/")) + "/"
	method = strings.ToUpper(method)
	for _, r := range p.rules {
		if len(r.Methods) > 0 && !slices.Contains(r.Methods, method) {
			continue
		}
		if r.g.Match(key) {
			return r, true
		}
	}
	return Rule{}, false
}

// Decide devuelve nil si la petición puede continuar, errUnauthenticated si falta identidad
// o domain.ErrAccessDenied (con la acción denegada) si falta autoridad.
func (p *Policy) Decide(method, path string, principal *security.Principal) error {
	r, ok := p.Match(method, path)
	if ok && r.Public {
		return nil
	}
	if principal == nil {
		return errUnauthenticated
	}
	if !ok || len(r.Authorities) == 0 {
		return nil
	}
	if principal.HasAnyAuthority(r.Authorities...) {
		return nil
	}
	return fmt.Errorf("%w: %s %s", domain.ErrAccessDenied, method, path)
}

// Middleware aplica la política después de AuthFilter.
func (p *Policy) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := p.Decide(c.Method(), c.Path(), GetPrincipal(c))
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, errUnauthenticated):
			return writeError(c, &apiError{Status: fiber.StatusUnauthorized, Code: "UNAUTHORIZED", Message: err.Error()})
		default:
			return respondError(c, err)
		}
	}
}
