// Package security modela la identidad autenticada que viaja con cada petición.
package security

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// Principal identidad autenticada. No se persiste: se reconstruye en cada petición
// desde el almacén de credenciales.
type Principal struct {
	UserID       string
	Username     string
	PasswordHash string `json:"-"`
	Roles        []entity.Role
}

// NewPrincipal construye el principal a partir del usuario almacenado.
func NewPrincipal(u *entity.User) *Principal {
	roles := make([]entity.Role, len(u.Roles))
	copy(roles, u.Roles)
	return &Principal{
		UserID:       u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Roles:        roles,
	}
}

// Authorities devuelve nombres de rol ∪ nombres de permiso alcanzables desde esos roles,
// ordenados y sin duplicados. Roles o permisos inactivos no aportan autoridades.
// Se calcula en cada llamada; no hay caché.
func (p *Principal) Authorities() []string {
	if p == nil {
		return nil
	}
	set := make(map[string]struct{})
	for _, r := range p.Roles {
		if !r.Active {
			continue
		}
		set[r.Name] = struct{}{}
		for _, perm := range r.Permissions {
			if perm.Active {
				set[perm.Name] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// HasAnyAuthority informa si el principal tiene al menos una de las autoridades indicadas.
func (p *Principal) HasAnyAuthority(authorities ...string) bool {
	if p == nil {
		return false
	}
	granted := p.Authorities()
	for _, want := range authorities {
		i := sort.SearchStrings(granted, want)
		if i < len(granted) && granted[i] == want {
			return true
		}
	}
	return false
}

type principalKey struct{}

// WithPrincipal devuelve un contexto hijo que transporta el principal de la petición.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext devuelve el principal de la petición, si la petición está autenticada.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
