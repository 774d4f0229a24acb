package usecase

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var upper = cases.Upper(language.Und)

// normalizeConstName "crear producto" → "CREAR_PRODUCTO".
func normalizeConstName(s string) string {
	s = upper.String(strings.TrimSpace(s))
	s = strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '.'
	}), "_")
	return s
}

// NormalizeRoleName aplica la convención ROLE_ + MAYÚSCULAS.
func NormalizeRoleName(s string) string {
	n := normalizeConstName(s)
	if n == "" || strings.HasPrefix(n, entity.RolePrefix) {
		return n
	}
	return entity.RolePrefix + n
}

// NormalizePermissionName aplica la convención ACCION_RECURSO en mayúsculas.
func NormalizePermissionName(s string) string {
	return normalizeConstName(s)
}

func validateDateRange(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

func toList[E any, R any](list []*E, total int, p repository.Page, mapFn func(*E) *R) *dto.ListResponse[R] {
	p = p.Normalize()
	items := make([]R, 0, len(list))
	for _, e := range list {
		items = append(items, *mapFn(e))
	}
	return &dto.ListResponse[R]{
		Items: items,
		Page:  dto.PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total},
	}
}

// dedupe conserva el primer orden de aparición.
func dedupe(names []string, norm func(string) string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = norm(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
