// Package repotest ofrece implementaciones en memoria de los puertos de repository
// para tests de casos de uso y handlers HTTP.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var (
	_ repository.UserRepository        = (*Users)(nil)
	_ repository.RoleRepository        = (*Roles)(nil)
	_ repository.PermissionRepository  = (*Permissions)(nil)
	_ repository.CategoryRepository    = (*Categories)(nil)
	_ repository.BrandRepository       = (*Brands)(nil)
	_ repository.ProviderRepository    = (*Providers)(nil)
	_ repository.ProductRepository     = (*Products)(nil)
	_ repository.SaleRepository        = (*Sales)(nil)
	_ repository.StocktakingRepository = (*Stocktakings)(nil)
)

// store mapa id → documento protegido por mutex; guarda copias.
type store[T any] struct {
	mu   sync.RWMutex
	docs map[string]T
	ids  []string // orden de inserción
}

func (s *store[T]) put(id string, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs == nil {
		s.docs = make(map[string]T)
	}
	if _, ok := s.docs[id]; !ok {
		s.ids = append(s.ids, id)
	}
	s.docs[id] = v
}

func (s *store[T]) get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.docs[id]
	return v, ok
}

func (s *store[T]) del(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
}

func (s *store[T]) all() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.docs[id])
	}
	return out
}

func page[T any](list []T, p repository.Page) ([]T, int) {
	p = p.Normalize()
	total := len(list)
	if p.Offset >= total {
		return []T{}, total
	}
	end := p.Offset + p.Limit
	if end > total {
		end = total
	}
	return list[p.Offset:end], total
}

func matchName(name, filter string) bool {
	return filter == "" || strings.Contains(strings.ToLower(name), strings.ToLower(filter))
}

func matchActive(active bool, filter *bool) bool {
	return filter == nil || *filter == active
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

// ── Users ─────────────────────────────────────────────────────────────────────

// Users fake de repository.UserRepository.
type Users struct{ s store[entity.User] }

func (r *Users) Create(_ context.Context, u *entity.User) error { r.s.put(u.ID, *u); return nil }
func (r *Users) Update(_ context.Context, u *entity.User) error { r.s.put(u.ID, *u); return nil }

func (r *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := r.s.get(id); ok {
		return &u, nil
	}
	return nil, nil
}

func (r *Users) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.s.all() {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *Users) List(_ context.Context, f repository.NameFilter) ([]*entity.User, int, error) {
	var out []*entity.User
	for _, u := range r.s.all() {
		if matchName(u.Username, f.Name) && matchActive(u.Active, f.Active) {
			u := u
			out = append(out, &u)
		}
	}
	items, total := page(out, f.Page)
	return items, total, nil
}

func (r *Users) Deactivate(_ context.Context, id string) error {
	if u, ok := r.s.get(id); ok {
		u.Active = false
		r.s.put(id, u)
	}
	return nil
}

// ── Roles ─────────────────────────────────────────────────────────────────────

// Roles fake de repository.RoleRepository.
type Roles struct{ s store[entity.Role] }

func (r *Roles) Create(_ context.Context, v *entity.Role) error { r.s.put(v.ID, *v); return nil }
func (r *Roles) Update(_ context.Context, v *entity.Role) error { r.s.put(v.ID, *v); return nil }
func (r *Roles) Delete(_ context.Context, id string) error      { r.s.del(id); return nil }

func (r *Roles) GetByID(_ context.Context, id string) (*entity.Role, error) {
	if v, ok := r.s.get(id); ok {
		return &v, nil
	}
	return nil, nil
}

func (r *Roles) GetByName(_ context.Context, name string) (*entity.Role, error) {
	for _, v := range r.s.all() {
		if v.Name == name {
			return &v, nil
		}
	}
	return nil, nil
}

func (r *Roles) GetByNames(_ context.Context, names []string) ([]*entity.Role, error) {
	var out []*entity.Role
	for _, v := range r.s.all() {
		for _, n := range names {
			if v.Name == n {
				v := v
				out = append(out, &v)
				break
			}
		}
	}
	return out, nil
}

func (r *Roles) List(_ context.Context, f repository.NameFilter) ([]*entity.Role, int, error) {
	var out []*entity.Role
	for _, v := range r.s.all() {
		if matchName(v.Name, f.Name) && matchActive(v.Active, f.Active) {
			v := v
			out = append(out, &v)
		}
	}
	items, total := page(out, f.Page)
	return items, total, nil
}

// ── Permissions ───────────────────────────────────────────────────────────────

// Permissions fake de repository.PermissionRepository.
type Permissions struct{ s store[entity.Permission] }

func (r *Permissions) Create(_ context.Context, v *entity.Permission) error {
	r.s.put(v.ID, *v)
	return nil
}

func (r *Permissions) Update(_ context.Context, v *entity.Permission) error {
	r.s.put(v.ID, *v)
	return nil
}

func (r *Permissions) Delete(_ context.Context, id string) error { r.s.del(id); return nil }

func (r *Permissions) GetByID(_ context.Context, id string) (*entity.Permission, error) {
	if v, ok := r.s.get(id); ok {
		return &v, nil
	}
	return nil, nil
}

func (r *Permissions) GetByName(_ context.Context, name string) (*entity.Permission, error) {
	for _, v := range r.s.all() {
		if v.Name == name {
			return &v, nil
		}
	}
	return nil, nil
}

func (r *Permissions) GetByNames(_ context.Context, names []string) ([]*entity.Permission, error) {
	var out []*entity.Permission
	for _, v := range r.s.all() {
		for _, n := range names {
			if v.Name == n {
				v := v
				out = append(out, &v)
				break
			}
		}
	}
	return out, nil
}

func (r *Permissions) List(_ context.Context, f repository.NameFilter) ([]*entity.Permission, int, error) {
	var out []*entity.Permission
	for _, v := range r.s.all() {
		if matchName(v.Name, f.Name) && matchActive(v.Active, f.Active) {
			v := v
			out = append(out, &v)
		}
	}
	items, total := page(out, f.Page)
	return items, total, nil
}

// ── Categories / Brands ───────────────────────────────────────────────────────

// Categories fake de repository.CategoryRepository.
type Categories struct{ s store[entity.Category] }

func (r *Categories) Create(_ context.Context, v *entity.Category) error {
	r.s.put(v.ID, *v)
	return nil
}

func (r *Categories) Update(_ context.Context, v *entity.Category) error {
	r.s.put(v.ID, *v)
	return nil
}

func (r *Categories) Delete(_ context.Context, id string) error { r.s.del(id); return nil }

func (r *Categories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	if v, ok := r.s.get(id); ok {
		return &v, nil
	}
	return nil, nil
}

func (r *Categories) GetByName(_ context.Context, name string) (*entity.Category, error) {
	for _, v := range r.s.all() {
		if strings.EqualFold(v.Name, name) {
			return &v, nil
		}
	}
	return nil, nil
}

func (r *Categories) List(_ context.Context, f repository.NameFilter) ([]*entity.Category, int, error) {
	var out []*entity.Category
	for _, v := range r.s.all() {
		if matchName(v.Name, f.Name) && matchActive(v.Active, f.Active) {
			v := v
			out = append(out, &v)
		}
	}
	items, total := page(out, f.Page)
	return items, total, nil
}

// Brands fake de repository.BrandRepository.
type Brands struct{ s store[entity.Brand] }

func (r *Brands) Create(_ context.Context, v *entity.Brand) error { r.s.put(v.ID, *v); return nil }
func (r *Brands) Update(_ context.Context, v *entity.Brand) error { r.s.put(v.ID, *v); return nil }
func (r *Brands) Delete(_ context.Context, id string) error       { r.s.del(id); return nil }

func (r *Brands) GetByID(_ context.Context, id string) (*entity.Brand, error) {
	if v, ok := r.s.get(id); ok {
		return &v, nil
	}
	return nil, nil
}

func (r *Brands) GetByName(_ context.Context, name string) (*entity.Brand, error) {
	for _, v := range r.s.all() {
		if strings.EqualFold(v.Name, name) {
			return &v, nil
		}
	}
	return nil, nil
}

func (r *Brands) List(_ context.Context, f repository.NameFilter) ([]*entity.Brand, int, error) {
	var out []*entity.Brand
	for _, v := range r.s.all() {
		if matchName(v.Name, f.Name) && matchActive(v.Active, f.Active) {
			v := v
			out = append(out, &v)
		}
	}
	items, total := page(out, f.Page)
	return items, total, nil
}

// ── Providers ─────────────────────────────────────────────────────────────────

// Providers fake de repository.ProviderRepository. Calls cuenta las consultas Exists*.
type Providers struct {
	s     store[entity.Provider]
	mu    sync.Mutex
	Calls int
}

func (r *Providers) Create(_ context.Context, v *entity.Provider) error {
	r.s.put(v.ID, *v)
	return nil
}

func (r *Providers) Update(_ context.Context, v *entity.Provider) error {
	r.s.put(v.ID, *v)
	return nil
}

func (r *Providers) Delete(_ context.Context, id string) error { r.s.del(id); return nil }

func (r *Providers) GetByID(_ context.Context, id string) (*entity.Provider, error) {
	if v, ok := r.s.get(id); ok {
		return &v, nil
	}
	return nil, nil
}

func (r *Providers) List(_ context.Context, f repository.NameFilter) ([]*entity.Provider, int, error) {
	var out []*entity.Provider
	for _, v := range r.s.all() {
		if matchName(v.Name, f.Name) && matchActive(v.Active, f.Active) {
			v := v
			out = append(out, &v)
		}
	}
	items, total := page(out, f.Page)
	return items, total, nil
}

func (r *Providers) exists(match func(entity.Provider) bool, excludeID string) bool {
	r.mu.Lock()
	r.Calls++
	r.mu.Unlock()
	for _, v := range r.s.all() {
		if v.Active && v.ID != excludeID && match(v) {
			return true
		}
	}
	return false
}

func (r *Providers) ExistsByRUC(_ context.Context, ruc, excludeID string) (bool, error) {
	return r.exists(func(p entity.Provider) bool { return p.RUC == ruc }, excludeID), nil
}

func (r *Providers) ExistsByDNI(_ context.Context, dni, excludeID string) (bool, error) {
	return r.exists(func(p entity.Provider) bool { return p.DNI == dni }, excludeID), nil
}

func (r *Providers) ExistsByEmail(_ context.Context, email, excludeID string) (bool, error) {
	return r.exists(func(p entity.Provider) bool { return strings.EqualFold(p.Email, email) }, excludeID), nil
}

// ── Products ──────────────────────────────────────────────────────────────────

// Products fake de repository.ProductRepository.
type Products struct{ s store[entity.Product] }

func (r *Products) Create(_ context.Context, v *entity.Product) error {
	r.s.put(v.ID, *v)
	return nil
}

func (r *Products) Update(_ context.Context, v *entity.Product) error {
	r.s.put(v.ID, *v)
	return nil
}

func (r *Products) Delete(_ context.Context, id string) error { r.s.del(id); return nil }

func (r *Products) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if v, ok := r.s.get(id); ok {
		return &v, nil
	}
	return nil, nil
}

func (r *Products) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, v := range r.s.all() {
		if !matchName(v.Name, f.Name) || !matchActive(v.Active, f.Active) {
			continue
		}
		if (f.CategoryID != "" && v.CategoryID != f.CategoryID) ||
			(f.BrandID != "" && v.BrandID != f.BrandID) ||
			(f.ProviderID != "" && v.ProviderID != f.ProviderID) {
			continue
		}
		if (f.MinPrice != nil && v.Price.LessThan(*f.MinPrice)) ||
			(f.MaxPrice != nil && v.Price.GreaterThan(*f.MaxPrice)) {
			continue
		}
		v := v
		out = append(out, &v)
	}
	items, total := page(out, f.Page)
	return items, total, nil
}

// ── Sales ─────────────────────────────────────────────────────────────────────

// Sales fake de repository.SaleRepository.
type Sales struct{ s store[entity.Sale] }

func (r *Sales) Create(_ context.Context, v *entity.Sale) error { r.s.put(v.ID, *v); return nil }
func (r *Sales) Update(_ context.Context, v *entity.Sale) error { r.s.put(v.ID, *v); return nil }
func (r *Sales) Delete(_ context.Context, id string) error      { r.s.del(id); return nil }

func (r *Sales) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	if v, ok := r.s.get(id); ok {
		return &v, nil
	}
	return nil, nil
}

func (r *Sales) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, int, error) {
	var out []*entity.Sale
	for _, v := range r.s.all() {
		if !inRange(v.Date, f.From, f.To) || (f.UserID != "" && v.UserID != f.UserID) {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	items, total := page(out, f.Page)
	return items, total, nil
}

// ── Stocktakings ──────────────────────────────────────────────────────────────

// Stocktakings fake de repository.StocktakingRepository.
type Stocktakings struct{ s store[entity.Stocktaking] }

func (r *Stocktakings) Create(_ context.Context, v *entity.Stocktaking) error {
	r.s.put(v.ID, *v)
	return nil
}

func (r *Stocktakings) Update(_ context.Context, v *entity.Stocktaking) error {
	r.s.put(v.ID, *v)
	return nil
}

func (r *Stocktakings) Delete(_ context.Context, id string) error { r.s.del(id); return nil }

func (r *Stocktakings) GetByID(_ context.Context, id string) (*entity.Stocktaking, error) {
	if v, ok := r.s.get(id); ok {
		return &v, nil
	}
	return nil, nil
}

func (r *Stocktakings) List(_ context.Context, f repository.StocktakingFilter) ([]*entity.Stocktaking, int, error) {
	var out []*entity.Stocktaking
	for _, v := range r.s.all() {
		if !inRange(v.Date, f.From, f.To) || (f.ProductID != "" && v.ProductID != f.ProductID) {
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	items, total := page(out, f.Page)
	return items, total, nil
}
