// Package seed carga los datos mínimos de seguridad: permisos ACCION_RECURSO,
// ROLE_ADMIN, ROLE_USER y la cuenta de administrador.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/pkg/hash"
)

// Config datos de la cuenta de administrador.
type Config struct {
	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

// Result lo que se creó en esta ejecución.
type Result struct {
	PermissionsCreated int
	RolesCreated       int
	RolesUpdated       int
	AdminCreated       bool
}

// Seeder es idempotente: lo existente se conserva, salvo los permisos de los roles
// base que se alinean con el catálogo actual.
type Seeder struct {
	perms repository.PermissionRepository
	roles repository.RoleRepository
	users repository.UserRepository
	now   func() time.Time
}

// New construye el seeder.
func New(perms repository.PermissionRepository, roles repository.RoleRepository, users repository.UserRepository) *Seeder {
	return &Seeder{perms: perms, roles: roles, users: users, now: time.Now}
}

// Run ejecuta la carga completa.
func (s *Seeder) Run(ctx context.Context, cfg Config) (Result, error) {
	var res Result
	if strings.TrimSpace(cfg.AdminUsername) == "" || cfg.AdminPassword == "" {
		return res, fmt.Errorf("seed: usuario y password del administrador son requeridos: %w", domain.ErrInvalidInput)
	}

	all := make([]entity.Permission, 0, len(entity.Resources)*len(entity.Actions))
	var read []entity.Permission
	for _, resource := range entity.Resources {
		for _, action := range entity.Actions {
			p, created, err := s.ensurePermission(ctx, entity.PermissionName(action, resource))
			if err != nil {
				return res, err
			}
			if created {
				res.PermissionsCreated++
			}
			all = append(all, *p)
			if action == entity.ActionRead {
				read = append(read, *p)
			}
		}
	}

	admin, err := s.ensureRole(ctx, entity.RoleAdmin, all, &res)
	if err != nil {
		return res, err
	}
	if _, err := s.ensureRole(ctx, entity.RoleUser, read, &res); err != nil {
		return res, err
	}

	existing, err := s.users.GetByUsername(ctx, cfg.AdminUsername)
	if err != nil {
		return res, err
	}
	if existing != nil {
		return res, nil
	}
	pwd, err := hash.Hash(cfg.AdminPassword)
	if err != nil {
		return res, err
	}
	now := s.now()
	if err := s.users.Create(ctx, &entity.User{
		ID:           uuid.New().String(),
		Name:         "Administrador",
		Username:     cfg.AdminUsername,
		PasswordHash: pwd,
		Email:        cfg.AdminEmail,
		Roles:        []entity.Role{*admin},
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return res, err
	}
	res.AdminCreated = true
	return res, nil
}

func (s *Seeder) ensurePermission(ctx context.Context, name string) (*entity.Permission, bool, error) {
	p, err := s.perms.GetByName(ctx, name)
	if err != nil || p != nil {
		return p, false, err
	}
	now := s.now()
	p = &entity.Permission{ID: uuid.New().String(), Name: name, Active: true, CreatedAt: now, UpdatedAt: now}
	if err := s.perms.Create(ctx, p); err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func (s *Seeder) ensureRole(ctx context.Context, name string, perms []entity.Permission, res *Result) (*entity.Role, error) {
	r, err := s.roles.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if r == nil {
		r = &entity.Role{ID: uuid.New().String(), Name: name, Permissions: perms, Active: true, CreatedAt: now, UpdatedAt: now}
		if err := s.roles.Create(ctx, r); err != nil {
			return nil, err
		}
		res.RolesCreated++
		return r, nil
	}
	if samePermissions(r.Permissions, perms) {
		return r, nil
	}
	r.Permissions = perms
	r.UpdatedAt = now
	if err := s.roles.Update(ctx, r); err != nil {
		return nil, err
	}
	res.RolesUpdated++
	return r, nil
}

func samePermissions(a, b []entity.Permission) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Active != b[i].Active {
			return false
		}
	}
	return true
}
