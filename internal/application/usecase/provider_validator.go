package usecase

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// ProviderValidator comprueba que RUC, DNI y email no estén en uso por otro proveedor activo.
type ProviderValidator struct {
	repo repository.ProviderRepository
}

// NewProviderValidator construye el validador.
func NewProviderValidator(repo repository.ProviderRepository) *ProviderValidator {
	return &ProviderValidator{repo: repo}
}

// Validate lanza las tres consultas en paralelo y decide cuando terminan todas.
// Valores vacíos no se consultan. excludeID permite ignorar al propio proveedor en una
// actualización. Si hay colisiones devuelve *domain.ConflictError con los campos en orden
// RUC, DNI, email; un error de consulta se devuelve tal cual.
func (v *ProviderValidator) Validate(ctx context.Context, ruc, dni, email, excludeID string) error {
	var rucTaken, dniTaken, emailTaken bool

	// Sin contexto derivado: un fallo no cancela las otras consultas.
	var g errgroup.Group
	if ruc = strings.TrimSpace(ruc); ruc != "" {
		g.Go(func() (err error) {
			rucTaken, err = v.repo.ExistsByRUC(ctx, ruc, excludeID)
			return err
		})
	}
	if dni = strings.TrimSpace(dni); dni != "" {
		g.Go(func() (err error) {
			dniTaken, err = v.repo.ExistsByDNI(ctx, dni, excludeID)
			return err
		})
	}
	if email = strings.TrimSpace(email); email != "" {
		g.Go(func() (err error) {
			emailTaken, err = v.repo.ExistsByEmail(ctx, email, excludeID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var fields []string
	if rucTaken {
		fields = append(fields, domain.FieldRUC)
	}
	if dniTaken {
		fields = append(fields, domain.FieldDNI)
	}
	if emailTaken {
		fields = append(fields, domain.FieldEmail)
	}
	if len(fields) > 0 {
		return &domain.ConflictError{Fields: fields}
	}
	return nil
}
