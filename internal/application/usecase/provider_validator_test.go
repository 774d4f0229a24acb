package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/application/usecase"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository/repotest"
)

func seedProvider(t *testing.T, repo *repotest.Providers, p entity.Provider) {
	t.Helper()
	p.Active = true
	require.NoError(t, repo.Create(context.Background(), &p))
}

func TestProviderValidator_SinColisiones(t *testing.T) {
	repo := &repotest.Providers{}
	seedProvider(t, repo, entity.Provider{ID: "p1", RUC: "20111111111", DNI: "11111111", Email: "a@x.com"})

	err := usecase.NewProviderValidator(repo).Validate(context.Background(), "20222222222", "22222222", "b@x.com", "")
	assert.NoError(t, err)
	assert.Equal(t, 3, repo.Calls, "las tres consultas se ejecutan siempre")
}

func TestProviderValidator_CamposEnOrdenFijo(t *testing.T) {
	repo := &repotest.Providers{}
	seedProvider(t, repo, entity.Provider{ID: "p1", RUC: "12345678901", Email: "dup@x.com"})
	seedProvider(t, repo, entity.Provider{ID: "p2", RUC: "20999999999", DNI: "87654321"})

	err := usecase.NewProviderValidator(repo).Validate(context.Background(), "12345678901", "87654321", "dup@x.com", "")

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{domain.FieldRUC, domain.FieldDNI, domain.FieldEmail}, conflict.Fields)
	assert.Equal(t, "ya existe un proveedor con el mismo RUC, DNI, email", err.Error())
	assert.ErrorIs(t, err, domain.ErrProviderAlreadyExists)
}

func TestProviderValidator_SoloEmail(t *testing.T) {
	repo := &repotest.Providers{}
	seedProvider(t, repo, entity.Provider{ID: "p1", RUC: "20111111111", Email: "dup@x.com"})

	err := usecase.NewProviderValidator(repo).Validate(context.Background(), "20222222222", "", "DUP@x.com", "")

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{domain.FieldEmail}, conflict.Fields)
	assert.Equal(t, 2, repo.Calls, "DNI vacío no se consulta")
}

func TestProviderValidator_ExcluyeAlPropio(t *testing.T) {
	repo := &repotest.Providers{}
	seedProvider(t, repo, entity.Provider{ID: "p1", RUC: "12345678901", DNI: "11111111", Email: "a@x.com"})

	err := usecase.NewProviderValidator(repo).Validate(context.Background(), "12345678901", "11111111", "a@x.com", "p1")
	assert.NoError(t, err)
}

func TestProviderValidator_IgnoraInactivos(t *testing.T) {
	repo := &repotest.Providers{}
	require.NoError(t, repo.Create(context.Background(), &entity.Provider{ID: "p1", RUC: "12345678901", Active: false}))

	err := usecase.NewProviderValidator(repo).Validate(context.Background(), "12345678901", "", "", "")
	assert.NoError(t, err)
}

type failingDNI struct {
	*repotest.Providers
	err error
}

func (f failingDNI) ExistsByDNI(context.Context, string, string) (bool, error) {
	return false, f.err
}

func TestProviderValidator_ErrorDeConsultaSePropaga(t *testing.T) {
	boom := errors.New("conexión perdida")
	repo := failingDNI{Providers: &repotest.Providers{}, err: boom}
	seedProvider(t, repo.Providers, entity.Provider{ID: "p1", RUC: "12345678901"})

	err := usecase.NewProviderValidator(repo).Validate(context.Background(), "12345678901", "11111111", "a@x.com", "")
	assert.ErrorIs(t, err, boom)
	var conflict *domain.ConflictError
	assert.False(t, errors.As(err, &conflict))
}

// slowEmail falla en DNI y retrasa la consulta de email hasta después del fallo.
type slowEmail struct {
	*repotest.Providers
	dniDone chan struct{}
	ctxErr  error
}

func (s *slowEmail) ExistsByDNI(context.Context, string, string) (bool, error) {
	close(s.dniDone)
	return false, errors.New("conexión perdida")
}

func (s *slowEmail) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	<-s.dniDone
	time.Sleep(20 * time.Millisecond)
	s.ctxErr = ctx.Err()
	return s.Providers.ExistsByEmail(ctx, email, excludeID)
}

func TestProviderValidator_UnFalloNoCancelaLasDemas(t *testing.T) {
	repo := &slowEmail{Providers: &repotest.Providers{}, dniDone: make(chan struct{})}

	err := usecase.NewProviderValidator(repo).Validate(context.Background(), "12345678901", "11111111", "a@x.com", "")
	require.Error(t, err)
	assert.NoError(t, repo.ctxErr, "la consulta de email termina con su contexto vigente")
	assert.Equal(t, 2, repo.Calls, "RUC y email llegan al repositorio")
}
