package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/stock-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "stock-api-test"
)

func newCodec(t *testing.T, now func() time.Time) *pkgjwt.Codec {
	t.Helper()
	c, err := pkgjwt.NewCodec(testSecret, testIssuer, time.Hour, pkgjwt.WithClock(now))
	require.NoError(t, err)
	return c
}

func TestCodec_IssueYDecode(t *testing.T) {
	fixed := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	c := newCodec(t, func() time.Time { return fixed })

	tok, err := c.Issue("admin")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := c.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.True(t, claims.IssuedAt.Equal(fixed))
	assert.True(t, claims.ExpiresAt.Equal(fixed.Add(time.Hour)))
}

func TestCodec_TokenExpirado_RetornaError(t *testing.T) {
	issued := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	now := issued
	c := newCodec(t, func() time.Time { return now })

	tok, err := c.Issue("admin")
	require.NoError(t, err)

	now = issued.Add(2 * time.Hour)
	_, err = c.Decode(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestCodec_ExpiraJustoEnElLimite(t *testing.T) {
	issued := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	now := issued
	c := newCodec(t, func() time.Time { return now })

	tok, err := c.Issue("admin")
	require.NoError(t, err)

	now = issued.Add(time.Hour)
	_, err = c.Decode(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken, "exp == ahora debe considerarse expirado")
}

func TestCodec_SecretIncorrecto_RetornaError(t *testing.T) {
	c := newCodec(t, time.Now)
	tok, err := c.Issue("admin")
	require.NoError(t, err)

	other, err := pkgjwt.NewCodec("otro-secret-completamente-distinto", testIssuer, time.Hour)
	require.NoError(t, err)

	_, err = other.Decode(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestCodec_TokenMalformado(t *testing.T) {
	c := newCodec(t, time.Now)
	_, err := c.Decode("token.invalido.aqui")
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidToken)
}

func TestNewCodec_SecretVacio(t *testing.T) {
	_, err := pkgjwt.NewCodec("", testIssuer, time.Hour)
	assert.Error(t, err)
}
