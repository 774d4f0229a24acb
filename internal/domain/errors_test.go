package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConflictError(t *testing.T) {
	err := fmt.Errorf("crear proveedor: %w", &ConflictError{Fields: []string{FieldRUC, FieldEmail}})

	assert.True(t, errors.Is(err, ErrProviderAlreadyExists))
	assert.Contains(t, err.Error(), "RUC, email")

	var ce *ConflictError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{"RUC", "email"}, ce.Fields)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("x: %w", ErrSaleNotFound)))
	assert.True(t, IsNotFound(ErrPermissionsNotFound))
	assert.False(t, IsNotFound(ErrInvalidCredentials))
}
