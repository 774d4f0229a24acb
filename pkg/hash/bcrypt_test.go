package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashYVerify(t *testing.T) {
	h, err := Hash("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", h)

	assert.True(t, Verify(h, "admin123"))
	assert.False(t, Verify(h, "otra"))
	assert.False(t, Verify("", "admin123"))
}

func TestHash_Vacio(t *testing.T) {
	_, err := Hash("")
	assert.Error(t, err)
}
