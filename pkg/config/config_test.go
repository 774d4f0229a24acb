package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsConSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, 25, cfg.DB.MaxConns)
}

func TestLoad_SinSecret_RetornaError(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "stock", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/stock?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
