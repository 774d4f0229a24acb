package postgres

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/domain/repository"
)

func TestNameConds(t *testing.T) {
	active := true
	sql, args, err := psql.Select("id").From("categories").
		Where(nameConds("name", repository.NameFilter{Name: "beb", Active: &active})).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM categories WHERE (name ILIKE $1 AND active = $2)", sql)
	assert.Equal(t, []any{"%beb%", true}, args)
}

func TestActiveProviderExcept(t *testing.T) {
	sql, args, err := activeProviderExcept(sq.Eq{"ruc": "12345678901"}, "p-1").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(ruc = ? AND active = ? AND id <> ?)", sql)
	assert.Equal(t, []any{"12345678901", true, "p-1"}, args)

	sql, _, err = activeProviderExcept(sq.Eq{"dni": "11111111"}, "").ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "id <>")
}
