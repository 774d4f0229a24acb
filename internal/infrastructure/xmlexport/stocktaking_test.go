package xmlexport

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/application/report"
)

func TestExportStocktaking_EstructuraYDigest(t *testing.T) {
	e := &report.StocktakingExport{
		GeneratedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Lines: []report.StocktakingLine{{
			ID: "st-1", ProductID: "prod-1", ProductCode: "A-1", ProductName: "Café & Té",
			UserID: "u-1", SystemQuantity: 10, CountedQuantity: 7, Difference: -3,
			Date: time.Date(2026, 2, 28, 18, 30, 0, 0, time.UTC),
		}},
	}

	doc, digest, err := NewStocktakingExporter().ExportStocktaking(context.Background(), e)
	require.NoError(t, err)
	assert.Contains(t, digest, "SHA-256=")

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(doc))
	root := parsed.Root()
	require.NotNil(t, root)
	assert.Equal(t, "stocktakingExport", root.Tag)
	assert.Equal(t, "1", root.SelectAttrValue("count", ""))

	st := root.FindElement("stocktaking")
	require.NotNil(t, st)
	assert.Equal(t, "Café & Té", st.FindElement("product").Text())
	assert.Equal(t, "-3", st.FindElement("difference").Text())

	again, err := Digest(doc)
	require.NoError(t, err)
	assert.Equal(t, digest, again)
}

func TestDigest_IndependienteDelOrdenDeAtributos(t *testing.T) {
	a, err := Digest([]byte(`<r b="2" a="1"><x/></r>`))
	require.NoError(t, err)
	b, err := Digest([]byte(`<r a="1"  b="2"><x></x></r>`))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDigest_XMLInvalido(t *testing.T) {
	_, err := Digest([]byte(`<r><x></r>`))
	assert.Error(t, err)
}
