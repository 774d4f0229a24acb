package report_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/application/report"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository/repotest"
)

type capturePDF struct {
	got *report.SalesReport
	err error
}

func (c *capturePDF) GenerateSalesReport(_ context.Context, r *report.SalesReport) ([]byte, error) {
	c.got = r
	if c.err != nil {
		return nil, c.err
	}
	return []byte("%PDF-"), nil
}

type captureXML struct {
	got *report.StocktakingExport
}

func (c *captureXML) ExportStocktaking(_ context.Context, e *report.StocktakingExport) ([]byte, string, error) {
	c.got = e
	return []byte("<stocktaking/>"), "SHA-256=abc", nil
}

func day(d int) time.Time { return time.Date(2026, 3, d, 10, 0, 0, 0, time.UTC) }

func TestSalesReport_RecorreTodasLasPaginas(t *testing.T) {
	sales := &repotest.Sales{}
	ctx := context.Background()
	for i := 0; i < 130; i++ {
		require.NoError(t, sales.Create(ctx, &entity.Sale{
			ID: fmt.Sprintf("s-%03d", i), Date: day(1 + i%20),
			Total: decimal.NewFromInt(2), Active: true,
		}))
	}
	pdf := &capturePDF{}
	uc := report.NewReportUseCase(sales, &repotest.Stocktakings{}, &repotest.Products{}, pdf, &captureXML{})

	out, err := uc.SalesReport(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-"), out)
	require.NotNil(t, pdf.got)
	assert.Len(t, pdf.got.Lines, 130)
	assert.True(t, pdf.got.Total.Equal(decimal.NewFromInt(260)))
}

func TestSalesReport_ErrorDelGenerador(t *testing.T) {
	pdf := &capturePDF{err: errors.New("fuente no encontrada")}
	uc := report.NewReportUseCase(&repotest.Sales{}, &repotest.Stocktakings{}, &repotest.Products{}, pdf, &captureXML{})

	_, err := uc.SalesReport(context.Background(), nil, nil)
	assert.ErrorIs(t, err, domain.ErrReportGeneration)
}

func TestSalesReport_RangoInvalido(t *testing.T) {
	uc := report.NewReportUseCase(&repotest.Sales{}, &repotest.Stocktakings{}, &repotest.Products{}, &capturePDF{}, &captureXML{})
	from, to := day(10), day(2)

	_, err := uc.SalesReport(context.Background(), &from, &to)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestStocktakingExport_CompletaDatosDeProducto(t *testing.T) {
	ctx := context.Background()
	products := &repotest.Products{}
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "prod-1", Code: "A-1", Name: "Café"}))
	sts := &repotest.Stocktakings{}
	require.NoError(t, sts.Create(ctx, &entity.Stocktaking{ID: "st-1", ProductID: "prod-1", SystemQuantity: 5, CountedQuantity: 4, Difference: -1, Date: day(3)}))
	require.NoError(t, sts.Create(ctx, &entity.Stocktaking{ID: "st-2", ProductID: "borrado", Date: day(4)}))
	xml := &captureXML{}
	uc := report.NewReportUseCase(&repotest.Sales{}, sts, products, &capturePDF{}, xml)

	doc, digest, err := uc.StocktakingExport(ctx, nil, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "<stocktaking/>", string(doc))
	assert.Equal(t, "SHA-256=abc", digest)
	require.Len(t, xml.got.Lines, 2)

	byID := map[string]report.StocktakingLine{}
	for _, l := range xml.got.Lines {
		byID[l.ID] = l
	}
	assert.Equal(t, "Café", byID["st-1"].ProductName)
	assert.Equal(t, "", byID["st-2"].ProductName)
}
