package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-api/internal/application/report"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "25.000,50", formatMoney("25000.50"))
	assert.Equal(t, "1.000.000,00", formatMoney("1000000.00"))
	assert.Equal(t, "999", formatMoney("999"))
	assert.Equal(t, "-1.500,00", formatMoney("-1500.00"))
}

func TestPeriodLabel(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "todas las fechas", periodLabel(nil, nil))
	assert.Equal(t, "desde 01/01/2026", periodLabel(&from, nil))
}

func TestGenerateSalesReport_ProducePDF(t *testing.T) {
	g := NewSalesReportGenerator("Bodega Central")
	r := &report.SalesReport{
		GeneratedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Lines: []report.SalesReportLine{
			{SaleID: "8f14e45f-ceea-467f-a0e6-1d4bb2d8c1a2", Date: time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC), Customer: "Ana", Items: 2, Total: decimal.RequireFromString("12.75")},
		},
		Total: decimal.RequireFromString("12.75"),
	}

	doc, err := g.GenerateSalesReport(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}
