// Package report arma los datos de reportes y delega el formato (PDF, XML) en
// generadores de infraestructura.
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesReportLine una venta dentro del reporte.
type SalesReportLine struct {
	SaleID   string
	Date     time.Time
	Customer string
	UserID   string
	Items    int
	Total    decimal.Decimal
}

// SalesReport datos del reporte de ventas de un rango (From/To nil = abierto).
type SalesReport struct {
	From        *time.Time
	To          *time.Time
	GeneratedAt time.Time
	Lines       []SalesReportLine
	Total       decimal.Decimal
}

// StocktakingLine un conteo dentro de la exportación.
type StocktakingLine struct {
	ID              string
	ProductID       string
	ProductCode     string
	ProductName     string
	UserID          string
	SystemQuantity  int64
	CountedQuantity int64
	Difference      int64
	Notes           string
	Date            time.Time
}

// StocktakingExport datos de la exportación de conteos físicos.
type StocktakingExport struct {
	From        *time.Time
	To          *time.Time
	GeneratedAt time.Time
	Lines       []StocktakingLine
}

// SalesReportGenerator genera el documento PDF del reporte de ventas.
type SalesReportGenerator interface {
	GenerateSalesReport(ctx context.Context, r *SalesReport) ([]byte, error)
}

// StocktakingExporter serializa la exportación y devuelve también el digest
// del documento canónico.
type StocktakingExporter interface {
	ExportStocktaking(ctx context.Context, e *StocktakingExport) (doc []byte, digest string, err error)
}
