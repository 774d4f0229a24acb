package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

const pageSize = 100

// ReportUseCase reporte de ventas (PDF) y exportación de conteos físicos (XML).
type ReportUseCase struct {
	sales        repository.SaleRepository
	stocktakings repository.StocktakingRepository
	products     repository.ProductRepository
	pdf          SalesReportGenerator
	xml          StocktakingExporter
	now          func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	sales repository.SaleRepository,
	stocktakings repository.StocktakingRepository,
	products repository.ProductRepository,
	pdf SalesReportGenerator,
	xml StocktakingExporter,
) *ReportUseCase {
	return &ReportUseCase{
		sales:        sales,
		stocktakings: stocktakings,
		products:     products,
		pdf:          pdf,
		xml:          xml,
		now:          time.Now,
	}
}

// SalesReport genera el PDF de ventas del rango. Un fallo del generador → ErrReportGeneration.
func (uc *ReportUseCase) SalesReport(ctx context.Context, from, to *time.Time) ([]byte, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.ErrInvalidDateRange
	}
	r := &SalesReport{From: from, To: to, GeneratedAt: uc.now(), Total: decimal.Zero}
	f := repository.SaleFilter{From: from, To: to, Page: repository.Page{Limit: pageSize}}
	for {
		list, total, err := uc.sales.List(ctx, f)
		if err != nil {
			return nil, err
		}
		for _, s := range list {
			r.Lines = append(r.Lines, SalesReportLine{
				SaleID:   s.ID,
				Date:     s.Date,
				Customer: s.Customer,
				UserID:   s.UserID,
				Items:    len(s.Items),
				Total:    s.Total,
			})
			r.Total = r.Total.Add(s.Total)
		}
		f.Offset += len(list)
		if len(list) == 0 || f.Offset >= total {
			break
		}
	}
	doc, err := uc.pdf.GenerateSalesReport(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReportGeneration, err)
	}
	return doc, nil
}

// StocktakingExport genera el XML de conteos del rango (opcionalmente de un producto)
// y su digest.
func (uc *ReportUseCase) StocktakingExport(ctx context.Context, from, to *time.Time, productID string) ([]byte, string, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, "", domain.ErrInvalidDateRange
	}
	e := &StocktakingExport{From: from, To: to, GeneratedAt: uc.now()}
	products := make(map[string]*entity.Product)
	f := repository.StocktakingFilter{From: from, To: to, ProductID: productID, Page: repository.Page{Limit: pageSize}}
	for {
		list, total, err := uc.stocktakings.List(ctx, f)
		if err != nil {
			return nil, "", err
		}
		for _, st := range list {
			line := StocktakingLine{
				ID:              st.ID,
				ProductID:       st.ProductID,
				UserID:          st.UserID,
				SystemQuantity:  st.SystemQuantity,
				CountedQuantity: st.CountedQuantity,
				Difference:      st.Difference,
				Notes:           st.Notes,
				Date:            st.Date,
			}
			p, ok := products[st.ProductID]
			if !ok {
				if p, err = uc.products.GetByID(ctx, st.ProductID); err != nil {
					return nil, "", err
				}
				products[st.ProductID] = p
			}
			// el producto pudo borrarse después del conteo
			if p != nil {
				line.ProductCode, line.ProductName = p.Code, p.Name
			}
			e.Lines = append(e.Lines, line)
		}
		f.Offset += len(list)
		if len(list) == 0 || f.Offset >= total {
			break
		}
	}
	doc, digest, err := uc.xml.ExportStocktaking(ctx, e)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrReportGeneration, err)
	}
	return doc, digest, nil
}
