package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amigopos/amigo-pos/internal/application/dto"
	"github.com/amigopos/amigo-pos/internal/domain/reports"
	"github.com/amigopos/amigo-pos/internal/domain/repository"
)

const (
	// topProductsN productos en el ranking de más vendidos.
	topProductsN = 5
	// seriesMaxDays tope de la serie diaria. Los totales del reporte cubren
	// todo el rango pedido; la gráfica se acota a los últimos N días para no
	// generar miles de puntos con preset all o rangos custom muy largos.
	seriesMaxDays = 90
)

var two = decimal.NewFromInt(2)

// ReporterUseCase arma el reporte de ventas de un período: totales, ranking de
// productos, serie diaria con tendencia y desglose por producto con rotación.
type ReporterUseCase struct {
	reportRepo repository.ReportRepository
}

// NewReporterUseCase crea el caso de uso de reportes.
func NewReporterUseCase(reportRepo repository.ReportRepository) *ReporterUseCase {
	return &ReporterUseCase{reportRepo: reportRepo}
}

// SalesReport genera el reporte del rango pedido. Un rango sin ventas devuelve
// el reporte con totales en cero, nunca error. Con groupByProduct se agrega el
// desglose por producto (lo usan la vista detallada y las exportaciones).
func (uc *ReporterUseCase) SalesReport(ctx context.Context, req dto.DateRangeRequest, groupByProduct bool) (*dto.SalesReportResponse, error) {
	rng, err := ResolveRange(req, time.Now())
	if err != nil {
		return nil, err
	}

	summary, err := uc.reportRepo.GetSalesSummary(ctx, req.BranchID, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("reporte: resumen del período: %w", err)
	}
	cogs := summary.Revenue.Sub(summary.Profit)

	top, err := uc.reportRepo.GetTopProducts(ctx, req.BranchID, rng.From, rng.To, topProductsN)
	if err != nil {
		return nil, fmt.Errorf("reporte: más vendidos: %w", err)
	}

	seriesFrom, seriesTo := seriesWindow(rng)
	daily, err := uc.reportRepo.GetDailySeries(ctx, req.BranchID, seriesFrom, seriesTo)
	if err != nil {
		return nil, fmt.Errorf("reporte: serie diaria: %w", err)
	}

	closingCost, err := uc.reportRepo.GetInventoryCost(ctx, req.BranchID)
	if err != nil {
		return nil, fmt.Errorf("reporte: valor de inventario: %w", err)
	}

	resp := &dto.SalesReportResponse{
		Preset:            rng.Preset,
		From:              rng.FromLabel(),
		To:                rng.ToLabel(),
		BranchID:          req.BranchID,
		Revenue:           summary.Revenue.Round(2),
		Profit:            summary.Profit.Round(2),
		COGS:              cogs.Round(2),
		ItemsSold:         summary.ItemsSold,
		SaleCount:         summary.SaleCount,
		InventoryTurnover: reports.TurnoverRatio(cogs, averageInventory(closingCost, cogs)),
		TopProducts:       make([]dto.TopProductDTO, 0, len(top)),
		Daily:             buildDailyPoints(daily),
	}
	for _, t := range top {
		resp.TopProducts = append(resp.TopProducts, dto.TopProductDTO{
			ProductID:   t.ProductID,
			ProductName: t.ProductName,
			UnitsSold:   t.UnitsSold,
			Revenue:     t.Revenue.Round(2),
		})
	}

	if groupByProduct {
		resp.ByProduct, err = uc.buildProductRows(ctx, req.BranchID, rng)
		if err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// buildProductRows cruza las ventas por producto con el snapshot de stock
// actual. La apertura se reconstruye como cierre + vendido; la rotación por
// producto usa su propio COGS contra su inventario promedio.
func (uc *ReporterUseCase) buildProductRows(ctx context.Context, branchID string, rng DateRange) ([]dto.ProductReportRow, error) {
	sold, err := uc.reportRepo.GetSalesByProduct(ctx, branchID, rng.From, rng.To, 0)
	if err != nil {
		return nil, fmt.Errorf("reporte: ventas por producto: %w", err)
	}
	snapshots, err := uc.reportRepo.GetStockSnapshot(ctx, branchID, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("reporte: snapshot de stock: %w", err)
	}

	closing := make(map[string]repository.ProductStockSnapshot, len(snapshots))
	for _, s := range snapshots {
		closing[s.ProductID] = s
	}

	rows := make([]dto.ProductReportRow, 0, len(sold))
	for _, p := range sold {
		snap := closing[p.ProductID]
		rows = append(rows, dto.ProductReportRow{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			OpeningQty:  snap.ClosingQty.Add(p.UnitsSold),
			UnitsSold:   p.UnitsSold,
			ClosingQty:  snap.ClosingQty,
			Revenue:     p.Revenue.Round(2),
			Profit:      p.Revenue.Sub(p.COGS).Round(2),
			Turnover:    reports.TurnoverRatio(p.COGS, averageInventory(snap.ClosingCost, p.COGS)),
		})
	}
	return rows, nil
}

// averageInventory aproxima el inventario promedio del período a partir del
// cierre actual: apertura = cierre + COGS, promedio = cierre + COGS/2.
func averageInventory(closingCost, cogs decimal.Decimal) decimal.Decimal {
	return closingCost.Add(cogs.Div(two))
}

// seriesWindow acota la ventana de la serie diaria a seriesMaxDays.
func seriesWindow(rng DateRange) (time.Time, time.Time) {
	floor := rng.To.AddDate(0, 0, -seriesMaxDays)
	if rng.From.IsZero() || rng.From.Before(floor) {
		return floor, rng.To
	}
	return rng.From, rng.To
}

// buildDailyPoints convierte la serie cruda en puntos listos para graficar,
// con la recta de tendencia (ventas y utilidad) ya evaluada día a día.
func buildDailyPoints(raw []repository.DailyPointResult) []dto.DailyReportPoint {
	revenues := make([]decimal.Decimal, len(raw))
	profits := make([]decimal.Decimal, len(raw))
	for i, p := range raw {
		revenues[i] = p.Revenue
		profits[i] = p.Profit
	}
	trendSales, _ := reports.LinearTrend(revenues)
	trendProfit, _ := reports.LinearTrend(profits)

	points := make([]dto.DailyReportPoint, len(raw))
	for i, p := range raw {
		points[i] = dto.DailyReportPoint{
			Date:        p.Day.Format("2006-01-02"),
			Revenue:     p.Revenue.Round(2),
			Profit:      p.Profit.Round(2),
			TrendSales:  trendSales[i],
			TrendProfit: trendProfit[i],
		}
	}
	return points
}
