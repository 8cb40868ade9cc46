package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amigopos/amigo-pos/internal/application/dto"
	"github.com/amigopos/amigo-pos/internal/domain/repository"
)

// ReportConfig umbrales de alerta y datos de membrete que comparten el
// dashboard, las alertas y el digest diario.
type ReportConfig struct {
	LowStockThreshold decimal.Decimal // alerta cuando quantity <= umbral
	NearExpiryDays    int             // ventana de vencimiento en días
	Currency          string          // símbolo monetario para correos, ej: "$"
	Pharmacy          string          // nombre comercial para el membrete
	Recipients        []string        // destinatarios fijos del digest
}

const (
	dashboardTopN    = 5
	dashboardRecentN = 8
)

// DashboardUseCase arma el resumen que abre la pantalla principal del punto
// de venta. Las siete consultas no dependen entre sí, así que se lanzan en
// paralelo y se recogen al final; el primer error corta la respuesta.
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
	cfg        ReportConfig
}

// NewDashboardUseCase crea el caso de uso del dashboard.
func NewDashboardUseCase(reportRepo repository.ReportRepository, cfg ReportConfig) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo, cfg: cfg}
}

// Summary devuelve los KPIs del día, las alertas vigentes, la serie de los
// últimos 7 días con tendencia y los widgets de más vendidos y ventas
// recientes. branchID vacío agrega todas las sucursales.
func (uc *DashboardUseCase) Summary(ctx context.Context, branchID string) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)
	weekStart := today.AddDate(0, 0, -6)

	type summaryRes struct {
		row repository.SalesSummaryResult
		err error
	}
	type countRes struct {
		n   int
		err error
	}
	type lowRes struct {
		rows []repository.LowStockResult
		err  error
	}
	type expiryRes struct {
		rows []repository.NearExpiryResult
		err  error
	}
	type seriesRes struct {
		rows []repository.DailyPointResult
		err  error
	}
	type topRes struct {
		rows []repository.ProductSalesResult
		err  error
	}
	type recentRes struct {
		rows []repository.RecentSaleResult
		err  error
	}

	summaryCh := make(chan summaryRes, 1)
	countCh := make(chan countRes, 1)
	lowCh := make(chan lowRes, 1)
	expiryCh := make(chan expiryRes, 1)
	seriesCh := make(chan seriesRes, 1)
	topCh := make(chan topRes, 1)
	recentCh := make(chan recentRes, 1)

	go func() {
		row, err := uc.reportRepo.GetSalesSummary(ctx, branchID, today, tomorrow)
		summaryCh <- summaryRes{row: row, err: err}
	}()
	go func() {
		n, err := uc.reportRepo.CountProducts(ctx)
		countCh <- countRes{n: n, err: err}
	}()
	go func() {
		rows, err := uc.reportRepo.GetLowStock(ctx, branchID, uc.cfg.LowStockThreshold)
		lowCh <- lowRes{rows: rows, err: err}
	}()
	go func() {
		rows, err := uc.reportRepo.GetNearExpiry(ctx, branchID, uc.cfg.NearExpiryDays)
		expiryCh <- expiryRes{rows: rows, err: err}
	}()
	go func() {
		rows, err := uc.reportRepo.GetDailySeries(ctx, branchID, weekStart, tomorrow)
		seriesCh <- seriesRes{rows: rows, err: err}
	}()
	go func() {
		rows, err := uc.reportRepo.GetTopProducts(ctx, branchID, today, tomorrow, dashboardTopN)
		topCh <- topRes{rows: rows, err: err}
	}()
	go func() {
		rows, err := uc.reportRepo.GetRecentSales(ctx, branchID, dashboardRecentN)
		recentCh <- recentRes{rows: rows, err: err}
	}()

	summary := <-summaryCh
	if summary.err != nil {
		return nil, fmt.Errorf("dashboard: resumen del día: %w", summary.err)
	}
	count := <-countCh
	if count.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de productos: %w", count.err)
	}
	low := <-lowCh
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: bajo stock: %w", low.err)
	}
	expiry := <-expiryCh
	if expiry.err != nil {
		return nil, fmt.Errorf("dashboard: por vencer: %w", expiry.err)
	}
	series := <-seriesCh
	if series.err != nil {
		return nil, fmt.Errorf("dashboard: serie semanal: %w", series.err)
	}
	top := <-topCh
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: más vendidos: %w", top.err)
	}
	recent := <-recentCh
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: ventas recientes: %w", recent.err)
	}

	resp := &dto.DashboardSummaryDTO{
		TodayRevenue:    summary.row.Revenue.Round(2),
		TodayProfit:     summary.row.Profit.Round(2),
		TodaySaleCount:  summary.row.SaleCount,
		ProductCount:    count.n,
		LowStockCount:   len(low.rows),
		NearExpiryCount: len(expiry.rows),
		Last7Days:       buildDailyPoints(series.rows),
		TopProducts:     make([]dto.TopProductDTO, 0, len(top.rows)),
		RecentSales:     make([]dto.RecentSaleDTO, 0, len(recent.rows)),
		DateLabel:       spanishDate(now),
	}
	for _, t := range top.rows {
		resp.TopProducts = append(resp.TopProducts, dto.TopProductDTO{
			ProductID:   t.ProductID,
			ProductName: t.ProductName,
			UnitsSold:   t.UnitsSold,
			Revenue:     t.Revenue.Round(2),
		})
	}
	for _, s := range recent.rows {
		resp.RecentSales = append(resp.RecentSales, dto.RecentSaleDTO{
			SaleID:       s.SaleID,
			BranchName:   s.BranchName,
			CustomerName: s.CustomerName,
			Total:        s.Total.Round(2),
			ItemCount:    s.ItemCount,
			Date:         s.Date.Format("2006-01-02 15:04"),
		})
	}
	return resp, nil
}

// spanishDate formatea la fecha con el mes en español, ej: "25 de agosto de 2026".
func spanishDate(t time.Time) string {
	months := [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
	return fmt.Sprintf("%d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}
