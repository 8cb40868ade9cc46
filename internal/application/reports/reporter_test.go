package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amigopos/amigo-pos/internal/application/dto"
	"github.com/amigopos/amigo-pos/internal/application/reports"
	"github.com/amigopos/amigo-pos/internal/domain"
	"github.com/amigopos/amigo-pos/internal/domain/repository"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func decF(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// fakeReportRepo devuelve datos enlatados. Con err seteado toda consulta
// falla; seriesStart/seriesEnd capturan la ventana pedida a la serie diaria.
type fakeReportRepo struct {
	summary   repository.SalesSummaryResult
	byProduct []repository.ProductSalesResult
	top       []repository.ProductSalesResult
	snapshot  []repository.ProductStockSnapshot
	daily     []repository.DailyPointResult
	invCost   decimal.Decimal
	low       []repository.LowStockResult
	near      []repository.NearExpiryResult
	recent    []repository.RecentSaleResult
	products  int
	err       error

	seriesStart time.Time
	seriesEnd   time.Time
}

func (f *fakeReportRepo) GetSalesSummary(_ context.Context, _ string, _, _ time.Time) (repository.SalesSummaryResult, error) {
	return f.summary, f.err
}

func (f *fakeReportRepo) GetSalesByProduct(_ context.Context, _ string, _, _ time.Time, _ int) ([]repository.ProductSalesResult, error) {
	return f.byProduct, f.err
}

func (f *fakeReportRepo) GetTopProducts(_ context.Context, _ string, _, _ time.Time, _ int) ([]repository.ProductSalesResult, error) {
	return f.top, f.err
}

func (f *fakeReportRepo) GetStockSnapshot(_ context.Context, _ string, _, _ time.Time) ([]repository.ProductStockSnapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeReportRepo) GetDailySeries(_ context.Context, _ string, start, end time.Time) ([]repository.DailyPointResult, error) {
	f.seriesStart, f.seriesEnd = start, end
	return f.daily, f.err
}

func (f *fakeReportRepo) GetInventoryCost(_ context.Context, _ string) (decimal.Decimal, error) {
	return f.invCost, f.err
}

func (f *fakeReportRepo) GetLowStock(_ context.Context, _ string, _ decimal.Decimal) ([]repository.LowStockResult, error) {
	return f.low, f.err
}

func (f *fakeReportRepo) GetNearExpiry(_ context.Context, _ string, _ int) ([]repository.NearExpiryResult, error) {
	return f.near, f.err
}

func (f *fakeReportRepo) GetRecentSales(_ context.Context, _ string, _ int) ([]repository.RecentSaleResult, error) {
	return f.recent, f.err
}

func (f *fakeReportRepo) CountProducts(_ context.Context) (int, error) {
	return f.products, f.err
}

// ──────────────────────────────────────────────────────────────────────────────
// TestSalesReport_ArmaElReporteCompleto verifica la aritmética del reporte
// sobre números conocidos: COGS = ingresos - utilidad, apertura = cierre +
// vendido, rotación = COGS / (cierre + COGS/2) y la recta de tendencia sobre
// una serie perfectamente lineal (el ajuste debe reproducirla exacta).
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesReport_ArmaElReporteCompleto(t *testing.T) {
	fake := &fakeReportRepo{
		summary: repository.SalesSummaryResult{
			Revenue:   dec(35),
			Profit:    dec(21),
			ItemsSold: dec(5),
			SaleCount: 2,
		},
		top: []repository.ProductSalesResult{
			{ProductID: "p1", ProductName: "Paracetamol 500mg", UnitsSold: dec(3), Revenue: dec(15)},
		},
		byProduct: []repository.ProductSalesResult{
			{ProductID: "p1", ProductName: "Paracetamol 500mg", UnitsSold: dec(3), Revenue: dec(15), COGS: dec(6)},
			{ProductID: "p2", ProductName: "Amoxicilina 500mg", UnitsSold: dec(2), Revenue: dec(20), COGS: dec(8)},
		},
		snapshot: []repository.ProductStockSnapshot{
			{ProductID: "p1", ProductName: "Paracetamol 500mg", ClosingQty: dec(7), ClosingCost: dec(14)},
			{ProductID: "p2", ProductName: "Amoxicilina 500mg", ClosingQty: dec(4), ClosingCost: dec(26)},
		},
		daily: []repository.DailyPointResult{
			{Day: day(2026, 3, 14), Revenue: dec(10), Profit: dec(5)},
			{Day: day(2026, 3, 15), Revenue: dec(20), Profit: dec(10)},
			{Day: day(2026, 3, 16), Revenue: dec(30), Profit: dec(15)},
		},
		invCost: dec(93),
	}
	uc := reports.NewReporterUseCase(fake)

	resp, err := uc.SalesReport(context.Background(), dto.DateRangeRequest{Preset: "week"}, true)

	require.NoError(t, err)
	assert.True(t, resp.Revenue.Equal(dec(35)))
	assert.True(t, resp.Profit.Equal(dec(21)))
	assert.True(t, resp.COGS.Equal(dec(14)), "COGS = 35 - 21, fue %s", resp.COGS)
	assert.True(t, resp.ItemsSold.Equal(dec(5)))
	assert.Equal(t, 2, resp.SaleCount)

	// Rotación global: 14 de COGS contra inventario promedio 93 + 14/2 = 100.
	assert.True(t, resp.InventoryTurnover.Equal(decF(0.14)),
		"rotación = 14/100, fue %s", resp.InventoryTurnover)

	require.Len(t, resp.TopProducts, 1)
	assert.Equal(t, "Paracetamol 500mg", resp.TopProducts[0].ProductName)
	assert.True(t, resp.TopProducts[0].UnitsSold.Equal(dec(3)))

	require.Len(t, resp.ByProduct, 2)
	paracetamol := resp.ByProduct[0]
	assert.True(t, paracetamol.OpeningQty.Equal(dec(10)), "apertura = cierre 7 + vendido 3")
	assert.True(t, paracetamol.ClosingQty.Equal(dec(7)))
	assert.True(t, paracetamol.Profit.Equal(dec(9)), "utilidad = 15 - 6")
	assert.True(t, paracetamol.Turnover.Equal(decF(0.35)),
		"rotación = 6/(14+3) redondeada, fue %s", paracetamol.Turnover)
	amoxicilina := resp.ByProduct[1]
	assert.True(t, amoxicilina.OpeningQty.Equal(dec(6)))
	assert.True(t, amoxicilina.Turnover.Equal(decF(0.27)), "rotación = 8/(26+4) redondeada")

	require.Len(t, resp.Daily, 3)
	assert.Equal(t, "2026-03-15", resp.Daily[1].Date)
	assert.True(t, resp.Daily[1].TrendSales.Equal(dec(20)),
		"la serie 10,20,30 es lineal: la tendencia la reproduce exacta")
	assert.True(t, resp.Daily[2].TrendProfit.Equal(dec(15)))
}

func TestSalesReport_SinVentasDevuelveCeros(t *testing.T) {
	fake := &fakeReportRepo{invCost: dec(93)}
	uc := reports.NewReporterUseCase(fake)

	resp, err := uc.SalesReport(context.Background(), dto.DateRangeRequest{From: "2030-01-01", To: "2030-01-31"}, true)

	require.NoError(t, err, "un rango sin ventas no es un error")
	assert.True(t, resp.Revenue.IsZero())
	assert.True(t, resp.Profit.IsZero())
	assert.True(t, resp.ItemsSold.IsZero())
	assert.Equal(t, 0, resp.SaleCount)
	assert.True(t, resp.InventoryTurnover.IsZero(), "sin COGS no hay rotación")
	assert.Empty(t, resp.TopProducts)
	assert.Empty(t, resp.ByProduct)
}

func TestSalesReport_DesgloseSoloSiSePide(t *testing.T) {
	fake := &fakeReportRepo{
		summary: repository.SalesSummaryResult{Revenue: dec(35), Profit: dec(21)},
	}
	uc := reports.NewReporterUseCase(fake)

	resp, err := uc.SalesReport(context.Background(), dto.DateRangeRequest{Preset: "today"}, false)

	require.NoError(t, err)
	assert.Nil(t, resp.ByProduct, "sin groupByProduct no se consulta el desglose")
}

func TestSalesReport_AcotaLaSerieDelHistorico(t *testing.T) {
	fake := &fakeReportRepo{}
	uc := reports.NewReporterUseCase(fake)

	_, err := uc.SalesReport(context.Background(), dto.DateRangeRequest{Preset: "all"}, false)

	require.NoError(t, err)
	require.False(t, fake.seriesStart.IsZero(), "la serie del preset all no puede arrancar en el año 1")
	assert.InDelta(t, 90*24, fake.seriesEnd.Sub(fake.seriesStart).Hours(), 1.5,
		"la gráfica del histórico se acota a 90 días")

	// Un rango corto usa su propia ventana, sin acotar.
	_, err = uc.SalesReport(context.Background(), dto.DateRangeRequest{Preset: "week"}, false)
	require.NoError(t, err)
	assert.InDelta(t, 7*24, fake.seriesEnd.Sub(fake.seriesStart).Hours(), 1.5)
}

func TestSalesReport_PropagaErrores(t *testing.T) {
	uc := reports.NewReporterUseCase(&fakeReportRepo{})
	_, err := uc.SalesReport(context.Background(), dto.DateRangeRequest{From: "nofecha"}, false)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	uc = reports.NewReporterUseCase(&fakeReportRepo{err: context.DeadlineExceeded})
	_, err = uc.SalesReport(context.Background(), dto.DateRangeRequest{Preset: "today"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resumen del período")
}
