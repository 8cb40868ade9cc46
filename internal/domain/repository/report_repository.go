package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummaryResult resultado crudo del agregado de ventas de un período.
// Lo produce la DB; el use case lo convierte en DTO.
type SalesSummaryResult struct {
	Revenue   decimal.Decimal // suma de Sale.Total
	Profit    decimal.Decimal // suma de (line_total - qty*costo_lote)
	ItemsSold decimal.Decimal // suma de cantidades vendidas
	SaleCount int             // número de ventas
}

// ProductSalesResult resultado crudo de ventas agrupadas por producto.
type ProductSalesResult struct {
	ProductID   string
	ProductName string
	UnitsSold   decimal.Decimal
	Revenue     decimal.Decimal
	COGS        decimal.Decimal // qty * costo del lote que sirvió la línea
}

// ProductStockSnapshot cantidades y costos actuales de un producto (cierre del período).
type ProductStockSnapshot struct {
	ProductID   string
	ProductName string
	ClosingQty  decimal.Decimal // suma de cantidades de lotes hoy
	ClosingCost decimal.Decimal // suma de quantity*unit_cost de lotes hoy
}

// DailyPointResult un punto de la serie diaria de ventas.
type DailyPointResult struct {
	Day     time.Time
	Revenue decimal.Decimal
	Profit  decimal.Decimal
}

// LowStockResult lote con cantidad en o bajo el umbral.
type LowStockResult struct {
	BatchID     string
	ProductID   string
	ProductName string
	BranchName  string
	BatchCode   string
	Quantity    decimal.Decimal
}

// NearExpiryResult lote con vencimiento dentro de la ventana de alerta.
type NearExpiryResult struct {
	BatchID     string
	ProductID   string
	ProductName string
	BranchName  string
	BatchCode   string
	ExpiryDate  time.Time
	Quantity    decimal.Decimal
}

// RecentSaleResult venta reciente para el widget del dashboard.
type RecentSaleResult struct {
	SaleID       string
	BranchName   string
	CustomerName string // vacío en venta anónima
	Total        decimal.Decimal
	ItemCount    int
	Date         time.Time
}

// ReportRepository define las consultas de lectura para reportes y dashboard.
// Las implementaciones son read-only (no modifican datos). Todos los rangos
// son semiabiertos [start, end).
type ReportRepository interface {
	// GetSalesSummary devuelve revenue, utilidad, items y conteo de ventas del
	// período. Usa COALESCE para devolver ceros si no hay ventas en el rango.
	// branchID vacío = todas las sucursales.
	GetSalesSummary(ctx context.Context, branchID string, start, end time.Time) (SalesSummaryResult, error)

	// GetSalesByProduct agrupa las ventas del período por producto, ordenadas
	// por nombre. limit <= 0 = sin límite.
	GetSalesByProduct(ctx context.Context, branchID string, start, end time.Time, limit int) ([]ProductSalesResult, error)

	// GetTopProducts devuelve los `limit` productos con más unidades vendidas
	// en el período (el ranking "más vendidos" del dashboard y el digest).
	GetTopProducts(ctx context.Context, branchID string, start, end time.Time, limit int) ([]ProductSalesResult, error)

	// GetStockSnapshot devuelve cantidades y costos actuales por producto
	// (solo productos con ventas en el período, para el reporte de rotación).
	GetStockSnapshot(ctx context.Context, branchID string, start, end time.Time) ([]ProductStockSnapshot, error)

	// GetDailySeries devuelve un punto por día calendario del rango, incluso
	// para días sin ventas (revenue y profit en cero).
	GetDailySeries(ctx context.Context, branchID string, start, end time.Time) ([]DailyPointResult, error)

	// GetInventoryCost devuelve la suma de quantity*unit_cost de los lotes
	// actuales (valor del inventario a costo). branchID vacío = global.
	GetInventoryCost(ctx context.Context, branchID string) (decimal.Decimal, error)

	// ── Alertas ───────────────────────────────────────────────────────────────

	// GetLowStock lista lotes con quantity <= threshold.
	GetLowStock(ctx context.Context, branchID string, threshold decimal.Decimal) ([]LowStockResult, error)

	// GetNearExpiry lista lotes con existencias que vencen dentro de `days` días.
	GetNearExpiry(ctx context.Context, branchID string, days int) ([]NearExpiryResult, error)

	// GetRecentSales devuelve las últimas `limit` ventas con nombre de sucursal
	// y cliente.
	GetRecentSales(ctx context.Context, branchID string, limit int) ([]RecentSaleResult, error)

	// CountProducts devuelve el tamaño del catálogo.
	CountProducts(ctx context.Context) (int, error)
}
